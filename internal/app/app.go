// Package app assembles the dashboard and its optional collaborators from
// configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/jwulff/biomon-go/internal/alerts"
	"github.com/jwulff/biomon-go/internal/api"
	"github.com/jwulff/biomon-go/internal/config"
	"github.com/jwulff/biomon-go/internal/dashboard"
	"github.com/jwulff/biomon-go/internal/metrics"
	"github.com/jwulff/biomon-go/internal/notify"
	"github.com/jwulff/biomon-go/internal/series"
	"github.com/jwulff/biomon-go/internal/storage"
	"github.com/jwulff/biomon-go/internal/storage/postgres"
	"github.com/jwulff/biomon-go/internal/storage/sqlite"
)

// App is a fully wired dashboard.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Dashboard *dashboard.Dashboard
	Metrics   *metrics.Metrics
	Store     storage.Store
	Publisher *notify.Publisher
	Handler   http.Handler
}

// New wires every enabled component. The caller owns Close.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, clock clockwork.Clock) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Logger: logger}

	a.Store, err = OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if a.Store != nil {
		logger.Info("storage enabled", "driver", cfg.Storage.Driver)
	}

	if cfg.Kafka.Enabled {
		a.Publisher, err = notify.NewPublisher(notify.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic}, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("kafka publisher: %w", err)
		}
		logger.Info("kafka alerts enabled", "topic", cfg.Kafka.Topic)
	}

	// The gauge reads the dashboard lazily, so it may be created first.
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New(func() float64 {
			if a.Dashboard == nil {
				return 0
			}
			return float64(a.Dashboard.Alerts().Count())
		})
	}

	var src series.Source
	if cfg.Dashboard.Seed != 0 {
		src = series.NewSeededSource(cfg.Dashboard.Seed)
	}
	a.Dashboard = dashboard.New(dashboard.Options{
		Clock:           clock,
		Location:        loc,
		Source:          src,
		RefreshInterval: cfg.Dashboard.RefreshInterval,
		ClockInterval:   cfg.Dashboard.ClockInterval,
		Alerts: alerts.Config{
			Dwell:        cfg.Alerts.Dwell,
			MaxActive:    cfg.Alerts.MaxActive,
			HistoryLimit: cfg.Alerts.HistoryLimit,
		},
		Logger:    logger,
		Metrics:   a.Metrics,
		Store:     a.Store,
		Publisher: a.Publisher,
	})

	_, a.Handler = api.NewServer(a.Dashboard, api.Options{
		Metrics:   a.Metrics,
		Store:     a.Store,
		Logger:    logger,
		Publishes: a.Publisher != nil,
		AccessLog: os.Stdout,
	})
	return a, nil
}

// OpenStore returns nil when storage is disabled.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	var (
		store storage.Store
		err   error
	)
	switch strings.ToLower(cfg.Driver) {
	case "sqlite", "":
		if cfg.DSN == "" || cfg.DSN == ":memory:" {
			store, err = sqlite.NewMemoryStore()
		} else {
			store, err = sqlite.NewFileStore(cfg.DSN)
		}
	case "postgres", "postgresql":
		store, err = postgres.New(cfg.DSN)
	default:
		return nil, errors.New("unsupported storage driver")
	}
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// Run drives the dashboard, the publisher and the API until ctx is done.
func (a *App) Run(ctx context.Context) {
	var wg sync.WaitGroup
	if a.Publisher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Publisher.Run(ctx)
		}()
	}
	if a.Config.API.Enabled {
		api.Start(ctx, a.Config.API.Addr, a.Handler, a.Logger)
	} else {
		a.Logger.Info("api disabled")
	}
	a.Dashboard.Run(ctx)
	wg.Wait()
}

// Close releases the store.
func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn("close storage", "err", err)
		}
	}
}
