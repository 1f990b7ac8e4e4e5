// Package notify forwards raised alerts to a Kafka topic for downstream
// consumers.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jwulff/biomon-go/internal/alerts"
)

const queueSize = 64

// Config selects the brokers and topic alerts are published to.
type Config struct {
	Brokers []string
	Topic   string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event is the published payload for one alert.
type Event struct {
	ID       int64     `json:"id"`
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raised_at"`
}

// Publisher queues alerts and writes them to Kafka from Run.
type Publisher struct {
	writer  messageWriter
	log     *slog.Logger
	queue   chan Event
	timeout time.Duration
}

// NewPublisher builds a publisher backed by a kafka.Writer.
func NewPublisher(cfg Config, log *slog.Logger) (*Publisher, error) {
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("notify: topic must not be empty")
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("notify: at least one broker is required")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return newPublisher(w, log), nil
}

func newPublisher(w messageWriter, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{
		writer:  w,
		log:     log,
		queue:   make(chan Event, queueSize),
		timeout: 5 * time.Second,
	}
}

// Publish enqueues a without blocking. It reports false when the queue is
// full or p is nil.
func (p *Publisher) Publish(a alerts.Alert) bool {
	if p == nil {
		return false
	}
	select {
	case p.queue <- Event{ID: a.ID, Message: a.Message, RaisedAt: a.RaisedAt}:
		return true
	default:
		p.log.Warn("alert publish queue full", "alert_id", a.ID)
		return false
	}
}

// Run drains the queue until ctx is cancelled, then closes the writer.
func (p *Publisher) Run(ctx context.Context) {
	if p == nil {
		return
	}
	defer func() {
		if err := p.writer.Close(); err != nil {
			p.log.Warn("close kafka writer", "err", err)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-p.queue:
			if err := p.write(ctx, ev); err != nil {
				p.log.Error("publish alert", "alert_id", ev.ID, "err", err)
			}
		}
	}
}

func (p *Publisher) write(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	wctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.writer.WriteMessages(wctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.ID, 10)),
		Value: value,
		Time:  ev.RaisedAt,
	})
}
