// Package main is the entry point for the biomon dashboard.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jwulff/biomon-go/internal/api"
	"github.com/jwulff/biomon-go/internal/app"
	"github.com/jwulff/biomon-go/internal/config"
	"github.com/jwulff/biomon-go/internal/dashboard"
	"github.com/jwulff/biomon-go/internal/export"
	"github.com/jwulff/biomon-go/internal/logging"
	"github.com/jwulff/biomon-go/internal/render"
	"github.com/jwulff/biomon-go/internal/series"
	"github.com/jwulff/biomon-go/internal/trend"
)

func main() {
	if len(os.Args) < 2 {
		banner()
		showUsage()
		return
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		banner()
		serve(cfg)
	case "preview":
		banner()
		preview(cfg)
	case "log":
		printLog(cfg)
	case "export":
		if len(os.Args) < 3 {
			fmt.Println("Error: export target required")
			fmt.Println("Usage: biomon export log|series|report")
			os.Exit(1)
		}
		exportTo(cfg, os.Args[2])
	case "config":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	default:
		banner()
		showUsage()
	}
}

func banner() {
	fmt.Println("Biomon - Simulated Biomarker Monitoring Dashboard")
	fmt.Println("Version: " + api.Version)
	fmt.Println()
}

func showUsage() {
	fmt.Println("Usage:")
	fmt.Println("  biomon serve                  - Run the live dashboard and HTTP API")
	fmt.Println("  biomon preview                - Show ASCII preview of the dashboard frame")
	fmt.Println("  biomon log                    - Print the demonstration log")
	fmt.Println("  biomon export log|series|report - Write an export to stdout")
	fmt.Println("  biomon config                 - Print the effective configuration")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  " + config.EnvPath + "                 - Path to a YAML or JSON config file (optional)")
}

func serve(cfg *config.Config) {
	logger := logging.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger, nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if cfg.API.Enabled {
		fmt.Printf("API listening on %s\n", cfg.API.Addr)
	}
	fmt.Printf("Refreshing every %s. Press Ctrl+C to stop\n", cfg.Dashboard.RefreshInterval)
	fmt.Println()

	a.Run(ctx)
	fmt.Println("\nStopping...")
}

// newDashboard builds a standalone dashboard for one-shot commands.
func newDashboard(cfg *config.Config) *dashboard.Dashboard {
	loc, err := cfg.Location()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	var src series.Source
	if cfg.Dashboard.Seed != 0 {
		src = series.NewSeededSource(cfg.Dashboard.Seed)
	}
	return dashboard.New(dashboard.Options{
		Location: loc,
		Source:   src,
		Logger:   logging.Discard(),
	})
}

func preview(cfg *config.Config) {
	d := newDashboard(cfg)
	d.Tick()

	fmt.Printf("%dx%d Frame Preview:\n", render.Width, render.Height)
	fmt.Println()
	fmt.Print(render.ASCII(d.Frame()))
	fmt.Println()
	fmt.Println(render.ASCIILegend)
	fmt.Println()

	snap := d.Snapshot()
	for _, c := range snap.Cards {
		fmt.Printf("  %-10s %8s %-5s %-7s %s %s\n", c.Kind, c.Value, c.Unit, c.Status, arrow(c.Direction), c.Delta)
	}
	fmt.Println()
	fmt.Println(snap.Recommendation)
	for _, a := range snap.Alerts {
		fmt.Printf("  [%d] %s\n", a.ID, a.Message)
	}
}

func arrow(d trend.Direction) string {
	if d == "" {
		return " "
	}
	return trend.MapUnicodeArrow(d)
}

func printLog(cfg *config.Config) {
	d := newDashboard(cfg)
	fmt.Printf("%-10s %-6s %-11s %8s %-6s %s\n", "ID", "TIME", "BIOMARKER", "VALUE", "UNIT", "STATUS")
	for _, r := range d.Rows() {
		fmt.Printf("%-10s %-6s %-11s %8s %-6s %s\n", r.ID, r.Timestamp, r.Biomarker, r.FormatValue(), r.Unit, r.Status)
	}
}

func exportTo(cfg *config.Config, target string) {
	d := newDashboard(cfg)
	var err error
	switch target {
	case "log":
		err = export.WriteLogCSV(os.Stdout, d.Rows())
	case "series":
		err = export.WriteSeriesCSV(os.Stdout, d.Series())
	case "report":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(export.BuildReport(d.Series(), time.Now()))
	default:
		fmt.Printf("Error: unknown export target %q\n", target)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
