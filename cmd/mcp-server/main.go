// cmd/mcp-server/main.go — Standalone HTTP MCP server for polylead
//
// Exposes the polynomial analyzer as an HTTP endpoint for AI agent
// frameworks and form front ends.
//
// Usage:
//   go run ./cmd/mcp-server -port 8080 -config polylead.yaml
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Form endpoints:     POST /v1/validate, /v1/normalize, /v1/analyze
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/njchilds90/polylead/internal/config"
	"github.com/njchilds90/polylead/internal/server"
	"github.com/njchilds90/polylead/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "polylead mcp-server:", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Logs and trace output go to stderr.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("mcp-server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	port := fs.Int("port", 0, "Port to listen on, overriding the config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("port override: %w", err)
		}
	}

	logger := cfg.Logging.NewLogger(stderr)

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry, stderr)
	if err != nil {
		logger.Error("init telemetry", "error", err)
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	logger.Info("polylead MCP server starting",
		"port", cfg.Server.Port,
		"rate_limit", cfg.RateLimit.Enabled,
		"trace_exporter", cfg.Telemetry.TraceExporter,
		"max_terms", cfg.Analyzer.MaxTerms)

	if err := server.New(cfg, logger).Run(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
