// Package main is the entry point for Wayfarer.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/samdwyer/wayfarer/internal/game"
	"github.com/samdwyer/wayfarer/internal/telemetry"
)

// telemetryTries bounds how long startup waits for the OTLP exporter.
const telemetryTries = 3

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if !cfg.Headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Printf("Note: stdout is not a terminal, running headless")
		cfg.Headless = true
	}

	// The terminal UI owns the screen, so logs go to stderr either way.
	logger := telemetry.NewLogger(os.Stderr, cfg.Verbosity)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.SetupWithRetry(ctx, telemetryTries)
		if err != nil {
			logger.Error(err, "telemetry setup failed, running without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error(err, "shutting down telemetry")
				}
			}()
		}
	}

	g, err := game.New(ctx, cfg, logger)
	if err != nil {
		logger.Error(err, "failed to initialize game")
		os.Exit(1)
	}
	if err := g.Run(ctx); err != nil {
		logger.Error(err, "game error")
		os.Exit(1)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// Construct headers from the API key here; a .env file may hold an
	// unexpanded variable reference instead.
	apiKey := os.Getenv("HONEYCOMB_WAYFARER_API_KEY")
	dataset := os.Getenv("HONEYCOMB_WAYFARER_DATASET")
	if dataset == "" {
		dataset = "wayfarer"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
