package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"rhystmorgan/onboard/internal/address"
	"rhystmorgan/onboard/internal/api"
	"rhystmorgan/onboard/internal/config"
	"rhystmorgan/onboard/internal/logging"
	"rhystmorgan/onboard/internal/metrics"
	"rhystmorgan/onboard/internal/validation"
	"rhystmorgan/onboard/internal/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		Debug: cfg.Debug,
	})
	if err != nil {
		fmt.Printf("Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.New(registry)

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, registry); err != nil {
				logger.Error().Err(err).Str("addr", cfg.MetricsAddr).Msg("metrics server stopped")
			}
		}()
	}

	lookup := address.NewClient(cfg.ToLookupConfig(),
		address.WithLogger(logger.With().Str("component", "address").Logger()),
		address.WithMetrics(recorder),
	)
	lookup.StartCacheCleanup(ctx)

	client, err := api.NewClient(cfg.ToClientConfig(),
		api.WithLogger(logger.With().Str("component", "api").Logger()),
		api.WithMetrics(recorder),
	)
	if err != nil {
		fmt.Printf("Error initializing API client: %v\n", err)
		os.Exit(1)
	}

	logger.Info().
		Str("api_url", cfg.APIURL).
		Str("lookup_url", cfg.LookupURL).
		Msg("starting onboard")

	app := views.NewAppModel(views.Dependencies{
		API:           client,
		Lookup:        lookup,
		Validator:     validation.NewValidator(),
		Logger:        logger,
		LookupTimeout: cfg.LookupTimeout,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("application exited with error")
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
