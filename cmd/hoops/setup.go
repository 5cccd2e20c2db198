package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hoops/internal/config"
	"github.com/vovakirdan/hoops/internal/leaderboard"
	"github.com/vovakirdan/hoops/internal/storage"
)

// host bundles what every command needs: config, logger, store and keeper.
type host struct {
	cfg    config.Config
	logger *log.Logger
	store  storage.Store
	keeper *leaderboard.Keeper
}

// openHost loads configuration, applies flag overrides and opens the store.
func openHost() (*host, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagStorePath != "" {
		cfg.Store.Path = flagStorePath
	}
	if flagBackend != "" {
		cfg.Store.Backend = flagBackend
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagResetCorrupt {
		cfg.Store.ResetCorrupt = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hoops",
		Level:           level,
	})

	backend := storage.Backend(strings.ToLower(cfg.Store.Backend))
	store, err := storage.Open(backend, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open leaderboard store: %w", err)
	}
	logger.Debug("opened leaderboard store", "backend", backend, "path", cfg.Store.Path)

	keeper := leaderboard.NewKeeper(store,
		leaderboard.WithLogger(logger),
		leaderboard.WithResetCorrupt(cfg.Store.ResetCorrupt),
	)

	return &host{
		cfg:    cfg,
		logger: logger,
		store:  store,
		keeper: keeper,
	}, nil
}

// Close releases the store.
func (h *host) Close() {
	if err := h.store.Close(); err != nil {
		h.logger.Warn("could not close leaderboard store", "error", err)
	}
}

// mustOpenHost opens the host or exits with an error message.
func mustOpenHost() *host {
	h, err := openHost()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return h
}
