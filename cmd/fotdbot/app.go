package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/faideww/fish-of-the-day/internal/bot"
	"github.com/faideww/fish-of-the-day/internal/fetch"
	"github.com/faideww/fish-of-the-day/internal/fish"
	"github.com/faideww/fish-of-the-day/internal/fotd"
	"github.com/faideww/fish-of-the-day/internal/store"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg       *Config
	logger    *log.Logger
	client    *fetch.Client
	acquirer  *fish.Acquirer
	cache     *fotd.Cache
	responder *bot.Responder
	sqlite    *store.SQLiteStore
	closer    io.Closer
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fotdbot",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func newApp(cfg *Config, logger *log.Logger) (*app, error) {
	ex, err := fish.NewExtractor(cfg.FishbaseURL)
	if err != nil {
		return nil, err
	}

	client := fetch.NewClient(cfg.FishbaseURL, cfg.HTTPTimeout)
	acquirer := fish.NewAcquirer(client, ex, cfg.Criteria,
		fish.WithMaxAttempts(cfg.MaxAttempts),
		fish.WithLogger(logger),
	)

	a := &app{cfg: cfg, logger: logger, client: client, acquirer: acquirer}

	var st store.FotdStore
	switch cfg.StoreKind {
	case storeSQLite:
		sq, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		a.sqlite = sq
		a.closer = sq
		st = sq
	default:
		st = store.NewJSONStore(cfg.JSONPath)
	}

	a.cache = fotd.New(st, acquirer, fotd.WithLogger(logger))
	a.responder = bot.NewResponder(a.cache, acquirer, cfg.FishEnabled, logger)
	return a, nil
}

func (a *app) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
