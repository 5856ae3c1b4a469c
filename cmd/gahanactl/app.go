package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"gahana/config"
	"gahana/internal/domain/service"
	"gahana/internal/infra/geolocation"
	logs "gahana/internal/infra/log"
	"gahana/internal/infra/remote"
	"gahana/internal/infra/storage"
	"gahana/internal/session"

	"github.com/pkg/errors"
)

const settleTimeout = 15 * time.Second

// app is everything one gahanactl run needs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    service.KVStore
	client   *remote.Client
	resolver *session.Resolver
	saved    *geolocation.SavedSource
	locator  *geolocation.Locator
}

// newApp wires the client and waits for the stored session to settle.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	// Logs go to stderr so command output stays clean.
	logger, err := logs.NewWithWriter(cfg, os.Stderr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}

	store, err := storage.New(cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open client storage")
	}

	client, err := remote.New(cfg, store, logger)
	if err != nil {
		_ = store.Close()

		return nil, err
	}

	saved := geolocation.NewSavedSource(store)
	live := geolocation.NewIPSource(cfg.Geolocation.Endpoint, cfg.Geolocation.Timeout, nil)

	resolver := session.New(session.Params{
		Provider: client,
		Profiles: client,
		Store:    store,
		Logger:   logger,
	})
	resolver.Start(ctx)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		client:   client,
		resolver: resolver,
		saved:    saved,
		locator:  geolocation.NewLocator(live, saved, logger),
	}

	waitCtx, cancel := context.WithTimeout(ctx, settleTimeout)
	defer cancel()
	if err := resolver.WaitReady(waitCtx); err != nil {
		a.Close()

		return nil, err
	}

	return a, nil
}

// awaitRole waits for a pending role fetch so printed roles are confirmed.
func (a *app) awaitRole(ctx context.Context) {
	waitCtx, cancel := context.WithTimeout(ctx, settleTimeout)
	defer cancel()
	if _, err := a.resolver.AwaitRole(waitCtx); err != nil {
		a.logger.Warn("Role not confirmed, using cached value", slog.Any("error", err))
	}
}

func (a *app) Close() {
	a.resolver.Close()
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close client storage", slog.Any("error", err))
	}
}
