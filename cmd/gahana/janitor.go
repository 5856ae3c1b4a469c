package main

import (
	"context"
	"log/slog"
	"time"

	"gahana/internal/domain/lifecycle"
	"gahana/internal/usecase"

	"go.uber.org/fx"
)

const sessionPurgeInterval = time.Hour

type janitorParams struct {
	fx.In
	fx.Lifecycle

	Users  usecase.UserUsecase
	Logger *slog.Logger
}

// registerSessionJanitor deletes expired refresh tokens once per interval
// while the server runs.
func registerSessionJanitor(params janitorParams) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				runJanitor(ctx, params.Users, params.Logger, sessionPurgeInterval)
			}()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}

			return nil
		},
	})
}

func runJanitor(ctx context.Context, users usecase.UserUsecase, logger *slog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			purgeCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			removed, err := users.PurgeExpiredSessions(purgeCtx)
			cancel()
			if err != nil {
				logger.Warn("Failed to purge expired sessions", slog.Any("error", err))

				continue
			}
			if removed > 0 {
				logger.Info("Purged expired sessions", slog.Int64("removed", removed))
			}
		}
	}
}
