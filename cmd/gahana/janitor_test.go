package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"gahana/internal/errors"
	mockUC "gahana/internal/mocks/usecase"

	"github.com/stretchr/testify/mock"
)

func TestRunJanitor_PurgesUntilCancelled(t *testing.T) {
	users := mockUC.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	users.EXPECT().PurgeExpiredSessions(mock.Anything).RunAndReturn(func(context.Context) (int64, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("database is down")
		}
		cancel()

		return 3, nil
	}).Times(2)

	done := make(chan struct{})
	go func() {
		defer close(done)
		runJanitor(ctx, users, logger, time.Millisecond)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("janitor did not stop after cancellation")
	}
}
