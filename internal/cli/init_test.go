package cli

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestSetupLoggerReadsEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := SetupLogger("worker")
	if logger.Component() != "worker" {
		t.Errorf("component = %q", logger.Component())
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be enabled")
	}
}

func TestGracefulShutdownRunsCleanupOnCancel(t *testing.T) {
	logger := SetupLogger("test")
	parent, stop := context.WithCancel(context.Background())
	ran := make(chan struct{})
	ctx, done := GracefulShutdown(parent, logger, time.Second, func(context.Context) { close(ran) })

	select {
	case <-done:
		t.Fatal("done closed before shutdown")
	default:
	}

	stop()
	WaitForShutdown(ctx, done)

	select {
	case <-ran:
	default:
		t.Fatal("cleanup did not run")
	}
}

func TestGracefulShutdownTimesOut(t *testing.T) {
	logger := SetupLogger("test")
	parent, stop := context.WithCancel(context.Background())
	stop()
	block := make(chan struct{})
	defer close(block)

	ctx, done := GracefulShutdown(parent, logger, 20*time.Millisecond, func(context.Context) { <-block })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not give up after timeout")
	}
	if ctx.Err() == nil {
		t.Error("context should be cancelled")
	}
}

func TestSuperviseShutsDownWhenTaskFails(t *testing.T) {
	logger := SetupLogger("test")
	parent, stop := context.WithCancel(context.Background())
	defer stop()
	ctx, done := GracefulShutdown(parent, logger, time.Second, nil)

	Supervise(ctx, stop, logger, "consumer", func(context.Context) error {
		return errors.New("set qos: channel closed")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("failed task did not trigger shutdown")
	}
	if ctx.Err() == nil {
		t.Error("context should be cancelled")
	}
}

func TestSuperviseStopsOnCancel(t *testing.T) {
	logger := SetupLogger("test")
	parent, stop := context.WithCancel(context.Background())
	returned := make(chan struct{})

	Supervise(parent, stop, logger, "consumer", func(ctx context.Context) error {
		defer close(returned)
		<-ctx.Done()
		return ctx.Err()
	})
	stop()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not observe cancellation")
	}
}
