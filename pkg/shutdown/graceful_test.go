package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"notegrid/pkg/shutdown"
)

func TestWaitExecutesHooksOnContextCancel(t *testing.T) {
	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, time.Second, hook, hook)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestRunRespectsTimeout(t *testing.T) {
	var completed atomic.Bool
	slowHook := func(ctx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			completed.Store(true)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	start := time.Now()
	shutdown.Run(context.Background(), 200*time.Millisecond, slowHook)

	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, completed.Load())
}

func TestRunHooksConcurrently(t *testing.T) {
	sleepy := func(context.Context) error {
		time.Sleep(300 * time.Millisecond)
		return nil
	}

	start := time.Now()
	shutdown.Run(context.Background(), 2*time.Second, sleepy, sleepy, sleepy)

	assert.Less(t, time.Since(start), 800*time.Millisecond)
}

func TestRunToleratesHookErrors(t *testing.T) {
	var calls atomic.Int32
	failing := func(context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	}

	assert.NotPanics(t, func() {
		shutdown.Run(context.Background(), time.Second, failing, failing)
	})
	assert.Equal(t, int32(2), calls.Load())
}
