// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notegrid/pkg/logger"
)

// Hook - функция, выполняемая при завершении приложения.
type Hook func(context.Context) error

const (
	logSignalReceived = "shutdown signal received"
	logContextDone    = "shutdown triggered by context"
	logHookFailed     = "shutdown hook failed"
	logTimeoutReached = "shutdown timeout reached"
)

// Wait блокирует выполнение до получения SIGINT/SIGTERM или отмены ctx,
// затем выполняет все хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	log := logger.Log(ctx)

	select {
	case sig := <-sigCh:
		log.Info(ctx, logSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, logContextDone)
	}

	Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run параллельно выполняет хуки и ждет их завершения не дольше timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := logger.Log(ctx)

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn Hook) {
			defer wgp.Done()
			if err := fn(ctx); err != nil {
				log.Error(ctx, logHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(ctx, logTimeoutReached, zap.Duration("timeout", timeout))
	}
}
