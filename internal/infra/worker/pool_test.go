//go:build !integration

package worker_test

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-dating-bot/internal/infra/worker"
)

func TestPool(t *testing.T) {
	logger := zerolog.New(io.Discard)

	t.Run("runs submitted tasks", func(t *testing.T) {
		p := worker.NewPool(2, &logger)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		p.Start(ctx)
		defer p.Stop()

		var ran int32
		done := make(chan struct{})
		for i := 0; i < 5; i++ {
			err := p.Submit(func(context.Context) error {
				if atomic.AddInt32(&ran, 1) == 5 {
					close(done)
				}
				return nil
			})
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
		}
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("tasks did not finish, ran=%d", atomic.LoadInt32(&ran))
		}
	})

	t.Run("rejects nil tasks", func(t *testing.T) {
		p := worker.NewPool(1, &logger)
		if err := p.Submit(nil); err == nil {
			t.Error("expected an error for a nil task")
		}
	})

	t.Run("rejects tasks when the queue is saturated", func(t *testing.T) {
		// Never started, so the queue only drains up to its capacity.
		p := worker.NewPool(1, &logger)
		var rejected bool
		for i := 0; i < 100; i++ {
			if err := p.Submit(func(context.Context) error { return nil }); err != nil {
				rejected = true
				break
			}
		}
		if !rejected {
			t.Error("expected saturation to reject a task")
		}
	})
}
