package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stwalsh4118/branchpoint/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/stwalsh4118/branchpoint/internal/session"

// DefaultQueueSize is the number of tasks a Runner buffers before Do blocks
const DefaultQueueSize = 64

type task struct {
	ctx  context.Context
	fn   func(*Session) error
	done chan error
}

// Runner owns a Session and executes work against it one task at a time on a
// dedicated goroutine, in submission order.
type Runner struct {
	session *Session
	tasks   chan task

	mu       sync.RWMutex
	stopped  bool
	stopChan chan struct{}
	doneChan chan struct{}

	executed metric.Int64Counter
	log      zerolog.Logger
}

// NewRunner starts the goroutine that serializes access to s
func NewRunner(s *Session, queueSize int) (*Runner, error) {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	executed, err := otel.Meter(instrumentationName).Int64Counter(
		"session.tasks.executed",
		metric.WithDescription("Total tasks executed against the session"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating executed counter: %w", err)
	}

	r := &Runner{
		session:  s,
		tasks:    make(chan task, queueSize),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
		executed: executed,
		log:      logger.With("runner"),
	}
	go r.loop()
	return r, nil
}

// Do runs fn on the session goroutine and returns its error. If ctx ends
// first Do returns ctx.Err(); a task already queued still runs.
func (r *Runner) Do(ctx context.Context, fn func(*Session) error) error {
	r.mu.RLock()
	if r.stopped {
		r.mu.RUnlock()
		return ErrRunnerStopped
	}
	r.mu.RUnlock()

	t := task{ctx: ctx, fn: fn, done: make(chan error, 1)}

	select {
	case r.tasks <- t:
	case <-r.stopChan:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-t.done:
		return err
	case <-r.doneChan:
		// the loop may have finished our task just before exiting
		select {
		case err := <-t.done:
			return err
		default:
			return ErrRunnerStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop finishes the task in progress, closes the session and stops the
// goroutine. Queued tasks that have not started fail with ErrRunnerStopped.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopChan)
	<-r.doneChan

	r.log.Info().Msg("Session runner stopped")
}

func (r *Runner) loop() {
	defer close(r.doneChan)
	defer r.session.Close()

	for {
		// a closed stopChan wins over queued work
		select {
		case <-r.stopChan:
			r.drain()
			return
		default:
		}

		select {
		case t := <-r.tasks:
			r.run(t)
		case <-r.stopChan:
			r.drain()
			return
		}
	}
}

func (r *Runner) run(t task) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().
				Interface("panic", p).
				Msg("Session task panicked")
			t.done <- fmt.Errorf("session task panicked: %v", p)
		}
	}()

	r.executed.Add(context.Background(), 1)
	if err := t.ctx.Err(); err != nil {
		t.done <- err
		return
	}
	t.done <- t.fn(r.session)
}

func (r *Runner) drain() {
	for {
		select {
		case t := <-r.tasks:
			t.done <- ErrRunnerStopped
		default:
			return
		}
	}
}
