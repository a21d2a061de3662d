// Package loop runs the client's cooperative task loop.
//
// Every task runs on the single loop goroutine, so tasks never race with each
// other over application state. Blocking work is started with Suspend: the
// operation runs on its own goroutine and its continuation is posted back to
// the loop once it completes. SuspendBackground does the same for long-lived
// work, such as waiting on the host for a position, which SettleForeground
// does not wait for.
package loop

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"

	"bookswap/internal/errors"
)

// ErrStopped is returned by Call and Settle once the loop is no longer running.
var ErrStopped = errors.New("loop stopped")

// Loop is a single-goroutine task queue.
type Loop struct {
	logger *slog.Logger

	mu         sync.Mutex
	queue      []func()
	pending    int // queued tasks plus suspended operations
	background int // suspended operations started with SuspendBackground
	changed    chan struct{}
	ctx        context.Context

	wake    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// New creates a loop. Nothing executes until Run is called.
func New(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Loop{
		logger:  logger.With(slog.String("component", "loop")),
		changed: make(chan struct{}),
		ctx:     context.Background(),
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
}

// Run executes tasks until ctx ends. Tasks still queued at that point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	l.ctx = ctx
	l.mu.Unlock()

	defer l.once.Do(func() { close(l.stopped) })

	for {
		task, ok := l.next()
		if ok {
			l.execute(task)

			continue
		}

		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-l.wake:
		}
	}
}

// Post queues task to run on the loop. Safe to call from any goroutine.
func (l *Loop) Post(task func()) {
	l.mu.Lock()
	l.queue = append(l.queue, task)
	l.pending++
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Call runs fn on the loop and waits for it to return.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-l.stopped:
		return ErrStopped
	}
}

// Settle blocks until no task is queued and no operation is suspended.
func (l *Loop) Settle(ctx context.Context) error {
	return l.settle(ctx, func() int { return l.pending })
}

// SettleForeground is Settle ignoring operations started with SuspendBackground.
// Their continuations count once they are queued.
func (l *Loop) SettleForeground(ctx context.Context) error {
	return l.settle(ctx, func() int { return l.pending - l.background })
}

func (l *Loop) settle(ctx context.Context, outstanding func() int) error {
	for {
		l.mu.Lock()
		if outstanding() == 0 {
			l.mu.Unlock()

			return nil
		}
		changed := l.changed
		l.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-l.stopped:
			return ErrStopped
		}
	}
}

// Suspend runs op on its own goroutine and posts then(result, err) back to the loop.
// The operation receives the loop's run context; it is never canceled otherwise.
func Suspend[T any](l *Loop, op func(ctx context.Context) (T, error), then func(T, error)) {
	suspend(l, false, op, then)
}

// SuspendBackground is Suspend for an operation SettleForeground does not wait for.
func SuspendBackground[T any](l *Loop, op func(ctx context.Context) (T, error), then func(T, error)) {
	suspend(l, true, op, then)
}

func suspend[T any](l *Loop, background bool, op func(ctx context.Context) (T, error), then func(T, error)) {
	l.mu.Lock()
	l.pending++
	if background {
		l.background++
	}
	ctx := l.ctx
	l.mu.Unlock()

	go func() {
		defer l.done(background)

		var (
			result T
			err    error
		)
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("suspended operation panicked: %v", r)
					l.logger.Error("Suspended operation panicked",
						slog.Any("panic", r),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			result, err = op(ctx)
		}()

		l.Post(func() { then(result, err) })
	}()
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 {
		return nil, false
	}

	task := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]

	return task, true
}

func (l *Loop) execute(task func()) {
	defer l.done(false)
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Task panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	task()
}

func (l *Loop) done(background bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending--
	if background {
		l.background--
	}
	close(l.changed)
	l.changed = make(chan struct{})
}
