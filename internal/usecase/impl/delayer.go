package impl

import (
	"context"
	"time"

	"bookswap/config"
	"bookswap/internal/errors"
)

// Operation names a remote service call for latency lookup.
type Operation string

const (
	OpLogin           Operation = "login"
	OpSignup          Operation = "signup"
	OpLogout          Operation = "logout"
	OpGetCurrentUser  Operation = "getCurrentUser"
	OpGetBooks        Operation = "getBooks"
	OpCreateBook      Operation = "createBook"
	OpDeleteBook      Operation = "deleteBook"
	OpGetBooksByOwner Operation = "getBooksByOwner"
)

// Delayer simulates the round trip of a remote call.
type Delayer interface {
	// Wait blocks for the latency of op or until ctx ends.
	Wait(ctx context.Context, op Operation) error
}

// TimerDelayer sleeps for the configured latency of each operation, multiplied by the scale.
type TimerDelayer struct {
	latency *config.LatencyConfig
}

// NewTimerDelayer builds a delayer from config, falling back to the default latencies.
func NewTimerDelayer(cfg *config.Config) *TimerDelayer {
	latency := cfg.Latency
	if latency == nil {
		latency = config.DefaultLatency()
	}

	return &TimerDelayer{latency: latency}
}

// Duration returns the scaled latency of op.
func (d *TimerDelayer) Duration(op Operation) time.Duration {
	var base time.Duration
	switch op {
	case OpLogin:
		base = d.latency.Login
	case OpSignup:
		base = d.latency.Signup
	case OpLogout:
		base = d.latency.Logout
	case OpGetCurrentUser:
		base = d.latency.GetCurrentUser
	case OpGetBooks:
		base = d.latency.GetBooks
	case OpCreateBook:
		base = d.latency.CreateBook
	case OpDeleteBook:
		base = d.latency.DeleteBook
	case OpGetBooksByOwner:
		base = d.latency.GetBooksByOwner
	}

	if d.latency.Scale <= 0 {
		return 0
	}

	return time.Duration(float64(base) * d.latency.Scale)
}

func (d *TimerDelayer) Wait(ctx context.Context, op Operation) error {
	wait := d.Duration(op)
	if wait <= 0 {
		return errors.WithStack(ctx.Err())
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return errors.Wrapf(ctx.Err(), "%s interrupted", op)
	}
}

// NoDelay completes every call immediately.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context, _ Operation) error {
	return errors.WithStack(ctx.Err())
}
