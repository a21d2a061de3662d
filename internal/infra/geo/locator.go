package geo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"bookswap/internal/domain/entity"
	"bookswap/internal/errors"
)

var (
	// ErrLocationUnsupported means the host has no way to report a position.
	ErrLocationUnsupported = errors.New("geolocation unsupported")
	// ErrPermissionDenied means the host refused to share its position.
	ErrPermissionDenied = errors.New("geolocation permission denied")
	// ErrInvalidPosition means the host reported coordinates outside WGS84 bounds.
	ErrInvalidPosition = errors.New("geolocation position out of range")
)

// LocationProvider is the host capability that reports the viewer's position.
type LocationProvider interface {
	CurrentPosition(ctx context.Context) (entity.Location, error)
}

// StaticProvider always reports the same position.
type StaticProvider struct {
	Location entity.Location
}

func (p StaticProvider) CurrentPosition(context.Context) (entity.Location, error) {
	return p.Location, nil
}

// UnsupportedProvider models a host without geolocation.
type UnsupportedProvider struct{}

func (UnsupportedProvider) CurrentPosition(context.Context) (entity.Location, error) {
	return entity.Location{}, ErrLocationUnsupported
}

// DeniedProvider models a host whose user refused the permission prompt.
type DeniedProvider struct{}

func (DeniedProvider) CurrentPosition(context.Context) (entity.Location, error) {
	return entity.Location{}, ErrPermissionDenied
}

// BrowserProvider waits for the host page to report a position or a denial.
// The first report unblocks every pending and future CurrentPosition call;
// later reports replace the stored answer.
type BrowserProvider struct {
	mu       sync.Mutex
	ready    chan struct{}
	answered bool
	location entity.Location
	err      error
}

// NewBrowserProvider returns a provider with no answer yet.
func NewBrowserProvider() *BrowserProvider {
	return &BrowserProvider{ready: make(chan struct{})}
}

// Report records a position from the host.
func (p *BrowserProvider) Report(loc entity.Location) error {
	if !Valid(loc.Point()) {
		return ErrInvalidPosition
	}

	p.answer(loc, nil)

	return nil
}

// Deny records that the host refused to share its position.
func (p *BrowserProvider) Deny() {
	p.answer(entity.Location{}, ErrPermissionDenied)
}

func (p *BrowserProvider) answer(loc entity.Location, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.location, p.err = loc, err
	if !p.answered {
		p.answered = true
		close(p.ready)
	}
}

func (p *BrowserProvider) CurrentPosition(ctx context.Context) (entity.Location, error) {
	select {
	case <-p.ready:
	case <-ctx.Done():
		return entity.Location{}, errors.WithStack(ctx.Err())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.location, p.err
}

// Resolution is the outcome of one location lookup. Location is always set;
// it holds the fallback when Status is not LocationFound.
type Resolution struct {
	Location entity.Location
	Status   entity.LocationStatus
}

// Resolver turns provider answers into a location and status, applying the timeout and fallback.
type Resolver struct {
	provider LocationProvider
	timeout  time.Duration
	fallback entity.Location
	logger   *slog.Logger
}

// NewResolver builds a resolver. A non-positive timeout waits until ctx ends.
func NewResolver(provider LocationProvider, timeout time.Duration, fallback entity.Location, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Resolver{provider: provider, timeout: timeout, fallback: fallback, logger: logger}
}

// Resolve asks the provider once. Unsupported hosts yield LocationUnavailable;
// denial, timeout and out-of-range answers yield LocationBlocked.
func (r *Resolver) Resolve(ctx context.Context) Resolution {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	loc, err := r.provider.CurrentPosition(ctx)
	switch {
	case err == nil && Valid(loc.Point()):
		r.logger.DebugContext(ctx, "Location found", slog.Float64("lat", loc.Lat), slog.Float64("lng", loc.Lng))

		return Resolution{Location: loc, Status: entity.LocationFound}
	case errors.Is(err, ErrLocationUnsupported):
		r.logger.InfoContext(ctx, "Location unavailable, using fallback")

		return Resolution{Location: r.fallback, Status: entity.LocationUnavailable}
	default:
		if err == nil {
			err = ErrInvalidPosition
		}
		r.logger.InfoContext(ctx, "Location blocked, using fallback", slog.String("reason", err.Error()))

		return Resolution{Location: r.fallback, Status: entity.LocationBlocked}
	}
}
