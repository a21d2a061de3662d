// Package delivery exposes the client session to the outside world.
package delivery

import "context"

// Delivery is a server that runs until its lifecycle stops it.
type Delivery interface {
	Serve(ctx context.Context) error
}
