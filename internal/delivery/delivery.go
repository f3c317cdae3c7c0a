// Package delivery defines the contract every inbound transport implements.
package delivery

import "context"

// Delivery is a long-running inbound surface (HTTP server). Serve blocks
// until the context is cancelled or the surface fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
