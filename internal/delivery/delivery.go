// Package delivery defines the transport-facing entry points of the application.
package delivery

import "context"

// Delivery is a transport frontend (HTTP today) that serves the application
// until its context is cancelled or the process shuts down.
type Delivery interface {
	Serve(ctx context.Context) error
}
