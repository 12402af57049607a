// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

//go:generate mockgen -source=transport.go -destination=../mock/transport.go -package=mock

import (
	"context"

	"golang-ddnsd/internal/pkg/request"
)

// Transport is a port for delivering one update request. Implementations
// own connection handling, timeouts and transport-level retries; they
// return the raw response body on success.
type Transport interface {
	Do(ctx context.Context, req request.Request) (string, error)
}
