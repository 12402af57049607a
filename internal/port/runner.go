// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

//go:generate mockgen -source=runner.go -destination=../mock/runner.go -package=mock

import (
	"context"

	"golang-ddnsd/internal/pkg/config"
	"golang-ddnsd/internal/pkg/protocol"
)

// UpdateRunner is the primary port for executing one configured update
// job. Run blocks through the job's delay and transport invocation and
// returns the classified outcome; it is safe to call concurrently with
// other runners but not with itself.
type UpdateRunner interface {
	Run(ctx context.Context) (*protocol.Success, error)

	// Job returns the configuration this runner was built for.
	Job() config.JobConfig
}
