// Package update contains the executor adapter that drives one update job
// from configured delay through transport invocation to a classified
// outcome. It implements the UpdateRunner port.
package update

import (
	"context"
	"fmt"
	"time"

	"golang-ddnsd/internal/pkg/config"
	"golang-ddnsd/internal/pkg/logging"
	"golang-ddnsd/internal/pkg/protocol"
	"golang-ddnsd/internal/pkg/request"
	"golang-ddnsd/internal/port"
)

// TransportError wraps a network or process-level failure invoking the
// transport. Application-level rejections (interval, unsupported status)
// are not TransportErrors; they come back as protocol errors.
type TransportError struct {
	Job string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("update of %s failed: %v", e.Job, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Executor runs a single update job. One executor is constructed per job
// and owns its JobConfig for its whole lifetime.
type Executor struct {
	job       config.JobConfig
	req       request.Request
	transport port.Transport
	skipDelay bool
}

// Ensure Executor implements the UpdateRunner port
var _ port.UpdateRunner = (*Executor)(nil)

// Option adjusts executor behavior at construction time.
type Option func(*Executor)

// SkipDelay disables the job's configured pre-update delay. Used for the
// global ignore-delay override.
func SkipDelay() Option {
	return func(e *Executor) { e.skipDelay = true }
}

// NewExecutor creates an executor for job that delivers through transport.
func NewExecutor(job config.JobConfig, transport port.Transport, opts ...Option) *Executor {
	e := &Executor{
		job:       job,
		req:       request.Build(job),
		transport: transport,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Job returns the configuration this executor was built for.
func (e *Executor) Job() config.JobConfig { return e.job }

// Run executes the job: optional delay, one transport invocation, then
// response classification. Transport failures are not retried here; retry
// policy is already encoded in the request options and handled by the
// transport. Interval and unsupported responses are likewise reported, not
// retried, because repeating them cannot change the server's answer.
func (e *Executor) Run(ctx context.Context) (*protocol.Success, error) {
	logger := logging.WithComponentAndJob("update", e.job.PrettyName())

	if e.job.Delay > 0 && !e.skipDelay {
		logger.WithField("delay", e.job.Delay.String()).Info("Waiting before update")
		timer := time.NewTimer(e.job.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, &TransportError{Job: e.job.PrettyName(), Err: ctx.Err()}
		case <-timer.C:
		}
	}

	logger.WithField("url", e.job.URL).Debug("Sending update request")
	raw, err := e.transport.Do(ctx, e.req)
	if err != nil {
		return nil, &TransportError{Job: e.job.PrettyName(), Err: err}
	}

	outcome, err := protocol.Classify(raw)
	if err != nil {
		return nil, err
	}
	logger.WithField("address", outcome.Addr.String()).Info("Update accepted")
	return outcome, nil
}
