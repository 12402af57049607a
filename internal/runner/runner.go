// Package runner executes update jobs concurrently through a bounded
// worker pool and streams results back in completion order.
package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang-ddnsd/internal/pkg/logging"
	"golang-ddnsd/internal/pkg/protocol"
	"golang-ddnsd/internal/port"
)

// Result is the terminal outcome of one job. Exactly one of Success and
// Err is set.
type Result struct {
	Runner  port.UpdateRunner
	Success *protocol.Success
	Err     error
}

// RunAll executes every runner once and returns a channel of results in
// completion order. All jobs are queued up front, then consumed by at
// most GOMAXPROCS workers; a job's delay blocks only its own worker. The
// channel is closed after the last result. A panic inside one job is
// recovered and reported as that job's failure so siblings keep running.
func RunAll(ctx context.Context, runners []port.UpdateRunner) <-chan Result {
	results := make(chan Result, len(runners))

	queue := make(chan port.UpdateRunner, len(runners))
	for _, r := range runners {
		queue <- r
	}
	close(queue)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(runners) {
		workers = len(runners)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range queue {
				results <- execute(ctx, r)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func execute(ctx context.Context, r port.UpdateRunner) (result Result) {
	defer func() {
		if p := recover(); p != nil {
			logging.WithComponentAndJob("runner", r.Job().PrettyName()).
				WithField("panic", p).Error("Update job panicked")
			result = Result{Runner: r, Err: fmt.Errorf("update job panicked: %v", p)}
		}
	}()

	success, err := r.Run(ctx)
	return Result{Runner: r, Success: success, Err: err}
}
