package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-ddnsd/internal/adapter/infrastructure/httpclient"
	"golang-ddnsd/internal/adapter/update"
	"golang-ddnsd/internal/pkg/config"
	"golang-ddnsd/internal/pkg/logging"
	"golang-ddnsd/internal/pkg/metrics"
	"golang-ddnsd/internal/pkg/protocol"
	"golang-ddnsd/internal/port"
	"golang-ddnsd/internal/runner"

	"github.com/spf13/cobra"
)

var (
	configFlags   []string
	ignoreDelay   bool
	daemonMode    bool
	interval      time.Duration
	metricsListen string
)

const minInterval = 1 * time.Minute

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all configured dynamic-DNS updates",
	RunE: func(cmd *cobra.Command, args []string) error {
		var jobs []config.JobConfig
		var logCfg logging.LogConfig
		failedSources := 0

		// A broken config file aborts that source only; the remaining
		// sources still run.
		for _, path := range configFlags {
			set, err := config.LoadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
				failedSources++
				continue
			}
			if logCfg == (logging.LogConfig{}) {
				logCfg = set.Logging
			}
			jobs = append(jobs, set.Jobs...)
		}

		logging.InitLogger(logCfg)
		logger := logging.GetLogger()

		var collector *metrics.Collector
		if metricsListen != "" {
			collector = metrics.NewCollector()
			go func() {
				if err := metrics.Serve(metricsListen); err != nil {
					logger.WithError(err).Error("Metrics listener failed")
				}
			}()
		}

		transport := httpclient.New()
		var runners []port.UpdateRunner
		for _, job := range jobs {
			var opts []update.Option
			if ignoreDelay {
				opts = append(opts, update.SkipDelay())
			}
			var r port.UpdateRunner = update.NewExecutor(job, transport, opts...)
			if collector != nil {
				r = &timedRunner{UpdateRunner: r, collector: collector}
			}
			runners = append(runners, r)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigChan
			logger.WithField("signal", sig.String()).Info("Received shutdown signal")
			cancel()
		}()

		if len(runners) > 0 {
			runOnce(ctx, runners)

			if daemonMode {
				if interval < minInterval {
					interval = minInterval
				}
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						logger.Info("Daemon stopped")
						return exitError(failedSources)
					case <-ticker.C:
						runOnce(ctx, runners)
					}
				}
			}
		} else {
			logger.Warn("No update jobs configured")
		}

		return exitError(failedSources)
	},
}

// runOnce executes every job once and prints each result as it completes.
func runOnce(ctx context.Context, runners []port.UpdateRunner) {
	for res := range runner.RunAll(ctx, runners) {
		name := res.Runner.Job().PrettyName()
		if res.Err != nil {
			logging.WithComponentAndJob("run", name).WithError(res.Err).Error("Update failed")
			fmt.Printf("%s: failed: %v\n", name, res.Err)
			continue
		}
		fmt.Printf("%s: %s\n", name, res.Success)
	}
}

// Job outcomes never affect the exit status; only pre-execution
// configuration failures do.
func exitError(failedSources int) error {
	if failedSources > 0 {
		return fmt.Errorf("%d configuration source(s) could not be loaded", failedSources)
	}
	return nil
}

// timedRunner decorates an UpdateRunner with outcome metrics.
type timedRunner struct {
	port.UpdateRunner
	collector *metrics.Collector
}

func (t *timedRunner) Run(ctx context.Context) (*protocol.Success, error) {
	start := time.Now()
	success, err := t.UpdateRunner.Run(ctx)
	t.collector.RecordOutcome(t.Job().PrettyName(), outcomeLabel(success, err), time.Since(start).Seconds())
	return success, err
}

func outcomeLabel(success *protocol.Success, err error) string {
	if err == nil {
		return string(success.Kind)
	}
	var intervalErr *protocol.IntervalError
	var unsupportedErr *protocol.UnsupportedError
	var parseErr *protocol.ParseError
	switch {
	case errors.As(err, &intervalErr):
		return "interval"
	case errors.As(err, &unsupportedErr):
		return "unsupported"
	case errors.As(err, &parseErr):
		return "malformed"
	default:
		return "transport_error"
	}
}

func init() {
	runCmd.Flags().StringArrayVarP(&configFlags, "config", "f", nil, "Path to config file (YAML), repeatable")
	runCmd.Flags().BoolVar(&ignoreDelay, "ignore-delay", false, "Skip per-job delays")
	runCmd.Flags().BoolVarP(&daemonMode, "daemon", "d", false, "Keep running, repeating updates on an interval")
	runCmd.Flags().DurationVar(&interval, "interval", 10*time.Minute, "Update interval in daemon mode (minimum 1m)")
	runCmd.Flags().StringVar(&metricsListen, "metrics-listen", "", "Address to expose Prometheus metrics on (e.g. :9100)")
	if err := runCmd.MarkFlagRequired("config"); err != nil {
		panic(err) // This should never happen during initialization
	}
	rootCmd.AddCommand(runCmd)
}
