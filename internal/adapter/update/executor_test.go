//go:build unit

package update

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"golang-ddnsd/internal/mock"
	"golang-ddnsd/internal/pkg/config"
	"golang-ddnsd/internal/pkg/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testJob() config.JobConfig {
	return config.JobConfig{
		Hostname: "h.example",
		Password: config.Secret("p"),
		URL:      config.DefaultURL,
	}
}

func TestExecutor_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		transport := mock.NewMockTransport(ctrl)
		transport.EXPECT().
			Do(ctx, gomock.Any()).
			Return("good 203.0.113.5", nil).
			Times(1)

		executor := NewExecutor(testJob(), transport)
		outcome, err := executor.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, protocol.StatusGood, outcome.Kind)
		assert.Equal(t, netip.MustParseAddr("203.0.113.5"), outcome.Addr)
	})

	t.Run("TransportFailure", func(t *testing.T) {
		transport := mock.NewMockTransport(ctrl)
		transport.EXPECT().
			Do(ctx, gomock.Any()).
			Return("", assert.AnError).
			Times(1)

		executor := NewExecutor(testJob(), transport)
		_, err := executor.Run(ctx)
		require.Error(t, err)

		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, "h.example", terr.Job)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("IntervalReportedNotRetried", func(t *testing.T) {
		transport := mock.NewMockTransport(ctrl)
		transport.EXPECT().
			Do(ctx, gomock.Any()).
			Return("interval 30", nil).
			Times(1)

		executor := NewExecutor(testJob(), transport)
		_, err := executor.Run(ctx)
		var ierr *protocol.IntervalError
		assert.ErrorAs(t, err, &ierr)
	})

	t.Run("UnsupportedReported", func(t *testing.T) {
		transport := mock.NewMockTransport(ctrl)
		transport.EXPECT().
			Do(ctx, gomock.Any()).
			Return("badauth", nil).
			Times(1)

		executor := NewExecutor(testJob(), transport)
		_, err := executor.Run(ctx)
		var uerr *protocol.UnsupportedError
		assert.ErrorAs(t, err, &uerr)
	})

	t.Run("MalformedAddressSurfaces", func(t *testing.T) {
		transport := mock.NewMockTransport(ctrl)
		transport.EXPECT().
			Do(ctx, gomock.Any()).
			Return("good not-an-ip", nil).
			Times(1)

		executor := NewExecutor(testJob(), transport)
		_, err := executor.Run(ctx)
		var perr *protocol.ParseError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestExecutor_Delay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("SkipDelayOverride", func(t *testing.T) {
		job := testJob()
		job.Delay = time.Hour

		transport := mock.NewMockTransport(ctrl)
		transport.EXPECT().
			Do(gomock.Any(), gomock.Any()).
			Return("nochg 203.0.113.5", nil).
			Times(1)

		executor := NewExecutor(job, transport, SkipDelay())
		start := time.Now()
		_, err := executor.Run(context.Background())
		require.NoError(t, err)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("DelayHonored", func(t *testing.T) {
		job := testJob()
		job.Delay = 50 * time.Millisecond

		transport := mock.NewMockTransport(ctrl)
		transport.EXPECT().
			Do(gomock.Any(), gomock.Any()).
			Return("good 203.0.113.5", nil).
			Times(1)

		executor := NewExecutor(job, transport)
		start := time.Now()
		_, err := executor.Run(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("CancelledDuringDelay", func(t *testing.T) {
		job := testJob()
		job.Delay = time.Hour

		// The transport must never be invoked.
		transport := mock.NewMockTransport(ctrl)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		executor := NewExecutor(job, transport)
		_, err := executor.Run(ctx)
		require.Error(t, err)

		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestExecutor_Job(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	job := testJob()
	executor := NewExecutor(job, mock.NewMockTransport(ctrl))
	assert.Equal(t, job, executor.Job())
}
