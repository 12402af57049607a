//go:build unit

package protocol

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("Good", func(t *testing.T) {
		outcome, err := Classify("good 203.0.113.5")
		require.NoError(t, err)
		assert.Equal(t, StatusGood, outcome.Kind)
		assert.Equal(t, netip.MustParseAddr("203.0.113.5"), outcome.Addr)
	})

	t.Run("GoodIPv6", func(t *testing.T) {
		outcome, err := Classify("good 2001:db8::1")
		require.NoError(t, err)
		assert.Equal(t, StatusGood, outcome.Kind)
		assert.Equal(t, netip.MustParseAddr("2001:db8::1"), outcome.Addr)
	})

	t.Run("NoChange", func(t *testing.T) {
		outcome, err := Classify("nochg 203.0.113.5")
		require.NoError(t, err)
		assert.Equal(t, StatusNoChange, outcome.Kind)
		assert.Equal(t, netip.MustParseAddr("203.0.113.5"), outcome.Addr)
	})

	t.Run("OnlyFirstLineMatters", func(t *testing.T) {
		outcome, err := Classify("good 203.0.113.5\r\nextra detail\n")
		require.NoError(t, err)
		assert.Equal(t, netip.MustParseAddr("203.0.113.5"), outcome.Addr)
	})

	t.Run("Interval", func(t *testing.T) {
		_, err := Classify("interval 30")
		var ierr *IntervalError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "interval 30", ierr.Raw)
	})

	t.Run("UnsupportedStatus", func(t *testing.T) {
		_, err := Classify("badstatus x")
		var uerr *UnsupportedError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, "badstatus", uerr.Status)
	})

	t.Run("UnsupportedKeepsRaw", func(t *testing.T) {
		_, err := Classify("abuse blocked for h.example")
		var uerr *UnsupportedError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, "abuse blocked for h.example", uerr.Raw)
	})

	t.Run("MalformedAddress", func(t *testing.T) {
		_, err := Classify("good not-an-ip")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("GoodWithoutDetail", func(t *testing.T) {
		_, err := Classify("good")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Classify("")
		var uerr *UnsupportedError
		require.ErrorAs(t, err, &uerr)
	})
}
