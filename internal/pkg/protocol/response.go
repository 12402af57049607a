// Package protocol classifies the plaintext responses of dyn.dns.he.net
// compatible update APIs.
//
// Responses are single-line (sometimes multi-line) status texts. Only the
// first line matters: it starts with a status word, optionally followed by
// a detail after a single space. "good" and "nochg" carry the resulting
// address as detail.
package protocol

import (
	"fmt"
	"net/netip"
	"strings"
)

// Status is the first word of an update response.
type Status string

const (
	StatusGood     Status = "good"
	StatusNoChange Status = "nochg"
	StatusInterval Status = "interval"
)

// Success is the outcome of an accepted update. Kind is StatusGood when
// the record changed and StatusNoChange when it already held the address.
type Success struct {
	Kind Status
	Addr netip.Addr
}

func (s *Success) String() string {
	if s.Kind == StatusNoChange {
		return fmt.Sprintf("unchanged (%s)", s.Addr)
	}
	return fmt.Sprintf("updated to %s", s.Addr)
}

// IntervalError reports that the server rejected the update because it is
// being asked too frequently. Retrying at the transport level cannot fix
// this; the caller has to slow down.
type IntervalError struct {
	Raw string
}

func (e *IntervalError) Error() string {
	return "server rejected update: updating too frequently (interval)"
}

// UnsupportedError reports a status word this client does not know. It
// usually means bad credentials, a bad hostname, or an API change.
type UnsupportedError struct {
	Status string
	Raw    string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported server response %q", strings.TrimSpace(e.Raw))
}

// ParseError reports a response whose status promised an address but whose
// detail did not parse as one.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed server response %q: %v", strings.TrimSpace(e.Raw), e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Classify parses the first line of raw into a typed outcome. Interval and
// unknown statuses come back as *IntervalError and *UnsupportedError; a
// good/nochg response with an unparseable address is a *ParseError.
func Classify(raw string) (*Success, error) {
	line := raw
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimRight(line, "\r")

	status, detail, _ := strings.Cut(line, " ")
	switch Status(status) {
	case StatusGood, StatusNoChange:
		addr, err := netip.ParseAddr(detail)
		if err != nil {
			return nil, &ParseError{Raw: raw, Err: err}
		}
		return &Success{Kind: Status(status), Addr: addr}, nil
	case StatusInterval:
		return nil, &IntervalError{Raw: raw}
	default:
		return nil, &UnsupportedError{Status: status, Raw: raw}
	}
}
