// Package httpclient is the infrastructure adapter that implements the
// Transport port over HTTP, using hashicorp/go-retryablehttp for the
// transport-level retry policy.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang-ddnsd/internal/pkg/config"
	"golang-ddnsd/internal/pkg/logging"
	"golang-ddnsd/internal/pkg/request"
	"golang-ddnsd/internal/port"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
)

// Response bodies are tiny status lines; anything past this is garbage.
const maxResponseBytes = 4 << 10

const defaultConnectTimeout = 30 * time.Second

// Client delivers update requests over HTTP. It is stateless and safe for
// concurrent use; each Do builds its own http.Client because dialer
// options (interface binding, family, timeouts) are per-request.
type Client struct{}

// Ensure Client implements the Transport port
var _ port.Transport = (*Client)(nil)

// New creates a new HTTP transport adapter.
func New() *Client {
	return &Client{}
}

// Do sends one update request and returns the raw response body. Retries
// on connection refusal and transient server errors are handled here
// according to the request options; HTTP statuses >= 400 on the final
// attempt are failures.
func (c *Client) Do(ctx context.Context, req request.Request) (string, error) {
	opts := req.Options

	if opts.RetryMaxTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.RetryMaxTime)
		defer cancel()
	}

	httpClient, err := c.newHTTPClient(opts)
	if err != nil {
		return "", err
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = httpClient
	client.Logger = leveledLogger{logging.WithComponent("transport")}
	client.RetryMax = 0
	if opts.RetryCount > 0 {
		client.RetryMax = opts.RetryCount
		if opts.RetryDelay > 0 {
			client.RetryWaitMin = opts.RetryDelay
			client.RetryWaitMax = opts.RetryDelay
		}
	}

	hreq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, opts.URL, req.Body)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", opts.URL, err)
	}
	hreq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(hreq)
	if err != nil {
		return "", fmt.Errorf("request to %s failed: %w", opts.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response from %s: %w", opts.URL, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("server returned %s", resp.Status)
	}
	return string(body), nil
}

// newHTTPClient builds the underlying http.Client for one request:
// connect timeout, overall deadline, IP family forcing and source
// interface binding.
func (c *Client) newHTTPClient(opts request.Options) (*http.Client, error) {
	dialer := &net.Dialer{Timeout: defaultConnectTimeout}
	if opts.ConnectTimeout > 0 {
		dialer.Timeout = opts.ConnectTimeout
	}

	if opts.Interface != "" {
		ip, err := sourceAddr(opts.Interface, opts.IPVersion)
		if err != nil {
			return nil, err
		}
		dialer.LocalAddr = &net.TCPAddr{IP: ip}
	}

	network := "tcp"
	switch opts.IPVersion {
	case config.IPv4:
		network = "tcp4"
	case config.IPv6:
		network = "tcp6"
	}

	transport := cleanhttp.DefaultPooledTransport()
	transport.DialContext = func(ctx context.Context, _, addr string) (net.Conn, error) {
		return dialer.DialContext(ctx, network, addr)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   opts.MaxTime,
	}, nil
}

// sourceAddr resolves an interface name to a usable source address of the
// requested family via netlink. Link-local addresses are skipped.
func sourceAddr(ifaceName string, version config.IPVersion) (net.IP, error) {
	link, err := netlink.LinkByName(ifaceName)
	if err != nil {
		return nil, fmt.Errorf("failed to get interface %s: %w", ifaceName, err)
	}

	family := netlink.FAMILY_ALL
	switch version {
	case config.IPv4:
		family = netlink.FAMILY_V4
	case config.IPv6:
		family = netlink.FAMILY_V6
	}

	addrs, err := netlink.AddrList(link, family)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses for interface %s: %w", ifaceName, err)
	}
	for _, addr := range addrs {
		if addr.IP.IsLinkLocalUnicast() {
			continue
		}
		return addr.IP, nil
	}
	return nil, fmt.Errorf("interface %s has no usable %s address", ifaceName, version)
}

// leveledLogger adapts a logrus entry to retryablehttp's LeveledLogger.
type leveledLogger struct {
	entry *logrus.Entry
}

func (l leveledLogger) fields(keysAndValues []interface{}) *logrus.Entry {
	entry := l.entry
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		entry = entry.WithField(key, keysAndValues[i+1])
	}
	return entry
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Error(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}
