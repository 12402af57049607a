// Package request turns a job configuration into the wire request and the
// transport options needed to deliver it.
package request

import (
	"net/url"
	"time"

	"golang-ddnsd/internal/pkg/config"
)

// Request is one ready-to-send update: the form-encoded body plus the
// options the transport needs to deliver it.
type Request struct {
	Body    []byte
	Options Options
}

// Options carries the transport invocation parameters derived from a job.
// Zero durations mean "transport default"; RetryCount zero disables
// transport-level retries entirely.
type Options struct {
	URL       string
	Interface string
	IPVersion config.IPVersion

	ConnectTimeout time.Duration
	MaxTime        time.Duration

	RetryCount   int
	RetryDelay   time.Duration
	RetryMaxTime time.Duration
}

// Build produces the update request for job. The body carries exactly
// hostname, password and, when the job pins an address, myip.
func Build(job config.JobConfig) Request {
	form := url.Values{}
	form.Set("hostname", job.Hostname)
	form.Set("password", job.Password.Value())
	if job.IP.IsValid() {
		form.Set("myip", job.IP.String())
	}

	return Request{
		Body: []byte(form.Encode()),
		Options: Options{
			URL:            job.URL,
			Interface:      job.Interface,
			IPVersion:      job.IPVersion,
			ConnectTimeout: job.ConnectTimeout,
			MaxTime:        job.MaxTime,
			RetryCount:     job.RetryCount,
			RetryDelay:     job.RetryDelay,
			RetryMaxTime:   job.RetryMaxTime,
		},
	}
}
