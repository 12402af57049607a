package config

import (
	"fmt"
	"math"
	"net/netip"
	"sort"
	"strconv"
	"time"
)

// DefaultURL is the update endpoint used when a job does not set one.
const DefaultURL = "https://dyn.dns.he.net/nic/update"

// Defaults applied before per-job keys are read.
const (
	DefaultMaxTime      = 120 * time.Second
	DefaultRetryCount   = 30
	DefaultRetryMaxTime = 1800 * time.Second
)

// IPVersion constrains which IP family a job may use for its update.
type IPVersion int

const (
	IPAny IPVersion = 0
	IPv4  IPVersion = 4
	IPv6  IPVersion = 6
)

func (v IPVersion) String() string {
	switch v {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	default:
		return "any"
	}
}

// JobConfig is one concrete update job, produced by merging the defaults
// block with an updates entry and expanding ip_version. It is immutable
// after construction.
type JobConfig struct {
	Hostname  string
	Password  Secret
	IP        netip.Addr // zero value means "let the server pick"
	IPVersion IPVersion
	Interface string
	URL       string

	Delay          time.Duration
	ConnectTimeout time.Duration // zero means transport default
	MaxTime        time.Duration
	RetryCount     int
	RetryDelay     time.Duration // zero means transport default
	RetryMaxTime   time.Duration
}

// PrettyName is the human-readable label for reporting. It carries the IP
// family suffix for expanded jobs so the two halves of an "all" entry can
// be told apart.
func (j JobConfig) PrettyName() string {
	switch j.IPVersion {
	case IPv4:
		return j.Hostname + " (IPv4)"
	case IPv6:
		return j.Hostname + " (IPv6)"
	default:
		return j.Hostname
	}
}

// ValidationError reports a structurally valid configuration whose contents
// are not acceptable: wrong value type, bad enumerated value, unknown key.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Key == "" {
		return e.Reason
	}
	return fmt.Sprintf("key %q: %s", e.Key, e.Reason)
}

func validationErrorf(key, format string, args ...any) *ValidationError {
	return &ValidationError{Key: key, Reason: fmt.Sprintf(format, args...)}
}

// buildJobs turns one merged configuration map into its expanded jobs.
// ip_version is consumed first because a list there multiplies the entry
// into one job per family; every other key is then validated per branch so
// type errors are reported no matter which branch they land in.
func buildJobs(merged map[string]any) ([]JobConfig, error) {
	versions, err := expandVersions(merged["ip_version"])
	if err != nil {
		return nil, err
	}

	jobs := make([]JobConfig, 0, len(versions))
	for _, version := range versions {
		job, err := buildJob(merged, version)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// expandVersions interprets the ip_version key. "all" is shorthand for
// [4, 6]; a list produces one branch per member in list order.
func expandVersions(value any) ([]IPVersion, error) {
	switch v := value.(type) {
	case nil:
		return []IPVersion{IPAny}, nil
	case int:
		ver, err := versionFromInt(v)
		if err != nil {
			return nil, err
		}
		return []IPVersion{ver}, nil
	case string:
		switch v {
		case "any":
			return []IPVersion{IPAny}, nil
		case "all":
			return []IPVersion{IPv4, IPv6}, nil
		default:
			return nil, validationErrorf("ip_version", "must be 4, 6, a list of those, %q or %q, got %q", "all", "any", v)
		}
	case []any:
		versions := make([]IPVersion, 0, len(v))
		for _, member := range v {
			n, ok := member.(int)
			if !ok {
				return nil, validationErrorf("ip_version", "list members must be integers, got %T", member)
			}
			ver, err := versionFromInt(n)
			if err != nil {
				return nil, err
			}
			versions = append(versions, ver)
		}
		if len(versions) == 0 {
			return nil, validationErrorf("ip_version", "list must not be empty")
		}
		return versions, nil
	default:
		return nil, validationErrorf("ip_version", "unsupported value of type %T", value)
	}
}

func versionFromInt(n int) (IPVersion, error) {
	switch n {
	case 4:
		return IPv4, nil
	case 6:
		return IPv6, nil
	default:
		return IPAny, validationErrorf("ip_version", "must be 4 or 6, got %d", n)
	}
}

func buildJob(merged map[string]any, version IPVersion) (JobConfig, error) {
	job := JobConfig{
		IPVersion:    version,
		URL:          DefaultURL,
		MaxTime:      DefaultMaxTime,
		RetryCount:   DefaultRetryCount,
		RetryMaxTime: DefaultRetryMaxTime,
	}

	consumed := map[string]bool{"ip_version": true}
	take := func(key string) (any, bool) {
		consumed[key] = true
		v, ok := merged[key]
		return v, ok
	}

	if v, ok := take("hostname"); ok {
		s, err := asString("hostname", v)
		if err != nil {
			return JobConfig{}, err
		}
		job.Hostname = s
	}
	if job.Hostname == "" {
		return JobConfig{}, &ValidationError{Key: "hostname", Reason: "is required"}
	}

	if v, ok := take("password"); ok {
		s, err := asString("password", v)
		if err != nil {
			return JobConfig{}, err
		}
		job.Password = Secret(s)
	}

	if v, ok := take("ip"); ok {
		s, err := asString("ip", v)
		if err != nil {
			return JobConfig{}, err
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return JobConfig{}, validationErrorf("ip", "not a valid IP address: %q", s)
		}
		job.IP = addr
	}

	if v, ok := take("interface"); ok {
		s, err := asString("interface", v)
		if err != nil {
			return JobConfig{}, err
		}
		job.Interface = s
	}

	if v, ok := take("url"); ok {
		s, err := asString("url", v)
		if err != nil {
			return JobConfig{}, err
		}
		job.URL = s
	}

	if v, ok := take("delay"); ok {
		d, err := asSeconds("delay", v)
		if err != nil {
			return JobConfig{}, err
		}
		job.Delay = d
	}

	if v, ok := take("connect_timeout"); ok {
		d, err := asSeconds("connect_timeout", v)
		if err != nil {
			return JobConfig{}, err
		}
		job.ConnectTimeout = d
	}

	if v, ok := take("max_time"); ok {
		d, err := asSeconds("max_time", v)
		if err != nil {
			return JobConfig{}, err
		}
		job.MaxTime = d
	}

	if v, ok := take("retry"); ok {
		n, err := asInt("retry", v)
		if err != nil {
			return JobConfig{}, err
		}
		job.RetryCount = n
	}

	if v, ok := take("retry_delay"); ok {
		d, err := asSeconds("retry_delay", v)
		if err != nil {
			return JobConfig{}, err
		}
		job.RetryDelay = d
	}

	if v, ok := take("retry_max_time"); ok {
		d, err := asSeconds("retry_max_time", v)
		if err != nil {
			return JobConfig{}, err
		}
		job.RetryMaxTime = d
	}

	var unknown []string
	for key := range merged {
		if !consumed[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return JobConfig{}, validationErrorf("", "unrecognized configuration keys: %v", unknown)
	}

	return job, nil
}

func asString(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", validationErrorf(key, "must be a string, got %T", value)
	}
	return s, nil
}

// asNumber accepts native ints and floats as well as numeric strings.
// Integer-looking strings are parsed as integers so large counts do not
// lose precision through a float round trip.
func asNumber(key string, value any) (float64, error) {
	switch n := value.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return float64(i), nil
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, validationErrorf(key, "must be a number, got %q", n)
		}
		return f, nil
	default:
		return 0, validationErrorf(key, "must be a number, got %T", value)
	}
}

// asSeconds coerces a non-negative number of seconds into a duration.
func asSeconds(key string, value any) (time.Duration, error) {
	f, err := asNumber(key, value)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, validationErrorf(key, "must not be negative, got %v", f)
	}
	return time.Duration(f * float64(time.Second)), nil
}

// asInt coerces a non-negative integral number.
func asInt(key string, value any) (int, error) {
	f, err := asNumber(key, value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, validationErrorf(key, "must be an integer, got %v", f)
	}
	if f < 0 {
		return 0, validationErrorf(key, "must not be negative, got %v", f)
	}
	return int(f), nil
}
