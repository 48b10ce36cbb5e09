package channel

import (
	"time"

	caresErrors "github.com/caresgo/caresgo/internal/errors"
	"github.com/caresgo/caresgo/internal/metrics"
	"github.com/caresgo/caresgo/internal/serverscsv"
)

// Config holds everything a Channel needs to submit and drive queries:
// where to send them, how long to wait, and how many times to retry.
// New populates it from /etc/resolv.conf (falling back to built-in
// defaults if that file is absent or unparseable) and then applies any
// Options on top, exactly as ares_init followed by ares_init_options
// layers explicit settings over the system configuration.
type Config struct {
	Servers  []serverscsv.Server
	UDPPort  uint16
	TCPPort  uint16
	Timeout  time.Duration
	Attempts int
	Ndots    int
	Rotate   bool
	Inet6    bool
	EDNS0    bool
	UseVC    bool

	metrics *metrics.Recorder
}

// DefaultUDPPort and DefaultTCPPort are used when no server entry or
// functional option carries its own port.
const (
	DefaultUDPPort = 53
	DefaultTCPPort = 53
)

func defaultConfig() Config {
	return Config{
		UDPPort:  DefaultUDPPort,
		TCPPort:  DefaultTCPPort,
		Timeout:  5 * time.Second,
		Attempts: 4,
	}
}

// Option configures a Channel at construction time. Applying an Option
// after New has returned has no effect; build the full set and pass it
// to New.
type Option func(*Config) error

// WithTimeout overrides how long a task waits for a reply before the
// timeout sweep completes it with ARES_ETIMEOUT. A caller-supplied
// timeout always wins over the resolv.conf "options timeout:N" value,
// matching ares_init_options layering explicit settings over the parsed
// system configuration.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return &caresErrors.ValidationError{Field: "timeout", Value: d, Message: "must be positive"}
		}
		c.Timeout = d
		return nil
	}
}

// WithServers replaces the nameserver list. Only the first entry is
// ever contacted (see DESIGN.md).
func WithServers(servers ...string) Option {
	return func(c *Config) error {
		var parsed []serverscsv.Server
		for _, s := range servers {
			one, err := serverscsv.Parse(s)
			if err != nil {
				return err
			}
			parsed = append(parsed, one...)
		}
		if len(parsed) == 0 {
			return &caresErrors.ValidationError{Field: "servers", Message: "at least one server is required"}
		}
		c.Servers = parsed
		return nil
	}
}

// WithUDPPort overrides the port used for servers that didn't specify
// their own.
func WithUDPPort(port uint16) Option {
	return func(c *Config) error {
		c.UDPPort = port
		return nil
	}
}

// WithTCPPort overrides the TCP fallback port (use_vc). Stub resolvers
// that never fall back to TCP still accept this for C ABI compatibility.
func WithTCPPort(port uint16) Option {
	return func(c *Config) error {
		c.TCPPort = port
		return nil
	}
}

// WithNdots sets the dot-count threshold resolv.conf's "ndots" option
// names. caresgo stores it for parity with ares_options but does not
// perform search-domain expansion (see DESIGN.md).
func WithNdots(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return &caresErrors.ValidationError{Field: "ndots", Value: n, Message: "must be non-negative"}
		}
		c.Ndots = n
		return nil
	}
}

// WithAttempts sets how many times a task is retried before giving up.
// caresgo tracks this value for ares_options parity; retries beyond the
// first attempt are a Non-goal (see DESIGN.md).
func WithAttempts(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return &caresErrors.ValidationError{Field: "attempts", Value: n, Message: "must be positive"}
		}
		c.Attempts = n
		return nil
	}
}

// WithRotate enables round-robin nameserver selection. No-op today
// since only a single nameserver is ever contacted (see DESIGN.md); the
// flag is accepted and stored for ares_options parity.
func WithRotate(enabled bool) Option {
	return func(c *Config) error {
		c.Rotate = enabled
		return nil
	}
}

// WithInet6 sets resolv.conf's "inet6" flag. It is stored for
// ares_options parity only: GetHostByName picks A or AAAA from its
// family argument alone and never reads this flag.
func WithInet6(enabled bool) Option {
	return func(c *Config) error {
		c.Inet6 = enabled
		return nil
	}
}

// WithEDNS0 is stored for ares_options parity; caresgo's wire codec does
// not emit an OPT pseudo-record (see DESIGN.md).
func WithEDNS0(enabled bool) Option {
	return func(c *Config) error {
		c.EDNS0 = enabled
		return nil
	}
}

// WithUseVC forces TCP instead of UDP. Stored for ares_options parity;
// caresgo's transport is UDP-only (see DESIGN.md).
func WithUseVC(enabled bool) Option {
	return func(c *Config) error {
		c.UseVC = enabled
		return nil
	}
}

// WithMetrics attaches a Prometheus recorder; every query submitted
// after this option increments/observes against it.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(c *Config) error {
		c.metrics = rec
		return nil
	}
}
