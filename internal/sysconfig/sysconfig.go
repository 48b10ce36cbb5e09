// Package sysconfig parses a resolv.conf-style configuration into the
// defaults a Channel falls back to when a caller doesn't override them
// with a functional option: nameservers, search domains, and the
// ndots/attempts/timeout/rotate/inet6/edns0/use-vc option set.
package sysconfig

import (
	"strconv"
	"strings"

	caresErrors "github.com/caresgo/caresgo/internal/errors"
)

// Options holds the "options ..." line's settings, with the same
// defaults resolv.conf itself assumes when the line is absent.
type Options struct {
	Ndots       uint32
	Attempts    uint32
	TimeoutSecs uint64
	UseVC       bool
	Rotate      bool
	Inet6       bool
	EDNS0       bool
}

// DefaultOptions returns the resolv.conf built-in defaults.
func DefaultOptions() Options {
	return Options{Attempts: 4, TimeoutSecs: 5}
}

// Config is the parsed form of a resolv.conf file.
type Config struct {
	Nameservers []string
	Domain      string
	Search      []string
	Options     Options
}

// Parse reads resolv.conf grammar: "nameserver", "domain", "search",
// and "options" keyword lines, "#" or ";" trailing comments, and blank
// lines. Unknown keyword lines and unknown option tokens are ignored,
// matching resolv.conf's own tolerance for vendor extensions.
func Parse(text string) (*Config, error) {
	conf := &Config{Options: DefaultOptions()}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		keyword := fields[0]
		rest := fields[1:]
		switch keyword {
		case "nameserver", "domain", "search", "options":
		default:
			continue
		}
		if len(rest) == 0 {
			return nil, &caresErrors.ValidationError{
				Field:   keyword,
				Message: "missing value",
			}
		}

		switch keyword {
		case "nameserver":
			conf.Nameservers = append(conf.Nameservers, rest...)
		case "domain":
			conf.Domain = rest[0]
		case "search":
			conf.Search = append(conf.Search, rest...)
		case "options":
			if err := parseOptions(&conf.Options, rest); err != nil {
				return nil, err
			}
		}
	}

	return conf, nil
}

func stripComment(line string) string {
	idx := strings.IndexAny(line, ";#")
	if idx < 0 {
		return line
	}
	return line[:idx]
}

func parseOptions(opts *Options, tokens []string) error {
	for _, tok := range tokens {
		key, val, found := strings.Cut(tok, "=")
		if !found {
			key, val, found = strings.Cut(tok, ":")
		}
		if !found {
			key, val = tok, ""
		}

		switch key {
		case "ndots":
			n, err := takeNumArg(key, val)
			if err != nil {
				return err
			}
			opts.Ndots = uint32(n)
		case "attempts":
			n, err := takeNumArg(key, val)
			if err != nil {
				return err
			}
			opts.Attempts = uint32(n)
		case "timeout", "retrans":
			n, err := takeNumArg(key, val)
			if err != nil {
				return err
			}
			opts.TimeoutSecs = n
		case "use-vc", "usevc":
			opts.UseVC = true
		case "rotate":
			opts.Rotate = true
		case "inet6":
			opts.Inet6 = true
		case "edns0":
			opts.EDNS0 = true
		}
	}
	return nil
}

func takeNumArg(keyword, val string) (uint64, error) {
	if val == "" {
		return 0, &caresErrors.ValidationError{Field: keyword, Message: "missing value"}
	}
	n, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, &caresErrors.ValidationError{Field: keyword, Value: val, Message: "invalid number"}
	}
	return n, nil
}
