// Package serverscsv parses the nameserver list ares_set_servers_csv and
// ares_set_servers_ports_csv take directly: comma- or newline-separated
// addresses, each optionally carrying its own port.
package serverscsv

import (
	"net"
	"strconv"
	"strings"

	caresErrors "github.com/caresgo/caresgo/internal/errors"
)

// DefaultPort is the port a server entry without an explicit one uses.
const DefaultPort = 53

// Server is one parsed nameserver entry. Port is 0 when the entry
// carried no explicit port — callers that need a concrete value should
// fall back to DefaultPort.
type Server struct {
	Addr net.IP
	Port uint16
}

// Parse splits s on commas and newlines and parses each non-empty,
// trimmed token as a server entry:
//
//	IP           -> no port (Port is 0)
//	IP:port      -> IPv4 with an explicit port
//	IPv6         -> no brackets, no port
//	[IPv6]:port  -> bracketed IPv6 with an explicit port
func Parse(s string) ([]Server, error) {
	var out []Server

	for _, tok := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' }) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		srv, err := parseOne(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, srv)
	}

	return out, nil
}

func parseOne(tok string) (Server, error) {
	if strings.HasPrefix(tok, "[") {
		return parseBracketed(tok)
	}

	// Bare IPv6 has multiple colons; a host:port pair has exactly one.
	if strings.Count(tok, ":") > 1 {
		ip := net.ParseIP(tok)
		if ip == nil {
			return Server{}, badServer(tok)
		}
		return Server{Addr: ip}, nil
	}

	host, portStr, found := strings.Cut(tok, ":")
	if !found {
		ip := net.ParseIP(tok)
		if ip == nil {
			return Server{}, badServer(tok)
		}
		return Server{Addr: ip}, nil
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return Server{}, badServer(tok)
	}
	port, err := parsePort(tok, portStr)
	if err != nil {
		return Server{}, err
	}
	return Server{Addr: ip, Port: port}, nil
}

func parseBracketed(tok string) (Server, error) {
	end := strings.Index(tok, "]")
	if end < 0 {
		return Server{}, badServer(tok)
	}
	ip := net.ParseIP(tok[1:end])
	if ip == nil {
		return Server{}, badServer(tok)
	}

	rest := tok[end+1:]
	if rest == "" {
		return Server{Addr: ip}, nil
	}
	if !strings.HasPrefix(rest, ":") {
		return Server{}, badServer(tok)
	}
	port, err := parsePort(tok, rest[1:])
	if err != nil {
		return Server{}, err
	}
	return Server{Addr: ip, Port: port}, nil
}

func parsePort(tok, portStr string) (uint16, error) {
	n, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return 0, &caresErrors.ValidationError{Field: "server", Value: tok, Message: "invalid port"}
	}
	return uint16(n), nil
}

func badServer(tok string) error {
	return &caresErrors.ValidationError{Field: "server", Value: tok, Message: "not a valid address"}
}
