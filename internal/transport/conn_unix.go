//go:build linux || darwin

package transport

import (
	"net"

	"golang.org/x/sys/unix"

	caresErrors "github.com/caresgo/caresgo/internal/errors"
)

// Conn is a non-blocking UDP socket connected to a single nameserver
// address, so Send needs no destination and Recv only ever returns
// datagrams from that one peer.
type Conn struct {
	fd int
}

// Dial creates a non-blocking UDP socket, optionally binds it to
// localPort (0 lets the kernel pick an ephemeral port), and connects it
// to raddr:port.
func Dial(raddr net.IP, port uint16, localPort uint16) (*Conn, error) {
	domain := unix.AF_INET
	if raddr.To4() == nil {
		domain = unix.AF_INET6
	}

	fd, err := unix.Socket(domain, unix.SOCK_DGRAM, unix.IPPROTO_UDP)
	if err != nil {
		return nil, &caresErrors.NetworkError{Operation: "create socket", Err: err}
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return nil, &caresErrors.NetworkError{Operation: "set non-blocking", Err: err}
	}
	if err := setSocketOptions(uintptr(fd)); err != nil {
		_ = unix.Close(fd)
		return nil, &caresErrors.NetworkError{Operation: "configure socket", Err: err}
	}

	if localPort != 0 {
		wildcard := net.IPv4zero
		if domain == unix.AF_INET6 {
			wildcard = net.IPv6unspecified
		}
		bindAddr, err := sockaddrFor(domain, wildcard, localPort)
		if err != nil {
			_ = unix.Close(fd)
			return nil, err
		}
		if err := unix.Bind(fd, bindAddr); err != nil {
			_ = unix.Close(fd)
			return nil, &caresErrors.NetworkError{Operation: "bind socket", Err: err}
		}
	}

	connAddr, err := sockaddrFor(domain, raddr, port)
	if err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	if err := unix.Connect(fd, connAddr); err != nil {
		_ = unix.Close(fd)
		return nil, &caresErrors.NetworkError{Operation: "connect socket", Err: err}
	}

	return &Conn{fd: fd}, nil
}

func sockaddrFor(domain int, ip net.IP, port uint16) (unix.Sockaddr, error) {
	if domain == unix.AF_INET {
		v4 := ip.To4()
		if v4 == nil {
			return nil, &caresErrors.ValidationError{Field: "address", Value: ip.String(), Message: "not an IPv4 address"}
		}
		var addr [4]byte
		copy(addr[:], v4)
		return &unix.SockaddrInet4{Port: int(port), Addr: addr}, nil
	}

	v6 := ip.To16()
	if v6 == nil {
		return nil, &caresErrors.ValidationError{Field: "address", Value: ip.String(), Message: "not an IPv6 address"}
	}
	var addr [16]byte
	copy(addr[:], v6)
	return &unix.SockaddrInet6{Port: int(port), Addr: addr}, nil
}

// Fd returns the raw socket descriptor, for ares_fds/ares_getsock.
func (c *Conn) Fd() int { return c.fd }

// Send writes one datagram to the connected peer. Returns
// ErrWouldBlock if the socket's send buffer is currently full.
func (c *Conn) Send(b []byte) (int, error) {
	n, err := unix.Write(c.fd, b)
	if isWouldBlock(err) {
		return 0, ErrWouldBlock
	}
	if err != nil {
		return 0, &caresErrors.NetworkError{Operation: "send query", Err: err}
	}
	return n, nil
}

// Recv reads one datagram into buf. Returns ErrWouldBlock if nothing is
// available yet.
func (c *Conn) Recv(buf []byte) (int, error) {
	n, err := unix.Read(c.fd, buf)
	if isWouldBlock(err) {
		return 0, ErrWouldBlock
	}
	if err != nil {
		return 0, &caresErrors.NetworkError{Operation: "receive response", Err: err}
	}
	return n, nil
}

func isWouldBlock(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}

// Close releases the socket.
func (c *Conn) Close() error {
	if err := unix.Close(c.fd); err != nil {
		return &caresErrors.NetworkError{Operation: "close socket", Err: err}
	}
	return nil
}

var _ Socket = (*Conn)(nil)
