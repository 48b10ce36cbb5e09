//go:build windows

package transport

import (
	"net"

	"golang.org/x/sys/windows"

	caresErrors "github.com/caresgo/caresgo/internal/errors"
)

// Conn is a non-blocking UDP socket connected to a single nameserver
// address, mirroring the unix implementation on top of the Winsock API.
type Conn struct {
	handle windows.Handle
}

// Dial creates a non-blocking UDP socket, optionally binds it to
// localPort, and connects it to raddr:port.
func Dial(raddr net.IP, port uint16, localPort uint16) (*Conn, error) {
	domain := windows.AF_INET
	if raddr.To4() == nil {
		domain = windows.AF_INET6
	}

	h, err := windows.Socket(domain, windows.SOCK_DGRAM, windows.IPPROTO_UDP)
	if err != nil {
		return nil, &caresErrors.NetworkError{Operation: "create socket", Err: err}
	}
	if err := setSocketOptions(uintptr(h)); err != nil {
		_ = windows.Closesocket(h)
		return nil, &caresErrors.NetworkError{Operation: "configure socket", Err: err}
	}
	var nonblock uint32 = 1
	if err := windows.IoctlSocket(h, windows.FIONBIO, &nonblock); err != nil {
		_ = windows.Closesocket(h)
		return nil, &caresErrors.NetworkError{Operation: "set non-blocking", Err: err}
	}

	if localPort != 0 {
		wildcard := net.IPv4zero
		if domain == windows.AF_INET6 {
			wildcard = net.IPv6unspecified
		}
		bindAddr, err := sockaddrFor(domain, wildcard, localPort)
		if err != nil {
			_ = windows.Closesocket(h)
			return nil, err
		}
		if err := windows.Bind(h, bindAddr); err != nil {
			_ = windows.Closesocket(h)
			return nil, &caresErrors.NetworkError{Operation: "bind socket", Err: err}
		}
	}

	connAddr, err := sockaddrFor(domain, raddr, port)
	if err != nil {
		_ = windows.Closesocket(h)
		return nil, err
	}
	if err := windows.Connect(h, connAddr); err != nil {
		_ = windows.Closesocket(h)
		return nil, &caresErrors.NetworkError{Operation: "connect socket", Err: err}
	}

	return &Conn{handle: h}, nil
}

func sockaddrFor(domain int, ip net.IP, port uint16) (windows.Sockaddr, error) {
	if domain == windows.AF_INET {
		v4 := ip.To4()
		if v4 == nil {
			return nil, &caresErrors.ValidationError{Field: "address", Value: ip.String(), Message: "not an IPv4 address"}
		}
		var addr [4]byte
		copy(addr[:], v4)
		return &windows.SockaddrInet4{Port: int(port), Addr: addr}, nil
	}

	v6 := ip.To16()
	if v6 == nil {
		return nil, &caresErrors.ValidationError{Field: "address", Value: ip.String(), Message: "not an IPv6 address"}
	}
	var addr [16]byte
	copy(addr[:], v6)
	return &windows.SockaddrInet6{Port: int(port), Addr: addr}, nil
}

// Fd returns the raw socket handle, for ares_fds/ares_getsock.
func (c *Conn) Fd() int { return int(c.handle) }

// Send writes one datagram to the connected peer. Returns
// ErrWouldBlock if the socket's send buffer is currently full.
func (c *Conn) Send(b []byte) (int, error) {
	n, err := windows.Write(windows.Handle(c.handle), b)
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
	n, err := windows.Read(windows.Handle(c.handle), buf)
	if isWouldBlock(err) {
		return 0, ErrWouldBlock
	}
	if err != nil {
		return 0, &caresErrors.NetworkError{Operation: "receive response", Err: err}
	}
	return n, nil
}

func isWouldBlock(err error) bool {
	return err == windows.WSAEWOULDBLOCK
}

// Close releases the socket.
func (c *Conn) Close() error {
	if err := windows.Closesocket(c.handle); err != nil {
		return &caresErrors.NetworkError{Operation: "close socket", Err: err}
	}
	return nil
}

var _ Socket = (*Conn)(nil)
