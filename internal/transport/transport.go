// Package transport implements the non-blocking UDP sockets the engine
// drives directly: one connected socket per in-flight task, its file
// descriptor exposed for ares_fds/ares_getsock, its Send/Recv calls
// returning ErrWouldBlock instead of parking a goroutine. There is no
// background reader here — readiness is always established by the
// caller (or, in cmd/libcares, by whatever event loop owns the fd set)
// before Recv is attempted.
package transport

import caresErrors "github.com/caresgo/caresgo/internal/errors"

// Socket is the minimal non-blocking datagram socket the engine needs.
// *Conn is the real implementation; tests substitute *MockSocket.
type Socket interface {
	Fd() int
	Send(b []byte) (int, error)
	Recv(buf []byte) (int, error)
	Close() error
}

// ErrWouldBlock is returned by Send/Recv when the underlying
// non-blocking socket isn't ready. The caller should retry only after
// the fd next appears in a readiness set obtained from Fds/Getsock.
var ErrWouldBlock = &caresErrors.NetworkError{
	Operation: "socket I/O",
	Details:   "would block",
}
