//go:build linux

package transport

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// setSocketOptions configures platform-specific socket options for
// Linux. SO_REUSEADDR lets a socket rebind to a local port pinned
// through Dial's localPort argument across restarts; SO_REUSEPORT (kernel 3.9+) lets
// several channel instances share that same pinned port.
func setSocketOptions(fd uintptr) error {
	if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return fmt.Errorf("failed to set SO_REUSEADDR: %w", err)
	}

	if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		// Kernels older than 3.9 lack SO_REUSEPORT; fall back to
		// SO_REUSEADDR alone.
		if err != unix.ENOPROTOOPT {
			return fmt.Errorf("failed to set SO_REUSEPORT: %w", err)
		}
	}

	return nil
}

// KernelVersion returns the running Linux kernel's release string, for
// callers that want to log it alongside SO_REUSEPORT availability.
// Format: "3.10.0-1160.el7.x86_64"
func KernelVersion() string {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return "unknown"
	}

	// Convert [65]int8 to string
	release := make([]byte, 0, 65)
	for _, b := range uname.Release {
		if b == 0 {
			break
		}
		release = append(release, byte(b))
	}

	return string(release)
}
