//go:build darwin

package transport

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// setSocketOptions configures platform-specific socket options for
// macOS. SO_REUSEADDR and SO_REUSEPORT (both available on all macOS
// versions) let a channel rebind, and let several channel instances
// share, a local port pinned through Dial's localPort argument.
func setSocketOptions(fd uintptr) error {
	if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return fmt.Errorf("failed to set SO_REUSEADDR: %w", err)
	}

	if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		return fmt.Errorf("failed to set SO_REUSEPORT: %w", err)
	}

	return nil
}

// KernelVersion returns empty string on macOS; SO_REUSEPORT support
// doesn't vary by version there, unlike on Linux.
func KernelVersion() string {
	return ""
}
