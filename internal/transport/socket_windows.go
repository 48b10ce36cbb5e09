//go:build windows

package transport

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// setSocketOptions configures platform-specific socket options for
// Windows. Windows has no SO_REUSEPORT; SO_REUSEADDR there already
// permits multiple binds to the same port, so it's the only option a
// channel needs to rebind, or share, a local port pinned through Dial's
// localPort argument.
func setSocketOptions(fd uintptr) error {
	if err := windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1); err != nil {
		return fmt.Errorf("failed to set SO_REUSEADDR: %w", err)
	}
	return nil
}

// KernelVersion returns empty string on Windows; socket option
// support doesn't vary by version there the way SO_REUSEPORT did on
// older Linux kernels.
func KernelVersion() string {
	return ""
}
