//go:build windows

package engine

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// soExclusiveAddrUse is SO_EXCLUSIVEADDRUSE, defined by winsock as ~SO_REUSEADDR.
const soExclusiveAddrUse = ^windows.SO_REUSEADDR

// setReuseAddr sets SO_EXCLUSIVEADDRUSE. On Windows SO_REUSEADDR lets other
// processes bind the same port; exclusive use is the closest equivalent of
// the unix option that still allows rebinding after a restart.
func setReuseAddr(_, _ string, c syscall.RawConn) error {
	var opErr error
	if err := c.Control(func(fd uintptr) {
		opErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, soExclusiveAddrUse, 1)
	}); err != nil {
		return err
	}
	return opErr
}
