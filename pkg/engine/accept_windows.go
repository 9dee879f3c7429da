//go:build windows

package engine

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isResourceExhausted reports accept errors caused by a momentary shortage
// of sockets or buffers, or by a peer that gave up before being accepted.
func isResourceExhausted(err error) bool {
	for _, errno := range []error{windows.WSAEMFILE, windows.WSAENOBUFS, windows.WSAECONNABORTED, windows.WSAECONNRESET} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
