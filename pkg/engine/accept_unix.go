//go:build unix

package engine

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isResourceExhausted reports accept errors caused by a momentary shortage
// of descriptors or buffers, or by a peer that gave up before being accepted.
func isResourceExhausted(err error) bool {
	for _, errno := range []error{unix.EMFILE, unix.ENFILE, unix.ENOBUFS, unix.ENOMEM, unix.ECONNABORTED} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
