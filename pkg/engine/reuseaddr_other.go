//go:build !unix && !windows

package engine

import "syscall"

func setReuseAddr(_, _ string, _ syscall.RawConn) error {
	return nil
}
