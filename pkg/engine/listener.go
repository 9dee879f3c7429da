package engine

import (
	"context"
	"fmt"
	"net"
	"strconv"
)

// listen binds a TCP socket on all interfaces with address reuse enabled and
// puts it into listening state.
func listen(port int) (net.Listener, error) {
	lc := net.ListenConfig{Control: setReuseAddr}
	ln, err := lc.Listen(context.Background(), "tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}
	return ln, nil
}
