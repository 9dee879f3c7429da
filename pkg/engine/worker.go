package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync/atomic"
	"time"
)

// Bounds of the pause after a transient accept failure, as in net/http.
const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

// worker accepts connections from the shared listener and serves them one at
// a time.
type worker struct {
	id           int
	listener     net.Listener
	dispatcher   *Dispatcher
	log          *slog.Logger
	shuttingDown atomic.Bool
}

// run is the accept loop. It returns nil once the listener is closed after
// prepareShutdown. Transient accept failures, such as running out of file
// descriptors, are retried with backoff; any other failure seen before
// shutdown is returned.
func (w *worker) run() error {
	w.log.Debug("worker started")
	var backoff time.Duration
	for {
		conn, err := w.listener.Accept()
		if err != nil {
			if w.shuttingDown.Load() {
				w.log.Debug("worker stopped")
				return nil
			}
			if isTransientAccept(err) {
				backoff = nextBackoff(backoff)
				w.log.Warn("accept failed, retrying", "error", err, "retry_in", backoff)
				time.Sleep(backoff)
				continue
			}
			w.log.Error("accept failed, worker exiting", "error", err)
			return fmt.Errorf("worker %d: accept: %w", w.id, err)
		}
		backoff = 0
		w.dispatcher.ServeConn(conn)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptBackoff
	}
	return min(2*d, maxAcceptBackoff)
}

// isTransientAccept reports whether a failed Accept may succeed if retried.
func isTransientAccept(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return isResourceExhausted(err)
}

// prepareShutdown marks the worker so that the accept error caused by closing
// the listener is treated as a clean exit.
func (w *worker) prepareShutdown() {
	w.shuttingDown.Store(true)
}
