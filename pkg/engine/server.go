package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rzarajczyk/actions-server/pkg/action"
	"github.com/rzarajczyk/actions-server/pkg/logging"
	"github.com/rzarajczyk/actions-server/pkg/response"
)

// DefaultThreadCount is the number of workers used when WithThreadCount is not given.
const DefaultThreadCount = 10

// Errors returned by NewServer and the lifecycle methods.
var (
	ErrInvalidThreadCount = errors.New("thread count must be at least 1")
	ErrInvalidPort        = errors.New("port must be between 0 and 65535")
	ErrNilAction          = errors.New("action must not be nil")
	ErrAlreadyRunning     = errors.New("server is already running")
	ErrServerStopped      = errors.New("server has been stopped")
)

type serverState int

const (
	stateIdle serverState = iota
	stateRunning
	stateStopped
)

// Server owns the listening socket and the workers sharing it.
type Server struct {
	listener   net.Listener
	dispatcher *Dispatcher
	workers    []*worker
	group      errgroup.Group
	log        *slog.Logger

	threads      int
	serializer   response.Serializer
	readTimeout    time.Duration
	writeTimeout   time.Duration
	maxHeaderBytes int

	mu    sync.Mutex
	state serverState

	// done is closed exactly once, by Stop, to release Start(true).
	done     chan struct{}
	doneOnce sync.Once
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithThreadCount sets the number of workers, and with it the maximum number
// of requests served concurrently.
func WithThreadCount(n int) ServerOption {
	return func(s *Server) {
		s.threads = n
	}
}

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSerializer sets the serializer used for every JSON body.
func WithSerializer(serializer response.Serializer) ServerOption {
	return func(s *Server) {
		if serializer != nil {
			s.serializer = serializer
		}
	}
}

// WithReadTimeout bounds the time a connection may take to deliver its
// request. Zero, the default, waits indefinitely.
func WithReadTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.readTimeout = d
	}
}

// WithWriteTimeout bounds the time spent writing a response. Zero, the
// default, waits indefinitely.
func WithWriteTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.writeTimeout = d
	}
}

// WithMaxHeaderBytes caps the size of the request line and headers. Larger
// requests are answered with 431. Zero or less keeps
// http.DefaultMaxHeaderBytes.
func WithMaxHeaderBytes(n int) ServerOption {
	return func(s *Server) {
		s.maxHeaderBytes = n
	}
}

// NewServer binds a socket on all interfaces at port and prepares the workers
// that will serve actions. Port 0 picks a free port; see Port. The order of
// actions is the match priority. Workers start on Start.
func NewServer(port int, actions []action.Action, opts ...ServerOption) (*Server, error) {
	s := &Server{
		log:        logging.Nop(),
		threads:    DefaultThreadCount,
		serializer: response.DefaultSerializer(),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.threads < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreadCount, s.threads)
	}
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPort, port)
	}
	routes := slices.Clone(actions)
	for i, a := range routes {
		if a == nil {
			return nil, fmt.Errorf("%w: index %d", ErrNilAction, i)
		}
	}

	s.log.Info("starting http server", "port", port, "threads", s.threads, "actions", len(routes))

	ln, err := listen(port)
	if err != nil {
		return nil, err
	}
	s.listener = ln

	s.dispatcher = NewDispatcher(routes, s.serializer, s.log)
	s.dispatcher.readTimeout = s.readTimeout
	s.dispatcher.writeTimeout = s.writeTimeout
	if s.maxHeaderBytes > 0 {
		s.dispatcher.maxHeaderBytes = s.maxHeaderBytes
	}

	s.workers = make([]*worker, s.threads)
	for i := range s.workers {
		s.workers[i] = &worker{
			id:         i,
			listener:   ln,
			dispatcher: s.dispatcher,
			log:        s.log.With("worker", i),
		}
	}
	return s, nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Port returns the TCP port the server is listening on.
func (s *Server) Port() int {
	if tcpAddr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return tcpAddr.Port
	}
	return 0
}

// ThreadCount returns the number of workers.
func (s *Server) ThreadCount() int {
	return len(s.workers)
}

// Done returns a channel that is closed once Stop has completed.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Start launches the workers. With blockCallerThread set it does not return
// until Stop has been called, typically from a signal handler or another
// goroutine.
func (s *Server) Start(blockCallerThread bool) error {
	s.mu.Lock()
	switch s.state {
	case stateRunning:
		s.mu.Unlock()
		return ErrAlreadyRunning
	case stateStopped:
		s.mu.Unlock()
		return ErrServerStopped
	}
	s.state = stateRunning
	for _, w := range s.workers {
		s.group.Go(w.run)
	}
	s.mu.Unlock()

	s.log.Info("server started", "addr", s.Addr().String(), "threads", len(s.workers))

	if blockCallerThread {
		<-s.done
	}
	return nil
}

// Stop shuts the server down: it marks every worker as shutting down, closes
// the listener, waits for the workers to return and releases Start(true).
// The returned error is the first fatal worker error, if any. Calling Stop
// again is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.state == stateStopped {
		s.mu.Unlock()
		return nil
	}
	wasRunning := s.state == stateRunning
	s.state = stateStopped
	s.mu.Unlock()

	s.log.Info("stopping server")

	for _, w := range s.workers {
		w.prepareShutdown()
	}

	var errs []error
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		errs = append(errs, fmt.Errorf("close listener: %w", err))
	}
	if wasRunning {
		if err := s.group.Wait(); err != nil {
			errs = append(errs, err)
		}
	}

	s.doneOnce.Do(func() { close(s.done) })
	s.log.Info("server stopped")

	return errors.Join(errs...)
}
