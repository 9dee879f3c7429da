package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rzarajczyk/actions-server/pkg/action"
	"github.com/rzarajczyk/actions-server/pkg/logging"
	"github.com/rzarajczyk/actions-server/pkg/response"
)

// Kind classifies the outcome of a dispatched request for logging.
type Kind string

// Outcome kinds.
const (
	KindOK         Kind = "ok"
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindInternal   Kind = "internal"
)

// notFoundMessage is the error message of the 404 sent when no action matches.
const notFoundMessage = "File not found"

// Dispatcher turns a request into a response using an ordered, read-only
// list of actions. It is safe for concurrent use by all workers.
type Dispatcher struct {
	actions      []action.Action
	serializer   response.Serializer
	log          *slog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration

	// maxHeaderBytes caps the request line and headers, like
	// http.Server.MaxHeaderBytes.
	maxHeaderBytes int
}

// NewDispatcher creates a Dispatcher over actions. The slice is used as is and
// must not be modified afterwards.
func NewDispatcher(actions []action.Action, serializer response.Serializer, log *slog.Logger) *Dispatcher {
	if serializer == nil {
		serializer = response.DefaultSerializer()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Dispatcher{
		actions:        actions,
		serializer:     serializer,
		log:            log,
		maxHeaderBytes: http.DefaultMaxHeaderBytes,
	}
}

// Dispatch parses target, selects the first action matching the request and
// invokes it. It always returns a response; err is the failure behind a 400
// or 500 response and is nil otherwise.
func (d *Dispatcher) Dispatch(method, target string, body []byte) (resp response.Response, kind Kind, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panicked: %v", r)
			resp, kind = response.InternalError(fmt.Sprint(r)), KindInternal
		}
	}()

	path, params, err := action.ParseTarget(target)
	if err != nil {
		return response.BadRequest(err.Error()), KindValidation, err
	}

	req := &action.Request{
		Method: method,
		Path:   path,
		Params: params,
		Body:   body,
	}

	for _, a := range d.actions {
		if a.Match(req) {
			return d.invoke(a, req)
		}
	}
	return response.NotFound(notFoundMessage), KindNotFound, nil
}

func (d *Dispatcher) invoke(a action.Action, req *action.Request) (response.Response, Kind, error) {
	resp, err := a.Handle(req)
	switch {
	case action.IsValidation(err):
		return response.BadRequest(err.Error()), KindValidation, err
	case err != nil:
		return response.InternalError(err.Error()), KindInternal, err
	case resp == nil:
		err = fmt.Errorf("action %T returned no response", a)
		return response.InternalError(err.Error()), KindInternal, err
	case resp.StatusCode() == http.StatusNotFound:
		return resp, KindNotFound, nil
	default:
		return resp, KindOK, nil
	}
}

// render encodes resp. A response that cannot be encoded, or that panics while
// being read, is replaced by a 500.
func (d *Dispatcher) render(resp response.Response) (int, response.Headers, []byte, error) {
	status, headers, body, err := encode(resp, d.serializer)
	if err == nil {
		return status, headers, body, nil
	}

	fallback := response.InternalError(err.Error())
	_, _, fbBody, fbErr := encode(fallback, d.serializer)
	if fbErr != nil {
		// The configured serializer is itself broken.
		_, _, fbBody, fbErr = encode(fallback, response.DefaultSerializer())
		if fbErr != nil {
			fbBody = []byte{}
		}
	}
	return fallback.StatusCode(), fallback.Headers(), fbBody, err
}

// encode reads every part of resp, turning a panic into an error.
func encode(resp response.Response, s response.Serializer) (status int, headers response.Headers, body []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			status, headers, body = 0, nil, nil
			err = fmt.Errorf("render response: panic: %v", r)
		}
	}()

	status = resp.StatusCode()
	headers = resp.Headers()
	body, err = resp.Body(s)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("serialize response body: %w", err)
	}
	return status, headers, body, nil
}

// ServeConn reads one request from conn, dispatches it, writes the response
// and closes the connection. Failures are answered and logged, never returned:
// a broken connection must not take the worker down.
func (d *Dispatcher) ServeConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	log := d.log.With("request_id", uuid.NewString())
	if addr := conn.RemoteAddr(); addr != nil {
		log = log.With("remote", addr.String())
	}

	if d.readTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(d.readTimeout))
	}

	// Same slack as net/http on top of the header limit; lifted once the
	// headers are in so the body is not cut short.
	limited := &io.LimitedReader{R: conn, N: int64(d.maxHeaderBytes) + 4096}
	httpReq, err := http.ReadRequest(bufio.NewReader(limited))
	if err != nil {
		if limited.N <= 0 {
			log.Error("request header too large", "kind", KindValidation, "limit", d.maxHeaderBytes)
			d.respond(conn, log, response.NewError(http.StatusRequestHeaderFieldsTooLarge, "request header too large"))
			return
		}
		if errors.Is(err, io.EOF) {
			log.Debug("connection closed before request")
			return
		}
		log.Error("malformed request", "kind", KindValidation, "error", err)
		d.respond(conn, log, response.BadRequest("malformed request: "+err.Error()))
		return
	}

	limited.N = math.MaxInt64

	var body []byte
	if httpReq.Method == http.MethodPost {
		body, err = io.ReadAll(httpReq.Body)
		if err != nil {
			log.Error("failed to read request body", "kind", KindValidation, "error", err)
			d.respond(conn, log, response.BadRequest("failed to read request body: "+err.Error()))
			return
		}
	}

	log = log.With("method", httpReq.Method, "target", httpReq.RequestURI)
	log.Debug("accepted request", "body_bytes", len(body))

	resp, kind, err := d.Dispatch(httpReq.Method, httpReq.RequestURI, body)
	switch kind {
	case KindValidation:
		log.Error("request rejected", "kind", kind, "error", err)
	case KindInternal:
		log.Error("action failed", "kind", kind, "error", err)
	case KindNotFound:
		log.Info("not found", "kind", kind)
	}

	d.respond(conn, log, resp)
}

func (d *Dispatcher) respond(conn net.Conn, log *slog.Logger, resp response.Response) {
	status, headers, body, err := d.render(resp)
	if err != nil {
		log.Error("response rendering failed", "kind", KindInternal, "error", err)
	}

	if d.writeTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(d.writeTimeout))
	}
	if err := writeResponse(conn, status, headers, body); err != nil {
		log.Warn("failed to write response", "status", status, "error", err)
		return
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.CloseWrite()
	}
	log.Debug("returned response", "status", status, "headers", len(headers), "body_bytes", len(body))
}
