package action

import (
	"net/url"

	"github.com/rzarajczyk/actions-server/pkg/response"
)

// Request is a parsed incoming request. It lives for the duration of one
// dispatch and must not be retained by handlers.
type Request struct {
	Method string
	// Path is the request path without the query string, exactly as sent.
	Path string
	// Params maps each query key to all of its values in order of appearance.
	Params url.Values
	// Body is the raw request body. It is empty for GET requests.
	Body []byte
}

// Action is a route matcher paired with a handler.
type Action interface {
	// Match reports whether the action handles req. It must not have side effects.
	Match(req *Request) bool
	// Handle produces the response for a request accepted by Match.
	Handle(req *Request) (response.Response, error)
}

// Func adapts a pair of functions to the Action interface.
type Func struct {
	MatchFunc  func(req *Request) bool
	HandleFunc func(req *Request) (response.Response, error)
}

// Match implements Action.
func (f Func) Match(req *Request) bool {
	return f.MatchFunc != nil && f.MatchFunc(req)
}

// Handle implements Action.
func (f Func) Handle(req *Request) (response.Response, error) {
	return f.HandleFunc(req)
}
