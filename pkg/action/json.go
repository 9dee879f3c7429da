package action

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rzarajczyk/actions-server/internal/matching"
	"github.com/rzarajczyk/actions-server/pkg/response"
)

// JSONGet answers GET requests on an exact path with a JSON payload.
type JSONGet struct {
	Path string
	Fn   func(params url.Values) (any, error)
}

// NewJSONGet creates a JSONGet action.
func NewJSONGet(path string, fn func(params url.Values) (any, error)) *JSONGet {
	return &JSONGet{Path: path, Fn: fn}
}

// Match implements Action.
func (a *JSONGet) Match(req *Request) bool {
	return req.Method == http.MethodGet && matching.MatchExact(a.Path, req.Path)
}

// Handle implements Action.
func (a *JSONGet) Handle(req *Request) (response.Response, error) {
	payload, err := a.Fn(req.Params)
	if err != nil {
		return nil, err
	}
	return response.NewJSON(payload), nil
}

// JSONPost answers POST requests on an exact path. A non-empty body is decoded
// as JSON before being passed to Fn; an empty body is passed as the empty
// string.
type JSONPost struct {
	Path string
	Fn   func(params url.Values, body any) (any, error)
}

// NewJSONPost creates a JSONPost action.
func NewJSONPost(path string, fn func(params url.Values, body any) (any, error)) *JSONPost {
	return &JSONPost{Path: path, Fn: fn}
}

// Match implements Action.
func (a *JSONPost) Match(req *Request) bool {
	return req.Method == http.MethodPost && matching.MatchExact(a.Path, req.Path)
}

// Handle implements Action.
func (a *JSONPost) Handle(req *Request) (response.Response, error) {
	var body any = ""
	if len(req.Body) > 0 {
		var decoded any
		if err := json.Unmarshal(req.Body, &decoded); err != nil {
			return nil, NewValidationError(fmt.Errorf("invalid JSON body: %w", err))
		}
		body = decoded
	}

	payload, err := a.Fn(req.Params, body)
	if err != nil {
		return nil, err
	}
	return response.NewJSON(payload), nil
}
