// Package response provides the typed results an action hands back to the
// dispatcher: a status code, an ordered set of headers and a body.
package response

import (
	"net/http"
	"strings"
)

// ContentTypeJSON is the Content-Type of every JSON body produced by the
// built-in responses.
const ContentTypeJSON = "application/json"

// Response is the result of handling a request.
//
// Body receives the server-wide Serializer so that JSON bodies are encoded
// the same way regardless of which action produced them. Implementations
// that carry raw bytes ignore it.
type Response interface {
	StatusCode() int
	Headers() Headers
	Body(s Serializer) ([]byte, error)
}

// Header is a single response header.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered list of response headers with at most one value per
// name. Headers are written to the wire in list order.
type Headers []Header

// Get returns the value of the named header, or "" if it is absent.
// Names are compared case-insensitively.
func (h Headers) Get(name string) string {
	for _, hdr := range h {
		if strings.EqualFold(hdr.Name, name) {
			return hdr.Value
		}
	}
	return ""
}

// Set replaces the value of the named header in place, or appends it.
func (h Headers) Set(name, value string) Headers {
	for i, hdr := range h {
		if strings.EqualFold(hdr.Name, name) {
			h[i].Value = value
			return h
		}
	}
	return append(h, Header{Name: name, Value: value})
}

// Error is a JSON error envelope: {"error": "<message>"}.
type Error struct {
	Code    int
	Message string
}

// NewError creates an error response with the given status code.
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// BadRequest creates a 400 error response.
func BadRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

// NotFound creates a 404 error response.
func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

// InternalError creates a 500 error response.
func InternalError(message string) *Error {
	return NewError(http.StatusInternalServerError, message)
}

func (e *Error) StatusCode() int { return e.Code }

func (e *Error) Headers() Headers {
	return Headers{{Name: "Content-Type", Value: ContentTypeJSON}}
}

func (e *Error) Body(s Serializer) ([]byte, error) {
	return s.Marshal(map[string]string{"error": e.Message})
}

// Redirect is a permanent (301) redirect with an empty body.
type Redirect struct {
	Location string
}

// NewRedirect creates a redirect to location.
func NewRedirect(location string) *Redirect {
	return &Redirect{Location: location}
}

func (r *Redirect) StatusCode() int { return http.StatusMovedPermanently }

func (r *Redirect) Headers() Headers {
	return Headers{{Name: "Location", Value: r.Location}}
}

func (r *Redirect) Body(Serializer) ([]byte, error) { return []byte{}, nil }

// JSON is a 200 response whose body is Payload encoded by the serializer.
type JSON struct {
	Payload any
}

// NewJSON creates a 200 JSON response.
func NewJSON(payload any) *JSON {
	return &JSON{Payload: payload}
}

func (j *JSON) StatusCode() int { return http.StatusOK }

func (j *JSON) Headers() Headers {
	return Headers{{Name: "Content-Type", Value: ContentTypeJSON}}
}

func (j *JSON) Body(s Serializer) ([]byte, error) {
	return s.Marshal(j.Payload)
}

// StaticResource is a 200 response carrying raw file contents.
type StaticResource struct {
	MimeType string
	Data     []byte
}

// NewStaticResource creates a static file response.
func NewStaticResource(mimeType string, data []byte) *StaticResource {
	return &StaticResource{MimeType: mimeType, Data: data}
}

func (r *StaticResource) StatusCode() int { return http.StatusOK }

func (r *StaticResource) Headers() Headers {
	return Headers{{Name: "Content-Type", Value: r.MimeType}}
}

func (r *StaticResource) Body(Serializer) ([]byte, error) { return r.Data, nil }
