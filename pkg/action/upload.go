package action

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/rzarajczyk/actions-server/internal/matching"
	"github.com/rzarajczyk/actions-server/pkg/response"
	"github.com/rzarajczyk/actions-server/pkg/upload"
)

// UploadThenRedirect accepts multipart uploads POSTed to an exact path. Fn
// receives the uploaded files and returns the location the client is
// redirected to.
type UploadThenRedirect struct {
	Path string
	Fn   func(params url.Values, files map[string]*upload.File) (string, error)
}

// NewUploadThenRedirect creates an UploadThenRedirect action.
func NewUploadThenRedirect(path string, fn func(params url.Values, files map[string]*upload.File) (string, error)) *UploadThenRedirect {
	return &UploadThenRedirect{Path: path, Fn: fn}
}

// Match implements Action.
func (a *UploadThenRedirect) Match(req *Request) bool {
	return req.Method == http.MethodPost && matching.MatchExact(a.Path, req.Path)
}

// Handle implements Action.
func (a *UploadThenRedirect) Handle(req *Request) (response.Response, error) {
	extractor := upload.NewExtractor(req.Body)
	if !extractor.Present() {
		return nil, Validationf("No uploaded file found")
	}

	files, err := extractor.Extract()
	if err != nil {
		return nil, fmt.Errorf("extract uploaded files: %w", err)
	}

	location, err := a.Fn(req.Params, files)
	if err != nil {
		return nil, err
	}
	return response.NewRedirect(location), nil
}
