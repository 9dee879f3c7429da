package action

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rzarajczyk/actions-server/internal/matching"
	"github.com/rzarajczyk/actions-server/pkg/response"
)

// StaticResources serves files that sit directly in Dir under the URL prefix
// Prefix. Only a single path segment after the prefix is accepted; requests
// reaching into subdirectories do not match at all.
type StaticResources struct {
	prefix string
	dir    string
}

// NewStaticResources creates a StaticResources action. A missing trailing '/'
// on prefix is added.
func NewStaticResources(prefix, dir string) *StaticResources {
	return &StaticResources{
		prefix: matching.NormalizePrefix(prefix),
		dir:    dir,
	}
}

// Prefix returns the normalized URL prefix.
func (a *StaticResources) Prefix() string { return a.prefix }

// Dir returns the directory files are served from.
func (a *StaticResources) Dir() string { return a.dir }

// Match implements Action.
func (a *StaticResources) Match(req *Request) bool {
	if req.Method != http.MethodGet {
		return false
	}
	_, ok := matching.MatchSegment(a.prefix, req.Path)
	return ok
}

// Handle implements Action.
func (a *StaticResources) Handle(req *Request) (response.Response, error) {
	name, _ := matching.MatchSegment(a.prefix, req.Path)
	file := filepath.Join(a.dir, name)

	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return response.NotFound("File not found: " + name), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read static resource: %w", err)
	}
	return response.NewStaticResource(DetectMimeType(file, data), data), nil
}

// DetectMimeType returns the MIME type of a file, looked up by extension and
// falling back to content sniffing.
func DetectMimeType(name string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
