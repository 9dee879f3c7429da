package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
)

// formDataMarker must appear on the line following the opening boundary.
var formDataMarker = []byte("Content-Disposition: form-data")

// ErrNoUpload is returned by Extract when the body did not pass the shape check.
var ErrNoUpload = errors.New("no uploaded file found")

// File is a single decoded part of an upload.
type File struct {
	// FormName is the name of the form field the part was sent under.
	FormName string
	// FileName is the file name supplied by the client, if any.
	FileName string

	data []byte
}

// Bytes returns the decoded contents of the part.
func (f *File) Bytes() []byte {
	return f.data
}

// Size returns the length of the decoded contents.
func (f *File) Size() int {
	return len(f.data)
}

// SaveAs writes the part to path, replacing any existing file.
func (f *File) SaveAs(path string) error {
	if err := os.WriteFile(path, f.data, 0o644); err != nil {
		return fmt.Errorf("save uploaded file %q: %w", f.FormName, err)
	}
	return nil
}

// Extractor recognizes and decodes a multipart/form-data body.
type Extractor struct {
	payload  []byte
	boundary string
}

// NewExtractor inspects body. The body is treated as an upload when it has
// more than two lines, the first starting with "--" followed by the boundary
// and the second carrying a form-data Content-Disposition header.
func NewExtractor(body []byte) *Extractor {
	lines := splitLines(body, 3)
	if len(lines) > 2 && bytes.HasPrefix(lines[0], []byte("--")) && bytes.Contains(lines[1], formDataMarker) {
		return &Extractor{
			payload:  body,
			boundary: string(lines[0][2:]),
		}
	}
	return &Extractor{}
}

// Present reports whether the body looked like an upload.
func (e *Extractor) Present() bool {
	return e.payload != nil
}

// Boundary returns the detected multipart boundary, or "" when no upload is present.
func (e *Extractor) Boundary() string {
	return e.boundary
}

// Extract decodes every part of the body and returns them keyed by form field
// name. When a field name repeats, the last part wins.
func (e *Extractor) Extract() (map[string]*File, error) {
	if !e.Present() {
		return nil, ErrNoUpload
	}

	reader := multipart.NewReader(bytes.NewReader(e.payload), e.boundary)
	files := make(map[string]*File)
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode multipart body: %w", err)
		}

		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %q: %w", part.FormName(), err)
		}

		files[part.FormName()] = &File{
			FormName: part.FormName(),
			FileName: part.FileName(),
			data:     data,
		}
	}
	return files, nil
}

// splitLines returns up to limit leading lines of b, accepting "\n", "\r\n"
// and "\r" terminators.
func splitLines(b []byte, limit int) [][]byte {
	var lines [][]byte
	for len(b) > 0 && len(lines) < limit {
		i := bytes.IndexAny(b, "\r\n")
		if i < 0 {
			lines = append(lines, b)
			break
		}
		lines = append(lines, b[:i])
		if b[i] == '\r' && i+1 < len(b) && b[i+1] == '\n' {
			i++
		}
		b = b[i+1:]
	}
	return lines
}
