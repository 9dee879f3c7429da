package upload

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMultipart encodes files as a multipart/form-data body.
func buildMultipart(t *testing.T, files map[string][2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, f := range files {
		part, err := w.CreateFormFile(field, f[0])
		require.NoError(t, err)
		_, err = part.Write([]byte(f[1]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestNewExtractor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        []byte
		wantPresent bool
	}{
		{name: "empty body", body: nil, wantPresent: false},
		{name: "json body", body: []byte(`{"hello": "world"}`), wantPresent: false},
		{name: "boundary without disposition", body: []byte("--abc\r\nContent-Type: text/plain\r\n\r\nx\r\n--abc--\r\n"), wantPresent: false},
		{name: "too few lines", body: []byte("--abc\r\nContent-Disposition: form-data; name=\"f\""), wantPresent: false},
		{name: "well formed", body: []byte("--abc\r\nContent-Disposition: form-data; name=\"f\"\r\n\r\nx\r\n--abc--\r\n"), wantPresent: true},
		{name: "bare newlines", body: []byte("--abc\nContent-Disposition: form-data; name=\"f\"\n\nx\n--abc--\n"), wantPresent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ex := NewExtractor(tt.body)
			assert.Equal(t, tt.wantPresent, ex.Present())
		})
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("decodes every part by form name", func(t *testing.T) {
		t.Parallel()
		body := buildMultipart(t, map[string][2]string{
			"document": {"report.txt", "quarterly numbers"},
			"avatar":   {"me.png", "\x89PNG"},
		})

		ex := NewExtractor(body)
		require.True(t, ex.Present())
		assert.NotEmpty(t, ex.Boundary())

		files, err := ex.Extract()
		require.NoError(t, err)
		require.Len(t, files, 2)

		doc := files["document"]
		require.NotNil(t, doc)
		assert.Equal(t, "document", doc.FormName)
		assert.Equal(t, "report.txt", doc.FileName)
		assert.Equal(t, "quarterly numbers", string(doc.Bytes()))
		assert.Equal(t, len("quarterly numbers"), doc.Size())

		assert.Equal(t, "me.png", files["avatar"].FileName)
	})

	t.Run("returns ErrNoUpload when nothing was detected", func(t *testing.T) {
		t.Parallel()
		_, err := NewExtractor([]byte("plain text")).Extract()
		assert.ErrorIs(t, err, ErrNoUpload)
	})

	t.Run("fails on a truncated part", func(t *testing.T) {
		t.Parallel()
		body := []byte("--abc\r\nContent-Disposition: form-data; name=\"f\"; filename=\"a.txt\"\r\n\r\nhello without end")

		ex := NewExtractor(body)
		require.True(t, ex.Present())

		_, err := ex.Extract()
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoUpload)
	})
}

func TestFileSaveAs(t *testing.T) {
	t.Parallel()

	body := buildMultipart(t, map[string][2]string{"file": {"a.txt", "saved content"}})
	files, err := NewExtractor(body).Extract()
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, files["file"].SaveAs(target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "saved content", string(data))

	err = files["file"].SaveAs(filepath.Join(t.TempDir(), "missing", "out.txt"))
	assert.Error(t, err)
}
