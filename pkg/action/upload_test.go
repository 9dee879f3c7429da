package action

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzarajczyk/actions-server/pkg/upload"
)

func multipartBody(t *testing.T, field, filename, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestUploadThenRedirect(t *testing.T) {
	t.Parallel()

	t.Run("saves file and redirects", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		a := NewUploadThenRedirect("/upload", func(params url.Values, files map[string]*upload.File) (string, error) {
			f := files["document"]
			if err := f.SaveAs(filepath.Join(dir, f.FileName)); err != nil {
				return "", err
			}
			return "/done?name=" + f.FileName, nil
		})

		req := post("/upload", string(multipartBody(t, "document", "notes.txt", "remember")))
		require.True(t, a.Match(req))

		resp, err := a.Handle(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode())
		assert.Equal(t, "/done?name=notes.txt", resp.Headers().Get("Location"))

		data, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
		require.NoError(t, err)
		assert.Equal(t, "remember", string(data))
	})

	t.Run("missing upload is a validation error", func(t *testing.T) {
		t.Parallel()
		a := NewUploadThenRedirect("/upload", func(url.Values, map[string]*upload.File) (string, error) {
			t.Fatal("callback must not run")
			return "", nil
		})
		_, err := a.Handle(post("/upload", `{"not": "multipart"}`))
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, "No uploaded file found", err.Error())
	})

	t.Run("broken upload is an internal error", func(t *testing.T) {
		t.Parallel()
		a := NewUploadThenRedirect("/upload", func(url.Values, map[string]*upload.File) (string, error) {
			return "/", nil
		})
		body := "--abc\r\nContent-Disposition: form-data; name=\"f\"\r\n\r\ntruncated"
		_, err := a.Handle(post("/upload", body))
		require.Error(t, err)
		assert.False(t, IsValidation(err))
	})

	t.Run("callback errors propagate", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("disk full")
		a := NewUploadThenRedirect("/upload", func(url.Values, map[string]*upload.File) (string, error) {
			return "", boom
		})
		_, err := a.Handle(post("/upload", string(multipartBody(t, "f", "a.txt", "x"))))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("matches POST on exact path only", func(t *testing.T) {
		t.Parallel()
		a := NewUploadThenRedirect("/upload", nil)
		assert.False(t, a.Match(get("/upload")))
		assert.False(t, a.Match(post("/upload/", "")))
	})
}
