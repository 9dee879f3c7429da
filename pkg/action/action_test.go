package action

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzarajczyk/actions-server/pkg/response"
)

func get(path string) *Request {
	return &Request{Method: http.MethodGet, Path: path, Params: url.Values{}}
}

func post(path string, body string) *Request {
	return &Request{Method: http.MethodPost, Path: path, Params: url.Values{}, Body: []byte(body)}
}

func TestJSONGet(t *testing.T) {
	t.Parallel()

	a := NewJSONGet("/test", func(params url.Values) (any, error) {
		return map[string]any{"params": params}, nil
	})

	t.Run("matches GET on exact path only", func(t *testing.T) {
		t.Parallel()
		assert.True(t, a.Match(get("/test")))
		assert.False(t, a.Match(get("/test/")))
		assert.False(t, a.Match(get("/tes")))
		assert.False(t, a.Match(post("/test", "")))
	})

	t.Run("passes params to the function", func(t *testing.T) {
		t.Parallel()
		req := get("/test")
		req.Params = url.Values{"b": {"6", "7"}}

		resp, err := a.Handle(req)
		require.NoError(t, err)

		jsonResp, ok := resp.(*response.JSON)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"params": url.Values{"b": {"6", "7"}}}, jsonResp.Payload)
	})

	t.Run("propagates function errors", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		failing := NewJSONGet("/x", func(url.Values) (any, error) { return nil, boom })
		_, err := failing.Handle(get("/x"))
		assert.ErrorIs(t, err, boom)
		assert.False(t, IsValidation(err))
	})
}

func TestJSONPost(t *testing.T) {
	t.Parallel()

	echo := NewJSONPost("/test", func(params url.Values, body any) (any, error) {
		return map[string]any{"body": body}, nil
	})

	t.Run("matches POST on exact path only", func(t *testing.T) {
		t.Parallel()
		assert.True(t, echo.Match(post("/test", "")))
		assert.False(t, echo.Match(get("/test")))
		assert.False(t, echo.Match(post("/other", "")))
	})

	t.Run("empty body is passed as empty string", func(t *testing.T) {
		t.Parallel()
		resp, err := echo.Handle(post("/test", ""))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"body": ""}, resp.(*response.JSON).Payload)
	})

	t.Run("json body is decoded", func(t *testing.T) {
		t.Parallel()
		resp, err := echo.Handle(post("/test", `{"hello": "POST BODY"}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"body": map[string]any{"hello": "POST BODY"}}, resp.(*response.JSON).Payload)
	})

	t.Run("unparsable body is a validation error", func(t *testing.T) {
		t.Parallel()
		_, err := echo.Handle(post("/test", "non-json string"))
		require.Error(t, err)
		assert.True(t, IsValidation(err))

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.NotNil(t, errors.Unwrap(ve))
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	a := NewRedirect("/test", "http://example.com")

	assert.True(t, a.Match(get("/test")))
	assert.True(t, a.Match(post("/test", "")))
	assert.True(t, a.Match(&Request{Method: http.MethodDelete, Path: "/test"}))
	assert.False(t, a.Match(get("/test2")))

	resp, err := a.Handle(get("/test"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode())
	assert.Equal(t, "http://example.com", resp.Headers().Get("Location"))
}

func TestFunc(t *testing.T) {
	t.Parallel()

	a := Func{
		MatchFunc: func(req *Request) bool { return req.Method == http.MethodPut },
		HandleFunc: func(req *Request) (response.Response, error) {
			return response.NewJSON("put"), nil
		},
	}

	assert.True(t, a.Match(&Request{Method: http.MethodPut, Path: "/"}))
	assert.False(t, a.Match(get("/")))
	assert.False(t, Func{}.Match(get("/")))

	resp, err := a.Handle(&Request{Method: http.MethodPut})
	require.NoError(t, err)
	assert.Equal(t, "put", resp.(*response.JSON).Payload)
}
