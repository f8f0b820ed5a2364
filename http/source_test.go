package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/jsonextract"
	jehttp "github.com/fwojciec/jsonextract/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Open(t *testing.T) {
	t.Parallel()

	t.Run("returns body and declared type from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(`[{"name":"A","role":"user","content":"hi"}]`))
		}))
		defer server.Close()

		f, err := jehttp.NewSource().Open(context.Background(), server.URL+"/exports/chat.json?x=1")

		require.NoError(t, err)
		assert.Equal(t, "chat.json", f.Name)
		assert.True(t, jsonextract.IsJSONType(f.Type))
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, `[{"name":"A","role":"user","content":"hi"}]`, string(body))
	})

	t.Run("names root URLs after the host", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		f, err := jehttp.NewSource().Open(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1", f.Name)
	})

	t.Run("keeps non-JSON content type for the intake gate", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer server.Close()

		f, err := jehttp.NewSource().Open(context.Background(), server.URL+"/page")

		require.NoError(t, err)
		assert.False(t, jsonextract.IsJSONType(f.Type))
	})

	t.Run("returns not found for 404", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		_, err := jehttp.NewSource().Open(context.Background(), server.URL+"/missing.json")

		assert.Equal(t, jsonextract.ENOTFOUND, jsonextract.ErrorCode(err))
	})

	t.Run("returns read error for other statuses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := jehttp.NewSource(jehttp.WithRetryDelays(nil)).Open(context.Background(), server.URL+"/chat.json")

		assert.Equal(t, jsonextract.EREAD, jsonextract.ErrorCode(err))
		assert.Contains(t, jsonextract.ErrorMessage(err), "HTTP 500")
	})

	t.Run("rejects oversized bodies", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[1,2,3,4,5]`))
		}))
		defer server.Close()

		_, err := jehttp.NewSource(jehttp.WithMaxBytes(4), jehttp.WithRetryDelays(nil)).Open(context.Background(), server.URL+"/big.json")

		assert.Equal(t, jsonextract.EREAD, jsonextract.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("{}"))
		}))
		defer server.Close()

		_, err := jehttp.NewSource(jehttp.WithTimeout(10*time.Millisecond), jehttp.WithRetryDelays(nil)).Open(context.Background(), server.URL)

		assert.Equal(t, jsonextract.EREAD, jsonextract.ErrorCode(err))
	})

	t.Run("rejects malformed URLs", func(t *testing.T) {
		t.Parallel()

		_, err := jehttp.NewSource().Open(context.Background(), "http://")

		assert.Equal(t, jsonextract.EINVALID, jsonextract.ErrorCode(err))
	})
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	assert.True(t, jehttp.IsURL("https://example.com/a.json"))
	assert.True(t, jehttp.IsURL("http://localhost:8080"))
	assert.False(t, jehttp.IsURL("./a.json"))
	assert.False(t, jehttp.IsURL("-"))
}

func TestSource_Retry(t *testing.T) {
	t.Parallel()

	t.Run("retries server errors until success", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if attempts.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		source := jehttp.NewSource(jehttp.WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}))

		_, err := source.Open(context.Background(), server.URL+"/a.json")

		require.NoError(t, err)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("does not retry not found", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			http.NotFound(w, r)
		}))
		defer server.Close()

		source := jehttp.NewSource(jehttp.WithRetryDelays([]time.Duration{time.Millisecond}))

		_, err := source.Open(context.Background(), server.URL+"/a.json")

		assert.Equal(t, jsonextract.ENOTFOUND, jsonextract.ErrorCode(err))
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("gives up after the last delay", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		source := jehttp.NewSource(jehttp.WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond}))

		_, err := source.Open(context.Background(), server.URL+"/a.json")

		assert.Equal(t, jsonextract.EREAD, jsonextract.ErrorCode(err))
		assert.Equal(t, int32(3), attempts.Load())
	})
}
