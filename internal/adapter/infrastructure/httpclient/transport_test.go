//go:build unit

package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang-ddnsd/internal/pkg/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest(url string) request.Request {
	return request.Request{
		Body:    []byte("hostname=h.example&password=p&myip=1.2.3.4"),
		Options: request.Options{URL: url},
	}
}

func TestClient_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("PostsFormBody", func(t *testing.T) {
		var gotMethod, gotContentType, gotBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			io.WriteString(w, "good 1.2.3.4")
		}))
		defer srv.Close()

		resp, err := New().Do(ctx, testRequest(srv.URL))
		require.NoError(t, err)
		assert.Equal(t, "good 1.2.3.4", resp)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
		assert.Equal(t, "hostname=h.example&password=p&myip=1.2.3.4", gotBody)
	})

	t.Run("FailsOnHTTPError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := New().Do(ctx, testRequest(srv.URL))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("NoRetryWhenCountZero", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		req := testRequest(srv.URL)
		req.Options.RetryCount = 0
		_, err := New().Do(ctx, req)
		require.Error(t, err)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("RetriesTransientErrors", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) < 3 {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
			io.WriteString(w, "good 1.2.3.4")
		}))
		defer srv.Close()

		req := testRequest(srv.URL)
		req.Options.RetryCount = 5
		req.Options.RetryDelay = 10 * time.Millisecond

		resp, err := New().Do(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "good 1.2.3.4", resp)
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("MaxTimeCapsRequest", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			io.WriteString(w, "good 1.2.3.4")
		}))
		defer srv.Close()

		req := testRequest(srv.URL)
		req.Options.MaxTime = 50 * time.Millisecond

		start := time.Now()
		_, err := New().Do(ctx, req)
		require.Error(t, err)
		assert.Less(t, time.Since(start), 400*time.Millisecond)
	})

	t.Run("RetryMaxTimeCapsRetrying", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		req := testRequest(srv.URL)
		req.Options.RetryCount = 1000
		req.Options.RetryDelay = 10 * time.Millisecond
		req.Options.RetryMaxTime = 100 * time.Millisecond

		start := time.Now()
		_, err := New().Do(ctx, req)
		require.Error(t, err)
		assert.Less(t, time.Since(start), 2*time.Second)
		assert.Less(t, hits.Load(), int32(1000))
	})

	t.Run("BadURL", func(t *testing.T) {
		req := testRequest("://not-a-url")
		_, err := New().Do(ctx, req)
		assert.Error(t, err)
	})

	t.Run("UnknownInterface", func(t *testing.T) {
		req := testRequest("http://127.0.0.1:0")
		req.Options.Interface = "does-not-exist0"
		_, err := New().Do(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does-not-exist0")
	})
}
