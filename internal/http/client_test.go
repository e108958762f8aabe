package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	lcphttp "github.com/fivetwenty-io/lcp/internal/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg, fields) }

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/apps/a1", request.URL.Path)
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))

			writer.Header().Set("X-Request-Id", "r-1")
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"success": true, "results": map[string]string{"id": "a1"}})
		}))
		defer server.Close()

		client := lcphttp.NewClient()

		resp, err := client.Do(context.Background(), &lcphttp.Request{
			Method:  http.MethodGet,
			URL:     server.URL + "/api/v1/apps/a1",
			Headers: http.Header{"Authorization": []string{"Bearer test-token"}},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "200 OK", resp.Status)
		assert.Equal(t, "r-1", resp.Header.Get("X-Request-Id"))
		assert.JSONEq(t, `{"success":true,"results":{"id":"a1"}}`, string(resp.Body))
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			body, _ := io.ReadAll(request.Body)
			assert.JSONEq(t, `{"name":"crm"}`, string(body))

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := lcphttp.NewClient()

		resp, err := client.Do(context.Background(), &lcphttp.Request{
			Method:  http.MethodPost,
			URL:     server.URL + "/apps",
			Headers: http.Header{"Content-Type": []string{"application/json"}},
			Body:    []byte(`{"name":"crm"}`),
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("nil body sends no content", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			body, _ := io.ReadAll(request.Body)
			assert.Empty(t, body)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		resp, err := lcphttp.NewClient().Do(context.Background(), &lcphttp.Request{
			Method: http.MethodDelete,
			URL:    server.URL + "/records/1",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("error status is a response, not an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"success":false,"message":"App not found"}`))
		}))
		defer server.Close()

		resp, err := lcphttp.NewClient().Do(context.Background(), &lcphttp.Request{
			Method: http.MethodGet,
			URL:    server.URL + "/apps/missing",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(resp.Body), "App not found")
	})

	t.Run("server errors are not retried by default", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		resp, err := lcphttp.NewClient().Do(context.Background(), &lcphttp.Request{
			Method: http.MethodGet,
			URL:    server.URL,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("connection failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		address := server.URL
		server.Close()

		resp, err := lcphttp.NewClient().Do(context.Background(), &lcphttp.Request{
			Method: http.MethodGet,
			URL:    address,
		})
		require.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("nil request", func(t *testing.T) {
		t.Parallel()

		_, err := lcphttp.NewClient().Do(context.Background(), nil)
		require.ErrorIs(t, err, lcphttp.ErrNilRequest)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := lcphttp.NewClient(lcphttp.WithLogger(logger), lcphttp.WithDebug(true))

		_, err := client.Do(context.Background(), &lcphttp.Request{Method: http.MethodGet, URL: server.URL})
		require.NoError(t, err)

		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("client timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			select {
			case <-release:
			case <-request.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		client := lcphttp.NewClient(lcphttp.WithTimeout(50 * time.Millisecond))

		_, err := client.Do(context.Background(), &lcphttp.Request{Method: http.MethodGet, URL: server.URL})
		require.Error(t, err)
	})
}

func TestClient_Proxy(t *testing.T) {
	t.Parallel()

	var proxied atomic.Bool

	proxy := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		proxied.Store(true)
		assert.Equal(t, "http://acme.lcp.example/api/v1/users", request.URL.String())
		assert.NotEmpty(t, request.Header.Get("Proxy-Authorization"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer proxy.Close()

	proxyURL, err := url.Parse(proxy.URL)
	require.NoError(t, err)

	proxyURL.User = url.UserPassword("user", "secret")

	client := lcphttp.NewClient(lcphttp.WithProxy(proxyURL))

	resp, err := client.Do(context.Background(), &lcphttp.Request{
		Method: http.MethodGet,
		URL:    "http://acme.lcp.example/api/v1/users",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, proxied.Load())
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := lcphttp.NewClient(
			lcphttp.WithLogger(logger),
			lcphttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond),
		)

		resp, err := client.Do(context.Background(), &lcphttp.Request{Method: http.MethodGet, URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
		assert.Len(t, logger.logs, 2)
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := lcphttp.NewClient(lcphttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Do(context.Background(), &lcphttp.Request{Method: http.MethodGet, URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := lcphttp.NewClient(lcphttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Do(context.Background(), &lcphttp.Request{Method: http.MethodGet, URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})
}
