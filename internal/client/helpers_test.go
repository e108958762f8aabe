package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/lcp/internal/client"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// recordedRequest is what the fake Service saw for one call.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
	Header http.Header
}

// fakeService is a chi-routed stand-in for the Service API root.
type fakeService struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeService(t *testing.T, routes func(r chi.Router)) *fakeService {
	t.Helper()

	svc := &fakeService{}
	router := chi.NewRouter()
	router.Use(svc.record)
	router.Route("/api/v1", routes)

	svc.Server = httptest.NewServer(router)
	t.Cleanup(svc.Close)

	return svc
}

func (s *fakeService) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  map[string]string{},
			Header: r.Header.Clone(),
		}

		for key := range r.URL.Query() {
			rec.Query[key] = r.URL.Query().Get(key)
		}

		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// last returns the most recent request.
func (s *fakeService) last(t *testing.T) recordedRequest {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	require.NotEmpty(t, s.requests, "no request reached the fake service")

	return s.requests[len(s.requests)-1]
}

func (s *fakeService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}

func (s *fakeService) config() *lcp.Config {
	return &lcp.Config{
		BaseURL:   s.URL + "/api/v1",
		UserToken: "user-token",
	}
}

func (s *fakeService) client(t *testing.T) *client.Client {
	t.Helper()

	c, err := client.New(s.config())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

// respond writes a successful envelope around results.
func respond(results any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, results)
	}
}

func writeEnvelope(w http.ResponseWriter, status int, results any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": status < http.StatusBadRequest,
		"results": results,
	})
}

// ScopedCRUDTest describes one scoped resource for RunScopedCRUDTests.
type ScopedCRUDTest[T any] struct {
	Name       string
	Collection string
	ScopeKey   string
	Sample     T
	Resource   func(*client.Client) lcp.ScopedResourceClient[T]
}

// RunScopedCRUDTests exercises list, get, create, update and delete of a
// resource scoped by an app or table id.
//
//nolint:funlen // Test functions can be longer for comprehensive testing
func RunScopedCRUDTests[T any](t *testing.T, tc ScopedCRUDTest[T]) {
	t.Helper()

	base := "/" + tc.Collection

	svc := newFakeService(t, func(r chi.Router) {
		r.Get(base, respond([]T{tc.Sample}))
		r.Post(base, respond(tc.Sample))
		r.Get(base+"/{id}", respond(tc.Sample))
		r.Put(base+"/{id}", respond(tc.Sample))
		r.Delete(base+"/{id}", respond(map[string]any{"deleted": true, "id": 9}))
	})

	resource := tc.Resource(svc.client(t))
	ctx := context.Background()

	t.Run(tc.Name+" list", func(t *testing.T) {
		items, err := resource.List(ctx, "scope-1")
		require.NoError(t, err)
		assert.Equal(t, []T{tc.Sample}, items)

		req := svc.last(t)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/api/v1"+base, req.Path)
		assert.Equal(t, "scope-1", req.Query[tc.ScopeKey])
	})

	t.Run(tc.Name+" get", func(t *testing.T) {
		item, err := resource.Get(ctx, "scope-1", "item-1")
		require.NoError(t, err)
		assert.Equal(t, tc.Sample, *item)
		assert.Equal(t, "/api/v1"+base+"/item-1", svc.last(t).Path)
	})

	t.Run(tc.Name+" create", func(t *testing.T) {
		created, err := resource.Create(ctx, "scope-1", &tc.Sample)
		require.NoError(t, err)
		assert.Equal(t, tc.Sample, *created)

		req := svc.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "scope-1", req.Query[tc.ScopeKey])
		assert.NotContains(t, req.Body, tc.ScopeKey)
	})

	t.Run(tc.Name+" update", func(t *testing.T) {
		_, err := resource.Update(ctx, "scope-1", "item-1", &tc.Sample)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, svc.last(t).Method)
	})

	t.Run(tc.Name+" delete", func(t *testing.T) {
		result, err := resource.Delete(ctx, "scope-1", "item-1")
		require.NoError(t, err)
		assert.True(t, result.Deleted)
		assert.Equal(t, json.Number("9"), result.ID)
		assert.Equal(t, http.MethodDelete, svc.last(t).Method)
	})

	t.Run(tc.Name+" missing id", func(t *testing.T) {
		before := svc.count()

		_, err := resource.Get(ctx, "scope-1", "")
		require.ErrorIs(t, err, lcp.ErrMissingParameter)
		assert.Equal(t, before, svc.count())
	})
}
