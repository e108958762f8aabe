package dispatch_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// fakeService is an httptest server routed like the Service's API root.
type fakeService struct {
	*httptest.Server
	hits atomic.Int32
}

func newFakeService(t *testing.T, routes func(r chi.Router)) *fakeService {
	t.Helper()

	svc := &fakeService{}
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			svc.hits.Add(1)
			next.ServeHTTP(w, r)
		})
	})
	router.Route("/api/v1", routes)

	svc.Server = httptest.NewServer(router)
	t.Cleanup(svc.Close)

	return svc
}

func (s *fakeService) config() *lcp.Config {
	return &lcp.Config{
		BaseURL:   s.URL + "/api/v1",
		UserToken: "user-token",
	}
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, results any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": success, "results": results})
}

func recordsRoute(r chi.Router) {
	r.Get("/records", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, []map[string]any{{"3": map[string]any{"value": 1}}})
	})
}

func newDispatcher(t *testing.T, cfg *lcp.Config) *dispatch.Dispatcher {
	t.Helper()

	d, err := dispatch.New(cfg)
	require.NoError(t, err)
	t.Cleanup(d.Close)

	return d
}

func TestDispatcher_Success(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, func(r chi.Router) {
		r.Get("/records", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "t1", r.URL.Query().Get("tableid"))
			assert.Equal(t, "3.6", r.URL.Query().Get("columns"))
			assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
			w.Header().Set("X-Trace", "abc")
			writeEnvelope(w, http.StatusOK, true, []map[string]any{{"3": map[string]any{"value": 1}}})
		})
	})

	d := newDispatcher(t, svc.config())

	var raw *lcp.Response

	result, err := d.Request(context.Background(), operations.GetRecords,
		lcp.Params{"tableid": "t1", "columns": []string{"3", "6"}},
		lcp.WithRawResponse(&raw),
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Sequence)
	assert.JSONEq(t, `[{"3":{"value":1}}]`, string(result.Payload))

	require.NotNil(t, raw)
	assert.Equal(t, http.StatusOK, raw.StatusCode)
	assert.Equal(t, "abc", raw.Header.Get("X-Trace"))
	require.NotNil(t, raw.Envelope)
	assert.True(t, raw.Envelope.Success)
	assert.Equal(t, uint64(1), raw.Sequence)

	var records []lcp.Record
	require.NoError(t, result.Decode("getRecords", &records))
	assert.Len(t, records, 1)
}

func TestDispatcher_SequenceNumbersUnique(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, recordsRoute)

	cfg := svc.config()
	cfg.ConnectionLimit = 1000

	d := newDispatcher(t, cfg)

	const calls = 50

	var (
		mu        sync.Mutex
		sequences []int
		wg        sync.WaitGroup
	)

	for range calls {
		wg.Add(1)

		go func() {
			defer wg.Done()

			result, err := d.Request(context.Background(), operations.GetRecords, lcp.Params{"tableid": "t1"})
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			sequences = append(sequences, int(result.Sequence))
			mu.Unlock()
		}()
	}

	wg.Wait()

	sort.Ints(sequences)

	expected := make([]int, calls)
	for i := range expected {
		expected[i] = i + 1
	}

	assert.Equal(t, expected, sequences)
	assert.Equal(t, uint64(calls), d.Sequence())
}

func TestDispatcher_QueuesOverLimit(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, recordsRoute)

	cfg := svc.config()
	cfg.ConnectionLimit = 3
	cfg.ConnectionLimitPeriod = 400 * time.Millisecond

	d := newDispatcher(t, cfg)

	var wg sync.WaitGroup

	for range 5 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := d.Request(context.Background(), operations.GetRecords, lcp.Params{"tableid": "t1"})
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool {
		return d.Stats().Waiting == 2
	}, time.Second, 5*time.Millisecond)
	assert.LessOrEqual(t, svc.hits.Load(), int32(3))

	wg.Wait()
	assert.Equal(t, int32(5), svc.hits.Load())
}

func TestDispatcher_RejectOnLimit(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, recordsRoute)

	cfg := svc.config()
	cfg.ConnectionLimit = 2
	cfg.ConnectionLimitPeriod = time.Minute
	cfg.ErrorOnConnectionLimit = true

	d := newDispatcher(t, cfg)
	ctx := context.Background()

	for range 2 {
		_, err := d.Request(ctx, operations.GetRecords, lcp.Params{"tableid": "t1"})
		require.NoError(t, err)
	}

	_, err := d.Request(ctx, operations.GetRecords, lcp.Params{"tableid": "t1"})
	require.ErrorIs(t, err, lcp.ErrRateLimitExceeded)
	assert.True(t, lcp.IsRateLimited(err))
	assert.Equal(t, uint64(3), lcp.SequenceOf(err))
	assert.Equal(t, lcp.StatusNone, lcp.StatusOf(err))
	assert.Equal(t, int32(2), svc.hits.Load())
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestDispatcher_Errors(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, func(r chi.Router) {
		r.Get("/apps/{appid}", func(w http.ResponseWriter, r *http.Request) {
			switch chi.URLParam(r, "appid") {
			case "missing":
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"success":false,"message":"Application not found"}`))
			case "denied":
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"success":false,"error":"Forbidden for this token"}`))
			case "boom":
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(`<html>bad gateway</html>`))
			case "unsuccessful":
				writeEnvelope(w, http.StatusOK, false, nil)
			case "garbled":
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"success":tru`))
			case "empty":
				w.WriteHeader(http.StatusNoContent)
			}
		})
	})

	d := newDispatcher(t, svc.config())
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		var raw *lcp.Response

		_, err := d.Request(ctx, operations.GetApp, lcp.Params{"appid": "missing"}, lcp.WithRawResponse(&raw))
		require.ErrorIs(t, err, lcp.ErrServiceError)
		assert.True(t, lcp.IsNotFound(err))

		lcpErr, ok := lcp.AsError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, lcpErr.Status)
		assert.Equal(t, "Application not found", lcpErr.Message)
		assert.Equal(t, "getApp", lcpErr.Operation)
		assert.NotZero(t, lcpErr.Sequence)

		require.NotNil(t, raw)
		assert.Equal(t, http.StatusNotFound, raw.StatusCode)
	})

	t.Run("message falls back to error field", func(t *testing.T) {
		t.Parallel()

		_, err := d.Request(ctx, operations.GetApp, lcp.Params{"appid": "denied"})
		require.ErrorIs(t, err, lcp.ErrServiceError)
		assert.True(t, lcp.IsForbidden(err))

		lcpErr, _ := lcp.AsError(err)
		assert.Equal(t, "Forbidden for this token", lcpErr.Message)
	})

	t.Run("message falls back to status text", func(t *testing.T) {
		t.Parallel()

		_, err := d.Request(ctx, operations.GetApp, lcp.Params{"appid": "boom"})
		require.ErrorIs(t, err, lcp.ErrServiceError)

		lcpErr, _ := lcp.AsError(err)
		assert.Equal(t, http.StatusBadGateway, lcpErr.Status)
		assert.Equal(t, "Bad Gateway", lcpErr.Message)
	})

	t.Run("unsuccessful envelope", func(t *testing.T) {
		t.Parallel()

		_, err := d.Request(ctx, operations.GetApp, lcp.Params{"appid": "unsuccessful"})
		require.ErrorIs(t, err, lcp.ErrServiceError)
		assert.Equal(t, http.StatusOK, lcp.StatusOf(err))
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := d.Request(ctx, operations.GetApp, lcp.Params{"appid": "garbled"})
		require.ErrorIs(t, err, lcp.ErrParse)
		assert.Equal(t, http.StatusOK, lcp.StatusOf(err))
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		result, err := d.Request(ctx, operations.GetApp, lcp.Params{"appid": "empty"})
		require.NoError(t, err)
		assert.Nil(t, result.Payload)

		var app lcp.App
		require.NoError(t, result.Decode("getApp", &app))
		assert.Empty(t, app.ID)
	})
}

func TestDispatcher_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	cfg := &lcp.Config{BaseURL: server.URL}
	server.Close()

	d := newDispatcher(t, cfg)

	_, err := d.Request(context.Background(), operations.GetPreferences, nil)
	require.ErrorIs(t, err, lcp.ErrTransport)
	assert.Equal(t, lcp.StatusNone, lcp.StatusOf(err))
	assert.Equal(t, uint64(1), lcp.SequenceOf(err))
}

func TestDispatcher_PerCallTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	svc := newFakeService(t, func(r chi.Router) {
		r.Get("/preferences", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
	})
	defer close(release)

	d := newDispatcher(t, svc.config())

	_, err := d.Request(context.Background(), operations.GetPreferences, nil, lcp.WithTimeout(50*time.Millisecond))
	require.ErrorIs(t, err, lcp.ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDispatcher_ConfigurationError(t *testing.T) {
	t.Parallel()

	d := newDispatcher(t, &lcp.Config{UserToken: "x"})

	_, err := d.Request(context.Background(), operations.GetPreferences, nil)
	require.ErrorIs(t, err, lcp.ErrConfiguration)
	assert.ErrorIs(t, err, lcp.ErrInstanceRequired)
	assert.Equal(t, uint64(1), lcp.SequenceOf(err))
	assert.Equal(t, 0, d.Stats().Admitted)
}

func TestDispatcher_MissingParameterSkipsLimiter(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, recordsRoute)
	d := newDispatcher(t, svc.config())

	_, err := d.Request(context.Background(), operations.GetApp, lcp.Params{})
	require.ErrorIs(t, err, lcp.ErrMissingParameter)
	assert.Equal(t, uint64(1), lcp.SequenceOf(err))
	assert.Equal(t, 0, d.Stats().Admitted)
	assert.Equal(t, int32(0), svc.hits.Load())
}

func TestDispatcher_CancelledWhileQueued(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, recordsRoute)

	cfg := svc.config()
	cfg.ConnectionLimit = 1
	cfg.ConnectionLimitPeriod = time.Minute

	d := newDispatcher(t, cfg)

	_, err := d.Request(context.Background(), operations.GetRecords, lcp.Params{"tableid": "t1"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = d.Request(ctx, operations.GetRecords, lcp.Params{"tableid": "t1"})
	require.ErrorIs(t, err, lcp.ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, d.Stats().Waiting)
}

func TestDispatcher_ReconfigureKeepsSequence(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, recordsRoute)

	cfg := svc.config()
	cfg.ConnectionLimit = 1
	cfg.ConnectionLimitPeriod = time.Minute

	d := newDispatcher(t, cfg)
	ctx := context.Background()

	_, err := d.Request(ctx, operations.GetRecords, lcp.Params{"tableid": "t1"})
	require.NoError(t, err)

	queued := make(chan error, 1)

	go func() {
		_, err := d.Request(ctx, operations.GetRecords, lcp.Params{"tableid": "t1"})
		queued <- err
	}()

	require.Eventually(t, func() bool {
		return d.Stats().Waiting == 1
	}, time.Second, time.Millisecond)

	next := svc.config()
	next.TempToken = "temp-token"
	require.NoError(t, d.Reconfigure(next))

	select {
	case err := <-queued:
		require.ErrorIs(t, err, lcp.ErrRateLimitExceeded)
		assert.Equal(t, uint64(2), lcp.SequenceOf(err))
	case <-time.After(time.Second):
		t.Fatal("queued call was not released")
	}

	result, err := d.Request(ctx, operations.GetRecords, lcp.Params{"tableid": "t1"})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), result.Sequence)
	assert.Equal(t, "temp-token", d.Config().TempToken)
}

func TestDispatcher_ReconfigureRejectsInvalid(t *testing.T) {
	t.Parallel()

	d := newDispatcher(t, &lcp.Config{Instance: "acme"})

	err := d.Reconfigure(&lcp.Config{Instance: "acme", ConnectionLimit: -1})
	require.ErrorIs(t, err, lcp.ErrConfiguration)
	assert.Equal(t, "acme", d.Config().Instance)

	require.ErrorIs(t, d.Reconfigure(nil), lcp.ErrConfigRequired)
}

func TestDispatcher_Interceptors(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, func(r chi.Router) {
		r.Get("/preferences", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "tenant-7", r.Header.Get("X-Tenant"))
			assert.Equal(t, "call-1", r.Header.Get("X-Call"))
			writeEnvelope(w, http.StatusOK, true, map[string]any{"currency": "EUR"})
		})
	})

	chain := lcp.NewInterceptorChain()
	chain.AddRequestInterceptor(lcp.HeaderInterceptor(map[string]string{"X-Tenant": "tenant-7"}))

	collector := lcp.NewMetricsCollector()
	collector.Install(chain)

	var seen []uint64

	chain.AddResponseInterceptor(func(ctx context.Context, req *lcp.Request, resp *lcp.Response) error {
		seen = append(seen, resp.Sequence)

		return errors.New("ignored")
	})

	cfg := svc.config()
	cfg.Interceptors = chain

	d := newDispatcher(t, cfg)

	_, err := d.Request(context.Background(), operations.GetPreferences, nil, lcp.WithHeader("X-Call", "call-1"))
	require.NoError(t, err)

	assert.Equal(t, []uint64{1}, seen)

	metrics := collector.GetMetrics("getPreferences")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(1), metrics.Requests)
	assert.Equal(t, int64(0), metrics.Errors())
	assert.Equal(t, uint64(1), metrics.LastSequence)
	assert.Equal(t, http.StatusOK, metrics.LastStatus)
}

func TestDispatcher_Instrumentation(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t, func(r chi.Router) {
		r.Get("/users/{userid}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	})

	recorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	cfg := svc.config()
	cfg.TracerProvider = tracerProvider
	cfg.MeterProvider = meterProvider

	d := newDispatcher(t, cfg)
	ctx := context.Background()

	_, err := d.Request(ctx, operations.GetUser, lcp.Params{"userid": "u1"})
	require.ErrorIs(t, err, lcp.ErrServiceError)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "lcp.getUser", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	found := map[string]bool{}

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			found[m.Name] = true

			if m.Name == "lcp.client.request.errors" {
				sum, ok := m.Data.(metricdata.Sum[int64])
				require.True(t, ok)
				require.Len(t, sum.DataPoints, 1)
				assert.Equal(t, int64(1), sum.DataPoints[0].Value)
			}
		}
	}

	assert.True(t, found["lcp.client.request.duration"])
	assert.True(t, found["lcp.client.admission.wait"])
	assert.True(t, found["lcp.client.request.errors"])
}
