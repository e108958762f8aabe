package lcp

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"
)

// Request is the outgoing side of a call as seen by interceptors.
type Request struct {
	Operation string
	Sequence  uint64
	Method    string
	URL       string
	Headers   http.Header
	Body      []byte
}

// RequestInterceptor is called after admission, right before a request is sent.
// Header changes are applied to the outgoing request.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after every transport round trip. resp.Error
// is set when the transport failed and no response was received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	mu                   sync.RWMutex
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	interceptors := c.requestInterceptors
	c.mu.RUnlock()

	for _, interceptor := range interceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	interceptors := c.responseInterceptors
	c.mu.RUnlock()

	for _, interceptor := range interceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// LoggingInterceptor logs each request as it leaves the client.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		logger.Debug("lcp request sent", map[string]interface{}{
			"operation": req.Operation,
			"sequence":  req.Sequence,
			"method":    req.Method,
			"url":       req.URL,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs each response. Transport failures log at
// error level, Service error statuses at warn level.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(_ context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"operation": req.Operation,
			"sequence":  req.Sequence,
			"status":    resp.StatusCode,
		}

		switch {
		case resp.Error != nil:
			fields["error"] = resp.Error.Error()
			logger.Error("lcp transport failure", fields)
		case resp.StatusCode >= http.StatusBadRequest:
			logger.Warn("lcp service error", fields)
		default:
			logger.Debug("lcp response received", fields)
		}

		return nil
	}
}

// HeaderInterceptor sets fixed headers on every request.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// Metrics holds call statistics for one operation.
type Metrics struct {
	Requests        int64
	ServiceErrors   int64
	TransportErrors int64
	// Throttled counts 429 responses from the Service.
	Throttled     int64
	TotalLatency  time.Duration
	LastSequence  uint64
	LastStatus    int
	LastRequestAt time.Time
}

// Errors returns the number of failed calls.
func (m Metrics) Errors() int64 {
	return m.ServiceErrors + m.TransportErrors
}

// AverageLatency returns the mean time from send to response.
func (m Metrics) AverageLatency() time.Duration {
	if m.Requests == 0 {
		return 0
	}

	return m.TotalLatency / time.Duration(m.Requests)
}

// MetricsCollector aggregates Metrics per operation name. Latency is measured
// from the request interceptor to the response interceptor of the same
// sequence number.
type MetricsCollector struct {
	mu       sync.Mutex
	metrics  map[string]*Metrics
	inflight map[uint64]time.Time
	onChange func(operation string, metrics Metrics)
}

// NewMetricsCollector returns an empty collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics:  make(map[string]*Metrics),
		inflight: make(map[uint64]time.Time),
	}
}

// SetOnChange registers fn to receive a snapshot after every recorded response.
func (m *MetricsCollector) SetOnChange(fn func(operation string, metrics Metrics)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onChange = fn
}

// GetMetrics returns a snapshot for operation, or nil if it was never called.
func (m *MetricsCollector) GetMetrics(operation string) *Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if metrics, ok := m.metrics[operation]; ok {
		snapshot := *metrics

		return &snapshot
	}

	return nil
}

// Operations returns the names of all recorded operations, sorted.
func (m *MetricsCollector) Operations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.metrics))
	for name := range m.metrics {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Install registers the collector's interceptors on chain.
func (m *MetricsCollector) Install(chain *InterceptorChain) {
	chain.AddRequestInterceptor(m.started)
	chain.AddResponseInterceptor(m.finished)
}

func (m *MetricsCollector) started(_ context.Context, req *Request) error {
	m.mu.Lock()
	m.inflight[req.Sequence] = time.Now()
	m.mu.Unlock()

	return nil
}

func (m *MetricsCollector) finished(_ context.Context, req *Request, resp *Response) error {
	now := time.Now()

	m.mu.Lock()

	metrics, ok := m.metrics[req.Operation]
	if !ok {
		metrics = &Metrics{}
		m.metrics[req.Operation] = metrics
	}

	metrics.Requests++
	metrics.LastSequence = req.Sequence
	metrics.LastStatus = resp.StatusCode
	metrics.LastRequestAt = now

	if start, ok := m.inflight[req.Sequence]; ok {
		metrics.TotalLatency += now.Sub(start)
		delete(m.inflight, req.Sequence)
	}

	switch {
	case resp.Error != nil:
		metrics.TransportErrors++
	case resp.StatusCode >= http.StatusBadRequest:
		metrics.ServiceErrors++
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		metrics.Throttled++
	}

	snapshot := *metrics
	onChange := m.onChange

	m.mu.Unlock()

	if onChange != nil {
		onChange(req.Operation, snapshot)
	}

	return nil
}
