// Package dispatch is the single path every API call takes: numbering,
// admission, request building, transport and response normalization.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/lcp/internal/auth"
	"github.com/fivetwenty-io/lcp/internal/constants"
	lcphttp "github.com/fivetwenty-io/lcp/internal/http"
	"github.com/fivetwenty-io/lcp/internal/throttle"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// Result is the outcome of a successful call.
type Result struct {
	Sequence uint64
	// Payload is the envelope's results value; nil for an empty body.
	Payload json.RawMessage
	// Response is the full transport response.
	Response *lcp.Response
}

// Decode unmarshals the payload into out. A nil out, or a null or empty
// payload, is a no-op.
func (r *Result) Decode(operation string, out any) error {
	if out == nil || len(r.Payload) == 0 || bytes.Equal(r.Payload, []byte("null")) {
		return nil
	}

	err := json.Unmarshal(r.Payload, out)
	if err != nil {
		return &lcp.Error{
			Kind:      lcp.ErrParse,
			Operation: operation,
			Sequence:  r.Sequence,
			Status:    r.Response.StatusCode,
			Message:   "decoding results",
			Err:       err,
		}
	}

	return nil
}

// pendingCall is one in-flight request.
type pendingCall struct {
	sequence   uint64
	descriptor *Descriptor
	request    *lcphttp.Request
	createdAt  time.Time
}

func (c *pendingCall) fields() map[string]interface{} {
	fields := map[string]interface{}{
		"sequence":  c.sequence,
		"operation": c.descriptor.Name,
		"method":    c.descriptor.Method,
		"path":      c.descriptor.Path,
	}

	if c.request != nil {
		fields["url"] = c.request.URL
	}

	return fields
}

// state is everything Reconfigure replaces at once.
type state struct {
	config      *lcp.Config
	builder     *Builder
	endpointErr error
	limiter     throttle.Limiter
	transport   *lcphttp.Client
	logger      lcp.Logger
	instruments *instruments
}

// Dispatcher sends requests on behalf of one client. It is safe for
// concurrent use.
type Dispatcher struct {
	id       string
	sequence atomic.Uint64
	state    atomic.Pointer[state]
}

// New creates a dispatcher. The configuration is copied.
func New(cfg *lcp.Config) (*Dispatcher, error) {
	d := &Dispatcher{id: uuid.NewString()}

	st, err := newState(cfg)
	if err != nil {
		return nil, err
	}

	d.state.Store(st)

	return d, nil
}

func newState(cfg *lcp.Config) (*state, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: %w", lcp.ErrConfiguration, lcp.ErrConfigRequired)
	}

	resolved := cfg.WithDefaults()

	err := resolved.Validate()
	if err != nil {
		return nil, err
	}

	limiter, err := throttle.New(string(resolved.LimitStrategy), throttle.Options{
		Limit:          resolved.ConnectionLimit,
		Period:         resolved.ConnectionLimitPeriod,
		RejectOnExceed: resolved.ErrorOnConnectionLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lcp.ErrConfiguration, err)
	}

	instr, err := newInstruments(resolved.TracerProvider, resolved.MeterProvider)
	if err != nil {
		limiter.Close()

		return nil, err
	}

	logger := resolved.Logger
	if logger == nil {
		logger = lcp.NoopLogger{}
	}

	transportOpts := []lcphttp.Option{
		lcphttp.WithLogger(logger),
		lcphttp.WithDebug(resolved.Debug),
		lcphttp.WithRetryConfig(resolved.RetryMax, resolved.RetryWaitMin, resolved.RetryWaitMax),
		lcphttp.WithTimeout(resolved.HTTPTimeout),
	}

	if resolved.Proxy != nil {
		transportOpts = append(transportOpts, lcphttp.WithProxy(resolved.Proxy.URL()))
	}

	st := &state{
		config:      resolved,
		limiter:     limiter,
		transport:   lcphttp.NewClient(transportOpts...),
		logger:      logger,
		instruments: instr,
	}

	endpoint, err := resolved.Endpoint()
	if err != nil {
		st.endpointErr = err
	} else {
		st.builder = NewBuilder(endpoint, auth.Credentials{
			UserToken: resolved.UserToken,
			TempToken: resolved.TempToken,
		}, resolved.UserAgent)
	}

	return st, nil
}

// Config returns a copy of the active configuration.
func (d *Dispatcher) Config() *lcp.Config {
	return d.state.Load().config.Clone()
}

// Sequence returns the number assigned to the most recent request.
func (d *Dispatcher) Sequence() uint64 {
	return d.sequence.Load()
}

// Stats reports the active limiter window.
func (d *Dispatcher) Stats() throttle.Stats {
	return d.state.Load().limiter.Stats()
}

// Reconfigure swaps in a new configuration. Calls already admitted finish on
// the old transport; calls still queued on the old limiter fail with a
// rate-limit error. Numbering continues.
func (d *Dispatcher) Reconfigure(cfg *lcp.Config) error {
	st, err := newState(cfg)
	if err != nil {
		return err
	}

	old := d.state.Swap(st)
	if old != nil {
		old.limiter.Close()
	}

	st.logger.Debug("client reconfigured", map[string]interface{}{
		"client_id": d.id,
		"sequence":  d.sequence.Load(),
	})

	return nil
}

// Close releases the limiter. Queued and later calls fail.
func (d *Dispatcher) Close() {
	d.state.Load().limiter.Close()
}

// Request performs one call. Every failure is an *lcp.Error.
//
//nolint:funlen // the call state machine reads best in one place
func (d *Dispatcher) Request(ctx context.Context, desc *Descriptor, params lcp.Params, opts ...lcp.CallOption) (*Result, error) {
	call := &pendingCall{
		sequence:   d.sequence.Add(1),
		descriptor: desc,
		createdAt:  time.Now(),
	}

	st := d.state.Load()
	callOpts := lcp.NewCallOptions(opts...)

	ctx, span := st.instruments.tracer.Start(ctx, "lcp."+desc.Name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("lcp.operation", desc.Name),
			attribute.Int64("lcp.sequence", int64(call.sequence)), //nolint:gosec
			attribute.String("lcp.client_id", d.id),
			attribute.String("http.request.method", desc.Method),
		),
	)
	defer span.End()

	st.logger.Debug("request started", call.fields())

	if st.builder == nil {
		return nil, d.fail(ctx, st, span, call, &lcp.Error{
			Kind:    lcp.ErrConfiguration,
			Message: "no instance configured",
			Err:     st.endpointErr,
		})
	}

	request, err := st.builder.Build(desc, params)
	if err != nil {
		return nil, d.fail(ctx, st, span, call, asCallError(err, lcp.ErrMissingParameter))
	}

	call.request = request

	for key, value := range callOpts.Headers {
		request.Headers.Set(key, value)
	}

	err = d.admit(ctx, st, call)
	if err != nil {
		return nil, d.fail(ctx, st, span, call, asCallError(err, lcp.ErrRateLimitExceeded))
	}

	if callOpts.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, callOpts.Timeout)
		defer cancel()
	}

	intercepted := &lcp.Request{
		Operation: desc.Name,
		Sequence:  call.sequence,
		Method:    request.Method,
		URL:       request.URL,
		Headers:   request.Headers,
		Body:      request.Body,
	}

	err = st.config.Interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, d.fail(ctx, st, span, call, &lcp.Error{Kind: lcp.ErrTransport, Message: "request rejected", Err: err})
	}

	request.Headers = intercepted.Headers

	transportResp, err := st.transport.Do(ctx, request)
	if err != nil {
		d.afterResponse(ctx, st, intercepted, &lcp.Response{Sequence: call.sequence, Error: err})

		return nil, d.fail(ctx, st, span, call, &lcp.Error{Kind: lcp.ErrTransport, Message: "request failed", Err: err})
	}

	raw := &lcp.Response{
		Sequence:   call.sequence,
		StatusCode: transportResp.StatusCode,
		Status:     transportResp.Status,
		Header:     transportResp.Header,
		Body:       transportResp.Body,
	}

	span.SetAttributes(attribute.Int("http.response.status_code", raw.StatusCode))

	result, callErr := normalize(raw)

	d.afterResponse(ctx, st, intercepted, raw)

	if callOpts.RawResponse != nil {
		*callOpts.RawResponse = raw
	}

	if callErr != nil {
		return nil, d.fail(ctx, st, span, call, callErr)
	}

	d.succeed(ctx, st, span, call, raw.StatusCode)

	return result, nil
}

func (d *Dispatcher) admit(ctx context.Context, st *state, call *pendingCall) error {
	waitStart := time.Now()
	err := st.limiter.Acquire(ctx)

	st.instruments.admissionWait.Record(ctx, time.Since(waitStart).Seconds(),
		metric.WithAttributes(attribute.String("lcp.operation", call.descriptor.Name)))

	switch {
	case err == nil:
		fields := call.fields()
		fields["waited"] = time.Since(waitStart).String()
		st.logger.Debug("request admitted", fields)

		return nil
	case errors.Is(err, throttle.ErrLimitExceeded), errors.Is(err, throttle.ErrLimiterClosed):
		return &lcp.Error{Kind: lcp.ErrRateLimitExceeded, Message: err.Error(), Err: err}
	default:
		return &lcp.Error{Kind: lcp.ErrTransport, Message: "cancelled while waiting for admission", Err: err}
	}
}

func (d *Dispatcher) afterResponse(ctx context.Context, st *state, req *lcp.Request, resp *lcp.Response) {
	err := st.config.Interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil {
		st.logger.Warn("response interceptor failed", map[string]interface{}{
			"sequence":  req.Sequence,
			"operation": req.Operation,
			"error":     err.Error(),
		})
	}
}

func (d *Dispatcher) succeed(ctx context.Context, st *state, span trace.Span, call *pendingCall, status int) {
	elapsed := time.Since(call.createdAt)

	st.instruments.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("lcp.operation", call.descriptor.Name),
		attribute.Int("http.response.status_code", status),
	))
	span.SetStatus(codes.Ok, "")

	fields := call.fields()
	fields["status"] = status
	fields["duration"] = elapsed.String()
	st.logger.Debug("request completed", fields)
}

// fail stamps the call's identity on err and records it.
func (d *Dispatcher) fail(ctx context.Context, st *state, span trace.Span, call *pendingCall, err *lcp.Error) error {
	err.Operation = call.descriptor.Name
	err.Sequence = call.sequence

	elapsed := time.Since(call.createdAt)
	kind := kindLabel(err.Kind)

	st.instruments.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("lcp.operation", call.descriptor.Name),
		attribute.Int("http.response.status_code", err.Status),
	))
	st.instruments.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("lcp.operation", call.descriptor.Name),
		attribute.String("lcp.error.kind", kind),
	))

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	fields := call.fields()
	fields["kind"] = kind
	fields["status"] = err.Status
	fields["duration"] = elapsed.String()
	fields["error"] = err.Error()
	st.logger.Error("request failed", fields)

	return err
}

// normalize maps a transport response to a result or a call error.
func normalize(raw *lcp.Response) (*Result, *lcp.Error) {
	body := bytes.TrimSpace(raw.Body)
	success := raw.StatusCode >= http.StatusOK && raw.StatusCode < http.StatusMultipleChoices

	var (
		envelope lcp.Envelope
		parseErr error
	)

	if len(body) > 0 {
		parseErr = json.Unmarshal(body, &envelope)
		if parseErr == nil {
			raw.Envelope = &envelope
		}
	}

	if !success {
		return nil, &lcp.Error{
			Kind:    lcp.ErrServiceError,
			Status:  raw.StatusCode,
			Message: serviceMessage(raw.Envelope, raw.StatusCode),
		}
	}

	if len(body) == 0 {
		return &Result{Sequence: raw.Sequence, Response: raw}, nil
	}

	if parseErr != nil {
		return nil, &lcp.Error{
			Kind:    lcp.ErrParse,
			Status:  raw.StatusCode,
			Message: "response body is not valid JSON",
			Err:     parseErr,
		}
	}

	if !envelope.Success {
		return nil, &lcp.Error{
			Kind:    lcp.ErrServiceError,
			Status:  raw.StatusCode,
			Message: serviceMessage(&envelope, raw.StatusCode),
		}
	}

	return &Result{Sequence: raw.Sequence, Payload: envelope.Results, Response: raw}, nil
}

func serviceMessage(envelope *lcp.Envelope, status int) string {
	if envelope != nil {
		if envelope.Message != "" {
			return envelope.Message
		}

		if envelope.Error != "" {
			return envelope.Error
		}
	}

	if text := http.StatusText(status); text != "" {
		return text
	}

	return fmt.Sprintf("unexpected status %d", status)
}

// asCallError returns err as an *lcp.Error, wrapping it with kind if needed.
func asCallError(err error, kind error) *lcp.Error {
	if lcpErr, ok := lcp.AsError(err); ok {
		return lcpErr
	}

	return &lcp.Error{Kind: kind, Message: err.Error(), Err: err}
}

func kindLabel(kind error) string {
	switch {
	case errors.Is(kind, lcp.ErrConfiguration):
		return "configuration"
	case errors.Is(kind, lcp.ErrMissingParameter):
		return "missing_parameter"
	case errors.Is(kind, lcp.ErrRateLimitExceeded):
		return "rate_limit_exceeded"
	case errors.Is(kind, lcp.ErrTransport):
		return "transport"
	case errors.Is(kind, lcp.ErrServiceError):
		return "service"
	case errors.Is(kind, lcp.ErrParse):
		return "parse"
	default:
		return "unknown"
	}
}

type instruments struct {
	tracer        trace.Tracer
	duration      metric.Float64Histogram
	admissionWait metric.Float64Histogram
	errors        metric.Int64Counter
}

func newInstruments(tracerProvider trace.TracerProvider, meterProvider metric.MeterProvider) (*instruments, error) {
	if tracerProvider == nil {
		tracerProvider = otel.GetTracerProvider()
	}

	if meterProvider == nil {
		meterProvider = otel.GetMeterProvider()
	}

	meter := meterProvider.Meter(constants.InstrumentationName)

	duration, err := meter.Float64Histogram(
		"lcp.client.request.duration",
		metric.WithDescription("Duration of API calls, admission wait included"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	admissionWait, err := meter.Float64Histogram(
		"lcp.client.admission.wait",
		metric.WithDescription("Time spent waiting for the connection limiter"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating admission histogram: %w", err)
	}

	errCounter, err := meter.Int64Counter(
		"lcp.client.request.errors",
		metric.WithDescription("Number of failed API calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	return &instruments{
		tracer:        tracerProvider.Tracer(constants.InstrumentationName),
		duration:      duration,
		admissionWait: admissionWait,
		errors:        errCounter,
	}, nil
}
