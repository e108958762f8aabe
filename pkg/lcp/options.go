package lcp

import (
	"time"
)

// CallOptions holds per-call overrides.
type CallOptions struct {
	// Timeout bounds this call from admission to the last byte of the response.
	Timeout time.Duration
	// Headers are set on the outgoing request after the standard headers.
	Headers map[string]string
	// RawResponse receives the full transport response when non-nil.
	RawResponse **Response
}

// CallOption configures a single call.
type CallOption func(*CallOptions)

// NewCallOptions applies opts in order.
func NewCallOptions(opts ...CallOption) *CallOptions {
	options := &CallOptions{}

	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	return options
}

// WithTimeout sets a deadline for a single call.
func WithTimeout(timeout time.Duration) CallOption {
	return func(o *CallOptions) {
		o.Timeout = timeout
	}
}

// WithHeader sets an extra header on a single call.
func WithHeader(key, value string) CallOption {
	return func(o *CallOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}

		o.Headers[key] = value
	}
}

// WithRawResponse stores the full transport response in dst. It is filled for
// successful calls and for calls that fail with a service error.
//
//	var raw *lcp.Response
//	records, err := client.Records().Query(ctx, req, lcp.WithRawResponse(&raw))
func WithRawResponse(dst **Response) CallOption {
	return func(o *CallOptions) {
		o.RawResponse = dst
	}
}
