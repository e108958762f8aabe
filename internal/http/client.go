// Package http provides the transport used by the dispatcher: connection
// handling, proxying and opt-in retries on top of go-retryablehttp.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/lcp/internal/constants"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// Static errors for err113 compliance.
var (
	ErrNilRequest = errors.New("request is nil")
)

// Request is a fully built outgoing request.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	// Body is sent as is. A nil Body sends no body at all.
	Body []byte
}

// Response is a transport response with the body read in full.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Client performs requests. It returns a Response for every HTTP status and
// an error only when no response was received.
type Client struct {
	httpClient *retryablehttp.Client
	logger     lcp.Logger
	debug      bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger lcp.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig enables retries of connection errors, 429 and 5xx
// responses. retryMax 0 disables them.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax

		if retryWaitMin > 0 {
			c.httpClient.RetryWaitMin = retryWaitMin
		}

		if retryWaitMax > 0 {
			c.httpClient.RetryWaitMax = retryWaitMax
		}
	}
}

// WithProxy routes every request through proxyURL.
func WithProxy(proxyURL *url.URL) Option {
	return func(c *Client) {
		if proxyURL == nil {
			return
		}

		transport := baseTransport(c.httpClient.HTTPClient).Clone()
		transport.Proxy = http.ProxyURL(proxyURL)
		c.httpClient.HTTPClient.Transport = transport
	}
}

// WithTimeout bounds every request, including retries and reading the body.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// NewClient creates a transport. Retries are off unless WithRetryConfig is given.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient = &http.Client{
		Transport: baseTransport(nil).Clone(),
	}

	client := &Client{
		httpClient: retryClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.RequestLogHook = client.logRetry

	return client
}

// Do sends req and reads the whole response body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	var body interface{}
	if req.Body != nil {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range req.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
			"body":   truncate(req.Body),
		})
	}

	started := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}

	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   resp.StatusCode,
			"duration": time.Since(started).String(),
			"body":     truncate(respBody),
		})
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

func (c *Client) logRetry(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt == 0 || c.logger == nil {
		return
	}

	c.logger.Warn("Retrying HTTP request", map[string]interface{}{
		"method":  req.Method,
		"url":     req.URL.String(),
		"attempt": attempt,
	})
}

func baseTransport(httpClient *http.Client) *http.Transport {
	if httpClient != nil {
		if transport, ok := httpClient.Transport.(*http.Transport); ok {
			return transport
		}
	}

	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return &http.Transport{Proxy: http.ProxyFromEnvironment}
	}

	return transport
}

func truncate(body []byte) string {
	if len(body) <= constants.DebugBodyLimit {
		return string(bytes.ToValidUTF8(body, nil))
	}

	return string(bytes.ToValidUTF8(body[:constants.DebugBodyLimit], nil)) + "..."
}
