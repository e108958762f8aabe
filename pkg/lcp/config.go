package lcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/lcp/internal/constants"
)

// LimitStrategy selects how the client spaces out its requests.
type LimitStrategy string

const (
	// LimitStrategyWindow admits ConnectionLimit requests per fixed window of
	// ConnectionLimitPeriod and queues the rest in arrival order.
	LimitStrategyWindow LimitStrategy = "window"

	// LimitStrategyBucket uses a token bucket holding ConnectionLimit tokens,
	// refilled evenly over ConnectionLimitPeriod.
	LimitStrategyBucket LimitStrategy = "bucket"
)

// ProxyAuth holds basic-auth credentials for a proxy.
type ProxyAuth struct {
	Username string `json:"username" mapstructure:"username" yaml:"username"`
	Password string `json:"password" mapstructure:"password" yaml:"password"`
}

// ProxyConfig describes an HTTP proxy.
type ProxyConfig struct {
	Host string     `json:"host"           mapstructure:"host" yaml:"host"`
	Port int        `json:"port"           mapstructure:"port" yaml:"port"`
	Auth *ProxyAuth `json:"auth,omitempty" mapstructure:"auth" yaml:"auth,omitempty"`
}

// URL returns the proxy as an http URL, with credentials when present.
func (p *ProxyConfig) URL() *url.URL {
	proxyURL := &url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
	}

	if p.Auth != nil {
		proxyURL.User = url.UserPassword(p.Auth.Username, p.Auth.Password)
	}

	return proxyURL
}

// Config represents client configuration for building an lcp.Client.
//
// # Credentials
//
// TempToken takes precedence over UserToken when both are set. With neither,
// requests are sent without an Authorization header.
//
// # Connection limiting
//
// At most ConnectionLimit requests are admitted per ConnectionLimitPeriod.
// Callers over the limit wait for the next window, or fail immediately with
// ErrRateLimitExceeded when ErrorOnConnectionLimit is set.
//
// # Serialization
//
// MarshalJSON writes the resolved configuration using the Service's option
// names (instance, userToken, tempToken, userAgent, connectionLimit,
// connectionLimitPeriod in milliseconds, errorOnConnectionLimit, proxy).
// Logger, Interceptors, TracerProvider and MeterProvider are runtime
// attachments and are never serialized.
type Config struct {
	// Instance is the tenant subdomain, e.g. "acme" for acme.lcp.app.
	Instance string
	// UserToken is the long-lived credential.
	UserToken string
	// TempToken is a short-lived credential; it wins over UserToken.
	TempToken string
	// UserAgent is appended to the library's own user agent.
	UserAgent string

	// ConnectionLimit is the number of requests admitted per period. Default 10.
	ConnectionLimit int
	// ConnectionLimitPeriod is the admission window length. Default 1s.
	ConnectionLimitPeriod time.Duration
	// ErrorOnConnectionLimit rejects over-limit calls instead of queuing them.
	ErrorOnConnectionLimit bool
	// Proxy routes every request through an HTTP proxy when set.
	Proxy *ProxyConfig

	// BaseURL overrides https://<Instance>.lcp.app/api/v1.
	BaseURL string
	// LimitStrategy defaults to LimitStrategyWindow.
	LimitStrategy LimitStrategy
	// HTTPTimeout bounds each transport call. Zero means no deadline.
	HTTPTimeout time.Duration
	// RetryMax enables transport-level retries of 429/5xx and connection
	// errors. Zero (the default) disables them.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool

	// Logger is an optional structured logger.
	Logger Logger
	// Interceptors observe or amend every request and response.
	Interceptors *InterceptorChain
	// TracerProvider defaults to the global otel provider.
	TracerProvider trace.TracerProvider
	// MeterProvider defaults to the global otel provider.
	MeterProvider metric.MeterProvider
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	return &Config{
		ConnectionLimit:       constants.DefaultConnectionLimit,
		ConnectionLimitPeriod: constants.DefaultConnectionLimitPeriod,
		LimitStrategy:         LimitStrategyWindow,
	}
}

// Clone returns a copy of the configuration. Proxy settings are deep-copied.
func (c *Config) Clone() *Config {
	clone := *c

	if c.Proxy != nil {
		proxy := *c.Proxy
		if c.Proxy.Auth != nil {
			auth := *c.Proxy.Auth
			proxy.Auth = &auth
		}

		clone.Proxy = &proxy
	}

	return &clone
}

// WithDefaults returns a copy with zero-valued settings replaced by defaults.
func (c *Config) WithDefaults() *Config {
	resolved := c.Clone()

	if resolved.ConnectionLimit == 0 {
		resolved.ConnectionLimit = constants.DefaultConnectionLimit
	}

	if resolved.ConnectionLimitPeriod == 0 {
		resolved.ConnectionLimitPeriod = constants.DefaultConnectionLimitPeriod
	}

	if resolved.LimitStrategy == "" {
		resolved.LimitStrategy = LimitStrategyWindow
	}

	if resolved.RetryMax > 0 {
		if resolved.RetryWaitMin == 0 {
			resolved.RetryWaitMin = constants.DefaultRetryWaitMin
		}

		if resolved.RetryWaitMax == 0 {
			resolved.RetryWaitMax = constants.DefaultRetryWaitMax
		}
	}

	return resolved
}

// Validate checks settings that can never produce a working client.
// A missing Instance is not checked here; it is reported per call.
func (c *Config) Validate() error {
	if c.ConnectionLimit <= 0 {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrInvalidConnectionLimit)
	}

	if c.ConnectionLimitPeriod <= 0 {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrInvalidConnectionLimitPeriod)
	}

	// The period is serialized in milliseconds.
	if c.ConnectionLimitPeriod%time.Millisecond != 0 {
		return fmt.Errorf("%w: %w: %s", ErrConfiguration, ErrConnectionLimitPeriodPrecision, c.ConnectionLimitPeriod)
	}

	switch c.LimitStrategy {
	case LimitStrategyWindow, LimitStrategyBucket:
	default:
		return fmt.Errorf("%w: %w: %q", ErrConfiguration, ErrUnknownLimitStrategy, c.LimitStrategy)
	}

	if c.RetryMax < 0 || c.RetryWaitMin < 0 || c.RetryWaitMax < 0 || c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrInvalidRetryConfig)
	}

	if c.Proxy != nil && (c.Proxy.Host == "" || c.Proxy.Port <= 0) {
		return fmt.Errorf("%w: %w: host and port are required", ErrConfiguration, ErrInvalidProxy)
	}

	return nil
}

// Endpoint returns the API root for this configuration.
func (c *Config) Endpoint() (string, error) {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/"), nil
	}

	if c.Instance == "" {
		return "", ErrInstanceRequired
	}

	return "https://" + c.Instance + "." + constants.DefaultAPIDomain + constants.APIBasePath, nil
}

// configDocument is the serialized form of Config.
type configDocument struct {
	Instance               string `json:"instance"                mapstructure:"instance"`
	UserToken              string `json:"userToken"               mapstructure:"userToken"`
	TempToken              string `json:"tempToken"               mapstructure:"tempToken"`
	UserAgent              string `json:"userAgent"               mapstructure:"userAgent"`
	ConnectionLimit        int    `json:"connectionLimit"         mapstructure:"connectionLimit"`
	ConnectionLimitPeriod  int64  `json:"connectionLimitPeriod"   mapstructure:"connectionLimitPeriod"`
	ErrorOnConnectionLimit bool   `json:"errorOnConnectionLimit"  mapstructure:"errorOnConnectionLimit"`
	Proxy                  any    `json:"proxy"                   mapstructure:"proxy"`
	BaseURL                string `json:"baseUrl,omitempty"       mapstructure:"baseUrl"`
	LimitStrategy          string `json:"limitStrategy,omitempty" mapstructure:"limitStrategy"`
	HTTPTimeout            int64  `json:"httpTimeout,omitempty"   mapstructure:"httpTimeout"`
	RetryMax               int    `json:"retryMax,omitempty"      mapstructure:"retryMax"`
	RetryWaitMin           int64  `json:"retryWaitMin,omitempty"  mapstructure:"retryWaitMin"`
	RetryWaitMax           int64  `json:"retryWaitMax,omitempty"  mapstructure:"retryWaitMax"`
	Debug                  bool   `json:"debug,omitempty"         mapstructure:"debug"`
}

// MarshalJSON implements json.Marshaler.
func (c Config) MarshalJSON() ([]byte, error) {
	doc := configDocument{
		Instance:               c.Instance,
		UserToken:              c.UserToken,
		TempToken:              c.TempToken,
		UserAgent:              c.UserAgent,
		ConnectionLimit:        c.ConnectionLimit,
		ConnectionLimitPeriod:  c.ConnectionLimitPeriod.Milliseconds(),
		ErrorOnConnectionLimit: c.ErrorOnConnectionLimit,
		Proxy:                  false,
		BaseURL:                c.BaseURL,
		LimitStrategy:          string(c.LimitStrategy),
		HTTPTimeout:            c.HTTPTimeout.Milliseconds(),
		RetryMax:               c.RetryMax,
		RetryWaitMin:           c.RetryWaitMin.Milliseconds(),
		RetryWaitMax:           c.RetryWaitMax.Milliseconds(),
		Debug:                  c.Debug,
	}

	if c.Proxy != nil {
		doc.Proxy = c.Proxy
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	return data, nil
}

// UnmarshalJSON implements json.Unmarshaler. Runtime attachments already on
// the receiver are kept.
func (c *Config) UnmarshalJSON(data []byte) error {
	parsed, err := ConfigFromJSON(data)
	if err != nil {
		return err
	}

	parsed.Logger = c.Logger
	parsed.Interceptors = c.Interceptors
	parsed.TracerProvider = c.TracerProvider
	parsed.MeterProvider = c.MeterProvider

	*c = *parsed

	return nil
}

// ConfigFromJSON parses a configuration from a JSON object, or from a JSON
// string whose content is such an object.
func ConfigFromJSON(data []byte) (*Config, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var inner string

		err := json.Unmarshal(trimmed, &inner)
		if err != nil {
			return nil, fmt.Errorf("decoding config string: %w", err)
		}

		trimmed = bytes.TrimSpace([]byte(inner))
	}

	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrUnsupportedConfigEncoding
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var raw map[string]any

	err := decoder.Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return ConfigFromMap(raw)
}

// ConfigFromMap builds a configuration from its decoded object form. Keys
// match case-insensitively, so maps produced by viper can be passed as is.
// Missing limits fall back to defaults.
func ConfigFromMap(raw map[string]any) (*Config, error) {
	var doc configDocument

	err := decodeWeakly(raw, &doc)
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	proxy, err := decodeProxy(doc.Proxy)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Instance:               doc.Instance,
		UserToken:              doc.UserToken,
		TempToken:              doc.TempToken,
		UserAgent:              doc.UserAgent,
		ConnectionLimit:        doc.ConnectionLimit,
		ConnectionLimitPeriod:  time.Duration(doc.ConnectionLimitPeriod) * time.Millisecond,
		ErrorOnConnectionLimit: doc.ErrorOnConnectionLimit,
		Proxy:                  proxy,
		BaseURL:                doc.BaseURL,
		LimitStrategy:          LimitStrategy(doc.LimitStrategy),
		HTTPTimeout:            time.Duration(doc.HTTPTimeout) * time.Millisecond,
		RetryMax:               doc.RetryMax,
		RetryWaitMin:           time.Duration(doc.RetryWaitMin) * time.Millisecond,
		RetryWaitMax:           time.Duration(doc.RetryWaitMax) * time.Millisecond,
		Debug:                  doc.Debug,
	}

	return cfg.WithDefaults(), nil
}

// decodeProxy accepts false, null or an object.
func decodeProxy(value any) (*ProxyConfig, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case bool:
		if typed {
			return nil, fmt.Errorf("%w: proxy must be false or an object", ErrInvalidProxy)
		}

		return nil, nil
	case *ProxyConfig:
		return typed, nil
	case map[string]any:
		var proxy ProxyConfig

		err := decodeWeakly(typed, &proxy)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidProxy, err)
		}

		return &proxy, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %T", ErrInvalidProxy, value)
	}
}

func decodeWeakly(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}

	err = decoder.Decode(input)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	return nil
}
