// Package lcpclient provides the main entry point for creating LCP API clients
package lcpclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/lcp/internal/client"
	"github.com/fivetwenty-io/lcp/internal/constants"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// New creates a new LCP API client. The configuration is copied, so later
// changes to config do not affect the client.
func New(config *lcp.Config) (lcp.Client, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: %w", lcp.ErrConfiguration, lcp.ErrConfigRequired)
	}

	resolved := config.Clone()
	resolved.Instance = NormalizeInstance(resolved.Instance)

	c, err := client.New(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeInstance reduces an instance given as a host name or URL, such as
// "https://acme.lcp.app/", to the bare instance name "acme".
func NormalizeInstance(instance string) string {
	instance = strings.TrimSpace(instance)
	instance = strings.TrimPrefix(instance, "https://")
	instance = strings.TrimPrefix(instance, "http://")

	if idx := strings.IndexByte(instance, '/'); idx >= 0 {
		instance = instance[:idx]
	}

	return strings.TrimSuffix(instance, "."+constants.DefaultAPIDomain)
}

// NewWithUserToken creates a new client authenticated with a user token.
func NewWithUserToken(instance, token string) (lcp.Client, error) {
	return New(&lcp.Config{
		Instance:  instance,
		UserToken: token,
	})
}

// NewWithTempToken creates a new client authenticated with a temporary,
// application-scoped token.
func NewWithTempToken(instance, token string) (lcp.Client, error) {
	return New(&lcp.Config{
		Instance:  instance,
		TempToken: token,
	})
}

// NewFromJSON creates a new client from a serialized configuration, as
// produced by lcp.Client.ToJSON.
func NewFromJSON(data []byte) (lcp.Client, error) {
	config, err := lcp.ConfigFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lcp.ErrConfiguration, err)
	}

	return New(config)
}
