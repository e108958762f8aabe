//go:build integration

package integration

import (
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/lcp/pkg/lcp"
	"github.com/fivetwenty-io/lcp/pkg/lcpclient"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Instance  string
	UserToken string
	AppID     string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Instance:  os.Getenv("LCP_INSTANCE"),
		UserToken: os.Getenv("LCP_USER_TOKEN"),
		AppID:     os.Getenv("LCP_APP_ID"),
		Verbose:   os.Getenv("LCP_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Instance == "" || config.UserToken == "" {
		t.Skip("LCP_INSTANCE or LCP_USER_TOKEN not set, skipping integration test")
	}

	if config.AppID == "" {
		t.Skip("LCP_APP_ID not set, skipping integration test")
	}
}

// NewClient creates a client for the configured instance. Adjust changes the
// client configuration before it is built.
func (config *TestConfig) NewClient(t *testing.T, adjust func(*lcp.Config)) lcp.Client {
	t.Helper()

	clientConfig := &lcp.Config{
		Instance:  config.Instance,
		UserToken: config.UserToken,
		UserAgent: "lcp-integration-tests",
	}

	if config.Verbose {
		clientConfig.Logger = lcp.NewZapLogger(zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel)))
		clientConfig.Debug = true
	}

	if adjust != nil {
		adjust(clientConfig)
	}

	client, err := lcpclient.New(clientConfig)
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// GenerateTestName generates a unique name for test resources.
func GenerateTestName(prefix string) string {
	return prefix + "-" + time.Now().Format("20060102-150405") + "-" + uuid.NewString()[:8]
}
