package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Service endpoint.
const (
	// DefaultAPIDomain is the parent domain of every instance subdomain.
	DefaultAPIDomain = "lcp.app"

	// APIBasePath is the path prefix of the REST API.
	APIBasePath = "/api/v1"
)

// Connection limiting.
const (
	// DefaultConnectionLimit is the number of requests admitted per window.
	DefaultConnectionLimit = 10

	// DefaultConnectionLimitPeriod is the length of one admission window.
	DefaultConnectionLimitPeriod = 1 * time.Second
)

// Transport retries. Retries are off unless RetryMax is set.
const (
	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between transport retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// HTTP headers.
const (
	HeaderAuthorization   = "Authorization"
	HeaderContentType     = "Content-Type"
	HeaderAccept          = "Accept"
	HeaderUserAgent       = "User-Agent"
	HeaderVendorUserAgent = "X-LCP-User-Agent"

	// ContentTypeJSON is the only content type the Service speaks.
	ContentTypeJSON = "application/json"

	// AuthScheme prefixes the credential in the Authorization header.
	AuthScheme = "Bearer"
)

// Library identity, used in the default user agent.
const (
	LibraryName    = "lcp-go"
	LibraryVersion = "0.4.0"
)

// QueryArraySeparator joins array values in query parameters.
const QueryArraySeparator = "."

// InstrumentationName scopes the tracer and meter of the dispatcher.
const InstrumentationName = "github.com/fivetwenty-io/lcp"

// Output formats.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Display helpers.
const (
	// NotAvailable is displayed for empty values.
	NotAvailable = "N/A"

	// MaskedSecret replaces tokens in displayed configuration.
	MaskedSecret = "***"

	// JSONIndentSize is the indent of JSON output.
	JSONIndentSize = 2

	// StringTruncationLength caps long cells in table output.
	StringTruncationLength = 60

	// DebugBodyLimit caps request and response bodies in debug logs.
	DebugBodyLimit = 2048
)

// Batch execution.
const (
	// DefaultBatchConcurrency caps the calls a batch has in flight.
	DefaultBatchConcurrency = 5
)
