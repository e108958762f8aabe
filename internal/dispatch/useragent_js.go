//go:build js && wasm

package dispatch

import (
	"github.com/fivetwenty-io/lcp/internal/constants"
)

// Browsers refuse to let fetch override User-Agent.
const userAgentHeader = constants.HeaderVendorUserAgent
