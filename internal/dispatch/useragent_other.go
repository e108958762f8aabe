//go:build !(js && wasm)

package dispatch

import (
	"github.com/fivetwenty-io/lcp/internal/constants"
)

const userAgentHeader = constants.HeaderUserAgent
