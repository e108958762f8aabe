package dispatch

import (
	"strings"
)

// Descriptor is the static shape of one operation.
type Descriptor struct {
	// Name is the operation name, e.g. "getRecords".
	Name string
	// Method is the HTTP verb.
	Method string
	// Path is relative to the API root and may hold {placeholder}s.
	Path string
	// QueryParams are the param keys sent in the query string.
	QueryParams []string
	// Required are body keys that must be present.
	Required []string
	// Description is a one-line summary for listings.
	Description string
}

// PathParams returns the placeholder names in Path, in order.
func (d *Descriptor) PathParams() []string {
	var names []string

	rest := d.Path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return names
		}

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return names
		}

		names = append(names, rest[open+1:open+end])
		rest = rest[open+end+1:]
	}
}

// HasBody reports whether requests for this descriptor may carry a body.
func (d *Descriptor) HasBody() bool {
	switch d.Method {
	case "GET", "HEAD":
		return false
	default:
		return true
	}
}
