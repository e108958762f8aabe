package lcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope is the body shape of every Service response.
type Envelope struct {
	Success bool            `json:"success"           yaml:"success"`
	Results json.RawMessage `json:"results,omitempty" yaml:"results,omitempty"`
	Message string          `json:"message,omitempty" yaml:"message,omitempty"`
	Error   string          `json:"error,omitempty"   yaml:"error,omitempty"`
}

// Response is the full transport response of a call.
type Response struct {
	// Sequence is the client-local number of the request.
	Sequence uint64
	// StatusCode is the HTTP status, or StatusNone when Error is set.
	StatusCode int
	// Status is the HTTP status line text, e.g. "200 OK".
	Status string
	// Header holds the response headers.
	Header http.Header
	// Body is the unparsed response body.
	Body []byte
	// Envelope is the parsed body, nil when the body was empty or not JSON.
	Envelope *Envelope
	// Error is set for interceptors when the transport failed.
	Error error
}

// Params is the flattened option bag an operation is built from.
type Params map[string]any

// ToParams converts a request struct into Params using its JSON field names.
// Numbers keep their exact textual form. Nil input yields empty Params.
func ToParams(request any) (Params, error) {
	if request == nil {
		return Params{}, nil
	}

	if params, ok := request.(Params); ok {
		return params, nil
	}

	if raw, ok := request.(map[string]any); ok {
		return Params(raw), nil
	}

	data, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encoding params: %w", err)
	}

	if bytes.Equal(data, []byte("null")) {
		return Params{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var params Params

	err = decoder.Decode(&params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	return params, nil
}
