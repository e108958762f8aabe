package dispatch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/lcp/internal/auth"
	"github.com/fivetwenty-io/lcp/internal/constants"
	lcphttp "github.com/fivetwenty-io/lcp/internal/http"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// Builder turns a descriptor and its params into a transport request. It is
// immutable and safe for concurrent use.
type Builder struct {
	baseURL     string
	credentials auth.Credentials
	userAgent   string
}

// NewBuilder creates a builder for the API rooted at baseURL.
func NewBuilder(baseURL string, credentials auth.Credentials, customUserAgent string) *Builder {
	return &Builder{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		credentials: credentials,
		userAgent:   UserAgent(customUserAgent),
	}
}

// UserAgent returns the library user agent with custom appended.
func UserAgent(custom string) string {
	agent := constants.LibraryName + "/" + constants.LibraryVersion
	if custom = strings.TrimSpace(custom); custom != "" {
		agent += " " + custom
	}

	return agent
}

// Build never blocks and never performs I/O. A missing path placeholder or
// required body key yields an *lcp.Error of kind lcp.ErrMissingParameter.
func (b *Builder) Build(desc *Descriptor, params lcp.Params) (*lcphttp.Request, error) {
	used := make(map[string]struct{}, len(params))

	path, err := b.expandPath(desc, params, used)
	if err != nil {
		return nil, err
	}

	query := url.Values{}

	for _, key := range desc.QueryParams {
		used[key] = struct{}{}

		value, ok := formatValue(params[key])
		if !ok {
			continue
		}

		query.Set(key, value)
	}

	body, err := buildBody(desc, params, used)
	if err != nil {
		return nil, err
	}

	target := b.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return &lcphttp.Request{
		Method:  desc.Method,
		URL:     target,
		Headers: b.headers(),
		Body:    body,
	}, nil
}

func (b *Builder) expandPath(desc *Descriptor, params lcp.Params, used map[string]struct{}) (string, error) {
	path := desc.Path

	for _, name := range desc.PathParams() {
		used[name] = struct{}{}

		value, ok := formatValue(params[name])
		if !ok || value == "" {
			return "", missingParameter(desc, name)
		}

		path = strings.Replace(path, "{"+name+"}", url.PathEscape(value), 1)
	}

	return path, nil
}

func buildBody(desc *Descriptor, params lcp.Params, used map[string]struct{}) ([]byte, error) {
	for _, key := range desc.Required {
		if isAbsent(params[key]) {
			return nil, missingParameter(desc, key)
		}
	}

	if !desc.HasBody() {
		return nil, nil
	}

	fields := make(map[string]any, len(params))

	for key, value := range params {
		if _, skip := used[key]; skip || value == nil {
			continue
		}

		fields[key] = value
	}

	if len(fields) == 0 && desc.Method == http.MethodDelete {
		return nil, nil
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return body, nil
}

func (b *Builder) headers() http.Header {
	headers := http.Header{}
	headers.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	headers.Set(constants.HeaderAccept, constants.ContentTypeJSON)
	headers.Set(userAgentHeader, b.userAgent)

	if authorization := b.credentials.AuthorizationHeader(); authorization != "" {
		headers.Set(constants.HeaderAuthorization, authorization)
	}

	return headers
}

func missingParameter(desc *Descriptor, name string) *lcp.Error {
	return &lcp.Error{
		Kind:      lcp.ErrMissingParameter,
		Operation: desc.Name,
		Message:   fmt.Sprintf("missing required parameter %q", name),
	}
}

func isAbsent(value any) bool {
	if value == nil {
		return true
	}

	if s, ok := value.(string); ok {
		return s == ""
	}

	return false
}

// formatValue renders a param for a path segment or query value. Arrays are
// joined with ".". It reports false for nil.
func formatValue(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", false
	case string:
		return typed, true
	case json.Number:
		return typed.String(), true
	case bool:
		return strconv.FormatBool(typed), true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case []string:
		return strings.Join(typed, constants.QueryArraySeparator), true
	case fmt.Stringer:
		return typed.String(), true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, 0, rv.Len())

		for i := range rv.Len() {
			if part, ok := formatValue(rv.Index(i).Interface()); ok {
				parts = append(parts, part)
			}
		}

		return strings.Join(parts, constants.QueryArraySeparator), true
	}

	return fmt.Sprint(value), true
}

// KnownParams returns every param key desc routes to the path or query.
func KnownParams(desc *Descriptor) []string {
	keys := append(desc.PathParams(), desc.QueryParams...)
	slices.Sort(keys)

	return slices.Compact(keys)
}
