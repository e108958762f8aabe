// Package auth resolves the credential sent with each request.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/lcp/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrUnknownTokenKind = errors.New("unknown token kind")
)

// TokenKind distinguishes the two credential types the Service accepts.
type TokenKind string

const (
	// TokenKindNone means no credential is configured.
	TokenKindNone TokenKind = ""
	// TokenKindUser is a long-lived user token.
	TokenKindUser TokenKind = "user"
	// TokenKindTemp is a short-lived token scoped to one application.
	TokenKindTemp TokenKind = "temp"
)

// ParseTokenKind accepts "user" or "temp" in any case.
func ParseTokenKind(s string) (TokenKind, error) {
	switch kind := TokenKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case TokenKindUser, TokenKindTemp:
		return kind, nil
	default:
		return TokenKindNone, fmt.Errorf("%w: %q", ErrUnknownTokenKind, s)
	}
}

// Credentials holds the configured tokens.
type Credentials struct {
	UserToken string
	TempToken string
}

// Kind reports which token Token will return.
func (c Credentials) Kind() TokenKind {
	switch {
	case c.TempToken != "":
		return TokenKindTemp
	case c.UserToken != "":
		return TokenKindUser
	default:
		return TokenKindNone
	}
}

// Token returns the temp token when set, otherwise the user token.
func (c Credentials) Token() string {
	if c.TempToken != "" {
		return c.TempToken
	}

	return c.UserToken
}

// AuthorizationHeader returns the Authorization header value, or "" when no
// credential is configured.
func (c Credentials) AuthorizationHeader() string {
	token := c.Token()
	if token == "" {
		return ""
	}

	return constants.AuthScheme + " " + token
}

// Masked returns token with all but its last four characters hidden.
func Masked(token string) string {
	const visible = 4

	if token == "" {
		return ""
	}

	if len(token) <= visible {
		return constants.MaskedSecret
	}

	return constants.MaskedSecret + token[len(token)-visible:]
}
