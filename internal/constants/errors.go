package constants

import "errors"

// CLI configuration errors.
var (
	ErrNoInstanceConfigured = errors.New("no instance configured, use 'lcp config set instance <name>' or --instance")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrInvalidConfigValue   = errors.New("invalid configuration value")
	ErrTokenRequired        = errors.New("a token is required")
)

// CLI argument errors.
var (
	ErrInvalidParamArgument = errors.New("parameters must be given as key=value")
	ErrInvalidParamData     = errors.New("--data must be a JSON object")
	ErrInvalidFieldID       = errors.New("field ids must be integers")
)
