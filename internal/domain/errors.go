package domain

import "errors"

var (
	// Provider errors
	ErrUnknownProvider   = errors.New("unknown provider")
	ErrInvalidProvider   = errors.New("invalid provider configuration")
	ErrTokenExchange     = errors.New("token exchange failed")
	ErrProfileFetch      = errors.New("failed to fetch profile from provider")
	ErrMissingCredential = errors.New("no usable access credential")

	// Config errors
	ErrMissingConfig = errors.New("missing required configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)
