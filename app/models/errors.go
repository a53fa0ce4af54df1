package models

import "errors"

// Domain errors. Repositories and services wrap these with %w; the HTTP
// layer matches them with errors.Is.
var (
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrAuthenticationFailed = errors.New("incorrect email or password")
	ErrInvalidIdentifier    = errors.New("invalid product id format")
	ErrNotFound             = errors.New("product not found")
	ErrStoreUnavailable     = errors.New("backing store unavailable")
)
