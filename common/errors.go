// Package common holds the error taxonomy shared by the services and the
// HTTP layer. Callers match with errors.Is.
package common

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrDuplicateAccount      = errors.New("account already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrMissingToken          = errors.New("token required")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrNotFound              = errors.New("not found")
	ErrStoreUnavailable      = errors.New("store unavailable")
)

// Stable kind names rendered in the "error" field of JSON error bodies.
const (
	KindInvalidInput          = "InvalidInput"
	KindDuplicateAccount      = "DuplicateAccount"
	KindInvalidCredentials    = "InvalidCredentials"
	KindMissingToken          = "MissingToken"
	KindInvalidOrExpiredToken = "InvalidOrExpiredToken"
	KindNotFound              = "NotFound"
	KindStoreUnavailable      = "StoreUnavailable"
	KindUnexpected            = "Unexpected"
)

// Kind returns the kind name for err, or KindUnexpected when err does not
// wrap one of the sentinels above.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrDuplicateAccount):
		return KindDuplicateAccount
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrMissingToken):
		return KindMissingToken
	case errors.Is(err, ErrInvalidOrExpiredToken):
		return KindInvalidOrExpiredToken
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	default:
		return KindUnexpected
	}
}
