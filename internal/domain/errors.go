package domain

import "errors"

// Error kinds shared by every layer. Package-level sentinels wrap one of these,
// so callers can classify any error with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAlreadyUsed       = errors.New("already used")
	ErrExpired           = errors.New("expired")
	ErrMalformedInput    = errors.New("malformed input")
	ErrStorageFailure    = errors.New("storage failure")
	ErrConflict          = errors.New("conflict")
)

// IsRetryable reports whether the caller may retry the operation as is.
// Only transient storage failures qualify.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageFailure)
}

// Kind returns a short label of the error kind, used for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrAlreadyUsed):
		return "already_used"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrMalformedInput):
		return "malformed_input"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrStorageFailure):
		return "storage_failure"
	default:
		return "internal"
	}
}
