package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a session id is unknown or expired
	ErrSessionNotFound = errors.New("session not found")

	// ErrProductNotFound is returned when a product id is not in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrBrandNotFound is returned when a store is not an affiliate partner
	ErrBrandNotFound = errors.New("brand not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in a store
	ErrCacheMiss = errors.New("cache miss")

	// ErrStoreUnavailable is returned when the session store cannot be reached
	ErrStoreUnavailable = errors.New("session store unavailable")
)

// ValidationError rejects an upload before any analysis stage runs
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// ProcessingError reports that the staged analysis could not complete
type ProcessingError struct {
	Reason string
	Err    error
}

// RetryPrompt is the user-facing message for any ProcessingError
const RetryPrompt = "Failed to analyze image. Please try again."

func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return "processing failed: " + e.Reason + ": " + e.Err.Error()
	}
	return "processing failed: " + e.Reason
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
