package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrService carries a non-success response from the completion API.
// Status and Body are preserved verbatim so callers can display them.
type ErrService struct {
	Status int
	Body   string
	Err    error
}

func (e *ErrService) Error() string {
	return fmt.Sprintf("service error %d: %s", e.Status, e.Body)
}

func (e *ErrService) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %v", e.Err)
	}
	return "provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "model response truncated: max tokens exceeded"
}

// ServiceStatus extracts the HTTP status and body from an error chain
// containing an *ErrService. Returns ok=false otherwise.
func ServiceStatus(err error) (status int, body string, ok bool) {
	var svc *ErrService
	if errors.As(err, &svc) {
		return svc.Status, svc.Body, true
	}
	return 0, "", false
}
