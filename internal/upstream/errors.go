package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited maps HTTP 429. Surfaced as a distinct notice and must
	// never mutate any cached page state.
	ErrRateLimited = errors.New("too many requests, please slow down")

	// ErrUnauthorized maps HTTP 401: the upstream session is missing or
	// expired and the admin has to log in again.
	ErrUnauthorized = errors.New("session expired")
)

// APIError is a non-2xx upstream reply that carried a structured
// {error|message} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
}

// errorBody covers the two error shapes the upstream mixes freely.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b errorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}
