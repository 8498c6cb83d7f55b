package dblp

import (
	"errors"
	"fmt"
)

// Common errors returned by the dblp client.
var (
	// ErrNotFound indicates a record document with no record element.
	ErrNotFound = errors.New("no record found in dblp")

	// ErrNetwork indicates a network connectivity issue.
	ErrNetwork = errors.New("network error communicating with dblp")

	// ErrInvalidResponse indicates a response missing required structure.
	ErrInvalidResponse = errors.New("invalid response from dblp")

	// ErrInvalidField indicates a field name not declared on the record.
	ErrInvalidField = errors.New("field not declared on record")
)

// APIError represents an HTTP error status from the dblp service.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dblp API error (status %d): %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsTransport returns true if the error came from the HTTP transport
// rather than from parsing.
func IsTransport(err error) bool {
	if errors.Is(err, ErrNetwork) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsParse returns true if the error indicates a malformed or
// structurally incomplete response. Parse failures leave the record
// unloaded, so a later access retries the fetch.
func IsParse(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}

// IsInvalidField returns true if the error came from accessing an
// undeclared field name.
func IsInvalidField(err error) bool {
	return errors.Is(err, ErrInvalidField)
}
