package api

import (
	"errors"
	"fmt"
)

// APIError is a non-success response carrying a server-supplied message.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized returns true if the error is a 401 Unauthorized error.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsServerError returns true if the error is a 5xx server error.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// ConnectivityError means the request never produced a response.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: could not reach server: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the response did not have the agreed shape:
// an error response without an "error" string, or a success body that
// does not decode into the expected object.
type MalformedResponseError struct {
	StatusCode int
	Reason     string
}

func (e *MalformedResponseError) Error() string {
	if e.StatusCode == 0 {
		return "malformed response: " + e.Reason
	}
	return fmt.Sprintf("malformed response (status %d): %s", e.StatusCode, e.Reason)
}

// ValidationError is raised locally, before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsAPIError checks if an error is (or wraps) an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsUnauthorized reports whether err wraps a 401 response.
func IsUnauthorized(err error) bool {
	apiErr, ok := IsAPIError(err)
	return ok && apiErr.IsUnauthorized()
}

// IsConnectivity reports whether err wraps a ConnectivityError.
func IsConnectivity(err error) bool {
	var connErr *ConnectivityError
	return errors.As(err, &connErr)
}
