package client

import (
	"errors"
	"fmt"
)

// ErrorClass represents a classification of request errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// APIError represents a non-success response from the shop backend.
type APIError struct {
	// Resource names what was being fetched ("products", "order", ...).
	Resource string

	// StatusCode is the HTTP status the backend returned.
	StatusCode int

	ErrorClass ErrorClass
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("shop %s request failed (status %d): %s",
		e.Resource, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// classifyStatus categorizes an HTTP status for observability.
func classifyStatus(status int) ErrorClass {
	if status >= 500 {
		return ErrorClassServer
	}
	return ErrorClassClient
}
