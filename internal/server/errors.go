// Package server provides the HTTP JSON API for the idea rater.
package server

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ErrConfiguration indicates missing required server configuration
type ErrConfiguration struct {
	Setting string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("server configuration missing: %s", e.Setting)
}

// ErrAuthorization indicates a bad or missing admin token
type ErrAuthorization struct{}

func (e *ErrAuthorization) Error() string {
	return "admin token missing or mismatched"
}

// ErrMethodNotAllowed indicates an unsupported HTTP method
type ErrMethodNotAllowed struct {
	Allowed []string
}

func (e *ErrMethodNotAllowed) Error() string {
	return fmt.Sprintf("method not allowed; allowed: %s", strings.Join(e.Allowed, ", "))
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// External-service and invalid-rating failures fall through to 500; their
// detail is logged server-side and never sent to the client.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrAuthorization:
		return http.StatusUnauthorized
	case *ErrMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case *ErrConfiguration:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
