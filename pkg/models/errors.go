package models

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

var ErrBadRequest = errors.New("bad request")

type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("bad request: %s", e.Message)
}

func (e *BadRequestError) Unwrap() error {
	return ErrBadRequest
}

func NewBadRequestError(message string) error {
	return &BadRequestError{Message: message}
}

// ErrDeadlineExceeded marks a fetch that ran past its soft timeout. Handlers
// translate it into an alternative-workflow chat response, not a hard error.
var ErrDeadlineExceeded = errors.New("operation deadline exceeded")

// APIError wraps a non-2xx response from the Docebo API, carrying the HTTP
// status and the response body text.
type APIError struct {
	StatusCode int
	Body       string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("docebo api error: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func NewAPIError(endpoint string, statusCode int, body string) error {
	return &APIError{Endpoint: endpoint, StatusCode: statusCode, Body: body}
}
