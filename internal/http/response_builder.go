// Package http provides the JSON API surface of the application.
//
// This file implements the Builder Pattern for constructing JSON
// responses and the mapping from domain errors to HTTP status codes.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hourly/internal/core"
)

// JSONResponseBuilder provides a fluent API for building JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	body       any
	headers    map[string]string
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Body sets the value to be JSON-encoded as the response body.
func (b *JSONResponseBuilder) Body(v any) *JSONResponseBuilder {
	b.body = v
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}

	if b.body == nil {
		w.WriteHeader(b.statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	if err := json.NewEncoder(w).Encode(b.body); err != nil {
		slog.Error("Response encoding failed", "error", err)
	}
}

// errorBody is the uniform JSON error shape.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ErrorResponse creates an error response with the standard body shape.
func ErrorResponse(statusCode int, message string) *JSONResponseBuilder {
	return NewJSONResponse().
		Status(statusCode).
		Body(errorBody{Error: message})
}

// writeDomainError maps domain errors onto HTTP status codes and writes
// the uniform error body.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		NewJSONResponse().
			Status(http.StatusUnprocessableEntity).
			Body(errorBody{Error: verr.Error(), Field: verr.Field}).
			Write(w)
	case errors.Is(err, core.ErrDuplicateUsername):
		ErrorResponse(http.StatusConflict, err.Error()).Write(w)
	case errors.Is(err, core.ErrInvalidCredentials):
		ErrorResponse(http.StatusUnauthorized, err.Error()).Write(w)
	case errors.Is(err, core.ErrExpenseNotFound):
		ErrorResponse(http.StatusNotFound, err.Error()).Write(w)
	case errors.Is(err, core.ErrUserNotFound):
		ErrorResponse(http.StatusNotFound, err.Error()).Write(w)
	default:
		slog.Error("Unhandled domain error", "error", err)
		ErrorResponse(http.StatusInternalServerError, "internal error").Write(w)
	}
}

// writeUnauthenticated writes the 401 used when no session is established.
func writeUnauthenticated(w http.ResponseWriter) {
	ErrorResponse(http.StatusUnauthorized, "no active session").Write(w)
}
