package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "hr-administration-api/pkg/errors"
)

// ErrorHandler provides centralized error handling for handlers.
type ErrorHandler struct {
	Logger *log.Logger
}

// NewErrorHandler creates a new ErrorHandler instance.
func NewErrorHandler(logger *log.Logger) *ErrorHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorHandler{Logger: logger}
}

// HandleError maps a service error onto the error envelope. Application errors
// carry their own HTTP status; anything else is a 500.
func (e *ErrorHandler) HandleError(w http.ResponseWriter, err error, operation string) {
	e.Logger.Printf("Error during %s: %v", operation, err)

	if appErr, ok := apperrors.AsAppError(err); ok {
		e.send(w, appErr.GetHTTPStatus(), appErr.Message, appErr.Fields)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		e.send(w, http.StatusRequestTimeout, "Operation timed out", nil)
		return
	}
	e.send(w, http.StatusInternalServerError, "Internal server error", nil)
}

// HandleJSONDecodeError handles request body decoding errors.
func (e *ErrorHandler) HandleJSONDecodeError(w http.ResponseWriter, err error) {
	e.Logger.Printf("JSON decode error: %v", err)
	e.send(w, http.StatusBadRequest, "Invalid JSON format", nil)
}

// HandleBadRequest handles malformed request parameters.
func (e *ErrorHandler) HandleBadRequest(w http.ResponseWriter, message string) {
	e.send(w, http.StatusBadRequest, message, nil)
}

func (e *ErrorHandler) send(w http.ResponseWriter, statusCode int, message string, fields []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := Response{Success: false, Message: message, Errors: fields}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		e.Logger.Printf("Failed to encode error response: %v", err)
	}
}
