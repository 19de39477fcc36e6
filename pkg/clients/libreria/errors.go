package libreria

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

// APIError describes a failed call. Err is one of the models error
// sentinels so callers can use errors.Is.
type APIError struct {
	Op      string
	Kind    models.Kind
	Status  int
	Message string
	Err     error
	Cause   error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %v", e.Op, e.Kind, e.Err)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *APIError) Unwrap() error { return e.Err }

func newStatusError(op string, kind models.Kind, status int, message string) *APIError {
	var sentinel error
	switch status {
	case http.StatusNotFound:
		sentinel = models.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		sentinel = models.ErrValidation
	default:
		sentinel = models.ErrUnknown
	}
	return &APIError{Op: op, Kind: kind, Status: status, Message: message, Err: sentinel}
}

// errorBody captures the common shapes of API error payloads.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b *errorBody) text() string {
	if b == nil {
		return ""
	}
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}
