package models

import "errors"

var (
	// ErrNetwork indicates the API could not be reached.
	ErrNetwork = errors.New("network failure")
	// ErrNotFound indicates the id does not exist server-side.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates the server rejected the payload.
	ErrValidation = errors.New("validation error")
	// ErrUnknown covers every other remote failure.
	ErrUnknown = errors.New("unknown error")
	// ErrUnsupported indicates the resource does not allow the operation.
	ErrUnsupported = errors.New("operation not supported")
)

// ErrorKind is the coarse classification shown to users.
type ErrorKind string

const (
	ErrorNone       ErrorKind = ""
	ErrorNetwork    ErrorKind = "network"
	ErrorNotFound   ErrorKind = "not_found"
	ErrorValidation ErrorKind = "validation"
	ErrorUnknown    ErrorKind = "unknown"
)

// KindOf classifies err into the error taxonomy.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, ErrNetwork):
		return ErrorNetwork
	case errors.Is(err, ErrNotFound):
		return ErrorNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnsupported):
		return ErrorValidation
	default:
		return ErrorUnknown
	}
}
