package relay

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	Internal ErrorKind = iota
	BadRequest
	UpstreamUnavailable
	EmptyUpstreamResult
)

func (k ErrorKind) String() string {
	switch k {
	case BadRequest:
		return "bad_request"
	case UpstreamUnavailable:
		return "upstream_unavailable"
	case EmptyUpstreamResult:
		return "empty_upstream_result"
	default:
		return "internal"
	}
}

// StatusCode is the HTTP status returned to the caller for the kind.
func (k ErrorKind) StatusCode() int {
	switch k {
	case BadRequest:
		return http.StatusBadRequest
	case UpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failure to relay a message. Message is shown to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) Unwrap() error {
	return e.Err
}

// AsError returns err as an Error, treating anything unclassified as Internal.
func AsError(err error) Error {
	var re Error
	if errors.As(err, &re) {
		return re
	}
	return Error{
		Kind:    Internal,
		Message: err.Error(),
		Err:     err,
	}
}
