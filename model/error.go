package model

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	ErrorKindMissingIdentifier ErrorKind = "MissingIdentifier"
	ErrorKindInvalidFormat     ErrorKind = "InvalidFormat"
	ErrorKindNotFound          ErrorKind = "NotFound"
	ErrorKindUpstreamFailure   ErrorKind = "UpstreamFailure"
	ErrorKindMissingURL        ErrorKind = "MissingUrl"
	ErrorKindInvalidScheme     ErrorKind = "InvalidScheme"
	ErrorKindStreamUnavailable ErrorKind = "StreamUnavailable"
	ErrorKindServerError       ErrorKind = "ServerError"
)

// Tag is the stable string callers see in the "error" field of a response.
// Upstream and stream failures are reported as serverError.
func (k ErrorKind) Tag() string {
	switch k {
	case ErrorKindMissingIdentifier:
		return "noShortcode"
	case ErrorKindInvalidFormat:
		return "invalidFormat"
	case ErrorKindNotFound:
		return "notFound"
	case ErrorKindMissingURL:
		return "missingUrl"
	case ErrorKindInvalidScheme:
		return "invalidScheme"
	default:
		return "serverError"
	}
}

func (k ErrorKind) HTTPStatus() int {
	switch k {
	case ErrorKindMissingIdentifier, ErrorKindInvalidFormat, ErrorKindMissingURL, ErrorKindInvalidScheme:
		return http.StatusBadRequest
	case ErrorKindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ClientCaused reports whether the kind is the caller's fault rather than a
// failure on our side or upstream.
func (k ErrorKind) ClientCaused() bool {
	return k.HTTPStatus() < http.StatusInternalServerError
}

type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError classifies cause under kind. The cause's text becomes the message.
func WrapError(kind ErrorKind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: errors.Wrap(cause, message).Error(), cause: cause}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf classifies err. Anything that is not a *Error is a ServerError.
func KindOf(err error) ErrorKind {
	var merr *Error
	if errors.As(err, &merr) {
		return merr.Kind
	}
	return ErrorKindServerError
}

// MessageOf returns the human readable part of err.
func MessageOf(err error) string {
	var merr *Error
	if errors.As(err, &merr) {
		return merr.Message
	}
	return err.Error()
}
