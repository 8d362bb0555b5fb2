package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidArgument is returned by the calculator for degenerate input that
// should have been rejected by validation.
var ErrInvalidArgument = errors.New("invalid argument")

// Kind classifies where an Error came from.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindRemoteAccess    Kind = "remote_access"
	KindInvalidArgument Kind = "invalid_argument"
)

// Message is a single human-readable validation or failure message.
type Message struct {
	Message string `json:"message"`
}

// NewMessage formats a Message.
func NewMessage(format string, args ...any) Message {
	return Message{Message: fmt.Sprintf(format, args...)}
}

// StatusCoder is implemented by store errors that carry their own HTTP-like status.
type StatusCoder interface {
	StatusCode() int
}

// Error is the structured failure returned by the public calculation entry
// points. It serializes to {"statusCode": ..., "message": [...]}.
type Error struct {
	Kind       Kind      `json:"-"`
	StatusCode int       `json:"statusCode"`
	Messages   []Message `json:"message"`
	cause      error
}

// NewValidationError reports rejected caller input.
func NewValidationError(msgs []Message) *Error {
	return &Error{
		Kind:       KindValidation,
		StatusCode: http.StatusBadRequest,
		Messages:   msgs,
	}
}

// NewRemoteAccessError wraps a failed store read. The status is internal unless
// the store error supplies a more specific one.
func NewRemoteAccessError(err error) *Error {
	status := http.StatusInternalServerError
	var sc StatusCoder
	if errors.As(err, &sc) && sc.StatusCode() >= 400 && sc.StatusCode() < 600 {
		status = sc.StatusCode()
	}
	return &Error{
		Kind:       KindRemoteAccess,
		StatusCode: status,
		Messages:   []Message{{Message: err.Error()}},
		cause:      err,
	}
}

// NewInvalidArgumentError reports a validator/calculator contract mismatch.
func NewInvalidArgumentError(err error) *Error {
	return &Error{
		Kind:       KindInvalidArgument,
		StatusCode: http.StatusInternalServerError,
		Messages:   []Message{{Message: err.Error()}},
		cause:      err,
	}
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		parts = append(parts, m.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return e.cause
}
