package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping and recovery policy.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound: unknown session id. Surfaced, no retry.
	KindNotFound
	// KindInvalidState: operation not valid for the session's current phase.
	KindInvalidState
	// KindValidation: malformed request body or parameters.
	KindValidation
	// KindCollaboratorTimeout: an external call exceeded its deadline.
	KindCollaboratorTimeout
	// KindCollaboratorFailure: an external call failed outright.
	KindCollaboratorFailure
	// KindMalformedFrame: a real-time frame could not be decoded or routed.
	KindMalformedFrame
)

// Error is the typed error carried across service boundaries.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func NotFound(msg string) *Error            { return New(KindNotFound, msg) }
func InvalidState(msg string) *Error        { return New(KindInvalidState, msg) }
func Validation(msg string) *Error          { return New(KindValidation, msg) }
func MalformedFrame(msg string) *Error      { return New(KindMalformedFrame, msg) }
func CollaboratorTimeout(msg string) *Error { return New(KindCollaboratorTimeout, msg) }
func CollaboratorFailure(msg string) *Error { return New(KindCollaboratorFailure, msg) }

// KindOf extracts the Kind from any error in the chain, KindUnknown otherwise.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
