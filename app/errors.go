// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
)

// Kind classifies native failures.
type Kind uint8

const (
	// ResourceNotFound is returned when a predefined resource such as a
	// cursor cannot be loaded.
	ResourceNotFound Kind = iota + 1
	// RegistrationFailed is returned when a window class cannot be
	// registered.
	RegistrationFailed
	// WindowCreationFailed is returned when CreateWindowEx returns no
	// window.
	WindowCreationFailed
	// MessageRetrievalFailed is returned when GetMessage reports an
	// error.
	MessageRetrievalFailed
	// OperationFailed covers every other native failure.
	OperationFailed
)

func (k Kind) String() string {
	switch k {
	case ResourceNotFound:
		return "resource not found"
	case RegistrationFailed:
		return "registration failed"
	case WindowCreationFailed:
		return "window creation failed"
	case MessageRetrievalFailed:
		return "message retrieval failed"
	case OperationFailed:
		return "operation failed"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Error is a native failure together with the thread error code read
// immediately after the failing call.
type Error struct {
	Kind Kind
	// Op is the native function that failed.
	Op string
	// Code is the value of GetLastError after the call. It may be zero
	// when the system does not set one, for example when a window
	// procedure rejects WM_NCCREATE.
	Code uint32
	// Msg is the system message for Code.
	Msg string
}

// Sentinel errors for use with errors.Is.
var (
	ErrResourceNotFound       = &Error{Kind: ResourceNotFound}
	ErrRegistrationFailed     = &Error{Kind: RegistrationFailed}
	ErrWindowCreationFailed   = &Error{Kind: WindowCreationFailed}
	ErrMessageRetrievalFailed = &Error{Kind: MessageRetrievalFailed}
	ErrOperationFailed        = &Error{Kind: OperationFailed}
)

func (e *Error) Error() string {
	if e.Op == "" {
		return "app: " + e.Kind.String()
	}
	if e.Msg == "" {
		return fmt.Sprintf("app: %s: %s (code %d)", e.Op, e.Kind, e.Code)
	}
	return fmt.Sprintf("app: %s: %s: %s (code %d)", e.Op, e.Kind, e.Msg, e.Code)
}

// Is reports whether target is an *Error of the same kind. A non-zero
// Code in target must also match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == 0 || t.Code == e.Code)
}
