// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"winwrap.org/internal/win32"
)

// Token identifies a value in a Values table. It is the opaque word
// passed as the creation parameter and stored in the native user data
// slot; the value itself stays in Go memory.
type Token uintptr

// Values owns the per-window values of a window procedure. A value is
// boxed before its window is created, installed once when the window
// accepts creation and reclaimed once when the window is destroyed.
type Values[T any] struct {
	next    Token
	pending map[Token]*T
	live    map[win32.HWND]*slot[T]
}

type slot[T any] struct {
	token Token
	v     *T
}

// NewValues returns an empty table.
func NewValues[T any]() *Values[T] {
	return &Values[T]{
		pending: make(map[Token]*T),
		live:    make(map[win32.HWND]*slot[T]),
	}
}

// Box takes ownership of v until a window installs it.
func (vs *Values[T]) Box(v T) Token {
	vs.next++
	vs.pending[vs.next] = &v
	return vs.next
}

// Install moves the boxed value t to hwnd. It fails if t is not boxed
// or hwnd already owns a value.
func (vs *Values[T]) Install(hwnd win32.HWND, t Token) (*T, bool) {
	v, ok := vs.pending[t]
	if !ok {
		return nil, false
	}
	if _, exists := vs.live[hwnd]; exists {
		return nil, false
	}
	delete(vs.pending, t)
	vs.live[hwnd] = &slot[T]{token: t, v: v}
	return v, true
}

// uninstall undoes Install for a window whose creation was aborted, so
// that the creator can Discard the value.
func (vs *Values[T]) uninstall(hwnd win32.HWND) {
	if s, ok := vs.live[hwnd]; ok {
		delete(vs.live, hwnd)
		vs.pending[s.token] = s.v
	}
}

// installed returns the token and value owned by hwnd.
func (vs *Values[T]) installed(hwnd win32.HWND) (Token, *T, bool) {
	s, ok := vs.live[hwnd]
	if !ok {
		return 0, nil, false
	}
	return s.token, s.v, true
}

// Get returns the value owned by hwnd, provided it was installed with
// token t.
func (vs *Values[T]) Get(hwnd win32.HWND, t Token) (*T, bool) {
	s, ok := vs.live[hwnd]
	if !ok || s.token != t {
		return nil, false
	}
	return s.v, true
}

// Reclaim removes and returns the value owned by hwnd. Only the first
// call for an installation succeeds.
func (vs *Values[T]) Reclaim(hwnd win32.HWND, t Token) (T, bool) {
	s, ok := vs.live[hwnd]
	if !ok || s.token != t {
		var zero T
		return zero, false
	}
	delete(vs.live, hwnd)
	return *s.v, true
}

// Discard drops a boxed value that was never installed, for example
// because window creation failed.
func (vs *Values[T]) Discard(t Token) (T, bool) {
	v, ok := vs.pending[t]
	if !ok {
		var zero T
		return zero, false
	}
	delete(vs.pending, t)
	return *v, true
}

// Len returns the number of boxed and installed values.
func (vs *Values[T]) Len() int {
	return len(vs.pending) + len(vs.live)
}
