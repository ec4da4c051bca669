// SPDX-License-Identifier: Unlicense OR MIT

package win32

import (
	"errors"
	"unicode/utf16"
	"unsafe"
)

// API is the set of native entry points. Every method mirrors the
// corresponding Win32 function: failures are reported through the
// return value sentinel and GetLastError, never through a Go error.
//
// Implementations are bound to the thread that owns the message queue.
type API interface {
	GetModuleHandle(name *uint16) Handle
	LoadCursor(inst Handle, name uintptr) Handle
	RegisterClass(wc *WndClass) Atom
	CreateWindowEx(exStyle uint32, className, windowName *uint16, style uint32, x, y, width, height int32, parent HWND, menu, inst Handle, param uintptr) HWND
	ShowWindow(hwnd HWND, cmd int32) bool
	DestroyWindow(hwnd HWND) bool
	InvalidateRect(hwnd HWND, r *Rect, erase bool) bool
	DefWindowProc(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr

	// GetMessage returns -1 on error, 0 when WM_QUIT was retrieved and
	// a positive value otherwise.
	GetMessage(m *Msg, hwnd HWND, min, max uint32) int32
	TranslateMessage(m *Msg) bool
	DispatchMessage(m *Msg) uintptr
	PostMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) bool
	PostQuitMessage(exitCode int32)

	BeginPaint(hwnd HWND, ps *PaintStruct) Handle
	EndPaint(hwnd HWND, ps *PaintStruct) bool
	FillRect(hdc Handle, r *Rect, brush Handle) int32

	SetWindowLongPtr(hwnd HWND, index int32, value uintptr) uintptr
	GetWindowLongPtr(hwnd HWND, index int32) uintptr

	GetLastError() uint32
	SetLastError(code uint32)
	// FormatMessage renders the system message for an error code.
	FormatMessage(code uint32) string

	// NewCallback converts fn to a value suitable for
	// WndClass.LpfnWndProc.
	NewCallback(fn WndProcFunc) uintptr
}

// ErrUnsupported is returned by NewSystem on platforms without user32.
var ErrUnsupported = errors.New("win32: native windowing is not available on this platform")

// UTF16PtrFromString returns a pointer to the NUL-terminated UTF-16
// encoding of s. It fails if s contains a NUL.
func UTF16PtrFromString(s string) (*uint16, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return nil, errors.New("win32: string with NUL passed to UTF16PtrFromString")
		}
	}
	a := utf16.Encode([]rune(s + "\x00"))
	return &a[0], nil
}

// UTF16PtrToString decodes the NUL-terminated UTF-16 string at p.
func UTF16PtrToString(p *uint16) string {
	if p == nil {
		return ""
	}
	var s []uint16
	for ptr := unsafe.Pointer(p); ; ptr = unsafe.Add(ptr, 2) {
		c := *(*uint16)(ptr)
		if c == 0 {
			break
		}
		s = append(s, c)
	}
	return string(utf16.Decode(s))
}
