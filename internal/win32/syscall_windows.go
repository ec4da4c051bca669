// SPDX-License-Identifier: Unlicense OR MIT

package win32

import (
	"strings"
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

var (
	kernel32          = syscall.NewLazySystemDLL("kernel32.dll")
	_GetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
	_SetLastError     = kernel32.NewProc("SetLastError")

	user32            = syscall.NewLazySystemDLL("user32.dll")
	_BeginPaint       = user32.NewProc("BeginPaint")
	_CreateWindowEx   = user32.NewProc("CreateWindowExW")
	_DefWindowProc    = user32.NewProc("DefWindowProcW")
	_DestroyWindow    = user32.NewProc("DestroyWindow")
	_DispatchMessage  = user32.NewProc("DispatchMessageW")
	_EndPaint         = user32.NewProc("EndPaint")
	_FillRect         = user32.NewProc("FillRect")
	_GetMessage       = user32.NewProc("GetMessageW")
	_InvalidateRect   = user32.NewProc("InvalidateRect")
	_LoadCursor       = user32.NewProc("LoadCursorW")
	_PostMessage      = user32.NewProc("PostMessageW")
	_PostQuitMessage  = user32.NewProc("PostQuitMessage")
	_RegisterClass    = user32.NewProc("RegisterClassW")
	_ShowWindow       = user32.NewProc("ShowWindow")
	_TranslateMessage = user32.NewProc("TranslateMessage")
	_GetWindowLongPtr = user32.NewProc(longPtrName("GetWindowLong"))
	_SetWindowLongPtr = user32.NewProc(longPtrName("SetWindowLong"))
)

// longPtrName returns the exported name of the *WindowLongPtrW
// functions. 32-bit user32 only exports the *WindowLongW variants.
func longPtrName(base string) string {
	if unsafe.Sizeof(uintptr(0)) == 4 {
		return base + "W"
	}
	return base + "PtrW"
}

// native calls user32 and kernel32. The thread error code is captured
// by the runtime right after each call and kept in last, so that no
// other system call can overwrite it before GetLastError reads it.
type native struct {
	last uint32
}

// NewSystem returns the user32 implementation of API. The caller must
// lock the calling goroutine to its thread for as long as the API is
// used.
func NewSystem() (API, error) {
	if err := user32.Load(); err != nil {
		return nil, err
	}
	if err := kernel32.Load(); err != nil {
		return nil, err
	}
	return &native{}, nil
}

// result records the error code of a call. Pointer arguments must be
// converted to uintptr in the argument list of LazyProc.Call itself so
// that they stay alive and in place for the duration of the call.
func (n *native) result(r, _ uintptr, err error) uintptr {
	n.last = 0
	if errno, ok := err.(syscall.Errno); ok {
		n.last = uint32(errno)
	}
	return r
}

func boolArg(b bool) uintptr {
	if b {
		return TRUE
	}
	return FALSE
}

func (n *native) GetModuleHandle(name *uint16) Handle {
	return Handle(n.result(_GetModuleHandleW.Call(uintptr(unsafe.Pointer(name)))))
}

func (n *native) LoadCursor(inst Handle, name uintptr) Handle {
	return Handle(n.result(_LoadCursor.Call(uintptr(inst), name)))
}

func (n *native) RegisterClass(wc *WndClass) Atom {
	return Atom(n.result(_RegisterClass.Call(uintptr(unsafe.Pointer(wc)))))
}

func (n *native) CreateWindowEx(exStyle uint32, className, windowName *uint16, style uint32, x, y, width, height int32, parent HWND, menu, inst Handle, param uintptr) HWND {
	return HWND(n.result(_CreateWindowEx.Call(
		uintptr(exStyle),
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(windowName)),
		uintptr(style),
		uintptr(x), uintptr(y),
		uintptr(width), uintptr(height),
		uintptr(parent),
		uintptr(menu),
		uintptr(inst),
		param)))
}

func (n *native) ShowWindow(hwnd HWND, cmd int32) bool {
	return n.result(_ShowWindow.Call(uintptr(hwnd), uintptr(cmd))) != 0
}

func (n *native) DestroyWindow(hwnd HWND) bool {
	return n.result(_DestroyWindow.Call(uintptr(hwnd))) != 0
}

func (n *native) InvalidateRect(hwnd HWND, r *Rect, erase bool) bool {
	return n.result(_InvalidateRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(r)), boolArg(erase))) != 0
}

func (n *native) DefWindowProc(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr {
	return n.result(_DefWindowProc.Call(uintptr(hwnd), uintptr(msg), wParam, lParam))
}

func (n *native) GetMessage(m *Msg, hwnd HWND, min, max uint32) int32 {
	return int32(n.result(_GetMessage.Call(uintptr(unsafe.Pointer(m)), uintptr(hwnd), uintptr(min), uintptr(max))))
}

func (n *native) TranslateMessage(m *Msg) bool {
	return n.result(_TranslateMessage.Call(uintptr(unsafe.Pointer(m)))) != 0
}

func (n *native) DispatchMessage(m *Msg) uintptr {
	return n.result(_DispatchMessage.Call(uintptr(unsafe.Pointer(m))))
}

func (n *native) PostMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) bool {
	return n.result(_PostMessage.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)) != 0
}

func (n *native) PostQuitMessage(exitCode int32) {
	n.result(_PostQuitMessage.Call(uintptr(exitCode)))
}

func (n *native) BeginPaint(hwnd HWND, ps *PaintStruct) Handle {
	return Handle(n.result(_BeginPaint.Call(uintptr(hwnd), uintptr(unsafe.Pointer(ps)))))
}

func (n *native) EndPaint(hwnd HWND, ps *PaintStruct) bool {
	return n.result(_EndPaint.Call(uintptr(hwnd), uintptr(unsafe.Pointer(ps)))) != 0
}

func (n *native) FillRect(hdc Handle, r *Rect, brush Handle) int32 {
	return int32(n.result(_FillRect.Call(uintptr(hdc), uintptr(unsafe.Pointer(r)), uintptr(brush))))
}

func (n *native) SetWindowLongPtr(hwnd HWND, index int32, value uintptr) uintptr {
	return n.result(_SetWindowLongPtr.Call(uintptr(hwnd), uintptr(index), value))
}

func (n *native) GetWindowLongPtr(hwnd HWND, index int32) uintptr {
	return n.result(_GetWindowLongPtr.Call(uintptr(hwnd), uintptr(index)))
}

func (n *native) GetLastError() uint32 {
	return n.last
}

func (n *native) SetLastError(code uint32) {
	_SetLastError.Call(uintptr(code))
	n.last = code
}

func (n *native) FormatMessage(code uint32) string {
	// Errno.Error calls FormatMessageW with the system message table.
	return strings.TrimSpace(syscall.Errno(code).Error())
}

func (n *native) NewCallback(fn WndProcFunc) uintptr {
	return syscall.NewCallback(func(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr {
		return fn(hwnd, msg, wParam, lParam)
	})
}
