// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"unsafe"

	"go.uber.org/zap"

	"winwrap.org/internal/win32"
)

// Proc is a window procedure that owns one value of type T per window.
//
// The value is boxed by the creator with Values.Box and its token
// passed as the creation parameter. WM_NCCREATE installs it, WM_PAINT
// hands it to OnPaint and WM_DESTROY reclaims it and quits the message
// loop. Messages for windows without an installed value go to
// DefWindowProc.
type Proc[T any] struct {
	sys    *System
	values *Values[T]

	// OnPaint is called with the window value before the update
	// region is filled.
	OnPaint func(hwnd win32.HWND, v *T)
	// OnRelease is called with the reclaimed value.
	OnRelease func(hwnd win32.HWND, v T)
	// Background fills the update region. The default is
	// COLOR_WINDOW.
	Background win32.SysColor

	handlers map[uint32]func(hwnd win32.HWND, wParam, lParam uintptr) uintptr
}

// NewProc returns a window procedure that takes its window values from
// values.
func NewProc[T any](sys *System, values *Values[T]) *Proc[T] {
	p := &Proc[T]{
		sys:        sys,
		values:     values,
		Background: win32.COLOR_WINDOW,
	}
	p.handlers = map[uint32]func(win32.HWND, uintptr, uintptr) uintptr{
		win32.WM_NCCREATE: p.create,
		win32.WM_CLOSE:    p.close,
		win32.WM_PAINT:    p.paint,
		win32.WM_DESTROY:  p.destroy,
	}
	return p
}

// Values returns the value table of p.
func (p *Proc[T]) Values() *Values[T] {
	return p.values
}

// WndProc is the window procedure. Its result depends on msg:
// TRUE or FALSE for WM_NCCREATE, zero for other handled messages and
// the DefWindowProc result for everything else.
func (p *Proc[T]) WndProc(hwnd win32.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	if h, ok := p.handlers[msg]; ok {
		return h(hwnd, wParam, lParam)
	}
	return p.sys.DefWindowProc(hwnd, msg, wParam, lParam)
}

func (p *Proc[T]) create(hwnd win32.HWND, wParam, lParam uintptr) uintptr {
	if lParam == 0 {
		return win32.FALSE
	}
	cs := (*win32.CreateStruct)(unsafe.Pointer(lParam))
	t := Token(cs.CreateParams)
	if t == 0 {
		p.sys.log.Warn("window creation rejected: no creation parameter", zap.Uintptr("hwnd", uintptr(hwnd)))
		return win32.FALSE
	}
	if _, ok := p.values.Install(hwnd, t); !ok {
		p.sys.log.Warn("window creation rejected: unknown value", zap.Uintptr("hwnd", uintptr(hwnd)), zap.Uintptr("token", uintptr(t)))
		return win32.FALSE
	}
	if _, err := SetUserData(p.sys, hwnd, t); err != nil {
		p.sys.log.Error("window creation rejected", zap.Error(err))
		p.values.uninstall(hwnd)
		return win32.FALSE
	}
	// Let the system finish non-client setup such as the title.
	if p.sys.DefWindowProc(hwnd, win32.WM_NCCREATE, wParam, lParam) == win32.FALSE {
		p.sys.log.Warn("window creation rejected by DefWindowProc", zap.Uintptr("hwnd", uintptr(hwnd)))
		p.values.uninstall(hwnd)
		return win32.FALSE
	}
	return win32.TRUE
}

func (p *Proc[T]) close(hwnd win32.HWND, wParam, lParam uintptr) uintptr {
	if err := p.sys.DestroyWindow(hwnd); err != nil {
		p.sys.log.Error("close", zap.Error(err))
	}
	return 0
}

// lookup returns the installed value of hwnd and its token. The value
// table decides ownership; the user data slot is only checked against
// it.
func (p *Proc[T]) lookup(hwnd win32.HWND) (Token, *T, bool) {
	t, v, ok := p.values.installed(hwnd)
	if !ok {
		return 0, nil, false
	}
	switch slot, err := GetUserData[Token](p.sys, hwnd); {
	case err != nil:
		p.sys.log.Error("user data", zap.Uintptr("hwnd", uintptr(hwnd)), zap.Error(err))
	case slot != t:
		p.sys.log.Warn("user data does not match the installed value",
			zap.Uintptr("hwnd", uintptr(hwnd)), zap.Uintptr("slot", uintptr(slot)), zap.Uintptr("token", uintptr(t)))
	}
	return t, v, true
}

func (p *Proc[T]) paint(hwnd win32.HWND, wParam, lParam uintptr) uintptr {
	_, v, ok := p.lookup(hwnd)
	if !ok {
		return p.sys.DefWindowProc(hwnd, win32.WM_PAINT, wParam, lParam)
	}
	if p.OnPaint != nil {
		p.OnPaint(hwnd, v)
	}
	err := p.sys.Paint(hwnd, func(hdc win32.Handle, erase bool, r win32.Rect) error {
		return p.sys.FillRect(hdc, r, p.Background)
	})
	if err != nil {
		p.sys.log.Error("paint", zap.Uintptr("hwnd", uintptr(hwnd)), zap.Error(err))
	}
	return 0
}

func (p *Proc[T]) destroy(hwnd win32.HWND, wParam, lParam uintptr) uintptr {
	t, _, ok := p.lookup(hwnd)
	if !ok {
		return p.sys.DefWindowProc(hwnd, win32.WM_DESTROY, wParam, lParam)
	}
	v, ok := p.values.Reclaim(hwnd, t)
	if !ok {
		return p.sys.DefWindowProc(hwnd, win32.WM_DESTROY, wParam, lParam)
	}
	if _, err := SetUserData[Token](p.sys, hwnd, 0); err != nil {
		p.sys.log.Warn("clear user data", zap.Error(err))
	}
	if p.OnRelease != nil {
		p.OnRelease(hwnd, v)
	}
	p.sys.PostQuit(0)
	return 0
}
