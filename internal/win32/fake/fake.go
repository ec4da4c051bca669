// SPDX-License-Identifier: Unlicense OR MIT

// Package fake implements win32.API in memory. It follows the native
// semantics closely enough to exercise window procedures, message loops
// and error handling without user32.
package fake

import (
	"fmt"
	"runtime"
	"sort"
	"unsafe"

	"winwrap.org/internal/win32"
)

const (
	moduleHandle win32.Handle = 0x400000
	cursorBase   win32.Handle = 0x10000
	hdcBase      win32.Handle = 0x20000
	firstAtom    win32.Atom   = 0xC000
	firstHWND    win32.HWND   = 0x100
)

// Client is the client rectangle of every window.
var Client = win32.Rect{Right: 640, Bottom: 480}

var messages = map[uint32]string{
	win32.ERROR_SUCCESS:                 "The operation completed successfully.",
	win32.ERROR_INVALID_HANDLE:          "The handle is invalid.",
	win32.ERROR_INVALID_PARAMETER:       "The parameter is incorrect.",
	win32.ERROR_INVALID_WINDOW_HANDLE:   "Invalid window handle.",
	win32.ERROR_CANNOT_FIND_WND_CLASS:   "Cannot find window class.",
	win32.ERROR_CLASS_ALREADY_EXISTS:    "Class already exists.",
	win32.ERROR_INVALID_INDEX:           "Invalid index.",
	win32.ERROR_TIMEOUT:                 "This operation returned because the timeout period expired.",
	win32.ERROR_RESOURCE_NAME_NOT_FOUND: "The specified resource name cannot be found in the image file.",
}

var cursors = map[win32.Cursor]bool{}

func init() {
	for _, c := range win32.Cursors {
		cursors[c] = true
	}
}

// Call records one window procedure invocation.
type Call struct {
	Hwnd win32.HWND
	Msg  uint32
}

// Fill records one FillRect call.
type Fill struct {
	HDC   win32.Handle
	Rect  win32.Rect
	Brush win32.Handle
}

type class struct {
	atom win32.Atom
	proc win32.WndProcFunc
}

type window struct {
	class    *class
	title    string
	style    uint32
	visible  bool
	dirty    bool
	userdata uintptr
}

// System is an in-memory windowing subsystem for a single thread.
type System struct {
	// Idle is called by GetMessage when there is nothing to retrieve.
	// It reports whether it produced work. Without Idle, or when it
	// reports false, GetMessage fails with ERROR_TIMEOUT where the
	// native call would block forever.
	Idle func(s *System) bool

	// Calls lists every window procedure invocation in order.
	Calls []Call
	// Fills lists every successful FillRect call.
	Fills []Fill
	// BeginPaints and EndPaints count successful BeginPaint and EndPaint
	// calls.
	BeginPaints, EndPaints int

	lastErr   uint32
	fail      map[string]uint32
	callbacks []win32.WndProcFunc
	classes   map[string]*class
	nextAtom  win32.Atom
	windows   map[win32.HWND]*window
	nextHWND  win32.HWND
	painting  map[win32.Handle]win32.HWND
	queue     []win32.Msg
	quit      bool
	exitCode  int32
	time      uint32
}

var _ win32.API = (*System)(nil)

// New returns a System without classes or windows.
func New() *System {
	return &System{
		fail:     make(map[string]uint32),
		classes:  make(map[string]*class),
		nextAtom: firstAtom,
		windows:  make(map[win32.HWND]*window),
		nextHWND: firstHWND,
		painting: make(map[win32.Handle]win32.HWND),
	}
}

// FailNext makes the next call to the named entry point (for example
// "RegisterClass") fail with code.
func (s *System) FailNext(call string, code uint32) {
	s.fail[call] = code
}

func (s *System) injected(call string) bool {
	code, ok := s.fail[call]
	if !ok {
		return false
	}
	delete(s.fail, call)
	s.lastErr = code
	return true
}

// Alive reports whether hwnd is a live window.
func (s *System) Alive(hwnd win32.HWND) bool {
	_, ok := s.windows[hwnd]
	return ok
}

// Windows returns the live window handles in creation order.
func (s *System) Windows() []win32.HWND {
	var hwnds []win32.HWND
	for h := range s.windows {
		hwnds = append(hwnds, h)
	}
	sort.Slice(hwnds, func(i, j int) bool { return hwnds[i] < hwnds[j] })
	return hwnds
}

// Title returns the title of a live window.
func (s *System) Title(hwnd win32.HWND) string {
	if w, ok := s.windows[hwnd]; ok {
		return w.title
	}
	return ""
}

// Style returns the style flags of a live window.
func (s *System) Style(hwnd win32.HWND) uint32 {
	if w, ok := s.windows[hwnd]; ok {
		return w.style
	}
	return 0
}

// Visible reports whether hwnd is shown.
func (s *System) Visible(hwnd win32.HWND) bool {
	w, ok := s.windows[hwnd]
	return ok && w.visible
}

// Count returns the number of procedure calls with message msg for hwnd.
func (s *System) Count(hwnd win32.HWND, msg uint32) int {
	n := 0
	for _, c := range s.Calls {
		if c.Hwnd == hwnd && c.Msg == msg {
			n++
		}
	}
	return n
}

func (s *System) send(hwnd win32.HWND, w *window, msg uint32, wParam, lParam uintptr) uintptr {
	s.Calls = append(s.Calls, Call{Hwnd: hwnd, Msg: msg})
	return w.class.proc(hwnd, msg, wParam, lParam)
}

func (s *System) GetModuleHandle(name *uint16) win32.Handle {
	if name != nil {
		s.lastErr = win32.ERROR_INVALID_HANDLE
		return 0
	}
	return moduleHandle
}

func (s *System) LoadCursor(inst win32.Handle, name uintptr) win32.Handle {
	if s.injected("LoadCursor") {
		return 0
	}
	if inst != 0 || name > 0xffff || !cursors[win32.Cursor(name)] {
		s.lastErr = win32.ERROR_RESOURCE_NAME_NOT_FOUND
		return 0
	}
	return cursorBase + win32.Handle(name)
}

func (s *System) RegisterClass(wc *win32.WndClass) win32.Atom {
	if s.injected("RegisterClass") {
		return 0
	}
	name := win32.UTF16PtrToString(wc.LpszClassName)
	idx := int(wc.LpfnWndProc) - 1
	if name == "" || idx < 0 || idx >= len(s.callbacks) {
		s.lastErr = win32.ERROR_INVALID_PARAMETER
		return 0
	}
	if _, exists := s.classes[name]; exists {
		s.lastErr = win32.ERROR_CLASS_ALREADY_EXISTS
		return 0
	}
	c := &class{atom: s.nextAtom, proc: s.callbacks[idx]}
	s.nextAtom++
	s.classes[name] = c
	return c.atom
}

func (s *System) CreateWindowEx(exStyle uint32, className, windowName *uint16, style uint32, x, y, width, height int32, parent win32.HWND, menu, inst win32.Handle, param uintptr) win32.HWND {
	if s.injected("CreateWindowEx") {
		return 0
	}
	c, ok := s.classes[win32.UTF16PtrToString(className)]
	if !ok {
		s.lastErr = win32.ERROR_CANNOT_FIND_WND_CLASS
		return 0
	}
	if parent != 0 && !s.Alive(parent) {
		s.lastErr = win32.ERROR_INVALID_WINDOW_HANDLE
		return 0
	}
	hwnd := s.nextHWND
	s.nextHWND += 4
	w := &window{
		class:   c,
		title:   win32.UTF16PtrToString(windowName),
		style:   style,
		visible: style&win32.WS_VISIBLE != 0,
		dirty:   true,
	}
	s.windows[hwnd] = w
	cs := &win32.CreateStruct{
		CreateParams: param,
		Instance:     inst,
		Menu:         menu,
		Parent:       parent,
		Cx:           width,
		Cy:           height,
		X:            x,
		Y:            y,
		Style:        int32(style),
		Name:         windowName,
		Class:        className,
		ExStyle:      exStyle,
	}
	lParam := uintptr(unsafe.Pointer(cs))
	if s.send(hwnd, w, win32.WM_NCCREATE, 0, lParam) == win32.FALSE {
		delete(s.windows, hwnd)
		runtime.KeepAlive(cs)
		return 0
	}
	if int32(s.send(hwnd, w, win32.WM_CREATE, 0, lParam)) == -1 {
		s.destroy(hwnd, w)
		runtime.KeepAlive(cs)
		return 0
	}
	runtime.KeepAlive(cs)
	return hwnd
}

func (s *System) ShowWindow(hwnd win32.HWND, cmd int32) bool {
	w, ok := s.windows[hwnd]
	if !ok {
		s.lastErr = win32.ERROR_INVALID_WINDOW_HANDLE
		return false
	}
	was := w.visible
	w.visible = cmd != win32.SW_HIDE
	return was
}

func (s *System) DestroyWindow(hwnd win32.HWND) bool {
	if s.injected("DestroyWindow") {
		return false
	}
	w, ok := s.windows[hwnd]
	if !ok {
		s.lastErr = win32.ERROR_INVALID_WINDOW_HANDLE
		return false
	}
	s.destroy(hwnd, w)
	return true
}

func (s *System) destroy(hwnd win32.HWND, w *window) {
	s.send(hwnd, w, win32.WM_DESTROY, 0, 0)
	s.send(hwnd, w, win32.WM_NCDESTROY, 0, 0)
	delete(s.windows, hwnd)
	q := s.queue[:0]
	for _, m := range s.queue {
		if m.Hwnd != hwnd {
			q = append(q, m)
		}
	}
	s.queue = q
}

func (s *System) InvalidateRect(hwnd win32.HWND, r *win32.Rect, erase bool) bool {
	w, ok := s.windows[hwnd]
	if !ok {
		s.lastErr = win32.ERROR_INVALID_WINDOW_HANDLE
		return false
	}
	w.dirty = true
	return true
}

func (s *System) DefWindowProc(hwnd win32.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	if s.injected("DefWindowProc") {
		return 0
	}
	switch msg {
	case win32.WM_NCCREATE:
		return win32.TRUE
	case win32.WM_CLOSE:
		s.DestroyWindow(hwnd)
	case win32.WM_PAINT:
		var ps win32.PaintStruct
		if s.BeginPaint(hwnd, &ps) != 0 {
			s.EndPaint(hwnd, &ps)
		}
	}
	return 0
}

func (s *System) GetMessage(m *win32.Msg, hwnd win32.HWND, min, max uint32) int32 {
	if s.injected("GetMessage") {
		return -1
	}
	for {
		s.time++
		switch {
		case len(s.queue) > 0:
			*m = s.queue[0]
			s.queue = s.queue[1:]
			m.Time = s.time
			return 1
		case s.quit:
			s.quit = false
			*m = win32.Msg{Message: win32.WM_QUIT, WParam: uintptr(s.exitCode), Time: s.time}
			return 0
		}
		for _, h := range s.Windows() {
			if w := s.windows[h]; w.visible && w.dirty {
				*m = win32.Msg{Hwnd: h, Message: win32.WM_PAINT, Time: s.time}
				return 1
			}
		}
		if s.Idle == nil || !s.Idle(s) {
			s.lastErr = win32.ERROR_TIMEOUT
			return -1
		}
	}
}

func (s *System) TranslateMessage(m *win32.Msg) bool {
	return false
}

func (s *System) DispatchMessage(m *win32.Msg) uintptr {
	if m.Hwnd == 0 {
		return 0
	}
	w, ok := s.windows[m.Hwnd]
	if !ok {
		s.lastErr = win32.ERROR_INVALID_WINDOW_HANDLE
		return 0
	}
	return s.send(m.Hwnd, w, m.Message, m.WParam, m.LParam)
}

func (s *System) PostMessage(hwnd win32.HWND, msg uint32, wParam, lParam uintptr) bool {
	if hwnd != 0 && !s.Alive(hwnd) {
		s.lastErr = win32.ERROR_INVALID_WINDOW_HANDLE
		return false
	}
	s.queue = append(s.queue, win32.Msg{Hwnd: hwnd, Message: msg, WParam: wParam, LParam: lParam})
	return true
}

func (s *System) PostQuitMessage(exitCode int32) {
	s.quit = true
	s.exitCode = exitCode
}

func (s *System) BeginPaint(hwnd win32.HWND, ps *win32.PaintStruct) win32.Handle {
	if s.injected("BeginPaint") {
		return 0
	}
	w, ok := s.windows[hwnd]
	if !ok {
		s.lastErr = win32.ERROR_INVALID_WINDOW_HANDLE
		return 0
	}
	hdc := hdcBase + win32.Handle(hwnd)
	*ps = win32.PaintStruct{Hdc: hdc, RcPaint: Client}
	if w.dirty {
		ps.FErase = win32.TRUE
	}
	w.dirty = false
	s.painting[hdc] = hwnd
	s.BeginPaints++
	return hdc
}

func (s *System) EndPaint(hwnd win32.HWND, ps *win32.PaintStruct) bool {
	if owner, ok := s.painting[ps.Hdc]; ok && owner == hwnd {
		delete(s.painting, ps.Hdc)
	}
	s.EndPaints++
	return true
}

// Painting reports whether a paint operation is open on hwnd.
func (s *System) Painting(hwnd win32.HWND) bool {
	for _, h := range s.painting {
		if h == hwnd {
			return true
		}
	}
	return false
}

func (s *System) FillRect(hdc win32.Handle, r *win32.Rect, brush win32.Handle) int32 {
	if s.injected("FillRect") {
		return 0
	}
	if _, ok := s.painting[hdc]; !ok || r == nil {
		s.lastErr = win32.ERROR_INVALID_HANDLE
		return 0
	}
	s.Fills = append(s.Fills, Fill{HDC: hdc, Rect: *r, Brush: brush})
	return 1
}

// SetWindowLongPtr leaves the error code untouched on success, like
// the native function.
func (s *System) SetWindowLongPtr(hwnd win32.HWND, index int32, value uintptr) uintptr {
	if s.injected("SetWindowLongPtr") {
		return 0
	}
	w, ok := s.windows[hwnd]
	switch {
	case !ok:
		s.lastErr = win32.ERROR_INVALID_WINDOW_HANDLE
		return 0
	case index != win32.GWLP_USERDATA:
		s.lastErr = win32.ERROR_INVALID_INDEX
		return 0
	}
	prev := w.userdata
	w.userdata = value
	return prev
}

func (s *System) GetWindowLongPtr(hwnd win32.HWND, index int32) uintptr {
	if s.injected("GetWindowLongPtr") {
		return 0
	}
	w, ok := s.windows[hwnd]
	switch {
	case !ok:
		s.lastErr = win32.ERROR_INVALID_WINDOW_HANDLE
		return 0
	case index != win32.GWLP_USERDATA:
		s.lastErr = win32.ERROR_INVALID_INDEX
		return 0
	}
	return w.userdata
}

func (s *System) GetLastError() uint32 {
	return s.lastErr
}

func (s *System) SetLastError(code uint32) {
	s.lastErr = code
}

func (s *System) FormatMessage(code uint32) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return fmt.Sprintf("Unknown error %#x.", code)
}

func (s *System) NewCallback(fn win32.WndProcFunc) uintptr {
	s.callbacks = append(s.callbacks, fn)
	return uintptr(len(s.callbacks))
}
