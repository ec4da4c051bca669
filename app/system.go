// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"go.uber.org/zap"

	"winwrap.org/internal/win32"
)

// System adapts a win32.API: every native sentinel failure is returned
// as an *Error carrying the thread error code.
type System struct {
	api win32.API
	log *zap.Logger
}

// Message is a message retrieved by NextMessage.
type Message struct {
	win32.Msg
	quit bool
}

// Quit reports whether m is the WM_QUIT message that closes the queue.
func (m Message) Quit() bool {
	return m.quit
}

// ExitCode returns the code passed to PostQuit.
func (m Message) ExitCode() int {
	return int(int32(m.WParam))
}

// Word is the constraint for values stored in the per-window user data
// slot.
type Word interface {
	~uintptr
}

// NewSystem returns a System backed by api. A nil logger disables
// logging.
func NewSystem(api win32.API, log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{api: api, log: log}
}

// API returns the underlying native API.
func (s *System) API() win32.API {
	return s.api
}

// Logger returns the logger of s.
func (s *System) Logger() *zap.Logger {
	return s.log
}

// fail builds an error from the current thread error code. Callers
// clear the code before the failing call and must call fail before any
// other native function, so a failure the system does not explain
// carries code zero.
func (s *System) fail(kind Kind, op string) *Error {
	code := s.api.GetLastError()
	err := &Error{Kind: kind, Op: op, Code: code}
	if code != 0 {
		err.Msg = s.api.FormatMessage(code)
	}
	return err
}

// checkZero runs call with a cleared error code. A zero result is a
// failure only if call set an error code.
func (s *System) checkZero(op string, call func() uintptr) (uintptr, error) {
	s.api.SetLastError(0)
	r := call()
	if r == 0 && s.api.GetLastError() != 0 {
		return 0, s.fail(OperationFailed, op)
	}
	return r, nil
}

// ProcessHandle returns the module handle of the running executable.
func (s *System) ProcessHandle() win32.Handle {
	return s.api.GetModuleHandle(nil)
}

// LoadCursor loads a predefined cursor.
func (s *System) LoadCursor(c win32.Cursor) (win32.Handle, error) {
	s.api.SetLastError(0)
	h := s.api.LoadCursor(0, win32.MakeIntResource(uint16(c)))
	if h == 0 {
		return 0, s.fail(ResourceNotFound, "LoadCursorW")
	}
	return h, nil
}

// RegisterClass registers wc. The memory referenced by the pointer
// fields of wc must stay valid while the class is in use.
func (s *System) RegisterClass(wc *win32.WndClass) (win32.Atom, error) {
	s.api.SetLastError(0)
	atom := s.api.RegisterClass(wc)
	if atom == 0 {
		return 0, s.fail(RegistrationFailed, "RegisterClassW")
	}
	return atom, nil
}

// Class is a registered window class.
type Class struct {
	Name string
	Atom win32.Atom

	// name keeps the UTF-16 class name referenced by the native class
	// alive.
	name *uint16
}

// NewClass registers a class named name with the arrow cursor, the
// window background brush and proc as its window procedure.
func (s *System) NewClass(name string, proc win32.WndProcFunc) (*Class, error) {
	p, err := win32.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}
	cursor, err := s.LoadCursor(win32.IDC_ARROW)
	if err != nil {
		return nil, err
	}
	wc := win32.WndClass{
		LpfnWndProc:   s.api.NewCallback(proc),
		HInstance:     s.ProcessHandle(),
		HCursor:       cursor,
		HbrBackground: win32.COLOR_WINDOW.Brush(),
		LpszClassName: p,
	}
	atom, err := s.RegisterClass(&wc)
	if err != nil {
		return nil, err
	}
	s.log.Debug("registered window class", zap.String("class", name), zap.Uint16("atom", uint16(atom)))
	return &Class{Name: name, Atom: atom, name: p}, nil
}

// CreateWindow creates a window of the named class.
func (s *System) CreateWindow(class string, options ...Option) (win32.HWND, error) {
	var cnf Config
	cnf.apply(options)
	cls, err := win32.UTF16PtrFromString(class)
	if err != nil {
		return 0, err
	}
	title, err := win32.UTF16PtrFromString(cnf.Title)
	if err != nil {
		return 0, err
	}
	x, y, w, h := cnf.rect()
	s.api.SetLastError(0)
	hwnd := s.api.CreateWindowEx(cnf.ExStyle, cls, title, cnf.Style,
		x, y, w, h,
		cnf.Parent,
		0,
		s.ProcessHandle(),
		cnf.Param)
	if hwnd == 0 {
		return 0, s.fail(WindowCreationFailed, "CreateWindowExW")
	}
	s.log.Debug("created window", zap.String("class", class), zap.Uintptr("hwnd", uintptr(hwnd)))
	return hwnd, nil
}

// CreateAppWindow creates an overlapped top-level window that clips its
// children and siblings. Options may override the position and size
// but not the style.
func (s *System) CreateAppWindow(class, title string, param uintptr, options ...Option) (win32.HWND, error) {
	opts := []Option{Title(title), Param(param)}
	opts = append(opts, options...)
	opts = append(opts,
		Style(win32.WS_OVERLAPPEDWINDOW|win32.WS_CLIPSIBLINGS|win32.WS_CLIPCHILDREN),
		ExStyle(win32.WS_EX_APPWINDOW|win32.WS_EX_WINDOWEDGE),
		Parent(0),
	)
	return s.CreateWindow(class, opts...)
}

// ShowWindow sets the show state of hwnd and reports whether it was
// previously visible.
func (s *System) ShowWindow(hwnd win32.HWND, cmd int32) bool {
	return s.api.ShowWindow(hwnd, cmd)
}

// DestroyWindow destroys hwnd. The window procedure receives WM_DESTROY
// before DestroyWindow returns.
func (s *System) DestroyWindow(hwnd win32.HWND) error {
	s.api.SetLastError(0)
	if !s.api.DestroyWindow(hwnd) {
		return s.fail(OperationFailed, "DestroyWindow")
	}
	return nil
}

// Invalidate adds the client area of hwnd to its update region.
func (s *System) Invalidate(hwnd win32.HWND) error {
	s.api.SetLastError(0)
	if !s.api.InvalidateRect(hwnd, nil, true) {
		return s.fail(OperationFailed, "InvalidateRect")
	}
	return nil
}

// NextMessage blocks until a message is available. Retrieving WM_QUIT
// is not an error: the returned Message reports Quit instead.
func (s *System) NextMessage() (Message, error) {
	var m Message
	s.api.SetLastError(0)
	switch s.api.GetMessage(&m.Msg, 0, 0, 0) {
	case -1:
		return Message{}, s.fail(MessageRetrievalFailed, "GetMessageW")
	case 0:
		m.quit = true
	}
	return m, nil
}

// TranslateMessage generates character messages for key messages.
func (s *System) TranslateMessage(m *Message) bool {
	return s.api.TranslateMessage(&m.Msg)
}

// DispatchMessage calls the window procedure for m and returns its
// result.
func (s *System) DispatchMessage(m *Message) uintptr {
	return s.api.DispatchMessage(&m.Msg)
}

// DefWindowProc runs the default handling for a message.
func (s *System) DefWindowProc(hwnd win32.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	return s.api.DefWindowProc(hwnd, msg, wParam, lParam)
}

// PostMessage places a message in the queue of the calling thread.
func (s *System) PostMessage(hwnd win32.HWND, msg uint32, wParam, lParam uintptr) error {
	s.api.SetLastError(0)
	if !s.api.PostMessage(hwnd, msg, wParam, lParam) {
		return s.fail(OperationFailed, "PostMessageW")
	}
	return nil
}

// PostQuit asks the message loop to exit with code.
func (s *System) PostQuit(code int) {
	s.api.PostQuitMessage(int32(code))
}

// LastError returns the thread error code.
func (s *System) LastError() uint32 {
	return s.api.GetLastError()
}

// SetLastError sets the thread error code.
func (s *System) SetLastError(code uint32) {
	s.api.SetLastError(code)
}

// Paint runs f between BeginPaint and EndPaint. EndPaint runs on every
// path out of f, including errors and panics. The paint rectangle must
// not be used after f returns.
func (s *System) Paint(hwnd win32.HWND, f func(hdc win32.Handle, erase bool, r win32.Rect) error) error {
	var ps win32.PaintStruct
	s.api.SetLastError(0)
	hdc := s.api.BeginPaint(hwnd, &ps)
	if hdc == 0 {
		return s.fail(OperationFailed, "BeginPaint")
	}
	defer s.api.EndPaint(hwnd, &ps)
	return f(hdc, ps.FErase != 0, ps.RcPaint)
}

// FillRect fills r with the brush of the system color c.
func (s *System) FillRect(hdc win32.Handle, r win32.Rect, c win32.SysColor) error {
	s.api.SetLastError(0)
	if s.api.FillRect(hdc, &r, c.Brush()) == 0 {
		return s.fail(OperationFailed, "FillRect")
	}
	return nil
}

// SetUserData stores v in the user data slot of hwnd and returns the
// previous value. A zero previous value is only an error if the system
// set an error code.
func SetUserData[T Word](s *System, hwnd win32.HWND, v T) (T, error) {
	prev, err := s.checkZero("SetWindowLongPtrW", func() uintptr {
		return s.api.SetWindowLongPtr(hwnd, win32.GWLP_USERDATA, uintptr(v))
	})
	return T(prev), err
}

// GetUserData returns the user data slot of hwnd. A zero value is only
// an error if the system set an error code.
func GetUserData[T Word](s *System, hwnd win32.HWND) (T, error) {
	v, err := s.checkZero("GetWindowLongPtrW", func() uintptr {
		return s.api.GetWindowLongPtr(hwnd, win32.GWLP_USERDATA)
	})
	return T(v), err
}

// Loop retrieves, translates and dispatches messages until WM_QUIT and
// returns the exit code it carries.
func (s *System) Loop() (int, error) {
	for {
		m, err := s.NextMessage()
		if err != nil {
			return 0, err
		}
		if m.Quit() {
			s.log.Debug("message loop done", zap.Int("exit", m.ExitCode()))
			return m.ExitCode(), nil
		}
		s.TranslateMessage(&m)
		s.DispatchMessage(&m)
	}
}
