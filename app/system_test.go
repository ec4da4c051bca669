// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"winwrap.org/internal/win32"
	"winwrap.org/internal/win32/fake"
)

func newTestSystem(t *testing.T) (*System, *fake.System) {
	t.Helper()
	f := fake.New()
	return NewSystem(f, nil), f
}

// newPlainWindow creates a window whose procedure is DefWindowProc.
func newPlainWindow(t *testing.T, s *System) win32.HWND {
	t.Helper()
	cls, err := s.NewClass("Plain", s.DefWindowProc)
	if err != nil {
		t.Fatal(err)
	}
	hwnd, err := s.CreateWindow(cls.Name, Title("plain"))
	if err != nil {
		t.Fatal(err)
	}
	return hwnd
}

func checkError(t *testing.T, err error, kind Kind, code uint32) {
	t.Helper()
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("got error %v, expected *Error", err)
	}
	if e.Kind != kind || e.Code != code {
		t.Errorf("got %v (code %d), expected %v (code %d)", e.Kind, e.Code, kind, code)
	}
}

func TestProcessHandle(t *testing.T) {
	s, _ := newTestSystem(t)
	if s.ProcessHandle() == 0 {
		t.Error("null module handle")
	}
}

func TestLoadCursor(t *testing.T) {
	s, f := newTestSystem(t)
	for _, c := range win32.Cursors {
		h, err := s.LoadCursor(c)
		if err != nil {
			t.Errorf("cursor %d: %v", c, err)
			continue
		}
		if h == 0 {
			t.Errorf("cursor %d: null handle without error", c)
		}
	}
	_, err := s.LoadCursor(win32.Cursor(1))
	checkError(t, err, ResourceNotFound, win32.ERROR_RESOURCE_NAME_NOT_FOUND)
	if !errors.Is(err, ErrResourceNotFound) {
		t.Error("errors.Is(err, ErrResourceNotFound) = false")
	}

	f.FailNext("LoadCursor", win32.ERROR_INVALID_HANDLE)
	h, err := s.LoadCursor(win32.IDC_ARROW)
	if h != 0 {
		t.Errorf("got handle %#x with error", h)
	}
	checkError(t, err, ResourceNotFound, win32.ERROR_INVALID_HANDLE)
}

func TestRegisterClassTwice(t *testing.T) {
	s, _ := newTestSystem(t)
	cls, err := s.NewClass("Twice", s.DefWindowProc)
	if err != nil {
		t.Fatal(err)
	}
	if cls.Atom == 0 {
		t.Fatal("zero atom")
	}
	_, err = s.NewClass("Twice", s.DefWindowProc)
	checkError(t, err, RegistrationFailed, win32.ERROR_CLASS_ALREADY_EXISTS)
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Error("errors.Is(err, ErrRegistrationFailed) = false")
	}
	if msg := err.Error(); !strings.Contains(msg, "Class already exists.") || !strings.Contains(msg, "code 1410") {
		t.Errorf("unexpected error message %q", msg)
	}
}

func TestCreateWindowUnregisteredClass(t *testing.T) {
	s, f := newTestSystem(t)
	hwnd, err := s.CreateAppWindow("Missing", "title", 0)
	if hwnd != 0 {
		t.Errorf("got window %#x for an unregistered class", hwnd)
	}
	checkError(t, err, WindowCreationFailed, win32.ERROR_CANNOT_FIND_WND_CLASS)
	if len(f.Windows()) != 0 {
		t.Errorf("windows %v left behind", f.Windows())
	}
}

func TestCreateAppWindow(t *testing.T) {
	s, f := newTestSystem(t)
	cls, err := s.NewClass("App", s.DefWindowProc)
	if err != nil {
		t.Fatal(err)
	}
	hwnd, err := s.CreateAppWindow(cls.Name, "Hello", 0, Size(320, 200), Style(win32.WS_VISIBLE))
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Title(hwnd); got != "Hello" {
		t.Errorf("got title %q, expected %q", got, "Hello")
	}
	want := uint32(win32.WS_OVERLAPPEDWINDOW | win32.WS_CLIPSIBLINGS | win32.WS_CLIPCHILDREN)
	if got := f.Style(hwnd); got != want {
		t.Errorf("got style %#x, expected %#x", got, want)
	}
	if prev := s.ShowWindow(hwnd, win32.SW_SHOW); prev {
		t.Error("window was visible before ShowWindow")
	}
	if !f.Visible(hwnd) {
		t.Error("window not visible after ShowWindow")
	}
}

func TestConfigRect(t *testing.T) {
	var c Config
	x, y, w, h := c.rect()
	for _, v := range []int32{x, y, w, h} {
		if v != win32.CW_USEDEFAULT {
			t.Fatalf("got %d, expected CW_USEDEFAULT", v)
		}
	}
	c.apply([]Option{Pos(10, 20), Size(30, 40)})
	x, y, w, h = c.rect()
	if got, want := [4]int32{x, y, w, h}, [4]int32{10, 20, 30, 40}; got != want {
		t.Errorf("got %v, expected %v", got, want)
	}
}

func TestUserDataNoPreviousValue(t *testing.T) {
	s, _ := newTestSystem(t)
	hwnd := newPlainWindow(t, s)

	// A stale error code must not turn a zero result into a failure.
	s.SetLastError(win32.ERROR_INVALID_PARAMETER)
	v, err := GetUserData[uintptr](s, hwnd)
	if err != nil {
		t.Fatalf("zero value with no error code: %v", err)
	}
	if v != 0 {
		t.Errorf("got %d, expected 0", v)
	}
	prev, err := SetUserData[Token](s, hwnd, 42)
	if err != nil {
		t.Fatal(err)
	}
	if prev != 0 {
		t.Errorf("got previous value %d, expected 0", prev)
	}
	prev, err = SetUserData[Token](s, hwnd, 43)
	if err != nil || prev != 42 {
		t.Errorf("got (%d, %v), expected (42, nil)", prev, err)
	}
	got, err := GetUserData[Token](s, hwnd)
	if err != nil || got != 43 {
		t.Errorf("got (%d, %v), expected (43, nil)", got, err)
	}
}

func TestUserDataFailure(t *testing.T) {
	s, f := newTestSystem(t)
	_, err := GetUserData[uintptr](s, 0xdead)
	checkError(t, err, OperationFailed, win32.ERROR_INVALID_WINDOW_HANDLE)
	_, err = SetUserData[uintptr](s, 0xdead, 1)
	checkError(t, err, OperationFailed, win32.ERROR_INVALID_WINDOW_HANDLE)

	hwnd := newPlainWindow(t, s)
	f.FailNext("GetWindowLongPtr", win32.ERROR_INVALID_INDEX)
	_, err = GetUserData[uintptr](s, hwnd)
	checkError(t, err, OperationFailed, win32.ERROR_INVALID_INDEX)
}

func TestPaint(t *testing.T) {
	s, f := newTestSystem(t)
	hwnd := newPlainWindow(t, s)
	calls := 0
	err := s.Paint(hwnd, func(hdc win32.Handle, erase bool, r win32.Rect) error {
		calls++
		if !f.Painting(hwnd) {
			t.Error("closure called outside BeginPaint/EndPaint")
		}
		if !erase {
			t.Error("expected erase for a new window")
		}
		return s.FillRect(hdc, r, win32.COLOR_WINDOW)
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("closure called %d times, expected 1", calls)
	}
	if f.BeginPaints != 1 || f.EndPaints != 1 {
		t.Errorf("got %d BeginPaint and %d EndPaint, expected 1 each", f.BeginPaints, f.EndPaints)
	}
	want := []fake.Fill{{HDC: f.Fills[0].HDC, Rect: fake.Client, Brush: win32.COLOR_WINDOW.Brush()}}
	if diff := cmp.Diff(want, f.Fills); diff != "" {
		t.Errorf("fills (-want +got):\n%s", diff)
	}
	if f.Painting(hwnd) {
		t.Error("paint operation still open")
	}
}

func TestPaintClosureError(t *testing.T) {
	s, f := newTestSystem(t)
	hwnd := newPlainWindow(t, s)
	errDraw := errors.New("draw failed")
	calls := 0
	err := s.Paint(hwnd, func(win32.Handle, bool, win32.Rect) error {
		calls++
		return errDraw
	})
	if !errors.Is(err, errDraw) {
		t.Errorf("got %v, expected %v", err, errDraw)
	}
	if calls != 1 || f.EndPaints != 1 {
		t.Errorf("got %d calls and %d EndPaint, expected 1 each", calls, f.EndPaints)
	}
}

func TestPaintClosurePanic(t *testing.T) {
	s, f := newTestSystem(t)
	hwnd := newPlainWindow(t, s)
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		s.Paint(hwnd, func(win32.Handle, bool, win32.Rect) error {
			panic("boom")
		})
	}()
	if f.EndPaints != 1 {
		t.Errorf("got %d EndPaint, expected 1", f.EndPaints)
	}
}

func TestPaintBeginFailure(t *testing.T) {
	s, f := newTestSystem(t)
	hwnd := newPlainWindow(t, s)
	f.FailNext("BeginPaint", win32.ERROR_INVALID_HANDLE)
	err := s.Paint(hwnd, func(win32.Handle, bool, win32.Rect) error {
		t.Error("closure called without a paint operation")
		return nil
	})
	checkError(t, err, OperationFailed, win32.ERROR_INVALID_HANDLE)
	if f.EndPaints != 0 {
		t.Errorf("got %d EndPaint after a failed BeginPaint", f.EndPaints)
	}
}

func TestFillRectFailure(t *testing.T) {
	s, _ := newTestSystem(t)
	err := s.FillRect(0x1234, win32.Rect{Right: 1, Bottom: 1}, win32.COLOR_WINDOW)
	checkError(t, err, OperationFailed, win32.ERROR_INVALID_HANDLE)
}

func TestLoopExitCode(t *testing.T) {
	for _, code := range []int{0, 3, -1} {
		s, _ := newTestSystem(t)
		s.PostQuit(code)
		got, err := s.Loop()
		if err != nil {
			t.Fatal(err)
		}
		if got != code {
			t.Errorf("got exit code %d, expected %d", got, code)
		}
	}
}

func TestNextMessageFailure(t *testing.T) {
	s, f := newTestSystem(t)
	f.FailNext("GetMessage", win32.ERROR_INVALID_PARAMETER)
	s.PostQuit(0)
	m, err := s.NextMessage()
	checkError(t, err, MessageRetrievalFailed, win32.ERROR_INVALID_PARAMETER)
	if m.Quit() {
		t.Error("failed retrieval reported as quit")
	}
	// The quit message is still queued.
	m, err = s.NextMessage()
	if err != nil {
		t.Fatal(err)
	}
	if !m.Quit() {
		t.Errorf("got message %#x, expected WM_QUIT", m.Message)
	}
}

func TestLoopDispatch(t *testing.T) {
	s, f := newTestSystem(t)
	hwnd := newPlainWindow(t, s)
	if err := s.PostMessage(hwnd, win32.WM_USER, 1, 2); err != nil {
		t.Fatal(err)
	}
	f.Idle = func(f *fake.System) bool {
		f.PostQuitMessage(7)
		return true
	}
	code, err := s.Loop()
	if err != nil {
		t.Fatal(err)
	}
	if code != 7 {
		t.Errorf("got exit code %d, expected 7", code)
	}
	if n := f.Count(hwnd, win32.WM_USER); n != 1 {
		t.Errorf("WM_USER dispatched %d times, expected 1", n)
	}
	if err := s.PostMessage(0xdead, win32.WM_USER, 0, 0); err == nil {
		t.Error("expected error posting to an invalid window")
	}
}
