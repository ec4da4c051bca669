// SPDX-License-Identifier: Unlicense OR MIT

// Package win32 declares the user32/kernel32 structures, constants and
// entry points used by the app package. The struct layouts match the
// native ABI and must not be reordered.
package win32

type (
	// Handle is an opaque native handle (HANDLE, HINSTANCE, HCURSOR,
	// HBRUSH, HDC).
	Handle uintptr
	// HWND identifies a native window.
	HWND uintptr
	// Atom is a class identifier returned by RegisterClassW.
	Atom uint16
	// Cursor is a predefined cursor resource identifier (IDC_*).
	Cursor uint16
	// SysColor is a symbolic system color index (COLOR_*).
	SysColor int32
)

// WndProcFunc is the signature of a window procedure.
type WndProcFunc func(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr

// Point is POINT.
type Point struct {
	X, Y int32
}

// Rect is RECT.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Msg is MSG.
type Msg struct {
	Hwnd     HWND
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       Point
	LPrivate uint32
}

// WndClass is WNDCLASSW.
type WndClass struct {
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     Handle
	HIcon         Handle
	HCursor       Handle
	HbrBackground Handle
	LpszMenuName  *uint16
	LpszClassName *uint16
}

// PaintStruct is PAINTSTRUCT.
type PaintStruct struct {
	Hdc         Handle
	FErase      int32
	RcPaint     Rect
	FRestore    int32
	FIncUpdate  int32
	RgbReserved [32]byte
}

// CreateStruct is CREATESTRUCTW, passed by pointer in the lParam of
// WM_NCCREATE and WM_CREATE.
type CreateStruct struct {
	CreateParams uintptr
	Instance     Handle
	Menu         Handle
	Parent       HWND
	Cy, Cx       int32
	Y, X         int32
	Style        int32
	Name         *uint16
	Class        *uint16
	ExStyle      uint32
}

const (
	TRUE  = 1
	FALSE = 0
)

const (
	WM_CREATE    = 0x0001
	WM_DESTROY   = 0x0002
	WM_CLOSE     = 0x0010
	WM_PAINT     = 0x000F
	WM_QUIT      = 0x0012
	WM_NCCREATE  = 0x0081
	WM_NCDESTROY = 0x0082
	WM_USER      = 0x0400
)

const (
	WS_OVERLAPPED   = 0x00000000
	WS_CAPTION      = 0x00C00000
	WS_SYSMENU      = 0x00080000
	WS_THICKFRAME   = 0x00040000
	WS_MINIMIZEBOX  = 0x00020000
	WS_MAXIMIZEBOX  = 0x00010000
	WS_CLIPSIBLINGS = 0x04000000
	WS_CLIPCHILDREN = 0x02000000
	WS_VISIBLE      = 0x10000000

	WS_OVERLAPPEDWINDOW = WS_OVERLAPPED | WS_CAPTION | WS_SYSMENU | WS_THICKFRAME | WS_MINIMIZEBOX | WS_MAXIMIZEBOX

	WS_EX_WINDOWEDGE = 0x00000100
	WS_EX_APPWINDOW  = 0x00040000
)

// CW_USEDEFAULT lets the system choose a position or size.
const CW_USEDEFAULT = -0x80000000

const (
	SW_HIDE = 0
	SW_SHOW = 5
)

const GWLP_USERDATA = -21

const (
	IDC_ARROW       Cursor = 32512
	IDC_IBEAM       Cursor = 32513
	IDC_WAIT        Cursor = 32514
	IDC_CROSS       Cursor = 32515
	IDC_UPARROW     Cursor = 32516
	IDC_SIZENWSE    Cursor = 32642
	IDC_SIZENESW    Cursor = 32643
	IDC_SIZEWE      Cursor = 32644
	IDC_SIZENS      Cursor = 32645
	IDC_SIZEALL     Cursor = 32646
	IDC_NO          Cursor = 32648
	IDC_HAND        Cursor = 32649
	IDC_APPSTARTING Cursor = 32650
	IDC_HELP        Cursor = 32651
)

// Cursors lists every predefined cursor.
var Cursors = []Cursor{
	IDC_ARROW, IDC_IBEAM, IDC_WAIT, IDC_CROSS, IDC_UPARROW,
	IDC_SIZENWSE, IDC_SIZENESW, IDC_SIZEWE, IDC_SIZENS, IDC_SIZEALL,
	IDC_NO, IDC_HAND, IDC_APPSTARTING, IDC_HELP,
}

const (
	COLOR_SCROLLBAR     SysColor = 0
	COLOR_BACKGROUND    SysColor = 1
	COLOR_ACTIVECAPTION SysColor = 2
	COLOR_MENU          SysColor = 4
	COLOR_WINDOW        SysColor = 5
	COLOR_WINDOWFRAME   SysColor = 6
	COLOR_MENUTEXT      SysColor = 7
	COLOR_WINDOWTEXT    SysColor = 8
	COLOR_HIGHLIGHT     SysColor = 13
	COLOR_BTNFACE       SysColor = 15
)

// Brush returns the pseudo brush handle for c accepted by FillRect and
// WNDCLASSW.hbrBackground.
func (c SysColor) Brush() Handle {
	return Handle(c + 1)
}

// Win32 error codes.
const (
	ERROR_SUCCESS                 = 0
	ERROR_INVALID_HANDLE          = 6
	ERROR_INVALID_PARAMETER       = 87
	ERROR_INVALID_WINDOW_HANDLE   = 1400
	ERROR_CANNOT_FIND_WND_CLASS   = 1407
	ERROR_CLASS_ALREADY_EXISTS    = 1410
	ERROR_INVALID_INDEX           = 1413
	ERROR_TIMEOUT                 = 1460
	ERROR_RESOURCE_NAME_NOT_FOUND = 1814
)

// MakeIntResource is MAKEINTRESOURCEW.
func MakeIntResource(id uint16) uintptr {
	return uintptr(id)
}
