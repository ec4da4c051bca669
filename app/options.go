// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"

	"winwrap.org/internal/win32"
)

// Option configures a window created by CreateWindow.
type Option func(*Config)

// Config describes a window to create.
type Config struct {
	Title   string
	ExStyle uint32
	Style   uint32
	// Pos is the top-left corner. Nil lets the system choose.
	Pos *image.Point
	// Size is the outer window size. Nil lets the system choose.
	Size *image.Point
	// Parent is the owner window, or zero for a top-level window.
	Parent win32.HWND
	// Param is forwarded unchanged to the window procedure in the
	// CreateParams field of WM_NCCREATE and WM_CREATE.
	Param uintptr
}

// Title sets the title of the window.
func Title(t string) Option {
	return func(cnf *Config) {
		cnf.Title = t
	}
}

// Pos sets the position of the window.
func Pos(x, y int) Option {
	return func(cnf *Config) {
		cnf.Pos = &image.Point{X: x, Y: y}
	}
}

// Size sets the size of the window.
func Size(w, h int) Option {
	if w <= 0 {
		panic("width must be larger than 0")
	}
	if h <= 0 {
		panic("height must be larger than 0")
	}
	return func(cnf *Config) {
		cnf.Size = &image.Point{X: w, Y: h}
	}
}

// Style sets the WS_* style flags.
func Style(s uint32) Option {
	return func(cnf *Config) {
		cnf.Style = s
	}
}

// ExStyle sets the WS_EX_* extended style flags.
func ExStyle(s uint32) Option {
	return func(cnf *Config) {
		cnf.ExStyle = s
	}
}

// Parent sets the owner window.
func Parent(hwnd win32.HWND) Option {
	return func(cnf *Config) {
		cnf.Parent = hwnd
	}
}

// Param sets the creation parameter.
func Param(p uintptr) Option {
	return func(cnf *Config) {
		cnf.Param = p
	}
}

func (c *Config) apply(options []Option) {
	for _, o := range options {
		o(c)
	}
}

func (c *Config) rect() (x, y, w, h int32) {
	x, y, w, h = win32.CW_USEDEFAULT, win32.CW_USEDEFAULT, win32.CW_USEDEFAULT, win32.CW_USEDEFAULT
	if c.Pos != nil {
		x, y = int32(c.Pos.X), int32(c.Pos.Y)
	}
	if c.Size != nil {
		w, h = int32(c.Size.X), int32(c.Size.Y)
	}
	return
}
