// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app wraps the native windowing API in checked operations and
drives windows through a message loop.

Every native call that signals failure with a sentinel (a null handle,
a zero atom, -1 from GetMessage) is exposed as a function returning an
*Error that carries the thread error code read right after the call.

# Threads

Windows belong to the thread that created them, and their window
procedure runs on that thread from within DispatchMessage. All
functions in this package must be called from that thread, typically
after runtime.LockOSThread in an init function of package main.

# Window values

A Proc owns one Go value per window. The creator boxes the value in the
Proc's Values table and passes the returned Token as the creation
parameter:

	proc := app.NewProc(sys, app.NewValues[int]())
	cls, err := sys.NewClass("Test Window", proc.WndProc)
	...
	tok := proc.Values().Box(5)
	hwnd, err := sys.CreateAppWindow(cls.Name, "Test Window", uintptr(tok))

The window takes ownership in WM_NCCREATE and releases the value in
WM_DESTROY, after which it posts WM_QUIT. If creation fails the value
remains boxed and the creator should Discard it.
*/
package app
