// SPDX-License-Identifier: Unlicense OR MIT

//go:build !windows
// +build !windows

package win32

// NewSystem always fails outside Windows.
func NewSystem() (API, error) {
	return nil, ErrUnsupported
}
