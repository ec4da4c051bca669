// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"os"
	"time"
	"unsafe"

	"go.uber.org/zap/zapcore"
	syscall "golang.org/x/sys/windows"
)

type debugView struct{}

var (
	kernel32           = syscall.NewLazySystemDLL("kernel32")
	outputDebugStringW = kernel32.NewProc("OutputDebugStringW")
)

func logSink() zapcore.WriteSyncer {
	if syscall.Stderr == 0 {
		return debugView{}
	}
	return zapcore.Lock(os.Stderr)
}

// logTime omits timestamps when writing to DebugView, which already
// includes them.
func logTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	if syscall.Stderr == 0 {
		return
	}
	zapcore.ISO8601TimeEncoder(t, enc)
}

func (debugView) Write(buf []byte) (int, error) {
	p, err := syscall.UTF16PtrFromString(string(buf))
	if err != nil {
		return 0, err
	}
	outputDebugStringW.Call(uintptr(unsafe.Pointer(p)))
	return len(buf), nil
}

func (debugView) Sync() error {
	return nil
}
