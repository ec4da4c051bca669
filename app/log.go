// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a console logger. Debug enables debug level
// messages. On Windows programs without a console the output goes to
// the debugger through OutputDebugStringW.
func NewLogger(debug bool) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = logTime
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), logSink(), level)
	return zap.New(core)
}
