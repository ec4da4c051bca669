// SPDX-License-Identifier: Unlicense OR MIT

//go:build !windows
// +build !windows

package app

import (
	"os"

	"go.uber.org/zap/zapcore"
)

func logSink() zapcore.WriteSyncer {
	return zapcore.Lock(os.Stderr)
}

var logTime = zapcore.ISO8601TimeEncoder
