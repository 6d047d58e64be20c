// Package logging defines the logger interfaces the rest of the tray uses.
// Any *zap.SugaredLogger satisfies Logger.
package logging

import "unsafe"

type DebugLogger interface {
	Debug(args ...interface{})
}

type Logger interface {
	DebugLogger
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// Debug logs to log if it is set. Typed nil pointers count as unset.
func Debug(log DebugLogger, args ...interface{}) {
	if !isNilValue(log) {
		log.Debug(args...)
	}
}

func isNilValue(i interface{}) bool {
	return (*[2]uintptr)(unsafe.Pointer(&i))[1] == 0
}
