// Package logger provides the application-wide leveled logger.
// It is a thin facade over zap's SugaredLogger so callers don't carry
// a logger dependency through every constructor.
package logger

import (
	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger

// Init builds the production logger. Call once from main before any other
// package logs.
func Init() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}
	sugar = l.Sugar()
	return nil
}

// InitDevelopment builds a human-readable console logger, used by tests and
// local runs.
func InitDevelopment() {
	l, _ := zap.NewDevelopment()
	sugar = l.Sugar()
}

// Close flushes buffered log entries.
func Close() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

func get() *zap.SugaredLogger {
	if sugar == nil {
		InitDevelopment()
	}
	return sugar
}

func Infof(format string, v ...interface{}) {
	get().Infof(format, v...)
}

func Warnf(format string, v ...interface{}) {
	get().Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	get().Errorf(format, v...)
}
