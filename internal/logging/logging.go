// Package logging is a thin key-value facade over zap so call sites stay
// short: logging.Info("msg", "key", value).
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base = newLogger(zapcore.InfoLevel)

func newLogger(level zapcore.Level) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}

// SetDebug switches the process-wide logger to debug level.
func SetDebug() {
	base = newLogger(zapcore.DebugLevel)
}

// Named returns a component-scoped logger for structured use inside
// services that hold their own logger.
func Named(name string) *zap.SugaredLogger {
	return base.Named(name)
}

func Debug(msg string, kv ...interface{}) { base.Debugw(msg, kv...) }
func Info(msg string, kv ...interface{})  { base.Infow(msg, kv...) }
func Warn(msg string, kv ...interface{})  { base.Warnw(msg, kv...) }
func Error(msg string, kv ...interface{}) { base.Errorw(msg, kv...) }
func Fatal(msg string, kv ...interface{}) { base.Fatalw(msg, kv...) }

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	_ = base.Sync()
}
