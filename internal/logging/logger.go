package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a named logger. Messages are formatted lazily, so disabled
// levels cost a level check only.
type Logger struct {
	s *zap.SugaredLogger
}

// MustGetLogger returns a logger tagged with name.
func MustGetLogger(name string) *Logger {
	zl := zap.New(delegate{}, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return &Logger{s: zl.Named(name).Sugar()}
}

func (l *Logger) Debugf(template string, args ...interface{}) { l.s.Debugf(template, args...) }
func (l *Logger) Infof(template string, args ...interface{})  { l.s.Infof(template, args...) }
func (l *Logger) Warnf(template string, args ...interface{})  { l.s.Warnf(template, args...) }
func (l *Logger) Errorf(template string, args ...interface{}) { l.s.Errorf(template, args...) }

func (l *Logger) Debugw(msg string, kvPairs ...interface{}) { l.s.Debugw(msg, kvPairs...) }
func (l *Logger) Infow(msg string, kvPairs ...interface{})  { l.s.Infow(msg, kvPairs...) }
func (l *Logger) Warnw(msg string, kvPairs ...interface{})  { l.s.Warnw(msg, kvPairs...) }

// With returns a child logger that adds the given key/value pairs to every
// record.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{s: l.s.With(args...)}
}

// IsEnabledFor reports whether records at level would be written.
func (l *Logger) IsEnabledFor(level zapcore.Level) bool {
	return l.s.Desugar().Core().Enabled(level)
}

// Sync flushes buffered records.
func (l *Logger) Sync() error {
	return l.s.Sync()
}
