// Package logging provides named, leveled loggers backed by zap.
//
// Loggers returned by MustGetLogger stay valid across calls to Init: they
// write through a delegating core, so reconfiguring the output format,
// writer or level takes effect for every logger already handed out.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FormatConsole writes human readable, tab separated records.
	FormatConsole = "console"
	// FormatJSON writes one JSON object per record.
	FormatJSON = "json"

	defaultLevel = zapcore.WarnLevel
)

// Config selects the output of the logging system.
type Config struct {
	// Level is the minimum enabled level (debug, info, warn, error).
	// Empty means warn.
	Level string
	// Format is FormatConsole or FormatJSON. Empty means console.
	Format string
	// Writer receives encoded records. Nil means os.Stderr.
	Writer io.Writer
}

var (
	mu      sync.RWMutex
	level   = zap.NewAtomicLevelAt(defaultLevel)
	current = newCore(FormatConsole, os.Stderr)
)

// Init applies c to the logging system.
func Init(c Config) error {
	lvl := defaultLevel
	if c.Level != "" {
		l, err := zapcore.ParseLevel(strings.ToLower(c.Level))
		if err != nil {
			return errors.Wrapf(err, "invalid log level %q", c.Level)
		}
		lvl = l
	}

	format := strings.ToLower(c.Format)
	switch format {
	case "":
		format = FormatConsole
	case FormatConsole, FormatJSON:
	default:
		return errors.Errorf("unsupported log format %q", c.Format)
	}

	w := c.Writer
	if w == nil {
		w = os.Stderr
	}

	mu.Lock()
	current = newCore(format, w)
	mu.Unlock()
	level.SetLevel(lvl)
	return nil
}

// SetLevel changes the minimum enabled level of every logger.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

func newCore(format string, w io.Writer) zapcore.Core {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.NameKey = "name"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if format == FormatJSON {
		enc = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewCore(enc, zapcore.AddSync(w), level)
}

// setCore replaces the active core and returns a function restoring the
// previous one.
func setCore(c zapcore.Core) func() {
	mu.Lock()
	prev := current
	current = c
	mu.Unlock()
	return func() {
		mu.Lock()
		current = prev
		mu.Unlock()
	}
}

func activeCore() zapcore.Core {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// delegate forwards every call to the core active at call time.
type delegate struct {
	fields []zapcore.Field
}

func (d delegate) core() zapcore.Core {
	c := activeCore()
	if len(d.fields) > 0 {
		c = c.With(d.fields)
	}
	return c
}

func (d delegate) Enabled(l zapcore.Level) bool { return activeCore().Enabled(l) }

func (d delegate) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(d.fields)+len(fields))
	merged = append(merged, d.fields...)
	merged = append(merged, fields...)
	return delegate{fields: merged}
}

func (d delegate) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return d.core().Check(e, ce)
}

func (d delegate) Write(e zapcore.Entry, fields []zapcore.Field) error {
	return d.core().Write(e, fields)
}

func (d delegate) Sync() error { return activeCore().Sync() }
