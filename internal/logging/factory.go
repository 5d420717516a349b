package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// New builds a Logger for the given format and level name
// (debug, info, warn, error) writing to w. Text goes through slog and JSON
// through zap. The returned func flushes and must be called on shutdown.
func New(format, level string, w io.Writer) (Logger, func(), error) {
	if level == "" {
		level = "info"
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		return NewTextLogger(w, lvl), func() {}, nil

	case FormatJSON:
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		l := NewJSONLogger(w, lvl)
		return l, func() { _ = l.Sync() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown log format %q", format)
	}
}

// NewJSONLogger builds a ZapLogger writing JSON lines to w.
func NewJSONLogger(w io.Writer, level zapcore.Level) *ZapLogger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), level)
	return NewZapLogger(zap.New(core, zap.AddCaller()))
}
