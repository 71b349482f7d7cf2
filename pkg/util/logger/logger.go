package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported encodings.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Prm groups Logger's parameters.
// Successful passing non-nil parameters to the NewLogger (if returned
// error is nil) leads to setting the parameters.
type Prm struct {
	level     zapcore.Level
	encoding  string
	timestamp bool
}

// SetLevelString sets the minimum logging level. Default is info.
//
// Returns an error if s is not a string representation of a
// supporting logging level.
//
// Supports the following levels:
//   - debug
//   - info (default)
//   - warn
//   - error
func (p *Prm) SetLevelString(s string) error {
	return p.level.UnmarshalText([]byte(s))
}

// SetEncoding sets the record encoding. Default is console.
func (p *Prm) SetEncoding(s string) error {
	switch s {
	case "", EncodingConsole:
		p.encoding = EncodingConsole
	case EncodingJSON:
		p.encoding = EncodingJSON
	default:
		return fmt.Errorf("unsupported encoding %q", s)
	}
	return nil
}

// SetTimestamp enables record timestamps.
func (p *Prm) SetTimestamp(v bool) {
	p.timestamp = v
}

// NewLogger constructs a new zap logger instance writing to stderr.
// Nil parameters produce an info level console logger without timestamps.
func NewLogger(prm *Prm) (*zap.Logger, error) {
	if prm == nil {
		prm = new(Prm)
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(prm.level)
	c.Encoding = prm.encoding
	if c.Encoding == "" {
		c.Encoding = EncodingConsole
	}
	c.Sampling = nil
	if prm.timestamp {
		c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		c.EncoderConfig.EncodeTime = func(_ time.Time, _ zapcore.PrimitiveArrayEncoder) {}
	}

	l, err := c.Build(
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return l, nil
}
