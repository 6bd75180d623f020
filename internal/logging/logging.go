// Package logging provides the structured logger the services write their
// operation events to. Services depend on the narrow Logger interface; the
// HTTP boundary derives request-scoped loggers carrying the request context.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the surface services depend on. Implementations must be safe for
// concurrent use.
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
}

type zapLogger struct {
	l *zap.Logger
}

// New builds a production JSON logger at the given level ("debug", "info",
// "warn", "error").
func New(level string) (Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{l: l}, nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() Logger {
	return &zapLogger{l: zap.NewNop()}
}

func (z *zapLogger) Info(msg string, fields ...zap.Field) {
	z.l.Info(msg, fields...)
}

func (z *zapLogger) Warn(msg string, fields ...zap.Field) {
	z.l.Warn(msg, fields...)
}

func (z *zapLogger) Error(msg string, fields ...zap.Field) {
	z.l.Error(msg, fields...)
}

func (z *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{l: z.l.With(fields...)}
}

// RequestContext carries the request attributes attached to every log event
// emitted while serving a request. It is passed explicitly from the boundary;
// nothing in the core reads ambient request state.
type RequestContext struct {
	RequestID string
	IP        string
	UserAgent string
	URL       string
	Method    string
}

// WithRequest returns a logger enriched with the request context fields.
func WithRequest(l Logger, rc RequestContext) Logger {
	return l.With(
		zap.String("request_id", rc.RequestID),
		zap.String("ip", rc.IP),
		zap.String("user_agent", rc.UserAgent),
		zap.String("url", rc.URL),
		zap.String("method", rc.Method),
	)
}
