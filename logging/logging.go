// Package logging provides a small structured logging facade for the flow
// engine, backed by uber-go/zap. The interface is deliberately tiny so
// embedding applications can adapt their own logger.
package logging

import (
	"context"

	"go.uber.org/zap"
)

// Logger is the structured logger the engine writes to.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Named creates a child logger with the given name appended.
	Named(name string) Logger

	// With creates a child logger with structured context attached.
	With(keysAndValues ...interface{}) Logger
}

// NewZapLogger wraps a zap logger.
func NewZapLogger(l *zap.Logger) Logger {
	return &zapLogger{s: l.Sugar()}
}

// NewDevLogger returns a human-readable logger for local development.
func NewDevLogger() Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		// zap.NewDevelopment only fails on bad config, which is static here.
		panic(err)
	}
	return &zapLogger{s: l.Sugar()}
}

type zapLogger struct {
	s *zap.SugaredLogger
}

func (z *zapLogger) Debugw(msg string, kv ...interface{}) { z.s.Debugw(msg, kv...) }
func (z *zapLogger) Infow(msg string, kv ...interface{})  { z.s.Infow(msg, kv...) }
func (z *zapLogger) Warnw(msg string, kv ...interface{})  { z.s.Warnw(msg, kv...) }
func (z *zapLogger) Errorw(msg string, kv ...interface{}) { z.s.Errorw(msg, kv...) }
func (z *zapLogger) Named(name string) Logger             { return &zapLogger{s: z.s.Named(name)} }
func (z *zapLogger) With(kv ...interface{}) Logger        { return &zapLogger{s: z.s.With(kv...)} }

// Nop returns a logger that discards everything.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debugw(string, ...interface{}) {}
func (nopLogger) Infow(string, ...interface{})  {}
func (nopLogger) Warnw(string, ...interface{})  {}
func (nopLogger) Errorw(string, ...interface{}) {}
func (nopLogger) Named(string) Logger           { return nopLogger{} }
func (nopLogger) With(...interface{}) Logger    { return nopLogger{} }

type ctxKey struct{}

// With attaches a logger to the context.
func With(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the attached logger, or a no-op logger.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return l
	}
	return Nop()
}
