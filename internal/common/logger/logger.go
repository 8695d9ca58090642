// Package logger is the structured logger shared by every layer.
// It wraps zap with a context-first API so correlation ids travel with the call.
package logger

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zap.Field

var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Bool     = zap.Bool
	Any      = zap.Any
	Duration = zap.Duration
	Err      = zap.Error
)

type ctxKey struct{}

const correlationIDKey = "correlation_id"

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

type options struct {
	level  zapcore.Level
	env    string
	caller bool
}

type Option func(*options)

func WithLevel(level string) Option {
	return func(o *options) {
		if l, err := zapcore.ParseLevel(level); err == nil {
			o.level = l
		}
	}
}

func WithEnv(env string) Option {
	return func(o *options) {
		o.env = env
	}
}

func WithCaller(enabled bool) Option {
	return func(o *options) {
		o.caller = enabled
	}
}

// Init builds the process logger. Local environments get the console encoder.
func Init(appName string, opts ...Option) error {
	o := &options{level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(o)
	}

	cfg := zap.NewProductionConfig()
	if o.env == "local" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(o.level)
	cfg.DisableCaller = !o.caller
	cfg.InitialFields = map[string]interface{}{"app": appName}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	current.Store(l)
	return nil
}

// InitForTest installs a development logger writing to stderr.
func InitForTest() {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zapcore.DebugLevel)
	current.Store(zap.New(core))
}

// L returns the underlying zap logger, e.g. for newrelic's nrzap adapter.
func L() *zap.Logger {
	return current.Load()
}

func Sync() error {
	return current.Load().Sync()
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func withContext(ctx context.Context, fields []Field) []Field {
	if id := GetCorrelationID(ctx); id != "" {
		fields = append(fields, zap.String(correlationIDKey, id))
	}
	return fields
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	current.Load().Debug(msg, withContext(ctx, fields)...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	current.Load().Info(msg, withContext(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	current.Load().Warn(msg, withContext(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	current.Load().Error(msg, withContext(ctx, fields)...)
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	current.Load().Debug(fmt.Sprintf(format, args...), withContext(ctx, nil)...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	current.Load().Info(fmt.Sprintf(format, args...), withContext(ctx, nil)...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	current.Load().Error(fmt.Sprintf(format, args...), withContext(ctx, nil)...)
}

func Fatalf(ctx context.Context, format string, args ...interface{}) {
	current.Load().Fatal(fmt.Sprintf(format, args...), withContext(ctx, nil)...)
}
