package logger

import (
	"context"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

type ctxFieldsKey struct{}

var global atomic.Pointer[zap.SugaredLogger]

func init() {
	global.Store(zap.NewNop().Sugar())
}

// Init replaces the process logger. Until it is called every log line is dropped.
func Init(level string, production bool) error {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Level = lvl

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	global.Store(l.Sugar())
	return nil
}

// Set is used by tests to capture output.
func Set(l *zap.Logger) {
	global.Store(l.WithOptions(zap.AddCallerSkip(1)).Sugar())
}

func Sync() {
	_ = global.Load().Sync()
}

// WithFields returns a context whose log lines carry the given key/value pairs.
func WithFields(ctx context.Context, keysAndValues ...interface{}) context.Context {
	prev, _ := ctx.Value(ctxFieldsKey{}).([]interface{})
	fields := make([]interface{}, 0, len(prev)+len(keysAndValues))
	fields = append(fields, prev...)
	fields = append(fields, keysAndValues...)
	return context.WithValue(ctx, ctxFieldsKey{}, fields)
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	l := global.Load()
	if ctx == nil {
		return l
	}
	if fields, ok := ctx.Value(ctxFieldsKey{}).([]interface{}); ok && len(fields) > 0 {
		return l.With(fields...)
	}
	return l
}

func Debug(ctx context.Context, msg string, keysAndValues ...interface{}) {
	fromCtx(ctx).Debugw(msg, keysAndValues...)
}

func Debugf(ctx context.Context, template string, args ...interface{}) {
	fromCtx(ctx).Debugf(template, args...)
}

func Info(ctx context.Context, msg string, keysAndValues ...interface{}) {
	fromCtx(ctx).Infow(msg, keysAndValues...)
}

func Infof(ctx context.Context, template string, args ...interface{}) {
	fromCtx(ctx).Infof(template, args...)
}

func Warn(ctx context.Context, msg string, keysAndValues ...interface{}) {
	fromCtx(ctx).Warnw(msg, keysAndValues...)
}

func Warnf(ctx context.Context, template string, args ...interface{}) {
	fromCtx(ctx).Warnf(template, args...)
}

func Error(ctx context.Context, msg string, keysAndValues ...interface{}) {
	fromCtx(ctx).Errorw(msg, keysAndValues...)
}

func Errorf(ctx context.Context, template string, args ...interface{}) {
	fromCtx(ctx).Errorf(template, args...)
}

func Fatal(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Fatal(args...)
}

func Fatalf(ctx context.Context, template string, args ...interface{}) {
	fromCtx(ctx).Fatalf(template, args...)
}
