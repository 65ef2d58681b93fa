// Package logging собирает логгер сервиса поверх charmbracelet/log.
package logging

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

const prefix = "upload"

// New создаёт логгер с заданным уровнем. Неизвестный уровень трактуется как info.
// DEBUG=1 включает debug-уровень и вывод места вызова.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}
	if os.Getenv("DEBUG") == "1" {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}

	return log.NewWithOptions(w, opts)
}

// Discard возвращает логгер, который ничего не пишет; удобно для тестов.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

type ctxKey struct{}

// WithLogger кладёт логгер запроса в контекст.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From достаёт логгер из контекста, либо возвращает fallback.
func From(ctx context.Context, fallback *log.Logger) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && l != nil {
		return l
	}
	return fallback
}
