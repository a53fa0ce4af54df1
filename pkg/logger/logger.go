// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns the logger the
// request middleware stored in the context, already tagged with the request
// ID, so every log line from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("product created", "id", product.ID)
//	// → time=... level=INFO msg="product created" request_id=a1b2c3d4 id=65f0...
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/nexus/config"
)

const (
	logDatabase   = "nexus_logs"
	logCollection = "logs"
)

// L is the process-wide base logger. It writes text to stdout until Setup
// replaces it.
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// Setup builds the base logger for cfg and installs it as L and as the slog
// default. Production gets JSON at INFO, everything else text at DEBUG.
// With cfg.LogMongoURI set, records are also shipped to MongoDB.
//
// The returned func flushes and closes any sink; call it on shutdown.
func Setup(cfg *config.Config) (func(), error) {
	return setup(cfg, os.Stdout)
}

func setup(cfg *config.Config, out io.Writer) (func(), error) {
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	closer := func() {}
	if cfg.LogMongoURI != "" {
		mh, err := NewMongoHandler(cfg.LogMongoURI, logDatabase, logCollection, slog.LevelInfo)
		if err != nil {
			return closer, fmt.Errorf("logger: %w", err)
		}
		handler = NewMultiHandler(handler, mh)
		closer = mh.Close
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return closer, nil
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the *slog.Logger stored in ctx by InjectLogger, or the
// base logger when there is none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware, not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
