// Package accesslog provides net/http middleware that emits one structured
// slog record per request/response exchange: method, path, status, response
// time, and whatever static fields the caller bound to the logger.
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	access := accesslog.New(logger.With("log_type", "access")).Exclude("/healthz")
//
//	handler := accesslog.Chain(
//		accesslog.RequestID(),
//		access.Middleware,
//	)(mux)
package accesslog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Middleware wraps an http.Handler with additional behavior.
// The standard Go middleware signature: takes a handler, returns a handler.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware into one. Middleware are applied
// in the order given: Chain(a, b, c)(handler) = a(b(c(handler))), so the
// first middleware in the list runs first on the request path.
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// StructuredLogger is the access-log middleware. It owns a base logger
// whose With-bound attrs appear in every record it emits, an optional
// skip-list of paths, and the set of field names used for emitted keys.
//
// Configure with Exclude / WithFieldNames before installing; the value is
// read-only once requests are flowing and safe to share across them.
type StructuredLogger struct {
	logger  *slog.Logger
	names   FieldNames
	exclude map[string]struct{}
}

// New creates the middleware around a caller-configured logger. Output
// format, destination, and level policy all belong to the logger; the
// middleware only decides what fields go into each record.
func New(logger *slog.Logger) *StructuredLogger {
	return &StructuredLogger{
		logger:  logger,
		names:   DefaultFieldNames(),
		exclude: make(map[string]struct{}),
	}
}

// Exclude suppresses record emission for the given request paths, e.g.
// liveness probes or /metrics. Excluded requests are still served normally.
func (l *StructuredLogger) Exclude(paths ...string) *StructuredLogger {
	for _, p := range paths {
		l.exclude[p] = struct{}{}
	}
	return l
}

// WithFieldNames replaces the emitted key names.
func (l *StructuredLogger) WithFieldNames(names FieldNames) *StructuredLogger {
	l.names = names
	return l
}

// Middleware wraps the next handler. Timing starts before delegation so the
// measured duration covers the whole handler execution. Emission happens in
// a deferred block, so exactly one record is produced whether the handler
// returns normally or panics; a panic is re-raised unchanged after the
// record is written.
func (l *StructuredLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rc := NewResponseCapture(w)
		reqAttrs := RequestAttrs(l.names, r)

		faulted := true
		defer func() {
			status := rc.StatusCode
			if faulted && !rc.Committed() {
				// Handler died before writing anything; net/http will tear
				// down the connection, which the client sees as a server
				// error. Log it as one.
				status = http.StatusInternalServerError
			}
			l.emit(r, start, status, rc.Written, reqAttrs)
		}()

		next.ServeHTTP(rc, r)
		faulted = false
	})
}

// emit builds the final record and hands it to the logger's handler.
// Request-derived attrs are added after the logger's bound attrs, so on a
// key collision the request value renders later and wins for any
// last-key-wins consumer. A handler error is reported on stderr and never
// reaches the request path.
func (l *StructuredLogger) emit(r *http.Request, start time.Time, status int, bytes int64, reqAttrs []slog.Attr) {
	if _, skip := l.exclude[r.URL.Path]; skip {
		return
	}

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	// The record must survive a canceled or timed-out request context.
	ctx := context.WithoutCancel(r.Context())

	h := l.logger.Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	rec := slog.NewRecord(time.Now(), level, "access", 0)
	rec.AddAttrs(reqAttrs...)
	rec.AddAttrs(
		slog.Int(l.names.Status, status),
		slog.Int64(l.names.Bytes, bytes),
		slog.Int64(l.names.DurationMS, time.Since(start).Milliseconds()),
	)

	if err := h.Handle(ctx, rec); err != nil {
		fmt.Fprintf(os.Stderr, "accesslog: dropped record for %s %s: %v\n", r.Method, r.URL.Path, err)
	}
}
