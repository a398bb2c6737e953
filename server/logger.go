package server

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Logger is the structured logger of the service
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	*slog.Logger
}

func (l slogLogger) With(args ...any) Logger {
	return slogLogger{l.Logger.With(args...)}
}

// SetupLogger writes to out at the given level ("debug", "info", "warn",
// "error"; unknown levels fall back to info), as JSON or text
func SetupLogger(out io.Writer, level, format string) Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler = slog.NewTextHandler(out, opts)
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	}
	return slogLogger{slog.New(handler)}
}

// loggerMiddleware logs every request once it is served, together with the
// circuit or gadget size it addressed. Server errors are logged at error
// level, client errors at warn.
func loggerMiddleware(logger Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if circuit := rctx.URLParam("circuit"); circuit != "" {
					args = append(args, "circuit", circuit)
				}
				if size := rctx.URLParam("size"); size != "" {
					args = append(args, "gadget_size", size)
				}
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("request", args...)
			case status >= http.StatusBadRequest:
				logger.Warn("request", args...)
			default:
				logger.Info("request", args...)
			}
		})
	}
}
