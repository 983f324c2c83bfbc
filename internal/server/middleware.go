package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/penwyp/go-project-panel/internal/util"
)

// LoggingMiddleware logs one line per request through the global logger
func LoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			util.LogInfo("HTTP request",
				util.F("method", r.Method),
				util.F("path", r.URL.Path),
				util.F("query", r.URL.RawQuery),
				util.F("status", ww.Status()),
				util.F("bytes", ww.BytesWritten()),
				util.F("duration", time.Since(start).String()),
				util.F("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
