package delivery_http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"personal-site-service/internal/logger"
	"personal-site-service/internal/metrics"
)

// requestLogger logs every request and feeds the HTTP metrics. The
// route label uses the chi pattern, not the raw path, to keep metric
// cardinality bounded.
func requestLogger(log *logger.Logger, m metrics.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			m.RecordHTTPRequest(r.Method, route, ww.Status(), duration)
			log.Info("HTTP request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", duration),
				slog.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
