package mockapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requestLogger logs one line per request.
func requestLogger(log *zap.SugaredLogger) func(next http.Handler) http.Handler {
	log = log.Named("http")
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			log.Infow("request",
				"status", ww.Status(),
				"method", r.Method,
				"url", r.URL.String(),
				"remote", r.RemoteAddr,
				"size", ww.BytesWritten(),
				"latency", time.Since(start).String(),
				"request_id", uuid.NewString(),
			)
		}
		return http.HandlerFunc(fn)
	}
}
