package middleware

import (
	"net/http"
	"time"

	"dogwalks/internal/platform/metrics"
)

// HTTPMetrics registra status code y latencia de cada request.
func HTTPMetrics(mc *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			mc.RecordHTTPStatus(rec.statusCode)
			mc.RecordHTTPLatency(time.Since(start))
		})
	}
}
