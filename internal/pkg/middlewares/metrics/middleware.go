package metrics

import (
	"net/http"
	"strconv"
	"time"

	"freight/internal/pkg/middlewares/route"
	"freight/pkg/logger"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// Middleware пишет метрики и access-лог; 4xx уходят в Warn, 5xx в Error.
// Входящий X-Request-ID сохраняется, иначе генерируется новый.
func Middleware(log handlerLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			HTTPRequestsInFlight.Inc()
			defer HTTPRequestsInFlight.Dec()

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			status := strconv.Itoa(rec.status)
			template := route.Template(r)

			HTTPRequestDuration.WithLabelValues(r.Method, template, status).Observe(elapsed.Seconds())
			HTTPRequestTotal.WithLabelValues(r.Method, template, status).Inc()

			reqLog := log.With(
				logger.NewField("request_id", requestID),
				logger.NewField("method", r.Method),
				logger.NewField("path", r.URL.Path),
				logger.NewField("route", template),
				logger.NewField("status", rec.status),
				logger.NewField("bytes", rec.written),
				logger.NewField("duration", elapsed.String()),
			)
			switch {
			case rec.status >= http.StatusInternalServerError:
				reqLog.Error("HTTP request")
			case rec.status >= http.StatusBadRequest:
				reqLog.Warn("HTTP request")
			default:
				reqLog.Info("HTTP request")
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	written     int
	wroteHeader bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if !rec.wroteHeader {
		rec.status = code
		rec.wroteHeader = true
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	rec.wroteHeader = true
	n, err := rec.ResponseWriter.Write(b)
	rec.written += n
	return n, err
}
