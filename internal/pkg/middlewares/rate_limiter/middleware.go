package rate_limiter

import (
	"net/http"
	"strconv"

	"freight/internal/pkg/middlewares/route"
	"freight/pkg/logger"
)

// Middleware глобальный лимит на весь HTTP-сервер; поводительский дребезг режет driver_debounce.
// Пути из exempt (пробы, /metrics) лимитом не ограничены.
func Middleware(log handlerLogger, rateLimiterQPS int, limiter Limiter, exempt ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(exempt))
	for _, path := range exempt {
		skip[path] = struct{}{}
	}
	limit := strconv.Itoa(rateLimiterQPS)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok || limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			template := route.Template(r)
			RateLimitExceededTotal.WithLabelValues(r.Method, template).Inc()

			reqLog := log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", template),
				logger.NewField("remote_addr", r.RemoteAddr),
			)
			reqLog.Warn("rate limit exceeded")

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("Retry-After", "1")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)

			if _, err := w.Write([]byte(`{"reason":"rate_limited"}`)); err != nil {
				reqLog.With(logger.NewField("error", err)).Error("failed to write rate limit response")
			}
		})
	}
}
