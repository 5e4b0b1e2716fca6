package driver_debounce

import (
	"net/http"

	"freight/internal/pkg/middlewares/auth"
	"freight/pkg/logger"

	"github.com/gorilla/mux"
)

// Middleware отбрасывает повтор той же команды водителя внутри окна.
// Ошибка хранилища дребезга не блокирует запрос: от гонок защищают условные записи.
func Middleware(log handlerLogger, debouncer Debouncer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			identity, ok := auth.IdentityFrom(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}

			// в ключ входит сам путь: команды по разным накладным не гасят друг друга
			key := identity.DriverID + ":" + r.Method + " " + r.URL.Path

			allowed, err := debouncer.Allow(r.Context(), key)
			if err != nil {
				log.With(
					logger.NewField("driver_id", identity.DriverID),
					logger.NewField("route", route),
					logger.NewField("error", err),
				).Warn("debounce check failed, passing request")
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				DebouncedTotal.WithLabelValues(r.Method, route).Inc()
				log.With(
					logger.NewField("driver_id", identity.DriverID),
					logger.NewField("route", route),
				).Debug("debounced driver command")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, err := w.Write([]byte(`{"reason":"debounced"}`))
				if err != nil {
					log.With(
						logger.NewField("error", err),
					).Error("failed to write debounce response")
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
