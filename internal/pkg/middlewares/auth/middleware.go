package auth

import (
	"net/http"

	"freight/pkg/logger"
)

// Middleware все команды выполняются от имени водителя из сессии, тело запроса водителя не задаёт.
func Middleware(log handlerLogger, verifier *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := verifier.FromHeader(r.Header.Get("Authorization"))
			if err != nil {
				log.With(
					logger.NewField("path", r.URL.Path),
					logger.NewField("error", err),
				).Debug("unauthenticated request")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, err = w.Write([]byte(`{"reason":"unauthenticated"}`))
				if err != nil {
					log.With(
						logger.NewField("error", err),
					).Error("failed to write unauthenticated response")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
