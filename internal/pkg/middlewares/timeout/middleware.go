package timeout

import (
	"context"
	"net/http"
	"time"
)

// Middleware ограничивает время обработки команды; ноль отключает ограничение.
// Ошибка context.DeadlineExceeded из сервиса превращается в 504 в httpio.
func Middleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// r.Context() = ongoingCtx (из BaseContext)
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
