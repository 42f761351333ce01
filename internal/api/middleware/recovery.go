package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
)

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

// Recovery перехватывает панику обработчика и отвечает 500
func Recovery(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("%s %s - panic recovered: request_id=%s, error=%v\n%s",
						r.Method, r.URL.Path, GetRequestID(r.Context()), rec, debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
