package middleware

import (
	"log/slog"
	"net/http"
)

// Recover converts a handler panic into a SERVER_ERROR envelope so one
// broken request cannot kill the process.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"success":false,"error":"internal server error","code":"SERVER_ERROR"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
