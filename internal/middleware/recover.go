package middleware

import (
	"net/http"
	"runtime/debug"

	"pet-boarding/internal/platform/httpx"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Recover convierte un panic en el sobre "server error" y lo loguea con el
// stack. http.ErrAbortHandler se relanza: es la forma de cortar la conexión.
func Recover(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered",
					zap.String("request_id", chimw.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				httpx.Fail(w, httpx.MessageServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
