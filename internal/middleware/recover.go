package middleware

import (
	"net/http"
	"runtime/debug"
)

// Recover reemplaza a chimw.Recoverer para loguear el panic con nuestro logger
// (y su request_id). Responde 500 sin exponer detalles.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			Log(r.Context()).Error("panic recovered", map[string]any{
				"panic": rec,
				"stack": string(debug.Stack()),
				"path":  r.URL.Path,
			})
			http.Error(w, "internal error", http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
