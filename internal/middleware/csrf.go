package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFFieldName  = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
)

const csrfKey ctxKey = "csrf"

// CSRF implementa double-submit cookie: cada cliente recibe un token en cookie
// y los POST de formularios deben devolverlo en el campo csrf_token (o header).
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(CSRFCookieName); err == nil {
			token = strings.TrimSpace(c.Value)
		}
		fromCookie := token != ""

		if !fromCookie {
			token = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CSRFCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		if !safeMethod(r.Method) {
			sent := r.Header.Get(CSRFHeaderName)
			if sent == "" {
				sent = r.PostFormValue(CSRFFieldName)
			}
			if !fromCookie || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
				Log(r.Context()).Warn("csrf token mismatch", map[string]any{"path": r.URL.Path})
				http.Error(w, "invalid csrf token", http.StatusForbidden)
				return
			}
		}

		ctx := context.WithValue(r.Context(), csrfKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CSRFToken es el token a embeber en los formularios del request actual.
func CSRFToken(ctx context.Context) string {
	v, _ := ctx.Value(csrfKey).(string)
	return v
}

func safeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
