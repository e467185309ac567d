package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Auth gates every route behind a static API key, presented either as a
// Bearer token or in the X-API-Key header. An empty key disables the check
// entirely, for local and trusted-network deployments.
func Auth(apiKey string) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(want) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			got := credential(r)
			if got == "" {
				deny(w, "missing authentication token")
				return
			}
			// Constant-time comparison; the key must not leak through timing.
			if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				deny(w, "invalid authentication token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// credential extracts the presented key, preferring the Authorization header
// over X-API-Key.
func credential(r *http.Request) string {
	if scheme, rest, ok := strings.Cut(r.Header.Get("Authorization"), " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}

func deny(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
