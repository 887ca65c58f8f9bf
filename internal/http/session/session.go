// Package session moves the platform access token between browser and server.
// The token itself is minted and validated by the hosted auth service; we only
// carry it in a cookie (or accept it as a bearer header from API clients).
package session

import (
	"net/http"
	"strings"
)

const CookieName = "kasa_session"

// Token extracts the access token from the Authorization header or, failing
// that, the session cookie.
func Token(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}

	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}

	return ""
}

func SetCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
