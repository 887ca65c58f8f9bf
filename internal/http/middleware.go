package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/http/respond"
	"github.com/kasayonetim/kasa/internal/http/session"
	"github.com/kasayonetim/kasa/internal/profile"
)

type ProfileLoader interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error)
}

// Authenticator verifies the platform-issued access token (HS256, shared
// secret) and loads the caller's profile into the request context.
func Authenticator(jwtSecret string, profiles ProfileLoader) func(http.Handler) http.Handler {
	keyFunc := func(t *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.Token(r)
			if token == "" {
				respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
				return
			}

			userID, err := subject(token, keyFunc)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "oturum geçersiz veya süresi dolmuş")
				return
			}

			viewer, err := profiles.GetProfile(r.Context(), userID)
			if err != nil {
				if errors.Is(err, profile.ErrNotFound) {
					respond.Error(w, http.StatusUnauthorized, "profil bulunamadı")
					return
				}

				respond.Error(w, http.StatusInternalServerError, err.Error())

				return
			}

			next.ServeHTTP(w, r.WithContext(profile.NewContext(r.Context(), viewer)))
		})
	}
}

func subject(token string, keyFunc jwt.Keyfunc) (uuid.UUID, error) {
	parsed, err := jwt.Parse(token, keyFunc,
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, err
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(sub)
}

// RequireAdmin rejects non-admin callers before the handler runs.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := profile.FromContext(r.Context())
		if !ok || !viewer.Role.IsAdmin() {
			respond.Error(w, http.StatusForbidden, "bu işlemi yapmaya yetkiniz yok")
			return
		}

		next.ServeHTTP(w, r)
	})
}
