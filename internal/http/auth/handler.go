package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/http/respond"
	"github.com/kasayonetim/kasa/internal/http/session"
	platformauth "github.com/kasayonetim/kasa/internal/platform/auth"
	"github.com/kasayonetim/kasa/internal/profile"
)

type Handler struct {
	auth      *platformauth.Client
	webOrigin string
}

func NewHandler(auth *platformauth.Client, webOrigin string) *Handler {
	return &Handler{auth: auth, webOrigin: webOrigin}
}

// Routes registers the endpoints that work without a session.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Post("/forgot-password", h.forgotPassword)
	r.Get("/callback", h.callback)
}

// SessionRoutes registers the endpoints that need an authenticated caller.
func (h *Handler) SessionRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Post("/reset-password", h.resetPassword)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	session.SetCookie(w, sess.AccessToken, sess.ExpiresIn)

	respond.JSON(w, http.StatusOK, loginResponse{
		AccessToken: sess.AccessToken,
		UserID:      sess.User.ID,
		Email:       sess.User.Email,
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if token := session.Token(r); token != "" {
		// Best effort; the cookie is cleared regardless.
		_ = h.auth.SignOut(r.Context(), token)
	}

	session.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email == "" {
		respond.Error(w, http.StatusBadRequest, "e-posta adresi boş olamaz")
		return
	}

	redirectTo := h.webOrigin + "/auth/callback?next=/reset-password"
	if err := h.auth.SendRecovery(r.Context(), req.Email, redirectTo); err != nil {
		writeAuthError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// callback completes the email-link flow: the one-time code becomes a
// session cookie and the browser is sent on to the follow-up page.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")

	next := r.URL.Query().Get("next")
	if next == "" || next[0] != '/' {
		next = "/"
	}

	if code == "" {
		h.redirectError(w, r)
		return
	}

	sess, err := h.auth.ExchangeCode(r.Context(), code)
	if err != nil {
		h.redirectError(w, r)
		return
	}

	session.SetCookie(w, sess.AccessToken, sess.ExpiresIn)
	http.Redirect(w, r, h.webOrigin+next, http.StatusSeeOther)
}

func (h *Handler) redirectError(w http.ResponseWriter, r *http.Request) {
	target := h.webOrigin + "/login?error=" + url.QueryEscape("sifre_sifirlama_basarisiz")
	http.Redirect(w, r, target, http.StatusSeeOther)
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Password) < 6 {
		respond.Error(w, http.StatusBadRequest, "şifre en az 6 karakter olmalıdır")
		return
	}

	if err := h.auth.UpdatePassword(r.Context(), session.Token(r), req.Password); err != nil {
		writeAuthError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type meResponse struct {
	ID         uuid.UUID    `json:"id"`
	FullName   string       `json:"full_name"`
	Role       profile.Role `json:"role"`
	RegionID   *uuid.UUID   `json:"region_id,omitempty"`
	RegionName string       `json:"region_name,omitempty"`
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	viewer, ok := profile.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
		return
	}

	respond.JSON(w, http.StatusOK, meResponse{
		ID:         viewer.ID,
		FullName:   viewer.FullName,
		Role:       viewer.Role,
		RegionID:   viewer.RegionID,
		RegionName: viewer.RegionName,
	})
}

func writeAuthError(w http.ResponseWriter, err error) {
	var pe *platformauth.Error
	if errors.As(err, &pe) && pe.StatusCode >= 400 && pe.StatusCode < 500 {
		respond.Error(w, pe.StatusCode, pe.Message)
		return
	}

	respond.Error(w, http.StatusBadGateway, err.Error())
}
