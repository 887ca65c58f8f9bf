package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/http/respond"
	"github.com/kasayonetim/kasa/internal/profile"
	"github.com/kasayonetim/kasa/internal/user"
)

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type userResponse struct {
	ID         uuid.UUID    `json:"id"`
	FullName   string       `json:"full_name"`
	Role       profile.Role `json:"role"`
	RegionID   *uuid.UUID   `json:"region_id,omitempty"`
	RegionName string       `json:"region_name,omitempty"`
}

func toResponse(p *profile.Profile) userResponse {
	return userResponse{
		ID:         p.ID,
		FullName:   p.FullName,
		Role:       p.Role,
		RegionID:   p.RegionID,
		RegionName: p.RegionName,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	viewer, ok := profile.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
		return
	}

	profiles, err := h.svc.List(r.Context(), viewer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]userResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = toResponse(p)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createRequest struct {
	FullName string     `json:"full_name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     string     `json:"role"`
	RegionID *uuid.UUID `json:"region_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := profile.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := profile.ParseRole(req.Role)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "geçersiz rol")
		return
	}

	p, err := h.svc.Create(r.Context(), viewer, user.CreateParams{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		RegionID: req.RegionID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

type updateRequest struct {
	FullName string     `json:"full_name"`
	Role     string     `json:"role"`
	RegionID *uuid.UUID `json:"region_id"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	viewer, ok := profile.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "geçersiz id")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := profile.ParseRole(req.Role)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "geçersiz rol")
		return
	}

	p, err := h.svc.Update(r.Context(), viewer, id, user.UpdateParams{
		FullName: req.FullName,
		Role:     role,
		RegionID: req.RegionID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	viewer, ok := profile.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "geçersiz id")
		return
	}

	if err := h.svc.Delete(r.Context(), viewer, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrForbidden):
		respond.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, user.ErrMissingFields):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, profile.ErrNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	default:
		respond.Error(w, http.StatusInternalServerError, err.Error())
	}
}
