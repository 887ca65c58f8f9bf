package region

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/http/respond"
	"github.com/kasayonetim/kasa/internal/profile"
	"github.com/kasayonetim/kasa/internal/region"
)

type Handler struct {
	svc *region.Service
}

func NewHandler(svc *region.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

// AdminRoutes holds the mutations; the router wraps them in the admin check.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Delete("/{id}", h.delete)
}

type regionResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	regions, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]regionResponse, len(regions))
	for i, reg := range regions {
		resp[i] = regionResponse{ID: reg.ID, Name: reg.Name, CreatedAt: reg.CreatedAt}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createRequest struct {
	Name string `json:"name"`
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

	reg, err := h.svc.Create(r.Context(), viewer.Role, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, regionResponse{
		ID:        reg.ID,
		Name:      reg.Name,
		CreatedAt: reg.CreatedAt,
	})
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

	if err := h.svc.Delete(r.Context(), viewer.Role, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, region.ErrForbidden):
		respond.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, region.ErrNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, region.ErrEmptyName):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		respond.Error(w, http.StatusInternalServerError, err.Error())
	}
}
