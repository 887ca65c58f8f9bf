package notification

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/http/respond"
	"github.com/kasayonetim/kasa/internal/notification"
	"github.com/kasayonetim/kasa/internal/profile"
)

type Handler struct {
	svc *notification.Service
}

func NewHandler(svc *notification.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.listActive)
	r.Post("/{id}/dismiss", h.dismiss)
}

func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/all", h.listAll)
	r.Post("/", h.broadcast)
	r.Post("/{id}/deactivate", h.deactivate)
	r.Get("/{id}/status", h.status)
}

type notificationResponse struct {
	ID          uuid.UUID `json:"id"`
	Message     string    `json:"message"`
	CreatorName string    `json:"creator_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponseList(ns []*notification.Notification) []notificationResponse {
	resp := make([]notificationResponse, len(ns))
	for i, n := range ns {
		resp[i] = notificationResponse{
			ID:          n.ID,
			Message:     n.Message,
			CreatorName: n.CreatorName,
			IsActive:    n.IsActive,
			CreatedAt:   n.CreatedAt,
		}
	}

	return resp
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	viewer, ok := profile.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
		return
	}

	ns, err := h.svc.ListActive(r.Context(), viewer.ID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(ns))
}

func (h *Handler) dismiss(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Dismiss(r.Context(), viewer.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	viewer, ok := profile.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
		return
	}

	ns, err := h.svc.ListAll(r.Context(), viewer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(ns))
}

type broadcastRequest struct {
	Message string `json:"message"`
}

func (h *Handler) broadcast(w http.ResponseWriter, r *http.Request) {
	viewer, ok := profile.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
		return
	}

	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.svc.Broadcast(r.Context(), viewer, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, notificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		IsActive:  n.IsActive,
		CreatedAt: n.CreatedAt,
	})
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Deactivate(r.Context(), viewer, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type userStatusResponse struct {
	UserID      uuid.UUID  `json:"user_id"`
	FullName    string     `json:"full_name"`
	DismissedAt *time.Time `json:"dismissed_at,omitempty"`
}

type statusResponse struct {
	Dismissed    []userStatusResponse `json:"dismissed"`
	NotDismissed []userStatusResponse `json:"not_dismissed"`
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
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

	report, err := h.svc.Status(r.Context(), viewer, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := statusResponse{
		Dismissed:    toStatusList(report.Dismissed),
		NotDismissed: toStatusList(report.NotDismissed),
	}

	respond.JSON(w, http.StatusOK, resp)
}

func toStatusList(sts []notification.UserStatus) []userStatusResponse {
	resp := make([]userStatusResponse, len(sts))
	for i, st := range sts {
		resp[i] = userStatusResponse{
			UserID:      st.UserID,
			FullName:    st.FullName,
			DismissedAt: st.DismissedAt,
		}
	}

	return resp
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notification.ErrForbidden):
		respond.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, notification.ErrNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, notification.ErrEmptyMessage):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		respond.Error(w, http.StatusInternalServerError, err.Error())
	}
}
