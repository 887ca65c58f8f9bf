package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasayonetim/kasa/internal/http/respond"
	"github.com/kasayonetim/kasa/internal/profile"
	"github.com/kasayonetim/kasa/internal/region"
	"github.com/kasayonetim/kasa/internal/stats"
	"github.com/kasayonetim/kasa/internal/transaction"
)

const recentCount = 5

type Handler struct {
	txs     *transaction.Service
	regions *region.Service
}

func NewHandler(txs *transaction.Service, regions *region.Service) *Handler {
	return &Handler{txs: txs, regions: regions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.dashboard)
}

// AdminRoutes exposes the cross-region breakdown.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/regions", h.regionalStats)
}

type recentTransaction struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
	Date   string `json:"transaction_date"`
}

type dashboardResponse struct {
	Stats  stats.Summary       `json:"stats"`
	Recent []recentTransaction `json:"recent_transactions"`
}

// dashboard returns the four summary figures plus the five most recent
// records, both within the viewer's region scope. Stats are recomputed on
// every call; nothing is cached.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	viewer, ok := profile.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
		return
	}

	all, err := h.txs.ListForViewer(r.Context(), viewer, transaction.ListFilter{
		SortBy:   transaction.SortByDate,
		SortDesc: true,
	})
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := dashboardResponse{
		Stats:  stats.Summarize(all),
		Recent: make([]recentTransaction, 0, recentCount),
	}

	for _, tx := range all {
		if len(resp.Recent) == recentCount {
			break
		}

		resp.Recent = append(resp.Recent, recentTransaction{
			ID:     tx.ID.String(),
			Title:  tx.Title,
			Amount: tx.Amount.String(),
			Type:   string(tx.Type),
			Date:   tx.Date.Format("2006-01-02"),
		})
	}

	respond.JSON(w, http.StatusOK, resp)
}

// regionalStats recomputes the full per-region breakdown from the current
// transaction set.
func (h *Handler) regionalStats(w http.ResponseWriter, r *http.Request) {
	viewer, ok := profile.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
		return
	}

	txs, err := h.txs.ListForViewer(r.Context(), viewer, transaction.ListFilter{})
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	regions, err := h.regions.List(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, stats.SummarizeByRegion(txs, regions))
}
