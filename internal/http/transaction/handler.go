package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kasayonetim/kasa/internal/export"
	"github.com/kasayonetim/kasa/internal/http/respond"
	"github.com/kasayonetim/kasa/internal/http/session"
	"github.com/kasayonetim/kasa/internal/platform/storage"
	"github.com/kasayonetim/kasa/internal/profile"
	"github.com/kasayonetim/kasa/internal/realtime"
	"github.com/kasayonetim/kasa/internal/region"
	"github.com/kasayonetim/kasa/internal/transaction"
)

type Handler struct {
	svc            *transaction.Service
	regions        *region.Service
	exporter       *export.Service
	listener       *realtime.Listener
	storage        *storage.Client
	maxUploadBytes int64
}

func NewHandler(
	svc *transaction.Service,
	regions *region.Service,
	exporter *export.Service,
	listener *realtime.Listener,
	store *storage.Client,
	maxUploadBytes int64,
) *Handler {
	return &Handler{
		svc:            svc,
		regions:        regions,
		exporter:       exporter,
		listener:       listener,
		storage:        store,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/export", h.export)
	r.Get("/watch", h.watch)
	r.Post("/attachments", h.uploadAttachment)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func viewerFrom(w http.ResponseWriter, r *http.Request) (*profile.Profile, bool) {
	viewer, ok := profile.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "oturum bulunamadı")
		return nil, false
	}

	return viewer, true
}

func parseFilter(r *http.Request) transaction.ListFilter {
	q := r.URL.Query()

	var filter transaction.ListFilter

	if s := q.Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := q.Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	if s := q.Get("type"); s != "" {
		t := transaction.Type(s)
		filter.Type = &t
	}

	if s := q.Get("payment_method"); s != "" {
		m := transaction.PaymentMethod(s)
		filter.PaymentMethod = &m
	}

	if s := q.Get("invoice_kind"); s != "" {
		// "YOK" selects rows without a document, matching the old UI option.
		k := transaction.InvoiceKindNone
		if s != "YOK" {
			k = transaction.InvoiceKind(s)
		}

		filter.InvoiceKind = &k
	}

	if s := q.Get("region_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.RegionID = &id
		}
	}

	if s := q.Get("user_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.UserID = &id
		}
	}

	if s := q.Get("expense_region"); s != "" {
		filter.ExpenseRegionNote = &s
	}

	filter.Search = q.Get("search")

	if q.Get("sort_by") == string(transaction.SortByCreatedAt) {
		filter.SortBy = transaction.SortByCreatedAt
	} else {
		filter.SortBy = transaction.SortByDate
	}

	filter.SortDesc = q.Get("order") != "asc"
	filter.Limit = 10000

	return filter
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	txs, err := h.svc.ListForViewer(r.Context(), viewer, parseFilter(r))
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

type createRequest struct {
	Title           string                    `json:"title"`
	Amount          decimal.Decimal           `json:"amount"`
	Type            transaction.Type          `json:"type"`
	PaymentMethod   transaction.PaymentMethod `json:"payment_method"`
	InvoiceKind     transaction.InvoiceKind   `json:"invoice_kind"`
	Date            string                    `json:"transaction_date"`
	Description     string                    `json:"description"`
	RegionID        *uuid.UUID                `json:"region_id"`
	ExpenseRegionID *uuid.UUID                `json:"expense_region_id"`
	ImagePath       string                    `json:"image_path"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "geçersiz işlem tarihi")
		return
	}

	params := transaction.CreateParams{
		Title:         req.Title,
		Amount:        req.Amount,
		Type:          req.Type,
		PaymentMethod: req.PaymentMethod,
		InvoiceKind:   req.InvoiceKind,
		Date:          date,
		Description:   req.Description,
		RegionID:      req.RegionID,
		ImagePath:     req.ImagePath,
	}

	// An expense recorded on behalf of another region carries that region's
	// name as a free-text note, surviving later region deletion.
	if req.Type == transaction.TypeExpense && req.ExpenseRegionID != nil {
		note, err := h.resolveRegionName(r, *req.ExpenseRegionID)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "gider bölgesi bulunamadı")
			return
		}

		params.ExpenseRegionNote = note
	}

	tx, err := h.svc.Create(r.Context(), viewer, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) resolveRegionName(r *http.Request, id uuid.UUID) (string, error) {
	regions, err := h.regions.List(r.Context())
	if err != nil {
		return "", err
	}

	for _, reg := range regions {
		if reg.ID == id {
			return reg.Name, nil
		}
	}

	return "", region.ErrNotFound
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "geçersiz id")
		return
	}

	tx, err := h.svc.Get(r.Context(), viewer, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := toResponse(tx)
	if tx.ImagePath != "" {
		resp.ImageURL = h.storage.PublicURL(tx.ImagePath)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type updateRequest struct {
	Title         *string                    `json:"title,omitempty"`
	Amount        *decimal.Decimal           `json:"amount,omitempty"`
	Type          *transaction.Type          `json:"type,omitempty"`
	PaymentMethod *transaction.PaymentMethod `json:"payment_method,omitempty"`
	InvoiceKind   *transaction.InvoiceKind   `json:"invoice_kind,omitempty"`
	Date          *string                    `json:"transaction_date,omitempty"`
	Description   *string                    `json:"description,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
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

	params := transaction.UpdateParams{
		Title:         req.Title,
		Amount:        req.Amount,
		Type:          req.Type,
		PaymentMethod: req.PaymentMethod,
		InvoiceKind:   req.InvoiceKind,
		Description:   req.Description,
	}

	if req.Date != nil {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "geçersiz işlem tarihi")
			return
		}

		params.Date = &date
	}

	tx, err := h.svc.Update(r.Context(), viewer, id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
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

// export streams the filtered list as an .xlsx download.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	txs, err := h.svc.ListForViewer(r.Context(), viewer, parseFilter(r))
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := h.exporter.Filename(time.Now())

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exporter.Write(w, txs); err != nil {
		// Headers are gone; all we can do is log via the recoverer path.
		respond.Error(w, http.StatusInternalServerError, err.Error())
	}
}

// watch streams change-feed hints as server-sent events. The subscription
// lives exactly as long as the request: subscribe on connect, unsubscribe on
// disconnect, unconditionally.
func (h *Handler) watch(w http.ResponseWriter, r *http.Request) {
	if _, ok := viewerFrom(w, r); !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respond.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel := h.listener.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}

			fmt.Fprintf(w, "event: change\ndata: {\"op\":%q}\n\n", ev.Op)
			flusher.Flush()
		}
	}
}

type uploadResponse struct {
	Path      string `json:"path"`
	PublicURL string `json:"public_url"`
}

// uploadAttachment stores a receipt image under a per-user key and returns
// the path to reference from a transaction.
func (h *Handler) uploadAttachment(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "görsel okunamadı: "+err.Error())
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s/%d_%s", viewer.ID, time.Now().UnixMilli(), header.Filename)

	path, err := h.storage.Upload(r.Context(), session.Token(r), key, contentType, file)
	if err != nil {
		respond.Error(w, http.StatusBadGateway, err.Error())
		return
	}

	respond.JSON(w, http.StatusCreated, uploadResponse{
		Path:      path,
		PublicURL: h.storage.PublicURL(path),
	})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, transaction.ErrForbidden):
		respond.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, transaction.ErrEmptyTitle), errors.Is(err, transaction.ErrInvalidAmount):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		respond.Error(w, http.StatusInternalServerError, err.Error())
	}
}
