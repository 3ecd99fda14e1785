package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/edusosyal/hapbilgi/internal/apperr"
	"github.com/edusosyal/hapbilgi/internal/index"
	"github.com/edusosyal/hapbilgi/internal/tips"
)

// Handler holds API route handlers for the local tip surface.
type Handler struct {
	svc *tips.Service
	idx index.TipIndex
}

// NewHandler creates a new Handler.
func NewHandler(svc *tips.Service, idx index.TipIndex) *Handler {
	return &Handler{svc: svc, idx: idx}
}

// CreateTip handles POST /api/tips.
func (h *Handler) CreateTip(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tip, err := h.svc.CreateFromQuestion(r.Context(), req.Question, req.AIResponse, req.Tags)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidTip) {
			writeError(w, http.StatusBadRequest, "question and ai_response are required")
			return
		}
		slog.Error("create tip failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeData(w, http.StatusCreated, tip)
}

// ListRecommended handles GET /api/tips/recommended.
func (h *Handler) ListRecommended(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	// Listing never fails: an unreadable store degrades to an empty list.
	writeData(w, http.StatusOK, h.svc.ListRecommended(r.Context(), limit))
}

// ListTips handles GET /api/tips (indexed, paginated, filterable).
func (h *Handler) ListTips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	category := q.Get("category")
	sort := q.Get("sort")

	rows, total, err := h.idx.ListTips(limit, offset, category, sort)
	if err != nil {
		slog.Error("list tips failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	items := make([]TipListItem, len(rows))
	for i, row := range rows {
		tags := row.Tags
		if tags == nil {
			tags = []string{}
		}
		items[i] = TipListItem{
			ID:         row.ID,
			Title:      row.Title,
			Category:   row.Category,
			Difficulty: row.Difficulty,
			Tags:       tags,
			CreatedAt:  row.CreatedAt,
		}
	}
	writeData(w, http.StatusOK, TipListResponse{Tips: items, Total: total})
}

// GetTip handles GET /api/tips/{id}.
func (h *Handler) GetTip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tip, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		slog.Error("get tip failed", slog.String("id", id), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeData(w, http.StatusOK, tip)
}

// Search handles GET /api/tips/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := h.idx.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	results := make([]SearchResult, len(rows))
	for i, row := range rows {
		results[i] = SearchResult{ID: row.ID, Title: row.Title, Snippet: row.Snippet}
	}
	writeData(w, http.StatusOK, results)
}

// ResetTips handles DELETE /api/tips. Destructive: removes every record
// in the tip namespace.
func (h *Handler) ResetTips(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ResetAll(r.Context()); err != nil {
		slog.Error("reset failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	writeData(w, http.StatusOK, map[string]string{"message": "all local tips removed"})
}
