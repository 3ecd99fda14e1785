package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/edusosyal/hapbilgi/internal/remote"
)

// ProxyHandler exposes the backend hap-bilgi endpoints through the local
// API. Every handler is a pass-through to the remote client; backend
// failures surface as 502 so callers can fall back to the local store.
type ProxyHandler struct {
	rc *remote.Client
}

// NewProxyHandler creates a ProxyHandler.
func NewProxyHandler(rc *remote.Client) *ProxyHandler {
	return &ProxyHandler{rc: rc}
}

func proxyError(w http.ResponseWriter, op string, err error) {
	slog.Warn("remote call failed", slog.String("op", op), slog.String("error", err.Error()))
	writeError(w, http.StatusBadGateway, "backend unavailable")
}

// Search handles GET /api/remote/search.
func (p *ProxyHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	tips, err := p.rc.Search(r.Context(), q, limit)
	if err != nil {
		proxyError(w, "search", err)
		return
	}
	writeData(w, http.StatusOK, tips)
}

// Similar handles GET /api/remote/similar.
func (p *ProxyHandler) Similar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	tips, err := p.rc.SimilarQuestions(r.Context(), q, limit)
	if err != nil {
		proxyError(w, "similar", err)
		return
	}
	writeData(w, http.StatusOK, tips)
}

// CreateFromPost handles POST /api/remote/from-post/{postID}.
func (p *ProxyHandler) CreateFromPost(w http.ResponseWriter, r *http.Request) {
	tip, err := p.rc.CreateFromPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		proxyError(w, "from-post", err)
		return
	}
	writeData(w, http.StatusCreated, tip)
}

// Like handles POST /api/remote/tips/{id}/like.
func (p *ProxyHandler) Like(w http.ResponseWriter, r *http.Request) {
	tip, err := p.rc.Like(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		proxyError(w, "like", err)
		return
	}
	writeData(w, http.StatusOK, tip)
}

// Save handles POST /api/remote/tips/{id}/save.
func (p *ProxyHandler) Save(w http.ResponseWriter, r *http.Request) {
	tip, err := p.rc.Save(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		proxyError(w, "save", err)
		return
	}
	writeData(w, http.StatusOK, tip)
}

// Detail handles GET /api/remote/tips/{id}.
func (p *ProxyHandler) Detail(w http.ResponseWriter, r *http.Request) {
	tip, err := p.rc.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		proxyError(w, "detail", err)
		return
	}
	writeData(w, http.StatusOK, tip)
}

// TipsByUser handles GET /api/remote/users/{userID}/tips.
func (p *ProxyHandler) TipsByUser(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	tips, err := p.rc.TipsByUser(r.Context(), chi.URLParam(r, "userID"), limit, offset)
	if err != nil {
		proxyError(w, "user-tips", err)
		return
	}
	writeData(w, http.StatusOK, tips)
}

// TipsByCategory handles GET /api/remote/categories/{category}/tips.
func (p *ProxyHandler) TipsByCategory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	tips, err := p.rc.TipsByCategory(r.Context(), chi.URLParam(r, "category"), limit, offset)
	if err != nil {
		proxyError(w, "category-tips", err)
		return
	}
	writeData(w, http.StatusOK, tips)
}

// LegacyContent handles GET /api/remote/legacy.
func (p *ProxyHandler) LegacyContent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	tips, err := p.rc.LegacyContent(r.Context(), limit)
	if err != nil {
		proxyError(w, "legacy", err)
		return
	}
	writeData(w, http.StatusOK, tips)
}
