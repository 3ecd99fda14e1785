package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edusosyal/hapbilgi/internal/index"
	"github.com/edusosyal/hapbilgi/internal/remote"
	"github.com/edusosyal/hapbilgi/internal/tips"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// rc, if non-nil, gains the /remote proxy routes to the backend.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *tips.Service, idx index.TipIndex, rc *remote.Client, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, idx)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Local tips.
	r.Post("/tips", h.CreateTip)
	r.Get("/tips", h.ListTips)
	r.Get("/tips/recommended", h.ListRecommended)
	r.Get("/tips/search", h.Search)
	r.Get("/tips/{id}", h.GetTip)
	r.Delete("/tips", h.ResetTips)

	// Backend pass-through.
	if rc != nil {
		p := NewProxyHandler(rc)
		r.Route("/remote", func(r chi.Router) {
			r.Get("/search", p.Search)
			r.Get("/similar", p.Similar)
			r.Get("/legacy", p.LegacyContent)
			r.Post("/from-post/{postID}", p.CreateFromPost)
			r.Get("/tips/{id}", p.Detail)
			r.Post("/tips/{id}/like", p.Like)
			r.Post("/tips/{id}/save", p.Save)
			r.Get("/users/{userID}/tips", p.TipsByUser)
			r.Get("/categories/{category}/tips", p.TipsByCategory)
		})
	}

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
