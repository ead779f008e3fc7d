package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foliohq/folio/internal/adapter/ws"
	"github.com/foliohq/folio/internal/config"
	"github.com/foliohq/folio/internal/middleware"
	"github.com/foliohq/folio/internal/service"
)

// MountRoutes registers all API routes on the given chi router. Public
// routes carry no auth; the admin group requires a Bearer token and the
// contact endpoint is rate limited per IP.
func MountRoutes(r chi.Router, h *Handlers, wh *WebhookHandlers, hub *ws.Hub, authSvc *service.AuthService, cfg *config.Config, limiter *middleware.RateLimiter) {
	r.Get("/health", h.HandleHealth)

	// Identity-provider webhook (outside auth, HMAC-verified body)
	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.With(middleware.WebhookHMAC(cfg.Webhook.IdentitySecret, "X-Webhook-Signature")).
			Post("/identity", wh.HandleIdentityWebhook)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public content
		r.Get("/projects", h.HandleListProjects)
		r.Get("/projects/featured", h.HandleFeaturedProjects)
		r.Get("/projects/{slug}", h.HandleGetProjectBySlug)
		r.Get("/experience", h.HandleListExperience)

		// Public contact form
		r.With(limiter.Handler).Post("/contact", h.HandleSubmitMessage)

		// Auth
		r.Post("/auth/login", h.HandleLogin)

		// Admin area
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(authSvc, cfg.Auth.Enabled))
			r.Use(middleware.RequireAdmin)

			r.Get("/me", h.HandleMe)

			r.Get("/projects", handleList(h.projects.List))
			r.Post("/projects", handleCreate(h.projects.Create))
			r.Get("/projects/{id}", handleGet(h.projects.Get, "project not found"))
			r.Put("/projects/{id}", handleUpdate(h.projects.Update, "project not found"))
			r.Delete("/projects/{id}", handleDelete(h.projects.Delete, "project not found"))

			r.Get("/experience", handleList(h.experience.List))
			r.Post("/experience", handleCreate(h.experience.Create))
			r.Get("/experience/{id}", handleGet(h.experience.Get, "experience entry not found"))
			r.Put("/experience/{id}", handleUpdate(h.experience.Update, "experience entry not found"))
			r.Delete("/experience/{id}", handleDelete(h.experience.Delete, "experience entry not found"))

			r.Get("/messages", handleList(h.messages.List))
			r.Get("/messages/{id}", handleGet(h.messages.Get, "message not found"))
			r.Patch("/messages/{id}/read", h.HandleMarkMessageRead)
			r.Delete("/messages/{id}", handleDelete(h.messages.Delete, "message not found"))

			r.Post("/uploads", h.HandleUploadImage)
			r.Delete("/uploads/{name}", h.HandleDeleteUpload)

			r.Get("/cache/stats", h.HandleCacheStats)
			r.Post("/cache/flush", h.HandleCacheFlush)
		})
	})

	// Live admin event feed; token checked by the auth middleware via ?token=.
	r.With(middleware.Auth(authSvc, cfg.Auth.Enabled)).Get("/ws", hub.HandleWS)

	// Uploaded images
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir)))
	r.Get("/uploads/*", fs.ServeHTTP)
}
