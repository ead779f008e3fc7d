package http

import (
	"net/http"
	"time"

	"github.com/foliohq/folio/internal/port/cache"
	"github.com/foliohq/folio/internal/service"
)

// publicCacheControl is the Cache-Control value for public content reads. It
// mirrors the in-process TTL so edge caches and the server expire together.
var publicCacheControl = cache.ControlHeader(time.Minute, 5*time.Minute, time.Minute)

// Handlers bundles all HTTP handlers and their service dependencies.
type Handlers struct {
	projects   *service.ProjectService
	experience *service.ExperienceService
	messages   *service.MessageService
	auth       *service.AuthService
	health     *service.HealthService
	uploads    *service.UploadService
	loader     *cache.Loader
}

// NewHandlers creates the handler set.
func NewHandlers(
	projects *service.ProjectService,
	experience *service.ExperienceService,
	messages *service.MessageService,
	auth *service.AuthService,
	health *service.HealthService,
	uploads *service.UploadService,
	loader *cache.Loader,
) *Handlers {
	return &Handlers{
		projects:   projects,
		experience: experience,
		messages:   messages,
		auth:       auth,
		health:     health,
		uploads:    uploads,
		loader:     loader,
	}
}

// HandleHealth reports service health. Always 200 with a body; load
// balancers inspect the status field.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.health.Check(r.Context()))
}

// HandleCacheStats returns the cache backend's current size, capacity, and
// keys (admin diagnostics).
func (h *Handlers) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.loader.Cache().Stats(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleCacheFlush clears the entire cache. Used after bulk content imports.
func (h *Handlers) HandleCacheFlush(w http.ResponseWriter, r *http.Request) {
	if err := h.loader.Cache().Clear(r.Context()); err != nil {
		writeInternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
