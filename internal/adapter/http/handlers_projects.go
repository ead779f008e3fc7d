package http

import (
	"net/http"

	"github.com/foliohq/folio/internal/domain/project"
)

// Public project reads. These set Cache-Control so browsers and any CDN in
// front reuse responses; the admin routes below never do.

// HandleListProjects returns all projects for the public site.
func (h *Handlers) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	items, err := h.projects.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if items == nil {
		items = []project.Project{}
	}
	w.Header().Set("Cache-Control", publicCacheControl)
	writeJSON(w, http.StatusOK, items)
}

// HandleFeaturedProjects returns the featured subset for the landing page.
func (h *Handlers) HandleFeaturedProjects(w http.ResponseWriter, r *http.Request) {
	items, err := h.projects.Featured(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if items == nil {
		items = []project.Project{}
	}
	w.Header().Set("Cache-Control", publicCacheControl)
	writeJSON(w, http.StatusOK, items)
}

// HandleGetProjectBySlug returns one project by its public slug.
func (h *Handlers) HandleGetProjectBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.GetBySlug(r.Context(), urlParam(r, "slug"))
	if err != nil {
		writeDomainError(w, err, "project not found")
		return
	}
	w.Header().Set("Cache-Control", publicCacheControl)
	writeJSON(w, http.StatusOK, p)
}

