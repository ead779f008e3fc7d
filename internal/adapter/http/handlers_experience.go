package http

import (
	"net/http"

	"github.com/foliohq/folio/internal/domain/experience"
)

// HandleListExperience returns the public experience timeline.
func (h *Handlers) HandleListExperience(w http.ResponseWriter, r *http.Request) {
	items, err := h.experience.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if items == nil {
		items = []experience.Entry{}
	}
	w.Header().Set("Cache-Control", publicCacheControl)
	writeJSON(w, http.StatusOK, items)
}
