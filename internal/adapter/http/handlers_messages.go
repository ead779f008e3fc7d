package http

import (
	"net/http"

	"github.com/foliohq/folio/internal/domain/message"
)

// HandleSubmitMessage accepts a public contact-form submission. The route is
// rate limited per IP in front of this handler.
func (h *Handlers) HandleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[message.SubmitRequest](w, r)
	if !ok {
		return
	}

	m, err := h.messages.Submit(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "submission failed")
		return
	}

	// The visitor only needs an acknowledgement, not the stored record.
	writeJSON(w, http.StatusCreated, map[string]string{"id": m.ID, "status": "received"})
}

type markReadRequest struct {
	Read bool `json:"read"`
}

// HandleMarkMessageRead toggles the read flag on an inbox message.
func (h *Handlers) HandleMarkMessageRead(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[markReadRequest](w, r)
	if !ok {
		return
	}

	if err := h.messages.MarkRead(r.Context(), urlParam(r, "id"), req.Read); err != nil {
		writeDomainError(w, err, "message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
