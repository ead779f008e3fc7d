package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/foliohq/folio/internal/domain"
	"github.com/foliohq/folio/internal/port/database"
)

// identityEvent is the payload posted by the hosted identity provider.
// Signature verification happens in middleware before this handler runs.
type identityEvent struct {
	Event string `json:"event"`
	Data  struct {
		Email        string `json:"email"`
		PasswordHash string `json:"password_hash,omitempty"`
	} `json:"data"`
}

// WebhookHandlers carries the identity webhook's dependencies. It is split
// from Handlers because the webhook route sits outside the auth chain.
type WebhookHandlers struct {
	store database.Store
}

// NewWebhookHandlers creates the webhook handler set.
func NewWebhookHandlers(store database.Store) *WebhookHandlers {
	return &WebhookHandlers{store: store}
}

// HandleIdentityWebhook syncs user credential changes pushed by the identity
// provider. Unknown event types are acknowledged and ignored so provider-side
// additions never cause retry storms.
func (h *WebhookHandlers) HandleIdentityWebhook(w http.ResponseWriter, r *http.Request) {
	ev, ok := readJSON[identityEvent](w, r)
	if !ok {
		return
	}

	switch ev.Event {
	case "user.password_changed":
		if ev.Data.Email == "" || ev.Data.PasswordHash == "" {
			writeError(w, http.StatusBadRequest, "email and password_hash are required")
			return
		}
		u, err := h.store.GetUserByEmail(r.Context(), ev.Data.Email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Not an error: the provider manages more users than this site.
				slog.Info("identity webhook for unknown user", "event", ev.Event)
				w.WriteHeader(http.StatusAccepted)
				return
			}
			writeInternalError(w, err)
			return
		}
		if err := h.store.UpdateUserPassword(r.Context(), u.ID, ev.Data.PasswordHash); err != nil {
			writeInternalError(w, err)
			return
		}
		slog.Info("identity webhook synced credentials", "user_id", u.ID)
		w.WriteHeader(http.StatusNoContent)

	default:
		slog.Info("identity webhook ignored", "event", ev.Event)
		w.WriteHeader(http.StatusAccepted)
	}
}
