package http

import (
	"errors"
	"net/http"

	"github.com/foliohq/folio/internal/domain/user"
	"github.com/foliohq/folio/internal/middleware"
	"github.com/foliohq/folio/internal/service"
)

// HandleLogin authenticates an admin and returns a signed access token.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.LoginRequest](w, r)
	if !ok {
		return
	}

	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeDomainError(w, err, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMe returns the authenticated user from the request context.
func (h *Handlers) HandleMe(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())
	if u == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
