// Package middleware provides the cross-cutting HTTP middleware: request
// tagging, per-IP rate limiting for the contact form, webhook signature
// verification, and bearer-token auth for the admin area.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/foliohq/folio/internal/logger"
)

const headerRequestID = "X-Request-ID"

// RequestID tags every request with an ID for log correlation. An incoming
// X-Request-ID is honored (the edge proxy may assign one), otherwise a
// fresh UUID is generated. The ID is stored on the context for the logger
// and echoed on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}
