package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/foliohq/folio/internal/domain/user"
	"github.com/foliohq/folio/internal/service"
)

type authUserCtxKey struct{}

// Auth returns middleware that validates Bearer tokens on the admin API.
// When authEnabled is false (local development), a default admin context is
// injected instead. WebSocket upgrades authenticate via ?token= because
// browsers cannot set headers on WebSocket handshakes.
func Auth(authSvc *service.AuthService, authEnabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authEnabled {
				defaultUser := &user.User{
					ID:      "00000000-0000-0000-0000-000000000000",
					Email:   "admin@localhost",
					Name:    "Admin",
					Role:    user.RoleAdmin,
					Enabled: true,
				}
				next.ServeHTTP(w, r.WithContext(withUser(r.Context(), defaultUser)))
				return
			}

			token := bearerToken(r)
			if token == "" {
				http.Error(w, `{"error":"authorization required"}`, http.StatusUnauthorized)
				return
			}

			claims, err := authSvc.ValidateToken(token)
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			u := &user.User{
				ID:      claims.UserID,
				Email:   claims.Email,
				Name:    claims.Name,
				Role:    claims.Role,
				Enabled: true,
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
		})
	}
}

// bearerToken extracts credentials from the Authorization header, falling
// back to the ?token= query parameter for WebSocket handshakes.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		token := strings.TrimPrefix(h, "Bearer ")
		if token == h {
			return ""
		}
		return token
	}
	return r.URL.Query().Get("token")
}

// RequireAdmin returns middleware that rejects mutating requests from
// non-admin users. Viewers may read the admin area but not change it.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		u := UserFrom(r.Context())
		if u == nil || u.Role != user.RoleAdmin {
			http.Error(w, `{"error":"admin role required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFrom returns the authenticated user from the request context, or nil.
func UserFrom(ctx context.Context) *user.User {
	u, _ := ctx.Value(authUserCtxKey{}).(*user.User)
	return u
}

func withUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, authUserCtxKey{}, u)
}
