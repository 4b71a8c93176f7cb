package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/loanlink/internal"
	"github.com/frahmantamala/loanlink/internal/core/datamodel/user"
	"github.com/frahmantamala/loanlink/internal/transport"
	"github.com/frahmantamala/loanlink/pkg/logger"
)

// RoleReader looks up the role recorded for a verified email. Authorization
// trusts the users table, never the caller's own claim.
type RoleReader interface {
	GetRoleByEmail(email string) (string, error)
}

// Middleware gates routes on a verified identity, and optionally on the
// caller's role.
type Middleware struct {
	*transport.BaseHandler
	verifier Verifier
	roles    RoleReader
}

func NewMiddleware(verifier Verifier, roles RoleReader) *Middleware {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Middleware{
		BaseHandler: transport.NewBaseHandler(lg),
		verifier:    verifier,
		roles:       roles,
	}
}

// RequireAuth rejects requests without a valid bearer token. A missing token
// is rejected before the verifier is ever called. Verifier failures are
// logged with full detail but the caller only sees a generic 401.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.ExtractTokenFromHeader(r)
		if token == "" {
			m.Logger.Warn("auth: missing bearer token", "path", r.URL.Path)
			m.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		identity, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				m.Logger.Warn("auth: token expired", "path", r.URL.Path)
			} else {
				m.Logger.Error("auth: token verification failed", "path", r.URL.Path, "error", err)
			}
			m.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := internal.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole layers a role check on top of RequireAuth. The caller's role
// comes from the users table keyed by the verified email. An unknown user or
// a role mismatch is a 403, distinct from the 401 an unauthenticated caller
// gets. Admins pass manager gates.
func (m *Middleware) RequireRole(required string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := internal.IdentityFromContext(r.Context())
			if !ok || identity == nil {
				m.Logger.Error("role check reached without identity in context", "path", r.URL.Path)
				m.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			role, err := m.roles.GetRoleByEmail(identity.Email)
			if err != nil {
				m.Logger.Warn("role check: no user record for verified email",
					"email", identity.Email, "error", err)
				m.WriteError(w, http.StatusForbidden, "forbidden")
				return
			}

			if !roleSatisfies(role, required) {
				m.Logger.Warn("access denied: insufficient role",
					"email", identity.Email,
					"role", role,
					"required_role", required)
				m.WriteError(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) RequireManager() func(http.Handler) http.Handler {
	return m.RequireRole(user.RoleManager)
}

func (m *Middleware) RequireAdmin() func(http.Handler) http.Handler {
	return m.RequireRole(user.RoleAdmin)
}

func roleSatisfies(role, required string) bool {
	if role == required {
		return true
	}
	return required == user.RoleManager && role == user.RoleAdmin
}
