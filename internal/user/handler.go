package user

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/loanlink/internal"
	userDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/user"
	"github.com/frahmantamala/loanlink/internal/transport"
	"github.com/frahmantamala/loanlink/pkg/logger"
)

type ServiceAPI interface {
	Upsert(dto UpsertDTO) (*userDatamodel.User, error)
	GetRoleByEmail(email string) (string, error)
	ListExcept(email string) ([]*userDatamodel.User, error)
	UpdateRole(dto UpdateRoleDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// Upsert handles POST /user
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var dto UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Upsert(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// GetRole handles GET /user/role for the verified caller.
func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	role, err := h.Service.GetRoleByEmail(identity.Email)
	if err != nil {
		h.Logger.Warn("role lookup failed", "email", identity.Email, "error", err)
		h.WriteAppError(w, internal.ErrUserNotFound)
		return
	}

	h.WriteJSON(w, http.StatusOK, RoleResponse{Role: role})
}

// ListUsers handles GET /all-user, excluding the caller from the listing.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	users, err := h.Service.ListExcept(identity.Email)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

// UpdateRole handles PATCH /update-role
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var dto UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateRole(dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"email": dto.Email,
		"role":  dto.Role,
	})
}
