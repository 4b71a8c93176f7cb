package application

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/loanlink/internal"
	appDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/application"
	"github.com/frahmantamala/loanlink/internal/transport"
	"github.com/frahmantamala/loanlink/pkg/logger"
)

type ServiceAPI interface {
	Apply(dto ApplyDTO) (*appDatamodel.Application, error)
	GetByBorrower(email string) ([]*appDatamodel.Application, error)
	GetPendingByBorrower(email string) ([]*appDatamodel.Application, error)
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

// Apply handles POST /borrowerLoansApply
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var dto ApplyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Apply(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

// MyLoans handles GET /my-loans. The borrower email comes from the verified
// identity, not from the request.
func (h *Handler) MyLoans(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	apps, err := h.Service.GetByBorrower(identity.Email)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, apps)
}

// PendingApplications handles GET /pending-applications/{email}
func (h *Handler) PendingApplications(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		h.WriteError(w, http.StatusBadRequest, "email is required")
		return
	}

	apps, err := h.Service.GetPendingByBorrower(email)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, apps)
}
