package loan

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/loanlink/internal"
	loanDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/loan"
	"github.com/frahmantamala/loanlink/internal/transport"
	"github.com/frahmantamala/loanlink/pkg/logger"
)

type ServiceAPI interface {
	CreateLoan(creator *internal.Identity, dto CreateLoanDTO) (*loanDatamodel.Loan, error)
	GetAllLoans() ([]*loanDatamodel.Loan, error)
	GetLoanByID(id string) (*loanDatamodel.Loan, error)
	GetLoansByCreator(email string) ([]*loanDatamodel.Loan, error)
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

// CreateLoan handles POST /loans
func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateLoanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.CreateLoan(identity, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, l)
}

// GetAllLoans handles GET /loans
func (h *Handler) GetAllLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.Service.GetAllLoans()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, loans)
}

// GetLoan handles GET /loans/{id}
func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "loan id is required")
		return
	}

	l, err := h.Service.GetLoanByID(id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

// ManageLoans handles GET /manage-loans/{email}. The caller must be the
// manager named in the path; managers cannot read each other's offers.
func (h *Handler) ManageLoans(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	email := chi.URLParam(r, "email")
	if email != identity.Email {
		h.Logger.Warn("manage-loans email mismatch",
			"token_email", identity.Email,
			"path_email", email)
		h.WriteError(w, http.StatusForbidden, "forbidden")
		return
	}

	loans, err := h.Service.GetLoansByCreator(email)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, loans)
}
