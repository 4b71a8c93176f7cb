package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/loanlink/internal"
	paymentDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/payment"
	"github.com/frahmantamala/loanlink/internal/transport"
	"github.com/frahmantamala/loanlink/pkg/logger"
)

type ServiceAPI interface {
	CreateCheckout(ctx context.Context, dto CheckoutDTO) (string, error)
	Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error)
	GetPaymentsByBorrower(email string) ([]*paymentDatamodel.Payment, error)
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

// CreateCheckout handles POST /create-checkout-session. On success the
// response carries only the hosted checkout URL the client redirects to.
func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var dto CheckoutDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	url, err := h.Service.CreateCheckout(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Reconcile handles POST /payment-paid. Safe to call any number of times
// for the same session; repeats report already_recorded instead of failing.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var dto ReconcileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	result, err := h.Service.Reconcile(r.Context(), dto.SessionID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// MyPayments handles GET /my-payments. The borrower email comes from the
// verified identity, not from the request.
func (h *Handler) MyPayments(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payments, err := h.Service.GetPaymentsByBorrower(identity.Email)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, payments)
}
