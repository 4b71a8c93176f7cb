package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/loanlink/internal"
	appDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/application"
	paymentDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/payment"
	gateway "github.com/frahmantamala/loanlink/internal/core/datamodel/paymentgateway"
	"github.com/frahmantamala/loanlink/internal/core/events"
)

// Repository defines the payment database operations. Payments are insert
// and read only; there is no update path.
type Repository interface {
	Create(p *paymentDatamodel.Payment) error
	GetByTransactionID(transactionID string) (*paymentDatamodel.Payment, error)
	GetByBorrower(email string) ([]*paymentDatamodel.Payment, error)
}

// ApplicationReader is the slice of the application repository
// reconciliation needs.
type ApplicationReader interface {
	GetByID(id string) (*appDatamodel.Application, error)
}

// Gateway is the checkout gateway surface used by this service.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params *gateway.CreateSessionParams) (*gateway.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*gateway.CheckoutSession, error)
}

// Service owns checkout session creation and payment reconciliation.
type Service struct {
	repo         Repository
	applications ApplicationReader
	gateway      Gateway
	eventBus     *events.EventBus
	clientOrigin string
	logger       *slog.Logger
}

func NewService(repo Repository, applications ApplicationReader, gw Gateway, eventBus *events.EventBus, clientOrigin string, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		applications: applications,
		gateway:      gw,
		eventBus:     eventBus,
		clientOrigin: clientOrigin,
		logger:       logger,
	}
}

// CreateCheckout builds a gateway session for the flat application fee and
// returns the hosted checkout URL. Nothing is written locally; the session
// lives only in the gateway until it is reconciled.
func (s *Service) CreateCheckout(ctx context.Context, dto CheckoutDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("checkout validation failed", "error", err)
		return "", err
	}

	params := &gateway.CreateSessionParams{
		CustomerEmail: dto.Borrower.Email,
		ProductName:   dto.Borrower.Name,
		ProductImage:  dto.Borrower.Image,
		UnitAmount:    ApplicationFeeMinorUnits,
		Currency:      "usd",
		SuccessURL:    s.clientOrigin + "/dashboard/my-loans?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.clientOrigin + "/dashboard/my-loans",
		Metadata: gateway.SessionMetadata{
			ApplicationID: dto.LoanID,
			Borrower:      dto.Borrower.Email,
			LoanTitle:     dto.Title,
			Category:      dto.Category,
			LoanAmount:    dto.LoanAmount.String(),
		},
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		s.logger.Error("failed to create checkout session", "error", err, "application_id", dto.LoanID)
		return "", internal.NewExternalError("failed to create checkout session", err)
	}

	s.eventBus.Publish(ctx, events.NewCheckoutCreatedEvent(session.ID, dto.LoanID, dto.Borrower.Email))

	return session.URL, nil
}

// Reconcile turns a gateway-reported checkout session into an at-most-once
// recorded payment. For a fixed transaction id at most one payment row can
// ever exist, no matter how many times this is invoked or how the calls
// interleave: the check below is the fast path, the unique index on
// transaction_id is the guarantee.
func (s *Service) Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	session, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		s.logger.Error("failed to retrieve checkout session", "error", err, "session_id", sessionID)
		return nil, internal.NewExternalError("failed to retrieve checkout session", err)
	}

	applicationID := session.Metadata.ApplicationID

	app, err := s.applications.GetByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// data-integrity anomaly, not a crash: record the skip and move on
			s.logger.Warn("reconcile skipped: referenced application missing",
				"session_id", sessionID,
				"application_id", applicationID)
			s.eventBus.Publish(ctx, events.NewPaymentSkippedEvent(sessionID, string(OutcomeApplicationMissing)))
			return &ReconcileResult{Outcome: OutcomeApplicationMissing}, nil
		}
		return nil, internal.NewInternalError("failed to look up application", err)
	}

	existing, err := s.repo.GetByTransactionID(session.PaymentIntent)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.NewInternalError("failed to look up payment", err)
	}
	if existing != nil {
		s.logger.Info("reconcile skipped: payment already recorded",
			"session_id", sessionID,
			"transaction_id", session.PaymentIntent)
		s.eventBus.Publish(ctx, events.NewPaymentSkippedEvent(sessionID, string(OutcomeAlreadyRecorded)))
		return &ReconcileResult{Outcome: OutcomeAlreadyRecorded}, nil
	}

	if session.PaymentStatus != gateway.PaymentStatusPaid {
		s.logger.Info("reconcile skipped: session not paid",
			"session_id", sessionID,
			"payment_status", session.PaymentStatus)
		s.eventBus.Publish(ctx, events.NewPaymentSkippedEvent(sessionID, string(OutcomeNotPaid)))
		return &ReconcileResult{Outcome: OutcomeNotPaid}, nil
	}

	now := time.Now().UTC()
	p := &paymentDatamodel.Payment{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		TransactionID: session.PaymentIntent,
		BorrowerEmail: session.Metadata.Borrower,
		Status:        StatusPending,
		Amount:        session.AmountDecimal(),
		LoanTitle:     session.Metadata.LoanTitle,
		Category:      session.Metadata.Category,
		LoanAmount:    app.LoanAmount,
		PaidAt:        now,
		CreatedAt:     now,
	}

	if err := s.repo.Create(p); err != nil {
		// concurrent reconciliation for the same transaction id lost the
		// race to the unique index; same terminal state as the fast path
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Info("reconcile skipped: concurrent insert won",
				"session_id", sessionID,
				"transaction_id", session.PaymentIntent)
			s.eventBus.Publish(ctx, events.NewPaymentSkippedEvent(sessionID, string(OutcomeAlreadyRecorded)))
			return &ReconcileResult{Outcome: OutcomeAlreadyRecorded}, nil
		}
		s.logger.Error("failed to record payment", "error", err, "session_id", sessionID)
		return nil, internal.NewInternalError("failed to record payment", err)
	}

	s.logger.Info("payment reconciled",
		"payment_id", p.ID,
		"session_id", sessionID,
		"transaction_id", p.TransactionID,
		"application_id", p.ApplicationID,
		"amount", p.Amount.String())

	s.eventBus.Publish(ctx, events.NewPaymentReconciledEvent(
		p.ID, sessionID, p.TransactionID, p.ApplicationID, p.Amount.String()))

	return &ReconcileResult{Outcome: OutcomeReconciled, Payment: p}, nil
}

// GetPaymentsByBorrower lists reconciled payments for one borrower.
func (s *Service) GetPaymentsByBorrower(email string) ([]*paymentDatamodel.Payment, error) {
	payments, err := s.repo.GetByBorrower(email)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
