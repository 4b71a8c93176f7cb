package application

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/loanlink/internal"
	appDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/application"
)

// Repository defines the data access methods for loan applications
type Repository interface {
	Create(a *appDatamodel.Application) error
	GetByID(id string) (*appDatamodel.Application, error)
	GetByBorrower(email string) ([]*appDatamodel.Application, error)
	GetPendingByBorrower(email string) ([]*appDatamodel.Application, error)
}

// Service handles loan application business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Apply records a borrower's application against a loan offer. The loan is
// referenced, not owned: the application stays valid even if the offer is
// later withdrawn.
func (s *Service) Apply(dto ApplyDTO) (*appDatamodel.Application, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("application validation failed", "error", err, "borrower", dto.BorrowerEmail)
		return nil, err
	}

	a := &appDatamodel.Application{
		ID:            uuid.NewString(),
		LoanID:        dto.LoanID,
		BorrowerEmail: dto.BorrowerEmail,
		BorrowerName:  dto.BorrowerName,
		LoanTitle:     dto.LoanTitle,
		Category:      dto.Category,
		LoanAmount:    dto.LoanAmount,
		Status:        appDatamodel.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create application", "error", err, "borrower", dto.BorrowerEmail)
		return nil, internal.NewInternalError("failed to create application", err)
	}

	s.logger.Info("loan application created",
		"application_id", a.ID,
		"loan_id", a.LoanID,
		"borrower", a.BorrowerEmail)

	return a, nil
}

// GetByBorrower lists every application a borrower has filed.
func (s *Service) GetByBorrower(email string) ([]*appDatamodel.Application, error) {
	apps, err := s.repo.GetByBorrower(email)
	if err != nil {
		s.logger.Error("failed to list applications", "error", err, "borrower", email)
		return nil, internal.NewInternalError("failed to list applications", err)
	}
	return apps, nil
}

func (s *Service) GetPendingByBorrower(email string) ([]*appDatamodel.Application, error) {
	apps, err := s.repo.GetPendingByBorrower(email)
	if err != nil {
		s.logger.Error("failed to list pending applications", "error", err, "borrower", email)
		return nil, internal.NewInternalError("failed to list pending applications", err)
	}
	return apps, nil
}
