package loan

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/loanlink/internal"
	loanDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/loan"
)

// Repository defines the data access methods for loan offers
type Repository interface {
	Create(l *loanDatamodel.Loan) error
	GetByID(id string) (*loanDatamodel.Loan, error)
	GetAll() ([]*loanDatamodel.Loan, error)
	GetByCreator(email string) ([]*loanDatamodel.Loan, error)
}

// Service handles loan offer business logic
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

// CreateLoan records a new offer. The id and created_at are assigned here,
// never taken from the request.
func (s *Service) CreateLoan(creator *internal.Identity, dto CreateLoanDTO) (*loanDatamodel.Loan, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("loan validation failed", "error", err, "created_by", creator.Email)
		return nil, err
	}

	l := &loanDatamodel.Loan{
		ID:             uuid.NewString(),
		Title:          dto.Title,
		Description:    dto.Description,
		Category:       dto.Category,
		LoanAmount:     dto.LoanAmount,
		InterestRate:   dto.InterestRate,
		ImageURL:       dto.ImageURL,
		CreatedByEmail: creator.Email,
		CreatedByName:  creator.Name,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(l); err != nil {
		s.logger.Error("failed to create loan", "error", err, "created_by", creator.Email)
		return nil, internal.NewInternalError("failed to create loan", err)
	}

	s.logger.Info("loan created",
		"loan_id", l.ID,
		"created_by", creator.Email,
		"amount", l.LoanAmount.String())

	return l, nil
}

func (s *Service) GetAllLoans() ([]*loanDatamodel.Loan, error) {
	loans, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list loans", "error", err)
		return nil, internal.NewInternalError("failed to list loans", err)
	}
	return loans, nil
}

func (s *Service) GetLoanByID(id string) (*loanDatamodel.Loan, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Warn("loan not found", "loan_id", id, "error", err)
		return nil, internal.ErrLoanNotFound
	}
	return l, nil
}

// GetLoansByCreator lists offers posted by one manager.
func (s *Service) GetLoansByCreator(email string) ([]*loanDatamodel.Loan, error) {
	loans, err := s.repo.GetByCreator(email)
	if err != nil {
		s.logger.Error("failed to list loans by creator", "error", err, "email", email)
		return nil, internal.NewInternalError("failed to list loans", err)
	}
	return loans, nil
}
