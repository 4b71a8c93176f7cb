package postgres

import (
	"gorm.io/gorm"

	loanDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/loan"
	loanpkg "github.com/frahmantamala/loanlink/internal/loan"
)

// LoanRepository implements the loan.Repository interface using GORM
type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) loanpkg.Repository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(l *loanDatamodel.Loan) error {
	return r.db.Create(l).Error
}

func (r *LoanRepository) GetByID(id string) (*loanDatamodel.Loan, error) {
	var l loanDatamodel.Loan
	err := r.db.Where("id = ?", id).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LoanRepository) GetAll() ([]*loanDatamodel.Loan, error) {
	var loans []*loanDatamodel.Loan
	err := r.db.Order("created_at DESC").Find(&loans).Error
	return loans, err
}

func (r *LoanRepository) GetByCreator(email string) ([]*loanDatamodel.Loan, error) {
	var loans []*loanDatamodel.Loan
	err := r.db.Where("created_by_email = ?", email).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}
