package postgres

import (
	"gorm.io/gorm"

	paymentDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/payment"
	paymentpkg "github.com/frahmantamala/loanlink/internal/payment"
)

// PaymentRepository implements the payment.Repository interface using GORM.
// The connection must be opened with TranslateError so a unique-index
// violation on transaction_id surfaces as gorm.ErrDuplicatedKey.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) paymentpkg.Repository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *paymentDatamodel.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByTransactionID(transactionID string) (*paymentDatamodel.Payment, error) {
	var p paymentDatamodel.Payment
	err := r.db.Where("transaction_id = ?", transactionID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByBorrower(email string) ([]*paymentDatamodel.Payment, error) {
	var payments []*paymentDatamodel.Payment
	err := r.db.Where("borrower_email = ?", email).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
