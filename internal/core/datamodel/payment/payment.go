package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a reconciled checkout. TransactionID is the gateway's charge
// identifier and carries a unique index: the storage layer is the final
// arbiter of the at-most-once-per-transaction invariant. Rows are created
// once and never mutated.
type Payment struct {
	ID            string          `gorm:"primaryKey;size:36"`
	ApplicationID string          `gorm:"column:application_id;index;not null"`
	TransactionID string          `gorm:"column:transaction_id;not null;uniqueIndex"`
	BorrowerEmail string          `gorm:"column:borrower_email;index;not null"`
	Status        string          `gorm:"column:status;default:pending"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(14,2)"`
	LoanTitle     string          `gorm:"column:loan_title"`
	Category      string          `gorm:"column:category"`
	LoanAmount    decimal.Decimal `gorm:"column:loan_amount;type:numeric(14,2)"`
	PaidAt        time.Time       `gorm:"column:paid_at"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
