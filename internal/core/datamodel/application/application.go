package application

import (
	"time"

	"github.com/shopspring/decimal"
)

// Application statuses. An application starts pending and the workflow
// outside this service moves it along; this service only ever creates rows.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Application is a borrower's request against a loan offer. LoanID is a
// reference, not ownership: the application may outlive the loan it points
// at, so there is no foreign-key constraint here.
type Application struct {
	ID            string          `gorm:"primaryKey;size:36"`
	LoanID        string          `gorm:"column:loan_id;index;not null"`
	BorrowerEmail string          `gorm:"column:borrower_email;index;not null"`
	BorrowerName  string          `gorm:"column:borrower_name"`
	LoanTitle     string          `gorm:"column:loan_title"`
	Category      string          `gorm:"column:category"`
	LoanAmount    decimal.Decimal `gorm:"column:loan_amount;type:numeric(14,2)"`
	Status        string          `gorm:"column:status;default:pending"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (Application) TableName() string {
	return "loan_applications"
}
