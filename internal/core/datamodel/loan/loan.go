package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is an offer posted by a manager. The ID is assigned by the
// application at insert time and never changes afterwards.
type Loan struct {
	ID             string          `gorm:"primaryKey;size:36"`
	Title          string          `gorm:"column:title;not null"`
	Description    string          `gorm:"column:description"`
	Category       string          `gorm:"column:category;index"`
	LoanAmount     decimal.Decimal `gorm:"column:loan_amount;type:numeric(14,2)"`
	InterestRate   float64         `gorm:"column:interest_rate"`
	ImageURL       string          `gorm:"column:image_url"`
	CreatedByEmail string          `gorm:"column:created_by_email;index;not null"`
	CreatedByName  string          `gorm:"column:created_by_name"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
}

func (Loan) TableName() string {
	return "loans"
}
