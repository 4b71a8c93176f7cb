package payment

import (
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/loanlink/internal/core/common/validation"
)

// BorrowerDTO is the borrower slice of a checkout request.
type BorrowerDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// CheckoutDTO is the wire payload for starting a hosted checkout. LoanID
// is the loan application being paid for; title, category and loanAmount
// travel along as session metadata only.
type CheckoutDTO struct {
	LoanID     string          `json:"loanId"`
	Borrower   BorrowerDTO     `json:"borrower"`
	Title      string          `json:"title"`
	Category   string          `json:"category"`
	LoanAmount decimal.Decimal `json:"loanAmount"`
}

func (d *CheckoutDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("loanId", d.LoanID).Required()
	validator.Field("borrower.email", d.Borrower.Email).Required().Email()
	validator.Field("borrower.name", d.Borrower.Name).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}

	return nil
}

// ReconcileDTO carries the checkout session to settle.
type ReconcileDTO struct {
	SessionID string `json:"sessionId"`
}

func (d *ReconcileDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("sessionId", d.SessionID).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}

	return nil
}
