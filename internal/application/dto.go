package application

import (
	"github.com/shopspring/decimal"

	errors "github.com/frahmantamala/loanlink/internal"
	"github.com/frahmantamala/loanlink/internal/core/common/validation"
)

// ApplyDTO is the wire payload for a borrower's loan application.
type ApplyDTO struct {
	LoanID        string          `json:"loanId"`
	BorrowerEmail string          `json:"email"`
	BorrowerName  string          `json:"name"`
	LoanTitle     string          `json:"title"`
	Category      string          `json:"category"`
	LoanAmount    decimal.Decimal `json:"loanAmount"`
}

func (d *ApplyDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("loanId", d.LoanID).Required()
	validator.Field("email", d.BorrowerEmail).Required().Email()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}

	if d.LoanAmount.IsNegative() {
		return errors.NewValidationFieldError("loanAmount", "loan amount must not be negative", errors.ErrCodeInvalidAmount)
	}

	return nil
}
