package loan

import (
	"github.com/shopspring/decimal"

	errors "github.com/frahmantamala/loanlink/internal"
	"github.com/frahmantamala/loanlink/internal/core/common/validation"
)

// CreateLoanDTO is the wire payload for posting a loan offer.
type CreateLoanDTO struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	LoanAmount   decimal.Decimal `json:"loanAmount"`
	InterestRate float64         `json:"interestRate"`
	ImageURL     string          `json:"image,omitempty"`
}

func (d *CreateLoanDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("title", d.Title).Required().MaxLength(200)
	validator.Field("category", d.Category).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}

	if d.LoanAmount.LessThanOrEqual(decimal.Zero) {
		return errors.NewValidationFieldError("loanAmount", "loan amount must be positive", errors.ErrCodeInvalidAmount)
	}

	return nil
}
