package paymentgateway

import (
	"errors"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the gateway's view of a checkout session. Only "paid" is
// acted on by reconciliation; everything else is left alone.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// SessionMetadata is the payload attached at session creation and read back
// verbatim during reconciliation. ApplicationID keys the loan application
// the fee was paid for.
type SessionMetadata struct {
	ApplicationID string `json:"loanId"`
	Borrower      string `json:"borrower"`
	LoanTitle     string `json:"loanTitle"`
	Category      string `json:"category"`
	LoanAmount    string `json:"loanAmount"`
}

// CheckoutSession is an ephemeral gateway resource representing one pending
// payment attempt.
type CheckoutSession struct {
	ID            string          `json:"id"`
	URL           string          `json:"url"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	PaymentIntent string          `json:"payment_intent"`
	AmountTotal   int64           `json:"amount_total"`
	CustomerEmail string          `json:"customer_email"`
	Metadata      SessionMetadata `json:"metadata"`
}

// AmountDecimal converts the gateway's minor-unit total into decimal
// currency units.
func (s *CheckoutSession) AmountDecimal() decimal.Decimal {
	return decimal.NewFromInt(s.AmountTotal).Div(decimal.NewFromInt(100))
}

// CreateSessionParams describes the checkout to build. The unit amount is a
// flat application fee in minor units, not the loan amount itself.
type CreateSessionParams struct {
	CustomerEmail string
	ProductName   string
	ProductImage  string
	UnitAmount    int64
	Currency      string
	SuccessURL    string
	CancelURL     string
	Metadata      SessionMetadata
}

func (p *CreateSessionParams) Validate() error {
	if p.CustomerEmail == "" {
		return errors.New("customer email is required")
	}
	if p.UnitAmount <= 0 {
		return errors.New("unit amount must be greater than 0")
	}
	if p.Metadata.ApplicationID == "" {
		return errors.New("application id metadata is required")
	}
	return nil
}
