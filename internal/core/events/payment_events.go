package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeCheckoutCreated   = "checkout.created"
	EventTypePaymentReconciled = "payment.reconciled"
	EventTypePaymentSkipped    = "payment.skipped"
)

type CheckoutCreatedEvent struct {
	BaseEvent
	SessionID     string `json:"session_id"`
	ApplicationID string `json:"application_id"`
	BorrowerEmail string `json:"borrower_email"`
}

func NewCheckoutCreatedEvent(sessionID, applicationID, borrowerEmail string) *CheckoutCreatedEvent {
	return &CheckoutCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCheckoutCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"session_id":     sessionID,
				"application_id": applicationID,
				"borrower_email": borrowerEmail,
			},
		},
		SessionID:     sessionID,
		ApplicationID: applicationID,
		BorrowerEmail: borrowerEmail,
	}
}

type PaymentReconciledEvent struct {
	BaseEvent
	PaymentID     string `json:"payment_id"`
	SessionID     string `json:"session_id"`
	TransactionID string `json:"transaction_id"`
	ApplicationID string `json:"application_id"`
	Amount        string `json:"amount"`
}

func NewPaymentReconciledEvent(paymentID, sessionID, transactionID, applicationID, amount string) *PaymentReconciledEvent {
	return &PaymentReconciledEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentReconciled,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id":     paymentID,
				"session_id":     sessionID,
				"transaction_id": transactionID,
				"application_id": applicationID,
				"amount":         amount,
			},
		},
		PaymentID:     paymentID,
		SessionID:     sessionID,
		TransactionID: transactionID,
		ApplicationID: applicationID,
		Amount:        amount,
	}
}

// PaymentSkippedEvent records a reconciliation attempt that deliberately did
// not insert a payment, together with the reason.
type PaymentSkippedEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
}

func NewPaymentSkippedEvent(sessionID, reason string) *PaymentSkippedEvent {
	return &PaymentSkippedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentSkipped,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"session_id": sessionID,
				"reason":     reason,
			},
		},
		SessionID: sessionID,
		Reason:    reason,
	}
}
