package payment

import (
	paymentDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/payment"
)

// StatusPending is the workflow status a freshly reconciled payment starts
// in. It is an application-level status, distinct from the gateway's own
// payment status, and this service never moves it afterwards.
const StatusPending = "pending"

// ApplicationFeeMinorUnits is the flat checkout fee in minor currency
// units. The loan amount itself is only carried as descriptive metadata.
const ApplicationFeeMinorUnits int64 = 1000

// Outcome tags the terminal state of one reconciliation attempt. The
// skipped branches are deliberate no-ops, not errors, but callers get to
// see which branch was taken.
type Outcome string

const (
	OutcomeReconciled         Outcome = "reconciled"
	OutcomeAlreadyRecorded    Outcome = "already_recorded"
	OutcomeApplicationMissing Outcome = "application_missing"
	OutcomeNotPaid            Outcome = "not_paid"
)

// ReconcileResult is what one reconciliation attempt produced. Payment is
// set only when Outcome is OutcomeReconciled.
type ReconcileResult struct {
	Outcome Outcome                   `json:"outcome"`
	Payment *paymentDatamodel.Payment `json:"payment,omitempty"`
}
