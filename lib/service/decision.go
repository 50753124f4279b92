package service

import (
	"time"

	"github.com/getAlby/lnpaywall/db/models"
)

type Outcome string

const (
	OutcomeServe             Outcome = "serve"
	OutcomeAwaitPayment      Outcome = "await_payment"
	OutcomeReplacementIssued Outcome = "replacement_issued"
	OutcomeRejected          Outcome = "rejected"
)

type RejectReason string

const (
	RejectNotFound              RejectReason = "not_found"
	RejectMismatch              RejectReason = "mismatch"
	RejectTransientFailure      RejectReason = "transient_failure"
	RejectInvalidPaymentRequest RejectReason = "invalid_payment_request"
)

// Decision is the paywall verdict for one request.
//
// Payment is the record access was granted or awaited on, or the freshly
// issued one for OutcomeReplacementIssued. State holds the observed ledger
// state, or for replacements the state of what was superseded.
type Decision struct {
	Outcome  Outcome
	Resource models.Resource
	Payment  *models.Payment
	State    string
	Reason   RejectReason
	Err      error
}

func (d *Decision) PaymentRequest() string {
	if d.Payment == nil {
		return ""
	}
	return d.Payment.Request
}

func (d *Decision) PaymentHash() string {
	if d.Payment == nil {
		return ""
	}
	return d.Payment.Hash
}

func (d *Decision) ExpiresAt() time.Time {
	if d.Payment == nil {
		return time.Time{}
	}
	return d.Payment.ExpiresAt
}

func rejected(resource models.Resource, reason RejectReason, err error) *Decision {
	return &Decision{
		Outcome:  OutcomeRejected,
		Resource: resource,
		Reason:   reason,
		Err:      err,
	}
}
