package common

const (
	ResourceTypePost  = "post"
	ResourceTypeMedia = "media"

	// Superseded states reported with a replacement invoice, next to the
	// ledger states open, accepted, settled, canceled and not_found.
	PreviousStateAbsent  = "absent"
	PreviousStateUnknown = "unknown"
	PreviousStateExpired = "expired"

	PaymentEventIssued  = "issued"
	PaymentEventSettled = "settled"

	PaymentRequestHeader = "Payment-Request"
	PaymentRequestParam  = "payment_request"
)
