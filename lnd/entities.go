package lnd

import "time"

type InvoiceState string

const (
	InvoiceStateOpen     InvoiceState = "open"
	InvoiceStateAccepted InvoiceState = "accepted"
	InvoiceStateSettled  InvoiceState = "settled"
	InvoiceStateCanceled InvoiceState = "canceled"
	// the ledger has no invoice for the payment hash
	InvoiceStateNotFound InvoiceState = "not_found"
)

// RawInvoice is an invoice as returned by the node right after creation.
type RawInvoice struct {
	PaymentRequest string
	PaymentHash    string
	Memo           string
	Value          int64
	Expiry         int64 // in seconds
	AddIndex       uint64
	CreatedAt      time.Time
}

// InvoiceStatus is the externally observed state of an invoice.
type InvoiceStatus struct {
	State      InvoiceState
	AmountPaid int64
	SettledAt  time.Time
}
