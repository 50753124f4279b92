package service

import (
	"context"

	"github.com/getAlby/lnpaywall/lib/payreq"
	"github.com/getAlby/lnpaywall/lnd"
)

// InvoiceStateResolver asks the ledger what happened to an invoice. An
// invoice the ledger does not know resolves to lnd.InvoiceStateNotFound,
// errors are reserved for the ledger being unreachable or misbehaving.
type InvoiceStateResolver struct {
	Ledger Ledger
}

func (r *InvoiceStateResolver) ResolveHash(ctx context.Context, paymentHash string) (*lnd.InvoiceStatus, error) {
	return r.Ledger.LookupInvoiceState(ctx, paymentHash)
}

// ResolvePaymentRequest fails with payreq.ErrDecode without asking the
// ledger when the request can't be decoded.
func (r *InvoiceStateResolver) ResolvePaymentRequest(ctx context.Context, request string) (*lnd.InvoiceStatus, error) {
	paymentHash, err := payreq.DecodePaymentHash(request)
	if err != nil {
		return nil, err
	}
	return r.ResolveHash(ctx, paymentHash)
}
