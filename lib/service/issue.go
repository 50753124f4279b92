package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/getAlby/lnpaywall/common"
	"github.com/getAlby/lnpaywall/db/models"
	"github.com/getAlby/lnpaywall/lib/payreq"
)

var ErrResourceFree = errors.New("resource is free")

// IssueInvoiceForResource creates and records a new payment request for a
// paid, published resource.
func (svc *PaywallService) IssueInvoiceForResource(ctx context.Context, ref models.ResourceRef) (*models.Payment, error) {
	resource, err := svc.Resources.FindResource(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !resource.IsPublished() {
		return nil, ErrResourceNotFound
	}
	if resource.Cost() == 0 {
		return nil, ErrResourceFree
	}
	return svc.issue(ctx, resource)
}

// issue is not cancelled with the request: an invoice that exists on the
// ledger is always recorded.
func (svc *PaywallService) issue(ctx context.Context, resource models.Resource) (*models.Payment, error) {
	ctx = context.WithoutCancel(ctx)
	if !svc.Config.DedupInvoiceIssuance {
		return svc.mintInvoice(ctx, resource)
	}
	// concurrent requests for the same resource share one invoice
	payment, err, _ := svc.issuance.Do(resource.Ref().String(), func() (interface{}, error) {
		return svc.mintInvoice(ctx, resource)
	})
	if err != nil {
		return nil, err
	}
	return payment.(*models.Payment), nil
}

func (svc *PaywallService) mintInvoice(ctx context.Context, resource models.Resource) (*models.Payment, error) {
	ref := resource.Ref()
	memo := resource.InvoiceMemo()
	if memo == "" {
		memo = svc.Config.InvoiceMemo
	}
	raw, err := svc.Ledger.CreateInvoice(ctx, resource.Cost(), memo, svc.Config.InvoiceExpiry)
	if err != nil {
		return nil, fmt.Errorf("create invoice for %s: %w", ref, err)
	}
	paymentHash, err := payreq.DecodePaymentHash(raw.PaymentRequest)
	if err != nil {
		return nil, fmt.Errorf("create invoice for %s: ledger returned %w", ref, err)
	}
	if paymentHash != raw.PaymentHash {
		return nil, fmt.Errorf("create invoice for %s: payment hash %s does not match payment request", ref, raw.PaymentHash)
	}

	payment, err := svc.Payments.Create(ctx, ref, payreq.FromRaw(*raw, paymentHash), nil)
	if err != nil {
		return nil, fmt.Errorf("record invoice for %s: %w", ref, err)
	}
	svc.Logger.Infof("Issued invoice for %s: hash %s amount %d", ref, payment.Hash, payment.Amount)
	invoicesIssuedTotal.WithLabelValues(ref.Kind).Inc()
	svc.publish(common.PaymentEventIssued, payment)
	return payment, nil
}
