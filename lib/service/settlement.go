package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getAlby/lnpaywall/lnd"
)

// HandleSettledInvoice records a settlement pushed by the node before any
// client asks about it. Hashes the paywall never issued are ignored.
func (svc *PaywallService) HandleSettledInvoice(ctx context.Context, paymentHash string, settledAt time.Time) error {
	record, err := svc.Payments.FindByHash(ctx, paymentHash)
	if errors.Is(err, ErrPaymentNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find payment by hash %s: %w", paymentHash, err)
	}

	resource, err := svc.Resources.FindResource(ctx, record.Ref())
	if errors.Is(err, ErrResourceNotFound) {
		svc.Logger.Warnf("Settled payment %s belongs to missing resource %s", record.ID, record.Ref())
		return nil
	}
	if err != nil {
		return fmt.Errorf("find resource %s: %w", record.Ref(), err)
	}

	now := svc.currentTime()
	status := &lnd.InvoiceStatus{
		State:     lnd.InvoiceStateSettled,
		SettledAt: settledAt,
	}
	validUntil, bounded := svc.validUntil(record, resource, status, now)
	return svc.recordSettlement(ctx, record, validUntil, bounded)
}
