package service

import (
	"context"
	"time"

	"github.com/getAlby/lnpaywall/db/models"
)

// AuditedPayment is a payment record next to what the ledger currently
// says about it. State is the cached value and may lag behind LedgerState.
type AuditedPayment struct {
	models.Payment
	LedgerState     string     `json:"ledger_state"`
	LedgerSettledAt *time.Time `json:"ledger_settled_at,omitempty"`
	LedgerError     string     `json:"ledger_error,omitempty"`
}

// AuditPayments lists the payments of a resource, newest first. A ledger
// failure is reported per payment and does not fail the listing.
func (svc *PaywallService) AuditPayments(ctx context.Context, ref models.ResourceRef) ([]AuditedPayment, error) {
	payments, err := svc.Payments.ListByResource(ctx, ref)
	if err != nil {
		return nil, err
	}
	audited := make([]AuditedPayment, len(payments))
	for i, payment := range payments {
		audited[i] = svc.audit(ctx, payment)
	}
	return audited, nil
}

func (svc *PaywallService) AuditLatestPayment(ctx context.Context, ref models.ResourceRef) (*AuditedPayment, error) {
	payment, err := svc.Payments.FindLatestByResource(ctx, ref)
	if err != nil {
		return nil, err
	}
	audited := svc.audit(ctx, *payment)
	return &audited, nil
}

func (svc *PaywallService) audit(ctx context.Context, payment models.Payment) AuditedPayment {
	audited := AuditedPayment{Payment: payment}
	status, err := svc.Resolver.ResolveHash(ctx, payment.Hash)
	if err != nil {
		svc.Logger.Errorf("Failed to resolve payment %s: %v", payment.ID, err)
		audited.LedgerError = err.Error()
		return audited
	}
	audited.LedgerState = string(status.State)
	if !status.SettledAt.IsZero() {
		settledAt := status.SettledAt
		audited.LedgerSettledAt = &settledAt
	}
	return audited
}
