package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getAlby/lnpaywall/common"
	"github.com/getAlby/lnpaywall/db/models"
	"github.com/getAlby/lnpaywall/lib/payreq"
	"github.com/getAlby/lnpaywall/lnd"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
)

// DecideAccess decides whether the holder of paymentRequest may receive the
// resource behind ref. An empty paymentRequest means the client has none.
//
// The checks run in a fixed order: existence, price, presence and shape of
// the payment request, ownership, the cached validity window and finally the
// ledger. Whenever the client can't be served and its payment request can't
// be paid anymore a new invoice is issued. A ledger or store fault never
// results in a new invoice.
func (svc *PaywallService) DecideAccess(ctx context.Context, ref models.ResourceRef, paymentRequest string) *Decision {
	decision := svc.decideAccess(ctx, ref, paymentRequest)
	decisionsTotal.WithLabelValues(ref.Kind, string(decision.Outcome), string(decision.Reason)).Inc()
	if decision.Reason == RejectTransientFailure {
		svc.Logger.Errorj(
			log.JSON{
				"message":  "paywall decision failed",
				"resource": ref.String(),
				"error":    decision.Err,
			},
		)
		sentry.CaptureException(decision.Err)
	}
	return decision
}

func (svc *PaywallService) decideAccess(ctx context.Context, ref models.ResourceRef, paymentRequest string) *Decision {
	resource, err := svc.Resources.FindResource(ctx, ref)
	if errors.Is(err, ErrResourceNotFound) {
		return rejected(nil, RejectNotFound, err)
	}
	if err != nil {
		return rejected(nil, RejectTransientFailure, err)
	}
	if !resource.IsPublished() {
		return rejected(nil, RejectNotFound, ErrResourceNotFound)
	}
	if resource.Cost() == 0 {
		return &Decision{Outcome: OutcomeServe, Resource: resource}
	}

	if strings.TrimSpace(paymentRequest) == "" {
		return svc.replace(ctx, resource, common.PreviousStateAbsent)
	}
	request := payreq.Normalize(paymentRequest)
	if _, err := payreq.DecodePaymentHash(request); err != nil {
		return rejected(resource, RejectInvalidPaymentRequest, err)
	}

	record, err := svc.Payments.FindByRequest(ctx, request)
	if errors.Is(err, ErrPaymentNotFound) {
		return svc.replace(ctx, resource, common.PreviousStateUnknown)
	}
	if err != nil {
		return rejected(resource, RejectTransientFailure, fmt.Errorf("find payment: %w", err))
	}
	if record.Ref() != resource.Ref() {
		// a payment for something else is never converted into a new invoice
		return &Decision{
			Outcome:  OutcomeRejected,
			Resource: resource,
			Payment:  record,
			Reason:   RejectMismatch,
		}
	}

	now := svc.currentTime()
	if !record.ValidUntil.IsZero() && now.After(record.ValidUntil.Time) {
		return svc.replace(ctx, resource, common.PreviousStateExpired)
	}

	status, err := svc.Resolver.ResolveHash(ctx, record.Hash)
	if err != nil {
		return rejected(resource, RejectTransientFailure, fmt.Errorf("resolve payment %s: %w", record.ID, err))
	}

	switch status.State {
	case lnd.InvoiceStateSettled:
		validUntil, bounded := svc.validUntil(record, resource, status, now)
		if err := svc.recordSettlement(ctx, record, validUntil, bounded); err != nil {
			svc.Logger.Errorf("Failed to record settlement of payment %s: %v", record.ID, err)
			sentry.CaptureException(err)
		}
		if bounded && now.After(validUntil) {
			return svc.replace(ctx, resource, common.PreviousStateExpired)
		}
		return &Decision{
			Outcome:  OutcomeServe,
			Resource: resource,
			Payment:  record,
			State:    string(status.State),
		}
	case lnd.InvoiceStateOpen, lnd.InvoiceStateAccepted:
		// accepted means the HTLC is held, not that the payment is final
		return &Decision{
			Outcome:  OutcomeAwaitPayment,
			Resource: resource,
			Payment:  record,
			State:    string(status.State),
		}
	case lnd.InvoiceStateCanceled, lnd.InvoiceStateNotFound:
		return svc.replace(ctx, resource, string(status.State))
	default:
		return rejected(resource, RejectTransientFailure, fmt.Errorf("resolve payment %s: unexpected state %q", record.ID, status.State))
	}
}

func (svc *PaywallService) validUntil(record *models.Payment, resource models.Resource, status *lnd.InvoiceStatus, now time.Time) (time.Time, bool) {
	if !record.ValidUntil.IsZero() {
		return record.ValidUntil.Time, true
	}
	settledAt := status.SettledAt
	if settledAt.IsZero() {
		settledAt = now
	}
	return resource.ComputeValidUntil(settledAt)
}

// recordSettlement caches the settled state and the access window on the
// record the first time the settlement is observed. Callers serving the
// resource ignore its error, the ledger stays authoritative.
func (svc *PaywallService) recordSettlement(ctx context.Context, record *models.Payment, validUntil time.Time, bounded bool) error {
	if record.State == string(lnd.InvoiceStateSettled) && (!bounded || !record.ValidUntil.IsZero()) {
		return nil
	}
	var until *time.Time
	if bounded {
		until = &validUntil
	}
	err := svc.Payments.UpdateState(ctx, record.ID, string(lnd.InvoiceStateSettled), until)
	if err != nil {
		return fmt.Errorf("record settlement of payment %s: %w", record.ID, err)
	}
	firstObservation := record.State != string(lnd.InvoiceStateSettled)
	record.State = string(lnd.InvoiceStateSettled)
	if bounded {
		record.ValidUntil.Time = validUntil
	}
	if firstObservation {
		svc.publish(common.PaymentEventSettled, record)
	}
	return nil
}

func (svc *PaywallService) replace(ctx context.Context, resource models.Resource, previousState string) *Decision {
	payment, err := svc.issue(ctx, resource)
	if err != nil {
		return rejected(resource, RejectTransientFailure, err)
	}
	return &Decision{
		Outcome:  OutcomeReplacementIssued,
		Resource: resource,
		Payment:  payment,
		State:    previousState,
	}
}

func (svc *PaywallService) publish(eventType string, payment *models.Payment) {
	if svc.EventPubSub == nil {
		return
	}
	svc.EventPubSub.Publish(payment.ResourceType, PaymentEvent{
		Type:      eventType,
		Payment:   *payment,
		Timestamp: time.Now(),
	})
}
