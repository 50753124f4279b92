package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/getAlby/lnpaywall/db/models"
	"github.com/getAlby/lnpaywall/lib/payreq"
	"github.com/uptrace/bun"
)

// MemoryPaymentStore keeps payments in process memory. It is used by tests
// and by deployments that can afford to lose their payment history.
type MemoryPaymentStore struct {
	mu       sync.RWMutex
	payments []*models.Payment
}

func NewMemoryPaymentStore() *MemoryPaymentStore {
	return &MemoryPaymentStore{}
}

func (store *MemoryPaymentStore) Create(ctx context.Context, ref models.ResourceRef, invoice payreq.Invoice, validUntil *time.Time) (*models.Payment, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, existing := range store.payments {
		if existing.Request == invoice.PaymentRequest {
			return nil, fmt.Errorf("insert payment for %s: duplicate payment request", ref)
		}
	}
	payment := newPayment(ref, invoice, validUntil)
	stored := *payment
	store.payments = append(store.payments, &stored)
	return payment, nil
}

func (store *MemoryPaymentStore) FindByRequest(ctx context.Context, request string) (*models.Payment, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	for _, payment := range store.payments {
		if payment.Request == request {
			found := *payment
			return &found, nil
		}
	}
	return nil, ErrPaymentNotFound
}

func (store *MemoryPaymentStore) FindByHash(ctx context.Context, hash string) (*models.Payment, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	for _, payment := range store.payments {
		if payment.Hash == hash {
			found := *payment
			return &found, nil
		}
	}
	return nil, ErrPaymentNotFound
}

// FindLatestByResource relies on payments being appended in creation order.
func (store *MemoryPaymentStore) FindLatestByResource(ctx context.Context, ref models.ResourceRef) (*models.Payment, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	for i := len(store.payments) - 1; i >= 0; i-- {
		if store.payments[i].Ref() == ref {
			found := *store.payments[i]
			return &found, nil
		}
	}
	return nil, ErrPaymentNotFound
}

func (store *MemoryPaymentStore) ListByResource(ctx context.Context, ref models.ResourceRef) ([]models.Payment, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	payments := []models.Payment{}
	for i := len(store.payments) - 1; i >= 0; i-- {
		if store.payments[i].Ref() == ref {
			payments = append(payments, *store.payments[i])
		}
	}
	return payments, nil
}

func (store *MemoryPaymentStore) UpdateState(ctx context.Context, id string, state string, validUntil *time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, payment := range store.payments {
		if payment.ID == id {
			payment.State = state
			if validUntil != nil {
				payment.ValidUntil = bun.NullTime{Time: *validUntil}
			}
			payment.UpdatedAt = bun.NullTime{Time: time.Now()}
			return nil
		}
	}
	return ErrPaymentNotFound
}

var (
	_ PaymentStore = (*MemoryPaymentStore)(nil)
	_ PaymentStore = (*BunPaymentStore)(nil)
)
