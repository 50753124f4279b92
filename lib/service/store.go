package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/getAlby/lnpaywall/db/models"
	"github.com/getAlby/lnpaywall/lib/payreq"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentStore persists the payment requests issued for resources. Records
// are only ever added, UpdateState refreshes the cached ledger view.
type PaymentStore interface {
	Create(ctx context.Context, ref models.ResourceRef, invoice payreq.Invoice, validUntil *time.Time) (*models.Payment, error)
	FindByRequest(ctx context.Context, request string) (*models.Payment, error)
	FindByHash(ctx context.Context, hash string) (*models.Payment, error)
	FindLatestByResource(ctx context.Context, ref models.ResourceRef) (*models.Payment, error)
	ListByResource(ctx context.Context, ref models.ResourceRef) ([]models.Payment, error)
	UpdateState(ctx context.Context, id string, state string, validUntil *time.Time) error
}

type BunPaymentStore struct {
	DB *bun.DB
}

func newPayment(ref models.ResourceRef, invoice payreq.Invoice, validUntil *time.Time) *models.Payment {
	payment := &models.Payment{
		ID:           uuid.New().String(),
		Request:      invoice.PaymentRequest,
		Hash:         invoice.PaymentHash,
		ResourceType: ref.Kind,
		ResourceID:   ref.ID,
		Amount:       invoice.ValueSatoshis,
		ExpiresAt:    invoice.ExpiresAt,
		CreatedAt:    time.Now(),
	}
	if validUntil != nil {
		payment.ValidUntil = bun.NullTime{Time: *validUntil}
	}
	return payment
}

func (store *BunPaymentStore) Create(ctx context.Context, ref models.ResourceRef, invoice payreq.Invoice, validUntil *time.Time) (*models.Payment, error) {
	payment := newPayment(ref, invoice, validUntil)
	if _, err := store.DB.NewInsert().Model(payment).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert payment for %s: %w", ref, err)
	}
	return payment, nil
}

func (store *BunPaymentStore) FindByRequest(ctx context.Context, request string) (*models.Payment, error) {
	payment := models.Payment{}
	err := store.DB.NewSelect().Model(&payment).Where("request = ?", request).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (store *BunPaymentStore) FindByHash(ctx context.Context, hash string) (*models.Payment, error) {
	payment := models.Payment{}
	err := store.DB.NewSelect().Model(&payment).Where("hash = ?", hash).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (store *BunPaymentStore) FindLatestByResource(ctx context.Context, ref models.ResourceRef) (*models.Payment, error) {
	payment := models.Payment{}
	err := store.DB.NewSelect().Model(&payment).
		Where("resource_type = ?", ref.Kind).
		Where("resource_id = ?", ref.ID).
		OrderExpr("created_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (store *BunPaymentStore) ListByResource(ctx context.Context, ref models.ResourceRef) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := store.DB.NewSelect().Model(&payments).
		Where("resource_type = ?", ref.Kind).
		Where("resource_id = ?", ref.ID).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (store *BunPaymentStore) UpdateState(ctx context.Context, id string, state string, validUntil *time.Time) error {
	payment := &models.Payment{ID: id, State: state}
	columns := []string{"state", "updated_at"}
	if validUntil != nil {
		payment.ValidUntil = bun.NullTime{Time: *validUntil}
		columns = append(columns, "valid_until")
	}
	res, err := store.DB.NewUpdate().Model(payment).Column(columns...).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
