package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/getAlby/lnpaywall/common"
	"github.com/getAlby/lnpaywall/lib/service/mock_service"
	"github.com/getAlby/lnpaywall/lnd"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziflex/lecho/v3"
)

func TestHandleSettledInvoiceRecordsWindow(t *testing.T) {
	f := newPaywallFixture(t)
	issued := f.issue(t, f.media.Ref())
	settledAt := time.Now().Add(-5 * time.Minute).Truncate(time.Second)

	events := make(chan PaymentEvent, 4)
	f.svc.EventPubSub.Subscribe(common.ResourceTypeMedia, events)

	require.NoError(t, f.svc.HandleSettledInvoice(context.Background(), issued.Hash, settledAt))

	stored, err := f.store.FindByRequest(context.Background(), issued.Request)
	require.NoError(t, err)
	assert.Equal(t, string(lnd.InvoiceStateSettled), stored.State)
	assert.True(t, settledAt.Add(time.Hour).Equal(stored.ValidUntil.Time))
	require.Len(t, events, 1)
	assert.Equal(t, common.PaymentEventSettled, (<-events).Type)

	// a redelivered notification changes nothing
	require.NoError(t, f.svc.HandleSettledInvoice(context.Background(), issued.Hash, settledAt))
	assert.Len(t, events, 0)
}

func TestHandleSettledInvoiceOneShotResource(t *testing.T) {
	f := newPaywallFixture(t)
	issued := f.issue(t, f.post.Ref())

	require.NoError(t, f.svc.HandleSettledInvoice(context.Background(), issued.Hash, time.Time{}))

	stored, err := f.store.FindByRequest(context.Background(), issued.Request)
	require.NoError(t, err)
	assert.Equal(t, string(lnd.InvoiceStateSettled), stored.State)
	assert.True(t, stored.ValidUntil.IsZero())
}

func TestHandleSettledInvoiceIgnoresForeignHash(t *testing.T) {
	f := newPaywallFixture(t)
	f.issue(t, f.post.Ref())

	err := f.svc.HandleSettledInvoice(context.Background(), "00000000000000000000000000000000000000000000000000000000000000ff", time.Now())
	assert.NoError(t, err)
	for _, payment := range f.listPayments(t, f.post.Ref()) {
		assert.Empty(t, payment.State)
	}
}

func TestHandleSettledInvoiceStoreFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockPaymentStore(ctrl)
	store.EXPECT().
		FindByHash(gomock.Any(), gomock.Eq("abcd")).
		Return(nil, errors.New("connection reset"))

	svc := NewPaywallService(testConfig(), lecho.New(io.Discard), nil, store, NewMemoryResourceStore())
	assert.Error(t, svc.HandleSettledInvoice(context.Background(), "abcd", time.Now()))
}
