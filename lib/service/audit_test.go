package service

import (
	"context"
	"testing"
	"time"

	"github.com/getAlby/lnpaywall/lnd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestAuditPayments(t *testing.T) {
	f := newPaywallFixture(t)
	ctx := context.Background()

	_, err := f.svc.AuditLatestPayment(ctx, f.post.Ref())
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	first := f.issue(t, f.post.Ref())
	f.mlnd.CancelInvoice(first.Hash)
	time.Sleep(5 * time.Millisecond)
	second := f.issue(t, f.post.Ref())
	settledAt := time.Now().Truncate(time.Second)
	f.mlnd.SettleInvoice(second.Hash, settledAt)

	audited, err := f.svc.AuditPayments(ctx, f.post.Ref())
	require.NoError(t, err)
	require.Len(t, audited, 2)
	assert.Equal(t, second.ID, audited[0].ID)
	assert.Equal(t, string(lnd.InvoiceStateSettled), audited[0].LedgerState)
	assert.Empty(t, audited[0].State)
	require.NotNil(t, audited[0].LedgerSettledAt)
	assert.True(t, settledAt.Equal(*audited[0].LedgerSettledAt))
	assert.Equal(t, string(lnd.InvoiceStateCanceled), audited[1].LedgerState)
	assert.Nil(t, audited[1].LedgerSettledAt)

	latest, err := f.svc.AuditLatestPayment(ctx, f.post.Ref())
	require.NoError(t, err)
	assert.Equal(t, second.Request, latest.Request)

	f.mlnd.FailLookups(status.Error(codes.Unavailable, "connection refused"))
	audited, err = f.svc.AuditPayments(ctx, f.post.Ref())
	require.NoError(t, err)
	for _, payment := range audited {
		assert.Empty(t, payment.LedgerState)
		assert.NotEmpty(t, payment.LedgerError)
	}
}
