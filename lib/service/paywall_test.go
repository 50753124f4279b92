package service

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/getAlby/lnpaywall/common"
	"github.com/getAlby/lnpaywall/db/models"
	"github.com/getAlby/lnpaywall/lib/payreq"
	"github.com/getAlby/lnpaywall/lib/service/mock_service"
	"github.com/getAlby/lnpaywall/lnd"
	"github.com/getAlby/lnpaywall/lnd/lndmock"
	"github.com/golang/mock/gomock"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziflex/lecho/v3"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

//go:generate mockgen -destination=./mock_service/service.go github.com/getAlby/lnpaywall/lib/service Ledger,PaymentStore,ResourceFinder

type paywallFixture struct {
	mlnd   *lndmock.MockLND
	ledger *lnd.LedgerClient
	store  *MemoryPaymentStore
	svc    *PaywallService

	post  *models.Post
	media *models.Media
	free  *models.Post
	draft *models.Post
}

func testConfig() *Config {
	return &Config{
		InvoiceExpiry:        600,
		InvoiceMemo:          "Paywall access",
		DedupInvoiceIssuance: true,
	}
}

func newPaywallFixture(t *testing.T) *paywallFixture {
	t.Helper()
	minutes := int64(60)
	f := &paywallFixture{
		mlnd:  lndmock.NewDefaultMockLND(),
		store: NewMemoryPaymentStore(),
		post:  &models.Post{ID: "p1", Title: "hello", Content: "secret", Price: 100, Published: true},
		media: &models.Media{ID: "m1", Title: "song", Price: 500, Published: true, AccessDurationMinutes: &minutes},
		free:  &models.Post{ID: "p-free", Title: "free", Price: 0, Published: true},
		draft: &models.Post{ID: "p-draft", Title: "draft", Price: 100, Published: false},
	}
	f.ledger = lnd.NewLedgerClient(f.mlnd, time.Second)
	resources := NewMemoryResourceStore(f.post, f.media, f.free, f.draft)
	f.svc = NewPaywallService(testConfig(), lecho.New(io.Discard), f.ledger, f.store, resources)
	return f
}

func (f *paywallFixture) listPayments(t *testing.T, ref models.ResourceRef) []models.Payment {
	payments, err := f.store.ListByResource(context.Background(), ref)
	require.NoError(t, err)
	return payments
}

// issue returns the payment request handed to a client without one.
func (f *paywallFixture) issue(t *testing.T, ref models.ResourceRef) *models.Payment {
	t.Helper()
	decision := f.svc.DecideAccess(context.Background(), ref, "")
	require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
	require.NotNil(t, decision.Payment)
	return decision.Payment
}

func TestFreeResourceIsAlwaysServed(t *testing.T) {
	f := newPaywallFixture(t)
	foreign, err := f.mlnd.ForeignPaymentRequest(10, "other")
	require.NoError(t, err)

	for _, request := range []string{"", "garbage", foreign} {
		decision := f.svc.DecideAccess(context.Background(), f.free.Ref(), request)
		assert.Equal(t, OutcomeServe, decision.Outcome, "request %q", request)
		assert.Nil(t, decision.Payment)
	}
	assert.Empty(t, f.listPayments(t, f.free.Ref()))
	assert.Equal(t, 0, f.mlnd.AddInvoiceCalls())
}

func TestMissingOrUnpublishedResourceIsNotFound(t *testing.T) {
	f := newPaywallFixture(t)

	decision := f.svc.DecideAccess(context.Background(), f.draft.Ref(), "")
	assert.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, RejectNotFound, decision.Reason)

	decision = f.svc.DecideAccess(context.Background(), models.ResourceRef{Kind: common.ResourceTypePost, ID: "nope"}, "")
	assert.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, RejectNotFound, decision.Reason)
	assert.Equal(t, 0, f.mlnd.AddInvoiceCalls())
}

func TestNoPaymentRequestIssuesInvoice(t *testing.T) {
	f := newPaywallFixture(t)

	decision := f.svc.DecideAccess(context.Background(), f.media.Ref(), "")
	require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
	assert.Equal(t, common.PreviousStateAbsent, decision.State)

	payments := f.listPayments(t, f.media.Ref())
	require.Len(t, payments, 1)
	assert.Equal(t, decision.PaymentRequest(), payments[0].Request)
	assert.Equal(t, "m1", payments[0].ResourceID)
	assert.Equal(t, common.ResourceTypeMedia, payments[0].ResourceType)
	assert.Equal(t, int64(500), payments[0].Amount)

	hash, err := payreq.DecodePaymentHash(decision.PaymentRequest())
	require.NoError(t, err)
	assert.Equal(t, hash, decision.PaymentHash())
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), decision.ExpiresAt(), 5*time.Second)
}

func TestOpenInvoiceIsIdempotent(t *testing.T) {
	f := newPaywallFixture(t)
	issued := f.issue(t, f.media.Ref())

	for i := 0; i < 2; i++ {
		decision := f.svc.DecideAccess(context.Background(), f.media.Ref(), issued.Request)
		assert.Equal(t, OutcomeAwaitPayment, decision.Outcome)
		assert.Equal(t, string(lnd.InvoiceStateOpen), decision.State)
		assert.Equal(t, issued.Request, decision.PaymentRequest())
	}
	assert.Len(t, f.listPayments(t, f.media.Ref()), 1)
	assert.Equal(t, 1, f.mlnd.AddInvoiceCalls())
}

func TestAcceptedInvoiceIsNeverServed(t *testing.T) {
	f := newPaywallFixture(t)
	issued := f.issue(t, f.post.Ref())
	f.mlnd.AcceptInvoice(issued.Hash)

	decision := f.svc.DecideAccess(context.Background(), f.post.Ref(), issued.Request)
	assert.Equal(t, OutcomeAwaitPayment, decision.Outcome)
	assert.Equal(t, string(lnd.InvoiceStateAccepted), decision.State)
}

func TestPaymentRequestForOtherResourceIsMismatch(t *testing.T) {
	f := newPaywallFixture(t)
	issued := f.issue(t, f.post.Ref())

	decision := f.svc.DecideAccess(context.Background(), f.media.Ref(), issued.Request)
	assert.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, RejectMismatch, decision.Reason)

	// settling does not change the verdict
	f.mlnd.SettleInvoice(issued.Hash, time.Now())
	decision = f.svc.DecideAccess(context.Background(), f.media.Ref(), issued.Request)
	assert.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, RejectMismatch, decision.Reason)

	assert.Empty(t, f.listPayments(t, f.media.Ref()))
	assert.Equal(t, 1, f.mlnd.AddInvoiceCalls())
}

func TestMalformedPaymentRequestIsRejected(t *testing.T) {
	f := newPaywallFixture(t)

	decision := f.svc.DecideAccess(context.Background(), f.post.Ref(), "lnbc1notarealinvoice")
	assert.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, RejectInvalidPaymentRequest, decision.Reason)
	assert.True(t, errors.Is(decision.Err, payreq.ErrDecode))
	assert.Equal(t, 0, f.mlnd.AddInvoiceCalls())
	assert.Equal(t, 0, f.mlnd.LookupInvoiceCalls())
}

func TestUnknownPaymentRequestIssuesInvoice(t *testing.T) {
	f := newPaywallFixture(t)
	foreign, err := f.mlnd.ForeignPaymentRequest(100, "elsewhere")
	require.NoError(t, err)

	decision := f.svc.DecideAccess(context.Background(), f.post.Ref(), foreign)
	require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
	assert.Equal(t, common.PreviousStateUnknown, decision.State)
	assert.NotEqual(t, foreign, decision.PaymentRequest())
}

func TestSettledInvoiceServesOneShotResource(t *testing.T) {
	f := newPaywallFixture(t)
	issued := f.issue(t, f.post.Ref())
	f.mlnd.SettleInvoice(issued.Hash, time.Now().Add(-365*24*time.Hour))

	decision := f.svc.DecideAccess(context.Background(), f.post.Ref(), issued.Request)
	require.Equal(t, OutcomeServe, decision.Outcome)
	assert.Equal(t, f.post, decision.Resource)

	stored, err := f.store.FindByRequest(context.Background(), issued.Request)
	require.NoError(t, err)
	assert.Equal(t, string(lnd.InvoiceStateSettled), stored.State)
	assert.True(t, stored.ValidUntil.IsZero())
}

func TestSettledInvoiceServesWithinWindow(t *testing.T) {
	f := newPaywallFixture(t)
	issued := f.issue(t, f.media.Ref())
	settledAt := time.Now().Add(-10 * time.Minute).Truncate(time.Second)
	f.mlnd.SettleInvoice(issued.Hash, settledAt)

	events := make(chan PaymentEvent, 4)
	f.svc.EventPubSub.Subscribe(common.ResourceTypeMedia, events)

	decision := f.svc.DecideAccess(context.Background(), f.media.Ref(), issued.Request)
	require.Equal(t, OutcomeServe, decision.Outcome)

	stored, err := f.store.FindByRequest(context.Background(), issued.Request)
	require.NoError(t, err)
	assert.Equal(t, string(lnd.InvoiceStateSettled), stored.State)
	assert.True(t, settledAt.Add(time.Hour).Equal(stored.ValidUntil.Time))

	// the settlement is announced once
	decision = f.svc.DecideAccess(context.Background(), f.media.Ref(), issued.Request)
	require.Equal(t, OutcomeServe, decision.Outcome)
	require.Len(t, events, 1)
	event := <-events
	assert.Equal(t, common.PaymentEventSettled, event.Type)
	assert.Equal(t, issued.ID, event.Payment.ID)
}

func TestSettledInvoiceOutsideWindowIssuesReplacement(t *testing.T) {
	f := newPaywallFixture(t)
	issued := f.issue(t, f.media.Ref())
	f.mlnd.SettleInvoice(issued.Hash, time.Now().Add(-2*time.Hour))

	decision := f.svc.DecideAccess(context.Background(), f.media.Ref(), issued.Request)
	require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
	assert.Equal(t, common.PreviousStateExpired, decision.State)
	assert.NotEqual(t, issued.Request, decision.PaymentRequest())

	// the lapsed window is cached, later checks don't need the ledger
	lookups := f.mlnd.LookupInvoiceCalls()
	decision = f.svc.DecideAccess(context.Background(), f.media.Ref(), issued.Request)
	require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
	assert.Equal(t, lookups, f.mlnd.LookupInvoiceCalls())
}

func TestWindowEndIsStillServed(t *testing.T) {
	f := newPaywallFixture(t)
	issued := f.issue(t, f.media.Ref())
	settledAt := time.Now().Add(-2 * time.Hour).Truncate(time.Second)
	f.mlnd.SettleInvoice(issued.Hash, settledAt)
	windowEnd := settledAt.Add(time.Hour)
	f.svc.now = func() time.Time { return windowEnd }

	// first observation computes the window from the settle date
	decision := f.svc.DecideAccess(context.Background(), f.media.Ref(), issued.Request)
	require.Equal(t, OutcomeServe, decision.Outcome)

	// later checks use the cached window
	lookups := f.mlnd.LookupInvoiceCalls()
	decision = f.svc.DecideAccess(context.Background(), f.media.Ref(), issued.Request)
	require.Equal(t, OutcomeServe, decision.Outcome)
	assert.Equal(t, lookups, f.mlnd.LookupInvoiceCalls())

	f.svc.now = func() time.Time { return windowEnd.Add(time.Nanosecond) }
	decision = f.svc.DecideAccess(context.Background(), f.media.Ref(), issued.Request)
	require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
	assert.Equal(t, common.PreviousStateExpired, decision.State)
}

func TestExpiredRecordIssuesReplacementEvenIfSettled(t *testing.T) {
	f := newPaywallFixture(t)
	raw, err := f.ledger.CreateInvoice(context.Background(), 500, "old", 600)
	require.NoError(t, err)
	validUntil := time.Now().Add(-time.Minute)
	record, err := f.store.Create(context.Background(), f.media.Ref(), payreq.FromRaw(*raw, raw.PaymentHash), &validUntil)
	require.NoError(t, err)
	f.mlnd.SettleInvoice(raw.PaymentHash, time.Now())

	decision := f.svc.DecideAccess(context.Background(), f.media.Ref(), record.Request)
	require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
	assert.Equal(t, common.PreviousStateExpired, decision.State)
	assert.Equal(t, 0, f.mlnd.LookupInvoiceCalls())
}

func TestCanceledOrForgottenInvoiceIssuesReplacement(t *testing.T) {
	f := newPaywallFixture(t)

	r1 := f.issue(t, f.media.Ref())
	f.mlnd.CancelInvoice(r1.Hash)
	decision := f.svc.DecideAccess(context.Background(), f.media.Ref(), r1.Request)
	require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
	assert.Equal(t, string(lnd.InvoiceStateCanceled), decision.State)
	r2 := decision.Payment
	assert.NotEqual(t, r1.Request, r2.Request)

	f.mlnd.ForgetInvoice(r2.Hash)
	decision = f.svc.DecideAccess(context.Background(), f.media.Ref(), r2.Request)
	require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
	assert.Equal(t, string(lnd.InvoiceStateNotFound), decision.State)

	assert.Len(t, f.listPayments(t, f.media.Ref()), 3)
	latest, err := f.store.FindLatestByResource(context.Background(), f.media.Ref())
	require.NoError(t, err)
	assert.Equal(t, decision.PaymentRequest(), latest.Request)
}

func TestMediaScenario(t *testing.T) {
	f := newPaywallFixture(t)
	f.media.AccessDurationMinutes = nil
	ctx := context.Background()

	decision := f.svc.DecideAccess(ctx, f.media.Ref(), "")
	require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
	r1 := decision.Payment
	record, err := f.store.FindByRequest(ctx, r1.Request)
	require.NoError(t, err)
	assert.Equal(t, "m1", record.ResourceID)

	decision = f.svc.DecideAccess(ctx, f.media.Ref(), r1.Request)
	assert.Equal(t, OutcomeAwaitPayment, decision.Outcome)
	assert.Equal(t, r1.Request, decision.PaymentRequest())

	f.mlnd.SettleInvoice(r1.Hash, time.Now().Add(-48*time.Hour))
	decision = f.svc.DecideAccess(ctx, f.media.Ref(), r1.Request)
	assert.Equal(t, OutcomeServe, decision.Outcome)

	f.mlnd.CancelInvoice(r1.Hash)
	decision = f.svc.DecideAccess(ctx, f.media.Ref(), r1.Request)
	require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
	assert.NotEqual(t, r1.Request, decision.PaymentRequest())
}

func TestLedgerFaultNeverIssuesInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newPaywallFixture(t)
	issued := f.issue(t, f.post.Ref())

	ledger := mock_service.NewMockLedger(ctrl)
	ledger.EXPECT().
		LookupInvoiceState(gomock.Any(), gomock.Eq(issued.Hash)).
		Times(1).
		Return(nil, status.Error(codes.Unavailable, "connection refused"))
	ledger.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	svc := NewPaywallService(testConfig(), lecho.New(io.Discard), ledger, f.store, NewMemoryResourceStore(f.post))
	decision := svc.DecideAccess(context.Background(), f.post.Ref(), issued.Request)
	assert.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, RejectTransientFailure, decision.Reason)
	assert.Error(t, decision.Err)
	assert.Len(t, f.listPayments(t, f.post.Ref()), 1)
}

func TestStoreFaultIsTransient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newPaywallFixture(t)
	issued := f.issue(t, f.post.Ref())

	store := mock_service.NewMockPaymentStore(ctrl)
	store.EXPECT().
		FindByRequest(gomock.Any(), gomock.Eq(issued.Request)).
		Times(1).
		Return(nil, errors.New("connection reset"))
	store.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	svc := NewPaywallService(testConfig(), lecho.New(io.Discard), f.ledger, store, NewMemoryResourceStore(f.post))
	decision := svc.DecideAccess(context.Background(), f.post.Ref(), issued.Request)
	assert.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, RejectTransientFailure, decision.Reason)
	assert.Equal(t, 1, f.mlnd.AddInvoiceCalls())
}

func TestResourceLookupFaultIsTransient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newPaywallFixture(t)
	resources := mock_service.NewMockResourceFinder(ctrl)
	resources.EXPECT().
		FindResource(gomock.Any(), gomock.Eq(f.post.Ref())).
		Times(1).
		Return(nil, errors.New("database is locked"))

	svc := NewPaywallService(testConfig(), lecho.New(io.Discard), f.ledger, f.store, resources)
	decision := svc.DecideAccess(context.Background(), f.post.Ref(), "")
	assert.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, RejectTransientFailure, decision.Reason)
}

func TestIssuanceFaultIsTransient(t *testing.T) {
	f := newPaywallFixture(t)
	f.mlnd.FailAddInvoice(status.Error(codes.Unavailable, "connection refused"))

	decision := f.svc.DecideAccess(context.Background(), f.post.Ref(), "")
	assert.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, RejectTransientFailure, decision.Reason)
	assert.Empty(t, f.listPayments(t, f.post.Ref()))
}

func TestSettlementBookkeepingFailureStillServes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newPaywallFixture(t)
	issued := f.issue(t, f.media.Ref())
	f.mlnd.SettleInvoice(issued.Hash, time.Now())
	record, err := f.store.FindByRequest(context.Background(), issued.Request)
	require.NoError(t, err)

	store := mock_service.NewMockPaymentStore(ctrl)
	store.EXPECT().
		FindByRequest(gomock.Any(), gomock.Eq(issued.Request)).
		Return(record, nil)
	store.EXPECT().
		UpdateState(gomock.Any(), gomock.Eq(record.ID), gomock.Eq(string(lnd.InvoiceStateSettled)), gomock.Any()).
		Return(errors.New("read only transaction"))

	svc := NewPaywallService(testConfig(), lecho.New(io.Discard), f.ledger, store, NewMemoryResourceStore(f.media))
	decision := svc.DecideAccess(context.Background(), f.media.Ref(), issued.Request)
	assert.Equal(t, OutcomeServe, decision.Outcome)
}

func TestIssueInvoiceForResource(t *testing.T) {
	f := newPaywallFixture(t)
	ctx := context.Background()

	payment, err := f.svc.IssueInvoiceForResource(ctx, f.post.Ref())
	require.NoError(t, err)
	assert.Equal(t, f.post.Ref(), payment.Ref())
	assert.Equal(t, int64(100), payment.Amount)

	_, err = f.svc.IssueInvoiceForResource(ctx, f.free.Ref())
	assert.ErrorIs(t, err, ErrResourceFree)
	_, err = f.svc.IssueInvoiceForResource(ctx, f.draft.Ref())
	assert.ErrorIs(t, err, ErrResourceNotFound)
	_, err = f.svc.IssueInvoiceForResource(ctx, models.ResourceRef{Kind: common.ResourceTypeMedia, ID: "nope"})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestIssuedInvoiceCarriesMemo(t *testing.T) {
	f := newPaywallFixture(t)
	untitled := &models.Post{ID: "p2", Price: 5, Published: true}
	f.svc.Resources = NewMemoryResourceStore(f.post, untitled)

	events := make(chan PaymentEvent, 4)
	f.svc.EventPubSub.Subscribe(AllTopics, events)

	titled := f.issue(t, f.post.Ref())
	plain := f.issue(t, untitled.Ref())

	for _, c := range []struct {
		payment *models.Payment
		memo    string
	}{
		{titled, "buy p1 : hello"},
		{plain, "Paywall access"},
	} {
		event := <-events
		assert.Equal(t, common.PaymentEventIssued, event.Type)
		assert.Equal(t, c.payment.ID, event.Payment.ID)
		invoice, err := f.mlnd.LookupInvoice(context.Background(), lookupHash(t, c.payment.Hash))
		require.NoError(t, err)
		assert.Equal(t, c.memo, invoice.Memo)
	}
}

func TestConcurrentIssuanceIsDeduplicated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newPaywallFixture(t)
	release := make(chan struct{})
	ledger := mock_service.NewMockLedger(ctrl)
	ledger.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Eq(int64(100)), gomock.Any(), gomock.Eq(int64(600))).
		Times(1).
		DoAndReturn(func(ctx context.Context, value int64, memo string, expiry int64) (*lnd.RawInvoice, error) {
			<-release
			return f.ledger.CreateInvoice(ctx, value, memo, expiry)
		})
	svc := NewPaywallService(testConfig(), lecho.New(io.Discard), ledger, f.store, NewMemoryResourceStore(f.post))

	const callers = 5
	decisions := make([]*Decision, callers)
	var started, done sync.WaitGroup
	for i := 0; i < callers; i++ {
		started.Add(1)
		done.Add(1)
		go func(i int) {
			defer done.Done()
			started.Done()
			decisions[i] = svc.DecideAccess(context.Background(), f.post.Ref(), "")
		}(i)
	}
	started.Wait()
	time.Sleep(100 * time.Millisecond)
	close(release)
	done.Wait()

	for _, decision := range decisions {
		require.Equal(t, OutcomeReplacementIssued, decision.Outcome)
		assert.Equal(t, decisions[0].PaymentRequest(), decision.PaymentRequest())
	}
	assert.Len(t, f.listPayments(t, f.post.Ref()), 1)
}

func TestConcurrentIssuanceWithoutDedup(t *testing.T) {
	f := newPaywallFixture(t)
	f.svc.Config.DedupInvoiceIssuance = false

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.svc.DecideAccess(context.Background(), f.post.Ref(), "")
		}()
	}
	wg.Wait()
	assert.Len(t, f.listPayments(t, f.post.Ref()), 3)
}

func TestIssuanceSurvivesCancelledRequest(t *testing.T) {
	f := newPaywallFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payment, err := f.svc.IssueInvoiceForResource(ctx, f.post.Ref())
	require.NoError(t, err)
	assert.Len(t, f.listPayments(t, f.post.Ref()), 1)
	assert.Equal(t, payment.Request, f.listPayments(t, f.post.Ref())[0].Request)
}

func lookupHash(t *testing.T, paymentHash string) *lnrpc.PaymentHash {
	t.Helper()
	rHash, err := hex.DecodeString(paymentHash)
	require.NoError(t, err)
	return &lnrpc.PaymentHash{RHash: rHash}
}
