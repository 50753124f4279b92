package lnd

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/lightningnetwork/lnd/lnrpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Messages lnd answers LookupInvoice with when it does not know the hash.
// Older nodes report them with codes.Unknown, newer ones with codes.NotFound.
var invoiceNotFoundMessages = map[string]bool{
	"there are no existing invoices": true,
	"unable to locate invoice":       true,
}

// LedgerClient creates invoices on the node and looks up their state.
type LedgerClient struct {
	client  LightningClientWrapper
	timeout time.Duration
}

func NewLedgerClient(client LightningClientWrapper, timeout time.Duration) *LedgerClient {
	return &LedgerClient{
		client:  client,
		timeout: timeout,
	}
}

func (ledger *LedgerClient) CreateInvoice(ctx context.Context, value int64, memo string, expiry int64) (*RawInvoice, error) {
	if value < 0 {
		return nil, fmt.Errorf("invalid invoice value %d", value)
	}
	ctx, cancel := ledger.withTimeout(ctx)
	defer cancel()

	createdAt := time.Now()
	resp, err := ledger.client.AddInvoice(ctx, &lnrpc.Invoice{
		Memo:   memo,
		Value:  value,
		Expiry: expiry,
	})
	if err != nil {
		return nil, fmt.Errorf("add invoice: %w", err)
	}
	if resp.PaymentRequest == "" || len(resp.RHash) != 32 {
		return nil, fmt.Errorf("add invoice: malformed response (payment request %q, hash length %d)", resp.PaymentRequest, len(resp.RHash))
	}

	return &RawInvoice{
		PaymentRequest: resp.PaymentRequest,
		PaymentHash:    hex.EncodeToString(resp.RHash),
		Memo:           memo,
		Value:          value,
		Expiry:         expiry,
		AddIndex:       resp.AddIndex,
		CreatedAt:      createdAt,
	}, nil
}

// LookupInvoiceState reports InvoiceStateNotFound, not an error, when the node
// has no invoice for the hash. Every other failure is returned as an error.
func (ledger *LedgerClient) LookupInvoiceState(ctx context.Context, paymentHash string) (*InvoiceStatus, error) {
	rHash, err := hex.DecodeString(paymentHash)
	if err != nil || len(rHash) != 32 {
		// a corrupted hash can't be known to the node
		return &InvoiceStatus{State: InvoiceStateNotFound}, nil
	}
	ctx, cancel := ledger.withTimeout(ctx)
	defer cancel()

	invoice, err := ledger.client.LookupInvoice(ctx, &lnrpc.PaymentHash{RHash: rHash})
	if err != nil {
		if IsInvoiceNotFound(err) {
			return &InvoiceStatus{State: InvoiceStateNotFound}, nil
		}
		return nil, fmt.Errorf("lookup invoice %s: %w", paymentHash, err)
	}

	result := &InvoiceStatus{
		AmountPaid: invoice.AmtPaidSat,
	}
	switch invoice.State {
	case lnrpc.Invoice_OPEN:
		result.State = InvoiceStateOpen
	case lnrpc.Invoice_ACCEPTED:
		result.State = InvoiceStateAccepted
	case lnrpc.Invoice_SETTLED:
		result.State = InvoiceStateSettled
		if invoice.SettleDate > 0 {
			result.SettledAt = time.Unix(invoice.SettleDate, 0)
		}
	case lnrpc.Invoice_CANCELED:
		result.State = InvoiceStateCanceled
	default:
		return nil, fmt.Errorf("lookup invoice %s: unknown invoice state %v", paymentHash, invoice.State)
	}
	return result, nil
}

func (ledger *LedgerClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ledger.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, ledger.timeout)
}

func IsInvoiceNotFound(err error) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch st.Code() {
	case codes.Unknown, codes.NotFound:
		return invoiceNotFoundMessages[st.Message()]
	}
	return false
}
