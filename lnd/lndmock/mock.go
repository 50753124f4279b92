// Package lndmock provides an in-memory lnd node that issues real, signed
// bolt11 payment requests and lets tests drive their settlement state.
package lndmock

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	btcec "github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/getAlby/lnpaywall/lnd"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/zpay32"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const DefaultPrivKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

type MockLND struct {
	mu              sync.Mutex
	privKey         *btcec.PrivateKey
	pubKey          *btcec.PublicKey
	invoices        map[string]*lnrpc.Invoice
	addIndexCounter uint64
	lookupErr       error
	addErr          error
	addCalls        int
	lookupCalls     int
}

var _ lnd.LightningClientWrapper = (*MockLND)(nil)

func NewMockLND(privkey string) (*MockLND, error) {
	privKeyBytes, err := hex.DecodeString(privkey)
	if err != nil {
		return nil, err
	}
	privKey, pubKey := btcec.PrivKeyFromBytes(privKeyBytes)
	return &MockLND{
		privKey:  privKey,
		pubKey:   pubKey,
		invoices: map[string]*lnrpc.Invoice{},
	}, nil
}

func NewDefaultMockLND() *MockLND {
	mlnd, err := NewMockLND(DefaultPrivKey)
	if err != nil {
		panic(err)
	}
	return mlnd
}

func (mlnd *MockLND) signMsg(msg []byte) ([]byte, error) {
	hash := sha256.Sum256(msg)
	return ecdsa.SignCompact(mlnd.privKey, hash[:], true)
}

func (mlnd *MockLND) AddInvoice(ctx context.Context, req *lnrpc.Invoice, options ...grpc.CallOption) (*lnrpc.AddInvoiceResponse, error) {
	mlnd.mu.Lock()
	defer mlnd.mu.Unlock()
	mlnd.addCalls++
	if mlnd.addErr != nil {
		return nil, mlnd.addErr
	}
	pr, rHash, err := mlnd.encode(req.Value, req.Memo, req.Expiry)
	if err != nil {
		return nil, err
	}
	mlnd.addIndexCounter += 1
	mlnd.invoices[hex.EncodeToString(rHash)] = &lnrpc.Invoice{
		Memo:           req.Memo,
		RHash:          rHash,
		Value:          req.Value,
		CreationDate:   time.Now().Unix(),
		PaymentRequest: pr,
		Expiry:         req.Expiry,
		AddIndex:       mlnd.addIndexCounter,
		State:          lnrpc.Invoice_OPEN,
	}
	return &lnrpc.AddInvoiceResponse{
		RHash:          rHash,
		PaymentRequest: pr,
		AddIndex:       mlnd.addIndexCounter,
	}, nil
}

func (mlnd *MockLND) LookupInvoice(ctx context.Context, req *lnrpc.PaymentHash, options ...grpc.CallOption) (*lnrpc.Invoice, error) {
	mlnd.mu.Lock()
	defer mlnd.mu.Unlock()
	mlnd.lookupCalls++
	if mlnd.lookupErr != nil {
		return nil, mlnd.lookupErr
	}
	inv, ok := mlnd.invoices[hex.EncodeToString(req.RHash)]
	if !ok {
		return nil, status.Error(codes.Unknown, "unable to locate invoice")
	}
	copied := *inv
	return &copied, nil
}

func (mlnd *MockLND) GetInfo(ctx context.Context, req *lnrpc.GetInfoRequest, options ...grpc.CallOption) (*lnrpc.GetInfoResponse, error) {
	return &lnrpc.GetInfoResponse{
		Version:        "v1.0.0",
		IdentityPubkey: hex.EncodeToString(mlnd.pubKey.SerializeCompressed()),
		Alias:          "mock-lnd",
		SyncedToChain:  true,
		SyncedToGraph:  true,
		Chains: []*lnrpc.Chain{{
			Chain:   "bitcoin",
			Network: "regtest",
		}},
	}, nil
}

// ForeignPaymentRequest returns a valid payment request the node never stored,
// like one minted by another deployment.
func (mlnd *MockLND) ForeignPaymentRequest(value int64, memo string) (string, error) {
	mlnd.mu.Lock()
	defer mlnd.mu.Unlock()
	pr, _, err := mlnd.encode(value, memo, 3600)
	return pr, err
}

func (mlnd *MockLND) SettleInvoice(paymentHash string, settledAt time.Time) {
	mlnd.setState(paymentHash, func(inv *lnrpc.Invoice) {
		inv.State = lnrpc.Invoice_SETTLED
		inv.Settled = true
		inv.SettleDate = settledAt.Unix()
		inv.AmtPaidSat = inv.Value
		inv.AmtPaidMsat = 1000 * inv.Value
	})
}

func (mlnd *MockLND) AcceptInvoice(paymentHash string) {
	mlnd.setState(paymentHash, func(inv *lnrpc.Invoice) {
		inv.State = lnrpc.Invoice_ACCEPTED
	})
}

func (mlnd *MockLND) CancelInvoice(paymentHash string) {
	mlnd.setState(paymentHash, func(inv *lnrpc.Invoice) {
		inv.State = lnrpc.Invoice_CANCELED
	})
}

// ForgetInvoice drops the invoice, as a node restored from an older backup would.
func (mlnd *MockLND) ForgetInvoice(paymentHash string) {
	mlnd.mu.Lock()
	defer mlnd.mu.Unlock()
	delete(mlnd.invoices, paymentHash)
}

// FailLookups makes every LookupInvoice call return err, nil restores normal behaviour.
func (mlnd *MockLND) FailLookups(err error) {
	mlnd.mu.Lock()
	defer mlnd.mu.Unlock()
	mlnd.lookupErr = err
}

// FailAddInvoice makes every AddInvoice call return err, nil restores normal behaviour.
func (mlnd *MockLND) FailAddInvoice(err error) {
	mlnd.mu.Lock()
	defer mlnd.mu.Unlock()
	mlnd.addErr = err
}

func (mlnd *MockLND) AddInvoiceCalls() int {
	mlnd.mu.Lock()
	defer mlnd.mu.Unlock()
	return mlnd.addCalls
}

func (mlnd *MockLND) LookupInvoiceCalls() int {
	mlnd.mu.Lock()
	defer mlnd.mu.Unlock()
	return mlnd.lookupCalls
}

func (mlnd *MockLND) setState(paymentHash string, apply func(inv *lnrpc.Invoice)) {
	mlnd.mu.Lock()
	defer mlnd.mu.Unlock()
	if inv, ok := mlnd.invoices[paymentHash]; ok {
		apply(inv)
	}
}

func (mlnd *MockLND) encode(value int64, memo string, expiry int64) (string, []byte, error) {
	preimage := make([]byte, 32)
	if _, err := rand.Read(preimage); err != nil {
		return "", nil, err
	}
	pHash := sha256.Sum256(preimage)
	msat := lnwire.MilliSatoshi(1000 * value)
	invoice := &zpay32.Invoice{
		Net:         &chaincfg.RegressionNetParams,
		MilliSat:    &msat,
		Timestamp:   time.Now(),
		PaymentHash: &[32]byte{},
		PaymentAddr: &[32]byte{},
		Description: &memo,
		Features:    lnwire.EmptyFeatureVector(),
	}
	if expiry > 0 {
		zpay32.Expiry(time.Duration(expiry) * time.Second)(invoice)
	}
	copy(invoice.PaymentHash[:], pHash[:])
	if _, err := rand.Read(invoice.PaymentAddr[:]); err != nil {
		return "", nil, err
	}
	pr, err := invoice.Encode(zpay32.MessageSigner{
		SignCompact: mlnd.signMsg,
	})
	if err != nil {
		return "", nil, err
	}
	return pr, pHash[:], nil
}
