package service

import (
	"context"
	"time"

	"github.com/getAlby/lnpaywall/lnd"
	"github.com/ziflex/lecho/v3"
	"golang.org/x/sync/singleflight"
)

// Ledger is the part of the lightning node the paywall talks to.
type Ledger interface {
	CreateInvoice(ctx context.Context, value int64, memo string, expiry int64) (*lnd.RawInvoice, error)
	LookupInvoiceState(ctx context.Context, paymentHash string) (*lnd.InvoiceStatus, error)
}

type PaywallService struct {
	Config      *Config
	Logger      *lecho.Logger
	Ledger      Ledger
	Payments    PaymentStore
	Resources   ResourceFinder
	Resolver    *InvoiceStateResolver
	EventPubSub *Pubsub

	issuance singleflight.Group
	now      func() time.Time
}

func NewPaywallService(config *Config, logger *lecho.Logger, ledger Ledger, payments PaymentStore, resources ResourceFinder) *PaywallService {
	return &PaywallService{
		Config:      config,
		Logger:      logger,
		Ledger:      ledger,
		Payments:    payments,
		Resources:   resources,
		Resolver:    &InvoiceStateResolver{Ledger: ledger},
		EventPubSub: NewPubsub(),
		now:         time.Now,
	}
}

func (svc *PaywallService) currentTime() time.Time {
	if svc.now == nil {
		return time.Now()
	}
	return svc.now()
}
