package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/getAlby/lnpaywall/db"
	"github.com/getAlby/lnpaywall/db/models"
	"github.com/getAlby/lnpaywall/lib"
	"github.com/getAlby/lnpaywall/lib/service"
	"github.com/getAlby/lnpaywall/lnd"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type auditConfig struct {
	ResourceKind string `envconfig:"RESOURCE_KIND" required:"true"`
	ResourceID   string `envconfig:"RESOURCE_ID" required:"true"`
	// records settlements the ledger knows about but the database doesn't
	SyncSettlements bool `envconfig:"SYNC_SETTLEMENTS" default:"false"`
}

// script to compare the payments of a resource with the node's view of them
func main() {

	c := &service.Config{}
	ac := &auditConfig{}

	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}
	err = envconfig.Process("", ac)
	if err != nil {
		log.Fatalf("Error loading audit arguments: %v", err)
	}

	// Logs go to the log file or STDERR, STDOUT carries the report
	logger := lib.Logger(c.LogFilePath)
	if c.LogFilePath == "" {
		logger.SetOutput(os.Stderr)
	}

	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}
	defer dbConn.Close()

	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{Dsn: c.SentryDSN}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	lnCfg, err := lnd.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load lnd config %v", err)
	}
	lndClient, err := lnd.InitLNClient(lnCfg, logger, ctx)
	if err != nil {
		logger.Fatalf("Error initializing the LND connection: %v", err)
	}
	defer lndClient.Close()
	logger.Infof("Connected to LND: %s ", lndClient.IdentityPubkey)

	ledger := lnd.NewLedgerClient(lndClient, time.Duration(lnCfg.LNDRPCTimeout)*time.Second)
	svc := service.NewPaywallService(c, logger, ledger, &service.BunPaymentStore{DB: dbConn}, &service.BunResourceStore{DB: dbConn})

	ref := models.ResourceRef{Kind: ac.ResourceKind, ID: ac.ResourceID}
	audited, err := svc.AuditPayments(ctx, ref)
	if err != nil {
		logger.Fatalf("Failed to audit payments of %s: %v", ref, err)
	}

	encoder := json.NewEncoder(os.Stdout)
	lagging := 0
	for _, payment := range audited {
		if err := encoder.Encode(payment); err != nil {
			logger.Fatal(err)
		}
		if payment.LedgerState != string(lnd.InvoiceStateSettled) || payment.State == payment.LedgerState {
			continue
		}
		lagging += 1
		if !ac.SyncSettlements {
			continue
		}
		settledAt := time.Time{}
		if payment.LedgerSettledAt != nil {
			settledAt = *payment.LedgerSettledAt
		}
		if err := svc.HandleSettledInvoice(ctx, payment.Hash, settledAt); err != nil {
			sentry.CaptureException(err)
			logger.Error(err)
		}
	}
	logger.Infof("Audited %d payments of %s, %d settled on the node but not in the database", len(audited), ref, lagging)
}
