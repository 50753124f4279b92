package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/getAlby/lnpaywall/db"
	"github.com/getAlby/lnpaywall/db/migrations"
	"github.com/getAlby/lnpaywall/lib"
	"github.com/getAlby/lnpaywall/lib/service"
	"github.com/getAlby/lnpaywall/lib/tokens"
	"github.com/getAlby/lnpaywall/lib/transport"
	"github.com/getAlby/lnpaywall/lnd"
	"github.com/getAlby/lnpaywall/rabbitmq"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun/migrate"
	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func main() {

	c := &service.Config{}

	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configrued log file
	logger := lib.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}
	defer dbConn.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Duration(c.DatabaseTimeout)*time.Second)
	defer cancelStartup()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401", "402"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	lnCfg, err := lnd.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading LN config: %v", err)
	}
	lndClient, err := lnd.InitLNClient(lnCfg, logger, context.Background())
	if err != nil {
		logger.Fatalf("Error initializing the LND connection: %v", err)
	}
	defer lndClient.Close()
	logger.Infof("Connected to LND: %s", lndClient.IdentityPubkey)

	ledger := lnd.NewLedgerClient(lndClient, time.Duration(lnCfg.LNDRPCTimeout)*time.Second)
	resources := &service.BunResourceStore{DB: dbConn}
	svc := service.NewPaywallService(c, logger, ledger, &service.BunPaymentStore{DB: dbConn}, resources)

	// If no RABBITMQ_URI was provided payment events stay in-process
	var rabbitmqClient rabbitmq.Client
	if c.RabbitMQUri != "" {
		amqpClient, err := rabbitmq.DialAMQP(c.RabbitMQUri, rabbitmq.WithAmqpLogger(logger))
		if err != nil {
			logger.Fatal(err)
		}

		rabbitmqClient = rabbitmq.NewClient(amqpClient,
			rabbitmq.WithLogger(logger),
			rabbitmq.WithPaymentExchange(c.RabbitMQPaymentExchange),
			rabbitmq.WithLndInvoiceExchange(c.RabbitMQLndInvoiceExchange),
			rabbitmq.WithInvoiceConsumerQueueName(c.RabbitMQInvoiceConsumerQueueName),
		)

		// close the connection gently at the end of the runtime
		defer rabbitmqClient.Close()
	}

	e := transport.InitEcho(c, logger)
	//if Datadog is configured, add datadog middleware
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("lnpaywall")))
	}

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for the endpoints minting invoices
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)
	cacheMw := transport.CreateCacheMiddleware(c.ListingCacheTTL)

	transport.RegisterV2Endpoints(svc, resources, e, strictRateLimitMiddleware, tokens.AdminTokenMiddleware(c.AdminToken), cacheMw, logMw)

	var backgroundWg sync.WaitGroup
	backGroundCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if rabbitmqClient != nil {
		backgroundWg.Add(1)
		go func() {
			err := rabbitmqClient.StartPublishPaymentEvents(backGroundCtx, svc.SubscribePaymentEvents)
			if err != nil && err != context.Canceled {
				svc.Logger.Error(err)
				sentry.CaptureException(err)
			}
			svc.Logger.Info("Rabbit payment event publisher done")
			backgroundWg.Done()
		}()

		backgroundWg.Add(1)
		go func() {
			err := rabbitmqClient.SubscribeToLndInvoices(backGroundCtx, svc.HandleSettledInvoice)
			if err != nil && err != context.Canceled {
				// settlements are still observed through the ledger
				svc.Logger.Error(err)
				sentry.CaptureException(err)
			}
			svc.Logger.Info("Rabbit settled invoice consumer done")
			backgroundWg.Done()
		}()
	}

	//Start Prometheus server if necessary
	var echoPrometheus *echo.Echo
	if c.EnablePrometheus {
		echoPrometheus = transport.StartPrometheusEcho(logger, c, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	if echoPrometheus != nil {
		if err := echoPrometheus.Shutdown(ctx); err != nil {
			e.Logger.Fatal(err)
		}
	}
	//Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	svc.Logger.Info("Paywall exiting gracefully. Goodbye.")
}
