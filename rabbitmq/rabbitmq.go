package rabbitmq

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/getAlby/lnpaywall/lib/service"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	"github.com/lightningnetwork/lnd/lnrpc"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

const (
	contentTypeJSON = "application/json"

	defaultPaymentExchange    = "paywall_payment"
	defaultLndInvoiceExchange = "lnd_invoice"
	defaultInvoiceQueueName   = "paywall_lnd_invoice_consumer"

	settledInvoiceRoutingKey = "invoice.incoming.settled"
	invoiceDeliveryLimit     = 10
	invoicePrefetch          = 32
)

// bufPool reuses the buffers payment events are encoded into.
var bufPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

type (
	// SubscribeToPaymentEventsFunc hands out a channel of payment events and
	// the function that stops their delivery.
	SubscribeToPaymentEventsFunc = func() (events chan service.PaymentEvent, unsubscribe func(), err error)
	// SettledInvoiceHandler is called for every settled invoice the node
	// reports. An error requeues the notification.
	SettledInvoiceHandler = func(ctx context.Context, paymentHash string, settledAt time.Time) error
)

type Client interface {
	SubscribeToLndInvoices(context.Context, SettledInvoiceHandler) error
	StartPublishPaymentEvents(context.Context, SubscribeToPaymentEventsFunc) error
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	paymentExchange    string
	lndInvoiceExchange string
	invoiceQueueName   string
}

type ClientOption = func(client *DefaultClient)

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func WithPaymentExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.paymentExchange = exchange
	}
}

func WithLndInvoiceExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.lndInvoiceExchange = exchange
	}
}

func WithInvoiceConsumerQueueName(name string) ClientOption {
	return func(client *DefaultClient) {
		client.invoiceQueueName = name
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) *DefaultClient {
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		paymentExchange:    defaultPaymentExchange,
		lndInvoiceExchange: defaultLndInvoiceExchange,
		invoiceQueueName:   defaultInvoiceQueueName,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

// SubscribeToLndInvoices blocks until ctx is done or the delivery channel is
// closed for good.
func (client *DefaultClient) SubscribeToLndInvoices(ctx context.Context, handler SettledInvoiceHandler) error {
	deliveryChan, err := client.amqpClient.Listen(
		ctx,
		client.lndInvoiceExchange,
		settledInvoiceRoutingKey,
		client.invoiceQueueName,
		WithDeliveryLimit(invoiceDeliveryLimit),
		WithPrefetch(invoicePrefetch),
	)
	if err != nil {
		return err
	}

	client.logger.Infof("Starting settled invoice consumer on %s", client.lndInvoiceExchange)
	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case delivery, ok := <-deliveryChan:
			if !ok {
				return fmt.Errorf("rabbitmq: delivery channel of %s closed", client.lndInvoiceExchange)
			}
			client.handleSettledInvoice(ctx, delivery, handler)
		}
	}
}

func (client *DefaultClient) handleSettledInvoice(ctx context.Context, delivery amqp.Delivery, handler SettledInvoiceHandler) {
	var invoice lnrpc.Invoice
	if err := json.Unmarshal(delivery.Body, &invoice); err != nil {
		captureErr(client.logger, err)
		// a body we can't read won't get better on redelivery
		nack(client.logger, delivery, false)
		return
	}

	var settledAt time.Time
	if invoice.SettleDate > 0 {
		settledAt = time.Unix(invoice.SettleDate, 0)
	}
	paymentHash := hex.EncodeToString(invoice.RHash)
	if err := handler(ctx, paymentHash, settledAt); err != nil {
		captureErr(client.logger, err)
		nack(client.logger, delivery, true)
		return
	}

	if err := delivery.Ack(false); err != nil {
		captureErr(client.logger, err)
	}
}

// StartPublishPaymentEvents forwards payment events to the payment exchange
// until ctx is done.
func (client *DefaultClient) StartPublishPaymentEvents(ctx context.Context, subscribe SubscribeToPaymentEventsFunc) error {
	err := client.amqpClient.ExchangeDeclare(
		client.paymentExchange,
		// topic so consumers can bind to payment.<kind>.<event>
		"topic",
		// durable
		true,
		// auto-deleted
		false,
		// internal
		false,
		// nowait
		false,
		nil,
	)
	if err != nil {
		return err
	}

	events, unsubscribe, err := subscribe()
	if err != nil {
		return err
	}
	defer unsubscribe()

	client.logger.Infof("Starting payment event publisher on %s", client.paymentExchange)
	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := client.publishPaymentEvent(ctx, event); err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) publishPaymentEvent(ctx context.Context, event service.PaymentEvent) error {
	key := fmt.Sprintf("payment.%s.%s", event.Payment.ResourceType, event.Type)

	buf := bufPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufPool.Put(buf)
	}()
	if err := json.NewEncoder(buf).Encode(event); err != nil {
		return err
	}

	err := client.amqpClient.PublishWithContext(ctx,
		client.paymentExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        buf.Bytes(),
		},
	)
	if err != nil {
		return err
	}

	client.logger.Debugf("Published payment event %s for payment %s", key, event.Payment.ID)
	return nil
}

func nack(logger *lecho.Logger, delivery amqp.Delivery, requeue bool) {
	if err := delivery.Nack(false, requeue); err != nil {
		captureErr(logger, err)
	}
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
