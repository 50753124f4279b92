package rabbitmq

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

const (
	defaultHeartbeat = 10 * time.Second
	defaultLocale    = "en_US"

	msgReconnect = "RECONNECT_DONE"
	msgClose     = "CLOSE"
)

type listenerMsg = string

type AMQPClient interface {
	Listen(ctx context.Context, exchange string, routingKey string, queueName string, options ...AMQPListenOptions) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Close() error
}

type defaultAMQPClient struct {
	uri  string
	conn *amqp.Connection

	// consuming and publishing use their own channels so flow control on
	// the publishing side doesn't stall consumers
	consumeChannel *amqp.Channel
	publishChannel *amqp.Channel

	notifyCloseChan chan *amqp.Error

	listenersMu sync.Mutex
	listeners   []chan listenerMsg
	reconFlag   atomic.Bool

	logger *lecho.Logger
}

type AMQPClientOption = func(client *defaultAMQPClient)

func WithAmqpLogger(logger *lecho.Logger) AMQPClientOption {
	return func(client *defaultAMQPClient) {
		client.logger = logger
	}
}

// DialAMQP connects to rabbitmq and keeps reconnecting with an exponential
// backoff whenever the connection drops.
func DialAMQP(uri string, options ...AMQPClientOption) (AMQPClient, error) {
	client := &defaultAMQPClient{
		uri: uri,
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),
	}
	for _, opt := range options {
		opt(client)
	}

	if err := client.connect(); err != nil {
		return nil, err
	}

	go client.reconnectionLoop()

	return client, nil
}

func (c *defaultAMQPClient) connect() error {
	conn, err := amqp.DialConfig(c.uri, amqp.Config{
		Heartbeat: defaultHeartbeat,
		Locale:    defaultLocale,
		Dial:      amqp.DefaultDial(time.Second * 3),
	})
	if err != nil {
		return err
	}

	consumeChannel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	publishChannel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	notifyCloseChan := make(chan *amqp.Error, 1)
	conn.NotifyClose(notifyCloseChan)

	c.conn = conn
	c.consumeChannel = consumeChannel
	c.publishChannel = publishChannel
	c.notifyCloseChan = notifyCloseChan

	return nil
}

func reconnectBackoff() *backoff.ExponentialBackOff {
	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.MaxInterval = time.Second * 10
	exponentialBackoff.MaxElapsedTime = time.Minute
	return exponentialBackoff
}

func (c *defaultAMQPClient) reconnectionLoop() {
	for {
		amqpError, ok := <-c.notifyCloseChan
		if !ok || amqpError == nil {
			// closed on purpose
			return
		}
		c.logger.Error(amqpError)

		c.reconFlag.Store(true)
		c.logger.Info("amqp: trying to reconnect...")
		if err := backoff.Retry(c.connect, reconnectBackoff()); err != nil {
			c.logger.Errorf("amqp: giving up reconnecting: %v", err)
			c.notifyListeners(msgClose)
			return
		}
		c.reconFlag.Store(false)
		c.logger.Info("amqp: successfully reconnected")

		c.notifyListeners(msgReconnect)
	}
}

func (c *defaultAMQPClient) notifyListeners(msg listenerMsg) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	for _, listener := range c.listeners {
		listener <- msg
	}
}

func (c *defaultAMQPClient) Close() error {
	return c.conn.Close()
}

func (c *defaultAMQPClient) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	// a short lived channel, declarations are rare
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.ExchangeDeclare(name, kind, durable, autoDelete, internal, noWait, args)
}

// ListenOptions shape the queue a listener consumes from. Listener queues
// are durable quorum queues shared by all paywall instances and acked by hand.
type ListenOptions struct {
	DeliveryLimit int
	Prefetch      int
}

type AMQPListenOptions = func(opts ListenOptions) ListenOptions

// WithDeliveryLimit dead-letters a message after limit failed deliveries,
// 0 keeps redelivering.
func WithDeliveryLimit(limit int) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.DeliveryLimit = limit
		return opts
	}
}

// WithPrefetch bounds the unacked deliveries handed to this instance.
func WithPrefetch(count int) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.Prefetch = count
		return opts
	}
}

func (opts ListenOptions) queueArgs() amqp.Table {
	args := amqp.Table{
		amqp.QueueTypeArg: amqp.QueueTypeQuorum,
	}
	if opts.DeliveryLimit > 0 {
		args["x-delivery-limit"] = opts.DeliveryLimit
	}
	return args
}

// Listen consumes routingKey from exchange through queueName. The returned
// channel survives reconnects and is closed when reconnecting fails for good.
func (c *defaultAMQPClient) Listen(ctx context.Context, exchange string, routingKey string, queueName string, options ...AMQPListenOptions) (<-chan amqp.Delivery, error) {
	deliveries, err := c.consume(exchange, routingKey, queueName, options...)
	if err != nil {
		return nil, err
	}

	clientChannel := make(chan amqp.Delivery)

	notifyReconnectChan := make(chan listenerMsg, 2)
	c.listenersMu.Lock()
	c.listeners = append(c.listeners, notifyReconnectChan)
	c.listenersMu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return

			case msg := <-notifyReconnectChan:
				switch msg {
				case msgReconnect:
					d, err := c.consume(exchange, routingKey, queueName, options...)
					if err != nil {
						c.logger.Error(err)
						close(clientChannel)
						return
					}
					c.logger.Infof("amqp: consuming %s again after reconnect", routingKey)
					deliveries = d
				case msgClose:
					close(clientChannel)
					return
				default:
					c.logger.Warnf("amqp: unrecognized message send to listener: %s", msg)
				}

			case delivery, ok := <-deliveries:
				if !ok {
					// wait for the reconnection loop
					deliveries = nil
					continue
				}
				select {
				case clientChannel <- delivery:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return clientChannel, nil
}

func (c *defaultAMQPClient) consume(exchange string, routingKey string, queueName string, options ...AMQPListenOptions) (<-chan amqp.Delivery, error) {
	opts := ListenOptions{}
	for _, opt := range options {
		opts = opt(opts)
	}

	// topic exchanges route on the dotted routing key
	err := c.consumeChannel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	queue, err := c.consumeChannel.QueueDeclare(queueName, true, false, false, false, opts.queueArgs())
	if err != nil {
		return nil, err
	}

	if err = c.consumeChannel.QueueBind(queue.Name, routingKey, exchange, false, nil); err != nil {
		return nil, err
	}

	if opts.Prefetch > 0 {
		if err = c.consumeChannel.Qos(opts.Prefetch, 0, false); err != nil {
			return nil, err
		}
	}

	return c.consumeChannel.Consume(queue.Name, "", false, false, false, false, nil)
}

func (c *defaultAMQPClient) PublishWithContext(ctx context.Context, exchange string, key string, mandatory bool, immediate bool, msg amqp.Publishing) error {
	if c.reconFlag.Load() {
		err := backoff.Retry(func() error {
			if c.reconFlag.Load() {
				return errors.New("amqp: trying to publish during reconnect")
			}
			return nil
		}, backoff.WithContext(reconnectBackoff(), ctx))
		if err != nil {
			return err
		}
	}

	return c.publishChannel.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}
