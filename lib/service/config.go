package service

type Config struct {
	DatabaseUri                      string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns                 int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns             int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime          int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatabaseTimeout                  int     `envconfig:"DATABASE_TIMEOUT" default:"60"`             // 60 seconds
	SentryDSN                        string  `envconfig:"SENTRY_DSN"`
	DatadogAgentUrl                  string  `envconfig:"DATADOG_AGENT_URL"`
	SentryTracesSampleRate           float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath                      string  `envconfig:"LOG_FILE_PATH"`
	AdminToken                       string  `envconfig:"ADMIN_TOKEN"`
	PublicURL                        string  `envconfig:"PUBLIC_URL" default:"http://localhost:3000"`
	Port                             int     `envconfig:"PORT" default:"3000"`
	DefaultRateLimit                 int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit                  int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit                   int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus                 bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort                   int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	InvoiceExpiry                    int64   `envconfig:"INVOICE_EXPIRY" default:"600"` // in seconds
	InvoiceMemo                      string  `envconfig:"INVOICE_MEMO" default:"Paywall access"`
	DedupInvoiceIssuance             bool    `envconfig:"DEDUP_INVOICE_ISSUANCE" default:"true"`
	ListingCacheTTL                  int     `envconfig:"LISTING_CACHE_TTL" default:"60"` // in seconds, 0 disables the cache
	RabbitMQUri                      string  `envconfig:"RABBITMQ_URI"`
	RabbitMQPaymentExchange          string  `envconfig:"RABBITMQ_PAYMENT_EXCHANGE" default:"paywall_payment"`
	RabbitMQLndInvoiceExchange       string  `envconfig:"RABBITMQ_LND_INVOICE_EXCHANGE" default:"lnd_invoice"`
	RabbitMQInvoiceConsumerQueueName string  `envconfig:"RABBITMQ_INVOICE_CONSUMER_QUEUE_NAME" default:"paywall_lnd_invoice_consumer"`
}
