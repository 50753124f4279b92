package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/getAlby/lnpaywall/common"
	v2controllers "github.com/getAlby/lnpaywall/controllers_v2"
	"github.com/getAlby/lnpaywall/db"
	"github.com/getAlby/lnpaywall/db/migrations"
	"github.com/getAlby/lnpaywall/lib/responses"
	"github.com/getAlby/lnpaywall/lib/service"
	"github.com/getAlby/lnpaywall/lib/tokens"
	"github.com/getAlby/lnpaywall/lib/transport"
	"github.com/getAlby/lnpaywall/lnd"
	"github.com/getAlby/lnpaywall/lnd/lndmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/uptrace/bun/migrate"
	"github.com/ziflex/lecho/v3"
)

const (
	testAdminToken = "admin-secret"
	testPublicURL  = "https://paywall.example.com"
)

var dbCounter atomic.Int64

// PaywallTestServiceInit wires the paywall against an in-memory sqlite
// database of its own and the given node.
func PaywallTestServiceInit(lndClientMock lnd.LightningClientWrapper) (svc *service.PaywallService, catalog *service.BunResourceStore, err error) {
	c := &service.Config{
		DatabaseUri:          fmt.Sprintf("file:paywall_it_%d?mode=memory&cache=shared", dbCounter.Add(1)),
		AdminToken:           testAdminToken,
		PublicURL:            testPublicURL,
		InvoiceExpiry:        600,
		InvoiceMemo:          "Paywall access",
		DedupInvoiceIssuance: true,
		StrictRateLimit:      1000,
		BurstRateLimit:       1000,
		DefaultRateLimit:     1000,
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	_, err = migrator.Migrate(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger := lecho.New(io.Discard)
	ledger := lnd.NewLedgerClient(lndClientMock, time.Second)
	catalog = &service.BunResourceStore{DB: dbConn}
	svc = service.NewPaywallService(c, logger, ledger, &service.BunPaymentStore{DB: dbConn}, catalog)
	return svc, catalog, nil
}

func clearTable(catalog *service.BunResourceStore, tableName string) error {
	_, err := catalog.DB.Exec(fmt.Sprintf("DELETE FROM %s", tableName))
	return err
}

type TestSuite struct {
	suite.Suite
	echo    *echo.Echo
	mlnd    *lndmock.MockLND
	service *service.PaywallService
	catalog *service.BunResourceStore
}

func (suite *TestSuite) SetupSuite() {
	suite.mlnd = lndmock.NewDefaultMockLND()
	svc, catalog, err := PaywallTestServiceInit(suite.mlnd)
	suite.Require().NoError(err, "Error initializing test service")
	suite.service = svc
	suite.catalog = catalog

	e := transport.InitEcho(svc.Config, svc.Logger)
	transport.RegisterV2Endpoints(
		svc,
		catalog,
		e,
		transport.CreateRateLimitMiddleware(svc.Config.StrictRateLimit, svc.Config.BurstRateLimit),
		tokens.AdminTokenMiddleware(svc.Config.AdminToken),
		transport.CreateCacheMiddleware(svc.Config.ListingCacheTTL),
		transport.CreateLoggingMiddleware(svc.Logger),
	)
	suite.echo = e
}

func (suite *TestSuite) TearDownTest() {
	suite.mlnd.FailLookups(nil)
	suite.mlnd.FailAddInvoice(nil)
	for _, table := range []string{"payments", "posts", "media"} {
		suite.Require().NoError(clearTable(suite.catalog, table))
	}
}

func (suite *TestSuite) do(method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *TestSuite) adminDo(method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = strings.NewReader(string(raw))
	}
	return suite.do(method, target, reader, map[string]string{
		echo.HeaderAuthorization: "Bearer " + testAdminToken,
	})
}

// getResource fetches kind/id presenting paymentRequest, "" presents none.
func (suite *TestSuite) getResource(kind, id, paymentRequest string) *httptest.ResponseRecorder {
	target := fmt.Sprintf("/v2/%s/%s", kind, id)
	if paymentRequest != "" {
		target += "?" + common.PaymentRequestParam + "=" + url.QueryEscape(paymentRequest)
	}
	return suite.do(http.MethodGet, target, nil, nil)
}

func (suite *TestSuite) paymentRequired(rec *httptest.ResponseRecorder) *v2controllers.PaymentRequiredResponseBody {
	body := &v2controllers.PaymentRequiredResponseBody{}
	suite.Require().Equal(http.StatusPaymentRequired, rec.Code, rec.Body.String())
	suite.Require().NoError(json.NewDecoder(rec.Body).Decode(body))
	assert.Equal(suite.T(), body.PaymentRequest, rec.Header().Get(common.PaymentRequestHeader))
	return body
}

func (suite *TestSuite) errorResponse(rec *httptest.ResponseRecorder, status int) *responses.ErrorResponse {
	errorResponse := &responses.ErrorResponse{}
	suite.Require().Equal(status, rec.Code, rec.Body.String())
	suite.Require().NoError(json.NewDecoder(rec.Body).Decode(errorResponse))
	return errorResponse
}
