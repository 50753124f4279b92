package transport

import (
	v2controllers "github.com/getAlby/lnpaywall/controllers_v2"
	"github.com/getAlby/lnpaywall/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterV2Endpoints(svc *service.PaywallService, catalog service.ResourceCatalog, e *echo.Echo, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, cacheMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	e.GET("/health", v2controllers.NewHealthController().Check)

	resourceCtrl := v2controllers.NewResourceController(catalog, svc.Config.PublicURL)
	paywallCtrl := v2controllers.NewPaywallController(svc)
	invoiceCtrl := v2controllers.NewInvoiceController(svc)
	auditCtrl := v2controllers.NewAuditController(svc)

	e.GET("/rss", resourceCtrl.MediaFeed, logMw, cacheMw)

	public := e.Group("/v2", logMw)
	public.GET("/posts", resourceCtrl.ListPosts, cacheMw)
	public.GET("/media", resourceCtrl.ListMedia, cacheMw)
	public.GET("/qr", invoiceCtrl.QRCode)
	// these may mint an invoice on the node
	public.GET("/posts/:id", paywallCtrl.GetPost, strictRateLimitMiddleware)
	public.GET("/media/:id", paywallCtrl.GetMedia, strictRateLimitMiddleware)
	public.POST("/posts/:id/invoice", invoiceCtrl.RequestPostInvoice, strictRateLimitMiddleware)
	public.POST("/media/:id/invoice", invoiceCtrl.RequestMediaInvoice, strictRateLimitMiddleware)

	//admin endpoints only exist with an admin token
	if svc.Config.AdminToken != "" {
		admin := e.Group("/v2/admin", adminMw, logMw)
		admin.POST("/posts", resourceCtrl.CreatePost)
		admin.POST("/media", resourceCtrl.CreateMedia)
		admin.PATCH("/media/:id", resourceCtrl.EditMedia)
		admin.DELETE("/media/:id", resourceCtrl.UnpublishMedia)
		admin.GET("/:kind/:id/payments", auditCtrl.ListPayments)
		admin.GET("/:kind/:id/payments/latest", auditCtrl.LatestPayment)
	}
}
