package v2controllers

import (
	"errors"
	"net/http"

	"github.com/getAlby/lnpaywall/common"
	"github.com/getAlby/lnpaywall/db/models"
	"github.com/getAlby/lnpaywall/lib/responses"
	"github.com/getAlby/lnpaywall/lib/service"
	"github.com/labstack/echo/v4"
)

// AuditController : payment history of a resource
type AuditController struct {
	svc *service.PaywallService
}

func NewAuditController(svc *service.PaywallService) *AuditController {
	return &AuditController{svc: svc}
}

// path segment to resource kind
var resourceKinds = map[string]string{
	"posts": common.ResourceTypePost,
	"media": common.ResourceTypeMedia,
}

func resourceRefFrom(c echo.Context) (models.ResourceRef, bool) {
	kind, ok := resourceKinds[c.Param("kind")]
	if !ok {
		return models.ResourceRef{}, false
	}
	return models.ResourceRef{Kind: kind, ID: c.Param("id")}, true
}

// ListPayments godoc
// @Summary      Payment history of a resource
// @Produce      json
// @Tags         Admin
// @Param        kind  path  string  true  "posts or media"
// @Param        id    path  string  true  "Resource id"
// @Success      200  {object}  []service.AuditedPayment
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/admin/{kind}/{id}/payments [get]
func (controller *AuditController) ListPayments(c echo.Context) error {
	ref, ok := resourceRefFrom(c)
	if !ok {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	payments, err := controller.svc.AuditPayments(c.Request().Context(), ref)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// LatestPayment godoc
// @Summary      Latest payment of a resource
// @Produce      json
// @Tags         Admin
// @Param        kind  path  string  true  "posts or media"
// @Param        id    path  string  true  "Resource id"
// @Success      200  {object}  service.AuditedPayment
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/admin/{kind}/{id}/payments/latest [get]
func (controller *AuditController) LatestPayment(c echo.Context) error {
	ref, ok := resourceRefFrom(c)
	if !ok {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	payment, err := controller.svc.AuditLatestPayment(c.Request().Context(), ref)
	if errors.Is(err, service.ErrPaymentNotFound) {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}
