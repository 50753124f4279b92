package v2controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/getAlby/lnpaywall/common"
	"github.com/getAlby/lnpaywall/db/models"
	"github.com/getAlby/lnpaywall/lib/payreq"
	"github.com/getAlby/lnpaywall/lib/responses"
	"github.com/getAlby/lnpaywall/lib/service"
	"github.com/getAlby/lnpaywall/lnd"
	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"
)

// InvoiceController : pre-generates invoices for resources
type InvoiceController struct {
	svc *service.PaywallService
}

func NewInvoiceController(svc *service.PaywallService) *InvoiceController {
	return &InvoiceController{svc: svc}
}

// InvoiceResponseBody carries the invoice to pay. State is the ledger state
// of that invoice, PreviousState is set when it replaces the one presented.
type InvoiceResponseBody struct {
	State          string    `json:"state"`
	PreviousState  string    `json:"previous_state,omitempty"`
	PaymentRequest string    `json:"payment_request"`
	PaymentHash    string    `json:"payment_hash"`
	Amount         int64     `json:"amount"`
	ExpiresAt      time.Time `json:"expires_at"`
	ResourceType   string    `json:"resource_type"`
	ResourceID     string    `json:"resource_id"`
}

func newInvoiceResponseBody(payment *models.Payment, state, previousState string) *InvoiceResponseBody {
	return &InvoiceResponseBody{
		State:          state,
		PreviousState:  previousState,
		PaymentRequest: payment.Request,
		PaymentHash:    payment.Hash,
		Amount:         payment.Amount,
		ExpiresAt:      payment.ExpiresAt,
		ResourceType:   payment.ResourceType,
		ResourceID:     payment.ResourceID,
	}
}

// RequestPostInvoice godoc
// @Summary      Request an invoice for a post
// @Description  With a payment_request the state of that invoice is reported and a new one is only issued once it can't be paid anymore
// @Produce      json
// @Tags         Invoice
// @Param        id               path   string  true   "Post id"
// @Param        payment_request  query  string  false  "Payment request received earlier"
// @Success      200  {object}  InvoiceResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      503  {object}  responses.ErrorResponse
// @Router       /v2/posts/{id}/invoice [post]
func (controller *InvoiceController) RequestPostInvoice(c echo.Context) error {
	return controller.requestInvoice(c, models.ResourceRef{Kind: common.ResourceTypePost, ID: c.Param("id")})
}

// RequestMediaInvoice godoc
// @Summary      Request an invoice for a media file
// @Description  With a payment_request the state of that invoice is reported and a new one is only issued once it can't be paid anymore
// @Produce      json
// @Tags         Invoice
// @Param        id               path   string  true   "Media id"
// @Param        payment_request  query  string  false  "Payment request received earlier"
// @Success      200  {object}  InvoiceResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      503  {object}  responses.ErrorResponse
// @Router       /v2/media/{id}/invoice [post]
func (controller *InvoiceController) RequestMediaInvoice(c echo.Context) error {
	return controller.requestInvoice(c, models.ResourceRef{Kind: common.ResourceTypeMedia, ID: c.Param("id")})
}

func (controller *InvoiceController) requestInvoice(c echo.Context, ref models.ResourceRef) error {
	if paymentRequest := paymentRequestFrom(c); paymentRequest != "" {
		return controller.checkInvoice(c, ref, paymentRequest)
	}

	payment, err := controller.svc.IssueInvoiceForResource(c.Request().Context(), ref)
	switch {
	case errors.Is(err, service.ErrResourceNotFound):
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	case errors.Is(err, service.ErrResourceFree):
		return c.JSON(http.StatusBadRequest, responses.ResourceFreeError)
	case err != nil:
		c.Logger().Errorf("Failed to issue invoice for %s: %v", ref, err)
		return c.JSON(http.StatusServiceUnavailable, responses.ServiceUnavailableError)
	}
	return c.JSON(http.StatusOK, newInvoiceResponseBody(payment, string(lnd.InvoiceStateOpen), ""))
}

// checkInvoice reports the state of a presented payment request without
// handing out the resource.
func (controller *InvoiceController) checkInvoice(c echo.Context, ref models.ResourceRef, paymentRequest string) error {
	decision := controller.svc.DecideAccess(c.Request().Context(), ref, paymentRequest)
	switch decision.Outcome {
	case service.OutcomeServe:
		if decision.Payment == nil {
			return c.JSON(http.StatusBadRequest, responses.ResourceFreeError)
		}
		return c.JSON(http.StatusOK, newInvoiceResponseBody(decision.Payment, decision.State, ""))
	case service.OutcomeAwaitPayment:
		return c.JSON(http.StatusOK, newInvoiceResponseBody(decision.Payment, decision.State, ""))
	case service.OutcomeReplacementIssued:
		return c.JSON(http.StatusOK, newInvoiceResponseBody(decision.Payment, string(lnd.InvoiceStateOpen), decision.State))
	}
	return respondRejected(c, decision)
}

// QRCode godoc
// @Summary      QR code of a payment request
// @Produce      png
// @Tags         Invoice
// @Param        payment_request  query  string  true  "Payment request"
// @Success      200
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /v2/qr [get]
func (controller *InvoiceController) QRCode(c echo.Context) error {
	request := payreq.Normalize(c.QueryParam(common.PaymentRequestParam))
	if _, err := payreq.DecodePaymentHash(request); err != nil {
		return c.JSON(http.StatusBadRequest, responses.InvalidPaymentRequestError)
	}
	png, err := qrcode.Encode("lightning:"+request, qrcode.Medium, 256)
	if err != nil {
		c.Logger().Errorf("Failed to encode qr code: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
