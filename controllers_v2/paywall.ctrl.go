package v2controllers

import (
	"net/http"
	"time"

	"github.com/getAlby/lnpaywall/common"
	"github.com/getAlby/lnpaywall/db/models"
	"github.com/getAlby/lnpaywall/lib/responses"
	"github.com/getAlby/lnpaywall/lib/service"
	"github.com/getAlby/lnpaywall/lnd"
	"github.com/labstack/echo/v4"
)

// PaywallController : serves paywalled resources
type PaywallController struct {
	svc *service.PaywallService
}

func NewPaywallController(svc *service.PaywallService) *PaywallController {
	return &PaywallController{svc: svc}
}

type PaymentRequiredResponseBody struct {
	State          string       `json:"state"`
	PreviousState  string       `json:"previous_state,omitempty"`
	PaymentRequest string       `json:"payment_request"`
	PaymentHash    string       `json:"payment_hash"`
	Amount         int64        `json:"amount"`
	ExpiresAt      time.Time    `json:"expires_at"`
	Post           *models.Post `json:"post,omitempty"`
}

// GetPost godoc
// @Summary      Read a post
// @Description  Returns the post when it is free or paid for, otherwise a payment request
// @Produce      json
// @Tags         Paywall
// @Param        id               path      string  true   "Post id"
// @Param        payment_request  query     string  false  "Payment request received earlier"
// @Success      200  {object}  models.Post
// @Failure      402  {object}  PaymentRequiredResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      503  {object}  responses.ErrorResponse
// @Router       /v2/posts/{id} [get]
func (controller *PaywallController) GetPost(c echo.Context) error {
	ref := models.ResourceRef{Kind: common.ResourceTypePost, ID: c.Param("id")}
	decision := controller.svc.DecideAccess(c.Request().Context(), ref, paymentRequestFrom(c))
	if decision.Outcome != service.OutcomeServe {
		return respondWithoutAccess(c, decision)
	}
	return c.JSON(http.StatusOK, decision.Resource)
}

// GetMedia godoc
// @Summary      Download a media file
// @Description  Returns the file when it is free or paid for, otherwise a payment request
// @Produce      octet-stream
// @Tags         Paywall
// @Param        id               path      string  true   "Media id"
// @Param        payment_request  query     string  false  "Payment request received earlier"
// @Success      200
// @Failure      402  {object}  PaymentRequiredResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      503  {object}  responses.ErrorResponse
// @Router       /v2/media/{id} [get]
func (controller *PaywallController) GetMedia(c echo.Context) error {
	ref := models.ResourceRef{Kind: common.ResourceTypeMedia, ID: c.Param("id")}
	decision := controller.svc.DecideAccess(c.Request().Context(), ref, paymentRequestFrom(c))
	if decision.Outcome != service.OutcomeServe {
		return respondWithoutAccess(c, decision)
	}
	media := decision.Resource.(*models.Media)
	return c.Attachment(media.AbsolutePath, media.FileName)
}

// the query parameter wins over the header
func paymentRequestFrom(c echo.Context) string {
	if pr := c.QueryParam(common.PaymentRequestParam); pr != "" {
		return pr
	}
	return c.Request().Header.Get(common.PaymentRequestHeader)
}

func respondWithoutAccess(c echo.Context, decision *service.Decision) error {
	switch decision.Outcome {
	case service.OutcomeAwaitPayment:
		return respondPaymentRequired(c, decision, decision.State, "")
	case service.OutcomeReplacementIssued:
		return respondPaymentRequired(c, decision, string(lnd.InvoiceStateOpen), decision.State)
	}
	return respondRejected(c, decision)
}

func respondRejected(c echo.Context, decision *service.Decision) error {
	switch decision.Reason {
	case service.RejectNotFound:
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	case service.RejectMismatch:
		return c.JSON(http.StatusBadRequest, responses.PaymentMismatchError)
	case service.RejectInvalidPaymentRequest:
		return c.JSON(http.StatusBadRequest, responses.InvalidPaymentRequestError)
	case service.RejectTransientFailure:
		return c.JSON(http.StatusServiceUnavailable, responses.ServiceUnavailableError)
	}
	return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
}

func respondPaymentRequired(c echo.Context, decision *service.Decision, state, previousState string) error {
	body := &PaymentRequiredResponseBody{
		State:          state,
		PreviousState:  previousState,
		PaymentRequest: decision.PaymentRequest(),
		PaymentHash:    decision.PaymentHash(),
		Amount:         decision.Payment.Amount,
		ExpiresAt:      decision.ExpiresAt(),
	}
	if post, ok := decision.Resource.(*models.Post); ok {
		body.Post = post.Teaser()
	}
	c.Response().Header().Set(common.PaymentRequestHeader, decision.PaymentRequest())
	return c.JSON(http.StatusPaymentRequired, body)
}
