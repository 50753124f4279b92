package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "resource not found",
	HttpStatusCode: 404,
}

var InvalidPaymentRequestError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invalid payment request",
	HttpStatusCode: 400,
}

var PaymentMismatchError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "payment request belongs to another resource",
	HttpStatusCode: 400,
}

var ResourceFreeError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "resource is free, no invoice needed",
	HttpStatusCode: 400,
}

var ServiceUnavailableError = ErrorResponse{
	Error:          true,
	Code:           7,
	Message:        "Payment backend unavailable. Please try again later",
	HttpStatusCode: 503,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("RequestID", c.Response().Header().Get(echo.HeaderXRequestID))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}

// client mistakes are not worth an alert
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	switch msg := he.Message.(type) {
	case ErrorResponse:
		return msg.HttpStatusCode >= http.StatusInternalServerError
	case *ErrorResponse:
		return msg.HttpStatusCode >= http.StatusInternalServerError
	case echo.Map:
		if code, ok := msg["code"].(int); ok && code == BadAuthError.Code {
			return false
		}
	}
	return he.Code != http.StatusNotFound && he.Code != http.StatusUnauthorized
}
