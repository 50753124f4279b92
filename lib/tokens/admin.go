package tokens

import (
	"crypto/subtle"
	"net/http"

	"github.com/getAlby/lnpaywall/lib/responses"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminTokenMiddleware expects "Authorization: Bearer <token>". Without a
// configured token every request is refused.
func AdminTokenMiddleware(token string) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(auth string, c echo.Context) (bool, error) {
			if token == "" {
				return false, nil
			}
			return subtle.ConstantTimeCompare([]byte(auth), []byte(token)) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
		},
	})
}
