package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/middleware"
)

// DecodeJSON decodes the request body with dec, stores the result in the
// request context on success, or returns 400 with an error payload.
func DecodeJSON[T any](dec jsonmodel.Decoder[T], opt jsonmodel.ParseOpt) echo.MiddlewareFunc {
	opt = middleware.Resolve(opt)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := middleware.DecodeBody(c.Request(), dec, opt)
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetDecoded fetches the decoded T from echo.Context.
func GetDecoded[T any](c echo.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request().Context())
}
