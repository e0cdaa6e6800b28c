package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/middleware"
)

// DecodeJSON decodes the request body with dec under opt (or
// middleware.DefaultParseOpt when zero), stores the result in the request
// context, and aborts with 400 and an error payload on failure.
func DecodeJSON[T any](dec jsonmodel.Decoder[T], opt jsonmodel.ParseOpt) gin.HandlerFunc {
	opt = middleware.Resolve(opt)
	return func(c *gin.Context) {
		v, err := middleware.DecodeBody(c.Request, dec, opt)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), v))
		c.Next()
	}
}

// GetDecoded fetches the decoded T from gin.Context.
func GetDecoded[T any](c *gin.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request.Context())
}
