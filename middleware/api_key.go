package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/ayala-manuel/rag-containers/types"
	"github.com/gin-gonic/gin"
)

// APIKeyAuth guards a route group with a static shared secret. The
// Authorization header must equal the configured key; anything else is
// rejected before any core operation runs.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("Authorization")
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
				Status:  types.StatusError,
				Message: "Authorization header is required",
			})
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
				Status:  types.StatusError,
				Message: "Invalid API key",
			})
			return
		}
		c.Next()
	}
}
