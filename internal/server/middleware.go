package server

import (
	"time"

	"marketgo/internal/marketerrors"
	"marketgo/services/market/handler"
	"marketgo/services/market/helpers"
	"marketgo/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// AuthRequiredMiddleware resolves the bearer token to a signed-in user
// and aborts with 401 when there is none
func AuthRequiredMiddleware(auth handler.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := auth.CurrentUser(handler.BearerToken(c))
		if !ok {
			helpers.RespondError(c, "AuthRequiredMiddleware", marketerrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		c.Set("user_id", profile.UserID)
		c.Set("username", profile.Username)
		c.Next()
	}
}
