package middleware

import (
	"github.com/gin-gonic/gin"

	"travelcms/services/logger"
)

// ErrorLogger logs the errors handlers attached with c.Error.
func ErrorLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		for _, e := range c.Errors {
			log.Error("%s %s [%s]: %v", c.Request.Method, c.FullPath(), c.GetString("requestID"), e.Err)
		}
	}
}
