package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/utils"
	"github.com/sirupsen/logrus"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(RequestIDKey),
		}
		if id, ok := utils.CurrentIdentity(c); ok {
			fields["user"] = id.Username
		}

		entry := utils.InfoLogger.WithFields(fields)
		if len(c.Errors) > 0 {
			utils.ErrorLogger.WithFields(fields).Error(c.Errors.String())
		}
		entry.Info(path)
	}
}
