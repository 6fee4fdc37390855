package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request with the request id set by RequestID.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		marker := "✅"
		switch {
		case status >= 500:
			marker = "❌"
		case status >= 400:
			marker = "⚠️"
		}
		log.Printf("%s [%s] %s %s %d %s %s", marker, c.GetString(RequestIDKey),
			c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
	}
}
