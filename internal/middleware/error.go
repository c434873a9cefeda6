package middleware

import (
	"github.com/Antieqkers/antieq-wisma-bill/pkg/logger"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/response"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers panics into a generic server error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				appLogger := logger.GetLogger()
				appLogger.Errorf("Panic recovered: %v", err)
				response.ServerError(c, "Terjadi kesalahan pada server")
				c.Abort()
			}
		}()

		c.Next()
	}
}
