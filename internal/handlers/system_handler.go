package handlers

import (
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/database"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/response"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports service and database health.
func HealthCheck(c *gin.Context) {
	status := gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	if err := database.Ping(); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
	} else {
		status["database"] = "ok"
	}

	response.Success(c, status)
}

// Ping is a bare liveness probe.
func Ping(c *gin.Context) {
	response.Success(c, gin.H{"message": "pong"})
}
