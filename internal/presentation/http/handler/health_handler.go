package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness and database reachability
type HealthHandler struct {
	db      *gorm.DB
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	status := gin.H{
		"status":  "healthy",
		"version": h.version,
	}

	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		response.Success(c, 503, "Service degraded", status)
		return
	}

	status["database"] = "ok"
	response.OK(c, "Service is healthy", status)
}
