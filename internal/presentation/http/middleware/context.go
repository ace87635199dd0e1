package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
)

// Gin context keys set by AuthMiddleware
const (
	CashierIDKey   = "cashier_id"
	CashierNameKey = "cashier_name"
	BranchIDKey    = "branch_id"
	RolesKey       = "roles"
	RequestIDKey   = "request_id"
)

// RequireBranch ensures a valid branch context exists
func RequireBranch() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetBranchID(c) == uuid.Nil {
			response.BadRequest(c, "Branch context required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetBranchID retrieves the branch ID from gin context
func GetBranchID(c *gin.Context) uuid.UUID {
	return uuidFrom(c, BranchIDKey)
}

// GetCashierID retrieves the cashier ID from gin context
func GetCashierID(c *gin.Context) uuid.UUID {
	return uuidFrom(c, CashierIDKey)
}

// GetCashier returns the authenticated cashier
func GetCashier(c *gin.Context) entity.Cashier {
	return entity.Cashier{
		ID:   GetCashierID(c),
		Name: c.GetString(CashierNameKey),
	}
}

func uuidFrom(c *gin.Context, key string) uuid.UUID {
	v, exists := c.Get(key)
	if !exists {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
