package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/sangkips/restopos-api/pkg/utils"
)

const dateLayout = "2006-01-02"

// bindJSON binds the body and writes a 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// uuidParam parses a path parameter and writes a 400 on failure
func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label)
		return uuid.Nil, false
	}
	return id, true
}

func invalidQuery(field, msg string) error {
	return apperror.NewValidationError([]apperror.FieldError{{Field: field, Message: msg}})
}

func parsePaymentMethod(field, s string) (*enum.PaymentMethod, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	m, err := enum.ParsePaymentMethod(strings.TrimSpace(s))
	if err != nil {
		return nil, invalidQuery(field, "must be one of Cash, Card, Transfer")
	}
	return &m, nil
}

func parseOrderType(field, s string) (*enum.OrderType, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := enum.ParseOrderType(strings.TrimSpace(s))
	if err != nil {
		return nil, invalidQuery(field, "must be Takeaway or DineIn")
	}
	return &t, nil
}

func parseInvoiceStatus(field, s string) (*enum.InvoiceStatus, error) {
	switch strings.TrimSpace(s) {
	case "":
		return nil, nil
	case enum.InvoiceStatusCompleted.String():
		st := enum.InvoiceStatusCompleted
		return &st, nil
	case enum.InvoiceStatusRefunded.String():
		st := enum.InvoiceStatusRefunded
		return &st, nil
	}
	return nil, invalidQuery(field, "must be Completed or Refunded")
}

func parseCashierID(field, s string) (*uuid.UUID, error) {
	id, err := utils.ParseOptionalUUID(s)
	if err != nil {
		return nil, invalidQuery(field, "must be a UUID")
	}
	return id, nil
}

// parseDay parses YYYY-MM-DD as midnight in loc. endOfRange moves to the
// following midnight so the day itself is included in a [from, to) range.
func parseDay(field, s string, loc *time.Location, endOfRange bool) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return nil, invalidQuery(field, fmt.Sprintf("must be a date in %s format", dateLayout))
	}
	if endOfRange {
		day = day.AddDate(0, 0, 1)
	}
	return &day, nil
}
