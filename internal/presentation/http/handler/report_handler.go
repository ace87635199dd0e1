package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/application/service"
	"github.com/sangkips/restopos-api/internal/domain/reporting"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Sales handles the sales summary. Refunds are included as negative
// contributions unless include_refunded=false.
func (h *ReportHandler) Sales(c *gin.Context) {
	var req request.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	loc := time.UTC
	if tz := strings.TrimSpace(req.TZ); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			response.Error(c, invalidQuery("tz", "unknown time zone"))
			return
		}
		loc = l
	}

	filter := reporting.Filter{
		IncludeRefunded: true,
		Location:        loc,
	}
	if req.IncludeRefunded != nil {
		filter.IncludeRefunded = *req.IncludeRefunded
	}

	var err error
	if filter.From, err = parseDay("from", req.From, loc, false); err != nil {
		response.Error(c, err)
		return
	}
	if filter.To, err = parseDay("to", req.To, loc, true); err != nil {
		response.Error(c, err)
		return
	}
	if filter.PaymentMethod, err = parsePaymentMethod("payment_method", req.PaymentMethod); err != nil {
		response.Error(c, err)
		return
	}
	if filter.OrderType, err = parseOrderType("order_type", req.OrderType); err != nil {
		response.Error(c, err)
		return
	}
	if filter.CashierID, err = parseCashierID("cashier_id", req.CashierID); err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.reportService.Sales(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report generated successfully", report)
}
