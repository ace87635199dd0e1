package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/application/service"
	"github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices (supports both page-based and cursor-based pagination)
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	status, err := parseInvoiceStatus("status", filter.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	cashierID, err := parseCashierID("cashier_id", filter.CashierID)
	if err != nil {
		response.Error(c, err)
		return
	}
	startDate, err := parseDay("start_date", filter.StartDate, time.UTC, false)
	if err != nil {
		response.Error(c, err)
		return
	}
	endDate, err := parseDay("end_date", filter.EndDate, time.UTC, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Check if cursor-based pagination is requested
	if filter.Cursor != "" || filter.Limit > 0 {
		result, err := h.invoiceService.ListInvoicesWithCursor(c.Request.Context(), &repository.InvoiceCursorFilterParams{
			Cursor:    &pagination.CursorParams{Cursor: filter.Cursor, Limit: filter.Limit},
			Status:    status,
			CashierID: cashierID,
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.SuccessWithCursor(c, 200, "Invoices retrieved successfully", result)
		return
	}

	method, err := parsePaymentMethod("payment_method", filter.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}
	orderType, err := parseOrderType("order_type", filter.OrderType)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:        filter.Search,
		Status:        status,
		PaymentMethod: method,
		OrderType:     orderType,
		CashierID:     cashierID,
		StartDate:     startDate,
		EndDate:       endDate,
		SortOrder:     filter.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "invoice ID")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// GetByNumber handles looking up an invoice by its printed number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoiceByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Refund handles refunding an invoice
func (h *InvoiceHandler) Refund(c *gin.Context) {
	id, ok := uuidParam(c, "id", "invoice ID")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.RefundInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice refunded successfully", invoice)
}
