package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/application/service"
	"github.com/sangkips/restopos-api/internal/domain/cart"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos-api/internal/presentation/http/middleware"
	"github.com/sangkips/restopos-api/pkg/utils"
)

// RegisterHandler handles cart and payment requests of a register
type RegisterHandler struct {
	registerService *service.RegisterService
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(registerService *service.RegisterService) *RegisterHandler {
	return &RegisterHandler{registerService: registerService}
}

func (h *RegisterHandler) respond(c *gin.Context, message string, view *service.RegisterView, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, response.NewRegisterResponse(view))
}

// GetCart handles getting the register's cart and totals
func (h *RegisterHandler) GetCart(c *gin.Context) {
	view, err := h.registerService.GetCart(c.Request.Context(), c.Param("id"))
	h.respond(c, "Cart retrieved successfully", view, err)
}

// AddItem handles adding a manually priced line
func (h *RegisterHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.registerService.AddItem(c.Request.Context(), c.Param("id"), cart.AddItemInput{
		ProductID: req.ProductID,
		VariantID: utils.OrNoVariant(req.VariantID),
		UnitPrice: *req.UnitPrice,
		Size:      req.Size,
		Taxable:   req.Taxable,
		Name:      req.Name,
		NameAlt:   req.NameAlt,
		Quantity:  req.Quantity,
	})
	h.respond(c, "Item added", view, err)
}

// AddProduct handles adding a catalog product
func (h *RegisterHandler) AddProduct(c *gin.Context) {
	var req request.AddProductRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.registerService.AddProduct(c.Request.Context(), c.Param("id"),
		req.ProductID, utils.OrNoVariant(req.VariantID), req.Quantity)
	h.respond(c, "Product added", view, err)
}

// SetQuantity handles setting a line quantity
func (h *RegisterHandler) SetQuantity(c *gin.Context) {
	lineID, ok := uuidParam(c, "line_id", "line ID")
	if !ok {
		return
	}
	var req request.SetQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.registerService.SetQuantity(c.Request.Context(), c.Param("id"), lineID, *req.Quantity)
	h.respond(c, "Quantity updated", view, err)
}

// ChangeQuantity handles incrementing or decrementing a line
func (h *RegisterHandler) ChangeQuantity(c *gin.Context) {
	lineID, ok := uuidParam(c, "line_id", "line ID")
	if !ok {
		return
	}
	var req request.ChangeQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.registerService.ChangeQuantity(c.Request.Context(), c.Param("id"), lineID, *req.Delta)
	h.respond(c, "Quantity updated", view, err)
}

// RemoveItem handles removing a line
func (h *RegisterHandler) RemoveItem(c *gin.Context) {
	lineID, ok := uuidParam(c, "line_id", "line ID")
	if !ok {
		return
	}

	view, err := h.registerService.RemoveItem(c.Request.Context(), c.Param("id"), lineID)
	h.respond(c, "Item removed", view, err)
}

// SetDiscount handles replacing the cart discount
func (h *RegisterHandler) SetDiscount(c *gin.Context) {
	var req request.DiscountRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.registerService.SetDiscount(c.Request.Context(), c.Param("id"), entity.DiscountConfig{
		Amount: *req.Amount,
		Kind:   *req.Kind,
	})
	h.respond(c, "Discount updated", view, err)
}

// SetOrderType handles choosing takeaway or dine-in
func (h *RegisterHandler) SetOrderType(c *gin.Context) {
	var req request.OrderTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.registerService.SetOrderType(c.Request.Context(), c.Param("id"), *req.OrderType, req.TableNumber)
	h.respond(c, "Order type updated", view, err)
}

// Clear handles emptying the cart
func (h *RegisterHandler) Clear(c *gin.Context) {
	view, err := h.registerService.Clear(c.Request.Context(), c.Param("id"))
	h.respond(c, "Cart cleared", view, err)
}

// BeginPayment handles opening payment for the cart total
func (h *RegisterHandler) BeginPayment(c *gin.Context) {
	view, err := h.registerService.BeginPayment(c.Request.Context(), c.Param("id"))
	h.respond(c, "Payment started", view, err)
}

// SelectMethod handles choosing the payment method
func (h *RegisterHandler) SelectMethod(c *gin.Context) {
	var req request.SelectMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.registerService.SelectMethod(c.Request.Context(), c.Param("id"), *req.Method)
	h.respond(c, "Payment method selected", view, err)
}

// ConfirmPaidAmount handles confirming the cash handed over
func (h *RegisterHandler) ConfirmPaidAmount(c *gin.Context) {
	var req request.PaidAmountRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	view, err := h.registerService.ConfirmPaidAmount(c.Request.Context(), c.Param("id"), req.PaidAmount)
	h.respond(c, "Paid amount confirmed", view, err)
}

// ConfirmTransferReceipt handles confirming a bank transfer
func (h *RegisterHandler) ConfirmTransferReceipt(c *gin.Context) {
	var req request.TransferReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.registerService.ConfirmTransferReceipt(c.Request.Context(), c.Param("id"), req.ReceiptReference)
	h.respond(c, "Transfer receipt confirmed", view, err)
}

// SetCustomer handles attaching buyer details to the payment
func (h *RegisterHandler) SetCustomer(c *gin.Context) {
	var req request.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.registerService.SetCustomer(c.Request.Context(), c.Param("id"), entity.CustomerInfo{
		Name:               req.Name,
		TaxNumber:          req.TaxNumber,
		CommercialRegister: req.CommercialRegister,
		Address:            req.Address,
	})
	h.respond(c, "Customer updated", view, err)
}

// CancelPayment handles abandoning the open payment
func (h *RegisterHandler) CancelPayment(c *gin.Context) {
	view, err := h.registerService.CancelPayment(c.Request.Context(), c.Param("id"))
	h.respond(c, "Payment cancelled", view, err)
}

// Checkout handles committing the sale into an invoice
func (h *RegisterHandler) Checkout(c *gin.Context) {
	result, err := h.registerService.Checkout(c.Request.Context(), c.Param("id"), middleware.GetCashier(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", response.NewCheckoutResponse(result))
}
