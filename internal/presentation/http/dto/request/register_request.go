package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a manually priced line
type AddItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	VariantID *uuid.UUID       `json:"variant_id"`
	Name      string           `json:"name" binding:"required,max=255"`
	NameAlt   string           `json:"name_alt" binding:"omitempty,max=255"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"required"`
	Size      enum.ItemSize    `json:"size"`
	Taxable   *bool            `json:"taxable"`
	Quantity  int              `json:"quantity"`
}

// AddProductRequest adds a catalog product
type AddProductRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
	Quantity  int        `json:"quantity"`
}

// SetQuantityRequest sets a line quantity; values below one become one
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ChangeQuantityRequest adds a signed delta to a line quantity
type ChangeQuantityRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// DiscountRequest replaces the cart discount
type DiscountRequest struct {
	Amount *decimal.Decimal   `json:"amount" binding:"required"`
	Kind   *enum.DiscountKind `json:"kind" binding:"required"`
}

// OrderTypeRequest sets how the order is served
type OrderTypeRequest struct {
	OrderType   *enum.OrderType `json:"order_type" binding:"required"`
	TableNumber *string         `json:"table_number" binding:"omitempty,max=32"`
}

// SelectMethodRequest picks the payment method
type SelectMethodRequest struct {
	Method *enum.PaymentMethod `json:"method" binding:"required"`
}

// PaidAmountRequest confirms the cash handed over; omit for the exact total
type PaidAmountRequest struct {
	PaidAmount *decimal.Decimal `json:"paid_amount"`
}

// TransferReceiptRequest confirms a bank transfer
type TransferReceiptRequest struct {
	ReceiptReference string `json:"receipt_reference" binding:"required,max=128"`
}

// CustomerRequest is the optional buyer block of a tax invoice
type CustomerRequest struct {
	Name               string `json:"name" binding:"omitempty,max=255"`
	TaxNumber          string `json:"tax_number" binding:"omitempty,max=64"`
	CommercialRegister string `json:"commercial_register" binding:"omitempty,max=64"`
	Address            string `json:"address" binding:"omitempty,max=512"`
}
