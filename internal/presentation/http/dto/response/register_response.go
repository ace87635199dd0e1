package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/application/service"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// PaymentResponse is the payment in progress on a register
type PaymentResponse struct {
	State            payment.State        `json:"state"`
	Total            decimal.Decimal      `json:"total"`
	Method           *enum.PaymentMethod  `json:"method,omitempty"`
	PaidAmount       decimal.Decimal      `json:"paid_amount"`
	ChangeDue        decimal.Decimal      `json:"change_due"`
	ReceiptReference string               `json:"receipt_reference,omitempty"`
	Customer         *entity.CustomerInfo `json:"customer,omitempty"`
}

// RegisterResponse is a register's cart, totals and payment
type RegisterResponse struct {
	BranchID    uuid.UUID             `json:"branch_id"`
	RegisterID  string                `json:"register_id"`
	Lines       []entity.LineItem     `json:"lines"`
	Discount    entity.DiscountConfig `json:"discount"`
	Totals      entity.PricedCart     `json:"totals"`
	ItemCount   int                   `json:"item_count"`
	OrderType   enum.OrderType        `json:"order_type"`
	TableNumber *string               `json:"table_number,omitempty"`
	Payment     PaymentResponse       `json:"payment"`
	UpdatedAt   *time.Time            `json:"updated_at,omitempty"`
}

// CheckoutResponse is the committed invoice and the register's next order
type CheckoutResponse struct {
	Invoice  *entity.Invoice  `json:"invoice"`
	Register RegisterResponse `json:"register"`
}

// NewRegisterResponse maps a register view
func NewRegisterResponse(v *service.RegisterView) RegisterResponse {
	sess := v.Session
	lines := sess.Cart.Lines
	if lines == nil {
		lines = []entity.LineItem{}
	}

	pay := sess.Payment
	out := RegisterResponse{
		BranchID:    sess.BranchID,
		RegisterID:  sess.RegisterID,
		Lines:       lines,
		Discount:    sess.Cart.Discount,
		Totals:      v.Priced,
		ItemCount:   sess.Cart.ItemCount(),
		OrderType:   sess.OrderType,
		TableNumber: sess.TableNumber,
		Payment: PaymentResponse{
			State:            pay.State,
			Total:            pay.Total,
			PaidAmount:       pay.PaidAmount,
			ChangeDue:        entity.ChangeFor(pay.PaidAmount, pay.Total),
			ReceiptReference: pay.ReceiptReference,
			Customer:         pay.Customer,
		},
	}
	switch pay.State {
	case payment.StateIdle, payment.StateSelectingMethod:
	default:
		method := pay.Method
		out.Payment.Method = &method
	}
	if !sess.UpdatedAt.IsZero() {
		at := sess.UpdatedAt
		out.UpdatedAt = &at
	}
	return out
}

// NewCheckoutResponse maps a checkout result
func NewCheckoutResponse(r *service.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		Invoice:  r.Invoice,
		Register: NewRegisterResponse(&r.Next),
	}
}
