// Package invoicing freezes a priced cart and a payment decision into an
// Invoice and performs the one permitted later transition, the refund.
package invoicing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/pkg/apperror"
)

// NumberSource hands out invoice numbers. Numbers must never repeat or go
// backward within a branch.
type NumberSource interface {
	NextNumber(ctx context.Context, branchID uuid.UUID) (string, error)
}

// CreateInput is everything an invoice is frozen from
type CreateInput struct {
	BranchID    uuid.UUID
	Lines       []entity.LineItem
	Discount    entity.DiscountConfig
	Priced      entity.PricedCart
	Payment     entity.PaymentDecision
	OrderType   enum.OrderType
	TableNumber *string
	Cashier     entity.Cashier
}

// Factory creates invoices
type Factory struct {
	numbers NumberSource
	now     func() time.Time
}

// Option configures a Factory
type Option func(*Factory)

// WithClock replaces the creation timestamp source
func WithClock(now func() time.Time) Option {
	return func(f *Factory) {
		f.now = now
	}
}

// NewFactory creates a factory drawing numbers from numbers
func NewFactory(numbers NumberSource, opts ...Option) *Factory {
	f := &Factory{
		numbers: numbers,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Validate checks the business rules that must hold before a number is drawn
func Validate(in CreateInput) error {
	if len(in.Lines) == 0 {
		return apperror.ErrEmptyCart
	}
	if !in.OrderType.Valid() {
		return apperror.NewBadRequestError(fmt.Sprintf("Unknown order type %d", int(in.OrderType)))
	}
	if in.OrderType == enum.OrderTypeDineIn && (in.TableNumber == nil || strings.TrimSpace(*in.TableNumber) == "") {
		return apperror.ErrMissingTableNumber
	}
	return nil
}

// Create builds a Completed invoice. It neither persists the invoice nor
// clears the originating cart.
func (f *Factory) Create(ctx context.Context, in CreateInput) (*entity.Invoice, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	number, err := f.numbers.NextNumber(ctx, in.BranchID)
	if err != nil {
		return nil, fmt.Errorf("draw invoice number: %w", err)
	}

	lines := make([]entity.InvoiceLine, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = entity.FreezeLine(i+1, l)
	}

	var table *string
	if in.OrderType == enum.OrderTypeDineIn {
		t := strings.TrimSpace(*in.TableNumber)
		table = &t
	}

	inv := &entity.Invoice{
		ID:               uuid.New(),
		BranchID:         in.BranchID,
		Number:           number,
		CreatedAt:        f.now().UTC(),
		Lines:            lines,
		Totals:           in.Priced,
		Discount:         in.Discount,
		PaymentMethod:    in.Payment.Method,
		PaidAmount:       in.Payment.PaidAmount,
		ChangeAmount:     in.Payment.ChangeAmount,
		ReceiptReference: in.Payment.ReceiptReference,
		OrderType:        in.OrderType,
		TableNumber:      table,
		CashierID:        in.Cashier.ID,
		CashierName:      in.Cashier.Name,
		Status:           enum.InvoiceStatusCompleted,
	}
	if in.Payment.Customer != nil {
		inv.Customer = *in.Payment.Customer
	}
	for i := range inv.Lines {
		inv.Lines[i].InvoiceID = inv.ID
	}

	return inv, nil
}

// Refund returns a refunded copy of inv. Lines and totals are untouched.
func (f *Factory) Refund(inv *entity.Invoice) (*entity.Invoice, error) {
	if inv.IsRefunded() {
		return nil, apperror.ErrAlreadyRefunded
	}

	out := inv.Clone()
	at := f.now().UTC()
	out.Status = enum.InvoiceStatusRefunded
	out.RefundedAt = &at
	return out, nil
}
