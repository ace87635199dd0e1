package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cashier identifies who rang up an invoice
type Cashier struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Invoice is the immutable record of a completed sale. Numeric fields are
// authoritative once stored; only Status may later move to Refunded.
type Invoice struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BranchID         uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_branch_number" json:"branch_id"`
	Number           string             `gorm:"size:64;not null;uniqueIndex:idx_invoices_branch_number" json:"number"`
	CreatedAt        time.Time          `gorm:"not null;index" json:"created_at"`
	Lines            []InvoiceLine      `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"lines"`
	Totals           PricedCart         `gorm:"embedded" json:"totals"`
	Discount         DiscountConfig     `gorm:"embedded;embeddedPrefix:cart_discount_" json:"discount"`
	PaymentMethod    enum.PaymentMethod `gorm:"not null;index" json:"payment_method"`
	PaidAmount       decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"paid_amount"`
	ChangeAmount     decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"change_amount"`
	ReceiptReference string             `gorm:"size:128" json:"receipt_reference,omitempty"`
	Customer         CustomerInfo       `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	OrderType        enum.OrderType     `gorm:"not null;index" json:"order_type"`
	TableNumber      *string            `gorm:"size:32" json:"table_number,omitempty"`
	CashierID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	CashierName      string             `gorm:"size:255" json:"cashier_name"`
	Status           enum.InvoiceStatus `gorm:"not null;default:0;index" json:"status"`
	RefundedAt       *time.Time         `json:"refunded_at,omitempty"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// Payment rebuilds the payment decision frozen into the invoice
func (i *Invoice) Payment() PaymentDecision {
	d := PaymentDecision{
		Method:           i.PaymentMethod,
		PaidAmount:       i.PaidAmount,
		ChangeAmount:     i.ChangeAmount,
		ReceiptReference: i.ReceiptReference,
	}
	if !i.Customer.IsZero() {
		c := i.Customer
		d.Customer = &c
	}
	return d
}

// IsRefunded reports whether the invoice reached its terminal state
func (i *Invoice) IsRefunded() bool {
	return i.Status == enum.InvoiceStatusRefunded
}

// Clone returns a deep copy; the lines slice and pointer fields are not shared
func (i *Invoice) Clone() *Invoice {
	out := *i
	if i.Lines != nil {
		out.Lines = make([]InvoiceLine, len(i.Lines))
		copy(out.Lines, i.Lines)
	}
	if i.TableNumber != nil {
		table := *i.TableNumber
		out.TableNumber = &table
	}
	if i.RefundedAt != nil {
		at := *i.RefundedAt
		out.RefundedAt = &at
	}
	return &out
}

// InvoiceLine is a line item frozen at invoice creation
type InvoiceLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Position  int             `gorm:"not null" json:"position"`
	LineID    uuid.UUID       `gorm:"type:uuid;not null" json:"line_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	VariantID uuid.UUID       `gorm:"type:uuid" json:"variant_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	NameAlt   string          `gorm:"size:255" json:"name_alt,omitempty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Size      enum.ItemSize   `gorm:"size:16;not null" json:"size"`
	Taxable   bool            `gorm:"not null" json:"taxable"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
}

// BeforeCreate generates a UUID before creating a new invoice line
func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLine model
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

// FreezeLine copies a cart line into its invoice form
func FreezeLine(position int, l LineItem) InvoiceLine {
	return InvoiceLine{
		Position:  position,
		LineID:    l.ID,
		ProductID: l.ProductID,
		VariantID: l.VariantID,
		Name:      l.Name,
		NameAlt:   l.NameAlt,
		UnitPrice: l.UnitPrice,
		Quantity:  l.Quantity,
		Size:      l.Size.Normalize(),
		Taxable:   l.Taxable,
		LineTotal: l.Amount(),
	}
}

// InvoiceCounter backs sequential invoice numbering per branch
type InvoiceCounter struct {
	BranchID  uuid.UUID `gorm:"type:uuid;primary_key"`
	LastValue int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName returns the table name for the InvoiceCounter model
func (InvoiceCounter) TableName() string {
	return "invoice_counters"
}
