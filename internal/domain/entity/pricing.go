package entity

import (
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// DiscountConfig is the cart-level discount the pricing engine applies
type DiscountConfig struct {
	Amount decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	Kind   enum.DiscountKind `gorm:"not null;default:0" json:"kind"`
}

// PricedCart is the derived price breakdown of a set of lines. It is
// recomputed from lines and discount on every read and never edited.
type PricedCart struct {
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxableSubtotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"taxable_subtotal"`
	TaxRate         decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"tax_rate"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount_amount"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
}

// PreDiscountTotal is subtotal plus tax
func (p PricedCart) PreDiscountTotal() decimal.Decimal {
	return p.Subtotal.Add(p.TaxAmount)
}
