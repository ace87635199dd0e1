// Package pricing turns cart lines and a discount into a priced breakdown.
package pricing

import (
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the rounding precision of computed amounts
const CurrencyPlaces int32 = 2

// DefaultTaxRate is the VAT rate applied to taxable lines
var DefaultTaxRate = decimal.RequireFromString("0.15")

var hundred = decimal.NewFromInt(100)

// Price computes the breakdown of lines under discount and taxRate.
// The discount is taken from the tax-inclusive amount and clamped to it.
func Price(lines []entity.LineItem, discount entity.DiscountConfig, taxRate decimal.Decimal) entity.PricedCart {
	subtotal := decimal.Zero
	taxable := decimal.Zero
	for _, l := range lines {
		amount := l.Amount()
		subtotal = subtotal.Add(amount)
		if l.Taxable {
			taxable = taxable.Add(amount)
		}
	}

	tax := taxable.Mul(taxRate).Round(CurrencyPlaces)
	pre := subtotal.Add(tax)

	// an unknown kind discounts nothing
	discountAmount := decimal.Zero
	switch discount.Kind {
	case enum.DiscountKindPercentage:
		discountAmount = pre.Mul(discount.Amount).Div(hundred)
	case enum.DiscountKindFixed:
		discountAmount = discount.Amount
	}
	discountAmount = clamp(discountAmount.Round(CurrencyPlaces), decimal.Zero, pre)

	total := pre.Sub(discountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return entity.PricedCart{
		Subtotal:        subtotal,
		TaxableSubtotal: taxable,
		TaxRate:         taxRate,
		TaxAmount:       tax,
		DiscountAmount:  discountAmount,
		Total:           total,
	}
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}

// Engine prices carts at a configured tax rate
type Engine struct {
	taxRate decimal.Decimal
}

// NewEngine creates an engine; a negative rate falls back to DefaultTaxRate
func NewEngine(taxRate decimal.Decimal) *Engine {
	if taxRate.IsNegative() {
		taxRate = DefaultTaxRate
	}
	return &Engine{taxRate: taxRate}
}

// TaxRate returns the configured rate
func (e *Engine) TaxRate() decimal.Decimal {
	return e.taxRate
}

// Price prices lines at the engine's rate
func (e *Engine) Price(lines []entity.LineItem, discount entity.DiscountConfig) entity.PricedCart {
	return Price(lines, discount, e.taxRate)
}
