package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(price string, qty int, taxable bool) entity.LineItem {
	return entity.LineItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
		Taxable:   taxable,
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestPriceTaxableCart(t *testing.T) {
	p := Price([]entity.LineItem{line("10", 2, true)}, entity.DiscountConfig{}, DefaultTaxRate)

	assertAmount(t, "20", p.Subtotal, "subtotal")
	assertAmount(t, "20", p.TaxableSubtotal, "taxable subtotal")
	assertAmount(t, "3.00", p.TaxAmount, "tax")
	assertAmount(t, "0", p.DiscountAmount, "discount")
	assertAmount(t, "23.00", p.Total, "total")
}

func TestPricePercentageDiscountIsPostTax(t *testing.T) {
	discount := entity.DiscountConfig{Amount: d("10"), Kind: enum.DiscountKindPercentage}

	p := Price([]entity.LineItem{line("10", 2, true)}, discount, DefaultTaxRate)

	assertAmount(t, "23.00", p.PreDiscountTotal(), "pre-discount total")
	assertAmount(t, "2.30", p.DiscountAmount, "discount")
	assertAmount(t, "20.70", p.Total, "total")
}

func TestPriceTaxExemptLine(t *testing.T) {
	p := Price([]entity.LineItem{line("50", 1, false)}, entity.DiscountConfig{}, DefaultTaxRate)

	assertAmount(t, "0", p.TaxableSubtotal, "taxable subtotal")
	assertAmount(t, "0", p.TaxAmount, "tax")
	assertAmount(t, "50.00", p.Total, "total")
}

func TestPriceMixedLines(t *testing.T) {
	lines := []entity.LineItem{line("10", 2, true), line("5.50", 2, false)}

	p := Price(lines, entity.DiscountConfig{Amount: d("1"), Kind: enum.DiscountKindFixed}, DefaultTaxRate)

	assertAmount(t, "31", p.Subtotal, "subtotal")
	assertAmount(t, "20", p.TaxableSubtotal, "taxable subtotal")
	assertAmount(t, "3", p.TaxAmount, "tax")
	assertAmount(t, "1", p.DiscountAmount, "discount")
	assertAmount(t, "33", p.Total, "total")
}

func TestPriceDiscountIsClamped(t *testing.T) {
	lines := []entity.LineItem{line("10", 2, true)}

	cases := []entity.DiscountConfig{
		{Amount: d("0"), Kind: enum.DiscountKindFixed},
		{Amount: d("22.99"), Kind: enum.DiscountKindFixed},
		{Amount: d("500"), Kind: enum.DiscountKindFixed},
		{Amount: d("100"), Kind: enum.DiscountKindPercentage},
		{Amount: d("250"), Kind: enum.DiscountKindPercentage},
		{Amount: d("-5"), Kind: enum.DiscountKindFixed},
		{Amount: d("-5"), Kind: enum.DiscountKindPercentage},
	}

	for _, dc := range cases {
		p := Price(lines, dc, DefaultTaxRate)
		pre := p.Subtotal.Add(p.TaxAmount)

		assert.False(t, p.DiscountAmount.IsNegative(), "discount %v", dc)
		assert.True(t, p.DiscountAmount.LessThanOrEqual(pre), "discount %v", dc)
		assert.False(t, p.Total.IsNegative(), "discount %v", dc)
	}

	over := Price(lines, entity.DiscountConfig{Amount: d("500"), Kind: enum.DiscountKindFixed}, DefaultTaxRate)
	assertAmount(t, "23", over.DiscountAmount, "clamped discount")
	assertAmount(t, "0", over.Total, "clamped total")
}

func TestPriceUnknownDiscountKindDiscountsNothing(t *testing.T) {
	lines := []entity.LineItem{line("10", 2, true)}

	p := Price(lines, entity.DiscountConfig{Amount: d("10"), Kind: enum.DiscountKind(7)}, DefaultTaxRate)

	assertAmount(t, "0", p.DiscountAmount, "discount")
	assertAmount(t, "23", p.Total, "total")
}

func TestPriceRoundsTaxToCurrency(t *testing.T) {
	p := Price([]entity.LineItem{line("0.10", 1, true)}, entity.DiscountConfig{Kind: enum.DiscountKindFixed}, DefaultTaxRate)
	assertAmount(t, "0.02", p.TaxAmount, "0.015 rounds half up")
	assertAmount(t, "0.12", p.Total, "total")

	p = Price([]entity.LineItem{line("0.03", 1, true)}, entity.DiscountConfig{Kind: enum.DiscountKindFixed}, DefaultTaxRate)
	assertAmount(t, "0", p.TaxAmount, "0.0045 rounds down")
	assertAmount(t, "0.03", p.Total, "total")
}

func TestPriceIsDeterministic(t *testing.T) {
	lines := []entity.LineItem{line("3.33", 3, true), line("1.10", 7, false)}
	discount := entity.DiscountConfig{Amount: d("12.5"), Kind: enum.DiscountKindPercentage}

	first := Price(lines, discount, DefaultTaxRate)
	for i := 0; i < 10; i++ {
		again := Price(lines, discount, DefaultTaxRate)
		assert.True(t, first.Total.Equal(again.Total))
		assert.True(t, first.TaxAmount.Equal(again.TaxAmount))
		assert.True(t, first.DiscountAmount.Equal(again.DiscountAmount))
	}
}

func TestPriceEmptyCart(t *testing.T) {
	p := Price(nil, entity.DiscountConfig{Amount: d("10"), Kind: enum.DiscountKindFixed}, DefaultTaxRate)

	assert.True(t, p.Total.IsZero())
	assert.True(t, p.DiscountAmount.IsZero())
}

func TestEngineUsesConfiguredRate(t *testing.T) {
	e := NewEngine(d("0.05"))
	p := e.Price([]entity.LineItem{line("100", 1, true)}, entity.DiscountConfig{})

	assertAmount(t, "5", p.TaxAmount, "tax")
	assertAmount(t, "0.05", p.TaxRate, "rate")

	fallback := NewEngine(d("-1"))
	assert.True(t, fallback.TaxRate().Equal(DefaultTaxRate))
}
