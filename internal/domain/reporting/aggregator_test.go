package reporting

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day1    = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	day2    = time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)
	alice   = uuid.MustParse("00000000-0000-0000-0000-00000000a11c")
	bob     = uuid.MustParse("00000000-0000-0000-0000-000000000b0b")
	pizza   = uuid.MustParse("00000000-0000-0000-0000-0000000000f1")
	cola    = uuid.MustParse("00000000-0000-0000-0000-0000000000f2")
	falafel = uuid.MustParse("00000000-0000-0000-0000-0000000000f3")
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func invoice(total string, method enum.PaymentMethod, status enum.InvoiceStatus) *entity.Invoice {
	return &entity.Invoice{
		ID:            uuid.New(),
		CreatedAt:     day1,
		Totals:        entity.PricedCart{Total: dec(total), TaxAmount: decimal.Zero, DiscountAmount: decimal.Zero},
		PaymentMethod: method,
		OrderType:     enum.OrderTypeTakeaway,
		CashierID:     alice,
		CashierName:   "Alice",
		Status:        status,
	}
}

func withLine(inv *entity.Invoice, product uuid.UUID, name, price string, qty int) *entity.Invoice {
	inv.Lines = append(inv.Lines, entity.InvoiceLine{
		ProductID: product,
		Name:      name,
		UnitPrice: dec(price),
		Quantity:  qty,
		LineTotal: dec(price).Mul(decimal.NewFromInt(int64(qty))),
	})
	return inv
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s got %s", want, got}, msgAndArgs...)...)
}

func TestRefundIsNegativeContribution(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("100", enum.PaymentMethodCash, enum.InvoiceStatusCompleted),
		invoice("40", enum.PaymentMethodCash, enum.InvoiceStatusRefunded),
	}

	r := Aggregate(invoices, Filter{IncludeRefunded: true})

	assertDec(t, "60", r.TotalSales)
	assertDec(t, "60", r.Method(enum.PaymentMethodCash).Amount)
	assertDec(t, "100", r.Method(enum.PaymentMethodCash).Percentage)
	assert.Equal(t, 0, r.Method(enum.PaymentMethodCash).Count)
	assert.Equal(t, 2, r.InvoiceCount)
	assert.Equal(t, 1, r.RefundCount)
	assertDec(t, "40", r.RefundedAmount)
}

func TestExcludingRefundsDropsThemEntirely(t *testing.T) {
	refunded := withLine(invoice("40", enum.PaymentMethodCard, enum.InvoiceStatusRefunded), pizza, "Pizza", "40", 1)
	invoices := []*entity.Invoice{
		invoice("100", enum.PaymentMethodCash, enum.InvoiceStatusCompleted),
		refunded,
	}

	r := Aggregate(invoices, Filter{})

	assertDec(t, "100", r.TotalSales)
	assert.Equal(t, 1, r.InvoiceCount)
	assert.Equal(t, 0, r.RefundCount)
	assert.Len(t, r.ByPaymentMethod, 1)
	assert.Empty(t, r.TopProducts)
}

func TestRefundNegatesExactlyThatInvoice(t *testing.T) {
	target := invoice("35", enum.PaymentMethodCard, enum.InvoiceStatusCompleted)
	target.OrderType = enum.OrderTypeDineIn
	others := []*entity.Invoice{
		invoice("100", enum.PaymentMethodCash, enum.InvoiceStatusCompleted),
		invoice("12.50", enum.PaymentMethodCard, enum.InvoiceStatusCompleted),
	}

	before := Aggregate(append(others, target), Filter{IncludeRefunded: true})

	refunded := target.Clone()
	refunded.Status = enum.InvoiceStatusRefunded
	after := Aggregate(append(others, refunded), Filter{IncludeRefunded: true})

	twice := dec("70")
	assertDec(t, before.TotalSales.Sub(twice).String(), after.TotalSales)
	assertDec(t,
		before.Method(enum.PaymentMethodCard).Amount.Sub(twice).String(),
		after.Method(enum.PaymentMethodCard).Amount)
	assertDec(t,
		before.Method(enum.PaymentMethodCash).Amount.String(),
		after.Method(enum.PaymentMethodCash).Amount)
	assert.Equal(t, before.OrderType(enum.OrderTypeDineIn).Count-2, after.OrderType(enum.OrderTypeDineIn).Count)
	assertDec(t,
		before.OrderType(enum.OrderTypeDineIn).Amount.Sub(twice).String(),
		after.OrderType(enum.OrderTypeDineIn).Amount)
}

func TestOrderTypePercentageUsesFilteredCount(t *testing.T) {
	dineIn := invoice("10", enum.PaymentMethodCash, enum.InvoiceStatusCompleted)
	dineIn.OrderType = enum.OrderTypeDineIn
	invoices := []*entity.Invoice{
		dineIn,
		invoice("10", enum.PaymentMethodCash, enum.InvoiceStatusCompleted),
		invoice("10", enum.PaymentMethodCash, enum.InvoiceStatusCompleted),
		invoice("10", enum.PaymentMethodCash, enum.InvoiceStatusCompleted),
	}

	r := Aggregate(invoices, Filter{})

	require.Len(t, r.ByOrderType, 2)
	assert.Equal(t, enum.OrderTypeTakeaway, r.ByOrderType[0].OrderType)
	assert.Equal(t, 3, r.ByOrderType[0].Count)
	assertDec(t, "75", r.ByOrderType[0].Percentage)
	assertDec(t, "25", r.OrderType(enum.OrderTypeDineIn).Percentage)
}

func TestPercentageGuardsZeroTotal(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("40", enum.PaymentMethodCash, enum.InvoiceStatusCompleted),
		invoice("40", enum.PaymentMethodCash, enum.InvoiceStatusRefunded),
	}

	r := Aggregate(invoices, Filter{IncludeRefunded: true})

	assert.True(t, r.TotalSales.IsZero())
	assert.True(t, r.Method(enum.PaymentMethodCash).Percentage.IsZero())

	empty := Aggregate(nil, Filter{})
	assert.True(t, empty.TotalSales.IsZero())
	assert.True(t, empty.AverageOrderValue.IsZero())
	assert.Empty(t, empty.ByPaymentMethod)
}

func TestTopProducts(t *testing.T) {
	a := withLine(invoice("60", enum.PaymentMethodCash, enum.InvoiceStatusCompleted), pizza, "Pizza", "20", 3)
	withLine(a, cola, "Cola", "2", 5)
	b := withLine(invoice("20", enum.PaymentMethodCash, enum.InvoiceStatusRefunded), pizza, "Pizza", "20", 1)
	c := withLine(invoice("6", enum.PaymentMethodCash, enum.InvoiceStatusRefunded), falafel, "Falafel", "6", 1)

	r := Aggregate([]*entity.Invoice{a, b, c}, Filter{IncludeRefunded: true})

	require.Len(t, r.TopProducts, 2)
	assert.Equal(t, pizza, r.TopProducts[0].ProductID)
	assert.Equal(t, 2, r.TopProducts[0].Quantity)
	assertDec(t, "40", r.TopProducts[0].Revenue)
	assert.Equal(t, cola, r.TopProducts[1].ProductID)
}

func TestTopProductsCappedAtFive(t *testing.T) {
	inv := invoice("100", enum.PaymentMethodCash, enum.InvoiceStatusCompleted)
	for i := 1; i <= 7; i++ {
		withLine(inv, uuid.New(), fmt.Sprintf("Item %d", i), fmt.Sprintf("%d", i), 1)
	}

	r := Aggregate([]*entity.Invoice{inv}, Filter{})

	require.Len(t, r.TopProducts, TopProductsLimit)
	assertDec(t, "7", r.TopProducts[0].Revenue)
	assertDec(t, "3", r.TopProducts[4].Revenue)
}

func TestFilterFields(t *testing.T) {
	early := invoice("10", enum.PaymentMethodCash, enum.InvoiceStatusCompleted)
	late := invoice("20", enum.PaymentMethodCard, enum.InvoiceStatusCompleted)
	late.CreatedAt = day2
	late.CashierID = bob
	late.CashierName = "Bob"
	late.OrderType = enum.OrderTypeDineIn
	invoices := []*entity.Invoice{early, late}

	from := day2.Truncate(24 * time.Hour)
	assertDec(t, "20", Aggregate(invoices, Filter{From: &from}).TotalSales)
	assertDec(t, "10", Aggregate(invoices, Filter{To: &from}).TotalSales)

	atLate := day2
	assertDec(t, "10", Aggregate(invoices, Filter{To: &atLate}).TotalSales)

	card := enum.PaymentMethodCard
	assertDec(t, "20", Aggregate(invoices, Filter{PaymentMethod: &card}).TotalSales)

	takeaway := enum.OrderTypeTakeaway
	assertDec(t, "10", Aggregate(invoices, Filter{OrderType: &takeaway}).TotalSales)

	assertDec(t, "20", Aggregate(invoices, Filter{CashierID: &bob}).TotalSales)
}

func TestSupplementaryBreakdowns(t *testing.T) {
	a := invoice("115", enum.PaymentMethodCash, enum.InvoiceStatusCompleted)
	a.Totals.TaxAmount = dec("15")
	b := invoice("23", enum.PaymentMethodCard, enum.InvoiceStatusCompleted)
	b.Totals.TaxAmount = dec("3")
	b.Totals.DiscountAmount = dec("2")
	b.CashierID = bob
	b.CashierName = "Bob"
	b.CreatedAt = day2
	c := invoice("23", enum.PaymentMethodCard, enum.InvoiceStatusRefunded)
	c.Totals.TaxAmount = dec("3")
	c.CreatedAt = day2

	r := Aggregate([]*entity.Invoice{a, b, c}, Filter{IncludeRefunded: true})

	assertDec(t, "115", r.TotalSales)
	assertDec(t, "15", r.TaxTotal)
	assertDec(t, "2", r.DiscountTotal)
	assertDec(t, "38.33", r.AverageOrderValue)

	require.Len(t, r.ByCashier, 2)
	assert.Equal(t, alice, r.ByCashier[0].CashierID)
	assertDec(t, "92", r.ByCashier[0].Amount)
	assert.Equal(t, 0, r.ByCashier[0].Count)
	assert.Equal(t, "Bob", r.ByCashier[1].CashierName)

	require.Len(t, r.DailySales, 2)
	assert.Equal(t, "2026-04-01", r.DailySales[0].Date)
	assertDec(t, "115", r.DailySales[0].Amount)
	assert.Equal(t, "2026-04-02", r.DailySales[1].Date)
	assertDec(t, "0", r.DailySales[1].Amount)
}
