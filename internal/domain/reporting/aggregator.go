// Package reporting summarizes invoices into sales metrics.
//
// Every output uses the same sign convention: a Refunded invoice contributes
// negatively, unless the filter excludes refunds, in which case refunded
// invoices are dropped before anything is counted.
package reporting

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// TopProductsLimit caps the top products list
const TopProductsLimit = 5

const dayLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// Filter scopes a report. Nil fields match everything; the date range is
// half-open [From, To).
type Filter struct {
	From            *time.Time
	To              *time.Time
	PaymentMethod   *enum.PaymentMethod
	OrderType       *enum.OrderType
	CashierID       *uuid.UUID
	IncludeRefunded bool
	// Location buckets DailySales; UTC when nil
	Location *time.Location
}

// Match reports whether inv passes the filter
func (f Filter) Match(inv *entity.Invoice) bool {
	if !f.IncludeRefunded && inv.IsRefunded() {
		return false
	}
	if f.From != nil && inv.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !inv.CreatedAt.Before(*f.To) {
		return false
	}
	if f.PaymentMethod != nil && inv.PaymentMethod != *f.PaymentMethod {
		return false
	}
	if f.OrderType != nil && inv.OrderType != *f.OrderType {
		return false
	}
	if f.CashierID != nil && inv.CashierID != *f.CashierID {
		return false
	}
	return true
}

// MethodSales is one payment method bucket
type MethodSales struct {
	Method     enum.PaymentMethod `json:"method"`
	Count      int                `json:"count"`
	Amount     decimal.Decimal    `json:"amount"`
	Percentage decimal.Decimal    `json:"percentage"`
}

// OrderTypeSales is one order type bucket
type OrderTypeSales struct {
	OrderType  enum.OrderType  `json:"order_type"`
	Count      int             `json:"count"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ProductSales is the net quantity and revenue of one product
type ProductSales struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	NameAlt   string          `json:"name_alt,omitempty"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// CashierSales is the net sales rung up by one cashier
type CashierSales struct {
	CashierID   uuid.UUID       `json:"cashier_id"`
	CashierName string          `json:"cashier_name"`
	Count       int             `json:"count"`
	Amount      decimal.Decimal `json:"amount"`
}

// DailySales is the net sales of one calendar day
type DailySales struct {
	Date   string          `json:"date"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// SalesReport is the result of one aggregation. It is never stored.
type SalesReport struct {
	TotalSales        decimal.Decimal  `json:"total_sales"`
	InvoiceCount      int              `json:"invoice_count"`
	RefundCount       int              `json:"refund_count"`
	RefundedAmount    decimal.Decimal  `json:"refunded_amount"`
	TaxTotal          decimal.Decimal  `json:"tax_total"`
	DiscountTotal     decimal.Decimal  `json:"discount_total"`
	AverageOrderValue decimal.Decimal  `json:"average_order_value"`
	ByPaymentMethod   []MethodSales    `json:"sales_by_payment_method"`
	ByOrderType       []OrderTypeSales `json:"sales_by_order_type"`
	TopProducts       []ProductSales   `json:"top_products"`
	ByCashier         []CashierSales   `json:"sales_by_cashier"`
	DailySales        []DailySales     `json:"daily_sales"`
}

// Method returns the bucket for m, zero-valued when absent
func (r SalesReport) Method(m enum.PaymentMethod) MethodSales {
	for _, b := range r.ByPaymentMethod {
		if b.Method == m {
			return b
		}
	}
	return MethodSales{Method: m, Amount: decimal.Zero, Percentage: decimal.Zero}
}

// OrderType returns the bucket for t, zero-valued when absent
func (r SalesReport) OrderType(t enum.OrderType) OrderTypeSales {
	for _, b := range r.ByOrderType {
		if b.OrderType == t {
			return b
		}
	}
	return OrderTypeSales{OrderType: t, Amount: decimal.Zero, Percentage: decimal.Zero}
}

// Aggregate filters invoices and summarizes them
func Aggregate(invoices []*entity.Invoice, f Filter) SalesReport {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}

	report := SalesReport{
		TotalSales:        decimal.Zero,
		RefundedAmount:    decimal.Zero,
		TaxTotal:          decimal.Zero,
		DiscountTotal:     decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}

	methods := make(map[enum.PaymentMethod]*MethodSales)
	orderTypes := make(map[enum.OrderType]*OrderTypeSales)
	products := make(map[uuid.UUID]*ProductSales)
	cashiers := make(map[uuid.UUID]*CashierSales)
	days := make(map[string]*DailySales)

	for _, inv := range invoices {
		if inv == nil || !f.Match(inv) {
			continue
		}

		sign := inv.Status.Sign()
		signDec := decimal.NewFromInt(int64(sign))
		amount := inv.Totals.Total.Mul(signDec)

		report.InvoiceCount++
		report.TotalSales = report.TotalSales.Add(amount)
		report.TaxTotal = report.TaxTotal.Add(inv.Totals.TaxAmount.Mul(signDec))
		report.DiscountTotal = report.DiscountTotal.Add(inv.Totals.DiscountAmount.Mul(signDec))
		if inv.IsRefunded() {
			report.RefundCount++
			report.RefundedAmount = report.RefundedAmount.Add(inv.Totals.Total)
		}

		m, ok := methods[inv.PaymentMethod]
		if !ok {
			m = &MethodSales{Method: inv.PaymentMethod, Amount: decimal.Zero}
			methods[inv.PaymentMethod] = m
		}
		m.Count += sign
		m.Amount = m.Amount.Add(amount)

		ot, ok := orderTypes[inv.OrderType]
		if !ok {
			ot = &OrderTypeSales{OrderType: inv.OrderType, Amount: decimal.Zero}
			orderTypes[inv.OrderType] = ot
		}
		ot.Count += sign
		ot.Amount = ot.Amount.Add(amount)

		c, ok := cashiers[inv.CashierID]
		if !ok {
			c = &CashierSales{CashierID: inv.CashierID, CashierName: inv.CashierName, Amount: decimal.Zero}
			cashiers[inv.CashierID] = c
		}
		c.Count += sign
		c.Amount = c.Amount.Add(amount)

		day := inv.CreatedAt.In(loc).Format(dayLayout)
		ds, ok := days[day]
		if !ok {
			ds = &DailySales{Date: day, Amount: decimal.Zero}
			days[day] = ds
		}
		ds.Count += sign
		ds.Amount = ds.Amount.Add(amount)

		for _, l := range inv.Lines {
			p, ok := products[l.ProductID]
			if !ok {
				p = &ProductSales{ProductID: l.ProductID, Name: l.Name, NameAlt: l.NameAlt, Revenue: decimal.Zero}
				products[l.ProductID] = p
			}
			p.Quantity += l.Quantity * sign
			p.Revenue = p.Revenue.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity * sign))))
		}
	}

	if report.InvoiceCount > 0 {
		report.AverageOrderValue = report.TotalSales.
			Div(decimal.NewFromInt(int64(report.InvoiceCount))).
			Round(2)
	}

	report.ByPaymentMethod = make([]MethodSales, 0, len(methods))
	for _, method := range enum.PaymentMethods() {
		if m, ok := methods[method]; ok {
			m.Percentage = percentOf(m.Amount, report.TotalSales)
			report.ByPaymentMethod = append(report.ByPaymentMethod, *m)
		}
	}

	report.ByOrderType = make([]OrderTypeSales, 0, len(orderTypes))
	filtered := decimal.NewFromInt(int64(report.InvoiceCount))
	for _, t := range enum.OrderTypes() {
		if ot, ok := orderTypes[t]; ok {
			ot.Percentage = percentOf(decimal.NewFromInt(int64(ot.Count)), filtered)
			report.ByOrderType = append(report.ByOrderType, *ot)
		}
	}

	report.TopProducts = topProducts(products, TopProductsLimit)

	report.ByCashier = make([]CashierSales, 0, len(cashiers))
	for _, c := range cashiers {
		report.ByCashier = append(report.ByCashier, *c)
	}
	sort.Slice(report.ByCashier, func(i, j int) bool {
		a, b := report.ByCashier[i], report.ByCashier[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.CashierID.String() < b.CashierID.String()
	})

	report.DailySales = make([]DailySales, 0, len(days))
	for _, ds := range days {
		report.DailySales = append(report.DailySales, *ds)
	}
	sort.Slice(report.DailySales, func(i, j int) bool {
		return report.DailySales[i].Date < report.DailySales[j].Date
	})

	return report
}

func topProducts(products map[uuid.UUID]*ProductSales, limit int) []ProductSales {
	out := make([]ProductSales, 0, len(products))
	for _, p := range products {
		if p.Quantity <= 0 {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].ProductID.String() < out[j].ProductID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// percentOf returns part/whole*100 at two places, 0 when whole is zero
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
