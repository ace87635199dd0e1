package invoicing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/domain/payment"
	"github.com/sangkips/restopos-api/internal/domain/pricing"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls int
	err   error
}

func (s *countingSource) NextNumber(context.Context, uuid.UUID) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.calls++
	return fmt.Sprintf("INV-%06d", s.calls), nil
}

var fixedNow = time.Date(2026, 5, 4, 13, 30, 0, 0, time.UTC)

func newTestFactory(src NumberSource) *Factory {
	return NewFactory(src, WithClock(func() time.Time { return fixedNow }))
}

func scenarioLines() []entity.LineItem {
	return []entity.LineItem{{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Name:      "Shawarma",
		UnitPrice: decimal.NewFromInt(10),
		Quantity:  2,
		Size:      enum.ItemSizeNone,
		Taxable:   true,
	}}
}

func cashDecision(t *testing.T, total, paid decimal.Decimal) entity.PaymentDecision {
	t.Helper()
	c, err := payment.New().Begin(total)
	require.NoError(t, err)
	c, err = c.SelectMethod(enum.PaymentMethodCash)
	require.NoError(t, err)
	c, err = c.ConfirmPaidAmount(&paid)
	require.NoError(t, err)
	decision, _, err := c.Commit()
	require.NoError(t, err)
	return decision
}

func TestCreateCashInvoiceWithChange(t *testing.T) {
	src := &countingSource{}
	f := newTestFactory(src)
	lines := scenarioLines()
	priced := pricing.Price(lines, entity.DiscountConfig{}, pricing.DefaultTaxRate)
	cashier := entity.Cashier{ID: uuid.New(), Name: "Sara"}

	inv, err := f.Create(context.Background(), CreateInput{
		BranchID:  uuid.New(),
		Lines:     lines,
		Priced:    priced,
		Payment:   cashDecision(t, priced.Total, decimal.NewFromInt(30)),
		OrderType: enum.OrderTypeTakeaway,
		Cashier:   cashier,
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", inv.Number)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, enum.InvoiceStatusCompleted, inv.Status)
	assert.Equal(t, fixedNow, inv.CreatedAt)
	assert.True(t, inv.Totals.Total.Equal(decimal.RequireFromString("23.00")))
	assert.True(t, inv.ChangeAmount.Equal(decimal.RequireFromString("7.00")))
	assert.Equal(t, cashier.ID, inv.CashierID)
	assert.Equal(t, "Sara", inv.CashierName)
	assert.Nil(t, inv.TableNumber)
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, inv.ID, inv.Lines[0].InvoiceID)
	assert.True(t, inv.Lines[0].LineTotal.Equal(decimal.NewFromInt(20)))
}

func TestCreateFreezesLines(t *testing.T) {
	f := newTestFactory(&countingSource{})
	lines := scenarioLines()

	inv, err := f.Create(context.Background(), CreateInput{
		Lines:     lines,
		Priced:    pricing.Price(lines, entity.DiscountConfig{}, pricing.DefaultTaxRate),
		OrderType: enum.OrderTypeTakeaway,
	})
	require.NoError(t, err)

	lines[0].Quantity = 99
	lines[0].Name = "changed"

	assert.Equal(t, 2, inv.Lines[0].Quantity)
	assert.Equal(t, "Shawarma", inv.Lines[0].Name)
}

func TestCreateEmptyCartConsumesNoNumber(t *testing.T) {
	src := &countingSource{}
	f := newTestFactory(src)

	inv, err := f.Create(context.Background(), CreateInput{OrderType: enum.OrderTypeTakeaway})

	assert.Nil(t, inv)
	assert.True(t, errors.Is(err, apperror.ErrEmptyCart))
	assert.Equal(t, 0, src.calls)
}

func TestCreateDineInRequiresTable(t *testing.T) {
	src := &countingSource{}
	f := newTestFactory(src)
	blank := "  "

	for _, table := range []*string{nil, &blank} {
		_, err := f.Create(context.Background(), CreateInput{
			Lines:       scenarioLines(),
			OrderType:   enum.OrderTypeDineIn,
			TableNumber: table,
		})
		assert.True(t, errors.Is(err, apperror.ErrMissingTableNumber))
	}
	assert.Equal(t, 0, src.calls)

	table := " T4 "
	inv, err := f.Create(context.Background(), CreateInput{
		Lines:       scenarioLines(),
		OrderType:   enum.OrderTypeDineIn,
		TableNumber: &table,
	})
	require.NoError(t, err)
	require.NotNil(t, inv.TableNumber)
	assert.Equal(t, "T4", *inv.TableNumber)
}

func TestCreateTakeawayDropsTable(t *testing.T) {
	f := newTestFactory(&countingSource{})
	table := "T9"

	inv, err := f.Create(context.Background(), CreateInput{
		Lines:       scenarioLines(),
		OrderType:   enum.OrderTypeTakeaway,
		TableNumber: &table,
	})
	require.NoError(t, err)
	assert.Nil(t, inv.TableNumber)
}

func TestCreateNumbersIncrease(t *testing.T) {
	f := newTestFactory(&countingSource{})

	var numbers []string
	for i := 0; i < 3; i++ {
		inv, err := f.Create(context.Background(), CreateInput{Lines: scenarioLines()})
		require.NoError(t, err)
		numbers = append(numbers, inv.Number)
	}

	assert.Equal(t, []string{"INV-000001", "INV-000002", "INV-000003"}, numbers)
}

func TestCreateNumberSourceFailure(t *testing.T) {
	f := newTestFactory(&countingSource{err: errors.New("counter locked")})

	inv, err := f.Create(context.Background(), CreateInput{Lines: scenarioLines()})

	assert.Nil(t, inv)
	assert.ErrorContains(t, err, "counter locked")
}

func TestRefundOnlyOnce(t *testing.T) {
	f := newTestFactory(&countingSource{})
	lines := scenarioLines()
	inv, err := f.Create(context.Background(), CreateInput{
		Lines:  lines,
		Priced: pricing.Price(lines, entity.DiscountConfig{}, pricing.DefaultTaxRate),
	})
	require.NoError(t, err)

	refunded, err := f.Refund(inv)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusRefunded, refunded.Status)
	require.NotNil(t, refunded.RefundedAt)
	assert.True(t, refunded.Totals.Total.Equal(inv.Totals.Total))
	assert.Equal(t, inv.Number, refunded.Number)
	assert.Equal(t, enum.InvoiceStatusCompleted, inv.Status)

	_, err = f.Refund(refunded)
	assert.True(t, errors.Is(err, apperror.ErrAlreadyRefunded))
}
