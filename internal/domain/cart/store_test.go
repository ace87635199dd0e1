package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() uuid.UUID {
	n := 0
	return func() uuid.UUID {
		n++
		var id uuid.UUID
		id[15] = byte(n)
		return id
	}
}

func burger(price string) AddItemInput {
	return AddItemInput{
		ProductID: uuid.MustParse("00000000-0000-0000-0000-0000000000b1"),
		VariantID: entity.NoVariant,
		UnitPrice: decimal.RequireFromString(price),
		Name:      "Burger",
		NameAlt:   "برجر",
	}
}

func TestAddItemAppendsThenMerges(t *testing.T) {
	s := NewStore(WithIDGenerator(sequentialIDs()))

	c, err := s.AddItem(Cart{}, burger("10"))
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.True(t, c.Lines[0].Taxable)
	assert.Equal(t, enum.ItemSizeNone, c.Lines[0].Size)

	firstID := c.Lines[0].ID

	c, err = s.AddItem(c, burger("10"))
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, firstID, c.Lines[0].ID)

	in := burger("10")
	in.Quantity = 3
	c, err = s.AddItem(c, in)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Lines[0].Quantity)
}

func TestAddItemDistinguishesVariants(t *testing.T) {
	s := NewStore(WithIDGenerator(sequentialIDs()))

	small := burger("8")
	small.VariantID = uuid.New()
	small.Size = enum.ItemSizeSmall
	large := burger("12")
	large.VariantID = uuid.New()
	large.Size = enum.ItemSizeLarge

	c, err := s.AddItem(Cart{}, small)
	require.NoError(t, err)
	c, err = s.AddItem(c, large)
	require.NoError(t, err)

	require.Len(t, c.Lines, 2)
	assert.NotEqual(t, c.Lines[0].ID, c.Lines[1].ID)
	assert.Equal(t, enum.ItemSizeLarge, c.Lines[1].Size)
}

func TestAddItemRejectsNegativePrice(t *testing.T) {
	s := NewStore()

	c, err := s.AddItem(Cart{}, burger("-1"))

	assert.True(t, errors.Is(err, apperror.ErrInvalidPrice))
	assert.True(t, c.IsEmpty())
}

func TestAddItemHonoursExplicitTaxable(t *testing.T) {
	s := NewStore()
	taxable := false
	in := burger("50")
	in.Taxable = &taxable

	c, err := s.AddItem(Cart{}, in)
	require.NoError(t, err)
	assert.False(t, c.Lines[0].Taxable)
}

func TestSetQuantityClampsToOne(t *testing.T) {
	s := NewStore()
	c, err := s.AddItem(Cart{}, burger("10"))
	require.NoError(t, err)
	lineID := c.Lines[0].ID

	for _, q := range []int{-5, -1, 0, 1, 2, 7, 100} {
		next := s.SetQuantity(c, lineID, q)
		want := q
		if want < 1 {
			want = 1
		}
		assert.Equal(t, want, next.Lines[0].Quantity, "q=%d", q)
	}
}

func TestClampQuantityIsObservable(t *testing.T) {
	q, err := ClampQuantity(0)
	assert.Equal(t, 1, q)
	assert.True(t, errors.Is(err, apperror.ErrInvalidQuantity))

	q, err = ClampQuantity(4)
	assert.Equal(t, 4, q)
	assert.NoError(t, err)
}

func TestChangeQuantity(t *testing.T) {
	s := NewStore()
	in := burger("10")
	in.Quantity = 3
	c, err := s.AddItem(Cart{}, in)
	require.NoError(t, err)
	lineID := c.Lines[0].ID

	assert.Equal(t, 5, s.ChangeQuantity(c, lineID, 2).Lines[0].Quantity)
	assert.Equal(t, 2, s.ChangeQuantity(c, lineID, -1).Lines[0].Quantity)
	assert.Equal(t, 1, s.ChangeQuantity(c, lineID, -10).Lines[0].Quantity)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	s := NewStore()
	c, err := s.AddItem(Cart{}, burger("10"))
	require.NoError(t, err)
	lineID := c.Lines[0].ID

	c = s.RemoveItem(c, lineID)
	assert.True(t, c.IsEmpty())

	c = s.RemoveItem(c, lineID)
	assert.True(t, c.IsEmpty())
}

func TestOperationsNeverAliasPriorCart(t *testing.T) {
	s := NewStore()
	before, err := s.AddItem(Cart{}, burger("10"))
	require.NoError(t, err)

	after := s.SetQuantity(before, before.Lines[0].ID, 9)

	assert.Equal(t, 1, before.Lines[0].Quantity)
	assert.Equal(t, 9, after.Lines[0].Quantity)
}

func TestSetDiscountAndClear(t *testing.T) {
	s := NewStore()
	c, err := s.AddItem(Cart{}, burger("10"))
	require.NoError(t, err)

	_, err = s.SetDiscount(c, entity.DiscountConfig{Amount: decimal.NewFromInt(-1)})
	assert.True(t, errors.Is(err, apperror.ErrInvalidDiscount))

	kept, err := s.SetDiscount(c, entity.DiscountConfig{Amount: decimal.NewFromInt(10), Kind: enum.DiscountKind(7)})
	assert.True(t, errors.Is(err, apperror.ErrInvalidDiscount))
	assert.True(t, kept.Discount.Amount.IsZero())

	c, err = s.SetDiscount(c, entity.DiscountConfig{Amount: decimal.NewFromInt(10), Kind: enum.DiscountKindPercentage})
	require.NoError(t, err)
	assert.True(t, c.Discount.Amount.Equal(decimal.NewFromInt(10)))

	c = s.Clear(c)
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Discount.Amount.IsZero())
}

type stubCatalog map[uuid.UUID]entity.CatalogEntry

func (s stubCatalog) Resolve(_ context.Context, productID, _ uuid.UUID) (*entity.CatalogEntry, error) {
	e, ok := s[productID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func TestAddProductResolvesThroughCatalog(t *testing.T) {
	s := NewStore()
	juiceID := uuid.New()
	catalog := stubCatalog{
		juiceID: {
			ProductID: juiceID,
			VariantID: entity.NoVariant,
			Name:      "Juice",
			UnitPrice: decimal.RequireFromString("7.50"),
			Size:      enum.ItemSizeMedium,
			Taxable:   false,
		},
	}

	c, err := s.AddProduct(context.Background(), Cart{}, catalog, juiceID, entity.NoVariant, 2)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "Juice", c.Lines[0].Name)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.False(t, c.Lines[0].Taxable)
	assert.Equal(t, 2, c.ItemCount())

	_, err = s.AddProduct(context.Background(), c, catalog, uuid.New(), entity.NoVariant, 1)
	assert.Error(t, err)
}
