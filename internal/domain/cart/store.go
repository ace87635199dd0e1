// Package cart holds the in-progress order of a register. A Cart is a plain
// value: every Store operation takes the prior cart and returns a new one, so
// callers that always pass the latest returned cart never lose an update.
package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Cart is the mutable-by-replacement line collection of one order
type Cart struct {
	Lines    []entity.LineItem     `json:"lines"`
	Discount entity.DiscountConfig `json:"discount"`
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount is the sum of quantities across lines
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Line returns the line with the given id
func (c Cart) Line(lineID uuid.UUID) (entity.LineItem, bool) {
	for _, l := range c.Lines {
		if l.ID == lineID {
			return l, true
		}
	}
	return entity.LineItem{}, false
}

func (c Cart) clone() Cart {
	return Cart{
		Lines:    entity.CloneLines(c.Lines),
		Discount: c.Discount,
	}
}

// Catalog resolves a product/variant reference to its sale attributes
type Catalog interface {
	Resolve(ctx context.Context, productID, variantID uuid.UUID) (*entity.CatalogEntry, error)
}

// Store applies cart operations. It keeps no cart state of its own.
type Store struct {
	newID func() uuid.UUID
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator replaces the line id generator
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// NewStore creates a cart store
func NewStore(opts ...Option) *Store {
	s := &Store{newID: uuid.New}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItemInput describes a product line to add. Quantity 0 means 1 and
// a nil Taxable means taxable.
type AddItemInput struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
	UnitPrice decimal.Decimal
	Size      enum.ItemSize
	Taxable   *bool
	Name      string
	NameAlt   string
	Quantity  int
}

// ClampQuantity returns max(1, q). The error reports that the clamp fired;
// the clamped value is always usable.
func ClampQuantity(q int) (int, error) {
	if q < 1 {
		return 1, apperror.NewKindError(apperror.ErrInvalidQuantity, fmt.Sprintf("quantity %d clamped to 1", q))
	}
	return q, nil
}

// AddItem merges into the line with the same product and variant, or appends
// a new line with a fresh id.
func (s *Store) AddItem(c Cart, in AddItemInput) (Cart, error) {
	if in.UnitPrice.IsNegative() {
		return c, apperror.ErrInvalidPrice
	}

	qty := 1
	if in.Quantity != 0 {
		qty, _ = ClampQuantity(in.Quantity)
	}

	next := c.clone()
	for i := range next.Lines {
		if next.Lines[i].SameProduct(in.ProductID, in.VariantID) {
			next.Lines[i].Quantity += qty
			return next, nil
		}
	}

	taxable := true
	if in.Taxable != nil {
		taxable = *in.Taxable
	}

	next.Lines = append(next.Lines, entity.LineItem{
		ID:        s.newID(),
		ProductID: in.ProductID,
		VariantID: in.VariantID,
		Name:      in.Name,
		NameAlt:   in.NameAlt,
		UnitPrice: in.UnitPrice,
		Quantity:  qty,
		Size:      in.Size.Normalize(),
		Taxable:   taxable,
	})
	return next, nil
}

// AddProduct resolves the product/variant through the catalog and adds it
func (s *Store) AddProduct(ctx context.Context, c Cart, catalog Catalog, productID, variantID uuid.UUID, quantity int) (Cart, error) {
	entry, err := catalog.Resolve(ctx, productID, variantID)
	if err != nil {
		return c, err
	}
	if entry == nil {
		return c, apperror.NewNotFoundError("Product")
	}

	taxable := entry.Taxable
	return s.AddItem(c, AddItemInput{
		ProductID: entry.ProductID,
		VariantID: entry.VariantID,
		UnitPrice: entry.UnitPrice,
		Size:      entry.Size,
		Taxable:   &taxable,
		Name:      entry.Name,
		NameAlt:   entry.NameAlt,
		Quantity:  quantity,
	})
}

// SetQuantity sets a line's quantity to max(1, quantity). Unknown lines are
// left alone.
func (s *Store) SetQuantity(c Cart, lineID uuid.UUID, quantity int) Cart {
	qty, _ := ClampQuantity(quantity)

	next := c.clone()
	for i := range next.Lines {
		if next.Lines[i].ID == lineID {
			next.Lines[i].Quantity = qty
			break
		}
	}
	return next
}

// ChangeQuantity adds delta to a line's quantity, never going below 1
func (s *Store) ChangeQuantity(c Cart, lineID uuid.UUID, delta int) Cart {
	next := c.clone()
	for i := range next.Lines {
		if next.Lines[i].ID == lineID {
			next.Lines[i].Quantity, _ = ClampQuantity(next.Lines[i].Quantity + delta)
			break
		}
	}
	return next
}

// RemoveItem drops a line; removing an absent line is a no-op
func (s *Store) RemoveItem(c Cart, lineID uuid.UUID) Cart {
	next := Cart{Discount: c.Discount}
	for _, l := range c.Lines {
		if l.ID != lineID {
			next.Lines = append(next.Lines, l)
		}
	}
	return next
}

// SetDiscount replaces the cart discount
func (s *Store) SetDiscount(c Cart, discount entity.DiscountConfig) (Cart, error) {
	if discount.Amount.IsNegative() {
		return c, apperror.ErrInvalidDiscount
	}
	if !discount.Kind.Valid() {
		return c, apperror.NewKindError(apperror.ErrInvalidDiscount, "Unknown discount kind")
	}
	next := c.clone()
	next.Discount = discount
	return next, nil
}

// Clear empties the cart and resets its discount
func (s *Store) Clear(Cart) Cart {
	return Cart{}
}
