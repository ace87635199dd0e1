package entity

import (
	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// NoVariant is the variant id of products sold without sizes
var NoVariant = uuid.Nil

// LineItem is one product+variant+quantity entry of an in-progress cart
type LineItem struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	VariantID uuid.UUID       `json:"variant_id"`
	Name      string          `json:"name"`
	NameAlt   string          `json:"name_alt,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Size      enum.ItemSize   `json:"size"`
	Taxable   bool            `json:"taxable"`
}

// Amount returns unit price times quantity
func (l LineItem) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SameProduct reports whether l is the line for the given product/variant pair
func (l LineItem) SameProduct(productID, variantID uuid.UUID) bool {
	return l.ProductID == productID && l.VariantID == variantID
}

// CloneLines returns a copy of lines that shares no backing array with the input
func CloneLines(lines []LineItem) []LineItem {
	if lines == nil {
		return nil
	}
	out := make([]LineItem, len(lines))
	copy(out, lines)
	return out
}
