package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a menu item in the catalog. Products without variants are sold
// at BasePrice; sized products are sold through their variants.
type Product struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Code      string           `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	NameAlt   string           `gorm:"size:255" json:"name_alt,omitempty"`
	Category  string           `gorm:"size:100;index" json:"category,omitempty"`
	BasePrice decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"base_price"`
	TaxExempt bool             `gorm:"not null" json:"tax_exempt"`
	Active    bool             `gorm:"not null;index" json:"active"`
	Variants  []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ProductVariant is a priced size of a product
type ProductVariant struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Size      enum.ItemSize   `gorm:"size:16;not null" json:"size"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new variant
func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductVariant model
func (ProductVariant) TableName() string {
	return "product_variants"
}

// CatalogEntry is what the catalog resolves a product/variant reference to
type CatalogEntry struct {
	ProductID uuid.UUID       `json:"product_id"`
	VariantID uuid.UUID       `json:"variant_id"`
	Name      string          `json:"name"`
	NameAlt   string          `json:"name_alt,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Size      enum.ItemSize   `json:"size"`
	Taxable   bool            `json:"taxable"`
}
