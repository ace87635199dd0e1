package database

import (
	"fmt"

	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedVariant struct {
	size  enum.ItemSize
	price string
}

type seedProduct struct {
	code      string
	name      string
	nameAlt   string
	category  string
	price     string
	taxExempt bool
	variants  []seedVariant
}

var defaultMenu = []seedProduct{
	{code: "SHW-CHK", name: "Chicken Shawarma", nameAlt: "شاورما دجاج", category: "Sandwiches", price: "12.00"},
	{code: "SHW-BEF", name: "Beef Shawarma", nameAlt: "شاورما لحم", category: "Sandwiches", price: "14.00"},
	{code: "FLF-PLT", name: "Falafel Plate", nameAlt: "صحن فلافل", category: "Plates", price: "18.00"},
	{
		code: "PZA-MRG", name: "Margherita Pizza", nameAlt: "بيتزا مارغريتا", category: "Pizza", price: "0",
		variants: []seedVariant{
			{size: enum.ItemSizeSmall, price: "22.00"},
			{size: enum.ItemSizeMedium, price: "32.00"},
			{size: enum.ItemSizeLarge, price: "42.00"},
			{size: enum.ItemSizeFamily, price: "55.00"},
		},
	},
	{
		code: "DRK-JCE", name: "Fresh Orange Juice", nameAlt: "عصير برتقال طازج", category: "Drinks", price: "0",
		variants: []seedVariant{
			{size: enum.ItemSizeSmall, price: "8.00"},
			{size: enum.ItemSizeLarge, price: "12.00"},
		},
	},
	{code: "DRK-WTR", name: "Water", nameAlt: "ماء", category: "Drinks", price: "2.00", taxExempt: true},
}

// SeedCatalog inserts the default menu. Products already present by code
// are left alone.
func SeedCatalog(db *gorm.DB) error {
	created := 0
	for _, sp := range defaultMenu {
		// a missing product is the normal case, so no First here
		var existing []entity.Product
		res := db.Where("code = ?", sp.code).Limit(1).Find(&existing)
		if res.Error != nil {
			return fmt.Errorf("look up product %s: %w", sp.code, res.Error)
		}
		if res.RowsAffected > 0 {
			continue
		}

		product := entity.Product{
			Code:      sp.code,
			Name:      sp.name,
			NameAlt:   sp.nameAlt,
			Category:  sp.category,
			BasePrice: decimal.RequireFromString(sp.price),
			TaxExempt: sp.taxExempt,
			Active:    true,
		}
		for _, v := range sp.variants {
			product.Variants = append(product.Variants, entity.ProductVariant{
				Size:  v.size,
				Price: decimal.RequireFromString(v.price),
			})
		}

		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("create product %s: %w", sp.code, err)
		}
		created++
	}

	zap.L().Info("catalog seeding completed", zap.Int("created", created))
	return nil
}
