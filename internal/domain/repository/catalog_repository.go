package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/pkg/pagination"
)

// CatalogRepository defines the read-only interface for the product catalog
type CatalogRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// Resolve returns the sale attributes of a product/variant pair, nil
	// when the pair does not exist or the product is inactive
	Resolve(ctx context.Context, productID, variantID uuid.UUID) (*entity.CatalogEntry, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	ActiveOnly bool
}
