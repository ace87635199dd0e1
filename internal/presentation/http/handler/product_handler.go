package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/sangkips/restopos-api/pkg/pagination"
)

// ProductHandler serves the read-only menu catalog
type ProductHandler struct {
	catalogRepo repository.CatalogRepository
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogRepo repository.CatalogRepository) *ProductHandler {
	return &ProductHandler{catalogRepo: catalogRepo}
}

// List handles listing catalog products with their variants
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		Category:   filter.Category,
		ActiveOnly: true,
	}
	if filter.ActiveOnly != nil {
		params.ActiveOnly = *filter.ActiveOnly
	}

	products, total, err := h.catalogRepo.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", pagination.NewPaginatedResult(products, pag))
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "product ID")
	if !ok {
		return
	}

	product, err := h.catalogRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if product == nil {
		response.Error(c, apperror.NewNotFoundError("Product"))
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}
