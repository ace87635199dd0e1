package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/domain/reporting"
	"github.com/sangkips/restopos-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations.
// Invoices are never updated except for the refund transition.
type InvoiceRepository interface {
	// Create stores the invoice and its lines in one transaction
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	// MarkRefunded moves a Completed invoice to Refunded. It returns
	// apperror.ErrAlreadyRefunded when the invoice was not Completed.
	MarkRefunded(ctx context.Context, id uuid.UUID, refundedAt time.Time) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	ListWithCursor(ctx context.Context, params *InvoiceCursorFilterParams) ([]entity.Invoice, error)
	// ListForReport loads every invoice, with lines, that the filter may match
	ListForReport(ctx context.Context, filter reporting.Filter) ([]*entity.Invoice, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries.
// The date range is half-open [StartDate, EndDate).
type InvoiceFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.InvoiceStatus
	PaymentMethod *enum.PaymentMethod
	OrderType     *enum.OrderType
	CashierID     *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	SortOrder     string
}

// InvoiceCursorFilterParams contains cursor-based filtering for invoice queries
type InvoiceCursorFilterParams struct {
	Cursor    *pagination.CursorParams
	Status    *enum.InvoiceStatus
	CashierID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}
