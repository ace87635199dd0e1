package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/invoicing"
	"github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/observability/metrics"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/sangkips/restopos-api/pkg/pagination"
	"go.uber.org/zap"
)

// InvoiceService handles invoice lookups and refunds
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	factory     *invoicing.Factory
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	factory *invoicing.Factory,
	m *metrics.Metrics,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		factory:     factory,
		metrics:     m,
		logger:      logger.Named("invoice"),
	}
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetInvoiceByNumber retrieves an invoice by its printed number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, apperror.NewBadRequestError("Invoice number required")
	}

	invoice, err := s.invoiceRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices retrieves invoices with pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	if params.StartDate != nil && params.EndDate != nil && !params.StartDate.Before(*params.EndDate) {
		return nil, apperror.NewBadRequestError("start_date must be before end_date")
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ListInvoicesWithCursor retrieves invoices newest first with keyset pagination
func (s *InvoiceService) ListInvoicesWithCursor(ctx context.Context, params *repository.InvoiceCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Invoice], error) {
	if params.Cursor == nil {
		params.Cursor = &pagination.CursorParams{}
	}
	params.Cursor.Validate()

	invoices, err := s.invoiceRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewCursorPaginatedResult(invoices, params.Cursor.Limit, func(inv entity.Invoice) (string, time.Time) {
		return inv.ID.String(), inv.CreatedAt
	}), nil
}

// RefundInvoice moves a completed invoice to Refunded. Lines and totals are
// never touched.
func (s *InvoiceService) RefundInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	refunded, err := s.factory.Refund(invoice)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.MarkRefunded(ctx, refunded.ID, *refunded.RefundedAt); err != nil {
		if !apperror.IsAppError(err) {
			s.logger.Error("refund persistence failed",
				zap.String("invoice_id", id.String()),
				zap.Error(err))
		}
		return nil, err
	}

	s.metrics.RecordInvoiceRefunded()
	s.logger.Info("invoice refunded",
		zap.String("invoice_id", refunded.ID.String()),
		zap.String("number", refunded.Number),
		zap.String("total", refunded.Totals.Total.String()))

	return refunded, nil
}
