package service

import (
	"context"
	"time"

	"github.com/sangkips/restopos-api/internal/domain/reporting"
	"github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/pkg/apperror"
)

// ReportService builds sales reports over stored invoices
type ReportService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewReportService creates a new report service
func NewReportService(invoiceRepo repository.InvoiceRepository) *ReportService {
	return &ReportService{invoiceRepo: invoiceRepo}
}

// Sales aggregates the branch's invoices matching filter. The repository
// narrows the rows; Aggregate applies the same filter again so the report
// never depends on how much the store filtered.
func (s *ReportService) Sales(ctx context.Context, filter reporting.Filter) (*reporting.SalesReport, error) {
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, apperror.NewBadRequestError("from must be before to")
	}
	if filter.Location == nil {
		filter.Location = time.UTC
	}

	invoices, err := s.invoiceRepo.ListForReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := reporting.Aggregate(invoices, filter)
	return &report, nil
}
