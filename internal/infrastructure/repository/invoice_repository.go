package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/domain/reporting"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// createdBetween filters on [from, to). Bounds are compared in UTC because
// created_at is stored in UTC and sqlite compares timestamps as text.
func createdBetween(from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("created_at >= ?", from.UTC())
		}
		if to != nil {
			db = db.Where("created_at < ?", to.UTC())
		}
		return db
	}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("insert invoice %s: %w", invoice.Number, err)
		}
		return nil
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(BranchScope(ctx)).
		Preload("Lines", orderedLines).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(BranchScope(ctx)).
		Preload("Lines", orderedLines).
		First(&invoice, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) MarkRefunded(ctx context.Context, id uuid.UUID, refundedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Scopes(BranchScope(ctx)).
		Where("id = ? AND status = ?", id, enum.InvoiceStatusCompleted).
		Updates(map[string]interface{}{
			"status":      enum.InvoiceStatusRefunded,
			"refunded_at": refundedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Scopes(BranchScope(ctx)).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperror.NewNotFoundError("Invoice")
	}
	return apperror.ErrAlreadyRefunded
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(BranchScope(ctx))

	if params.Search != "" {
		query = query.Where("LOWER(number) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}
	if params.OrderType != nil {
		query = query.Where("order_type = ?", *params.OrderType)
	}
	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}
	query = query.Scopes(createdBetween(params.StartDate, params.EndDate))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortOrder := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Lines", orderedLines).
		Order("created_at " + sortOrder).
		Order("number " + sortOrder).
		Find(&invoices).Error

	return invoices, total, err
}

// ListWithCursor returns invoices newest first using keyset pagination
func (r *invoiceRepository) ListWithCursor(ctx context.Context, params *domainRepo.InvoiceCursorFilterParams) ([]entity.Invoice, error) {
	var invoices []entity.Invoice

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(BranchScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}
	query = query.Scopes(createdBetween(params.StartDate, params.EndDate))

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	if cursor != nil {
		at := cursor.CreatedAt.UTC()
		query = query.Where("created_at < ? OR (created_at = ? AND id < ?)", at, at, cursor.ID)
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Lines", orderedLines).
		Order("created_at DESC, id DESC").
		Find(&invoices).Error

	return invoices, err
}

func (r *invoiceRepository) ListForReport(ctx context.Context, filter reporting.Filter) ([]*entity.Invoice, error) {
	var invoices []*entity.Invoice

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(BranchScope(ctx))

	if !filter.IncludeRefunded {
		query = query.Where("status = ?", enum.InvoiceStatusCompleted)
	}
	query = query.Scopes(createdBetween(filter.From, filter.To))
	if filter.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *filter.PaymentMethod)
	}
	if filter.OrderType != nil {
		query = query.Where("order_type = ?", *filter.OrderType)
	}
	if filter.CashierID != nil {
		query = query.Where("cashier_id = ?", *filter.CashierID)
	}

	err := query.Preload("Lines", orderedLines).
		Order("created_at ASC").
		Find(&invoices).Error

	return invoices, err
}
