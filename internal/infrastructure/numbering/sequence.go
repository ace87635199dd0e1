package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceSource draws numbers from a per-branch counter row. The increment
// and the read happen in one transaction, so concurrent registers of the
// same branch never receive the same value. A number drawn for an invoice
// that later fails to persist is skipped, not reused.
type SequenceSource struct {
	db       *gorm.DB
	template string
	now      func() time.Time
}

// NewSequenceSource creates a counter-backed number source
func NewSequenceSource(db *gorm.DB, template string) (*SequenceSource, error) {
	if template == "" {
		template = DefaultFormat
	}
	if err := ValidateFormat(template); err != nil {
		return nil, err
	}
	return &SequenceSource{db: db, template: template, now: time.Now}, nil
}

func (s *SequenceSource) NextNumber(ctx context.Context, branchID uuid.UUID) (string, error) {
	var next int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.InvoiceCounter{}).
			Where("branch_id = ?", branchID).
			Updates(map[string]interface{}{
				"last_value": gorm.Expr("last_value + 1"),
				"updated_at": s.now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			created := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&entity.InvoiceCounter{BranchID: branchID, LastValue: 1, UpdatedAt: s.now().UTC()})
			if created.Error != nil {
				return created.Error
			}
			if created.RowsAffected == 0 {
				// another register created the row first
				if err := tx.Model(&entity.InvoiceCounter{}).
					Where("branch_id = ?", branchID).
					Update("last_value", gorm.Expr("last_value + 1")).Error; err != nil {
					return err
				}
			}
		}

		var counter entity.InvoiceCounter
		if err := tx.First(&counter, "branch_id = ?", branchID).Error; err != nil {
			return err
		}
		next = counter.LastValue
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("increment invoice counter: %w", err)
	}

	return Format(s.template, s.now().UTC(), next)
}
