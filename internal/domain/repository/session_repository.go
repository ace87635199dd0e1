package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/register"
)

// SessionRepository stores register sessions between requests
type SessionRepository interface {
	// Get returns nil, nil when the register has no session
	Get(ctx context.Context, branchID uuid.UUID, registerID string) (*register.Session, error)
	Save(ctx context.Context, session *register.Session) error
	Delete(ctx context.Context, branchID uuid.UUID, registerID string) error
	// Lock holds the register exclusively across every process sharing the
	// store until release is called. It fails with apperror.ErrRegisterBusy
	// when the register cannot be acquired in time.
	Lock(ctx context.Context, branchID uuid.UUID, registerID string) (release func(), err error)
}
