// Package register holds the per-terminal state of an order being rung up.
package register

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/cart"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/domain/payment"
)

// Session is what one register is working on: the cart, the payment in
// progress and how the order will be served.
type Session struct {
	BranchID    uuid.UUID           `json:"branch_id"`
	RegisterID  string              `json:"register_id"`
	Cart        cart.Cart           `json:"cart"`
	Payment     payment.Coordinator `json:"payment"`
	OrderType   enum.OrderType      `json:"order_type"`
	TableNumber *string             `json:"table_number,omitempty"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewSession returns an empty takeaway session
func NewSession(branchID uuid.UUID, registerID string) *Session {
	return &Session{
		BranchID:   branchID,
		RegisterID: registerID,
		Payment:    payment.New(),
		OrderType:  enum.OrderTypeTakeaway,
	}
}

// Key identifies the session across stores
func (s *Session) Key() string {
	return Key(s.BranchID, s.RegisterID)
}

// Key builds the store key of a branch register
func Key(branchID uuid.UUID, registerID string) string {
	return branchID.String() + ":" + strings.TrimSpace(registerID)
}

// PaymentOpen reports whether a payment is being collected
func (s *Session) PaymentOpen() bool {
	return s.Payment.State.Open()
}

// Reset starts the next order on the same register
func (s *Session) Reset() {
	s.Cart = cart.Cart{}
	s.Payment = payment.New()
	s.OrderType = enum.OrderTypeTakeaway
	s.TableNumber = nil
}
