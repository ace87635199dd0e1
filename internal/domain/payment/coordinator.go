// Package payment gates invoice creation on a completed payment selection.
//
// The Coordinator is a value. Each step returns the next coordinator and
// leaves the receiver untouched, so a rejected step never disturbs the
// state the caller already holds.
package payment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// State is a step of the payment flow
type State int

const (
	StateIdle State = iota
	StateSelectingMethod
	StateCollectingPaidAmount
	StateCollectingTransferReceipt
	StateReady
	StateCommitted
)

var stateNames = map[State]string{
	StateIdle:                      "Idle",
	StateSelectingMethod:           "SelectingMethod",
	StateCollectingPaidAmount:      "CollectingPaidAmount",
	StateCollectingTransferReceipt: "CollectingTransferReceipt",
	StateReady:                     "Ready",
	StateCommitted:                 "Committed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = State(n)
		return nil
	}
	for st, n := range stateNames {
		if n == name {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown payment state %q", name)
}

// Open reports whether a payment is in progress and may still be cancelled
func (s State) Open() bool {
	return s != StateIdle && s != StateCommitted
}

// Coordinator tracks one order's payment selection
type Coordinator struct {
	State            State                `json:"state"`
	Total            decimal.Decimal      `json:"total"`
	Method           enum.PaymentMethod   `json:"method"`
	PaidAmount       decimal.Decimal      `json:"paid_amount"`
	ReceiptReference string               `json:"receipt_reference,omitempty"`
	Customer         *entity.CustomerInfo `json:"customer,omitempty"`
}

// New returns an idle coordinator
func New() Coordinator {
	return Coordinator{State: StateIdle}
}

func transitionError(op string, from State) error {
	return apperror.NewKindError(apperror.ErrInvalidCoordinatorTransition,
		fmt.Sprintf("cannot %s while payment is %s", op, from))
}

// Begin opens payment for an order totalling total
func (c Coordinator) Begin(total decimal.Decimal) (Coordinator, error) {
	if c.State != StateIdle {
		return c, transitionError("begin payment", c.State)
	}
	if total.IsNegative() {
		return c, apperror.NewBadRequestError("Order total cannot be negative")
	}
	return Coordinator{
		State:      StateSelectingMethod,
		Total:      total,
		PaidAmount: total,
	}, nil
}

// SelectMethod picks the payment method. Card payments are ready at once
// with the paid amount set to the total.
func (c Coordinator) SelectMethod(method enum.PaymentMethod) (Coordinator, error) {
	if c.State != StateSelectingMethod {
		return c, transitionError("select a payment method", c.State)
	}
	if !method.Valid() {
		return c, apperror.NewBadRequestError(fmt.Sprintf("Unknown payment method %d", int(method)))
	}

	next := c
	next.Method = method
	next.PaidAmount = c.Total
	next.ReceiptReference = ""

	switch method {
	case enum.PaymentMethodCash:
		next.State = StateCollectingPaidAmount
	case enum.PaymentMethodTransfer:
		next.State = StateCollectingTransferReceipt
	default:
		next.State = StateReady
	}
	return next, nil
}

// ConfirmPaidAmount records the cash handed over. A nil amount means the
// exact total. Amounts below the total are accepted.
func (c Coordinator) ConfirmPaidAmount(amount *decimal.Decimal) (Coordinator, error) {
	if c.State != StateCollectingPaidAmount {
		return c, transitionError("confirm a paid amount", c.State)
	}

	paid := c.Total
	if amount != nil {
		paid = *amount
	}
	if paid.IsNegative() {
		return c, apperror.NewValidationError([]apperror.FieldError{
			{Field: "paid_amount", Message: "must not be negative"},
		})
	}

	next := c
	next.PaidAmount = paid
	next.State = StateReady
	return next, nil
}

// ConfirmTransferReceipt records the bank transfer reference
func (c Coordinator) ConfirmTransferReceipt(reference string) (Coordinator, error) {
	if c.State != StateCollectingTransferReceipt {
		return c, transitionError("confirm a transfer receipt", c.State)
	}

	reference = strings.TrimSpace(reference)
	if reference == "" {
		return c, apperror.NewValidationError([]apperror.FieldError{
			{Field: "receipt_reference", Message: "is required"},
		})
	}

	next := c
	next.ReceiptReference = reference
	next.State = StateReady
	return next, nil
}

// SetCustomer attaches the optional buyer block. A blank block clears it.
func (c Coordinator) SetCustomer(info entity.CustomerInfo) (Coordinator, error) {
	if !c.State.Open() {
		return c, transitionError("set customer details", c.State)
	}

	next := c
	if info.IsZero() {
		next.Customer = nil
	} else {
		next.Customer = &info
	}
	return next, nil
}

// Cancel abandons an open payment and returns to Idle
func (c Coordinator) Cancel() (Coordinator, error) {
	if !c.State.Open() {
		return c, transitionError("cancel payment", c.State)
	}
	return New(), nil
}

// Commit hands out the payment decision and closes the coordinator
func (c Coordinator) Commit() (entity.PaymentDecision, Coordinator, error) {
	if c.State != StateReady {
		return entity.PaymentDecision{}, c, transitionError("commit payment", c.State)
	}

	decision := entity.PaymentDecision{
		Method:           c.Method,
		PaidAmount:       c.PaidAmount,
		ChangeAmount:     entity.ChangeFor(c.PaidAmount, c.Total),
		ReceiptReference: c.ReceiptReference,
	}
	if c.Customer != nil {
		customer := *c.Customer
		decision.Customer = &customer
	}

	next := c
	next.State = StateCommitted
	return decision, next, nil
}
