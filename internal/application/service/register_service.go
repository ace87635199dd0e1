package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/cart"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/domain/invoicing"
	"github.com/sangkips/restopos-api/internal/domain/pricing"
	"github.com/sangkips/restopos-api/internal/domain/register"
	"github.com/sangkips/restopos-api/internal/domain/repository"
	infraRepo "github.com/sangkips/restopos-api/internal/infrastructure/repository"
	"github.com/sangkips/restopos-api/internal/observability/metrics"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RegisterView is a register session together with its current price breakdown
type RegisterView struct {
	Session register.Session
	Priced  entity.PricedCart
}

// CheckoutResult is the outcome of a committed sale
type CheckoutResult struct {
	Invoice *entity.Invoice
	Next    RegisterView
}

// RegisterService drives the cart and payment of each register. Every
// operation locks the register, loads its session, applies one core step to
// the latest state and saves the result.
type RegisterService struct {
	sessions repository.SessionRepository
	catalog  repository.CatalogRepository
	invoices repository.InvoiceRepository
	store    *cart.Store
	engine   *pricing.Engine
	factory  *invoicing.Factory
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewRegisterService creates a new register service
func NewRegisterService(
	sessions repository.SessionRepository,
	catalog repository.CatalogRepository,
	invoices repository.InvoiceRepository,
	store *cart.Store,
	engine *pricing.Engine,
	factory *invoicing.Factory,
	m *metrics.Metrics,
	logger *zap.Logger,
) *RegisterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegisterService{
		sessions: sessions,
		catalog:  catalog,
		invoices: invoices,
		store:    store,
		engine:   engine,
		factory:  factory,
		metrics:  m,
		logger:   logger.Named("register"),
		now:      time.Now,
	}
}

func (s *RegisterService) view(sess *register.Session) *RegisterView {
	return &RegisterView{
		Session: *sess,
		Priced:  s.engine.Price(sess.Cart.Lines, sess.Cart.Discount),
	}
}

func branchFrom(ctx context.Context) (uuid.UUID, error) {
	branchID, ok := infraRepo.GetBranchID(ctx)
	if !ok || branchID == uuid.Nil {
		return uuid.Nil, apperror.NewBadRequestError("Branch context required")
	}
	return branchID, nil
}

func (s *RegisterService) load(ctx context.Context, branchID uuid.UUID, registerID string) (*register.Session, error) {
	sess, err := s.sessions.Get(ctx, branchID, registerID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess = register.NewSession(branchID, registerID)
	}
	return sess, nil
}

// mutate runs fn on a copy of the register session and saves it if fn
// succeeds. A failing fn leaves the stored session untouched.
func (s *RegisterService) mutate(ctx context.Context, registerID string, fn func(sess *register.Session) error) (*RegisterView, error) {
	branchID, err := branchFrom(ctx)
	if err != nil {
		return nil, err
	}
	registerID = strings.TrimSpace(registerID)
	if registerID == "" {
		return nil, apperror.NewBadRequestError("Register ID required")
	}

	unlock, err := s.sessions.Lock(ctx, branchID, registerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, branchID, registerID)
	if err != nil {
		return nil, err
	}

	work := *sess
	if err := fn(&work); err != nil {
		return nil, err
	}

	work.UpdatedAt = s.now().UTC()
	if err := s.sessions.Save(ctx, &work); err != nil {
		return nil, err
	}
	return s.view(&work), nil
}

// editCart applies a cart step. The cart is frozen while a payment is open.
func (s *RegisterService) editCart(ctx context.Context, registerID string, fn func(c cart.Cart) (cart.Cart, error)) (*RegisterView, error) {
	return s.mutate(ctx, registerID, func(sess *register.Session) error {
		if sess.PaymentOpen() {
			return apperror.NewKindError(apperror.ErrInvalidCoordinatorTransition,
				"cancel payment before changing the cart")
		}
		next, err := fn(sess.Cart)
		if err != nil {
			return err
		}
		sess.Cart = next
		return nil
	})
}

func requireLine(c cart.Cart, lineID uuid.UUID) error {
	if _, ok := c.Line(lineID); !ok {
		return apperror.NewNotFoundError("Cart line")
	}
	return nil
}

// GetCart returns the register session and its price breakdown
func (s *RegisterService) GetCart(ctx context.Context, registerID string) (*RegisterView, error) {
	branchID, err := branchFrom(ctx)
	if err != nil {
		return nil, err
	}
	registerID = strings.TrimSpace(registerID)
	if registerID == "" {
		return nil, apperror.NewBadRequestError("Register ID required")
	}

	sess, err := s.load(ctx, branchID, registerID)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// AddItem adds a manually priced line
func (s *RegisterService) AddItem(ctx context.Context, registerID string, input cart.AddItemInput) (*RegisterView, error) {
	return s.editCart(ctx, registerID, func(c cart.Cart) (cart.Cart, error) {
		return s.store.AddItem(c, input)
	})
}

// AddProduct adds a catalog product, optionally at a variant
func (s *RegisterService) AddProduct(ctx context.Context, registerID string, productID, variantID uuid.UUID, quantity int) (*RegisterView, error) {
	return s.editCart(ctx, registerID, func(c cart.Cart) (cart.Cart, error) {
		return s.store.AddProduct(ctx, c, s.catalog, productID, variantID, quantity)
	})
}

// SetQuantity sets a line's quantity, clamped to at least one
func (s *RegisterService) SetQuantity(ctx context.Context, registerID string, lineID uuid.UUID, quantity int) (*RegisterView, error) {
	return s.editCart(ctx, registerID, func(c cart.Cart) (cart.Cart, error) {
		if err := requireLine(c, lineID); err != nil {
			return c, err
		}
		return s.store.SetQuantity(c, lineID, quantity), nil
	})
}

// ChangeQuantity adds delta to a line's quantity
func (s *RegisterService) ChangeQuantity(ctx context.Context, registerID string, lineID uuid.UUID, delta int) (*RegisterView, error) {
	return s.editCart(ctx, registerID, func(c cart.Cart) (cart.Cart, error) {
		if err := requireLine(c, lineID); err != nil {
			return c, err
		}
		return s.store.ChangeQuantity(c, lineID, delta), nil
	})
}

// RemoveItem drops a line
func (s *RegisterService) RemoveItem(ctx context.Context, registerID string, lineID uuid.UUID) (*RegisterView, error) {
	return s.editCart(ctx, registerID, func(c cart.Cart) (cart.Cart, error) {
		if err := requireLine(c, lineID); err != nil {
			return c, err
		}
		return s.store.RemoveItem(c, lineID), nil
	})
}

// SetDiscount replaces the cart discount
func (s *RegisterService) SetDiscount(ctx context.Context, registerID string, discount entity.DiscountConfig) (*RegisterView, error) {
	return s.editCart(ctx, registerID, func(c cart.Cart) (cart.Cart, error) {
		return s.store.SetDiscount(c, discount)
	})
}

// Clear empties the cart
func (s *RegisterService) Clear(ctx context.Context, registerID string) (*RegisterView, error) {
	return s.editCart(ctx, registerID, func(c cart.Cart) (cart.Cart, error) {
		return s.store.Clear(c), nil
	})
}

// SetOrderType sets how the order is served. The table number is kept only
// for dine-in orders and is checked again at checkout.
func (s *RegisterService) SetOrderType(ctx context.Context, registerID string, orderType enum.OrderType, tableNumber *string) (*RegisterView, error) {
	if !orderType.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "order_type", Message: "must be Takeaway or DineIn"},
		})
	}

	return s.mutate(ctx, registerID, func(sess *register.Session) error {
		sess.OrderType = orderType
		sess.TableNumber = nil
		if orderType == enum.OrderTypeDineIn && tableNumber != nil {
			if t := strings.TrimSpace(*tableNumber); t != "" {
				sess.TableNumber = &t
			}
		}
		return nil
	})
}

// BeginPayment opens payment for the current cart total
func (s *RegisterService) BeginPayment(ctx context.Context, registerID string) (*RegisterView, error) {
	return s.mutate(ctx, registerID, func(sess *register.Session) error {
		if sess.Cart.IsEmpty() {
			return apperror.ErrEmptyCart
		}
		priced := s.engine.Price(sess.Cart.Lines, sess.Cart.Discount)
		next, err := sess.Payment.Begin(priced.Total)
		if err != nil {
			return err
		}
		sess.Payment = next
		return nil
	})
}

// SelectMethod picks the payment method
func (s *RegisterService) SelectMethod(ctx context.Context, registerID string, method enum.PaymentMethod) (*RegisterView, error) {
	return s.mutate(ctx, registerID, func(sess *register.Session) error {
		next, err := sess.Payment.SelectMethod(method)
		if err != nil {
			return err
		}
		sess.Payment = next
		return nil
	})
}

// ConfirmPaidAmount records cash handed over; nil means the exact total
func (s *RegisterService) ConfirmPaidAmount(ctx context.Context, registerID string, amount *decimal.Decimal) (*RegisterView, error) {
	return s.mutate(ctx, registerID, func(sess *register.Session) error {
		next, err := sess.Payment.ConfirmPaidAmount(amount)
		if err != nil {
			return err
		}
		sess.Payment = next
		return nil
	})
}

// ConfirmTransferReceipt records the transfer reference
func (s *RegisterService) ConfirmTransferReceipt(ctx context.Context, registerID, reference string) (*RegisterView, error) {
	return s.mutate(ctx, registerID, func(sess *register.Session) error {
		next, err := sess.Payment.ConfirmTransferReceipt(reference)
		if err != nil {
			return err
		}
		sess.Payment = next
		return nil
	})
}

// SetCustomer attaches or clears the buyer block of the open payment
func (s *RegisterService) SetCustomer(ctx context.Context, registerID string, info entity.CustomerInfo) (*RegisterView, error) {
	return s.mutate(ctx, registerID, func(sess *register.Session) error {
		next, err := sess.Payment.SetCustomer(info)
		if err != nil {
			return err
		}
		sess.Payment = next
		return nil
	})
}

// CancelPayment abandons the open payment and unlocks the cart
func (s *RegisterService) CancelPayment(ctx context.Context, registerID string) (*RegisterView, error) {
	return s.mutate(ctx, registerID, func(sess *register.Session) error {
		next, err := sess.Payment.Cancel()
		if err != nil {
			return err
		}
		sess.Payment = next
		return nil
	})
}

// Checkout commits the payment, creates and stores the invoice, and starts
// the next order on the register. If the invoice cannot be stored the
// session is left exactly as it was and the error is ErrCommitFailed.
func (s *RegisterService) Checkout(ctx context.Context, registerID string, cashier entity.Cashier) (*CheckoutResult, error) {
	var invoice *entity.Invoice

	next, err := s.mutate(ctx, registerID, func(sess *register.Session) error {
		priced := s.engine.Price(sess.Cart.Lines, sess.Cart.Discount)

		// the cart is frozen during payment, so this only trips on stale state
		if sess.Payment.State.Open() && !sess.Payment.Total.Equal(priced.Total) {
			return apperror.NewKindError(apperror.ErrInvalidCoordinatorTransition,
				"cart total changed since payment began")
		}

		decision, committed, err := sess.Payment.Commit()
		if err != nil {
			return err
		}

		inv, err := s.factory.Create(ctx, invoicing.CreateInput{
			BranchID:    sess.BranchID,
			Lines:       sess.Cart.Lines,
			Discount:    sess.Cart.Discount,
			Priced:      priced,
			Payment:     decision,
			OrderType:   sess.OrderType,
			TableNumber: sess.TableNumber,
			Cashier:     cashier,
		})
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				return err
			}
			s.logger.Error("invoice number unavailable",
				zap.String("register_id", sess.RegisterID),
				zap.Error(err))
			return apperror.NewKindError(apperror.ErrCommitFailed, "commit failed: invoice number unavailable")
		}

		if err := s.invoices.Create(ctx, inv); err != nil {
			s.logger.Error("invoice persistence failed",
				zap.String("register_id", sess.RegisterID),
				zap.String("number", inv.Number),
				zap.Error(err))
			return apperror.NewKindError(apperror.ErrCommitFailed, "commit failed")
		}

		sess.Payment = committed
		sess.Reset()
		invoice = inv
		return nil
	})
	if err != nil {
		reason := "rejected"
		if errors.Is(err, apperror.ErrCommitFailed) {
			reason = "commit_failed"
		}
		s.metrics.RecordCheckoutFailure(reason)
		return nil, err
	}

	s.metrics.RecordInvoiceCreated(invoice.PaymentMethod, invoice.OrderType, invoice.Totals.Total)
	s.logger.Info("invoice committed",
		zap.String("branch_id", invoice.BranchID.String()),
		zap.String("register_id", strings.TrimSpace(registerID)),
		zap.String("number", invoice.Number),
		zap.String("method", invoice.PaymentMethod.String()),
		zap.String("total", invoice.Totals.Total.StringFixed(pricing.CurrencyPlaces)),
		zap.String("cashier_id", cashier.ID.String()))

	return &CheckoutResult{Invoice: invoice, Next: *next}, nil
}
