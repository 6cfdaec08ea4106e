package payments

import (
	"bytes"
	"context"
	"time"

	"github.com/campmart-lk/checkout/internal/backend"
	"github.com/campmart-lk/checkout/internal/cart"
	"github.com/campmart-lk/checkout/pkg/enums"
	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/campmart-lk/checkout/pkg/logger"
	"github.com/campmart-lk/checkout/pkg/metrics"
	"github.com/campmart-lk/checkout/pkg/payhere"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type cartLoader interface {
	Get(ctx context.Context, renterID string) (*cart.Cart, error)
}

type bookingCreator interface {
	CreateBooking(ctx context.Context, req backend.CreateBookingRequest) (*backend.CreateBookingData, error)
}

type idGenerator interface {
	NewID() string
}

// CheckoutResult is what the API hands back after a successful dispatch.
// HandoffHTML is the page the browser renders to reach the gateway.
type CheckoutResult struct {
	OrderID       string
	BookingID     string
	TotalAmount   string
	AdvanceAmount string
	State         enums.CheckoutState
	HandoffHTML   []byte
}

// Service runs the checkout orchestration: load cart, split the advance,
// sign, create the provisional booking, then dispatch.
type Service interface {
	Checkout(ctx context.Context, renterID string, profile Profile) (*CheckoutResult, error)
}

type service struct {
	carts       cartLoader
	builder     *RequestBuilder
	correlation CorrelationStore
	backend     bookingCreator
	transport   GatewayTransport
	ids         idGenerator
	advanceRate decimal.Decimal
	metrics     *metrics.CheckoutMetrics
	logger      *logger.Logger
	now         func() time.Time
}

// NewService wires the checkout orchestration.
func NewService(
	carts cartLoader,
	builder *RequestBuilder,
	correlation CorrelationStore,
	backendClient bookingCreator,
	transport GatewayTransport,
	ids idGenerator,
	advanceRate decimal.Decimal,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
) (Service, error) {
	switch {
	case carts == nil:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart loader required")
	case builder == nil:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "request builder required")
	case correlation == nil:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "correlation store required")
	case backendClient == nil:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "backend client required")
	case transport == nil:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "gateway transport required")
	case ids == nil:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order id generator required")
	case logg == nil:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	if advanceRate.LessThanOrEqual(decimal.Zero) || advanceRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "advance rate must be in (0, 1]")
	}
	return &service{
		carts:       carts,
		builder:     builder,
		correlation: correlation,
		backend:     backendClient,
		transport:   transport,
		ids:         ids,
		advanceRate: advanceRate,
		metrics:     checkoutMetrics,
		logger:      logg,
		now:         time.Now,
	}, nil
}

func (s *service) Checkout(ctx context.Context, renterID string, profile Profile) (*CheckoutResult, error) {
	started := s.now()
	s.metrics.IncStarted()
	ctx = s.logger.WithRenterID(ctx, renterID)

	snapshot, err := s.carts.Get(ctx, renterID)
	if err != nil {
		s.metrics.IncFailure("load_cart")
		return nil, err
	}
	if err := snapshot.Validate(); err != nil {
		s.metrics.IncFailure("validate_cart")
		return nil, err
	}

	total := snapshot.Total()
	advance := total.Mul(s.advanceRate)
	orderID := s.ids.NewID()
	ctx = s.logger.WithOrderID(ctx, orderID)
	ctx = s.logger.WithCartID(ctx, snapshot.CartID)

	params, err := s.builder.Build(*snapshot, orderID, advance, total, profile)
	if err != nil {
		s.metrics.IncFailure("build_request")
		return nil, err
	}

	locked, err := s.correlation.AcquireLock(ctx, snapshot.CartID)
	if err != nil {
		s.metrics.IncFailure("acquire_lock")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "acquiring checkout lock")
	}
	if !locked {
		s.metrics.IncFailure("lock_held")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a checkout for this cart is already in progress")
	}

	handle := CurrentOrder{
		OrderID:       orderID,
		CartID:        snapshot.CartID,
		RenterID:      renterID,
		TotalAmount:   payhere.FormatAmount(total),
		AdvanceAmount: params.Amount,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.correlation.SaveCurrentOrder(ctx, handle); err != nil {
		s.releaseLock(ctx, snapshot.CartID)
		s.metrics.IncFailure("save_handle")
		return nil, err
	}

	booking, err := s.backend.CreateBooking(ctx, backend.CreateBookingRequest{
		CartID:        snapshot.CartID,
		OrderID:       orderID,
		RenterID:      renterID,
		Items:         bookingItems(snapshot.Items),
		StartDate:     snapshot.StartDate.Format(dateLayout),
		EndDate:       snapshot.EndDate.Format(dateLayout),
		TotalAmount:   handle.TotalAmount,
		AdvanceAmount: handle.AdvanceAmount,
		Status:        enums.PaymentStatusConfirmed,
	})
	if err != nil {
		// No booking means no dispatch: the renter must never be sent to
		// pay for a booking the backend refused.
		s.releaseLock(ctx, snapshot.CartID)
		s.metrics.IncFailure("create_booking")
		s.logger.Error(ctx, "provisional booking creation failed", err)
		return nil, err
	}
	handle.BookingID = booking.BookingID
	if err := s.correlation.SaveCurrentOrder(ctx, handle); err != nil {
		s.logger.Warn(ctx, "current-order handle refresh failed after booking creation")
	}

	var page bytes.Buffer
	if err := s.transport.Dispatch(ctx, &page, params); err != nil {
		s.releaseLock(ctx, snapshot.CartID)
		s.metrics.IncFailure("gateway_dispatch")
		s.logger.Error(ctx, "gateway handoff failed", err)
		return nil, err
	}

	s.metrics.IncDispatched()
	s.metrics.ObserveDispatch(s.now().Sub(started))
	s.logger.Info(ctx, "checkout dispatched to gateway")

	return &CheckoutResult{
		OrderID:       orderID,
		BookingID:     booking.BookingID,
		TotalAmount:   handle.TotalAmount,
		AdvanceAmount: handle.AdvanceAmount,
		State:         enums.CheckoutStateGatewayDispatched,
		HandoffHTML:   page.Bytes(),
	}, nil
}

func (s *service) releaseLock(ctx context.Context, cartID string) {
	if err := s.correlation.ReleaseLock(ctx, cartID); err != nil {
		s.logger.Warn(ctx, "checkout lock release failed")
	}
}

func bookingItems(lines []cart.LineItem) []backend.BookingItem {
	items := make([]backend.BookingItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, backend.BookingItem{
			EquipmentID: line.ItemID,
			Quantity:    line.Quantity,
			Price:       payhere.FormatAmount(line.PricePerDay),
		})
	}
	return items
}
