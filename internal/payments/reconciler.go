package payments

import (
	"context"
	"net/url"

	"github.com/campmart-lk/checkout/internal/backend"
	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/campmart-lk/checkout/pkg/logger"
	"github.com/campmart-lk/checkout/pkg/metrics"
	"github.com/campmart-lk/checkout/pkg/payhere"
)

// CancelReason is the reason recorded against the backend when the renter
// abandons or fails the gateway payment.
const CancelReason = "Payment failed or cancelled"

const cancelMessage = "No charge was made; your cart is unchanged."

type paymentBackend interface {
	ConfirmPayment(ctx context.Context, req backend.ConfirmPaymentRequest) (*backend.ConfirmPaymentData, error)
	CancelPayment(ctx context.Context, req backend.CancelPaymentRequest) error
	GetBooking(ctx context.Context, bookingID string) (*backend.BookingData, error)
	GetPaymentDetails(ctx context.Context, bookingID string) (*backend.PaymentData, error)
}

type cartClearer interface {
	Clear(ctx context.Context, renterID string) error
}

// Confirmation is the reconciled outcome of a success return. Booking and
// Payment are enrichment only; they may be nil when the backend lookups
// fail, and their absence never changes the paid outcome.
type Confirmation struct {
	OrderID   string
	PaymentID string
	BookingID string
	Amount    string
	Status    string
	Booking   *backend.BookingData
	Payment   *backend.PaymentDetail
}

// Cancellation is the outcome of a cancel return. It always exists; the
// cancel path has no failure mode visible to the renter.
type Cancellation struct {
	OrderID         string
	Message         string
	BackendNotified bool
}

// Reconciler terminates the gateway's return and cancel navigations. The
// return leg arrives via the renter's browser and is advisory: the backend
// owns the authoritative payment state.
type Reconciler struct {
	correlation CorrelationStore
	backend     paymentBackend
	carts       cartClearer
	metrics     *metrics.CheckoutMetrics
	logger      *logger.Logger
}

// NewReconciler wires the return/cancel reconciler.
func NewReconciler(
	correlation CorrelationStore,
	backendClient paymentBackend,
	carts cartClearer,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
) (*Reconciler, error) {
	switch {
	case correlation == nil:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "correlation store required")
	case backendClient == nil:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "backend client required")
	case carts == nil:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart store required")
	case logg == nil:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &Reconciler{
		correlation: correlation,
		backend:     backendClient,
		carts:       carts,
		metrics:     checkoutMetrics,
		logger:      logg,
	}, nil
}

// ReconcileSuccess settles a success return. The order id is the one hard
// requirement; the amount falls back to the durable handle when the gateway
// does not echo it. Enrichment lookups are best effort.
func (r *Reconciler) ReconcileSuccess(ctx context.Context, values url.Values) (*Confirmation, error) {
	result := payhere.ParseReturn(values)
	if !result.HasOrderID() {
		r.metrics.IncFailure("return_validation")
		return nil, pkgerrors.New(pkgerrors.CodeReturnValidation, "gateway return missing order id")
	}
	ctx = r.logger.WithOrderID(ctx, result.OrderID)

	handle := r.matchingHandle(ctx, result)
	amount := result.Amount
	if amount == "" && handle != nil {
		amount = handle.AdvanceAmount
		r.logger.Info(ctx, "amount recovered from current-order handle")
	}

	confirm, err := r.backend.ConfirmPayment(ctx, backend.ConfirmPaymentRequest{
		OrderID:        result.OrderID,
		PaymentID:      result.PaymentID,
		Amount:         amount,
		StatusCode:     result.StatusCode,
		PaymentDetails: paymentDetails(result),
	})
	if err != nil {
		// Booking stays provisional; the notify leg or support tooling
		// settles it later.
		r.metrics.IncFailure("confirm_payment")
		r.logger.Error(ctx, "payment confirmation failed", err)
		return nil, err
	}

	confirmation := &Confirmation{
		OrderID:   result.OrderID,
		PaymentID: result.PaymentID,
		BookingID: confirm.BookingID,
		Amount:    amount,
		Status:    confirm.Status,
	}
	if confirm.AmountPaid != "" {
		confirmation.Amount = confirm.AmountPaid
	}

	if confirm.BookingID != "" {
		if booking, err := r.backend.GetBooking(ctx, confirm.BookingID); err != nil {
			r.logger.Warn(ctx, "booking enrichment lookup failed")
		} else {
			confirmation.Booking = booking
		}
		if payment, err := r.backend.GetPaymentDetails(ctx, confirm.BookingID); err != nil {
			r.logger.Warn(ctx, "payment enrichment lookup failed")
		} else if payment != nil {
			confirmation.Payment = &payment.Payment
		}
	}

	r.cleanup(ctx, handle)
	r.metrics.IncConfirmed()
	r.logger.Info(ctx, "payment reconciled as paid")
	return confirmation, nil
}

// ReconcileCancel settles a cancel return. It never returns an error: the
// renter sees the cancel page no matter what the backend does.
func (r *Reconciler) ReconcileCancel(ctx context.Context, values url.Values) *Cancellation {
	result := payhere.ParseReturn(values)
	outcome := &Cancellation{OrderID: result.OrderID, Message: cancelMessage}

	if result.HasOrderID() {
		ctx = r.logger.WithOrderID(ctx, result.OrderID)
		err := r.backend.CancelPayment(ctx, backend.CancelPaymentRequest{
			OrderID:        result.OrderID,
			PaymentID:      result.PaymentID,
			Reason:         CancelReason,
			PaymentDetails: paymentDetails(result),
		})
		if err != nil {
			r.metrics.IncFailure("cancel_payment")
			r.logger.Error(ctx, "payment cancellation notification failed", err)
		} else {
			outcome.BackendNotified = true
		}
	}

	// Handle and lock go away; the cart snapshot stays so the renter can
	// retry without rebuilding the cart.
	if handle := r.matchingHandle(ctx, result); handle != nil {
		if err := r.correlation.ClearCurrentOrder(ctx, handle.RenterID); err != nil {
			r.logger.Warn(ctx, "current-order handle cleanup failed")
		}
		if err := r.correlation.ReleaseLock(ctx, handle.CartID); err != nil {
			r.logger.Warn(ctx, "checkout lock release failed")
		}
	}

	r.metrics.IncCancelled()
	r.logger.Info(ctx, "payment reconciled as cancelled")
	return outcome
}

// matchingHandle loads the durable handle using the renter id echoed back in
// custom_2 and returns it only when its order id matches the return. A stale
// handle from an older attempt must not contribute its amount or cart id.
func (r *Reconciler) matchingHandle(ctx context.Context, result payhere.Result) *CurrentOrder {
	renterID := result.Custom[1]
	if renterID == "" || !result.HasOrderID() {
		return nil
	}
	handle, err := r.correlation.CurrentOrder(ctx, renterID)
	if err != nil {
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			r.logger.Warn(ctx, "current-order handle lookup failed")
		}
		return nil
	}
	if handle.OrderID != result.OrderID {
		return nil
	}
	return handle
}

func (r *Reconciler) cleanup(ctx context.Context, handle *CurrentOrder) {
	if handle == nil {
		return
	}
	if err := r.correlation.ClearCurrentOrder(ctx, handle.RenterID); err != nil {
		r.logger.Warn(ctx, "current-order handle cleanup failed")
	}
	if err := r.correlation.ReleaseLock(ctx, handle.CartID); err != nil {
		r.logger.Warn(ctx, "checkout lock release failed")
	}
	if err := r.carts.Clear(ctx, handle.RenterID); err != nil {
		r.logger.Warn(ctx, "cart snapshot cleanup failed")
	}
}

func paymentDetails(result payhere.Result) map[string]string {
	details := map[string]string{}
	if result.Method != "" {
		details["method"] = result.Method
	}
	if result.Message != "" {
		details["message"] = result.Message
	}
	if result.Currency != "" {
		details["currency"] = result.Currency
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
