package payments

import (
	"context"
	"io"
	"time"

	"github.com/campmart-lk/checkout/internal/backend"
	"github.com/campmart-lk/checkout/internal/cart"
	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/campmart-lk/checkout/pkg/payhere"
	"github.com/shopspring/decimal"
)

func sampleCart() cart.Cart {
	return cart.Cart{
		CartID:   "cart-77",
		RenterID: "renter-42",
		Items: []cart.LineItem{
			{ItemID: "eq-1", Name: "Dome Tent", PricePerDay: decimal.NewFromInt(1200), Quantity: 1, StockQuantity: 3},
			{ItemID: "eq-2", Name: "Camp Stove", PricePerDay: decimal.NewFromInt(1000), Quantity: 2, StockQuantity: 5},
		},
		StartDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC),
	}
}

type stubCartLoader struct {
	cart *cart.Cart
	err  error

	cleared []string
}

func (s *stubCartLoader) Get(ctx context.Context, renterID string) (*cart.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func (s *stubCartLoader) Clear(ctx context.Context, renterID string) error {
	s.cleared = append(s.cleared, renterID)
	return nil
}

// memCorrelation is an in-memory CorrelationStore with scriptable failures.
type memCorrelation struct {
	handles map[string]CurrentOrder
	locks   map[string]bool

	saveErr error
	lockErr error

	releasedLocks []string
}

func newMemCorrelation() *memCorrelation {
	return &memCorrelation{
		handles: map[string]CurrentOrder{},
		locks:   map[string]bool{},
	}
}

func (m *memCorrelation) SaveCurrentOrder(ctx context.Context, handle CurrentOrder) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.handles[handle.RenterID] = handle
	return nil
}

func (m *memCorrelation) CurrentOrder(ctx context.Context, renterID string) (*CurrentOrder, error) {
	handle, ok := m.handles[renterID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no current order for renter")
	}
	return &handle, nil
}

func (m *memCorrelation) ClearCurrentOrder(ctx context.Context, renterID string) error {
	delete(m.handles, renterID)
	return nil
}

func (m *memCorrelation) AcquireLock(ctx context.Context, cartID string) (bool, error) {
	if m.lockErr != nil {
		return false, m.lockErr
	}
	if m.locks[cartID] {
		return false, nil
	}
	m.locks[cartID] = true
	return true, nil
}

func (m *memCorrelation) ReleaseLock(ctx context.Context, cartID string) error {
	delete(m.locks, cartID)
	m.releasedLocks = append(m.releasedLocks, cartID)
	return nil
}

// stubBackend records calls and serves scripted responses.
type stubBackend struct {
	createReq *backend.CreateBookingRequest
	createErr error
	bookingID string

	confirmReq *backend.ConfirmPaymentRequest
	confirmErr error
	confirm    backend.ConfirmPaymentData

	cancelReq *backend.CancelPaymentRequest
	cancelErr error

	bookingErr error
	booking    *backend.BookingData
	paymentErr error
	payment    *backend.PaymentData
}

func (s *stubBackend) CreateBooking(ctx context.Context, req backend.CreateBookingRequest) (*backend.CreateBookingData, error) {
	s.createReq = &req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &backend.CreateBookingData{BookingID: s.bookingID}, nil
}

func (s *stubBackend) ConfirmPayment(ctx context.Context, req backend.ConfirmPaymentRequest) (*backend.ConfirmPaymentData, error) {
	s.confirmReq = &req
	if s.confirmErr != nil {
		return nil, s.confirmErr
	}
	out := s.confirm
	return &out, nil
}

func (s *stubBackend) CancelPayment(ctx context.Context, req backend.CancelPaymentRequest) error {
	s.cancelReq = &req
	return s.cancelErr
}

func (s *stubBackend) GetBooking(ctx context.Context, bookingID string) (*backend.BookingData, error) {
	if s.bookingErr != nil {
		return nil, s.bookingErr
	}
	return s.booking, nil
}

func (s *stubBackend) GetPaymentDetails(ctx context.Context, bookingID string) (*backend.PaymentData, error) {
	if s.paymentErr != nil {
		return nil, s.paymentErr
	}
	return s.payment, nil
}

// spyTransport records whether a dispatch happened and what was sent.
type spyTransport struct {
	dispatched int
	params     payhere.CheckoutParams
	err        error
}

func (s *spyTransport) Dispatch(ctx context.Context, w io.Writer, params payhere.CheckoutParams) error {
	if s.err != nil {
		return s.err
	}
	s.dispatched++
	s.params = params
	_, _ = io.WriteString(w, "<form>")
	return nil
}

type fixedIDs struct {
	id string
}

func (f fixedIDs) NewID() string { return f.id }
