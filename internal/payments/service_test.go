package payments

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/campmart-lk/checkout/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newTestService(t *testing.T, carts *stubCartLoader, correlation *memCorrelation, be *stubBackend, transport *spyTransport) Service {
	t.Helper()
	builder, err := NewRequestBuilder(testGateway(t))
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	logg := logger.New(logger.Options{Level: zerolog.Disabled, Output: io.Discard})
	svc, err := NewService(
		carts,
		builder,
		correlation,
		be,
		transport,
		fixedIDs{id: "CM_1750000000000_AB12CD"},
		decimal.RequireFromString("0.5"),
		nil,
		logg,
	)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc
}

func TestCheckoutHappyPath(t *testing.T) {
	t.Parallel()

	snapshot := sampleCart()
	carts := &stubCartLoader{cart: &snapshot}
	correlation := newMemCorrelation()
	be := &stubBackend{bookingID: "bk-100"}
	transport := &spyTransport{}
	svc := newTestService(t, carts, correlation, be, transport)

	result, err := svc.Checkout(context.Background(), "renter-42", Profile{})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if result.OrderID != "CM_1750000000000_AB12CD" {
		t.Fatalf("unexpected order id %q", result.OrderID)
	}
	if result.BookingID != "bk-100" {
		t.Fatalf("unexpected booking id %q", result.BookingID)
	}
	if result.AdvanceAmount != "1600.00" || result.TotalAmount != "3200.00" {
		t.Fatalf("unexpected amounts: advance %q total %q", result.AdvanceAmount, result.TotalAmount)
	}
	if len(result.HandoffHTML) == 0 {
		t.Fatalf("expected handoff page bytes")
	}

	if be.createReq == nil {
		t.Fatalf("booking should have been created")
	}
	if be.createReq.AdvanceAmount != "1600.00" || string(be.createReq.Status) != "Confirmed" {
		t.Fatalf("provisional booking payload wrong: %+v", be.createReq)
	}
	if transport.params.Amount != "1600.00" {
		t.Fatalf("dispatched amount must match the signed amount, got %q", transport.params.Amount)
	}

	handle, err := correlation.CurrentOrder(context.Background(), "renter-42")
	if err != nil {
		t.Fatalf("handle should be persisted: %v", err)
	}
	if handle.BookingID != "bk-100" || handle.AdvanceAmount != "1600.00" {
		t.Fatalf("handle not refreshed with booking: %+v", handle)
	}
	if !correlation.locks["cart-77"] {
		t.Fatalf("checkout lock should stay held until reconciliation")
	}
}

func TestCheckoutBackendFailureNeverDispatches(t *testing.T) {
	t.Parallel()

	snapshot := sampleCart()
	carts := &stubCartLoader{cart: &snapshot}
	correlation := newMemCorrelation()
	be := &stubBackend{createErr: pkgerrors.New(pkgerrors.CodeBackendCall, "upstream down")}
	transport := &spyTransport{}
	svc := newTestService(t, carts, correlation, be, transport)

	_, err := svc.Checkout(context.Background(), "renter-42", Profile{})
	if err == nil {
		t.Fatalf("expected checkout to fail")
	}
	if transport.dispatched != 0 {
		t.Fatalf("gateway handoff must not happen without a booking")
	}
	if correlation.locks["cart-77"] {
		t.Fatalf("lock should be released on booking failure")
	}
}

func TestCheckoutDispatchFailureReleasesLock(t *testing.T) {
	t.Parallel()

	snapshot := sampleCart()
	carts := &stubCartLoader{cart: &snapshot}
	correlation := newMemCorrelation()
	be := &stubBackend{bookingID: "bk-100"}
	transport := &spyTransport{err: pkgerrors.New(pkgerrors.CodeGatewayDispatch, "render failed")}
	svc := newTestService(t, carts, correlation, be, transport)

	_, err := svc.Checkout(context.Background(), "renter-42", Profile{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeGatewayDispatch {
		t.Fatalf("expected gateway dispatch error, got %v", err)
	}
	if correlation.locks["cart-77"] {
		t.Fatalf("lock should be released on dispatch failure")
	}
}

func TestCheckoutConflictsWhenLockHeld(t *testing.T) {
	t.Parallel()

	snapshot := sampleCart()
	carts := &stubCartLoader{cart: &snapshot}
	correlation := newMemCorrelation()
	correlation.locks["cart-77"] = true
	svc := newTestService(t, carts, correlation, &stubBackend{bookingID: "bk-100"}, &spyTransport{})

	_, err := svc.Checkout(context.Background(), "renter-42", Profile{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !strings.Contains(typed.Message(), "already in progress") {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestCheckoutRejectsInvalidCart(t *testing.T) {
	t.Parallel()

	snapshot := sampleCart()
	snapshot.Items[0].Quantity = 99
	carts := &stubCartLoader{cart: &snapshot}
	correlation := newMemCorrelation()
	transport := &spyTransport{}
	svc := newTestService(t, carts, correlation, &stubBackend{}, transport)

	_, err := svc.Checkout(context.Background(), "renter-42", Profile{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if transport.dispatched != 0 {
		t.Fatalf("invalid cart must not reach the gateway")
	}
	if len(correlation.locks) != 0 {
		t.Fatalf("no lock should be taken for an invalid cart")
	}
}

func TestNewServiceRejectsBadAdvanceRate(t *testing.T) {
	t.Parallel()

	builder, _ := NewRequestBuilder(testGateway(t))
	logg := logger.New(logger.Options{Level: zerolog.Disabled, Output: io.Discard})
	snapshot := sampleCart()

	_, err := NewService(
		&stubCartLoader{cart: &snapshot},
		builder,
		newMemCorrelation(),
		&stubBackend{},
		&spyTransport{},
		fixedIDs{id: "CM_1_X"},
		decimal.RequireFromString("1.5"),
		nil,
		logg,
	)
	if err == nil {
		t.Fatalf("advance rate above 1 should be rejected")
	}
	if !errors.As(err, new(*pkgerrors.Error)) {
		t.Fatalf("expected typed error, got %v", err)
	}
}
