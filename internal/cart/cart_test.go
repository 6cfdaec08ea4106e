package cart

import (
	"testing"
	"time"

	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/shopspring/decimal"
)

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleCart() Cart {
	return Cart{
		CartID:   "cart-77",
		RenterID: "renter-9",
		Items: []LineItem{
			{ItemID: "eq-1", Name: "Dome Tent", PricePerDay: decimal.NewFromInt(1200), Quantity: 1, StockQuantity: 4},
			{ItemID: "eq-2", Name: "Camp Stove", PricePerDay: decimal.NewFromInt(1000), Quantity: 2, StockQuantity: 2},
		},
		StartDate: date("2025-06-20"),
		EndDate:   date("2025-06-26"),
	}
}

func TestValidateAcceptsWellFormedCart(t *testing.T) {
	t.Parallel()

	if err := sampleCart().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateInvariants(t *testing.T) {
	t.Parallel()

	empty := sampleCart()
	empty.Items = nil
	if err := empty.Validate(); err == nil {
		t.Fatal("expected empty cart to fail")
	}

	zeroQty := sampleCart()
	zeroQty.Items[0].Quantity = 0
	if err := zeroQty.Validate(); err == nil {
		t.Fatal("expected zero quantity to fail")
	}

	overStock := sampleCart()
	overStock.Items[1].Quantity = 3
	err := overStock.Validate()
	if err == nil {
		t.Fatal("expected over-stock quantity to fail")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}

	badWindow := sampleCart()
	badWindow.EndDate = badWindow.StartDate
	if err := badWindow.Validate(); err == nil {
		t.Fatal("expected same-day window to fail")
	}
}

func TestTotalSumsLineItems(t *testing.T) {
	t.Parallel()

	total := sampleCart().Total()
	if total.String() != "3200" {
		t.Fatalf("expected total 3200, got %s", total)
	}
}

func TestRentalDaysInclusive(t *testing.T) {
	t.Parallel()

	c := sampleCart()
	if days := c.RentalDays(); days != 7 {
		t.Fatalf("expected 7 rental days, got %d", days)
	}

	c.EndDate = date("2025-06-21")
	if days := c.RentalDays(); days != 2 {
		t.Fatalf("expected 2 rental days for adjacent dates, got %d", days)
	}

	c.EndDate = c.StartDate
	if days := c.RentalDays(); days != 0 {
		t.Fatalf("expected 0 days for empty window, got %d", days)
	}
}

func TestItemsDescription(t *testing.T) {
	t.Parallel()

	want := "Dome Tent (x1), Camp Stove (x2)"
	if got := sampleCart().ItemsDescription(); got != want {
		t.Fatalf("unexpected description %q", got)
	}
}
