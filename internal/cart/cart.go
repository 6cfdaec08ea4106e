package cart

import (
	"fmt"
	"math"
	"strings"
	"time"

	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/shopspring/decimal"
)

// LineItem is one rental line in a cart. The line price is already baked in
// upstream; totals here never re-derive pricing from the rental window.
type LineItem struct {
	ItemID        string          `json:"item_id"`
	Name          string          `json:"name"`
	PricePerDay   decimal.Decimal `json:"price_per_day"`
	Quantity      int             `json:"quantity"`
	StockQuantity int             `json:"stock_quantity"`
}

// Cart is the renter's equipment selection for a rental window.
type Cart struct {
	CartID    string     `json:"cart_id"`
	RenterID  string     `json:"renter_id"`
	Items     []LineItem `json:"items"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
}

// Validate enforces the cart invariants: at least one line, quantity within
// [1, stock] on every line, and a rental window that ends after it starts.
func (c Cart) Validate() error {
	if strings.TrimSpace(c.CartID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}
	if strings.TrimSpace(c.RenterID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "renter id required")
	}
	if len(c.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}
	for i, item := range c.Items {
		if strings.TrimSpace(item.ItemID) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d missing id", i))
		}
		if item.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %q quantity must be at least 1", item.ItemID)).
				WithDetails(map[string]any{"item_id": item.ItemID, "quantity": item.Quantity})
		}
		if item.Quantity > item.StockQuantity {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %q quantity exceeds stock", item.ItemID)).
				WithDetails(map[string]any{"item_id": item.ItemID, "quantity": item.Quantity, "stock_quantity": item.StockQuantity})
		}
		if item.PricePerDay.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %q has a negative price", item.ItemID))
		}
	}
	if !c.EndDate.After(c.StartDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end date must be after start date")
	}
	return nil
}

// Total sums price x quantity across every line.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.PricePerDay.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// RentalDays counts the rental window inclusive of both endpoints. Used only
// for informational fields, never for pricing.
func (c Cart) RentalDays() int {
	diff := c.EndDate.Sub(c.StartDate)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours()/24)) + 1
}

// ItemsDescription joins the lines into the human-readable summary sent to
// the gateway, e.g. "Dome Tent (x1), Camp Stove (x2)".
func (c Cart) ItemsDescription() string {
	parts := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		parts = append(parts, fmt.Sprintf("%s (x%d)", item.Name, item.Quantity))
	}
	return strings.Join(parts, ", ")
}
