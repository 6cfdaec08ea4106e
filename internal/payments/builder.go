package payments

import (
	"strconv"

	"github.com/campmart-lk/checkout/internal/cart"
	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/campmart-lk/checkout/pkg/payhere"
	"github.com/shopspring/decimal"
)

// RequestBuilder assembles a signed gateway payload from a cart and renter
// profile. The advance amount is formatted exactly once; the same string
// feeds the amount field and the hash.
type RequestBuilder struct {
	gateway *payhere.Client
}

// NewRequestBuilder builds the payment request builder.
func NewRequestBuilder(gateway *payhere.Client) (*RequestBuilder, error) {
	if gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payhere client required")
	}
	return &RequestBuilder{gateway: gateway}, nil
}

// Build produces the full outbound field set for one checkout attempt. The
// cart is re-validated here so stale snapshots cannot slip past an earlier
// check.
func (b *RequestBuilder) Build(c cart.Cart, orderID string, advance, total decimal.Decimal, profile Profile) (payhere.CheckoutParams, error) {
	if len(c.Items) == 0 {
		return payhere.CheckoutParams{}, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}
	if err := c.Validate(); err != nil {
		return payhere.CheckoutParams{}, err
	}
	if orderID == "" {
		return payhere.CheckoutParams{}, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	profile = profile.withDefaults()
	formattedAdvance := payhere.FormatAmount(advance)

	params := payhere.CheckoutParams{
		MerchantID: b.gateway.MerchantID(),
		ReturnURL:  b.gateway.ReturnURL(),
		CancelURL:  b.gateway.CancelURL(),
		NotifyURL:  b.gateway.NotifyURL(),

		OrderID:  orderID,
		Items:    c.ItemsDescription(),
		Currency: b.gateway.Currency(),
		Amount:   formattedAdvance,

		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Address:   profile.Address,
		City:      profile.City,
		Country:   profile.Country,

		DeliveryAddress: profile.DeliveryAddress,
		DeliveryCity:    profile.DeliveryCity,
		DeliveryCountry: profile.DeliveryCountry,

		Custom1: c.CartID,
		Custom2: c.RenterID,
		Custom3: strconv.Itoa(c.RentalDays()),
		Custom4: payhere.FormatAmount(total),

		Hash: b.gateway.Sign(orderID, formattedAdvance),
	}
	return params, nil
}
