package payhere

import (
	"net/url"
	"strings"
)

// Gateway status codes echoed on the return leg.
const (
	StatusCodeSuccess     = "2"
	StatusCodePending     = "0"
	StatusCodeCancelled   = "-1"
	StatusCodeFailed      = "-2"
	StatusCodeChargedback = "-3"
)

// Field is one form field of the outbound checkout post.
type Field struct {
	Name  string
	Value string
}

// CheckoutParams is the full outbound payment payload. Field names are part
// of the external protocol and must match the gateway exactly.
type CheckoutParams struct {
	MerchantID string
	ReturnURL  string
	CancelURL  string
	NotifyURL  string

	OrderID  string
	Items    string
	Currency string
	Amount   string

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	Country   string

	DeliveryAddress string
	DeliveryCity    string
	DeliveryCountry string

	Custom1 string
	Custom2 string
	Custom3 string
	Custom4 string
	Custom5 string

	Hash string
}

// Fields returns the wire-ordered form fields, skipping empty values.
func (p CheckoutParams) Fields() []Field {
	all := []Field{
		{"merchant_id", p.MerchantID},
		{"return_url", p.ReturnURL},
		{"cancel_url", p.CancelURL},
		{"notify_url", p.NotifyURL},
		{"order_id", p.OrderID},
		{"items", p.Items},
		{"currency", p.Currency},
		{"amount", p.Amount},
		{"first_name", p.FirstName},
		{"last_name", p.LastName},
		{"email", p.Email},
		{"phone", p.Phone},
		{"address", p.Address},
		{"city", p.City},
		{"country", p.Country},
		{"delivery_address", p.DeliveryAddress},
		{"delivery_city", p.DeliveryCity},
		{"delivery_country", p.DeliveryCountry},
		{"custom_1", p.Custom1},
		{"custom_2", p.Custom2},
		{"custom_3", p.Custom3},
		{"custom_4", p.Custom4},
		{"custom_5", p.Custom5},
		{"hash", p.Hash},
	}
	fields := make([]Field, 0, len(all))
	for _, field := range all {
		if strings.TrimSpace(field.Value) == "" {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

// Result is the normalized payment result parsed from a gateway return
// navigation. Every field except OrderID is optional; gateways vary in what
// they echo back.
type Result struct {
	OrderID    string
	PaymentID  string
	Amount     string
	Currency   string
	StatusCode string
	Method     string
	Message    string
	Custom     [5]string
}

// HasOrderID reports whether the return carried an order correlation id.
func (r Result) HasOrderID() bool {
	return r.OrderID != ""
}

// HasAmount reports whether the gateway echoed an amount.
func (r Result) HasAmount() bool {
	return r.Amount != ""
}

// ParseReturn extracts a Result from return query parameters, tolerating the
// parameter aliases different gateway versions emit.
func ParseReturn(values url.Values) Result {
	return Result{
		OrderID:    firstValue(values, "order_id"),
		PaymentID:  firstValue(values, "payment_id", "gateway_txn_id"),
		Amount:     firstValue(values, "payhere_amount", "amount"),
		Currency:   firstValue(values, "payhere_currency", "currency"),
		StatusCode: firstValue(values, "status_code", "status"),
		Method:     firstValue(values, "method"),
		Message:    firstValue(values, "message"),
		Custom: [5]string{
			firstValue(values, "custom_1"),
			firstValue(values, "custom_2"),
			firstValue(values, "custom_3"),
			firstValue(values, "custom_4"),
			firstValue(values, "custom_5"),
		},
	}
}

func firstValue(values url.Values, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(values.Get(name)); v != "" {
			return v
		}
	}
	return ""
}
