package backend

import (
	"encoding/json"

	"github.com/campmart-lk/checkout/pkg/enums"
)

// Envelope is the uniform response wrapper of the booking backend.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// BookingItem is one equipment line in a booking snapshot.
type BookingItem struct {
	EquipmentID string `json:"equipment_id"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

// CreateBookingRequest creates the provisional booking the gateway return is
// later reconciled against. Amounts are fixed two-decimal strings so the
// value the backend expects is byte-identical to the hashed one.
type CreateBookingRequest struct {
	CartID        string              `json:"cart_id"`
	OrderID       string              `json:"order_id"`
	RenterID      string              `json:"renter_id"`
	Items         []BookingItem       `json:"items"`
	StartDate     string              `json:"start_date"`
	EndDate       string              `json:"end_date"`
	TotalAmount   string              `json:"total_amount"`
	AdvanceAmount string              `json:"advance_amount"`
	Status        enums.PaymentStatus `json:"status"`
}

// CreateBookingData is the payload of a successful booking creation.
type CreateBookingData struct {
	BookingID string `json:"booking_id"`
}

// ConfirmPaymentRequest settles the pending payment after a success return.
type ConfirmPaymentRequest struct {
	OrderID        string            `json:"order_id"`
	PaymentID      string            `json:"payment_id,omitempty"`
	Amount         string            `json:"amount,omitempty"`
	StatusCode     string            `json:"status_code,omitempty"`
	PaymentDetails map[string]string `json:"payment_details,omitempty"`
}

// ConfirmPaymentData is the minimal confirmation the backend returns.
type ConfirmPaymentData struct {
	BookingID  string `json:"booking_id"`
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	AmountPaid string `json:"amount_paid,omitempty"`
}

// CancelPaymentRequest releases the provisional booking on the cancel path.
type CancelPaymentRequest struct {
	OrderID        string            `json:"order_id"`
	PaymentID      string            `json:"payment_id,omitempty"`
	Reason         string            `json:"reason"`
	PaymentDetails map[string]string `json:"payment_details,omitempty"`
}

// BookingDetail is the full booking record used for confirmation display.
type BookingDetail struct {
	BookingID     string `json:"booking_id"`
	OrderID       string `json:"order_id"`
	RenterID      string `json:"renter_id"`
	Status        string `json:"status"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalAmount   string `json:"total_amount"`
	AdvanceAmount string `json:"advance_amount"`
}

// BookingData wraps a booking with its equipment lines.
type BookingData struct {
	Booking BookingDetail `json:"booking"`
	Items   []BookingItem `json:"items"`
}

// PaymentDetail is one row of the backend's payment ledger.
type PaymentDetail struct {
	PaymentID  string `json:"payment_id"`
	OrderID    string `json:"order_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Method     string `json:"method"`
	StatusCode string `json:"status_code"`
	Message    string `json:"message"`
}

// PaymentData wraps the ledger payload of getPaymentDetails.
type PaymentData struct {
	Payment PaymentDetail `json:"payment"`
}
