package controllers

import (
	"net/http"

	"github.com/campmart-lk/checkout/api/responses"
	"github.com/campmart-lk/checkout/internal/payments"
	"github.com/campmart-lk/checkout/pkg/logger"
)

type confirmationResponse struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Status    string `json:"status"`
	Booking   any    `json:"booking,omitempty"`
	Payment   any    `json:"payment,omitempty"`
}

type cancellationResponse struct {
	OrderID         string `json:"order_id,omitempty"`
	Message         string `json:"message"`
	BackendNotified bool   `json:"backend_notified"`
}

// PayHereReturn terminates the gateway's success navigation.
func PayHereReturn(reconciler *payments.Reconciler, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		confirmation, err := reconciler.ReconcileSuccess(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := confirmationResponse{
			OrderID:   confirmation.OrderID,
			PaymentID: confirmation.PaymentID,
			BookingID: confirmation.BookingID,
			Amount:    confirmation.Amount,
			Status:    confirmation.Status,
		}
		if confirmation.Booking != nil {
			out.Booking = confirmation.Booking
		}
		if confirmation.Payment != nil {
			out.Payment = confirmation.Payment
		}
		responses.WriteSuccess(w, out)
	}
}

// PayHereCancel terminates the gateway's cancel navigation. It always
// answers 200; a failed backend notification is an operational concern, not
// the renter's.
func PayHereCancel(reconciler *payments.Reconciler, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome := reconciler.ReconcileCancel(r.Context(), r.URL.Query())
		responses.WriteSuccess(w, cancellationResponse{
			OrderID:         outcome.OrderID,
			Message:         outcome.Message,
			BackendNotified: outcome.BackendNotified,
		})
	}
}
