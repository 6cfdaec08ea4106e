package controllers

import (
	"net/http"

	"github.com/campmart-lk/checkout/api/responses"
	"github.com/campmart-lk/checkout/api/validators"
	"github.com/campmart-lk/checkout/internal/payments"
	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/campmart-lk/checkout/pkg/logger"
)

type checkoutRequest struct {
	RenterID string `json:"renter_id" validate:"required"`

	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
	DeliveryAddress string `json:"delivery_address"`
	DeliveryCity    string `json:"delivery_city"`
	DeliveryCountry string `json:"delivery_country"`
}

// Checkout starts a payment attempt and answers with the gateway handoff
// page. The browser renders the response and auto-submits to the hosted
// checkout; order metadata rides response headers for the client app.
func Checkout(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), payload.RenterID, payments.Profile{
			FirstName:       payload.FirstName,
			LastName:        payload.LastName,
			Email:           payload.Email,
			Phone:           payload.Phone,
			Address:         payload.Address,
			City:            payload.City,
			Country:         payload.Country,
			DeliveryAddress: payload.DeliveryAddress,
			DeliveryCity:    payload.DeliveryCity,
			DeliveryCountry: payload.DeliveryCountry,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("X-Order-Id", result.OrderID)
		w.Header().Set("X-Booking-Id", result.BookingID)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(result.HandoffHTML); err != nil && logg != nil {
			logg.Error(r.Context(), "failed to write handoff page", err)
		}
	}
}
