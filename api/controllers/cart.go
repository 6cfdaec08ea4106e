package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/campmart-lk/checkout/api/responses"
	"github.com/campmart-lk/checkout/api/validators"
	cartsvc "github.com/campmart-lk/checkout/internal/cart"
	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/campmart-lk/checkout/pkg/logger"
	"github.com/campmart-lk/checkout/pkg/payhere"
)

const cartDateLayout = "2006-01-02"

type cartLineRequest struct {
	ItemID        string `json:"item_id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	PricePerDay   string `json:"price_per_day" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
	StockQuantity int    `json:"stock_quantity" validate:"required,min=1"`
}

type cartUpsertRequest struct {
	CartID    string            `json:"cart_id" validate:"required"`
	Items     []cartLineRequest `json:"items" validate:"required,min=1,dive"`
	StartDate string            `json:"start_date" validate:"required"`
	EndDate   string            `json:"end_date" validate:"required"`
}

type cartLineResponse struct {
	ItemID      string `json:"item_id"`
	Name        string `json:"name"`
	PricePerDay string `json:"price_per_day"`
	Quantity    int    `json:"quantity"`
}

type cartResponse struct {
	CartID     string             `json:"cart_id"`
	RenterID   string             `json:"renter_id"`
	Items      []cartLineResponse `json:"items"`
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	RentalDays int                `json:"rental_days"`
	Total      string             `json:"total"`
}

// CartUpsert stores the renter's cart snapshot ahead of checkout.
func CartUpsert(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		renterID := chi.URLParam(r, "renterId")
		if renterID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "renter id required"))
			return
		}

		var payload cartUpsertRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := toCart(renterID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Put(r.Context(), snapshot); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

// CartFetch returns the stored cart snapshot for a renter.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		renterID := chi.URLParam(r, "renterId")
		if renterID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "renter id required"))
			return
		}

		snapshot, err := svc.Get(r.Context(), renterID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(*snapshot))
	}
}

func toCart(renterID string, payload cartUpsertRequest) (cartsvc.Cart, error) {
	start, err := time.Parse(cartDateLayout, payload.StartDate)
	if err != nil {
		return cartsvc.Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "start date must be YYYY-MM-DD")
	}
	end, err := time.Parse(cartDateLayout, payload.EndDate)
	if err != nil {
		return cartsvc.Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "end date must be YYYY-MM-DD")
	}

	items := make([]cartsvc.LineItem, 0, len(payload.Items))
	for _, line := range payload.Items {
		price, err := decimal.NewFromString(line.PricePerDay)
		if err != nil {
			return cartsvc.Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be a decimal string").
				WithDetails(map[string]string{"item_id": line.ItemID})
		}
		items = append(items, cartsvc.LineItem{
			ItemID:        line.ItemID,
			Name:          line.Name,
			PricePerDay:   price,
			Quantity:      line.Quantity,
			StockQuantity: line.StockQuantity,
		})
	}

	return cartsvc.Cart{
		CartID:    payload.CartID,
		RenterID:  renterID,
		Items:     items,
		StartDate: start,
		EndDate:   end,
	}, nil
}

func newCartResponse(snapshot cartsvc.Cart) cartResponse {
	items := make([]cartLineResponse, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		items = append(items, cartLineResponse{
			ItemID:      line.ItemID,
			Name:        line.Name,
			PricePerDay: payhere.FormatAmount(line.PricePerDay),
			Quantity:    line.Quantity,
		})
	}
	return cartResponse{
		CartID:     snapshot.CartID,
		RenterID:   snapshot.RenterID,
		Items:      items,
		StartDate:  snapshot.StartDate.Format(cartDateLayout),
		EndDate:    snapshot.EndDate.Format(cartDateLayout),
		RentalDays: snapshot.RentalDays(),
		Total:      payhere.FormatAmount(snapshot.Total()),
	}
}
