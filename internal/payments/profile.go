package payments

import "strings"

// Profile carries the renter contact fields sent to the gateway.
type Profile struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
	DeliveryAddress string `json:"delivery_address"`
	DeliveryCity    string `json:"delivery_city"`
	DeliveryCountry string `json:"delivery_country"`
}

// Contact fallbacks applied when a renter profile is incomplete. Missing
// profile data degrades gracefully rather than blocking checkout.
const (
	defaultFirstName = "Customer"
	defaultLastName  = "CampMart"
	defaultEmail     = "customer@campmart.lk"
	defaultPhone     = "0771234567"
	defaultAddress   = "No Address"
	defaultCity      = "Colombo"
	defaultCountry   = "Sri Lanka"
)

func (p Profile) withDefaults() Profile {
	out := Profile{
		FirstName:       fallback(p.FirstName, defaultFirstName),
		LastName:        fallback(p.LastName, defaultLastName),
		Email:           fallback(p.Email, defaultEmail),
		Phone:           fallback(p.Phone, defaultPhone),
		Address:         fallback(p.Address, defaultAddress),
		City:            fallback(p.City, defaultCity),
		Country:         fallback(p.Country, defaultCountry),
		DeliveryAddress: p.DeliveryAddress,
		DeliveryCity:    p.DeliveryCity,
		DeliveryCountry: p.DeliveryCountry,
	}
	out.DeliveryAddress = fallback(out.DeliveryAddress, out.Address)
	out.DeliveryCity = fallback(out.DeliveryCity, out.City)
	out.DeliveryCountry = fallback(out.DeliveryCountry, out.Country)
	return out
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
