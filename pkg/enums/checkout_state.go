package enums

import "fmt"

// CheckoutState tracks a single checkout attempt from build to reconciliation.
type CheckoutState string

const (
	CheckoutStateIdle               CheckoutState = "idle"
	CheckoutStateBuilding           CheckoutState = "building"
	CheckoutStateProvisionalCreated CheckoutState = "provisional_created"
	CheckoutStateGatewayDispatched  CheckoutState = "gateway_dispatched"
	CheckoutStateAwaitingReturn     CheckoutState = "awaiting_return"
	CheckoutStateConfirmed          CheckoutState = "confirmed"
	CheckoutStateCancelled          CheckoutState = "cancelled"
	CheckoutStateValidationFailed   CheckoutState = "validation_failed"
)

var validCheckoutStates = []CheckoutState{
	CheckoutStateIdle,
	CheckoutStateBuilding,
	CheckoutStateProvisionalCreated,
	CheckoutStateGatewayDispatched,
	CheckoutStateAwaitingReturn,
	CheckoutStateConfirmed,
	CheckoutStateCancelled,
	CheckoutStateValidationFailed,
}

// String implements fmt.Stringer.
func (c CheckoutState) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutState.
func (c CheckoutState) IsValid() bool {
	for _, candidate := range validCheckoutStates {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the attempt can no longer change state.
func (c CheckoutState) IsTerminal() bool {
	switch c {
	case CheckoutStateConfirmed, CheckoutStateCancelled, CheckoutStateValidationFailed:
		return true
	}
	return false
}

// ParseCheckoutState converts raw input into a CheckoutState.
func ParseCheckoutState(value string) (CheckoutState, error) {
	for _, candidate := range validCheckoutStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout state %q", value)
}
