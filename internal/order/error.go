package order

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrNoCourierAvailable = errors.New("no courier available")
	ErrEmptyOrder         = errors.New("order has no combos")
	ErrUnknownCombo       = errors.New("combo not in catalog")
	ErrClientSuspended    = errors.New("client is suspended")
	ErrMalformedRecord    = errors.New("malformed order record")
	ErrMissingReference   = errors.New("order references an unknown user")
	ErrNotAssignedCourier = errors.New("order is assigned to another courier")
	ErrInvalidTransition  = errors.New("invalid order status transition")
)
