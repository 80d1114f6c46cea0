package rating

import "errors"

var (
	ErrAlreadyRated      = errors.New("order already rated")
	ErrNotDelivered      = errors.New("only delivered orders can be rated")
	ErrComplaintRequired = errors.New("a negative rating requires a complaint")
	ErrInvalidComplaint  = errors.New("complaint text cannot contain ';'")
	ErrNoCourier         = errors.New("delivered order has no courier")
)
