package user

import "errors"

var (
	ErrDuplicateID        = errors.New("identifier already registered")
	ErrEmailExists        = errors.New("email already registered")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMalformedRecord    = errors.New("malformed user record")
	ErrValidation         = errors.New("invalid registration data")
)
