package domain

import "errors"

var (
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmptyOrder           = errors.New("order contains no items")
	ErrMissingRequiredField = errors.New("required field is empty")
	ErrNoSuchCard           = errors.New("customer has no card")
	ErrUnknownMenuItem      = errors.New("menu item not found")
	ErrInvalidSession       = errors.New("invalid or expired session")

	ErrVersionConflict = errors.New("collection modified concurrently")
)
