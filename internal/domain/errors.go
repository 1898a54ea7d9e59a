package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrUnavailable         = errors.New("no copies available")
	ErrAlreadyReturned     = errors.New("rental already returned")
	ErrInvalidTransition   = errors.New("invalid rental status transition")
	ErrInventoryCorruption = errors.New("inventory corruption")
	ErrInvalidArgument     = errors.New("invalid argument")
)
