package domain

import "errors"

// Domain errors (no external dependencies). Usecases wrap these with %w and a
// message that names the offending entity so the UI can display it directly.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("invalid input")
	ErrDuplicate           = errors.New("duplicate resource")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("access denied")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrAlreadyVoided       = errors.New("bill already voided")
	ErrInvalidState        = errors.New("invalid state transition")
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
)
