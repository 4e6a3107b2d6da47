package service

import "errors"

// Service error kinds. The HTTP boundary checks these with errors.Is and
// maps them to status codes; the message text travels separately in the
// response body.
var (
	// ErrValidation is returned for missing or malformed input
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateEmail is returned when registering an email that is already taken
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password, deliberately indistinguishable to prevent user enumeration
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a password-reset token is unknown or expired
	ErrInvalidToken = errors.New("reset token is invalid or expired")

	// ErrInvalidAmount is returned when a ledger amount is not strictly positive
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientBalance is returned when a debit would overdraw a wallet
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)
