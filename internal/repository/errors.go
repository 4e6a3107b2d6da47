package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrInsufficientBalance is returned when a debit would drive a wallet balance negative
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)
