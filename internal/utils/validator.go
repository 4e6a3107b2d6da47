package utils

import (
	"regexp"
	"strings"
)

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword validates a password, minimum 6 characters
func ValidatePassword(password string) bool {
	return len(password) >= minPasswordLength
}

// SanitizeEmail sanitizes an email address. Emails are compared
// case-insensitively, so they are stored lowercase.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
