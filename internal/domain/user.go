package domain

import "time"

// Role identifiers match the seeded rows in the roles table
const (
	RoleAdmin       = 1
	RoleDropshipper = 2
	RoleProvider    = 3
)

// Account status values
const (
	StatusOn  = "ON"
	StatusOff = "OFF"
)

// RoleName returns the canonical name for a role id
func RoleName(roleID int) string {
	switch roleID {
	case RoleAdmin:
		return "ADMIN"
	case RoleDropshipper:
		return "DROPSHIPPER"
	case RoleProvider:
		return "PROVIDER"
	default:
		return "UNKNOWN"
	}
}

// RoleID maps an account type name to its role id, returning 0 when unknown
func RoleID(name string) int {
	switch name {
	case "ADMIN":
		return RoleAdmin
	case "DROPSHIPPER":
		return RoleDropshipper
	case "PROVIDER":
		return RoleProvider
	default:
		return 0
	}
}

// User represents an account in the system
type User struct {
	ID                  string     `json:"id" db:"id"`
	FirstName           string     `json:"first_name" db:"first_name"`
	LastName            string     `json:"last_name" db:"last_name"`
	Email               string     `json:"email" db:"email"`
	PasswordHash        string     `json:"-" db:"password_hash"`
	Phone               string     `json:"phone" db:"phone"`
	CountryCode         string     `json:"country_code" db:"country_code"`
	RoleID              int        `json:"role_id" db:"role_id"`
	Status              string     `json:"status" db:"status"`
	ResetToken          *string    `json:"-" db:"reset_token"`
	ResetTokenExpiresAt *time.Time `json:"-" db:"reset_token_expires_at"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt         *time.Time `json:"last_login_at" db:"last_login_at"`
}
