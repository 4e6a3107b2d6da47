package domain

import "time"

// TokenClaims represents the claims carried by a session token
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	RoleID int    `json:"role"`
	Exp    int64  `json:"exp"`
	Iat    int64  `json:"iat"`
}

// IsExpired checks if the token is expired at the given instant
func (tc TokenClaims) IsExpired(now time.Time) bool {
	return now.Unix() > tc.Exp
}

// RemainingLifetime returns how long the token stays valid from the given
// instant, zero when already expired
func (tc TokenClaims) RemainingLifetime(now time.Time) time.Duration {
	remaining := time.Unix(tc.Exp, 0).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
