package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/CamiloCastellanos/drop-sub000/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Token verification error kinds. Callers distinguish them with errors.Is;
// the HTTP boundary maps all of them to 401.
var (
	ErrMalformedToken   = errors.New("token is malformed")
	ErrExpiredToken     = errors.New("token is expired")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrInvalidClaims    = errors.New("token claims are invalid")
)

// JWTManager signs and verifies HS256 session tokens
type JWTManager struct {
	secret      []byte
	tokenExpiry time.Duration
	now         func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, tokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:      []byte(secret),
		tokenExpiry: tokenExpiry,
		now:         time.Now,
	}
}

// WithTimeFunc overrides the time source, used by tests to simulate expiry
func (j *JWTManager) WithTimeFunc(now func() time.Time) *JWTManager {
	j.now = now
	return j
}

// TokenExpiry returns the configured token lifetime in seconds
func (j *JWTManager) TokenExpiry() int {
	return int(j.tokenExpiry.Seconds())
}

// GenerateToken mints a session token for the given user.
// Timestamps are whole seconds since epoch.
func (j *JWTManager) GenerateToken(userID, email string, roleID int) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    roleID,
		"iat":     now.Unix(),
		"exp":     now.Add(j.tokenExpiry).Unix(),
	})

	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies signature and expiry and returns the decoded claims
func (j *JWTManager) ValidateToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("failed to parse token: %w", ErrMalformedToken)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("failed to parse token: %w", ErrExpiredToken)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("failed to parse token: %w", ErrInvalidSignature)
		default:
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
	}

	if !token.Valid {
		return nil, ErrInvalidClaims
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	claims, err := claimsFromMap(mapClaims)
	if err != nil {
		return nil, err
	}

	if claims.IsExpired(j.now()) {
		return nil, ErrExpiredToken
	}

	return claims, nil
}

// DecodeToken returns the claims without verifying signature or expiry.
// For inspection only, never for authorization decisions.
func (j *JWTManager) DecodeToken(tokenString string) (*domain.TokenClaims, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", ErrMalformedToken)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	return claimsFromMap(mapClaims)
}

func claimsFromMap(claims jwt.MapClaims) (*domain.TokenClaims, error) {
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid user_id in token: %w", ErrInvalidClaims)
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid email in token: %w", ErrInvalidClaims)
	}

	role, ok := claims["role"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid role in token: %w", ErrInvalidClaims)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid exp in token: %w", ErrInvalidClaims)
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid iat in token: %w", ErrInvalidClaims)
	}

	return &domain.TokenClaims{
		UserID: userID,
		Email:  email,
		RoleID: int(role),
		Exp:    int64(exp),
		Iat:    int64(iat),
	}, nil
}
