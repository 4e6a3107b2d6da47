package service

import (
	"context"
	"time"

	"github.com/CamiloCastellanos/drop-sub000/internal/domain"
	"github.com/CamiloCastellanos/drop-sub000/internal/dto"
	"github.com/CamiloCastellanos/drop-sub000/internal/repository"
	"github.com/shopspring/decimal"
)

// TokenBlacklist revokes bearer tokens until they expire on their own
type TokenBlacklist interface {
	AddToken(ctx context.Context, token string, expiry time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// AuthService defines methods for the credential lifecycle
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, claims *domain.TokenClaims, token string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// WalletService defines methods for the wallet ledger
type WalletService interface {
	AppendEntry(ctx context.Context, userID string, entryType domain.EntryType, amount decimal.Decimal, description string) (*domain.LedgerEntry, error)
	Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal, description string) ([]*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, userID string, filter repository.EntryFilter) ([]*domain.LedgerEntry, error)
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
}
