package repository

import (
	"context"
	"time"

	"github.com/CamiloCastellanos/drop-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	UpdateStatus(ctx context.Context, userID, status string) error
	UpdateLastLogin(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error
}

// EntryFilter narrows and pages a ledger listing
type EntryFilter struct {
	From   *time.Time
	To     *time.Time
	Type   domain.EntryType
	Reason string
	Limit  int
	Offset int
}

// WalletRepository defines methods for ledger operations.
// AppendEntry and Transfer run in a single transaction and serialize
// writes per user via row locks on the balance column.
type WalletRepository interface {
	AppendEntry(ctx context.Context, userID string, entryType domain.EntryType, amount decimal.Decimal, description string) (*domain.LedgerEntry, error)
	Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal, description string) ([]*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, userID string, filter EntryFilter) ([]*domain.LedgerEntry, error)
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
}
