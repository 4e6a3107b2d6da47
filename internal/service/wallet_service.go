package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/CamiloCastellanos/drop-sub000/internal/domain"
	"github.com/CamiloCastellanos/drop-sub000/internal/repository"
	"github.com/shopspring/decimal"
)

const defaultEntryPageSize = 50

// walletService implements WalletService interface
type walletService struct {
	walletRepo repository.WalletRepository
}

// NewWalletService creates a new wallet service
func NewWalletService(walletRepo repository.WalletRepository) WalletService {
	return &walletService{walletRepo: walletRepo}
}

// AppendEntry records one balance-affecting event
func (s *walletService) AppendEntry(ctx context.Context, userID string, entryType domain.EntryType, amount decimal.Decimal, description string) (*domain.LedgerEntry, error) {
	if !entryType.Valid() {
		return nil, fmt.Errorf("unknown entry type %q: %w", entryType, ErrValidation)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount %s is not positive: %w", amount.String(), ErrInvalidAmount)
	}

	entry, err := s.walletRepo.AppendEntry(ctx, userID, entryType, amount, description)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, fmt.Errorf("debit of %s rejected: %w", amount.String(), ErrInsufficientBalance)
		}
		return nil, fmt.Errorf("failed to append entry: %w", err)
	}

	return entry, nil
}

// Transfer moves funds between two wallets; both legs commit or neither
func (s *walletService) Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal, description string) ([]*domain.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount %s is not positive: %w", amount.String(), ErrInvalidAmount)
	}
	if fromUserID == toUserID {
		return nil, fmt.Errorf("cannot transfer to the same wallet: %w", ErrValidation)
	}

	entries, err := s.walletRepo.Transfer(ctx, fromUserID, toUserID, amount, description)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, fmt.Errorf("transfer of %s rejected: %w", amount.String(), ErrInsufficientBalance)
		}
		return nil, fmt.Errorf("failed to transfer: %w", err)
	}

	return entries, nil
}

// ListEntries pages through a wallet history, newest-first
func (s *walletService) ListEntries(ctx context.Context, userID string, filter repository.EntryFilter) ([]*domain.LedgerEntry, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, fmt.Errorf("unknown entry type %q: %w", filter.Type, ErrValidation)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultEntryPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	entries, err := s.walletRepo.ListEntries(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return entries, nil
}

// Balance returns the materialized wallet balance
func (s *walletService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	balance, err := s.walletRepo.Balance(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance, nil
}
