package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/CamiloCastellanos/drop-sub000/internal/domain"
	"github.com/CamiloCastellanos/drop-sub000/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// walletRepository implements WalletRepository interface
type walletRepository struct {
	db *database.Postgres
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *database.Postgres) WalletRepository {
	return &walletRepository{db: db}
}

// AppendEntry writes one immutable ledger entry and moves the materialized
// balance in the same transaction. The SELECT ... FOR UPDATE on the user row
// linearizes concurrent writes to a single wallet.
func (r *walletRepository) AppendEntry(ctx context.Context, userID string, entryType domain.EntryType, amount decimal.Decimal, description string) (*domain.LedgerEntry, error) {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	entry, err := appendEntryTx(ctx, tx, userID, entryType, amount, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entry, nil
}

// Transfer debits the source wallet and credits the destination wallet in one
// transaction. Rows are locked in id order so two opposing transfers cannot
// deadlock.
func (r *walletRepository) Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal, description string) ([]*domain.LedgerEntry, error) {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	first, second := fromUserID, toUserID
	if second < first {
		first, second = second, first
	}
	for _, id := range []string{first, second} {
		if _, err := lockBalance(ctx, tx, id); err != nil {
			return nil, err
		}
	}

	out, err := appendEntryTx(ctx, tx, fromUserID, domain.EntryOut, amount, description)
	if err != nil {
		return nil, err
	}

	in, err := appendEntryTx(ctx, tx, toUserID, domain.EntryIn, amount, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return []*domain.LedgerEntry{out, in}, nil
}

// ListEntries returns entries for a user ordered newest-first
func (r *walletRepository) ListEntries(ctx context.Context, userID string, filter EntryFilter) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, user_id, type, amount, previous_balance, resulting_balance, description, created_at
		FROM wallet_entries
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Reason != "" {
		args = append(args, filter.Reason)
		query += fmt.Sprintf(" AND description = $%d", len(args))
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry := &domain.LedgerEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Type,
			&entry.Amount,
			&entry.PreviousBalance,
			&entry.ResultingBalance,
			&entry.Description,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// Balance returns the materialized balance for a user
func (r *walletRepository) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	query := `SELECT balance FROM users WHERE id = $1`

	var balance decimal.Decimal
	err := r.db.DB.QueryRowContext(ctx, query, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
		}
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance, nil
}

func lockBalance(ctx context.Context, tx *sql.Tx, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRowContext(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
		}
		return decimal.Zero, fmt.Errorf("failed to lock balance: %w", err)
	}
	return balance, nil
}

func appendEntryTx(ctx context.Context, tx *sql.Tx, userID string, entryType domain.EntryType, amount decimal.Decimal, description string) (*domain.LedgerEntry, error) {
	previous, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	resulting := previous.Add(entryType.Signed(amount))
	if resulting.IsNegative() {
		return nil, fmt.Errorf("balance %s cannot cover debit of %s: %w",
			previous.String(), amount.String(), ErrInsufficientBalance)
	}

	entry := &domain.LedgerEntry{
		ID:               uuid.New().String(),
		UserID:           userID,
		Type:             entryType,
		Amount:           amount,
		PreviousBalance:  previous,
		ResultingBalance: resulting,
		Description:      description,
		CreatedAt:        time.Now(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallet_entries (id, user_id, type, amount, previous_balance, resulting_balance, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		entry.ID,
		entry.UserID,
		string(entry.Type),
		entry.Amount,
		entry.PreviousBalance,
		entry.ResultingBalance,
		entry.Description,
		entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE users SET balance = $2, updated_at = $3 WHERE id = $1`,
		userID, entry.ResultingBalance, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	return entry, nil
}
