package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tags the direction of a ledger entry
type EntryType string

const (
	// EntryIn credits the wallet
	EntryIn EntryType = "ENTRADA"
	// EntryOut debits the wallet
	EntryOut EntryType = "SALIDA"
)

// Valid reports whether the entry type is one of the two known directions
func (t EntryType) Valid() bool {
	return t == EntryIn || t == EntryOut
}

// Signed returns the amount with the sign implied by the entry type
func (t EntryType) Signed(amount decimal.Decimal) decimal.Decimal {
	if t == EntryOut {
		return amount.Neg()
	}
	return amount
}

// LedgerEntry is one immutable record of a balance-affecting event.
// Entries are append-only: nothing in the codebase updates or deletes them.
type LedgerEntry struct {
	ID               string          `json:"id" db:"id"`
	UserID           string          `json:"user_id" db:"user_id"`
	Type             EntryType       `json:"type" db:"type"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	PreviousBalance  decimal.Decimal `json:"previous_balance" db:"previous_balance"`
	ResultingBalance decimal.Decimal `json:"resulting_balance" db:"resulting_balance"`
	Description      string          `json:"description" db:"description"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}
