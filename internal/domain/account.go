package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a user's balance. Balances are mutated only through the
// debit/credit repository operations, never by assigning to this struct.
type Account struct {
	ID        string
	UserID    string
	Currency  string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanDebit reports whether the account has enough funds for amount.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
