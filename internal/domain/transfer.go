package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferenceLength is the length of a transfer reference token.
const ReferenceLength = 12

// Transfer is the immutable record of a completed money movement.
// Sender and receiver identity is captured by value at transfer time,
// together with the sender's balance immediately before and after the
// debit. Records are append-only; nothing updates or deletes them.
type Transfer struct {
	ID               string
	Reference        string
	SenderID         string
	SenderUsername   string
	ReceiverID       string
	ReceiverUsername string
	Amount           decimal.Decimal
	BalanceBefore    decimal.Decimal
	BalanceAfter     decimal.Decimal
	CreatedAt        time.Time
}

// Validate validates a transfer request.
func (t *Transfer) Validate() error {
	if t.SenderID == t.ReceiverID {
		return ErrSameAccount
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// Consistent reports whether the balance snapshots agree with the amount.
func (t *Transfer) Consistent() bool {
	return t.BalanceAfter.Equal(t.BalanceBefore.Sub(t.Amount))
}
