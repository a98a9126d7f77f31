package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/payrail/payrail/internal/domain"
	"github.com/payrail/payrail/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository. Transfer rows
// are append-only; there is deliberately no update or delete here.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

// Create persists a transfer record inside the caller's transaction.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	query := `
		INSERT INTO transfers (
			id, reference, sender_id, sender_username, receiver_id, receiver_username,
			amount, balance_before, balance_after, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := txQuerier(tx, r.pool).Exec(ctx, query,
		transfer.ID,
		transfer.Reference,
		transfer.SenderID,
		transfer.SenderUsername,
		transfer.ReceiverID,
		transfer.ReceiverUsername,
		decimalToNumeric(transfer.Amount),
		decimalToNumeric(transfer.BalanceBefore),
		decimalToNumeric(transfer.BalanceAfter),
		transfer.CreatedAt,
	)

	return err
}

const transferSelect = `
	SELECT id, reference, sender_id, sender_username, receiver_id, receiver_username,
	       amount, balance_before, balance_after, created_at
	FROM transfers
`

// GetByReference retrieves a transfer by its reference token.
func (r *TransferRepository) GetByReference(ctx context.Context, reference string) (*domain.Transfer, error) {
	row := r.pool.QueryRow(ctx, transferSelect+` WHERE reference = $1`, reference)

	transfer, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	return transfer, nil
}

// ListForUser lists transfers where the user is sender or receiver,
// newest first.
func (r *TransferRepository) ListForUser(ctx context.Context, filter usecase.TransferFilter) ([]*domain.Transfer, error) {
	where, args := filterClause(filter)

	query := fmt.Sprintf(
		`%s WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		transferSelect, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.Transfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}

// CountForUser returns the total match count ignoring pagination.
func (r *TransferRepository) CountForUser(ctx context.Context, filter usecase.TransferFilter) (int64, error) {
	where, args := filterClause(filter)

	var count int64
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM transfers WHERE %s`, where), args...).Scan(&count)

	return count, err
}

// filterClause builds the shared WHERE clause for viewer listings. The
// date range is half-open: [From, To).
func filterClause(filter usecase.TransferFilter) (string, []any) {
	where := `(sender_id = $1 OR receiver_id = $1)`
	args := []any{filter.ViewerID}

	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}

	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(` AND created_at < $%d`, len(args))
	}

	return where, args
}

func scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	var (
		transfer      domain.Transfer
		amount        pgtype.Numeric
		balanceBefore pgtype.Numeric
		balanceAfter  pgtype.Numeric
	)

	err := row.Scan(
		&transfer.ID,
		&transfer.Reference,
		&transfer.SenderID,
		&transfer.SenderUsername,
		&transfer.ReceiverID,
		&transfer.ReceiverUsername,
		&amount,
		&balanceBefore,
		&balanceAfter,
		&transfer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	transfer.Amount = numericToDecimal(amount)
	transfer.BalanceBefore = numericToDecimal(balanceBefore)
	transfer.BalanceAfter = numericToDecimal(balanceAfter)

	return &transfer, nil
}
