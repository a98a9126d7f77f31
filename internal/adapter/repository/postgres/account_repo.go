package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/payrail/payrail/internal/domain"
	"github.com/payrail/payrail/internal/usecase"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so repository
// methods can run against the pool or inside a caller-supplied transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txQuerier unwraps a usecase.Transaction into its pgx.Tx, falling back
// to the pool when no transaction is supplied.
func txQuerier(tx usecase.Transaction, fallback querier) querier {
	if tx == nil {
		return fallback
	}
	return tx.(*Tx).PgxTx()
}

// AccountRepository implements usecase.AccountRepository. Debit and
// Credit are single atomic UPDATE statements; the balance check rides on
// the WHERE clause so no read-modify-write window exists even outside
// serializable isolation.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, currency, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := txQuerier(tx, r.pool).Exec(ctx, query,
		account.ID,
		account.UserID,
		account.Currency,
		decimalToNumeric(account.Balance),
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := accountSelect + ` WHERE id = $1`

	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByUserID retrieves the account owned by a user.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	query := accountSelect + ` WHERE user_id = $1`

	return r.scanAccount(r.pool.QueryRow(ctx, query, userID))
}

// Debit subtracts amount from the account balance and returns the new
// balance. Fails with ErrInsufficientFunds when the balance would go
// negative, ErrAccountNotFound when the account does not exist.
func (r *AccountRepository) Debit(ctx context.Context, tx usecase.Transaction, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	q := txQuerier(tx, r.pool)

	query := `
		UPDATE accounts
		SET balance = balance - $2, updated_at = $3
		WHERE id = $1 AND balance >= $2
		RETURNING balance
	`

	var balance pgtype.Numeric
	err := q.QueryRow(ctx, query, accountID, decimalToNumeric(amount), time.Now().UTC()).Scan(&balance)
	if err == nil {
		return numericToDecimal(balance), nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, err
	}

	// No row matched: either the account is missing or it lacks funds.
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, accountID).Scan(&exists); err != nil {
		return decimal.Zero, err
	}

	if !exists {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	return decimal.Zero, domain.ErrInsufficientFunds
}

// Credit adds amount to the account balance and returns the new balance.
func (r *AccountRepository) Credit(ctx context.Context, tx usecase.Transaction, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = $3
		WHERE id = $1
		RETURNING balance
	`

	var balance pgtype.Numeric
	err := txQuerier(tx, r.pool).QueryRow(ctx, query, accountID, decimalToNumeric(amount), time.Now().UTC()).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrAccountNotFound
		}

		return decimal.Zero, err
	}

	return numericToDecimal(balance), nil
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	query := accountSelect + ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := r.scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

const accountSelect = `
	SELECT id, user_id, currency, balance, created_at, updated_at
	FROM accounts
`

func (r *AccountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		balance pgtype.Numeric
	)

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Currency,
		&balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Balance = numericToDecimal(balance)

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
