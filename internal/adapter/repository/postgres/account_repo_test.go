package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/payrail/payrail/internal/domain"
)

func beginMockTx(t *testing.T, pool pgxmock.PgxPoolIface) *Tx {
	t.Helper()
	pool.ExpectBeginTx(serializableOpts)

	pgxTx, err := pool.BeginTx(context.Background(), serializableOpts)
	if err != nil {
		t.Fatalf("failed to begin mock tx: %v", err)
	}

	return &Tx{tx: pgxTx}
}

func TestAccountRepositoryDebit(t *testing.T) {
	ctx := context.Background()

	t.Run("returns post-debit balance", func(t *testing.T) {
		pool := newMockPool(t)
		tx := beginMockTx(t, pool)

		pool.ExpectQuery(`UPDATE accounts`).
			WithArgs("acc-1", decimalToNumeric(decimal.NewFromInt(200)), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimalToNumeric(decimal.NewFromInt(300))))

		repo := &AccountRepository{}
		balance, err := repo.Debit(ctx, tx, "acc-1", decimal.NewFromInt(200))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !balance.Equal(decimal.NewFromInt(300)) {
			t.Fatalf("expected balance 300, got %s", balance)
		}

		assertExpectations(t, pool)
	})

	t.Run("insufficient funds when account exists but lacks balance", func(t *testing.T) {
		pool := newMockPool(t)
		tx := beginMockTx(t, pool)

		pool.ExpectQuery(`UPDATE accounts`).
			WithArgs("acc-1", decimalToNumeric(decimal.NewFromInt(200)), pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)
		pool.ExpectQuery(`SELECT EXISTS`).
			WithArgs("acc-1").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		repo := &AccountRepository{}
		_, err := repo.Debit(ctx, tx, "acc-1", decimal.NewFromInt(200))
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		assertExpectations(t, pool)
	})

	t.Run("account not found when no row exists", func(t *testing.T) {
		pool := newMockPool(t)
		tx := beginMockTx(t, pool)

		pool.ExpectQuery(`UPDATE accounts`).
			WithArgs("acc-missing", decimalToNumeric(decimal.NewFromInt(200)), pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)
		pool.ExpectQuery(`SELECT EXISTS`).
			WithArgs("acc-missing").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		repo := &AccountRepository{}
		_, err := repo.Debit(ctx, tx, "acc-missing", decimal.NewFromInt(200))
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}

		assertExpectations(t, pool)
	})
}

func TestAccountRepositoryCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("returns post-credit balance", func(t *testing.T) {
		pool := newMockPool(t)
		tx := beginMockTx(t, pool)

		pool.ExpectQuery(`UPDATE accounts`).
			WithArgs("acc-2", decimalToNumeric(decimal.NewFromInt(200)), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimalToNumeric(decimal.NewFromInt(250))))

		repo := &AccountRepository{}
		balance, err := repo.Credit(ctx, tx, "acc-2", decimal.NewFromInt(200))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !balance.Equal(decimal.NewFromInt(250)) {
			t.Fatalf("expected balance 250, got %s", balance)
		}

		assertExpectations(t, pool)
	})

	t.Run("unknown account", func(t *testing.T) {
		pool := newMockPool(t)
		tx := beginMockTx(t, pool)

		pool.ExpectQuery(`UPDATE accounts`).
			WithArgs("acc-missing", decimalToNumeric(decimal.NewFromInt(200)), pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		repo := &AccountRepository{}
		_, err := repo.Credit(ctx, tx, "acc-missing", decimal.NewFromInt(200))
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}

		assertExpectations(t, pool)
	})
}

func TestNumericDecimalRoundTrip(t *testing.T) {
	values := []string{"0", "1", "100.50", "-3.14", "1000000000"}

	for _, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", v, err)
		}

		got := numericToDecimal(decimalToNumeric(d))
		if !got.Equal(d) {
			t.Errorf("round trip of %s produced %s", d, got)
		}
	}
}
