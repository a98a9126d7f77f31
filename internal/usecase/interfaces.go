package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payrail/payrail/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetByIDTx and GetByUsernameTx resolve users inside a caller-supplied
	// transaction so the engine sees identities under its own isolation scope.
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.User, error)
	GetByUsernameTx(ctx context.Context, tx Transaction, username string) (*domain.User, error)
}

// AccountRepository defines data access for accounts. Debit and Credit are
// the only balance mutators; both run inside the caller's transaction and
// return the post-mutation balance.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	Debit(ctx context.Context, tx Transaction, accountID string, amount decimal.Decimal) (decimal.Decimal, error)
	Credit(ctx context.Context, tx Transaction, accountID string, amount decimal.Decimal) (decimal.Decimal, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransferFilter narrows transfer listings to a viewer and optional
// half-open creation-time range [From, To).
type TransferFilter struct {
	ViewerID string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// TransferRepository defines data access for transfer records.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByReference(ctx context.Context, reference string) (*domain.Transfer, error)
	ListForUser(ctx context.Context, filter TransferFilter) ([]*domain.Transfer, error)
	CountForUser(ctx context.Context, filter TransferFilter) (int64, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation when it fails with a transient conflict.
// Business errors must pass through after a single attempt.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique row IDs.
type IDGenerator interface {
	Generate() string
}

// ReferenceGenerator generates transfer reference tokens.
type ReferenceGenerator interface {
	Generate() (string, error)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
