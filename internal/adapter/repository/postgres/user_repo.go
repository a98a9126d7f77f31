package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/payrail/payrail/internal/domain"
	"github.com/payrail/payrail/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// UserRepository implements usecase.UserRepository. The account ID is
// resolved through a join; accounts are created in the same transaction
// as their owner, so the join never comes up empty for a committed user.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, name, hashed_password, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := txQuerier(tx, r.pool).Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.Name,
		user.HashedPassword,
		user.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrUsernameTaken
	}

	return err
}

const userSelect = `
	SELECT u.id, u.username, u.email, u.name, u.hashed_password, a.id, u.created_at
	FROM users u
	JOIN accounts a ON a.user_id = u.id
`

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE u.id = $1`, id))
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE u.username = $1`, username))
}

// GetByIDTx retrieves a user by ID inside a transaction.
func (r *UserRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.User, error) {
	return scanUser(txQuerier(tx, r.pool).QueryRow(ctx, userSelect+` WHERE u.id = $1`, id))
}

// GetByUsernameTx retrieves a user by username inside a transaction.
func (r *UserRepository) GetByUsernameTx(ctx context.Context, tx usecase.Transaction, username string) (*domain.User, error) {
	return scanUser(txQuerier(tx, r.pool).QueryRow(ctx, userSelect+` WHERE u.username = $1`, username))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Name,
		&user.HashedPassword,
		&user.AccountID,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	return &user, nil
}
