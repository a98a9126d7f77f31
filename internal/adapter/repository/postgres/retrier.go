package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/payrail/payrail/internal/domain"
)

// PostgreSQL error codes for retryable aborts.
const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlock             = "40P01"
)

// RetrierConfig configures retry behavior.
type RetrierConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// Retrier implements usecase.Retrier. Only serialization failures and
// deadlocks are retried; anything else ends the loop after one attempt.
// When the retry budget runs out the last conflict is wrapped in
// domain.ErrTransferConflict so callers see a terminal failure instead
// of a silently swallowed one.
type Retrier struct {
	cfg    RetrierConfig
	logger *slog.Logger
}

// NewRetrier creates a Retrier with default settings.
func NewRetrier() *Retrier {
	return NewRetrierWithConfig(RetrierConfig{
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     1 * time.Second,
		MaxElapsedTime:  10 * time.Second,
	})
}

// NewRetrierWithConfig creates a Retrier with explicit settings.
func NewRetrierWithConfig(cfg RetrierConfig) *Retrier {
	return &Retrier{cfg: cfg, logger: slog.Default()}
}

// Retry executes an operation with exponential backoff on retryable errors.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialInterval
	b.MaxInterval = r.cfg.MaxInterval
	b.MaxElapsedTime = r.cfg.MaxElapsedTime

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		if retryCount >= r.cfg.MaxRetries {
			return backoff.Permanent(fmt.Errorf("%w: %s", domain.ErrTransferConflict, err))
		}

		retryCount++
		r.logger.Warn("transaction conflict, retrying",
			"error", err,
			"retry", retryCount,
		)

		return err
	}, backoff.WithContext(b, ctx))
}

// isRetryableError checks if a PostgreSQL error should trigger a retry.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlock:
			return true
		}
	}
	return false
}
