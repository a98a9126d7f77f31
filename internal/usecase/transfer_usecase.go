package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payrail/payrail/internal/domain"
	"github.com/payrail/payrail/internal/infrastructure/metrics"
)

// TransferUseCase moves funds between two account holders. Every transfer
// runs as one atomic transaction: debit, credit and the transfer record
// commit together or not at all. Attempts that abort on a serialization
// conflict are resubmitted by the Retrier, each in a fresh transaction.
type TransferUseCase struct {
	txManager    TransactionManager
	userRepo     UserRepository
	accountRepo  AccountRepository
	transferRepo TransferRepository
	idGen        IDGenerator
	refGen       ReferenceGenerator
	retrier      Retrier
	metrics      *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	idGen IDGenerator,
	refGen ReferenceGenerator,
	retrier Retrier,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		userRepo:     userRepo,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		idGen:        idGen,
		refGen:       refGen,
		retrier:      retrier,
		metrics:      m,
	}
}

// SendInput represents input for sending a transfer. The sender is
// addressed by ID (the authenticated caller), the receiver by username.
type SendInput struct {
	SenderID         string
	ReceiverUsername string
	Amount           decimal.Decimal
}

// Send executes a transfer, retrying on transient conflicts. Business
// rejections (unknown recipient, insufficient funds) surface after a
// single attempt; conflict exhaustion surfaces as ErrTransferConflict.
func (uc *TransferUseCase) Send(ctx context.Context, input SendInput) (*domain.Transfer, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	start := time.Now()

	var transfer *domain.Transfer

	err := uc.retrier.Retry(ctx, func() error {
		t, err := uc.attempt(ctx, input)
		if err != nil {
			return err
		}

		transfer = t

		return nil
	})
	if err != nil {
		uc.recordFailure(err)

		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		amount, _ := input.Amount.Float64()
		uc.metrics.TransferAmount.Observe(amount)
	}

	return transfer, nil
}

func (uc *TransferUseCase) recordFailure(err error) {
	if uc.metrics == nil {
		return
	}

	switch {
	case errors.Is(err, domain.ErrTransferConflict):
		uc.metrics.TransferConflicts.Inc()
		uc.metrics.TransferErrors.WithLabelValues("conflict").Inc()
	case errors.Is(err, domain.ErrInsufficientFunds):
		uc.metrics.TransferErrors.WithLabelValues("insufficient_funds").Inc()
	case errors.Is(err, domain.ErrRecipientNotFound):
		uc.metrics.TransferErrors.WithLabelValues("recipient_not_found").Inc()
	case errors.Is(err, domain.ErrSameAccount):
		uc.metrics.TransferErrors.WithLabelValues("same_account").Inc()
	default:
		uc.metrics.TransferErrors.WithLabelValues("internal").Inc()
	}
}

// attempt performs one transfer attempt inside a single transaction.
// The deferred rollback is a no-op after a successful commit; on any
// failure path it guarantees no partial state escapes.
func (uc *TransferUseCase) attempt(ctx context.Context, input SendInput) (*domain.Transfer, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	sender, err := uc.userRepo.GetByIDTx(ctx, tx, input.SenderID)
	if err != nil {
		return nil, err
	}

	receiver, err := uc.userRepo.GetByUsernameTx(ctx, tx, input.ReceiverUsername)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRecipientNotFound
		}

		return nil, err
	}

	if sender.ID == receiver.ID {
		return nil, domain.ErrSameAccount
	}

	balanceAfter, err := uc.accountRepo.Debit(ctx, tx, sender.AccountID, input.Amount)
	if err != nil {
		return nil, err
	}

	// The debit returns the post-mutation balance; within the same
	// isolation scope the pre-debit balance is exactly one amount above it.
	balanceBefore := balanceAfter.Add(input.Amount)

	if _, err := uc.accountRepo.Credit(ctx, tx, receiver.AccountID, input.Amount); err != nil {
		return nil, err
	}

	reference, err := uc.refGen.Generate()
	if err != nil {
		return nil, err
	}

	transfer := &domain.Transfer{
		ID:               uc.idGen.Generate(),
		Reference:        reference,
		SenderID:         sender.ID,
		SenderUsername:   sender.Username,
		ReceiverID:       receiver.ID,
		ReceiverUsername: receiver.Username,
		Amount:           input.Amount,
		BalanceBefore:    balanceBefore,
		BalanceAfter:     balanceAfter,
		CreatedAt:        time.Now().UTC(),
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return transfer, nil
}

// ListTransfersInput represents input for listing a viewer's transfers.
type ListTransfersInput struct {
	ViewerID string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// ListTransfers returns transfers where the viewer is sender or receiver,
// newest first, plus the total match count ignoring pagination.
func (uc *TransferUseCase) ListTransfers(ctx context.Context, input ListTransfersInput) ([]*domain.Transfer, int64, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	filter := TransferFilter{
		ViewerID: input.ViewerID,
		From:     input.From,
		To:       input.To,
		Limit:    limit,
		Offset:   offset,
	}

	transfers, err := uc.transferRepo.ListForUser(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.transferRepo.CountForUser(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return transfers, total, nil
}

// GetTransfer retrieves a transfer by reference. Viewers only see
// transfers they took part in.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, viewerID, reference string) (*domain.Transfer, error) {
	transfer, err := uc.transferRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if transfer.SenderID != viewerID && transfer.ReceiverID != viewerID {
		return nil, domain.ErrTransferNotFound
	}

	return transfer, nil
}
