package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/payrail/payrail/internal/adapter/repository/postgres"
	"github.com/payrail/payrail/internal/domain"
	"github.com/payrail/payrail/internal/usecase"
	"github.com/payrail/payrail/tests/testutil"
)

// Concurrent sends against the same sender must never overdraw the
// account: serialization conflicts are retried and the balance guard
// rejects anything beyond the available funds.
func TestConcurrentTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	userRepo := postgres.NewUserRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	idGen := postgres.NewULIDGenerator()
	refGen := postgres.NewReferenceGenerator()
	retrier := postgres.NewRetrier()

	transferUC := usecase.NewTransferUseCase(txManager, userRepo, accountRepo, transferRepo, idGen, refGen, retrier, nil)

	sender := testDB.CreateTestUser(ctx, "sender", decimal.NewFromInt(100))
	receiver := testDB.CreateTestUser(ctx, "receiver", decimal.NewFromInt(0))

	const workers = 20
	amount := decimal.NewFromInt(10)

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := transferUC.Send(ctx, usecase.SendInput{
				SenderID:         sender.ID,
				ReceiverUsername: "receiver",
				Amount:           amount,
			})
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	var succeeded, insufficient, conflicts int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientFunds):
			insufficient++
		case errors.Is(err, domain.ErrTransferConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// 100 available at 10 apiece: at most 10 sends can land.
	if succeeded > 10 {
		t.Fatalf("expected at most 10 successful transfers, got %d", succeeded)
	}

	if succeeded+insufficient+conflicts != workers {
		t.Fatalf("lost results: succeeded=%d insufficient=%d conflicts=%d", succeeded, insufficient, conflicts)
	}

	senderBalance := testDB.AccountBalance(ctx, sender.AccountID)
	receiverBalance := testDB.AccountBalance(ctx, receiver.AccountID)

	// Balances must reconcile with the number of successful sends.
	expectedSender := decimal.NewFromInt(100).Sub(amount.Mul(decimal.NewFromInt(int64(succeeded))))
	expectedReceiver := amount.Mul(decimal.NewFromInt(int64(succeeded)))

	if !senderBalance.Equal(expectedSender) {
		t.Fatalf("expected sender balance %s, got %s", expectedSender, senderBalance)
	}

	if !receiverBalance.Equal(expectedReceiver) {
		t.Fatalf("expected receiver balance %s, got %s", expectedReceiver, receiverBalance)
	}

	if senderBalance.IsNegative() {
		t.Fatalf("sender balance went negative: %s", senderBalance)
	}
}
