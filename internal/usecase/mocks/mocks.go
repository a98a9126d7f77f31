// Package mocks provides hand-rolled test doubles for the usecase
// interfaces. Each mock keeps simple in-memory state and exposes Func
// hooks to override individual methods per test.
package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/payrail/payrail/internal/domain"
	"github.com/payrail/payrail/internal/usecase"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, user *domain.User) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameFunc   func(ctx context.Context, username string) (*domain.User, error)
	GetByIDTxFunc       func(ctx context.Context, tx usecase.Transaction, id string) (*domain.User, error)
	GetByUsernameTxFunc func(ctx context.Context, tx usecase.Transaction, username string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// Add seeds a user.
func (m *MockUserRepository) Add(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	// Store a snapshot so later mutations of the caller's struct do not
	// alter the "persisted" record, matching real repository semantics.
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.User, error) {
	if m.GetByIDTxFunc != nil {
		return m.GetByIDTxFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockUserRepository) GetByUsernameTx(ctx context.Context, tx usecase.Transaction, username string) (*domain.User, error) {
	if m.GetByUsernameTxFunc != nil {
		return m.GetByUsernameTxFunc(ctx, tx, username)
	}
	return m.GetByUsername(ctx, username)
}

// MockAccountRepository is a mock implementation of AccountRepository.
// Debit and Credit mutate the in-memory balances so tests can assert
// conservation across accounts.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc      func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.Account, error)
	GetByUserIDFunc func(ctx context.Context, userID string) (*domain.Account, error)
	DebitFunc       func(ctx context.Context, tx usecase.Transaction, accountID string, amount decimal.Decimal) (decimal.Decimal, error)
	CreditFunc      func(ctx context.Context, tx usecase.Transaction, accountID string, amount decimal.Decimal) (decimal.Decimal, error)
	ListFunc        func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Add seeds an account.
func (m *MockAccountRepository) Add(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

// Balance returns the current balance of a seeded account.
func (m *MockAccountRepository) Balance(accountID string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[accountID]; ok {
		return acc.Balance
	}
	return decimal.Zero
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.UserID == userID {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) Debit(ctx context.Context, tx usecase.Transaction, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if m.DebitFunc != nil {
		return m.DebitFunc(ctx, tx, accountID, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[accountID]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	if acc.Balance.LessThan(amount) {
		return decimal.Zero, domain.ErrInsufficientFunds
	}
	acc.Balance = acc.Balance.Sub(amount)
	return acc.Balance, nil
}

func (m *MockAccountRepository) Credit(ctx context.Context, tx usecase.Transaction, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if m.CreditFunc != nil {
		return m.CreditFunc(ctx, tx, accountID, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[accountID]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(amount)
	return acc.Balance, nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		copied := *acc
		accounts = append(accounts, &copied)
	}
	return accounts, nil
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers []*domain.Transfer

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
	GetByReferenceFunc func(ctx context.Context, reference string) (*domain.Transfer, error)
	ListForUserFunc    func(ctx context.Context, filter usecase.TransferFilter) ([]*domain.Transfer, error)
	CountForUserFunc   func(ctx context.Context, filter usecase.TransferFilter) (int64, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{}
}

// All returns every stored transfer.
func (m *MockTransferRepository) All() []*domain.Transfer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Transfer(nil), m.transfers...)
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers = append(m.transfers, transfer)
	return nil
}

func (m *MockTransferRepository) GetByReference(ctx context.Context, reference string) (*domain.Transfer, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.transfers {
		if t.Reference == reference {
			return t, nil
		}
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) ListForUser(ctx context.Context, filter usecase.TransferFilter) ([]*domain.Transfer, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.Transfer
	for _, t := range m.transfers {
		if m.matches(t, filter) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func (m *MockTransferRepository) CountForUser(ctx context.Context, filter usecase.TransferFilter) (int64, error) {
	if m.CountForUserFunc != nil {
		return m.CountForUserFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, t := range m.transfers {
		if m.matches(t, filter) {
			count++
		}
	}
	return count, nil
}

func (m *MockTransferRepository) matches(t *domain.Transfer, filter usecase.TransferFilter) bool {
	if t.SenderID != filter.ViewerID && t.ReceiverID != filter.ViewerID {
		return false
	}
	if filter.From != nil && t.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && !t.CreatedAt.Before(*filter.To) {
		return false
	}
	return true
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitCalls   int
	RollbackCalls int

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.CommitCalls++
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	t.RollbackCalls++
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
// It counts Begin calls so tests can assert how many attempts were made.
type MockTransactionManager struct {
	mu         sync.Mutex
	BeginCalls int
	LastTx     *MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	m.mu.Lock()
	m.BeginCalls++
	m.mu.Unlock()
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.LastTx = tx
	return tx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockReferenceGenerator is a mock implementation of ReferenceGenerator.
type MockReferenceGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() (string, error)
}

func NewMockReferenceGenerator() *MockReferenceGenerator {
	return &MockReferenceGenerator{}
}

func (m *MockReferenceGenerator) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("REF%09d", m.counter), nil
}

// MockRetrier is a mock implementation of Retrier. By default it runs the
// operation exactly once, which is what business-error tests want.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
