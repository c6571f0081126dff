package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/verax/ledger/internal/domain"
	"github.com/verax/ledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
// Without overrides it behaves as an in-memory store handing out MockLocks.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateAccountFunc            func(ctx context.Context, account *domain.Account) error
	FindByAccountIDFunc          func(ctx context.Context, id string) (*domain.Account, error)
	FindByAccountIDForUpdateFunc func(ctx context.Context, id string) (*domain.Account, usecase.Lock, error)
	UpdateAccountFunc            func(ctx context.Context, lock usecase.Lock, account *domain.Account) error
	CancelAccountUpdateFunc      func(ctx context.Context, lock usecase.Lock) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; ok {
		return domain.NewError(domain.KindAccountAlreadyExists, "account already exists")
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) FindByAccountID(ctx context.Context, id string) (*domain.Account, error) {
	if m.FindByAccountIDFunc != nil {
		return m.FindByAccountIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.NewError(domain.KindAccountNotFound, "account not found")
}

func (m *MockAccountRepository) FindByAccountIDForUpdate(ctx context.Context, id string) (*domain.Account, usecase.Lock, error) {
	if m.FindByAccountIDForUpdateFunc != nil {
		return m.FindByAccountIDForUpdateFunc(ctx, id)
	}
	acc, err := m.FindByAccountID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return acc, &MockLock{}, nil
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, lock usecase.Lock, account *domain.Account) error {
	if m.UpdateAccountFunc != nil {
		return m.UpdateAccountFunc(ctx, lock, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.NewError(domain.KindAccountNotFound, "account not found")
	}
	m.accounts[account.ID] = account
	if lock != nil {
		return lock.Commit(ctx)
	}
	return nil
}

func (m *MockAccountRepository) CancelAccountUpdate(ctx context.Context, lock usecase.Lock) error {
	if m.CancelAccountUpdateFunc != nil {
		return m.CancelAccountUpdateFunc(ctx, lock)
	}
	if lock != nil {
		return lock.Rollback(ctx)
	}
	return nil
}

// MockLock is a mock implementation of Lock that records how it was
// resolved.
type MockLock struct {
	mu         sync.Mutex
	Committed  int
	RolledBack int

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (l *MockLock) Commit(ctx context.Context) error {
	l.mu.Lock()
	l.Committed++
	l.mu.Unlock()
	if l.CommitFunc != nil {
		return l.CommitFunc(ctx)
	}
	return nil
}

func (l *MockLock) Rollback(ctx context.Context) error {
	l.mu.Lock()
	l.RolledBack++
	l.mu.Unlock()
	if l.RollbackFunc != nil {
		return l.RollbackFunc(ctx)
	}
	return nil
}

// Resolved reports whether the lock was committed or rolled back at least
// once.
func (l *MockLock) Resolved() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Committed+l.RolledBack > 0
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once unless overridden.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockCache is a mock implementation of Cache backed by a map. Expiry is
// ignored.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, domain.NewError(domain.KindStorage, "cache miss")
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "test-op-id"
}
