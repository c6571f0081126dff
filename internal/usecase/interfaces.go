package usecase

import (
	"context"
	"time"

	"github.com/verax/ledger/internal/domain"
)

// AccountRepository defines persistence and concurrency control for accounts.
type AccountRepository interface {
	// CreateAccount inserts a fresh account row.
	CreateAccount(ctx context.Context, account *domain.Account) error

	// FindByAccountID is a lock-free read that reconstructs the account with
	// its full historical transaction counters. Never used for mutation.
	FindByAccountID(ctx context.Context, id string) (*domain.Account, error)

	// FindByAccountIDForUpdate opens a transaction at repeatable-read
	// isolation and takes an exclusive row lock on the account. The returned
	// Lock stays open, and the row stays locked, until the caller resolves it
	// through UpdateAccount or CancelAccountUpdate. The account comes back
	// with zeroed historical counters: only the balance is reconstructed.
	FindByAccountIDForUpdate(ctx context.Context, id string) (*domain.Account, Lock, error)

	// UpdateAccount persists the account's live transaction log and its new
	// balance, then commits. With a nil lock the write runs on an ordinary
	// pooled transaction with no row lock held. When a held lock is passed
	// and the update fails before commit, the lock stays open and the caller
	// must cancel it.
	UpdateAccount(ctx context.Context, lock Lock, account *domain.Account) error

	// CancelAccountUpdate rolls back and releases a held lock. Safe to call
	// with a nil or already-resolved lock.
	CancelAccountUpdate(ctx context.Context, lock Lock) error
}

// Lock is an open database transaction holding an exclusive row lock on one
// account. It must be resolved exactly once; holding it beyond the logical
// operation leaks a pooled connection and an indefinitely locked row.
type Lock interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Retrier re-runs an operation when it fails with a transient storage error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations for query results.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IDGenerator generates unique operation IDs.
type IDGenerator interface {
	Generate() string
}
