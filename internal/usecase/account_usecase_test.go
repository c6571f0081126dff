package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/verax/ledger/internal/domain"
	"github.com/verax/ledger/internal/usecase"
	"github.com/verax/ledger/internal/usecase/mocks"
)

func newAccountUseCase(repo *mocks.MockAccountRepository, cache *mocks.MockCache) *usecase.AccountUseCase {
	return usecase.NewAccountUseCase(repo, cache, &mocks.MockIDGenerator{}, nil, zerolog.Nop())
}

func seedAccount(t *testing.T, repo *mocks.MockAccountRepository, id string, balance int64) *domain.Account {
	t.Helper()

	account, err := domain.NewAccount(id)
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	if balance > 0 {
		if err := account.Deposit(balance); err != nil {
			t.Fatalf("failed to seed balance: %v", err)
		}
	}
	if err := repo.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	return account
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name         string
		accountID    string
		setupMocks   func(*mocks.MockAccountRepository)
		expectedKind domain.Kind
	}{
		{
			name:       "successful account creation",
			accountID:  "1234",
			setupMocks: func(repo *mocks.MockAccountRepository) {},
		},
		{
			name:         "empty account id",
			accountID:    "",
			setupMocks:   func(repo *mocks.MockAccountRepository) {},
			expectedKind: domain.KindAccountInvalid,
		},
		{
			name:      "account already exists",
			accountID: "1234",
			setupMocks: func(repo *mocks.MockAccountRepository) {
				seedAccount(t, repo, "1234", 0)
			},
			expectedKind: domain.KindAccountAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAccountRepository()
			tt.setupMocks(repo)

			uc := newAccountUseCase(repo, mocks.NewMockCache())
			err := uc.CreateAccount(context.Background(), tt.accountID)

			if tt.expectedKind == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !domain.IsKind(err, tt.expectedKind) {
				t.Fatalf("expected %s error, got %v", tt.expectedKind, err)
			}
		})
	}
}

func TestAccountUseCase_Deposit(t *testing.T) {
	tests := []struct {
		name         string
		accountID    string
		amount       int64
		setupMocks   func(*mocks.MockAccountRepository)
		expectedKind domain.Kind
	}{
		{
			name:      "successful deposit",
			accountID: "1234",
			amount:    100,
			setupMocks: func(repo *mocks.MockAccountRepository) {
				seedAccount(t, repo, "1234", 0)
			},
		},
		{
			name:         "account not found",
			accountID:    "missing",
			amount:       100,
			setupMocks:   func(repo *mocks.MockAccountRepository) {},
			expectedKind: domain.KindAccountNotFound,
		},
		{
			name:      "zero amount is rejected",
			accountID: "1234",
			amount:    0,
			setupMocks: func(repo *mocks.MockAccountRepository) {
				seedAccount(t, repo, "1234", 0)
			},
			expectedKind: domain.KindAmountInvalid,
		},
		{
			name:      "negative amount is rejected",
			accountID: "1234",
			amount:    -50,
			setupMocks: func(repo *mocks.MockAccountRepository) {
				seedAccount(t, repo, "1234", 0)
			},
			expectedKind: domain.KindAmountInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAccountRepository()
			tt.setupMocks(repo)

			uc := newAccountUseCase(repo, mocks.NewMockCache())
			err := uc.Deposit(context.Background(), tt.accountID, tt.amount)

			if tt.expectedKind != "" {
				if !domain.IsKind(err, tt.expectedKind) {
					t.Fatalf("expected %s error, got %v", tt.expectedKind, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			account, err := repo.FindByAccountID(context.Background(), tt.accountID)
			if err != nil {
				t.Fatalf("failed to reload account: %v", err)
			}
			if account.Balance() != tt.amount {
				t.Fatalf("expected balance %d, got %d", tt.amount, account.Balance())
			}
		})
	}
}

func TestAccountUseCase_Deposit_PersistFailure(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	seedAccount(t, repo, "1234", 0)
	repo.UpdateAccountFunc = func(ctx context.Context, lock usecase.Lock, account *domain.Account) error {
		return domain.StorageError("update account", context.DeadlineExceeded)
	}

	uc := newAccountUseCase(repo, mocks.NewMockCache())
	err := uc.Deposit(context.Background(), "1234", 100)

	if !domain.IsKind(err, domain.KindStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestAccountUseCase_GetBalance(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	account := seedAccount(t, repo, "1234", 0)
	if err := account.Deposit(100); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if err := account.Deposit(200); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	cache := mocks.NewMockCache()
	uc := newAccountUseCase(repo, cache)

	out, err := uc.GetBalance(context.Background(), "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Balance != 300 {
		t.Fatalf("expected balance 300, got %d", out.Balance)
	}
	if out.Formatted != "3.00" {
		t.Fatalf("expected formatted balance 3.00, got %s", out.Formatted)
	}
	if out.Deposits != 2 {
		t.Fatalf("expected 2 deposits, got %d", out.Deposits)
	}
	if out.Transfers != 0 {
		t.Fatalf("expected 0 transfers, got %d", out.Transfers)
	}

	// The result must have been written through to the cache.
	if _, err := cache.Get(context.Background(), "balance:1234"); err != nil {
		t.Fatalf("expected cached balance, got %v", err)
	}
}

func TestAccountUseCase_GetBalance_CacheHit(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	repo.FindByAccountIDFunc = func(ctx context.Context, id string) (*domain.Account, error) {
		t.Fatal("repository must not be hit on a cache hit")
		return nil, nil
	}

	cached := usecase.BalanceOutput{AccountID: "1234", Balance: 500, Formatted: "5.00", Deposits: 1}
	raw, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	cache := mocks.NewMockCache()
	if err := cache.Set(context.Background(), "balance:1234", raw, usecase.BalanceCacheTTL); err != nil {
		t.Fatalf("cache set failed: %v", err)
	}

	uc := newAccountUseCase(repo, cache)

	out, err := uc.GetBalance(context.Background(), "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Balance != 500 {
		t.Fatalf("expected cached balance 500, got %d", out.Balance)
	}
}

func TestAccountUseCase_GetBalance_NotFound(t *testing.T) {
	uc := newAccountUseCase(mocks.NewMockAccountRepository(), mocks.NewMockCache())

	_, err := uc.GetBalance(context.Background(), "missing")
	if !domain.IsKind(err, domain.KindAccountNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
