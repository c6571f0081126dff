package usecase

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/verax/ledger/internal/domain"
	"github.com/verax/ledger/internal/infrastructure/metrics"
)

// AccountUseCase handles account creation, deposits and balance queries.
type AccountUseCase struct {
	repo    AccountRepository
	cache   Cache
	idGen   IDGenerator
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	repo AccountRepository,
	cache Cache,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		repo:    repo,
		cache:   cache,
		idGen:   idGen,
		metrics: m,
		logger:  logger.With().Str("component", "account_usecase").Logger(),
	}
}

// CreateAccount creates a fresh account with a zero balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, accountID string) error {
	account, err := domain.NewAccount(accountID)
	if err != nil {
		return err
	}

	if err := uc.repo.CreateAccount(ctx, account); err != nil {
		if domain.IsKind(err, domain.KindAccountAlreadyExists) {
			uc.logger.Warn().Str("account_id", accountID).Msg("account already exists")
			return err
		}

		uc.logger.Error().Err(err).Str("account_id", accountID).Msg("failed to create account")

		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	uc.logger.Info().Str("account_id", accountID).Msg("account created")

	return nil
}

// Deposit adds funds to an account: a lock-free read, an in-memory deposit
// and an unlocked write through the repository's plain update path.
func (uc *AccountUseCase) Deposit(ctx context.Context, accountID string, amount int64) error {
	opID := uc.idGen.Generate()
	log := uc.logger.With().
		Str("operation_id", opID).
		Str("account_id", accountID).
		Int64("amount", amount).
		Logger()

	account, err := uc.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load account for deposit")
		return err
	}

	if err := account.Deposit(amount); err != nil {
		return err
	}

	if err := uc.repo.UpdateAccount(ctx, nil, account); err != nil {
		log.Error().Err(err).Msg("failed to persist deposit")
		return err
	}

	uc.invalidateBalance(ctx, accountID)

	if uc.metrics != nil {
		uc.metrics.DepositsTotal.Inc()
	}

	log.Info().Msg("fund deposited")

	return nil
}

// BalanceOutput is the balance query result.
type BalanceOutput struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
	Formatted string `json:"formatted"`
	Deposits  int64  `json:"deposits"`
	Transfers int64  `json:"transfers"`
}

// GetBalance returns an account's balance and transaction counts. Results
// are cached for BalanceCacheTTL; cache failures fall through to the
// repository.
func (uc *AccountUseCase) GetBalance(ctx context.Context, accountID string) (*BalanceOutput, error) {
	key := balanceCachePrefix + accountID

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, key); err == nil {
			var out BalanceOutput
			if err := json.Unmarshal(raw, &out); err == nil {
				return &out, nil
			}
		}
	}

	account, err := uc.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		uc.logger.Error().Err(err).Str("account_id", accountID).Msg("failed to get account balance")
		return nil, err
	}

	out := &BalanceOutput{
		AccountID: account.ID,
		Balance:   account.Balance(),
		Formatted: account.FormattedBalance(),
		Deposits:  account.DepositCount(),
		Transfers: account.TransferCount(),
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := uc.cache.Set(ctx, key, raw, BalanceCacheTTL); err != nil {
				uc.logger.Debug().Err(err).Str("account_id", accountID).Msg("failed to cache balance")
			}
		}
	}

	return out, nil
}

func (uc *AccountUseCase) invalidateBalance(ctx context.Context, accountID string) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, balanceCachePrefix+accountID); err != nil {
		uc.logger.Debug().Err(err).Str("account_id", accountID).Msg("failed to invalidate balance cache")
	}
}
