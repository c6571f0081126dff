package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/verax/ledger/internal/domain"
	"github.com/verax/ledger/internal/infrastructure/metrics"
)

// TransferUseCase orchestrates a two-account transfer around the
// repository's lock protocol: lock the origin row, read the destination
// without a lock, mutate both aggregates in memory, commit the origin under
// its held lock, then persist the destination as an ordinary update.
//
// The destination persist happens outside any lock and after the origin
// commit. A failure there leaves the origin debit committed without the
// destination credit; that partial-failure window is part of the two-call
// persistence contract, not something this layer papers over.
type TransferUseCase struct {
	repo    AccountRepository
	cache   Cache
	retrier Retrier
	idGen   IDGenerator
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	repo AccountRepository,
	cache Cache,
	retrier Retrier,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		repo:    repo,
		cache:   cache,
		retrier: retrier,
		idGen:   idGen,
		metrics: m,
		logger:  logger.With().Str("component", "transfer_usecase").Logger(),
	}
}

// Transfer moves amount from the origin account to the destination account.
func (uc *TransferUseCase) Transfer(ctx context.Context, originID, destinationID string, amount int64) error {
	opID := uc.idGen.Generate()
	log := uc.logger.With().
		Str("operation_id", opID).
		Str("origin_account_id", originID).
		Str("destination_account_id", destinationID).
		Int64("amount", amount).
		Logger()

	start := time.Now()

	var destination *domain.Account

	// The locked section is retried on transient storage failures
	// (deadlock, serialization). Every attempt acquires a fresh lock and
	// re-reads both accounts, so a retry never reapplies a committed debit.
	err := uc.retrier.Retry(ctx, func() error {
		dest, err := uc.lockAndDebit(ctx, originID, destinationID, amount)
		if err != nil {
			return err
		}

		destination = dest

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("transfer failed")
		uc.countTransferError(err)

		return err
	}

	// Origin debit is committed at this point. The destination credit is an
	// independent, unlocked write.
	if err := uc.repo.UpdateAccount(ctx, nil, destination); err != nil {
		log.Error().Err(err).Msg("transfer failed after origin commit: destination credit not persisted")
		uc.countTransferError(err)

		return err
	}

	uc.invalidateBalances(ctx, originID, destinationID)

	if uc.metrics != nil {
		uc.metrics.TransfersTotal.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		uc.metrics.TransferAmount.Observe(float64(amount))
	}

	log.Info().Msg("fund transferred")

	return nil
}

// lockAndDebit runs one attempt of the locked section. On success the origin
// debit is committed and the lock released; the mutated destination aggregate
// is returned for the caller to persist. On any failure the held lock is
// cancelled before returning.
func (uc *TransferUseCase) lockAndDebit(ctx context.Context, originID, destinationID string, amount int64) (*domain.Account, error) {
	origin, lock, err := uc.repo.FindByAccountIDForUpdate(ctx, originID)
	if err != nil {
		return nil, err
	}

	destination, err := uc.repo.FindByAccountID(ctx, destinationID)
	if err != nil {
		uc.cancel(ctx, lock)
		return nil, err
	}

	if err := origin.Transfer(amount, destination); err != nil {
		uc.cancel(ctx, lock)
		return nil, err
	}

	if err := uc.repo.UpdateAccount(ctx, lock, origin); err != nil {
		uc.cancel(ctx, lock)
		return nil, err
	}

	return destination, nil
}

func (uc *TransferUseCase) cancel(ctx context.Context, lock Lock) {
	if err := uc.repo.CancelAccountUpdate(ctx, lock); err != nil {
		uc.logger.Error().Err(err).Msg("failed to cancel account update")
	}
}

func (uc *TransferUseCase) countTransferError(err error) {
	if uc.metrics == nil {
		return
	}

	kind := string(domain.KindOf(err))
	if kind == "" {
		kind = "unknown"
	}

	uc.metrics.TransferErrors.WithLabelValues(kind).Inc()
}

func (uc *TransferUseCase) invalidateBalances(ctx context.Context, accountIDs ...string) {
	if uc.cache == nil {
		return
	}

	for _, id := range accountIDs {
		if err := uc.cache.Delete(ctx, balanceCachePrefix+id); err != nil {
			uc.logger.Debug().Err(err).Str("account_id", id).Msg("failed to invalidate balance cache")
		}
	}
}
