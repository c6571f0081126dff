package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/verax/ledger/internal/domain"
	"github.com/verax/ledger/internal/usecase"
)

const pgErrUniqueViolation = "23505"

const (
	accountExistsSQL = `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`

	insertAccountSQL = `INSERT INTO accounts (id, balance) VALUES ($1, $2)`

	findAccountSQL = `
		SELECT a.id,
		       a.balance,
		       COUNT(CASE WHEN t.type = 'deposit' THEN 1 END)  AS deposit_count,
		       COUNT(CASE WHEN t.type = 'transfer' THEN 1 END) AS transfer_count
		FROM accounts a
		LEFT JOIN transactions t ON a.id = t.account_id
		WHERE a.id = $1
		GROUP BY a.id`

	findAccountForUpdateSQL = `SELECT id, balance FROM accounts WHERE id = $1 FOR UPDATE`

	insertTransactionSQL = `
		INSERT INTO transactions (account_id, type, amount, destination_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	updateAccountSQL = `UPDATE accounts SET balance = $1, last_transaction_id = $2 WHERE id = $3`
)

// db is the subset of pgxpool.Pool the repository uses.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository implements usecase.AccountRepository on PostgreSQL. It
// is also the lock coordinator: locked reads hand out an open transaction as
// an explicit Lock value that the caller threads back into the matching
// update or cancel call.
type AccountRepository struct {
	db db
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepositoryWithDB(pool)
}

func newAccountRepositoryWithDB(db db) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateAccount inserts a fresh account row with a zero balance.
func (r *AccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	var exists bool
	if err := r.db.QueryRow(ctx, accountExistsSQL, account.ID).Scan(&exists); err != nil {
		return domain.StorageError("check account existence", err)
	}

	if exists {
		return domain.NewError(domain.KindAccountAlreadyExists, "account already exists")
	}

	if _, err := r.db.Exec(ctx, insertAccountSQL, account.ID, account.Balance()); err != nil {
		if isUniqueViolation(err) {
			// Lost the race between the existence check and the insert.
			return domain.WrapError(domain.KindAccountAlreadyExists, "account already exists", err)
		}

		return domain.StorageError("insert account", err)
	}

	return nil
}

// FindByAccountID is a lock-free read reconstructing the account with its
// historical transaction counters aggregated from the transaction log.
func (r *AccountRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	var (
		id                  string
		balance             int64
		deposits, transfers int64
	)

	err := r.db.QueryRow(ctx, findAccountSQL, accountID).Scan(&id, &balance, &deposits, &transfers)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewError(domain.KindAccountNotFound, "account not found")
		}

		return nil, domain.StorageError("find account", err)
	}

	return domain.RestoreAccount(id, &domain.AccountState{
		Balance:   domain.AmountFrom(balance),
		Deposits:  deposits,
		Transfers: transfers,
	})
}

// FindByAccountIDForUpdate opens a repeatable-read transaction and takes an
// exclusive row lock on the account. The returned Lock must be resolved by
// UpdateAccount or CancelAccountUpdate. The account is reconstructed with
// zeroed historical counters: only the balance matters under the lock.
func (r *AccountRepository) FindByAccountIDForUpdate(ctx context.Context, accountID string) (*domain.Account, usecase.Lock, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, nil, domain.StorageError("begin locked read", err)
	}

	var (
		id      string
		balance int64
	)

	err = tx.QueryRow(ctx, findAccountForUpdateSQL, accountID).Scan(&id, &balance)
	if err != nil {
		_ = tx.Rollback(ctx)

		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.NewError(domain.KindAccountNotFound, "account not found")
		}

		return nil, nil, domain.StorageError("locked account read", err)
	}

	account, err := domain.RestoreAccount(id, &domain.AccountState{Balance: domain.AmountFrom(balance)})
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, nil, err
	}

	return account, &Lock{tx: tx, accountID: id}, nil
}

// UpdateAccount persists the account's live transaction log in append order,
// points the account row at the last inserted transaction, writes the new
// balance and commits.
//
// With a nil lock the write runs on a fresh pooled transaction with no row
// lock held; that transaction is rolled back here on failure. With a held
// lock, any failure before commit leaves the lock open so the caller can
// cancel it.
func (r *AccountRepository) UpdateAccount(ctx context.Context, lock usecase.Lock, account *domain.Account) error {
	tx, owned, err := r.writeTx(ctx, lock)
	if err != nil {
		return err
	}

	abort := func() {
		if owned {
			_ = tx.Rollback(ctx)
		}
	}

	var exists bool
	if err := tx.QueryRow(ctx, accountExistsSQL, account.ID).Scan(&exists); err != nil {
		abort()
		return domain.StorageError("check account existence", err)
	}

	if !exists {
		abort()
		return domain.NewError(domain.KindAccountNotFound, "account not found")
	}

	var lastTxID *int64

	for _, record := range account.Transactions() {
		var destination *string
		if record.Type == domain.TxTransfer {
			to := record.To
			destination = &to
		}

		var id int64
		if err := tx.QueryRow(ctx, insertTransactionSQL, account.ID, string(record.Type), record.Amount, destination).Scan(&id); err != nil {
			abort()
			return domain.StorageError("insert transaction", err)
		}

		lastTxID = &id
	}

	if _, err := tx.Exec(ctx, updateAccountSQL, account.Balance(), lastTxID, account.ID); err != nil {
		abort()
		return domain.StorageError("update account", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.StorageError("commit account update", err)
	}

	return nil
}

// CancelAccountUpdate rolls back and releases a held lock. A nil or
// already-resolved lock is a no-op.
func (r *AccountRepository) CancelAccountUpdate(ctx context.Context, lock usecase.Lock) error {
	if lock == nil {
		return nil
	}

	if err := lock.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return domain.StorageError("cancel account update", err)
	}

	return nil
}

func (r *AccountRepository) writeTx(ctx context.Context, lock usecase.Lock) (pgx.Tx, bool, error) {
	if lock == nil {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return nil, false, domain.StorageError("begin account update", err)
		}

		return tx, true, nil
	}

	held, ok := lock.(*Lock)
	if !ok {
		return nil, false, domain.NewError(domain.KindStorage, "unrecognized lock handle")
	}

	return held.PgxTx(), false, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
