package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verax/ledger/internal/domain"
)

func newMockRepo(t *testing.T) (*AccountRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create pgxmock pool")
	t.Cleanup(mock.Close)

	return newAccountRepositoryWithDB(mock), mock
}

func expectationsMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccount(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("1234").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO accounts`).
		WithArgs("1234", int64(0)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	account, err := domain.NewAccount("1234")
	require.NoError(t, err)

	require.NoError(t, repo.CreateAccount(context.Background(), account))
	expectationsMet(t, mock)
}

func TestCreateAccount_AlreadyExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("1234").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	account, err := domain.NewAccount("1234")
	require.NoError(t, err)

	err = repo.CreateAccount(context.Background(), account)
	assert.True(t, domain.IsKind(err, domain.KindAccountAlreadyExists), "expected already-exists error, got %v", err)
	expectationsMet(t, mock)
}

func TestFindByAccountID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT a.id`).
		WithArgs("1234").
		WillReturnRows(pgxmock.NewRows([]string{"id", "balance", "deposit_count", "transfer_count"}).
			AddRow("1234", int64(500), int64(2), int64(1)))

	account, err := repo.FindByAccountID(context.Background(), "1234")
	require.NoError(t, err)

	assert.Equal(t, int64(500), account.Balance())
	assert.Equal(t, int64(2), account.DepositCount())
	assert.Equal(t, int64(1), account.TransferCount())
	expectationsMet(t, mock)
}

func TestFindByAccountID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT a.id`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByAccountID(context.Background(), "missing")
	assert.True(t, domain.IsKind(err, domain.KindAccountNotFound), "expected not-found error, got %v", err)
	expectationsMet(t, mock)
}

func TestFindByAccountIDForUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("1234").
		WillReturnRows(pgxmock.NewRows([]string{"id", "balance"}).AddRow("1234", int64(500)))
	mock.ExpectRollback()

	account, lock, err := repo.FindByAccountIDForUpdate(context.Background(), "1234")
	require.NoError(t, err)
	require.NotNil(t, lock)

	assert.Equal(t, int64(500), account.Balance())
	// Counters are not reconstructed under the lock.
	assert.Equal(t, int64(0), account.DepositCount())
	assert.Equal(t, int64(0), account.TransferCount())

	require.NoError(t, repo.CancelAccountUpdate(context.Background(), lock))
	expectationsMet(t, mock)
}

func TestFindByAccountIDForUpdate_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, lock, err := repo.FindByAccountIDForUpdate(context.Background(), "missing")
	assert.True(t, domain.IsKind(err, domain.KindAccountNotFound), "expected not-found error, got %v", err)
	assert.Nil(t, lock)
	expectationsMet(t, mock)
}

func TestUpdateAccount_Unlocked(t *testing.T) {
	repo, mock := newMockRepo(t)

	account, err := domain.NewAccount("1234")
	require.NoError(t, err)
	require.NoError(t, account.Deposit(100))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("1234").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs("1234", "deposit", int64(100), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(`UPDATE accounts`).
		WithArgs(int64(100), pgxmock.AnyArg(), "1234").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateAccount(context.Background(), nil, account))
	expectationsMet(t, mock)
}

func TestUpdateAccount_CommitsHeldLock(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("1234").
		WillReturnRows(pgxmock.NewRows([]string{"id", "balance"}).AddRow("1234", int64(500)))

	// No second begin: the update must run on the held transaction.
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("1234").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs("1234", "deposit", int64(50), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(8)))
	mock.ExpectExec(`UPDATE accounts`).
		WithArgs(int64(550), pgxmock.AnyArg(), "1234").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	account, lock, err := repo.FindByAccountIDForUpdate(context.Background(), "1234")
	require.NoError(t, err)
	require.NoError(t, account.Deposit(50))

	require.NoError(t, repo.UpdateAccount(context.Background(), lock, account))
	expectationsMet(t, mock)
}

func TestUpdateAccount_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	account, err := domain.NewAccount("ghost")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	err = repo.UpdateAccount(context.Background(), nil, account)
	assert.True(t, domain.IsKind(err, domain.KindAccountNotFound), "expected not-found error, got %v", err)
	expectationsMet(t, mock)
}

func TestCancelAccountUpdate_NilLock(t *testing.T) {
	repo, mock := newMockRepo(t)

	require.NoError(t, repo.CancelAccountUpdate(context.Background(), nil))
	expectationsMet(t, mock)
}
