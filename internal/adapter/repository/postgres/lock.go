package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Lock is an open repeatable-read transaction holding an exclusive FOR
// UPDATE lock on one account row. The row stays locked until the lock is
// resolved exactly once, either by AccountRepository.UpdateAccount (commit)
// or AccountRepository.CancelAccountUpdate (rollback). There is no automatic
// release on error; an unresolved lock leaks a pooled connection.
type Lock struct {
	tx        pgx.Tx
	accountID string
}

// Commit commits the held transaction, releasing the row lock.
func (l *Lock) Commit(ctx context.Context) error {
	return l.tx.Commit(ctx)
}

// Rollback rolls back the held transaction, releasing the row lock.
func (l *Lock) Rollback(ctx context.Context) error {
	return l.tx.Rollback(ctx)
}

// AccountID returns the id of the locked account.
func (l *Lock) AccountID() string {
	return l.accountID
}

// PgxTx returns the underlying pgx transaction.
func (l *Lock) PgxTx() pgx.Tx {
	return l.tx
}
