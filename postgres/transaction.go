package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/thanhminhmr/go-testerror/exception"
)

type Transaction interface {
	Connection

	// Finalize concludes the transaction and must be deferred directly. It
	// commits only when *errorResult is nil, no panic is in flight, ctx is still
	// alive and the commit succeeds; otherwise it rolls back. A rollback failure
	// is attached to *errorResult as a suppressed error, and a recovered panic is
	// re-raised after the rollback.
	Finalize(ctx context.Context, errorResult *error)
}

const (
	errorRollbackContext = exception.String("Postgres: transaction rollback on context error")
	errorRollbackCommit  = exception.String("Postgres: transaction rollback on commit error")
	errorRollbackError   = exception.String("Postgres: transaction rollback on error")
	errorRollback        = exception.String("Postgres: transaction rollback failed")
)

type _transaction struct {
	_connection[pgx.Tx]
}

func (t _transaction) Finalize(ctx context.Context, errorResult *error) {
	if errorResult == nil {
		panic("BUG: errorResult is nil")
	}
	var recovered any
	var errorChain exception.Exception
	if *errorResult != nil {
		// rollback on error
	} else if recovered = recover(); recovered != nil {
		// rollback on panic without touching the result
	} else if err := ctx.Err(); err != nil {
		errorChain = errorRollbackContext.AddCause(err)
	} else if err := t.pgx.Commit(ctx); err != nil {
		errorChain = errorRollbackCommit.AddCause(err)
	} else {
		return
	}
	// rollback must not reuse a dead context
	if err := t.pgx.Rollback(context.WithoutCancel(ctx)); err != nil && recovered == nil {
		if errorChain == nil {
			var ok bool
			if errorChain, ok = (*errorResult).(exception.Exception); !ok {
				errorChain = errorRollbackError.AddCause(*errorResult)
			}
		}
		errorChain = errorChain.AddSuppressed(errorRollback.AddCause(err))
	}
	if recovered != nil {
		panic(recovered)
	}
	if errorChain != nil {
		*errorResult = errorChain
	}
}
