package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/thanhminhmr/go-testerror/exception"
)

// CommandTag is the status pgx reports for a completed command.
type CommandTag interface {
	String() string
	RowsAffected() int64
	Insert() bool
	Update() bool
	Delete() bool
	Select() bool
}

// RowScanner scans the current row into destination.
type RowScanner func(destination ...any) error

// RowCollector is called once per result row.
type RowCollector func(ctx context.Context, row RowScanner) error

// Connection runs statements on the pool or inside a transaction.
type Connection interface {
	// Begin starts a transaction.
	Begin(ctx context.Context) (Transaction, error)

	// Exec execute the command.
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)

	// Query scan the result rows by calling the collector repeatedly.
	Query(ctx context.Context, collector RowCollector, sql string, args ...any) (CommandTag, error)

	// QueryRow expects the result is exactly one row.
	QueryRow(ctx context.Context, sql string, args ...any) (RowScanner, error)
}

type _pgxConnection interface {
	Begin(context.Context) (pgx.Tx, error)
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
}

type _connection[pgxConnection _pgxConnection] struct {
	pgx pgxConnection
}

const (
	errorBegin         = exception.String("Postgres: Begin transaction failed")
	errorExec          = exception.String("Postgres: Exec failed")
	errorQuery         = exception.String("Postgres: Query failed")
	errorQueryRow      = exception.String("Postgres: QueryRow failed")
	errorQueryRowMany  = exception.String("Postgres: QueryRow failed, more than one row returned")
	ErrorQueryRowEmpty = exception.String("Postgres: QueryRow failed, no rows returned")
)

func (c _connection[pgxConnection]) Begin(ctx context.Context) (Transaction, error) {
	tx, err := c.pgx.Begin(ctx)
	if err != nil {
		return nil, errorBegin.AddCause(err)
	}
	return &_transaction{_connection: _connection[pgx.Tx]{pgx: tx}}, nil
}

func (c _connection[pgxConnection]) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	tag, err := c.pgx.Exec(ctx, sql, args...)
	if err != nil {
		return nil, errorExec.AddCause(err)
	}
	return &tag, nil
}

func (c _connection[pgxConnection]) Query(
	ctx context.Context,
	collector RowCollector,
	sql string,
	args ...any,
) (tag CommandTag, errorResult error) {
	if collector == nil {
		panic("BUG: collector is nil")
	}
	rows, err := c.pgx.Query(ctx, sql, args...)
	if err != nil {
		return nil, errorQuery.AddCause(err)
	}
	var ex exception.Exception
	defer func() {
		rows.Close()
		if err := rows.Err(); err != nil {
			if ex != nil {
				ex = ex.AddSuppressed(err)
			} else {
				ex = errorQuery.AddCause(err)
			}
		} else if ex == nil {
			commandTag := rows.CommandTag()
			tag = &commandTag
		}
		if ex != nil {
			errorResult = ex
		}
	}()
	for rows.Next() {
		if err := collector(ctx, rows.Scan); err != nil {
			ex = errorQuery.AddCause(err)
			return
		}
	}
	return
}

func (c _connection[pgxConnection]) QueryRow(ctx context.Context, sql string, args ...any) (RowScanner, error) {
	rows, err := c.pgx.Query(ctx, sql, args...)
	if err != nil {
		return nil, errorQueryRow.AddCause(err)
	}
	if !rows.Next() {
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, errorQueryRow.AddCause(err)
		}
		return nil, ErrorQueryRowEmpty
	}
	return func(destination ...any) (errorResult error) {
		var ex exception.Exception
		defer func() {
			rows.Close()
			if err := rows.Err(); err != nil {
				if ex != nil {
					ex = ex.AddSuppressed(err)
				} else {
					ex = errorQueryRow.AddCause(err)
				}
			}
			if ex != nil {
				errorResult = ex
			}
		}()
		if err := rows.Scan(destination...); err != nil {
			ex = errorQueryRow.AddCause(err)
			return
		}
		if rows.Next() {
			ex = errorQueryRowMany
			return
		}
		return
	}, nil
}
