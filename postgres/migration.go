package postgres

import (
	"context"
	"time"

	"github.com/thanhminhmr/go-testerror/exception"
)

// MigrationPlan is an ordered list of schema changes. Each record is applied
// at most once, inside its own transaction.
type MigrationPlan []MigrationRecord

type MigrationRecord struct {
	Id  string
	Sql []string
}

// language=PostgreSQL
const migrationCreateTable = `
CREATE TABLE IF NOT EXISTS _migrations_ (
	id CHARACTER VARYING(31) COLLATE "C" NOT NULL,
	applied_at TIMESTAMP WITH TIME ZONE NOT NULL,
	CONSTRAINT _migrations_pk PRIMARY KEY (id)
)`

// language=PostgreSQL
const migrationSelectIds = `SELECT id FROM _migrations_`

// language=PostgreSQL
const migrationCreateRecord = `INSERT INTO _migrations_ (id, applied_at) VALUES ($1, $2)`

const (
	errorMigrationRecord = exception.String("Postgres: Failed to create migration record")
	errorMigrationApply  = exception.String("Postgres: Failed to apply migration")
)

func (migrationPlan MigrationPlan) migrate(ctx context.Context, connection Connection) error {
	if _, err := connection.Exec(ctx, migrationCreateTable); err != nil {
		return err
	}
	appliedIds := map[string]struct{}{}
	collector := func(ctx context.Context, scanner RowScanner) error {
		var appliedId string
		if err := scanner(&appliedId); err != nil {
			return err
		}
		appliedIds[appliedId] = struct{}{}
		return nil
	}
	if _, err := connection.Query(ctx, collector, migrationSelectIds); err != nil {
		return err
	}
	for _, record := range migrationPlan {
		if _, exists := appliedIds[record.Id]; exists {
			continue
		}
		if err := record.migrate(ctx, connection); err != nil {
			return errorMigrationApply.SetMessage("%s", record.Id).AddCause(err)
		}
	}
	return nil
}

func (migrationRecord MigrationRecord) migrate(ctx context.Context, connection Connection) (errorResult error) {
	transaction, err := connection.Begin(ctx)
	if err != nil {
		return err
	}
	defer transaction.Finalize(ctx, &errorResult)
	for _, sql := range migrationRecord.Sql {
		if _, err := transaction.Exec(ctx, sql); err != nil {
			return err
		}
	}
	tag, err := transaction.Exec(ctx, migrationCreateRecord, migrationRecord.Id, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return errorMigrationRecord
	}
	return nil
}
