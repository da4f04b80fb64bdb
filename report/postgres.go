package report

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/thanhminhmr/go-testerror/exception"
	"github.com/thanhminhmr/go-testerror/postgres"
)

// Migrations creates the reports table.
var Migrations = postgres.MigrationPlan{
	{
		Id: "20261001_reports",
		Sql: []string{
			// language=PostgreSQL
			`CREATE TABLE reports (
				id UUID NOT NULL,
				name TEXT NOT NULL,
				message TEXT NOT NULL,
				text TEXT NOT NULL,
				errors INTEGER NOT NULL,
				frames_before INTEGER NOT NULL,
				frames_after INTEGER NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				CONSTRAINT reports_pk PRIMARY KEY (id)
			)`,
			// language=PostgreSQL
			`CREATE INDEX reports_created_at_idx ON reports (created_at DESC, id DESC)`,
		},
	},
}

// language=PostgreSQL
const (
	queryInsert = `INSERT INTO reports (id, name, message, text, errors, frames_before, frames_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	querySelect = `SELECT id, name, message, text, errors, frames_before, frames_after, created_at
		FROM reports WHERE id = $1`
	queryList = `SELECT id, name, message, text, errors, frames_before, frames_after, created_at
		FROM reports ORDER BY created_at DESC, id DESC LIMIT $1`
)

const (
	errorPostgresSave = exception.String("Report: Failed to save report to Postgres")
	errorPostgresGet  = exception.String("Report: Failed to get report from Postgres")
	errorPostgresList = exception.String("Report: Failed to list reports from Postgres")
)

// PostgresStore keeps reports in the reports table.
type PostgresStore struct {
	connection postgres.Connection
}

func NewPostgresStore(connection postgres.Connection) *PostgresStore {
	return &PostgresStore{connection: connection}
}

func (s *PostgresStore) Save(ctx context.Context, report *Report) error {
	_, err := s.connection.Exec(ctx, queryInsert,
		report.ID,
		report.Name,
		report.Message,
		report.Text,
		report.Summary.Errors,
		report.Summary.FramesBefore,
		report.Summary.FramesAfter,
		report.CreatedAt,
	)
	if err != nil {
		return errorPostgresSave.AddCause(err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	scanner, err := s.connection.QueryRow(ctx, querySelect, id)
	if errors.Is(err, postgres.ErrorQueryRowEmpty) {
		return nil, ErrNotFound.SetMessage("%s", id)
	} else if err != nil {
		return nil, errorPostgresGet.AddCause(err)
	}
	report := &Report{}
	if err := scanReport(scanner, report); err != nil {
		return nil, errorPostgresGet.AddCause(err)
	}
	return report, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]*Report, error) {
	var reports []*Report
	collector := func(_ context.Context, scanner postgres.RowScanner) error {
		report := &Report{}
		if err := scanReport(scanner, report); err != nil {
			return err
		}
		reports = append(reports, report)
		return nil
	}
	if _, err := s.connection.Query(ctx, collector, queryList, limit); err != nil {
		return nil, errorPostgresList.AddCause(err)
	}
	return reports, nil
}

func scanReport(scanner postgres.RowScanner, report *Report) error {
	return scanner(
		&report.ID,
		&report.Name,
		&report.Message,
		&report.Text,
		&report.Summary.Errors,
		&report.Summary.FramesBefore,
		&report.Summary.FramesAfter,
		&report.CreatedAt,
	)
}
