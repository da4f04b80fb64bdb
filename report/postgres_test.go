package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-testerror/postgres"
	"github.com/thanhminhmr/go-testerror/report"
)

// fakeConnection keeps the inserted rows and answers selects from them.
type fakeConnection struct {
	rows [][]any
}

func (f *fakeConnection) Begin(context.Context) (postgres.Transaction, error) {
	panic("not used")
}

func (f *fakeConnection) Exec(_ context.Context, _ string, args ...any) (postgres.CommandTag, error) {
	f.rows = append(f.rows, args)
	tag := pgconn.NewCommandTag("INSERT 0 1")
	return &tag, nil
}

func (f *fakeConnection) Query(ctx context.Context, collector postgres.RowCollector, _ string, args ...any) (postgres.CommandTag, error) {
	limit := args[0].(int)
	for i := len(f.rows) - 1; i >= 0 && limit > 0; i, limit = i-1, limit-1 {
		if err := collector(ctx, scannerOf(f.rows[i])); err != nil {
			return nil, err
		}
	}
	tag := pgconn.NewCommandTag("SELECT 1")
	return &tag, nil
}

func (f *fakeConnection) QueryRow(_ context.Context, _ string, args ...any) (postgres.RowScanner, error) {
	for _, row := range f.rows {
		if row[0] == args[0] {
			return scannerOf(row), nil
		}
	}
	return nil, postgres.ErrorQueryRowEmpty
}

func scannerOf(row []any) postgres.RowScanner {
	return func(destination ...any) error {
		*destination[0].(*uuid.UUID) = row[0].(uuid.UUID)
		*destination[1].(*string) = row[1].(string)
		*destination[2].(*string) = row[2].(string)
		*destination[3].(*string) = row[3].(string)
		*destination[4].(*int) = row[4].(int)
		*destination[5].(*int) = row[5].(int)
		*destination[6].(*int) = row[6].(int)
		*destination[7].(*time.Time) = row[7].(time.Time)
		return nil
	}
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	store := report.NewPostgresStore(&fakeConnection{})
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	older := newReport(t, "older", base)
	older.Summary.FramesBefore = 4
	newer := newReport(t, "newer", base.Add(time.Minute))

	require.NoError(t, store.Save(ctx, older))
	require.NoError(t, store.Save(ctx, newer))

	got, err := store.Get(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older, got)

	_, err = store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, report.ErrNotFound)

	list, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "newer", list[0].Name)
}

func TestMigrationsAreOrdered(t *testing.T) {
	seen := map[string]bool{}
	for _, record := range report.Migrations {
		assert.False(t, seen[record.Id], record.Id)
		assert.LessOrEqual(t, len(record.Id), 31)
		seen[record.Id] = true
	}
}
