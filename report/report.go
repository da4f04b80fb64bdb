// Package report stores rendered test error reports and serves them back.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thanhminhmr/go-testerror/exception"
	"github.com/thanhminhmr/go-testerror/testerror"
)

// Report is an abbreviated and rendered error report.
type Report struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Message   string            `json:"message"`
	Text      string            `json:"text"`
	Summary   testerror.Summary `json:"summary"`
	CreatedAt time.Time         `json:"createdAt"`
}

func (r *Report) MarshalZerologObject(event *zerolog.Event) {
	event.Stringer("id", r.ID).
		Str("name", r.Name).
		Str("message", r.Message).
		Object("summary", r.Summary).
		Time("created_at", r.CreatedAt)
}

// newer orders reports newest first. IDs are time ordered, so they break ties
// between reports created within the same clock tick.
func newer(a, b *Report) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	for i := range a.ID {
		if a.ID[i] != b.ID[i] {
			return int(b.ID[i]) - int(a.ID[i])
		}
	}
	return 0
}

// Store persists reports. List returns at most limit reports, newest first.
type Store interface {
	Save(ctx context.Context, report *Report) error
	Get(ctx context.Context, id uuid.UUID) (*Report, error)
	List(ctx context.Context, limit int) ([]*Report, error)
}

const ErrNotFound = exception.String("Report: not found")
