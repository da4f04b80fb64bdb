package report

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/thanhminhmr/go-testerror/exception"
	"github.com/thanhminhmr/go-testerror/helper"
)

const errorDuplicate = exception.String("Report: duplicate id")

// MemoryStore keeps reports in process memory. Reports are lost on restart.
type MemoryStore struct {
	reports helper.SyncMap[uuid.UUID, *Report]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, report *Report) error {
	stored := *report
	if _, exists := s.reports.PutIfAbsent(report.ID, &stored); exists {
		return errorDuplicate.SetMessage("%s", report.ID)
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Report, error) {
	stored, exists := s.reports.Get(id)
	if !exists {
		return nil, ErrNotFound.SetMessage("%s", id)
	}
	report := *stored
	return &report, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]*Report, error) {
	reports := make([]*Report, 0, s.reports.Len())
	s.reports.ForEach(func(_ uuid.UUID, stored *Report) bool {
		report := *stored
		reports = append(reports, &report)
		return true
	})
	slices.SortFunc(reports, newer)
	if limit >= 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}
