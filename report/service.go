package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thanhminhmr/go-testerror/exception"
	"github.com/thanhminhmr/go-testerror/jserror"
	"github.com/thanhminhmr/go-testerror/metrics"
	"github.com/thanhminhmr/go-testerror/testerror"
)

const (
	errorEmpty    = exception.String("Report: error is missing")
	errorIdentify = exception.String("Report: Failed to generate report id")
	errorSave     = exception.String("Report: Failed to save report")
)

// Service abbreviates submitted errors, renders them and keeps the result.
type Service struct {
	renderer testerror.Renderer
	store    Store
	metrics  *metrics.Registry
	logger   *zerolog.Logger
	config   *Config
	now      func() time.Time
}

func NewService(
	renderer testerror.Renderer,
	store Store,
	registry *metrics.Registry,
	logger *zerolog.Logger,
	config *Config,
) *Service {
	return &Service{
		renderer: renderer,
		store:    store,
		metrics:  registry,
		logger:   logger,
		config:   config,
		now:      time.Now,
	}
}

// Submit turns err into a report and stores it. The transport only labels
// metrics and logs.
func (s *Service) Submit(ctx context.Context, transport string, name string, err *jserror.Error) (*Report, error) {
	if err == nil {
		s.metrics.RecordReport(transport, nil, 0)
		return nil, errorEmpty
	}
	id, idErr := uuid.NewV7()
	if idErr != nil {
		s.metrics.RecordReport(transport, nil, 0)
		return nil, errorIdentify.AddCause(idErr)
	}
	start := time.Now()
	prepared := testerror.Prepare(err)
	text := s.renderer.Render(prepared)
	duration := time.Since(start)
	report := &Report{
		ID:        id,
		Name:      name,
		Message:   prepared.ExceptionMessage,
		Text:      text,
		Summary:   testerror.Summarize(err, prepared),
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	if saveErr := s.store.Save(ctx, report); saveErr != nil {
		s.metrics.RecordReport(transport, nil, 0)
		s.logger.Error().Err(saveErr).Str("transport", transport).Object("report", report).Msg("Failed to save report")
		return nil, errorSave.AddCause(saveErr)
	}
	s.metrics.RecordReport(transport, &report.Summary, duration)
	s.logger.Info().
		Str("transport", transport).
		Object("report", report).
		Dur("render", duration).
		Msg("Report submitted")
	return report, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.store.Get(ctx, id)
}

// List returns the newest reports. A limit of zero or less means the
// configured default; larger limits are capped.
func (s *Service) List(ctx context.Context, limit int) ([]*Report, error) {
	if limit <= 0 {
		limit = s.config.DefaultLimit
	}
	limit = min(limit, s.config.MaxLimit)
	return s.store.List(ctx, limit)
}
