package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/placement-scheduler/internal/persistence"
)

// ScheduleReader captures the read operations over persisted generation runs.
type ScheduleReader interface {
	GetSummary(ctx context.Context, id string) (ScheduleSummary, error)
	ListSummaries(ctx context.Context) ([]ScheduleSummary, error)
	ListBatches(ctx context.Context, summaryID string) ([]ScheduleBatch, error)
	ListAssignments(ctx context.Context, summaryID string) ([]ScheduleAssignment, error)
}

// ScheduleService exposes read access to persisted schedules.
type ScheduleService struct {
	schedules ScheduleReader
	logger    *slog.Logger
}

// NewScheduleService constructs a schedule service with the provided dependencies.
func NewScheduleService(schedules ScheduleReader) *ScheduleService {
	return NewScheduleServiceWithLogger(schedules, nil)
}

// NewScheduleServiceWithLogger constructs a schedule service with a specified logger.
func NewScheduleServiceWithLogger(schedules ScheduleReader, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{schedules: schedules, logger: defaultLogger(logger)}
}

func (s *ScheduleService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ScheduleService", operation, attrs...)
}

// ListSchedules returns all generation run summaries, newest first.
func (s *ScheduleService) ListSchedules(ctx context.Context, principal Principal) (summaries []ScheduleSummary, err error) {
	if s == nil {
		err = fmt.Errorf("ScheduleService is nil")
		return
	}
	if s.schedules == nil {
		err = fmt.Errorf("schedule repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "ListSchedules", "principal_id", principal.OperatorID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list schedules", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(summaries)).InfoContext(ctx, "schedules listed")
	}()

	summaries, err = s.schedules.ListSummaries(ctx)
	if err != nil {
		err = mapScheduleRepoError(err)
	}
	return
}

// GetSchedule returns one generation run summary together with its batches.
func (s *ScheduleService) GetSchedule(ctx context.Context, principal Principal, summaryID string) (detail ScheduleDetail, err error) {
	if s == nil {
		err = fmt.Errorf("ScheduleService is nil")
		return
	}
	if s.schedules == nil {
		err = fmt.Errorf("schedule repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "GetSchedule",
		"principal_id", principal.OperatorID,
		"summary_id", summaryID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to get schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("batch_count", len(detail.Batches)).InfoContext(ctx, "schedule retrieved")
	}()

	var summary ScheduleSummary
	summary, err = s.schedules.GetSummary(ctx, summaryID)
	if err != nil {
		err = mapScheduleRepoError(err)
		return
	}

	var batches []ScheduleBatch
	batches, err = s.schedules.ListBatches(ctx, summaryID)
	if err != nil {
		err = mapScheduleRepoError(err)
		return
	}

	detail = ScheduleDetail{Summary: summary, Batches: batches}
	return
}

// ListBatches returns the batches of a generation run in slot order.
func (s *ScheduleService) ListBatches(ctx context.Context, principal Principal, summaryID string) (batches []ScheduleBatch, err error) {
	if s == nil {
		err = fmt.Errorf("ScheduleService is nil")
		return
	}
	if s.schedules == nil {
		err = fmt.Errorf("schedule repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "ListBatches",
		"principal_id", principal.OperatorID,
		"summary_id", summaryID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list batches", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(batches)).InfoContext(ctx, "batches listed")
	}()

	if _, err = s.schedules.GetSummary(ctx, summaryID); err != nil {
		err = mapScheduleRepoError(err)
		return
	}

	batches, err = s.schedules.ListBatches(ctx, summaryID)
	if err != nil {
		err = mapScheduleRepoError(err)
	}
	return
}

// ListAssignments returns every placement of a generation run in placement order.
func (s *ScheduleService) ListAssignments(ctx context.Context, principal Principal, summaryID string) (assignments []ScheduleAssignment, err error) {
	if s == nil {
		err = fmt.Errorf("ScheduleService is nil")
		return
	}
	if s.schedules == nil {
		err = fmt.Errorf("schedule repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "ListAssignments",
		"principal_id", principal.OperatorID,
		"summary_id", summaryID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list assignments", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(assignments)).InfoContext(ctx, "assignments listed")
	}()

	if _, err = s.schedules.GetSummary(ctx, summaryID); err != nil {
		err = mapScheduleRepoError(err)
		return
	}

	assignments, err = s.schedules.ListAssignments(ctx, summaryID)
	if err != nil {
		err = mapScheduleRepoError(err)
	}
	return
}

func mapScheduleRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
