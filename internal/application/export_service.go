package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
)

// ExportService renders a persisted schedule as CSV for distribution to
// campus staff.
type ExportService struct {
	schedules    ScheduleReader
	participants ParticipantRepository
	logger       *slog.Logger
}

// NewExportService constructs an export service with the provided dependencies.
func NewExportService(schedules ScheduleReader, participants ParticipantRepository) *ExportService {
	return NewExportServiceWithLogger(schedules, participants, nil)
}

// NewExportServiceWithLogger constructs an export service with a specified logger.
func NewExportServiceWithLogger(schedules ScheduleReader, participants ParticipantRepository, logger *slog.Logger) *ExportService {
	return &ExportService{schedules: schedules, participants: participants, logger: defaultLogger(logger)}
}

func (s *ExportService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ExportService", operation, attrs...)
}

var exportHeader = []string{
	"number", "name", "email", "province", "city",
	"campus", "building", "room", "batch",
	"date", "start", "end", "seat",
}

// ExportCSV writes one row per assignment of the given schedule, in placement
// order, preceded by a header row.
func (s *ExportService) ExportCSV(ctx context.Context, principal Principal, summaryID string, w io.Writer) (err error) {
	if s == nil {
		return fmt.Errorf("ExportService is nil")
	}
	if s.schedules == nil || s.participants == nil {
		return fmt.Errorf("export dependencies not configured")
	}

	logger := s.loggerWith(ctx, "ExportCSV",
		"principal_id", principal.OperatorID,
		"summary_id", summaryID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to export schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "schedule exported")
	}()

	summary, err := s.schedules.GetSummary(ctx, summaryID)
	if err != nil {
		return mapScheduleRepoError(err)
	}

	batches, err := s.schedules.ListBatches(ctx, summaryID)
	if err != nil {
		return mapScheduleRepoError(err)
	}
	batchesByID := make(map[string]ScheduleBatch, len(batches))
	for _, batch := range batches {
		batchesByID[batch.ID] = batch
	}

	assignments, err := s.schedules.ListAssignments(ctx, summaryID)
	if err != nil {
		return mapScheduleRepoError(err)
	}

	roster, err := s.participants.ListParticipantsByGroup(ctx, summary.ParticipantGroupID)
	if err != nil {
		return mapParticipantRepoError(err)
	}
	participantsByID := make(map[string]Participant, len(roster))
	for _, participant := range roster {
		participantsByID[participant.ID] = participant
	}

	writer := csv.NewWriter(w)
	if err = writer.Write(exportHeader); err != nil {
		return err
	}

	for _, assignment := range assignments {
		participant := participantsByID[assignment.ParticipantID]
		batch := batchesByID[assignment.BatchID]
		record := []string{
			participant.Number,
			participant.Name,
			participant.Email,
			participant.Province,
			participant.City,
			batch.Campus,
			batch.Building,
			batch.RoomName,
			batch.Name,
			assignment.SlotDate.Format("2006-01-02"),
			formatMinute(assignment.SlotStartMinute),
			formatMinute(assignment.SlotEndMinute),
			strconv.Itoa(assignment.SeatNumber),
		}
		if err = writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
