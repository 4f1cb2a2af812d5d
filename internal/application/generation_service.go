package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/example/placement-scheduler/internal/scheduler"
)

// ScheduleWriter captures the persistence operations a generation run performs.
type ScheduleWriter interface {
	CreateSummary(ctx context.Context, summary ScheduleSummary) error
	UpdateSummaryStatus(ctx context.Context, id, status string) error
	CreateBatch(ctx context.Context, summaryID string, batch ScheduleBatch) error
	CreateAssignments(ctx context.Context, summaryID string, assignments []ScheduleAssignment) error
}

// Summary statuses recorded for generation runs.
const (
	StatusCompleted           = "completed"
	StatusCompletedWithErrors = "completed_with_errors"
)

// GenerationService runs the placement engine over a campus group and roster
// and persists the resulting schedule.
type GenerationService struct {
	rooms        RoomRepository
	participants ParticipantRepository
	schedules    ScheduleWriter
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewGenerationService constructs a generation service with the provided dependencies.
func NewGenerationService(rooms RoomRepository, participants ParticipantRepository, schedules ScheduleWriter, idGenerator func() string, now func() time.Time) *GenerationService {
	return NewGenerationServiceWithLogger(rooms, participants, schedules, idGenerator, now, nil)
}

// NewGenerationServiceWithLogger constructs a generation service with a specified logger.
func NewGenerationServiceWithLogger(rooms RoomRepository, participants ParticipantRepository, schedules ScheduleWriter, idGenerator func() string, now func() time.Time, logger *slog.Logger) *GenerationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &GenerationService{
		rooms:        rooms,
		participants: participants,
		schedules:    schedules,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *GenerationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "GenerationService", operation, attrs...)
}

// Generate validates the request, runs the placement engine, and persists the
// schedule. The summary row is written before any batch so a partially failed
// run still leaves an inspectable record; individual batch failures are
// reported per batch and flip the summary status rather than aborting the run.
func (s *GenerationService) Generate(ctx context.Context, params GenerateParams) (result GenerationResult, err error) {
	if s == nil {
		err = fmt.Errorf("GenerationService is nil")
		return
	}
	if s.rooms == nil || s.participants == nil || s.schedules == nil {
		err = fmt.Errorf("generation dependencies not configured")
		return
	}

	logger := s.loggerWith(ctx, "Generate",
		"principal_id", params.Principal.OperatorID,
		"campus_group_id", params.Request.CampusGroupID,
		"participant_group_id", params.Request.ParticipantGroupID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "generation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"summary_id", result.Summary.ID,
			"scheduled_count", result.Summary.ScheduledCount,
			"unscheduled_count", result.Summary.UnscheduledCount,
			"status", result.Summary.Status,
		).InfoContext(ctx, "generation completed")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	parsed, vErr := parseGenerationRequest(params.Request)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	rooms, loadErr := s.rooms.ListRoomsByCampusGroup(ctx, parsed.campusGroupID)
	if loadErr != nil {
		err = mapRoomRepoError(loadErr)
		return
	}
	roster, loadErr := s.participants.ListParticipantsByGroup(ctx, parsed.participantGroupID)
	if loadErr != nil {
		err = mapParticipantRepoError(loadErr)
		return
	}

	inputErr := &ValidationError{}
	if len(rooms) == 0 {
		inputErr.add("campus_group_id", "campus group has no rooms")
	}
	if len(roster) == 0 {
		inputErr.add("participant_group_id", "participant group has no participants")
	}
	if inputErr.HasErrors() {
		err = inputErr
		return
	}

	engineRooms := make([]scheduler.Room, len(rooms))
	for i, room := range rooms {
		engineRooms[i] = scheduler.Room{
			ID:       room.ID,
			Campus:   room.Campus,
			Building: room.Building,
			Name:     room.Name,
			Capacity: room.Capacity,
		}
	}
	engineParticipants := make([]scheduler.Participant, len(roster))
	for i, participant := range roster {
		engineParticipants[i] = scheduler.Participant{
			ID:       participant.ID,
			Number:   participant.Number,
			Name:     participant.Name,
			Email:    participant.Email,
			Province: participant.Province,
			City:     participant.City,
			Priority: participant.Priority,
		}
	}

	ordered := scheduler.OrderParticipants(engineParticipants, params.Request.PrioritizeFlagged)

	engine := scheduler.NewEngine(parsed.window, parsed.startDate, parsed.policy)

	started := s.now()
	placement := engine.Run(engineRooms, ordered)
	elapsed := s.now().Sub(started)

	batches := scheduler.AggregateBatches(placement.Assignments, engineRooms, ordered)

	summary := ScheduleSummary{
		ID:                 s.idGenerator(),
		EventName:          parsed.eventName,
		EventType:          parsed.eventType,
		CampusGroupID:      parsed.campusGroupID,
		ParticipantGroupID: parsed.participantGroupID,
		StartDate:          parsed.startDate,
		WindowStartMinute:  parsed.window.StartMinute,
		WindowEndMinute:    parsed.window.EndMinute,
		SlotMinutes:        parsed.window.SlotMinutes,
		ScheduledCount:     len(placement.Assignments),
		UnscheduledCount:   len(placement.UnscheduledIDs),
		ExecutionSeconds:   elapsed.Seconds(),
		Status:             StatusCompleted,
		CreatedAt:          s.now(),
	}

	if err = s.schedules.CreateSummary(ctx, summary); err != nil {
		return
	}

	assignmentsByParticipant := make(map[string]scheduler.Assignment, len(placement.Assignments))
	for _, assignment := range placement.Assignments {
		assignmentsByParticipant[assignment.ParticipantID] = assignment
	}

	writes := make([]BatchWrite, 0, len(batches))
	resultBatches := make([]ScheduleBatch, 0, len(batches))
	resultAssignments := make([]ScheduleAssignment, 0, len(placement.Assignments))
	failed := 0
	for _, batch := range batches {
		write := BatchWrite{Name: batch.Name, AssignmentCount: batch.Count}

		stored := ScheduleBatch{
			ID:               s.idGenerator(),
			Name:             batch.Name,
			RoomID:           batch.RoomID,
			RoomName:         batch.RoomName,
			Campus:           batch.Campus,
			Building:         batch.Building,
			SlotDate:         batch.Slot.Date,
			SlotStartMinute:  batch.Slot.StartMinute,
			SlotEndMinute:    batch.Slot.EndMinute,
			ParticipantCount: batch.Count,
			HasPriority:      batch.HasPriority,
		}

		assignments, writeErr := s.batchAssignments(stored, batch.ParticipantIDs, assignmentsByParticipant)
		if writeErr == nil {
			// The computed records belong on the result even when the write
			// below fails; only storage is missing them.
			resultBatches = append(resultBatches, stored)
			resultAssignments = append(resultAssignments, assignments...)
			writeErr = s.persistBatch(ctx, summary.ID, stored, assignments)
		}

		if writeErr != nil {
			write.Error = writeErr.Error()
			failed++
			logger.ErrorContext(ctx, "failed to persist batch",
				"batch_name", batch.Name,
				"error", writeErr,
			)
		} else {
			write.Persisted = true
		}
		writes = append(writes, write)
	}

	if failed > 0 {
		summary.Status = StatusCompletedWithErrors
		if statusErr := s.schedules.UpdateSummaryStatus(ctx, summary.ID, StatusCompletedWithErrors); statusErr != nil {
			logger.ErrorContext(ctx, "failed to update summary status", "error", statusErr)
		}
	}

	result = GenerationResult{
		Summary:        summary,
		Batches:        resultBatches,
		Assignments:    resultAssignments,
		BatchWrites:    writes,
		UnscheduledIDs: append([]string(nil), placement.UnscheduledIDs...),
	}
	return
}

func (s *GenerationService) batchAssignments(batch ScheduleBatch, participantIDs []string, byParticipant map[string]scheduler.Assignment) ([]ScheduleAssignment, error) {
	assignments := make([]ScheduleAssignment, 0, len(participantIDs))
	for _, participantID := range participantIDs {
		placement, ok := byParticipant[participantID]
		if !ok {
			return nil, fmt.Errorf("assignment missing for participant %s", participantID)
		}
		assignments = append(assignments, ScheduleAssignment{
			ID:              s.idGenerator(),
			BatchID:         batch.ID,
			ParticipantID:   participantID,
			RoomID:          placement.RoomID,
			SlotDate:        placement.Slot.Date,
			SlotStartMinute: placement.Slot.StartMinute,
			SlotEndMinute:   placement.Slot.EndMinute,
			SeatNumber:      placement.SeatNumber,
		})
	}
	return assignments, nil
}

func (s *GenerationService) persistBatch(ctx context.Context, summaryID string, batch ScheduleBatch, assignments []ScheduleAssignment) error {
	if err := s.schedules.CreateBatch(ctx, summaryID, batch); err != nil {
		return err
	}
	return s.schedules.CreateAssignments(ctx, summaryID, assignments)
}

type parsedGeneration struct {
	eventName          string
	eventType          string
	campusGroupID      string
	participantGroupID string
	startDate          time.Time
	window             scheduler.TimeWindow
	policy             scheduler.Policy
}

func parseGenerationRequest(request GenerationRequest) (parsedGeneration, *ValidationError) {
	vErr := &ValidationError{}
	parsed := parsedGeneration{
		eventName:          strings.TrimSpace(request.EventName),
		eventType:          strings.TrimSpace(request.EventType),
		campusGroupID:      strings.TrimSpace(request.CampusGroupID),
		participantGroupID: strings.TrimSpace(request.ParticipantGroupID),
	}

	if parsed.eventName == "" {
		vErr.add("event_name", "event name is required")
	}
	if parsed.campusGroupID == "" {
		vErr.add("campus_group_id", "campus group is required")
	}
	if parsed.participantGroupID == "" {
		vErr.add("participant_group_id", "participant group is required")
	}

	startDate, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(request.StartDate), time.UTC)
	if err != nil {
		vErr.add("start_date", "start date must be YYYY-MM-DD")
	}
	parsed.startDate = startDate

	startMinute, ok := parseClockMinute(request.WindowStart)
	if !ok {
		vErr.add("window_start", "window start must be HH:MM")
	}
	endMinute, ok := parseClockMinute(request.WindowEnd)
	if !ok {
		vErr.add("window_end", "window end must be HH:MM")
	}

	policy := scheduler.Policy(strings.TrimSpace(request.Policy))
	if policy == "" {
		policy = scheduler.PolicyLegacy
	}
	if !scheduler.ValidPolicy(policy) {
		vErr.add("policy", "policy is not recognized")
	}
	parsed.policy = policy

	// Degenerate windows (end at or before start, non-positive slot length)
	// are not rejected here: they produce zero slots per day, which the
	// engine reports as an all-unscheduled run.
	parsed.window = scheduler.TimeWindow{
		StartMinute: startMinute,
		EndMinute:   endMinute,
		SlotMinutes: request.SlotMinutes,
	}

	return parsed, vErr
}

func parseClockMinute(value string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
