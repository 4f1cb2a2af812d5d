package application

import (
	"context"
	"fmt"
	"log/slog"
)

// Mailer delivers a single message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotificationService emails each scheduled participant their placement.
type NotificationService struct {
	schedules    ScheduleReader
	participants ParticipantRepository
	mailer       Mailer
	logger       *slog.Logger
}

// NewNotificationService constructs a notification service with the provided dependencies.
func NewNotificationService(schedules ScheduleReader, participants ParticipantRepository, mailer Mailer) *NotificationService {
	return NewNotificationServiceWithLogger(schedules, participants, mailer, nil)
}

// NewNotificationServiceWithLogger constructs a notification service with a specified logger.
func NewNotificationServiceWithLogger(schedules ScheduleReader, participants ParticipantRepository, mailer Mailer, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		schedules:    schedules,
		participants: participants,
		mailer:       mailer,
		logger:       defaultLogger(logger),
	}
}

func (s *NotificationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "NotificationService", operation, attrs...)
}

// Notify sends one email per persisted assignment. Delivery failures are
// counted and do not stop the remaining sends; participants without an email
// address are skipped.
func (s *NotificationService) Notify(ctx context.Context, principal Principal, summaryID string) (result NotificationResult, err error) {
	if s == nil {
		err = fmt.Errorf("NotificationService is nil")
		return
	}
	if s.schedules == nil || s.participants == nil || s.mailer == nil {
		err = fmt.Errorf("notification dependencies not configured")
		return
	}

	logger := s.loggerWith(ctx, "Notify",
		"principal_id", principal.OperatorID,
		"summary_id", summaryID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to send notifications", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("sent_count", result.Sent, "failed_count", result.Failed).InfoContext(ctx, "notifications sent")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	summary, loadErr := s.schedules.GetSummary(ctx, summaryID)
	if loadErr != nil {
		err = mapScheduleRepoError(loadErr)
		return
	}

	batches, loadErr := s.schedules.ListBatches(ctx, summaryID)
	if loadErr != nil {
		err = mapScheduleRepoError(loadErr)
		return
	}
	batchesByID := make(map[string]ScheduleBatch, len(batches))
	for _, batch := range batches {
		batchesByID[batch.ID] = batch
	}

	assignments, loadErr := s.schedules.ListAssignments(ctx, summaryID)
	if loadErr != nil {
		err = mapScheduleRepoError(loadErr)
		return
	}

	roster, loadErr := s.participants.ListParticipantsByGroup(ctx, summary.ParticipantGroupID)
	if loadErr != nil {
		err = mapParticipantRepoError(loadErr)
		return
	}
	participantsByID := make(map[string]Participant, len(roster))
	for _, participant := range roster {
		participantsByID[participant.ID] = participant
	}

	for _, assignment := range assignments {
		participant := participantsByID[assignment.ParticipantID]
		if participant.Email == "" {
			logger.WarnContext(ctx, "participant has no email address",
				"participant_id", assignment.ParticipantID,
			)
			continue
		}

		batch := batchesByID[assignment.BatchID]
		subject := fmt.Sprintf("%s - your room assignment", summary.EventName)
		body := notificationBody(summary, batch, assignment, participant)

		if sendErr := s.mailer.Send(ctx, participant.Email, subject, body); sendErr != nil {
			result.Failed++
			logger.ErrorContext(ctx, "failed to send assignment email",
				"participant_id", participant.ID,
				"error", sendErr,
			)
			continue
		}
		result.Sent++
	}

	return
}

func notificationBody(summary ScheduleSummary, batch ScheduleBatch, assignment ScheduleAssignment, participant Participant) string {
	return fmt.Sprintf(
		"Dear %s,\r\n\r\n"+
			"You have been scheduled for %s.\r\n\r\n"+
			"Date: %s\r\n"+
			"Time: %s-%s\r\n"+
			"Campus: %s\r\n"+
			"Building: %s\r\n"+
			"Room: %s\r\n"+
			"Seat: %d\r\n\r\n"+
			"Please arrive fifteen minutes before your slot.\r\n",
		participant.Name,
		summary.EventName,
		assignment.SlotDate.Format("2006-01-02"),
		formatMinute(assignment.SlotStartMinute),
		formatMinute(assignment.SlotEndMinute),
		batch.Campus,
		batch.Building,
		batch.RoomName,
		assignment.SeatNumber,
	)
}
