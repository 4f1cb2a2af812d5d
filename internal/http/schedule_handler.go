package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/placement-scheduler/internal/application"
)

type scheduleService interface {
	ListSchedules(ctx context.Context, principal application.Principal) ([]application.ScheduleSummary, error)
	GetSchedule(ctx context.Context, principal application.Principal, summaryID string) (application.ScheduleDetail, error)
	ListBatches(ctx context.Context, principal application.Principal, summaryID string) ([]application.ScheduleBatch, error)
	ListAssignments(ctx context.Context, principal application.Principal, summaryID string) ([]application.ScheduleAssignment, error)
}

type exportService interface {
	ExportCSV(ctx context.Context, principal application.Principal, summaryID string, w io.Writer) error
}

type notificationService interface {
	Notify(ctx context.Context, principal application.Principal, summaryID string) (application.NotificationResult, error)
}

type ScheduleHandler struct {
	service       scheduleService
	exports       exportService
	notifications notificationService
	responder     responder
}

func NewScheduleHandler(service scheduleService, exports exportService, notifications notificationService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service:       service,
		exports:       exports,
		notifications: notifications,
		responder:     newResponder(logger),
	}
}

func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	summaries, err := h.service.ListSchedules(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSchedulesResponse{Schedules: toScheduleSummaryDTOs(summaries)})
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	detail, err := h.service.GetSchedule(r.Context(), principal, scheduleID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, scheduleDetailResponse{
		Schedule: toScheduleSummaryDTO(detail.Summary),
		Batches:  toScheduleBatchDTOs(detail.Batches),
	})
}

func (h *ScheduleHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	batches, err := h.service.ListBatches(r.Context(), principal, scheduleID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBatchesResponse{Batches: toScheduleBatchDTOs(batches)})
}

func (h *ScheduleHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	assignments, err := h.service.ListAssignments(r.Context(), principal, scheduleID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAssignmentsResponse{Assignments: toScheduleAssignmentDTOs(assignments)})
}

// Export streams the schedule as CSV. The body is buffered before any header
// is written so service errors still map to JSON error responses.
func (h *ScheduleHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.exports == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var buf strings.Builder
	if err := h.exports.ExportCSV(r.Context(), principal, scheduleID, &buf); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "schedule-"+scheduleID+".csv"))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, buf.String())
}

func (h *ScheduleHandler) Notify(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.notifications == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	result, err := h.notifications.Notify(r.Context(), principal, scheduleID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, notificationResponse{
		Sent:   result.Sent,
		Failed: result.Failed,
	})
}

type scheduleSummaryDTO struct {
	ID                 string  `json:"id"`
	EventName          string  `json:"event_name"`
	EventType          string  `json:"event_type"`
	CampusGroupID      string  `json:"campus_group_id"`
	ParticipantGroupID string  `json:"participant_group_id"`
	StartDate          string  `json:"start_date"`
	WindowStart        string  `json:"window_start"`
	WindowEnd          string  `json:"window_end"`
	SlotMinutes        int     `json:"slot_minutes"`
	ScheduledCount     int     `json:"scheduled_count"`
	UnscheduledCount   int     `json:"unscheduled_count"`
	ExecutionSeconds   float64 `json:"execution_seconds"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
}

type scheduleBatchDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	RoomID           string `json:"room_id"`
	RoomName         string `json:"room_name"`
	Campus           string `json:"campus"`
	Building         string `json:"building"`
	SlotDate         string `json:"slot_date"`
	SlotStart        string `json:"slot_start"`
	SlotEnd          string `json:"slot_end"`
	ParticipantCount int    `json:"participant_count"`
	HasPriority      bool   `json:"has_priority"`
}

type scheduleAssignmentDTO struct {
	ID            string `json:"id"`
	BatchID       string `json:"batch_id"`
	ParticipantID string `json:"participant_id"`
	RoomID        string `json:"room_id"`
	SlotDate      string `json:"slot_date"`
	SlotStart     string `json:"slot_start"`
	SlotEnd       string `json:"slot_end"`
	SeatNumber    int    `json:"seat_number"`
}

type listSchedulesResponse struct {
	Schedules []scheduleSummaryDTO `json:"schedules"`
}

type scheduleDetailResponse struct {
	Schedule scheduleSummaryDTO `json:"schedule"`
	Batches  []scheduleBatchDTO `json:"batches"`
}

type listBatchesResponse struct {
	Batches []scheduleBatchDTO `json:"batches"`
}

type listAssignmentsResponse struct {
	Assignments []scheduleAssignmentDTO `json:"assignments"`
}

type notificationResponse struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

func formatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

func toScheduleSummaryDTO(summary application.ScheduleSummary) scheduleSummaryDTO {
	return scheduleSummaryDTO{
		ID:                 summary.ID,
		EventName:          summary.EventName,
		EventType:          summary.EventType,
		CampusGroupID:      summary.CampusGroupID,
		ParticipantGroupID: summary.ParticipantGroupID,
		StartDate:          summary.StartDate.Format("2006-01-02"),
		WindowStart:        formatClock(summary.WindowStartMinute),
		WindowEnd:          formatClock(summary.WindowEndMinute),
		SlotMinutes:        summary.SlotMinutes,
		ScheduledCount:     summary.ScheduledCount,
		UnscheduledCount:   summary.UnscheduledCount,
		ExecutionSeconds:   summary.ExecutionSeconds,
		Status:             summary.Status,
		CreatedAt:          summary.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toScheduleSummaryDTOs(summaries []application.ScheduleSummary) []scheduleSummaryDTO {
	out := make([]scheduleSummaryDTO, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, toScheduleSummaryDTO(summary))
	}
	return out
}

func toScheduleBatchDTOs(batches []application.ScheduleBatch) []scheduleBatchDTO {
	out := make([]scheduleBatchDTO, 0, len(batches))
	for _, batch := range batches {
		out = append(out, scheduleBatchDTO{
			ID:               batch.ID,
			Name:             batch.Name,
			RoomID:           batch.RoomID,
			RoomName:         batch.RoomName,
			Campus:           batch.Campus,
			Building:         batch.Building,
			SlotDate:         batch.SlotDate.Format("2006-01-02"),
			SlotStart:        formatClock(batch.SlotStartMinute),
			SlotEnd:          formatClock(batch.SlotEndMinute),
			ParticipantCount: batch.ParticipantCount,
			HasPriority:      batch.HasPriority,
		})
	}
	return out
}

func toScheduleAssignmentDTOs(assignments []application.ScheduleAssignment) []scheduleAssignmentDTO {
	out := make([]scheduleAssignmentDTO, 0, len(assignments))
	for _, assignment := range assignments {
		out = append(out, scheduleAssignmentDTO{
			ID:            assignment.ID,
			BatchID:       assignment.BatchID,
			ParticipantID: assignment.ParticipantID,
			RoomID:        assignment.RoomID,
			SlotDate:      assignment.SlotDate.Format("2006-01-02"),
			SlotStart:     formatClock(assignment.SlotStartMinute),
			SlotEnd:       formatClock(assignment.SlotEndMinute),
			SeatNumber:    assignment.SeatNumber,
		})
	}
	return out
}
