package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/placement-scheduler/internal/application"
)

type generationService interface {
	Generate(ctx context.Context, params application.GenerateParams) (application.GenerationResult, error)
}

type GenerationHandler struct {
	service       generationService
	defaultPolicy string
	responder     responder
}

// NewGenerationHandler builds the handler for placement runs. defaultPolicy
// fills the run policy when the request leaves it blank.
func NewGenerationHandler(service generationService, defaultPolicy string, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{service: service, defaultPolicy: defaultPolicy, responder: newResponder(logger)}
}

func (h *GenerationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req generationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if req.Policy == "" {
		req.Policy = h.defaultPolicy
	}

	principal, _ := PrincipalFromContext(r.Context())

	result, err := h.service.Generate(r.Context(), application.GenerateParams{
		Principal: principal,
		Request:   req.toRequest(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, generationResponse{
		Summary:        toScheduleSummaryDTO(result.Summary),
		Batches:        toScheduleBatchDTOs(result.Batches),
		Assignments:    toScheduleAssignmentDTOs(result.Assignments),
		BatchWrites:    toBatchWriteDTOs(result.BatchWrites),
		UnscheduledIDs: result.UnscheduledIDs,
	})
}

type generationRequest struct {
	EventName          string `json:"event_name"`
	EventType          string `json:"event_type"`
	CampusGroupID      string `json:"campus_group_id"`
	ParticipantGroupID string `json:"participant_group_id"`
	StartDate          string `json:"start_date"`
	WindowStart        string `json:"window_start"`
	WindowEnd          string `json:"window_end"`
	SlotMinutes        int    `json:"slot_minutes"`
	PrioritizeFlagged  bool   `json:"prioritize_flagged"`
	Policy             string `json:"policy"`
}

func (r generationRequest) toRequest() application.GenerationRequest {
	return application.GenerationRequest{
		EventName:          r.EventName,
		EventType:          r.EventType,
		CampusGroupID:      r.CampusGroupID,
		ParticipantGroupID: r.ParticipantGroupID,
		StartDate:          r.StartDate,
		WindowStart:        r.WindowStart,
		WindowEnd:          r.WindowEnd,
		SlotMinutes:        r.SlotMinutes,
		PrioritizeFlagged:  r.PrioritizeFlagged,
		Policy:             r.Policy,
	}
}

type batchWriteDTO struct {
	Name            string `json:"name"`
	AssignmentCount int    `json:"assignment_count"`
	Persisted       bool   `json:"persisted"`
	Error           string `json:"error,omitempty"`
}

type generationResponse struct {
	Summary        scheduleSummaryDTO      `json:"summary"`
	Batches        []scheduleBatchDTO      `json:"batches"`
	Assignments    []scheduleAssignmentDTO `json:"assignments"`
	BatchWrites    []batchWriteDTO         `json:"batch_writes"`
	UnscheduledIDs []string                `json:"unscheduled_ids"`
}

func toBatchWriteDTOs(batches []application.BatchWrite) []batchWriteDTO {
	out := make([]batchWriteDTO, 0, len(batches))
	for _, batch := range batches {
		out = append(out, batchWriteDTO{
			Name:            batch.Name,
			AssignmentCount: batch.AssignmentCount,
			Persisted:       batch.Persisted,
			Error:           batch.Error,
		})
	}
	return out
}
