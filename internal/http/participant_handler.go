package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/placement-scheduler/internal/application"
)

type participantService interface {
	CreateParticipant(ctx context.Context, params application.CreateParticipantParams) (application.Participant, error)
	ImportParticipants(ctx context.Context, params application.ImportParticipantsParams) (application.ImportParticipantsResult, error)
	UpdateParticipant(ctx context.Context, params application.UpdateParticipantParams) (application.Participant, error)
	DeleteParticipant(ctx context.Context, principal application.Principal, participantID string) error
	ListParticipants(ctx context.Context, principal application.Principal, groupID string) ([]application.Participant, error)
}

type ParticipantHandler struct {
	service   participantService
	responder responder
}

func NewParticipantHandler(service participantService, logger *slog.Logger) *ParticipantHandler {
	return &ParticipantHandler{service: service, responder: newResponder(logger)}
}

func (h *ParticipantHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	participant, err := h.service.CreateParticipant(r.Context(), application.CreateParticipantParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, participantResponse{Participant: toParticipantDTO(participant)})
}

func (h *ParticipantHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req importParticipantsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	inputs := make([]application.ParticipantInput, 0, len(req.Rows))
	for _, row := range req.Rows {
		inputs = append(inputs, row.toInput())
	}

	result, err := h.service.ImportParticipants(r.Context(), application.ImportParticipantsParams{
		Principal: principal,
		Inputs:    inputs,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, importParticipantsResponse{Created: result.Created})
}

func (h *ParticipantHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	participantID, ok := ParticipantIDFromContext(r.Context())
	if !ok || strings.TrimSpace(participantID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidParticipantID)
		return
	}

	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	participant, err := h.service.UpdateParticipant(r.Context(), application.UpdateParticipantParams{
		Principal:     principal,
		ParticipantID: participantID,
		Input:         req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, participantResponse{Participant: toParticipantDTO(participant)})
}

func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	participantID, ok := ParticipantIDFromContext(r.Context())
	if !ok || strings.TrimSpace(participantID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidParticipantID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if err := h.service.DeleteParticipant(r.Context(), principal, participantID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	groupID := strings.TrimSpace(r.URL.Query().Get("group_id"))

	participants, err := h.service.ListParticipants(r.Context(), principal, groupID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listParticipantsResponse{Participants: toParticipantDTOs(participants)})
}

type participantRequest struct {
	GroupID  string `json:"group_id"`
	Number   string `json:"number"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Province string `json:"province"`
	City     string `json:"city"`
	Priority bool   `json:"priority"`
}

func (r participantRequest) toInput() application.ParticipantInput {
	return application.ParticipantInput{
		GroupID:  r.GroupID,
		Number:   r.Number,
		Name:     r.Name,
		Email:    r.Email,
		Province: r.Province,
		City:     r.City,
		Priority: r.Priority,
	}
}

type importParticipantsRequest struct {
	Rows []participantRequest `json:"rows"`
}

type importParticipantsResponse struct {
	Created int `json:"created"`
}

type participantDTO struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	Number    string `json:"number"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Province  string `json:"province"`
	City      string `json:"city"`
	Priority  bool   `json:"priority"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type participantResponse struct {
	Participant participantDTO `json:"participant"`
}

type listParticipantsResponse struct {
	Participants []participantDTO `json:"participants"`
}

func toParticipantDTO(participant application.Participant) participantDTO {
	return participantDTO{
		ID:        participant.ID,
		GroupID:   participant.GroupID,
		Number:    participant.Number,
		Name:      participant.Name,
		Email:     participant.Email,
		Province:  participant.Province,
		City:      participant.City,
		Priority:  participant.Priority,
		CreatedAt: participant.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: participant.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toParticipantDTOs(participants []application.Participant) []participantDTO {
	out := make([]participantDTO, 0, len(participants))
	for _, participant := range participants {
		out = append(out, toParticipantDTO(participant))
	}
	return out
}
