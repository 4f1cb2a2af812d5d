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

type operatorService interface {
	CreateOperator(ctx context.Context, params application.CreateOperatorParams) (application.Operator, error)
	UpdateOperator(ctx context.Context, params application.UpdateOperatorParams) (application.Operator, error)
	DeleteOperator(ctx context.Context, principal application.Principal, operatorID string) error
	ListOperators(ctx context.Context, principal application.Principal) ([]application.Operator, error)
}

type OperatorHandler struct {
	service   operatorService
	responder responder
}

func NewOperatorHandler(service operatorService, logger *slog.Logger) *OperatorHandler {
	return &OperatorHandler{service: service, responder: newResponder(logger)}
}

func (h *OperatorHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req operatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	operator, err := h.service.CreateOperator(r.Context(), application.CreateOperatorParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, operatorResponse{Operator: toOperatorDTO(operator)})
}

func (h *OperatorHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	operatorID, ok := OperatorIDFromContext(r.Context())
	if !ok || strings.TrimSpace(operatorID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidOperatorID)
		return
	}

	var req operatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	operator, err := h.service.UpdateOperator(r.Context(), application.UpdateOperatorParams{
		Principal:  principal,
		OperatorID: operatorID,
		Input:      req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, operatorResponse{Operator: toOperatorDTO(operator)})
}

func (h *OperatorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	operatorID, ok := OperatorIDFromContext(r.Context())
	if !ok || strings.TrimSpace(operatorID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidOperatorID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if err := h.service.DeleteOperator(r.Context(), principal, operatorID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *OperatorHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	operators, err := h.service.ListOperators(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listOperatorsResponse{Operators: toOperatorDTOs(operators)})
}

type operatorRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	IsAdmin     bool   `json:"is_admin"`
}

func (r operatorRequest) toInput() application.OperatorInput {
	return application.OperatorInput{
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Password:    r.Password,
		IsAdmin:     r.IsAdmin,
	}
}

type operatorDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type operatorResponse struct {
	Operator operatorDTO `json:"operator"`
}

type listOperatorsResponse struct {
	Operators []operatorDTO `json:"operators"`
}

func toOperatorDTO(operator application.Operator) operatorDTO {
	return operatorDTO{
		ID:          operator.ID,
		Email:       operator.Email,
		DisplayName: operator.DisplayName,
		IsAdmin:     operator.IsAdmin,
		CreatedAt:   operator.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   operator.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toOperatorDTOs(operators []application.Operator) []operatorDTO {
	out := make([]operatorDTO, 0, len(operators))
	for _, operator := range operators {
		out = append(out, toOperatorDTO(operator))
	}
	return out
}
