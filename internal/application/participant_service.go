package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/example/placement-scheduler/internal/persistence"
)

// ParticipantRepository captures the persistence operations needed by the service.
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, participant Participant) (Participant, error)
	CreateParticipants(ctx context.Context, participants []Participant) error
	GetParticipant(ctx context.Context, id string) (Participant, error)
	UpdateParticipant(ctx context.Context, participant Participant) (Participant, error)
	DeleteParticipant(ctx context.Context, id string) error
	ListParticipants(ctx context.Context) ([]Participant, error)
	ListParticipantsByGroup(ctx context.Context, groupID string) ([]Participant, error)
}

// ParticipantService orchestrates validation, authorization, and persistence for roster members.
type ParticipantService struct {
	participants ParticipantRepository
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewParticipantService constructs a participant service with the provided dependencies.
func NewParticipantService(participants ParticipantRepository, idGenerator func() string, now func() time.Time) *ParticipantService {
	return NewParticipantServiceWithLogger(participants, idGenerator, now, nil)
}

// NewParticipantServiceWithLogger constructs a participant service with a specified logger.
func NewParticipantServiceWithLogger(participants ParticipantRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ParticipantService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ParticipantService{participants: participants, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *ParticipantService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ParticipantService", operation, attrs...)
}

// CreateParticipant validates input and persists a single roster member.
func (s *ParticipantService) CreateParticipant(ctx context.Context, params CreateParticipantParams) (participant Participant, err error) {
	if s == nil {
		err = fmt.Errorf("ParticipantService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateParticipant",
		"principal_id", params.Principal.OperatorID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create participant", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("participant_id", participant.ID).InfoContext(ctx, "participant created")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	vErr := validateParticipantInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	participant = s.buildParticipant(params.Input)

	if s.participants == nil {
		return
	}

	var persisted Participant
	persisted, err = s.participants.CreateParticipant(ctx, participant)
	if err != nil {
		err = mapParticipantRepoError(err)
		return
	}

	participant = persisted
	return
}

// ImportParticipants validates an entire roster and persists it atomically. A
// single invalid row rejects the whole import so re-runs never leave a group
// half loaded.
func (s *ParticipantService) ImportParticipants(ctx context.Context, params ImportParticipantsParams) (result ImportParticipantsResult, err error) {
	if s == nil {
		err = fmt.Errorf("ParticipantService is nil")
		return
	}
	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.participants == nil {
		err = fmt.Errorf("participant repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "ImportParticipants",
		"principal_id", params.Principal.OperatorID,
		"row_count", len(params.Inputs),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to import participants", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("created_count", result.Created).InfoContext(ctx, "participants imported")
	}()

	if len(params.Inputs) == 0 {
		vErr := &ValidationError{}
		vErr.add("rows", "at least one row is required")
		err = vErr
		return
	}

	vErr := &ValidationError{}
	participants := make([]Participant, 0, len(params.Inputs))
	for i, input := range params.Inputs {
		rowErr := validateParticipantInput(input)
		if rowErr.HasErrors() {
			for field, msg := range rowErr.FieldErrors {
				vErr.add("rows["+strconv.Itoa(i)+"]."+field, msg)
			}
			continue
		}
		participants = append(participants, s.buildParticipant(input))
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if err = s.participants.CreateParticipants(ctx, participants); err != nil {
		err = mapParticipantRepoError(err)
		return
	}

	result = ImportParticipantsResult{Created: len(participants)}
	return
}

// UpdateParticipant validates input and updates an existing roster member.
func (s *ParticipantService) UpdateParticipant(ctx context.Context, params UpdateParticipantParams) (participant Participant, err error) {
	if s == nil {
		err = fmt.Errorf("ParticipantService is nil")
		return
	}
	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.participants == nil {
		err = fmt.Errorf("participant repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateParticipant",
		"principal_id", params.Principal.OperatorID,
		"participant_id", params.ParticipantID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update participant", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("participant_id", participant.ID).InfoContext(ctx, "participant updated")
	}()

	var existing Participant
	existing, err = s.participants.GetParticipant(ctx, params.ParticipantID)
	if err != nil {
		err = mapParticipantRepoError(err)
		return
	}

	vErr := validateParticipantInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.GroupID = strings.TrimSpace(params.Input.GroupID)
	updated.Number = strings.TrimSpace(params.Input.Number)
	updated.Name = strings.TrimSpace(params.Input.Name)
	updated.Email = strings.TrimSpace(strings.ToLower(params.Input.Email))
	updated.Province = strings.TrimSpace(params.Input.Province)
	updated.City = strings.TrimSpace(params.Input.City)
	updated.Priority = params.Input.Priority
	updated.UpdatedAt = s.now()

	participant, err = s.participants.UpdateParticipant(ctx, updated)
	if err != nil {
		err = mapParticipantRepoError(err)
		return
	}

	return
}

// DeleteParticipant removes an existing roster member.
func (s *ParticipantService) DeleteParticipant(ctx context.Context, principal Principal, participantID string) error {
	if s == nil {
		return fmt.Errorf("ParticipantService is nil")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if s.participants == nil {
		return fmt.Errorf("participant repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteParticipant",
		"principal_id", principal.OperatorID,
		"participant_id", participantID,
	)

	if err := s.participants.DeleteParticipant(ctx, participantID); err != nil {
		err = mapParticipantRepoError(err)
		logger.ErrorContext(ctx, "failed to delete participant", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "participant deleted")
	return nil
}

// ListParticipants returns roster members, optionally scoped to one group.
// Group listings keep insertion order, which is the order placement runs
// consume the roster in.
func (s *ParticipantService) ListParticipants(ctx context.Context, principal Principal, groupID string) (participants []Participant, err error) {
	if s == nil {
		err = fmt.Errorf("ParticipantService is nil")
		return
	}
	if s.participants == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListParticipants",
		"principal_id", principal.OperatorID,
		"group_id", groupID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list participants", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(participants)).InfoContext(ctx, "participants listed")
	}()

	group := strings.TrimSpace(groupID)
	if group != "" {
		participants, err = s.participants.ListParticipantsByGroup(ctx, group)
		return
	}

	participants, err = s.participants.ListParticipants(ctx)
	return
}

func (s *ParticipantService) buildParticipant(input ParticipantInput) Participant {
	now := s.now()
	return Participant{
		ID:        s.idGenerator(),
		GroupID:   strings.TrimSpace(input.GroupID),
		Number:    strings.TrimSpace(input.Number),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(strings.ToLower(input.Email)),
		Province:  strings.TrimSpace(input.Province),
		City:      strings.TrimSpace(input.City),
		Priority:  input.Priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func validateParticipantInput(input ParticipantInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.GroupID) == "" {
		vErr.add("group_id", "group is required")
	}
	if strings.TrimSpace(input.Number) == "" {
		vErr.add("number", "number is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if email := strings.TrimSpace(input.Email); email != "" && !strings.Contains(email, "@") {
		vErr.add("email", "email is invalid")
	}

	return vErr
}

func mapParticipantRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("number", "number must be unique")
		return vErr
	}
	return err
}
