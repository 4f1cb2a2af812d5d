package application

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/example/placement-scheduler/internal/persistence"
)

// OperatorRepository captures the persistence operations needed by the operator service.
type OperatorRepository interface {
	CreateOperator(ctx context.Context, operator Operator, passwordHash string) (Operator, error)
	GetOperator(ctx context.Context, id string) (Operator, error)
	UpdateOperator(ctx context.Context, operator Operator) (Operator, error)
	DeleteOperator(ctx context.Context, id string) error
	ListOperators(ctx context.Context) ([]Operator, error)
}

// PasswordHasher derives a storable hash from a plain text password.
type PasswordHasher func(password string) (string, error)

// OperatorService orchestrates validation, authorization, and persistence for staff accounts.
type OperatorService struct {
	operators    OperatorRepository
	hashPassword PasswordHasher
	idGenerator  func() string
	now          func() time.Time
}

// NewOperatorService wires dependencies for the operator service.
func NewOperatorService(operators OperatorRepository, hashPassword PasswordHasher, idGenerator func() string, now func() time.Time) *OperatorService {
	if hashPassword == nil {
		hashPassword = func(password string) (string, error) {
			return CreatePasswordHash(password, DefaultArgon2idParams)
		}
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &OperatorService{operators: operators, hashPassword: hashPassword, idGenerator: idGenerator, now: now}
}

// CreateOperator validates input and persists a new staff account for administrators.
func (s *OperatorService) CreateOperator(ctx context.Context, params CreateOperatorParams) (Operator, error) {
	if s == nil {
		return Operator{}, fmt.Errorf("OperatorService is nil")
	}
	if !params.Principal.IsAdmin {
		return Operator{}, ErrUnauthorized
	}

	normalized := normalizeOperatorInput(params.Input)
	vErr := validateOperatorInput(normalized, true)
	if vErr.HasErrors() {
		return Operator{}, vErr
	}

	hash, err := s.hashPassword(normalized.Password)
	if err != nil {
		return Operator{}, err
	}

	operator := Operator{
		ID:          s.idGenerator(),
		Email:       normalized.Email,
		DisplayName: normalized.DisplayName,
		IsAdmin:     normalized.IsAdmin,
		CreatedAt:   s.now(),
	}
	operator.UpdatedAt = operator.CreatedAt

	if s.operators == nil {
		return operator, nil
	}

	persisted, err := s.operators.CreateOperator(ctx, operator, hash)
	if err != nil {
		return Operator{}, mapOperatorRepoError(err)
	}

	return persisted, nil
}

// UpdateOperator validates input and updates an existing staff account for administrators.
func (s *OperatorService) UpdateOperator(ctx context.Context, params UpdateOperatorParams) (Operator, error) {
	if s == nil {
		return Operator{}, fmt.Errorf("OperatorService is nil")
	}
	if !params.Principal.IsAdmin {
		return Operator{}, ErrUnauthorized
	}
	if s.operators == nil {
		return Operator{}, fmt.Errorf("operator repository not configured")
	}

	existing, err := s.operators.GetOperator(ctx, params.OperatorID)
	if err != nil {
		return Operator{}, mapOperatorRepoError(err)
	}

	normalized := normalizeOperatorInput(params.Input)
	vErr := validateOperatorInput(normalized, false)
	if vErr.HasErrors() {
		return Operator{}, vErr
	}

	updated := existing
	updated.Email = normalized.Email
	updated.DisplayName = normalized.DisplayName
	updated.IsAdmin = normalized.IsAdmin
	updated.UpdatedAt = s.now()

	persisted, err := s.operators.UpdateOperator(ctx, updated)
	if err != nil {
		return Operator{}, mapOperatorRepoError(err)
	}

	return persisted, nil
}

// DeleteOperator removes a staff account when requested by an administrator.
// Operators cannot delete their own account.
func (s *OperatorService) DeleteOperator(ctx context.Context, principal Principal, operatorID string) error {
	if s == nil {
		return fmt.Errorf("OperatorService is nil")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if principal.OperatorID == operatorID {
		return ErrUnauthorized
	}
	if s.operators == nil {
		return fmt.Errorf("operator repository not configured")
	}

	if err := s.operators.DeleteOperator(ctx, operatorID); err != nil {
		return mapOperatorRepoError(err)
	}
	return nil
}

// ListOperators returns every staff account, sorted by email for stable output.
func (s *OperatorService) ListOperators(ctx context.Context, principal Principal) ([]Operator, error) {
	if s == nil {
		return nil, fmt.Errorf("OperatorService is nil")
	}
	if !principal.IsAdmin {
		return nil, ErrUnauthorized
	}
	if s.operators == nil {
		return nil, nil
	}

	raw, err := s.operators.ListOperators(ctx)
	if err != nil {
		return nil, err
	}

	operators := make([]Operator, len(raw))
	copy(operators, raw)
	sort.Slice(operators, func(i, j int) bool {
		if operators[i].Email == operators[j].Email {
			return operators[i].ID < operators[j].ID
		}
		return operators[i].Email < operators[j].Email
	})

	return operators, nil
}

func normalizeOperatorInput(input OperatorInput) OperatorInput {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	return input
}

func validateOperatorInput(input OperatorInput, requirePassword bool) *ValidationError {
	vErr := &ValidationError{}

	if input.Email == "" {
		vErr.add("email", "email is required")
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		vErr.add("email", "email is invalid")
	}
	if input.DisplayName == "" {
		vErr.add("display_name", "display name is required")
	}
	if requirePassword && len(input.Password) < 8 {
		vErr.add("password", "password must be at least 8 characters")
	}

	return vErr
}

func mapOperatorRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return err
}
