package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/placement-scheduler/internal/persistence"
)

// RoomRepository captures the persistence operations needed by the service.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) (Room, error)
	GetRoom(ctx context.Context, id string) (Room, error)
	UpdateRoom(ctx context.Context, room Room) (Room, error)
	DeleteRoom(ctx context.Context, id string) error
	ListRooms(ctx context.Context) ([]Room, error)
	ListRoomsByCampusGroup(ctx context.Context, campusGroupID string) ([]Room, error)
}

// RoomService orchestrates validation, authorization, and persistence for rooms.
type RoomService struct {
	rooms       RoomRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
func NewRoomService(rooms RoomRepository, idGenerator func() string, now func() time.Time) *RoomService {
	return NewRoomServiceWithLogger(rooms, idGenerator, now, nil)
}

// NewRoomServiceWithLogger constructs a room service with a specified logger.
func NewRoomServiceWithLogger(rooms RoomRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *RoomService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &RoomService{rooms: rooms, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// CreateRoom validates input and persists a new room for administrators.
func (s *RoomService) CreateRoom(ctx context.Context, params CreateRoomParams) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoom",
		"principal_id", params.Principal.OperatorID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room created")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	vErr := validateRoomInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	room = Room{
		ID:            s.idGenerator(),
		CampusGroupID: strings.TrimSpace(params.Input.CampusGroupID),
		Campus:        strings.TrimSpace(params.Input.Campus),
		Building:      strings.TrimSpace(params.Input.Building),
		Name:          strings.TrimSpace(params.Input.Name),
		Capacity:      params.Input.Capacity,
		CreatedAt:     s.now(),
	}
	room.UpdatedAt = room.CreatedAt

	if s.rooms == nil {
		return
	}

	var persisted Room
	persisted, err = s.rooms.CreateRoom(ctx, room)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	room = persisted
	return
}

// UpdateRoom validates input and updates an existing room for administrators.
func (s *RoomService) UpdateRoom(ctx context.Context, params UpdateRoomParams) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}
	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.rooms == nil {
		err = fmt.Errorf("room repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateRoom",
		"principal_id", params.Principal.OperatorID,
		"room_id", params.RoomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room updated")
	}()

	var existing Room
	existing, err = s.rooms.GetRoom(ctx, params.RoomID)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	vErr := validateRoomInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.CampusGroupID = strings.TrimSpace(params.Input.CampusGroupID)
	updated.Campus = strings.TrimSpace(params.Input.Campus)
	updated.Building = strings.TrimSpace(params.Input.Building)
	updated.Name = strings.TrimSpace(params.Input.Name)
	updated.Capacity = params.Input.Capacity
	updated.UpdatedAt = s.now()

	room, err = s.rooms.UpdateRoom(ctx, updated)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	return
}

// DeleteRoom removes an existing room when requested by an administrator.
func (s *RoomService) DeleteRoom(ctx context.Context, principal Principal, roomID string) error {
	if s == nil {
		return fmt.Errorf("RoomService is nil")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if s.rooms == nil {
		return fmt.Errorf("room repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteRoom",
		"principal_id", principal.OperatorID,
		"room_id", roomID,
	)

	if err := s.rooms.DeleteRoom(ctx, roomID); err != nil {
		err = mapRoomRepoError(err)
		logger.ErrorContext(ctx, "failed to delete room", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "room deleted")
	return nil
}

// ListRooms returns the room catalog for any authenticated operator. When a
// campus group is supplied, results keep the catalog's insertion order so
// placement runs visit rooms deterministically.
func (s *RoomService) ListRooms(ctx context.Context, principal Principal, campusGroupID string) (rooms []Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}
	if s.rooms == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListRooms",
		"principal_id", principal.OperatorID,
		"campus_group_id", campusGroupID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list rooms", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(rooms)).InfoContext(ctx, "rooms listed")
	}()

	group := strings.TrimSpace(campusGroupID)
	if group != "" {
		rooms, err = s.rooms.ListRoomsByCampusGroup(ctx, group)
		return
	}

	rooms, err = s.rooms.ListRooms(ctx)
	return
}

func validateRoomInput(input RoomInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.CampusGroupID) == "" {
		vErr.add("campus_group_id", "campus group is required")
	}
	if strings.TrimSpace(input.Campus) == "" {
		vErr.add("campus", "campus is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Capacity < 0 {
		vErr.add("capacity", "capacity must not be negative")
	}

	return vErr
}

func mapRoomRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("capacity", "capacity must not be negative")
		return vErr
	}
	return err
}
