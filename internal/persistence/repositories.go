package persistence

import (
	"context"
	"time"
)

// OperatorRepository exposes CRUD operations for operator accounts.
type OperatorRepository interface {
	CreateOperator(ctx context.Context, operator Operator) error
	UpdateOperator(ctx context.Context, operator Operator) error
	GetOperator(ctx context.Context, id string) (Operator, error)
	GetOperatorByEmail(ctx context.Context, email string) (Operator, error)
	ListOperators(ctx context.Context) ([]Operator, error)
	DeleteOperator(ctx context.Context, id string) error
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}

// RoomRepository exposes CRUD operations for rooms. ListRoomsByCampusGroup is
// the input-loader query the generation run snapshots from.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	UpdateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	ListRoomsByCampusGroup(ctx context.Context, campusGroupID string) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// ParticipantRepository exposes CRUD and bulk-import operations for roster
// entries. ListParticipantsByGroup is the input-loader query for a run.
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, participant Participant) error
	CreateParticipants(ctx context.Context, participants []Participant) error
	UpdateParticipant(ctx context.Context, participant Participant) error
	GetParticipant(ctx context.Context, id string) (Participant, error)
	ListParticipants(ctx context.Context) ([]Participant, error)
	ListParticipantsByGroup(ctx context.Context, groupID string) ([]Participant, error)
	DeleteParticipant(ctx context.Context, id string) error
}

// ScheduleRepository is the persistence sink for generation runs and the
// retrieval surface downstream consumers join against. CreateSummary must be
// called before any batch or assignment write referencing it.
type ScheduleRepository interface {
	CreateSummary(ctx context.Context, summary ScheduleSummary) error
	UpdateSummaryStatus(ctx context.Context, id, status string) error
	GetSummary(ctx context.Context, id string) (ScheduleSummary, error)
	ListSummaries(ctx context.Context) ([]ScheduleSummary, error)
	CreateBatch(ctx context.Context, batch Batch) error
	ListBatches(ctx context.Context, summaryID string) ([]Batch, error)
	CreateAssignments(ctx context.Context, assignments []Assignment) error
	ListAssignments(ctx context.Context, summaryID string) ([]Assignment, error)
}
