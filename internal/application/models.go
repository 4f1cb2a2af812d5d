package application

import "time"

// Principal represents the authenticated operator invoking a service method.
type Principal struct {
	OperatorID string
	IsAdmin    bool
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	CampusGroupID string
	Campus        string
	Building      string
	Name          string
	Capacity      int
}

// Room represents a catalog entry for a physical exam room.
type Room struct {
	ID            string
	CampusGroupID string
	Campus        string
	Building      string
	Name          string
	Capacity      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateRoomParams wraps the data required to create a room.
type CreateRoomParams struct {
	Principal Principal
	Input     RoomInput
}

// UpdateRoomParams wraps the data required to update a room.
type UpdateRoomParams struct {
	Principal Principal
	RoomID    string
	Input     RoomInput
}

// ParticipantInput captures caller provided participant fields.
type ParticipantInput struct {
	GroupID  string
	Number   string
	Name     string
	Email    string
	Province string
	City     string
	Priority bool
}

// Participant represents a roster member eligible for placement.
type Participant struct {
	ID        string
	GroupID   string
	Number    string
	Name      string
	Email     string
	Province  string
	City      string
	Priority  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateParticipantParams wraps the data required to create a participant.
type CreateParticipantParams struct {
	Principal Principal
	Input     ParticipantInput
}

// UpdateParticipantParams wraps the data required to update a participant.
type UpdateParticipantParams struct {
	Principal     Principal
	ParticipantID string
	Input         ParticipantInput
}

// ImportParticipantsParams wraps a bulk roster import.
type ImportParticipantsParams struct {
	Principal Principal
	Inputs    []ParticipantInput
}

// ImportParticipantsResult reports the outcome of a bulk roster import.
type ImportParticipantsResult struct {
	Created int
}

// GenerationRequest captures the parameters of a placement run.
type GenerationRequest struct {
	EventName          string
	EventType          string
	CampusGroupID      string
	ParticipantGroupID string
	StartDate          string
	WindowStart        string
	WindowEnd          string
	SlotMinutes        int
	PrioritizeFlagged  bool
	Policy             string
}

// GenerateParams wraps the data required to run a placement generation.
type GenerateParams struct {
	Principal Principal
	Request   GenerationRequest
}

// BatchWrite reports the persistence outcome for a single generated batch.
type BatchWrite struct {
	Name            string
	AssignmentCount int
	Persisted       bool
	Error           string
}

// GenerationResult captures the outcome of a placement generation run. The
// batch and assignment records are the computed schedule; BatchWrites reports
// which of them actually reached storage.
type GenerationResult struct {
	Summary        ScheduleSummary
	Batches        []ScheduleBatch
	Assignments    []ScheduleAssignment
	BatchWrites    []BatchWrite
	UnscheduledIDs []string
}

// ScheduleSummary represents a persisted generation run.
type ScheduleSummary struct {
	ID                 string
	EventName          string
	EventType          string
	CampusGroupID      string
	ParticipantGroupID string
	StartDate          time.Time
	WindowStartMinute  int
	WindowEndMinute    int
	SlotMinutes        int
	ScheduledCount     int
	UnscheduledCount   int
	ExecutionSeconds   float64
	Status             string
	CreatedAt          time.Time
}

// ScheduleBatch represents a persisted room+slot grouping of assignments.
type ScheduleBatch struct {
	ID               string
	Name             string
	RoomID           string
	RoomName         string
	Campus           string
	Building         string
	SlotDate         time.Time
	SlotStartMinute  int
	SlotEndMinute    int
	ParticipantCount int
	HasPriority      bool
}

// ScheduleAssignment represents a persisted participant placement.
type ScheduleAssignment struct {
	ID              string
	BatchID         string
	ParticipantID   string
	RoomID          string
	SlotDate        time.Time
	SlotStartMinute int
	SlotEndMinute   int
	SeatNumber      int
}

// ScheduleDetail bundles a summary with its batches.
type ScheduleDetail struct {
	Summary ScheduleSummary
	Batches []ScheduleBatch
}

// OperatorInput captures caller provided operator attributes.
type OperatorInput struct {
	Email       string
	DisplayName string
	Password    string
	IsAdmin     bool
}

// Operator represents a staff account exposed by the application services.
type Operator struct {
	ID          string
	Email       string
	DisplayName string
	IsAdmin     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateOperatorParams wraps the data required to create an operator.
type CreateOperatorParams struct {
	Principal Principal
	Input     OperatorInput
}

// UpdateOperatorParams wraps the data required to update an operator.
type UpdateOperatorParams struct {
	Principal  Principal
	OperatorID string
	Input      OperatorInput
}

// OperatorCredentials models the authentication attributes persisted for an operator.
type OperatorCredentials struct {
	Operator     Operator
	PasswordHash string
}

// Session represents an authenticated session issued to an operator.
type Session struct {
	ID         string
	OperatorID string
	Token      string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	RevokedAt  *time.Time
}

// AuthenticateParams captures the data required to authenticate an operator.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication attempt.
type AuthenticateResult struct {
	Operator Operator
	Session  Session
}

// NotificationResult reports how many assignment emails were delivered.
type NotificationResult struct {
	Sent   int
	Failed int
}
