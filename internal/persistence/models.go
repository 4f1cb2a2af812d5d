package persistence

import "time"

// Operator represents a staff account that manages rosters and runs the
// scheduler.
type Operator struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents an authentication session persisted for an operator.
type Session struct {
	ID        string
	OperatorID string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// Room represents one schedulable room within a campus group.
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

// Participant represents one roster entry within a participant group.
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

// ScheduleSummary is the one-per-run record every batch and assignment row
// references.
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

// Batch is one room and time slot grouping within a stored schedule.
type Batch struct {
	ID               string
	SummaryID        string
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
	CreatedAt        time.Time
}

// Assignment is one seated participant within a batch.
type Assignment struct {
	ID              string
	SummaryID       string
	BatchID         string
	ParticipantID   string
	RoomID          string
	SlotDate        time.Time
	SlotStartMinute int
	SlotEndMinute   int
	SeatNumber      int
	CreatedAt       time.Time
}
