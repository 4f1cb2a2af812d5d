package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/placement-scheduler/internal/application"
	"github.com/example/placement-scheduler/internal/persistence"
	"github.com/example/placement-scheduler/internal/scheduler"
)

var (
	roomCounter        uint64
	participantCounter uint64
	operatorCounter    uint64
	summaryCounter     uint64
)

var referenceTime = time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// RoomFixture represents a deterministic room record that can be materialised
// for application, persistence, or engine tests.
type RoomFixture struct {
	ID            string
	CampusGroupID string
	Campus        string
	Building      string
	Name          string
	Capacity      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RoomOption configures the generated room fixture.
type RoomOption func(*RoomFixture)

// NewRoomFixture returns a deterministic room fixture with optional overrides.
func NewRoomFixture(opts ...RoomOption) RoomFixture {
	idx := atomic.AddUint64(&roomCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := RoomFixture{
		ID:            fmt.Sprintf("room-%03d", idx),
		CampusGroupID: "campus-group-1",
		Campus:        "North",
		Building:      "Science",
		Name:          fmt.Sprintf("Hall %03d", idx),
		Capacity:      30,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRoomID overrides the generated room ID.
func WithRoomID(id string) RoomOption {
	return func(f *RoomFixture) { f.ID = id }
}

// WithRoomCampusGroup overrides the campus group the room belongs to.
func WithRoomCampusGroup(groupID string) RoomOption {
	return func(f *RoomFixture) { f.CampusGroupID = groupID }
}

// WithRoomCapacity overrides the seat capacity.
func WithRoomCapacity(capacity int) RoomOption {
	return func(f *RoomFixture) { f.Capacity = capacity }
}

// WithRoomName overrides the generated room name.
func WithRoomName(name string) RoomOption {
	return func(f *RoomFixture) { f.Name = name }
}

// Application converts the fixture into an application layer model.
func (f RoomFixture) Application() application.Room {
	return application.Room{
		ID:            f.ID,
		CampusGroupID: f.CampusGroupID,
		Campus:        f.Campus,
		Building:      f.Building,
		Name:          f.Name,
		Capacity:      f.Capacity,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

// Persistence converts the fixture into a persistence layer model.
func (f RoomFixture) Persistence() persistence.Room {
	return persistence.Room{
		ID:            f.ID,
		CampusGroupID: f.CampusGroupID,
		Campus:        f.Campus,
		Building:      f.Building,
		Name:          f.Name,
		Capacity:      f.Capacity,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

// Engine converts the fixture into the engine's room input.
func (f RoomFixture) Engine() scheduler.Room {
	return scheduler.Room{
		ID:       f.ID,
		Campus:   f.Campus,
		Building: f.Building,
		Name:     f.Name,
		Capacity: f.Capacity,
	}
}

// ParticipantFixture represents a deterministic roster entry.
type ParticipantFixture struct {
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

// ParticipantOption configures the generated participant fixture.
type ParticipantOption func(*ParticipantFixture)

// NewParticipantFixture returns a deterministic participant fixture with
// optional overrides.
func NewParticipantFixture(opts ...ParticipantOption) ParticipantFixture {
	idx := atomic.AddUint64(&participantCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := ParticipantFixture{
		ID:        fmt.Sprintf("participant-%03d", idx),
		GroupID:   "group-1",
		Number:    fmt.Sprintf("A-%03d", idx),
		Name:      fmt.Sprintf("Participant %03d", idx),
		Email:     fmt.Sprintf("participant-%03d@example.com", idx),
		Province:  "West Java",
		City:      "Bandung",
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithParticipantID overrides the generated participant ID.
func WithParticipantID(id string) ParticipantOption {
	return func(f *ParticipantFixture) { f.ID = id }
}

// WithParticipantGroup overrides the roster group the participant belongs to.
func WithParticipantGroup(groupID string) ParticipantOption {
	return func(f *ParticipantFixture) { f.GroupID = groupID }
}

// WithParticipantPriority sets the priority flag on the fixture.
func WithParticipantPriority(priority bool) ParticipantOption {
	return func(f *ParticipantFixture) { f.Priority = priority }
}

// WithParticipantEmail overrides the generated email address.
func WithParticipantEmail(email string) ParticipantOption {
	return func(f *ParticipantFixture) { f.Email = email }
}

// Application converts the fixture into an application layer model.
func (f ParticipantFixture) Application() application.Participant {
	return application.Participant{
		ID:        f.ID,
		GroupID:   f.GroupID,
		Number:    f.Number,
		Name:      f.Name,
		Email:     f.Email,
		Province:  f.Province,
		City:      f.City,
		Priority:  f.Priority,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Persistence converts the fixture into a persistence layer model.
func (f ParticipantFixture) Persistence() persistence.Participant {
	return persistence.Participant{
		ID:        f.ID,
		GroupID:   f.GroupID,
		Number:    f.Number,
		Name:      f.Name,
		Email:     f.Email,
		Province:  f.Province,
		City:      f.City,
		Priority:  f.Priority,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Engine converts the fixture into the engine's participant input.
func (f ParticipantFixture) Engine() scheduler.Participant {
	return scheduler.Participant{
		ID:       f.ID,
		Number:   f.Number,
		Name:     f.Name,
		Email:    f.Email,
		Province: f.Province,
		City:     f.City,
		Priority: f.Priority,
	}
}

// OperatorFixture represents a deterministic staff account.
type OperatorFixture struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OperatorOption configures the generated operator fixture.
type OperatorOption func(*OperatorFixture)

// NewOperatorFixture returns a deterministic operator fixture with optional
// overrides.
func NewOperatorFixture(opts ...OperatorOption) OperatorFixture {
	idx := atomic.AddUint64(&operatorCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := OperatorFixture{
		ID:           fmt.Sprintf("operator-%03d", idx),
		Email:        fmt.Sprintf("operator-%03d@example.com", idx),
		DisplayName:  fmt.Sprintf("Operator %03d", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithOperatorID overrides the generated operator ID.
func WithOperatorID(id string) OperatorOption {
	return func(f *OperatorFixture) { f.ID = id }
}

// WithOperatorEmail overrides the generated email address.
func WithOperatorEmail(email string) OperatorOption {
	return func(f *OperatorFixture) { f.Email = email }
}

// WithOperatorAdmin sets the admin flag on the fixture.
func WithOperatorAdmin(isAdmin bool) OperatorOption {
	return func(f *OperatorFixture) { f.IsAdmin = isAdmin }
}

// WithOperatorPasswordHash overrides the stored password hash.
func WithOperatorPasswordHash(hash string) OperatorOption {
	return func(f *OperatorFixture) { f.PasswordHash = hash }
}

// Application converts the fixture into an application layer model.
func (f OperatorFixture) Application() application.Operator {
	return application.Operator{
		ID:          f.ID,
		Email:       f.Email,
		DisplayName: f.DisplayName,
		IsAdmin:     f.IsAdmin,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Persistence converts the fixture into a persistence layer model.
func (f OperatorFixture) Persistence() persistence.Operator {
	return persistence.Operator{
		ID:           f.ID,
		Email:        f.Email,
		DisplayName:  f.DisplayName,
		PasswordHash: f.PasswordHash,
		IsAdmin:      f.IsAdmin,
		Disabled:     f.Disabled,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// SummaryFixture represents a deterministic generation run record.
type SummaryFixture struct {
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

// SummaryOption configures the generated summary fixture.
type SummaryOption func(*SummaryFixture)

// NewSummaryFixture returns a deterministic schedule summary fixture with
// optional overrides.
func NewSummaryFixture(opts ...SummaryOption) SummaryFixture {
	idx := atomic.AddUint64(&summaryCounter, 1)
	fixture := SummaryFixture{
		ID:                 fmt.Sprintf("summary-%03d", idx),
		EventName:          fmt.Sprintf("Placement Run %03d", idx),
		EventType:          "exam",
		CampusGroupID:      "campus-group-1",
		ParticipantGroupID: "group-1",
		StartDate:          time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		WindowStartMinute:  8 * 60,
		WindowEndMinute:    17 * 60,
		SlotMinutes:        60,
		Status:             "completed",
		CreatedAt:          referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSummaryID overrides the generated summary ID.
func WithSummaryID(id string) SummaryOption {
	return func(f *SummaryFixture) { f.ID = id }
}

// WithSummaryStatus overrides the run status.
func WithSummaryStatus(status string) SummaryOption {
	return func(f *SummaryFixture) { f.Status = status }
}

// WithSummaryCounts sets the scheduled and unscheduled counters.
func WithSummaryCounts(scheduled, unscheduled int) SummaryOption {
	return func(f *SummaryFixture) {
		f.ScheduledCount = scheduled
		f.UnscheduledCount = unscheduled
	}
}

// Application converts the fixture into an application layer model.
func (f SummaryFixture) Application() application.ScheduleSummary {
	return application.ScheduleSummary{
		ID:                 f.ID,
		EventName:          f.EventName,
		EventType:          f.EventType,
		CampusGroupID:      f.CampusGroupID,
		ParticipantGroupID: f.ParticipantGroupID,
		StartDate:          f.StartDate,
		WindowStartMinute:  f.WindowStartMinute,
		WindowEndMinute:    f.WindowEndMinute,
		SlotMinutes:        f.SlotMinutes,
		ScheduledCount:     f.ScheduledCount,
		UnscheduledCount:   f.UnscheduledCount,
		ExecutionSeconds:   f.ExecutionSeconds,
		Status:             f.Status,
		CreatedAt:          f.CreatedAt,
	}
}

// Persistence converts the fixture into a persistence layer model.
func (f SummaryFixture) Persistence() persistence.ScheduleSummary {
	return persistence.ScheduleSummary{
		ID:                 f.ID,
		EventName:          f.EventName,
		EventType:          f.EventType,
		CampusGroupID:      f.CampusGroupID,
		ParticipantGroupID: f.ParticipantGroupID,
		StartDate:          f.StartDate,
		WindowStartMinute:  f.WindowStartMinute,
		WindowEndMinute:    f.WindowEndMinute,
		SlotMinutes:        f.SlotMinutes,
		ScheduledCount:     f.ScheduledCount,
		UnscheduledCount:   f.UnscheduledCount,
		ExecutionSeconds:   f.ExecutionSeconds,
		Status:             f.Status,
		CreatedAt:          f.CreatedAt,
	}
}
