package scheduler

import "time"

// Room is the immutable room snapshot consumed by the engine. Rooms with a
// capacity of zero can never admit a participant.
type Room struct {
	ID       string
	Campus   string
	Building string
	Name     string
	Capacity int
}

// Participant is one immutable roster entry. The display fields are opaque to
// the engine; only ID and Priority influence placement.
type Participant struct {
	ID       string
	Number   string
	Name     string
	Email    string
	Province string
	City     string
	Priority bool
}

// Assignment records one seated participant. Seat numbers are one-based and
// contiguous within a room and slot.
type Assignment struct {
	ParticipantID string
	RoomID        string
	Slot          SlotKey
	SeatNumber    int
}

// Result reports the outcome of one run. Assignments appear in placement
// order; UnscheduledIDs lists every participant no slot could admit, in
// processing order.
type Result struct {
	Assignments    []Assignment
	UnscheduledIDs []string
}

// Policy selects how the global slot counter behaves when rooms are full.
type Policy string

const (
	// PolicyLegacy reproduces the behavior of the system this scheduler
	// replaces: each full room consumes one slot index, a participant that
	// no room admits consumes one more, and the participant is never retried
	// at a later index even when that index would have room.
	PolicyLegacy Policy = "legacy"
	// PolicyRetry checks every room at the current index and keeps advancing
	// to later indices until one admits the participant. Advancing always
	// terminates: indices past the run's frontier map to untouched slots.
	PolicyRetry Policy = "retry"
)

// ValidPolicy reports whether the value names a known placement policy.
func ValidPolicy(p Policy) bool {
	return p == PolicyLegacy || p == PolicyRetry
}

// Engine performs a single-pass greedy placement of participants into
// capacity-bounded room slots. It owns no shared state; every run works on a
// fresh State, so concurrent runs never interact.
type Engine struct {
	window    TimeWindow
	startDate time.Time
	policy    Policy
}

// NewEngine builds an engine for one window and start date. An empty policy
// defaults to PolicyLegacy.
func NewEngine(window TimeWindow, startDate time.Time, policy Policy) *Engine {
	if policy == "" {
		policy = PolicyLegacy
	}
	return &Engine{window: window, startDate: startDate, policy: policy}
}

// State is the mutable placement state threaded through PlaceNext. SlotIndex
// is the global slot counter shared across all participants and rooms.
type State struct {
	SlotIndex int
	Tracker   *CapacityTracker
}

// NewState returns the initial state for a run.
func NewState() *State {
	return &State{Tracker: NewCapacityTracker()}
}

// Outcome describes the effect of one placement step.
type Outcome struct {
	Placed     bool
	Assignment Assignment
}

// PlaceNext attempts to seat a single participant, mutating state. It is the
// unit step Run folds over the ordered roster; exposing it keeps individual
// counter transitions testable in isolation.
func (e *Engine) PlaceNext(state *State, rooms []Room, participant Participant) Outcome {
	if e.window.SlotsPerDay() == 0 || len(rooms) == 0 {
		// No schedulable slot exists. The counter still moves on so the
		// participant consumes an index, matching the placement bookkeeping
		// of the non-degenerate path.
		state.SlotIndex++
		return Outcome{}
	}
	if e.policy == PolicyRetry {
		return e.placeRetry(state, rooms, participant)
	}
	return e.placeLegacy(state, rooms, participant)
}

// placeLegacy walks the rooms in input order. Each room is consulted at the
// counter's current slot; a full room advances the counter, so the next room
// is checked against the next index rather than the same one. A participant
// left unseated after the last room advances the counter once more.
func (e *Engine) placeLegacy(state *State, rooms []Room, participant Participant) Outcome {
	for _, room := range rooms {
		slot := slotAt(e.window, e.startDate, state.SlotIndex)
		filled := state.Tracker.Count(room.ID, slot)
		if filled < room.Capacity {
			return seat(state, room, slot, participant, filled)
		}
		state.SlotIndex++
	}
	state.SlotIndex++
	return Outcome{}
}

// placeRetry tries every room at the current index before advancing, and
// keeps advancing until some room admits the participant.
func (e *Engine) placeRetry(state *State, rooms []Room, participant Participant) Outcome {
	if !anyCapacity(rooms) {
		return Outcome{}
	}
	for {
		slot := slotAt(e.window, e.startDate, state.SlotIndex)
		for _, room := range rooms {
			filled := state.Tracker.Count(room.ID, slot)
			if filled < room.Capacity {
				return seat(state, room, slot, participant, filled)
			}
		}
		state.SlotIndex++
	}
}

func seat(state *State, room Room, slot SlotKey, participant Participant, filled int) Outcome {
	assignment := Assignment{
		ParticipantID: participant.ID,
		RoomID:        room.ID,
		Slot:          slot,
		SeatNumber:    filled + 1,
	}
	state.Tracker.Increment(room.ID, slot)
	return Outcome{Placed: true, Assignment: assignment}
}

func anyCapacity(rooms []Room) bool {
	for _, room := range rooms {
		if room.Capacity > 0 {
			return true
		}
	}
	return false
}

// Run seats every participant it can in a single pass over the given order
// and reports the rest. The input slices are treated as immutable snapshots.
func (e *Engine) Run(rooms []Room, participants []Participant) Result {
	state := NewState()
	var result Result
	for _, participant := range participants {
		outcome := e.PlaceNext(state, rooms, participant)
		if outcome.Placed {
			result.Assignments = append(result.Assignments, outcome.Assignment)
			continue
		}
		result.UnscheduledIDs = append(result.UnscheduledIDs, participant.ID)
	}
	return result
}
