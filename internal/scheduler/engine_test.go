package scheduler

import (
	"testing"
	"time"
)

var testStartDate = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

func testWindow() TimeWindow {
	// 08:00-10:00 with 60 minute slots: two slots per day.
	return TimeWindow{StartMinute: 480, EndMinute: 600, SlotMinutes: 60}
}

func roster(n int) []Participant {
	participants := make([]Participant, 0, n)
	for i := 0; i < n; i++ {
		participants = append(participants, Participant{ID: participantID(i)})
	}
	return participants
}

func participantID(i int) string {
	return string(rune('a'+i)) + "-participant"
}

func TestEngineRun_LegacySingleRoom(t *testing.T) {
	rooms := []Room{{ID: "room-1", Name: "Hall A", Capacity: 2}}
	engine := NewEngine(testWindow(), testStartDate, PolicyLegacy)

	result := engine.Run(rooms, roster(3))

	if got, want := len(result.Assignments), 2; got != want {
		t.Fatalf("scheduled count = %d, want %d", got, want)
	}
	if got, want := len(result.UnscheduledIDs), 1; got != want {
		t.Fatalf("unscheduled count = %d, want %d", got, want)
	}
	if result.UnscheduledIDs[0] != participantID(2) {
		t.Errorf("unscheduled participant = %s, want %s", result.UnscheduledIDs[0], participantID(2))
	}

	// Both placements land in the first slot of the first day with
	// contiguous seats; the third participant burns the next index without
	// being retried there.
	for i, assignment := range result.Assignments {
		if assignment.Slot.StartMinute != 480 || !assignment.Slot.Date.Equal(testStartDate) {
			t.Errorf("assignment %d slot = %s, want first slot of first day", i, assignment.Slot.Key())
		}
		if assignment.SeatNumber != i+1 {
			t.Errorf("assignment %d seat = %d, want %d", i, assignment.SeatNumber, i+1)
		}
	}
}

func TestEngineRun_RetrySingleRoom(t *testing.T) {
	rooms := []Room{{ID: "room-1", Name: "Hall A", Capacity: 2}}
	engine := NewEngine(testWindow(), testStartDate, PolicyRetry)

	result := engine.Run(rooms, roster(3))

	if got, want := len(result.Assignments), 3; got != want {
		t.Fatalf("scheduled count = %d, want %d", got, want)
	}
	if len(result.UnscheduledIDs) != 0 {
		t.Fatalf("unscheduled = %v, want none", result.UnscheduledIDs)
	}

	third := result.Assignments[2]
	if third.Slot.StartMinute != 540 || !third.Slot.Date.Equal(testStartDate) {
		t.Errorf("third assignment slot = %s, want second slot of first day", third.Slot.Key())
	}
	if third.SeatNumber != 1 {
		t.Errorf("third assignment seat = %d, want 1", third.SeatNumber)
	}
}

func TestEngineRun_LegacyMultiRoomTrace(t *testing.T) {
	rooms := []Room{
		{ID: "room-a", Name: "Hall A", Capacity: 1},
		{ID: "room-b", Name: "Hall B", Capacity: 2},
	}
	engine := NewEngine(testWindow(), testStartDate, PolicyLegacy)

	result := engine.Run(rooms, roster(5))

	if len(result.UnscheduledIDs) != 0 {
		t.Fatalf("unscheduled = %v, want none", result.UnscheduledIDs)
	}

	secondDay := testStartDate.AddDate(0, 0, 1)
	want := []Assignment{
		{ParticipantID: participantID(0), RoomID: "room-a", Slot: SlotKey{Date: testStartDate, StartMinute: 480, EndMinute: 540}, SeatNumber: 1},
		{ParticipantID: participantID(1), RoomID: "room-b", Slot: SlotKey{Date: testStartDate, StartMinute: 540, EndMinute: 600}, SeatNumber: 1},
		{ParticipantID: participantID(2), RoomID: "room-a", Slot: SlotKey{Date: testStartDate, StartMinute: 540, EndMinute: 600}, SeatNumber: 1},
		{ParticipantID: participantID(3), RoomID: "room-b", Slot: SlotKey{Date: secondDay, StartMinute: 480, EndMinute: 540}, SeatNumber: 1},
		{ParticipantID: participantID(4), RoomID: "room-a", Slot: SlotKey{Date: secondDay, StartMinute: 480, EndMinute: 540}, SeatNumber: 1},
	}
	if len(result.Assignments) != len(want) {
		t.Fatalf("assignment count = %d, want %d", len(result.Assignments), len(want))
	}
	for i, assignment := range result.Assignments {
		if assignment != want[i] {
			t.Errorf("assignment %d = %+v, want %+v", i, assignment, want[i])
		}
	}
}

func TestEngineRun_EdgeCases(t *testing.T) {
	t.Run("no rooms leaves every participant unscheduled", func(t *testing.T) {
		engine := NewEngine(testWindow(), testStartDate, PolicyLegacy)
		result := engine.Run(nil, roster(5))
		if len(result.Assignments) != 0 || len(result.UnscheduledIDs) != 5 {
			t.Fatalf("scheduled=%d unscheduled=%d, want 0/5", len(result.Assignments), len(result.UnscheduledIDs))
		}
	})

	t.Run("no participants yields an empty result", func(t *testing.T) {
		engine := NewEngine(testWindow(), testStartDate, PolicyLegacy)
		result := engine.Run([]Room{{ID: "room-1", Capacity: 3}}, nil)
		if len(result.Assignments) != 0 || len(result.UnscheduledIDs) != 0 {
			t.Fatalf("got %+v, want empty result", result)
		}
	})

	t.Run("capacity zero rooms never admit anyone", func(t *testing.T) {
		rooms := []Room{{ID: "room-1", Capacity: 0}}
		for _, policy := range []Policy{PolicyLegacy, PolicyRetry} {
			engine := NewEngine(testWindow(), testStartDate, policy)
			result := engine.Run(rooms, roster(4))
			if len(result.Assignments) != 0 || len(result.UnscheduledIDs) != 4 {
				t.Errorf("policy %s: scheduled=%d unscheduled=%d, want 0/4", policy, len(result.Assignments), len(result.UnscheduledIDs))
			}
		}
	})

	t.Run("zero slots per day unschedules everyone", func(t *testing.T) {
		window := TimeWindow{StartMinute: 600, EndMinute: 480, SlotMinutes: 60}
		for _, policy := range []Policy{PolicyLegacy, PolicyRetry} {
			engine := NewEngine(window, testStartDate, policy)
			result := engine.Run([]Room{{ID: "room-1", Capacity: 10}}, roster(3))
			if len(result.Assignments) != 0 || len(result.UnscheduledIDs) != 3 {
				t.Errorf("policy %s: scheduled=%d unscheduled=%d, want 0/3", policy, len(result.Assignments), len(result.UnscheduledIDs))
			}
		}
	})
}

func TestEngineRun_CountsAlwaysPartitionRoster(t *testing.T) {
	rooms := []Room{
		{ID: "room-a", Capacity: 3},
		{ID: "room-b", Capacity: 0},
		{ID: "room-c", Capacity: 2},
	}
	for _, policy := range []Policy{PolicyLegacy, PolicyRetry} {
		engine := NewEngine(testWindow(), testStartDate, policy)
		participants := roster(17)
		result := engine.Run(rooms, participants)
		if got := len(result.Assignments) + len(result.UnscheduledIDs); got != len(participants) {
			t.Errorf("policy %s: scheduled+unscheduled = %d, want %d", policy, got, len(participants))
		}
	}
}

func TestEngineRun_SeatNumbersContiguousPerSlot(t *testing.T) {
	rooms := []Room{
		{ID: "room-a", Capacity: 4},
		{ID: "room-b", Capacity: 2},
	}
	engine := NewEngine(testWindow(), testStartDate, PolicyRetry)
	result := engine.Run(rooms, roster(20))

	seen := make(map[string][]int)
	for _, assignment := range result.Assignments {
		group := assignment.RoomID + "|" + assignment.Slot.Key()
		seen[group] = append(seen[group], assignment.SeatNumber)
	}
	for group, seats := range seen {
		for i, seat := range seats {
			if seat != i+1 {
				t.Errorf("group %s seats = %v, want contiguous 1..n", group, seats)
				break
			}
		}
	}
}

func TestEnginePlaceNext_AdvancesCounterExplicitly(t *testing.T) {
	rooms := []Room{{ID: "room-1", Capacity: 1}}
	engine := NewEngine(testWindow(), testStartDate, PolicyLegacy)
	state := NewState()

	first := engine.PlaceNext(state, rooms, Participant{ID: "p-1"})
	if !first.Placed || state.SlotIndex != 0 {
		t.Fatalf("first placement: placed=%v index=%d, want placed at index 0", first.Placed, state.SlotIndex)
	}

	second := engine.PlaceNext(state, rooms, Participant{ID: "p-2"})
	if second.Placed {
		// The only room is full at index 0 and legacy never retries.
		t.Fatalf("second placement unexpectedly succeeded: %+v", second.Assignment)
	}
	if state.SlotIndex != 2 {
		t.Fatalf("counter after failed placement = %d, want 2 (one per full room, one for the participant)", state.SlotIndex)
	}
}
