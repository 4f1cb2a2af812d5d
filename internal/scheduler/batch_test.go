package scheduler

import (
	"reflect"
	"testing"
	"time"
)

func TestAggregateBatches(t *testing.T) {
	date := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	morning := SlotKey{Date: date, StartMinute: 480, EndMinute: 540}
	late := SlotKey{Date: date, StartMinute: 540, EndMinute: 600}

	rooms := []Room{
		{ID: "room-a", Campus: "North", Building: "Science", Name: "Hall A", Capacity: 2},
		{ID: "room-b", Campus: "North", Building: "Library", Name: "Hall B", Capacity: 2},
	}
	participants := []Participant{
		{ID: "p-1"},
		{ID: "p-2", Priority: true},
		{ID: "p-3"},
	}
	assignments := []Assignment{
		{ParticipantID: "p-1", RoomID: "room-a", Slot: morning, SeatNumber: 1},
		{ParticipantID: "p-2", RoomID: "room-a", Slot: morning, SeatNumber: 2},
		{ParticipantID: "p-3", RoomID: "room-b", Slot: late, SeatNumber: 1},
	}

	batches := AggregateBatches(assignments, rooms, participants)

	if len(batches) != 2 {
		t.Fatalf("batch count = %d, want 2", len(batches))
	}

	first := batches[0]
	if first.Name != "Hall A - 2026-09-01 08:00-09:00" {
		t.Errorf("first batch name = %q", first.Name)
	}
	if first.Count != 2 || !first.HasPriority {
		t.Errorf("first batch count=%d hasPriority=%v, want 2/true", first.Count, first.HasPriority)
	}
	if !reflect.DeepEqual(first.ParticipantIDs, []string{"p-1", "p-2"}) {
		t.Errorf("first batch members = %v, want placement order", first.ParticipantIDs)
	}
	if first.Campus != "North" || first.Building != "Science" {
		t.Errorf("first batch room descriptor = %s/%s", first.Campus, first.Building)
	}

	second := batches[1]
	if second.Count != 1 || second.HasPriority {
		t.Errorf("second batch count=%d hasPriority=%v, want 1/false", second.Count, second.HasPriority)
	}

	t.Run("aggregation is idempotent", func(t *testing.T) {
		again := AggregateBatches(assignments, rooms, participants)
		if !reflect.DeepEqual(batches, again) {
			t.Fatalf("second aggregation differs:\n%+v\n%+v", batches, again)
		}
	})

	t.Run("empty assignments aggregate to no batches", func(t *testing.T) {
		if got := AggregateBatches(nil, rooms, participants); len(got) != 0 {
			t.Fatalf("got %d batches, want 0", len(got))
		}
	})
}
