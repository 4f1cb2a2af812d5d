package scheduler

import "testing"

func TestOrderParticipants(t *testing.T) {
	input := []Participant{
		{ID: "p-1"},
		{ID: "p-2", Priority: true},
		{ID: "p-3"},
		{ID: "p-4", Priority: true},
		{ID: "p-5"},
	}

	t.Run("disabled keeps input order", func(t *testing.T) {
		ordered := OrderParticipants(input, false)
		for i, p := range ordered {
			if p.ID != input[i].ID {
				t.Fatalf("position %d = %s, want %s", i, p.ID, input[i].ID)
			}
		}
	})

	t.Run("enabled is a stable partition", func(t *testing.T) {
		ordered := OrderParticipants(input, true)
		want := []string{"p-2", "p-4", "p-1", "p-3", "p-5"}
		if len(ordered) != len(want) {
			t.Fatalf("length = %d, want %d", len(ordered), len(want))
		}
		for i, p := range ordered {
			if p.ID != want[i] {
				t.Errorf("position %d = %s, want %s", i, p.ID, want[i])
			}
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		if got := OrderParticipants(nil, true); len(got) != 0 {
			t.Fatalf("got %v, want empty", got)
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		_ = OrderParticipants(input, true)
		if input[0].ID != "p-1" || input[1].ID != "p-2" {
			t.Fatalf("input reordered: %v", input)
		}
	})
}

func TestOrderParticipants_PriorityScheduledFirstWhenScarce(t *testing.T) {
	// One seat total: with prioritization the flagged participant wins it
	// even though it appears last in the roster.
	rooms := []Room{{ID: "room-1", Capacity: 1}}
	participants := []Participant{
		{ID: "p-regular"},
		{ID: "p-priority", Priority: true},
	}

	engine := NewEngine(testWindow(), testStartDate, PolicyLegacy)
	result := engine.Run(rooms, OrderParticipants(participants, true))

	if len(result.Assignments) != 1 || result.Assignments[0].ParticipantID != "p-priority" {
		t.Fatalf("assignments = %+v, want the priority participant seated", result.Assignments)
	}
}
