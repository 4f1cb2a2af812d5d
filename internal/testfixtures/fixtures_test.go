package testfixtures

import (
	"context"
	"testing"
)

func TestRoomFixtureConversions(t *testing.T) {
	fixture := NewRoomFixture(WithRoomName("Hall A"), WithRoomCapacity(2), WithRoomCampusGroup("campus-group-9"))

	app := fixture.Application()
	if app.Name != "Hall A" || app.Capacity != 2 || app.CampusGroupID != "campus-group-9" {
		t.Fatalf("unexpected application room: %+v", app)
	}

	engine := fixture.Engine()
	if engine.ID != fixture.ID || engine.Capacity != 2 {
		t.Fatalf("unexpected engine room: %+v", engine)
	}
}

func TestParticipantFixtureOverrides(t *testing.T) {
	fixture := NewParticipantFixture(WithParticipantGroup("group-7"), WithParticipantPriority(true), WithParticipantEmail(""))

	if fixture.GroupID != "group-7" || !fixture.Priority || fixture.Email != "" {
		t.Fatalf("unexpected fixture: %+v", fixture)
	}
	if got := fixture.Engine(); !got.Priority {
		t.Fatalf("expected priority flag to survive conversion: %+v", got)
	}
}

func TestFixturesProduceUniqueIDs(t *testing.T) {
	first := NewOperatorFixture()
	second := NewOperatorFixture()
	if first.ID == second.ID {
		t.Fatalf("expected unique operator ids, got %q twice", first.ID)
	}
}

func TestSQLiteHarnessRoundTrip(t *testing.T) {
	harness := NewSQLiteHarness(t)
	ctx := context.Background()

	room := NewRoomFixture()
	if err := harness.Rooms.CreateRoom(ctx, room.Persistence()); err != nil {
		t.Fatalf("CreateRoom returned error: %v", err)
	}
	stored, err := harness.Rooms.GetRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetRoom returned error: %v", err)
	}
	if stored.Name != room.Name || stored.Capacity != room.Capacity {
		t.Fatalf("unexpected stored room: %+v", stored)
	}

	participant := NewParticipantFixture()
	if err := harness.Participants.CreateParticipant(ctx, participant.Persistence()); err != nil {
		t.Fatalf("CreateParticipant returned error: %v", err)
	}

	summary := NewSummaryFixture(WithSummaryCounts(1, 0))
	if err := harness.Schedules.CreateSummary(ctx, summary.Persistence()); err != nil {
		t.Fatalf("CreateSummary returned error: %v", err)
	}
	storedSummary, err := harness.Schedules.GetSummary(ctx, summary.ID)
	if err != nil {
		t.Fatalf("GetSummary returned error: %v", err)
	}
	if storedSummary.ScheduledCount != 1 || storedSummary.Status != "completed" {
		t.Fatalf("unexpected stored summary: %+v", storedSummary)
	}

	operator := NewOperatorFixture(WithOperatorAdmin(true))
	if err := harness.Operators.CreateOperator(ctx, operator.Persistence()); err != nil {
		t.Fatalf("CreateOperator returned error: %v", err)
	}
	storedOperator, err := harness.Operators.GetOperatorByEmail(ctx, operator.Email)
	if err != nil {
		t.Fatalf("GetOperatorByEmail returned error: %v", err)
	}
	if !storedOperator.IsAdmin {
		t.Fatalf("expected admin flag to round-trip: %+v", storedOperator)
	}
}
