package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
)

func exportRoster() *participantRepoStub {
	return &participantRepoStub{participants: []Participant{
		{ID: "p-1", GroupID: "group-1", Number: "0001", Name: "First", Email: "first@example.com", Province: "West Java", City: "Bandung"},
		{ID: "p-2", GroupID: "group-1", Number: "0002", Name: "Second", Email: "second@example.com", Province: "West Java", City: "Bogor"},
	}}
}

func TestExportService_ExportCSV(t *testing.T) {
	t.Parallel()

	t.Run("writes one row per assignment in placement order", func(t *testing.T) {
		t.Parallel()

		svc := NewExportService(scheduleFixture(), exportRoster())

		var buf bytes.Buffer
		if err := svc.ExportCSV(context.Background(), adminPrincipal(), "summary-1", &buf); err != nil {
			t.Fatalf("ExportCSV failed: %v", err)
		}

		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d", len(records))
		}
		if records[0][0] != "number" || records[0][len(records[0])-1] != "seat" {
			t.Fatalf("unexpected header: %v", records[0])
		}

		first := records[1]
		want := []string{"0001", "First", "first@example.com", "West Java", "Bandung", "North", "Science", "Hall A", "Hall A - 2026-09-01 08:00-09:00", "2026-09-01", "08:00", "09:00", "1"}
		if len(first) != len(want) {
			t.Fatalf("unexpected column count: %v", first)
		}
		for i := range want {
			if first[i] != want[i] {
				t.Errorf("column %d = %q, want %q", i, first[i], want[i])
			}
		}
		if records[2][12] != "2" {
			t.Fatalf("second row seat = %q", records[2][12])
		}
	})

	t.Run("maps unknown schedules to ErrNotFound", func(t *testing.T) {
		t.Parallel()

		svc := NewExportService(scheduleFixture(), exportRoster())

		var buf bytes.Buffer
		if err := svc.ExportCSV(context.Background(), adminPrincipal(), "missing", &buf); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if buf.Len() != 0 {
			t.Fatalf("expected no output, got %q", buf.String())
		}
	})
}
