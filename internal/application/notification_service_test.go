package application

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mailerStub struct {
	sent    []string
	bodies  map[string]string
	failFor map[string]error
}

func newMailerStub() *mailerStub {
	return &mailerStub{bodies: make(map[string]string), failFor: make(map[string]error)}
}

func (m *mailerStub) Send(ctx context.Context, to, subject, body string) error {
	if err := m.failFor[to]; err != nil {
		return err
	}
	m.sent = append(m.sent, to)
	m.bodies[to] = body
	return nil
}

func TestNotificationService_Notify(t *testing.T) {
	t.Parallel()

	t.Run("emails every scheduled participant", func(t *testing.T) {
		t.Parallel()

		mailer := newMailerStub()
		svc := NewNotificationService(scheduleFixture(), exportRoster(), mailer)

		result, err := svc.Notify(context.Background(), adminPrincipal(), "summary-1")
		if err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
		if result.Sent != 2 || result.Failed != 0 {
			t.Fatalf("unexpected result: %+v", result)
		}
		if len(mailer.sent) != 2 || mailer.sent[0] != "first@example.com" {
			t.Fatalf("unexpected recipients: %v", mailer.sent)
		}

		body := mailer.bodies["first@example.com"]
		for _, fragment := range []string{"Entrance Exam", "2026-09-01", "08:00-09:00", "Hall A", "Seat: 1"} {
			if !strings.Contains(body, fragment) {
				t.Errorf("body missing %q:\n%s", fragment, body)
			}
		}
	})

	t.Run("counts delivery failures without stopping", func(t *testing.T) {
		t.Parallel()

		mailer := newMailerStub()
		mailer.failFor["first@example.com"] = errors.New("rejected")
		svc := NewNotificationService(scheduleFixture(), exportRoster(), mailer)

		result, err := svc.Notify(context.Background(), adminPrincipal(), "summary-1")
		if err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
		if result.Sent != 1 || result.Failed != 1 {
			t.Fatalf("unexpected result: %+v", result)
		}
	})

	t.Run("skips participants without an address", func(t *testing.T) {
		t.Parallel()

		roster := exportRoster()
		roster.participants[1].Email = ""
		mailer := newMailerStub()
		svc := NewNotificationService(scheduleFixture(), roster, mailer)

		result, err := svc.Notify(context.Background(), adminPrincipal(), "summary-1")
		if err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
		if result.Sent != 1 || result.Failed != 0 {
			t.Fatalf("unexpected result: %+v", result)
		}
	})

	t.Run("rejects non-admin callers", func(t *testing.T) {
		t.Parallel()

		svc := NewNotificationService(scheduleFixture(), exportRoster(), newMailerStub())
		if _, err := svc.Notify(context.Background(), Principal{OperatorID: "operator-2"}, "summary-1"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("maps unknown schedules to ErrNotFound", func(t *testing.T) {
		t.Parallel()

		svc := NewNotificationService(scheduleFixture(), exportRoster(), newMailerStub())
		if _, err := svc.Notify(context.Background(), adminPrincipal(), "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
