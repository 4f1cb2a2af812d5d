package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/placement-scheduler/internal/persistence"
)

type participantRepoStub struct {
	participants []Participant
	bulkCalls    [][]Participant
	bulkErr      error
	listErr      error
}

func (r *participantRepoStub) CreateParticipant(ctx context.Context, participant Participant) (Participant, error) {
	r.participants = append(r.participants, participant)
	return participant, nil
}

func (r *participantRepoStub) CreateParticipants(ctx context.Context, participants []Participant) error {
	r.bulkCalls = append(r.bulkCalls, participants)
	if r.bulkErr != nil {
		return r.bulkErr
	}
	r.participants = append(r.participants, participants...)
	return nil
}

func (r *participantRepoStub) GetParticipant(ctx context.Context, id string) (Participant, error) {
	for _, participant := range r.participants {
		if participant.ID == id {
			return participant, nil
		}
	}
	return Participant{}, persistence.ErrNotFound
}

func (r *participantRepoStub) UpdateParticipant(ctx context.Context, participant Participant) (Participant, error) {
	for i, existing := range r.participants {
		if existing.ID == participant.ID {
			r.participants[i] = participant
			return participant, nil
		}
	}
	return Participant{}, persistence.ErrNotFound
}

func (r *participantRepoStub) DeleteParticipant(ctx context.Context, id string) error {
	for i, existing := range r.participants {
		if existing.ID == id {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (r *participantRepoStub) ListParticipants(ctx context.Context) ([]Participant, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]Participant(nil), r.participants...), nil
}

func (r *participantRepoStub) ListParticipantsByGroup(ctx context.Context, groupID string) ([]Participant, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var participants []Participant
	for _, participant := range r.participants {
		if participant.GroupID == groupID {
			participants = append(participants, participant)
		}
	}
	return participants, nil
}

func sequenceIDs(ids ...string) func() string {
	return func() string {
		if len(ids) == 0 {
			return "overflow"
		}
		id := ids[0]
		ids = ids[1:]
		return id
	}
}

func TestParticipantService_CreateParticipant(t *testing.T) {
	t.Parallel()

	t.Run("normalizes and persists", func(t *testing.T) {
		t.Parallel()

		repo := &participantRepoStub{}
		svc := NewParticipantService(repo, sequenceIDs("p-1"), nil)

		participant, err := svc.CreateParticipant(context.Background(), CreateParticipantParams{
			Principal: adminPrincipal(),
			Input: ParticipantInput{
				GroupID: "group-1",
				Number:  " 0001 ",
				Name:    "First",
				Email:   " First@Example.COM ",
			},
		})
		if err != nil {
			t.Fatalf("CreateParticipant failed: %v", err)
		}
		if participant.Number != "0001" || participant.Email != "first@example.com" {
			t.Fatalf("unexpected participant: %+v", participant)
		}
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		t.Parallel()

		svc := NewParticipantService(&participantRepoStub{}, nil, nil)
		_, err := svc.CreateParticipant(context.Background(), CreateParticipantParams{
			Principal: adminPrincipal(),
			Input:     ParticipantInput{GroupID: "g", Number: "1", Name: "N", Email: "not-an-email"},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["email"]; !ok {
			t.Fatalf("expected email field error, got %v", vErr.FieldErrors)
		}
	})
}

func TestParticipantService_ImportParticipants(t *testing.T) {
	t.Parallel()

	t.Run("imports a clean roster in one call", func(t *testing.T) {
		t.Parallel()

		repo := &participantRepoStub{}
		svc := NewParticipantService(repo, sequenceIDs("p-1", "p-2"), nil)

		result, err := svc.ImportParticipants(context.Background(), ImportParticipantsParams{
			Principal: adminPrincipal(),
			Inputs: []ParticipantInput{
				{GroupID: "group-1", Number: "0001", Name: "First", Priority: true},
				{GroupID: "group-1", Number: "0002", Name: "Second"},
			},
		})
		if err != nil {
			t.Fatalf("ImportParticipants failed: %v", err)
		}
		if result.Created != 2 {
			t.Fatalf("expected 2 created, got %d", result.Created)
		}
		if len(repo.bulkCalls) != 1 || len(repo.bulkCalls[0]) != 2 {
			t.Fatalf("expected one bulk call with 2 rows, got %#v", repo.bulkCalls)
		}
		if !repo.bulkCalls[0][0].Priority {
			t.Fatalf("priority flag lost: %+v", repo.bulkCalls[0][0])
		}
	})

	t.Run("rejects the whole import on any invalid row", func(t *testing.T) {
		t.Parallel()

		repo := &participantRepoStub{}
		svc := NewParticipantService(repo, nil, nil)

		_, err := svc.ImportParticipants(context.Background(), ImportParticipantsParams{
			Principal: adminPrincipal(),
			Inputs: []ParticipantInput{
				{GroupID: "group-1", Number: "0001", Name: "First"},
				{GroupID: "group-1", Number: "", Name: "Second"},
			},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["rows[1].number"]; !ok {
			t.Fatalf("expected row-scoped field error, got %v", vErr.FieldErrors)
		}
		if len(repo.bulkCalls) != 0 {
			t.Fatalf("expected no persistence call, got %d", len(repo.bulkCalls))
		}
	})

	t.Run("rejects empty imports", func(t *testing.T) {
		t.Parallel()

		svc := NewParticipantService(&participantRepoStub{}, nil, nil)
		_, err := svc.ImportParticipants(context.Background(), ImportParticipantsParams{Principal: adminPrincipal()})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("maps duplicate numbers to ErrAlreadyExists", func(t *testing.T) {
		t.Parallel()

		repo := &participantRepoStub{bulkErr: persistence.ErrDuplicate}
		svc := NewParticipantService(repo, nil, nil)

		_, err := svc.ImportParticipants(context.Background(), ImportParticipantsParams{
			Principal: adminPrincipal(),
			Inputs:    []ParticipantInput{{GroupID: "g", Number: "1", Name: "N"}},
		})
		if !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestParticipantService_ListParticipants(t *testing.T) {
	t.Parallel()

	repo := &participantRepoStub{participants: []Participant{
		{ID: "p-1", GroupID: "g1"},
		{ID: "p-2", GroupID: "g2"},
		{ID: "p-3", GroupID: "g1"},
	}}
	svc := NewParticipantService(repo, nil, nil)

	participants, err := svc.ListParticipants(context.Background(), adminPrincipal(), "g1")
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(participants) != 2 || participants[0].ID != "p-1" || participants[1].ID != "p-3" {
		t.Fatalf("unexpected participants: %+v", participants)
	}
}
