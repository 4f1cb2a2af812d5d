package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/placement-scheduler/internal/persistence"
)

type roomRepoStub struct {
	rooms     []Room
	created   []Room
	updated   []Room
	deleted   []string
	createErr error
	getErr    error
	listErr   error
}

func (r *roomRepoStub) CreateRoom(ctx context.Context, room Room) (Room, error) {
	if r.createErr != nil {
		return Room{}, r.createErr
	}
	r.created = append(r.created, room)
	r.rooms = append(r.rooms, room)
	return room, nil
}

func (r *roomRepoStub) GetRoom(ctx context.Context, id string) (Room, error) {
	if r.getErr != nil {
		return Room{}, r.getErr
	}
	for _, room := range r.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return Room{}, persistence.ErrNotFound
}

func (r *roomRepoStub) UpdateRoom(ctx context.Context, room Room) (Room, error) {
	r.updated = append(r.updated, room)
	for i, existing := range r.rooms {
		if existing.ID == room.ID {
			r.rooms[i] = room
			return room, nil
		}
	}
	return Room{}, persistence.ErrNotFound
}

func (r *roomRepoStub) DeleteRoom(ctx context.Context, id string) error {
	for i, existing := range r.rooms {
		if existing.ID == id {
			r.rooms = append(r.rooms[:i], r.rooms[i+1:]...)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (r *roomRepoStub) ListRooms(ctx context.Context) ([]Room, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]Room(nil), r.rooms...), nil
}

func (r *roomRepoStub) ListRoomsByCampusGroup(ctx context.Context, campusGroupID string) ([]Room, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var rooms []Room
	for _, room := range r.rooms {
		if room.CampusGroupID == campusGroupID {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

func adminPrincipal() Principal {
	return Principal{OperatorID: "operator-1", IsAdmin: true}
}

func TestRoomService_CreateRoom(t *testing.T) {
	t.Parallel()

	t.Run("persists a valid room", func(t *testing.T) {
		t.Parallel()

		repo := &roomRepoStub{}
		now := time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)
		svc := NewRoomService(repo, func() string { return "room-1" }, func() time.Time { return now })

		room, err := svc.CreateRoom(context.Background(), CreateRoomParams{
			Principal: adminPrincipal(),
			Input: RoomInput{
				CampusGroupID: "campus-group-1",
				Campus:        " North ",
				Building:      "Science",
				Name:          "Hall A",
				Capacity:      30,
			},
		})
		if err != nil {
			t.Fatalf("CreateRoom failed: %v", err)
		}
		if room.ID != "room-1" || room.Campus != "North" || !room.CreatedAt.Equal(now) {
			t.Fatalf("unexpected room: %+v", room)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected one create call, got %d", len(repo.created))
		}
	})

	t.Run("allows capacity zero", func(t *testing.T) {
		t.Parallel()

		repo := &roomRepoStub{}
		svc := NewRoomService(repo, func() string { return "room-1" }, nil)

		_, err := svc.CreateRoom(context.Background(), CreateRoomParams{
			Principal: adminPrincipal(),
			Input:     RoomInput{CampusGroupID: "g", Campus: "North", Name: "Overflow", Capacity: 0},
		})
		if err != nil {
			t.Fatalf("CreateRoom failed: %v", err)
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()

		svc := NewRoomService(&roomRepoStub{}, nil, nil)
		_, err := svc.CreateRoom(context.Background(), CreateRoomParams{
			Principal: adminPrincipal(),
			Input:     RoomInput{Capacity: -2},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"campus_group_id", "campus", "name", "capacity"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("expected field error for %s, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("rejects non-admin callers", func(t *testing.T) {
		t.Parallel()

		svc := NewRoomService(&roomRepoStub{}, nil, nil)
		_, err := svc.CreateRoom(context.Background(), CreateRoomParams{
			Principal: Principal{OperatorID: "operator-2"},
			Input:     RoomInput{CampusGroupID: "g", Campus: "North", Name: "Hall A", Capacity: 10},
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestRoomService_UpdateRoom(t *testing.T) {
	t.Parallel()

	t.Run("updates an existing room", func(t *testing.T) {
		t.Parallel()

		repo := &roomRepoStub{rooms: []Room{{ID: "room-1", CampusGroupID: "g", Campus: "North", Name: "Hall A", Capacity: 20}}}
		now := time.Date(2026, time.August, 2, 9, 0, 0, 0, time.UTC)
		svc := NewRoomService(repo, nil, func() time.Time { return now })

		room, err := svc.UpdateRoom(context.Background(), UpdateRoomParams{
			Principal: adminPrincipal(),
			RoomID:    "room-1",
			Input:     RoomInput{CampusGroupID: "g", Campus: "North", Building: "Annex", Name: "Hall A", Capacity: 25},
		})
		if err != nil {
			t.Fatalf("UpdateRoom failed: %v", err)
		}
		if room.Capacity != 25 || room.Building != "Annex" || !room.UpdatedAt.Equal(now) {
			t.Fatalf("unexpected room: %+v", room)
		}
	})

	t.Run("maps missing rooms to ErrNotFound", func(t *testing.T) {
		t.Parallel()

		svc := NewRoomService(&roomRepoStub{}, nil, nil)
		_, err := svc.UpdateRoom(context.Background(), UpdateRoomParams{
			Principal: adminPrincipal(),
			RoomID:    "room-missing",
			Input:     RoomInput{CampusGroupID: "g", Campus: "North", Name: "Hall A", Capacity: 10},
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRoomService_ListRooms(t *testing.T) {
	t.Parallel()

	repo := &roomRepoStub{rooms: []Room{
		{ID: "room-1", CampusGroupID: "g1", Name: "Hall A"},
		{ID: "room-2", CampusGroupID: "g2", Name: "Hall B"},
		{ID: "room-3", CampusGroupID: "g1", Name: "Hall C"},
	}}
	svc := NewRoomService(repo, nil, nil)

	t.Run("scopes results to the requested campus group", func(t *testing.T) {
		t.Parallel()

		rooms, err := svc.ListRooms(context.Background(), adminPrincipal(), "g1")
		if err != nil {
			t.Fatalf("ListRooms failed: %v", err)
		}
		if len(rooms) != 2 || rooms[0].ID != "room-1" || rooms[1].ID != "room-3" {
			t.Fatalf("unexpected rooms: %+v", rooms)
		}
	})

	t.Run("returns all rooms without a campus group", func(t *testing.T) {
		t.Parallel()

		rooms, err := svc.ListRooms(context.Background(), adminPrincipal(), "")
		if err != nil {
			t.Fatalf("ListRooms failed: %v", err)
		}
		if len(rooms) != 3 {
			t.Fatalf("unexpected rooms: %+v", rooms)
		}
	})
}
