package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/placement-scheduler/internal/persistence"
)

// RoomRepository implements persistence.RoomRepository on SQLite.
type RoomRepository struct {
	pool *ConnectionPool
}

// NewRoomRepository returns a repository backed by the given pool.
func NewRoomRepository(pool *ConnectionPool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

// CreateRoom inserts a new room.
func (r *RoomRepository) CreateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" || room.Capacity < 0 {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	if room.CreatedAt.IsZero() {
		room.CreatedAt = now
	}
	room.UpdatedAt = room.CreatedAt

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO rooms (id, campus_group_id, campus, building, name, capacity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		room.ID,
		room.CampusGroupID,
		room.Campus,
		room.Building,
		room.Name,
		room.Capacity,
		formatTime(room.CreatedAt),
		formatTime(room.UpdatedAt),
	)
	return mapSQLError(err)
}

// UpdateRoom updates an existing room.
func (r *RoomRepository) UpdateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" || room.Capacity < 0 {
		return persistence.ErrConstraintViolation
	}

	room.UpdatedAt = time.Now().UTC()
	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE rooms
		SET campus_group_id = ?, campus = ?, building = ?, name = ?, capacity = ?, updated_at = ?
		WHERE id = ?`,
		room.CampusGroupID,
		room.Campus,
		room.Building,
		room.Name,
		room.Capacity,
		formatTime(room.UpdatedAt),
		room.ID,
	)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRowAffected(result)
}

// GetRoom retrieves one room by ID.
func (r *RoomRepository) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, campus_group_id, campus, building, name, capacity, created_at, updated_at
		FROM rooms WHERE id = ?`, id)
	return scanRoom(row)
}

// ListRooms returns all rooms ordered by campus, building and name.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	return r.queryRooms(ctx, `
		SELECT id, campus_group_id, campus, building, name, capacity, created_at, updated_at
		FROM rooms ORDER BY campus, building, name, id`)
}

// ListRoomsByCampusGroup returns the rooms of one campus group in insertion
// order, the fixed iteration order the engine relies on.
func (r *RoomRepository) ListRoomsByCampusGroup(ctx context.Context, campusGroupID string) ([]persistence.Room, error) {
	return r.queryRooms(ctx, `
		SELECT id, campus_group_id, campus, building, name, capacity, created_at, updated_at
		FROM rooms WHERE campus_group_id = ? ORDER BY rowid`, campusGroupID)
}

// DeleteRoom removes a room by ID.
func (r *RoomRepository) DeleteRoom(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRowAffected(result)
}

func (r *RoomRepository) queryRooms(ctx context.Context, query string, args ...any) ([]persistence.Room, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (persistence.Room, error) {
	var room persistence.Room
	var createdAt, updatedAt string
	err := row.Scan(
		&room.ID,
		&room.CampusGroupID,
		&room.Campus,
		&room.Building,
		&room.Name,
		&room.Capacity,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Room{}, mapSQLError(err)
	}
	if room.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Room{}, err
	}
	if room.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Room{}, err
	}
	return room, nil
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
