package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/placement-scheduler/internal/persistence"
)

// ParticipantRepository implements persistence.ParticipantRepository on
// SQLite.
type ParticipantRepository struct {
	pool *ConnectionPool
}

// NewParticipantRepository returns a repository backed by the given pool.
func NewParticipantRepository(pool *ConnectionPool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

// CreateParticipant inserts one roster entry.
func (r *ParticipantRepository) CreateParticipant(ctx context.Context, participant persistence.Participant) error {
	if participant.ID == "" {
		return persistence.ErrConstraintViolation
	}
	stamped := stampParticipant(participant)
	_, err := r.pool.db.ExecContext(ctx, insertParticipantSQL, insertParticipantArgs(stamped)...)
	return mapSQLError(err)
}

// CreateParticipants inserts a whole roster import in one transaction; either
// every row lands or none does.
func (r *ParticipantRepository) CreateParticipants(ctx context.Context, participants []persistence.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, participant := range participants {
			if participant.ID == "" {
				return persistence.ErrConstraintViolation
			}
			stamped := stampParticipant(participant)
			if _, err := tx.ExecContext(ctx, insertParticipantSQL, insertParticipantArgs(stamped)...); err != nil {
				return mapSQLError(err)
			}
		}
		return nil
	})
}

// UpdateParticipant updates an existing roster entry.
func (r *ParticipantRepository) UpdateParticipant(ctx context.Context, participant persistence.Participant) error {
	if participant.ID == "" {
		return persistence.ErrConstraintViolation
	}
	participant.UpdatedAt = time.Now().UTC()
	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE participants
		SET group_id = ?, number = ?, name = ?, email = ?, province = ?, city = ?, priority = ?, updated_at = ?
		WHERE id = ?`,
		participant.GroupID,
		participant.Number,
		participant.Name,
		participant.Email,
		participant.Province,
		participant.City,
		boolToInt(participant.Priority),
		formatTime(participant.UpdatedAt),
		participant.ID,
	)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRowAffected(result)
}

// GetParticipant retrieves one roster entry by ID.
func (r *ParticipantRepository) GetParticipant(ctx context.Context, id string) (persistence.Participant, error) {
	row := r.pool.db.QueryRowContext(ctx, selectParticipantSQL+` WHERE id = ?`, id)
	return scanParticipant(row)
}

// ListParticipants returns every roster entry in insertion order.
func (r *ParticipantRepository) ListParticipants(ctx context.Context) ([]persistence.Participant, error) {
	rows, err := r.pool.db.QueryContext(ctx, selectParticipantSQL+` ORDER BY rowid`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var participants []persistence.Participant
	for rows.Next() {
		participant, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	return participants, rows.Err()
}

// ListParticipantsByGroup returns the roster of one group in insertion order,
// the processing order the orderer partitions.
func (r *ParticipantRepository) ListParticipantsByGroup(ctx context.Context, groupID string) ([]persistence.Participant, error) {
	rows, err := r.pool.db.QueryContext(ctx, selectParticipantSQL+` WHERE group_id = ? ORDER BY rowid`, groupID)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var participants []persistence.Participant
	for rows.Next() {
		participant, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	return participants, rows.Err()
}

// DeleteParticipant removes one roster entry by ID.
func (r *ParticipantRepository) DeleteParticipant(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRowAffected(result)
}

const insertParticipantSQL = `
	INSERT INTO participants (id, group_id, number, name, email, province, city, priority, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectParticipantSQL = `
	SELECT id, group_id, number, name, email, province, city, priority, created_at, updated_at
	FROM participants`

func stampParticipant(participant persistence.Participant) persistence.Participant {
	now := time.Now().UTC()
	if participant.CreatedAt.IsZero() {
		participant.CreatedAt = now
	}
	participant.UpdatedAt = participant.CreatedAt
	return participant
}

func insertParticipantArgs(participant persistence.Participant) []any {
	return []any{
		participant.ID,
		participant.GroupID,
		participant.Number,
		participant.Name,
		participant.Email,
		participant.Province,
		participant.City,
		boolToInt(participant.Priority),
		formatTime(participant.CreatedAt),
		formatTime(participant.UpdatedAt),
	}
}

func scanParticipant(row rowScanner) (persistence.Participant, error) {
	var participant persistence.Participant
	var priority int
	var createdAt, updatedAt string
	err := row.Scan(
		&participant.ID,
		&participant.GroupID,
		&participant.Number,
		&participant.Name,
		&participant.Email,
		&participant.Province,
		&participant.City,
		&priority,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Participant{}, mapSQLError(err)
	}
	participant.Priority = priority != 0
	if participant.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Participant{}, err
	}
	if participant.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Participant{}, err
	}
	return participant, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
