package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/placement-scheduler/internal/persistence"
)

// ScheduleRepository implements persistence.ScheduleRepository on SQLite. It
// is both the persistence sink the generation run writes through and the
// retrieval surface exports and notifications join against.
type ScheduleRepository struct {
	pool *ConnectionPool
}

// NewScheduleRepository returns a repository backed by the given pool.
func NewScheduleRepository(pool *ConnectionPool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// CreateSummary inserts the one-per-run summary row. It must land before any
// batch or assignment referencing it.
func (r *ScheduleRepository) CreateSummary(ctx context.Context, summary persistence.ScheduleSummary) error {
	if summary.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO schedule_summaries (
			id, event_name, event_type, campus_group_id, participant_group_id,
			start_date, window_start_minute, window_end_minute, slot_minutes,
			scheduled_count, unscheduled_count, execution_seconds, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.ID,
		summary.EventName,
		summary.EventType,
		summary.CampusGroupID,
		summary.ParticipantGroupID,
		formatDate(summary.StartDate),
		summary.WindowStartMinute,
		summary.WindowEndMinute,
		summary.SlotMinutes,
		summary.ScheduledCount,
		summary.UnscheduledCount,
		summary.ExecutionSeconds,
		summary.Status,
		formatTime(summary.CreatedAt),
	)
	return mapSQLError(err)
}

// UpdateSummaryStatus rewrites the status column of one summary.
func (r *ScheduleRepository) UpdateSummaryStatus(ctx context.Context, id, status string) error {
	result, err := r.pool.db.ExecContext(ctx,
		`UPDATE schedule_summaries SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRowAffected(result)
}

// GetSummary retrieves one summary by ID.
func (r *ScheduleRepository) GetSummary(ctx context.Context, id string) (persistence.ScheduleSummary, error) {
	row := r.pool.db.QueryRowContext(ctx, selectSummarySQL+` WHERE id = ?`, id)
	return scanSummary(row)
}

// ListSummaries returns every stored run, newest first.
func (r *ScheduleRepository) ListSummaries(ctx context.Context) ([]persistence.ScheduleSummary, error) {
	rows, err := r.pool.db.QueryContext(ctx, selectSummarySQL+` ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var summaries []persistence.ScheduleSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// CreateBatch inserts one batch row.
func (r *ScheduleRepository) CreateBatch(ctx context.Context, batch persistence.Batch) error {
	if batch.ID == "" || batch.SummaryID == "" {
		return persistence.ErrConstraintViolation
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO schedule_batches (
			id, summary_id, name, room_id, room_name, campus, building,
			slot_date, slot_start_minute, slot_end_minute,
			participant_count, has_priority, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		batch.ID,
		batch.SummaryID,
		batch.Name,
		batch.RoomID,
		batch.RoomName,
		batch.Campus,
		batch.Building,
		formatDate(batch.SlotDate),
		batch.SlotStartMinute,
		batch.SlotEndMinute,
		batch.ParticipantCount,
		boolToInt(batch.HasPriority),
		formatTime(batch.CreatedAt),
	)
	return mapSQLError(err)
}

// ListBatches returns the batches of one run in stored order.
func (r *ScheduleRepository) ListBatches(ctx context.Context, summaryID string) ([]persistence.Batch, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, summary_id, name, room_id, room_name, campus, building,
		       slot_date, slot_start_minute, slot_end_minute,
		       participant_count, has_priority, created_at
		FROM schedule_batches WHERE summary_id = ? ORDER BY rowid`, summaryID)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var batches []persistence.Batch
	for rows.Next() {
		var batch persistence.Batch
		var slotDate, createdAt string
		var hasPriority int
		if err := rows.Scan(
			&batch.ID,
			&batch.SummaryID,
			&batch.Name,
			&batch.RoomID,
			&batch.RoomName,
			&batch.Campus,
			&batch.Building,
			&slotDate,
			&batch.SlotStartMinute,
			&batch.SlotEndMinute,
			&batch.ParticipantCount,
			&hasPriority,
			&createdAt,
		); err != nil {
			return nil, mapSQLError(err)
		}
		batch.HasPriority = hasPriority != 0
		if batch.SlotDate, err = parseDate(slotDate); err != nil {
			return nil, err
		}
		if batch.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}

// CreateAssignments inserts one batch's assignment rows in one transaction.
func (r *ScheduleRepository) CreateAssignments(ctx context.Context, assignments []persistence.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, assignment := range assignments {
			if assignment.ID == "" || assignment.SummaryID == "" || assignment.BatchID == "" {
				return persistence.ErrConstraintViolation
			}
			createdAt := assignment.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now().UTC()
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO schedule_assignments (
					id, summary_id, batch_id, participant_id, room_id,
					slot_date, slot_start_minute, slot_end_minute, seat_number, created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				assignment.ID,
				assignment.SummaryID,
				assignment.BatchID,
				assignment.ParticipantID,
				assignment.RoomID,
				formatDate(assignment.SlotDate),
				assignment.SlotStartMinute,
				assignment.SlotEndMinute,
				assignment.SeatNumber,
				formatTime(createdAt),
			); err != nil {
				return mapSQLError(err)
			}
		}
		return nil
	})
}

// ListAssignments returns the assignments of one run in stored (placement)
// order.
func (r *ScheduleRepository) ListAssignments(ctx context.Context, summaryID string) ([]persistence.Assignment, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, summary_id, batch_id, participant_id, room_id,
		       slot_date, slot_start_minute, slot_end_minute, seat_number, created_at
		FROM schedule_assignments WHERE summary_id = ? ORDER BY rowid`, summaryID)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var assignments []persistence.Assignment
	for rows.Next() {
		var assignment persistence.Assignment
		var slotDate, createdAt string
		if err := rows.Scan(
			&assignment.ID,
			&assignment.SummaryID,
			&assignment.BatchID,
			&assignment.ParticipantID,
			&assignment.RoomID,
			&slotDate,
			&assignment.SlotStartMinute,
			&assignment.SlotEndMinute,
			&assignment.SeatNumber,
			&createdAt,
		); err != nil {
			return nil, mapSQLError(err)
		}
		if assignment.SlotDate, err = parseDate(slotDate); err != nil {
			return nil, err
		}
		if assignment.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}

const selectSummarySQL = `
	SELECT id, event_name, event_type, campus_group_id, participant_group_id,
	       start_date, window_start_minute, window_end_minute, slot_minutes,
	       scheduled_count, unscheduled_count, execution_seconds, status, created_at
	FROM schedule_summaries`

func scanSummary(row rowScanner) (persistence.ScheduleSummary, error) {
	var summary persistence.ScheduleSummary
	var startDate, createdAt string
	err := row.Scan(
		&summary.ID,
		&summary.EventName,
		&summary.EventType,
		&summary.CampusGroupID,
		&summary.ParticipantGroupID,
		&startDate,
		&summary.WindowStartMinute,
		&summary.WindowEndMinute,
		&summary.SlotMinutes,
		&summary.ScheduledCount,
		&summary.UnscheduledCount,
		&summary.ExecutionSeconds,
		&summary.Status,
		&createdAt,
	)
	if err != nil {
		return persistence.ScheduleSummary{}, mapSQLError(err)
	}
	if summary.StartDate, err = parseDate(startDate); err != nil {
		return persistence.ScheduleSummary{}, err
	}
	if summary.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.ScheduleSummary{}, err
	}
	return summary, nil
}
