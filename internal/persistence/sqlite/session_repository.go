package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/placement-scheduler/internal/persistence"
)

// SessionRepository implements persistence.SessionRepository on SQLite.
type SessionRepository struct {
	pool *ConnectionPool
}

// NewSessionRepository returns a repository backed by the given pool.
func NewSessionRepository(pool *ConnectionPool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// CreateSession stores a newly issued session.
func (r *SessionRepository) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	if session.ID == "" || session.Token == "" || session.OperatorID == "" {
		return persistence.Session{}, persistence.ErrConstraintViolation
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO sessions (id, operator_id, token, expires_at, created_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.OperatorID,
		session.Token,
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
		nullableTime(session.RevokedAt),
	)
	if err != nil {
		return persistence.Session{}, mapSQLError(err)
	}
	return session, nil
}

// GetSession retrieves a session by token.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, operator_id, token, expires_at, created_at, revoked_at
		FROM sessions WHERE token = ?`, token)

	var session persistence.Session
	var expiresAt, createdAt string
	var revokedAt sql.NullString
	err := row.Scan(&session.ID, &session.OperatorID, &session.Token, &expiresAt, &createdAt, &revokedAt)
	if err != nil {
		return persistence.Session{}, mapSQLError(err)
	}
	if session.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return persistence.Session{}, err
	}
	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Session{}, err
	}
	if revokedAt.Valid {
		revoked, err := parseTime(revokedAt.String)
		if err != nil {
			return persistence.Session{}, err
		}
		session.RevokedAt = &revoked
	}
	return session, nil
}

// RevokeSession marks a session revoked and returns the stored record.
func (r *SessionRepository) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	result, err := r.pool.db.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = ? WHERE token = ? AND revoked_at IS NULL`,
		formatTime(revokedAt), token)
	if err != nil {
		return persistence.Session{}, mapSQLError(err)
	}
	if err := requireRowAffected(result); err != nil {
		return persistence.Session{}, err
	}
	return r.GetSession(ctx, token)
}

// DeleteExpiredSessions removes sessions that expired at or before the
// reference time.
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	_, err := r.pool.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`, formatTime(reference))
	return mapSQLError(err)
}
