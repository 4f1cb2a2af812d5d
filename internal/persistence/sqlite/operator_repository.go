package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/example/placement-scheduler/internal/persistence"
)

// OperatorRepository implements persistence.OperatorRepository on SQLite.
type OperatorRepository struct {
	pool *ConnectionPool
}

// NewOperatorRepository returns a repository backed by the given pool.
func NewOperatorRepository(pool *ConnectionPool) *OperatorRepository {
	return &OperatorRepository{pool: pool}
}

// CreateOperator inserts a new operator account.
func (r *OperatorRepository) CreateOperator(ctx context.Context, operator persistence.Operator) error {
	if operator.ID == "" || operator.Email == "" {
		return persistence.ErrConstraintViolation
	}
	now := time.Now().UTC()
	if operator.CreatedAt.IsZero() {
		operator.CreatedAt = now
	}
	operator.UpdatedAt = operator.CreatedAt

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO operators (id, email, display_name, password_hash, is_admin, disabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		operator.ID,
		strings.ToLower(operator.Email),
		operator.DisplayName,
		operator.PasswordHash,
		boolToInt(operator.IsAdmin),
		boolToInt(operator.Disabled),
		formatTime(operator.CreatedAt),
		formatTime(operator.UpdatedAt),
	)
	return mapSQLError(err)
}

// UpdateOperator updates an existing operator account.
func (r *OperatorRepository) UpdateOperator(ctx context.Context, operator persistence.Operator) error {
	if operator.ID == "" || operator.Email == "" {
		return persistence.ErrConstraintViolation
	}
	operator.UpdatedAt = time.Now().UTC()
	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE operators
		SET email = ?, display_name = ?, password_hash = ?, is_admin = ?, disabled = ?, updated_at = ?
		WHERE id = ?`,
		strings.ToLower(operator.Email),
		operator.DisplayName,
		operator.PasswordHash,
		boolToInt(operator.IsAdmin),
		boolToInt(operator.Disabled),
		formatTime(operator.UpdatedAt),
		operator.ID,
	)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRowAffected(result)
}

// GetOperator retrieves one operator by ID.
func (r *OperatorRepository) GetOperator(ctx context.Context, id string) (persistence.Operator, error) {
	row := r.pool.db.QueryRowContext(ctx, selectOperatorSQL+` WHERE id = ?`, id)
	return scanOperator(row)
}

// GetOperatorByEmail retrieves one operator by email, case-insensitively.
func (r *OperatorRepository) GetOperatorByEmail(ctx context.Context, email string) (persistence.Operator, error) {
	row := r.pool.db.QueryRowContext(ctx, selectOperatorSQL+` WHERE email = ?`, strings.ToLower(email))
	return scanOperator(row)
}

// ListOperators returns all operator accounts ordered by creation time.
func (r *OperatorRepository) ListOperators(ctx context.Context) ([]persistence.Operator, error) {
	rows, err := r.pool.db.QueryContext(ctx, selectOperatorSQL+` ORDER BY created_at, id`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var operators []persistence.Operator
	for rows.Next() {
		operator, err := scanOperator(rows)
		if err != nil {
			return nil, err
		}
		operators = append(operators, operator)
	}
	return operators, rows.Err()
}

// DeleteOperator removes one operator by ID.
func (r *OperatorRepository) DeleteOperator(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM operators WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRowAffected(result)
}

const selectOperatorSQL = `
	SELECT id, email, display_name, password_hash, is_admin, disabled, created_at, updated_at
	FROM operators`

func scanOperator(row rowScanner) (persistence.Operator, error) {
	var operator persistence.Operator
	var isAdmin, disabled int
	var createdAt, updatedAt string
	err := row.Scan(
		&operator.ID,
		&operator.Email,
		&operator.DisplayName,
		&operator.PasswordHash,
		&isAdmin,
		&disabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Operator{}, mapSQLError(err)
	}
	operator.IsAdmin = isAdmin != 0
	operator.Disabled = disabled != 0
	if operator.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Operator{}, err
	}
	if operator.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Operator{}, err
	}
	return operator, nil
}
