package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/placement-scheduler/internal/persistence"
	"github.com/example/placement-scheduler/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Operators    persistence.OperatorRepository
	Sessions     persistence.SessionRepository
	Rooms        persistence.RoomRepository
	Participants persistence.ParticipantRepository
	Schedules    persistence.ScheduleRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// also registers a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "placement.db")

	pool, err := sqlite.NewConnectionPool(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := pool.Migrate(context.Background()); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Operators:    sqlite.NewOperatorRepository(pool),
		Sessions:     sqlite.NewSessionRepository(pool),
		Rooms:        sqlite.NewRoomRepository(pool),
		Participants: sqlite.NewParticipantRepository(pool),
		Schedules:    sqlite.NewScheduleRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
