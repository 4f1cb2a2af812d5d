package migration

// Migration is one versioned schema change applied at startup.
type Migration struct {
	Version     string
	Description string
	SQL         string
}

// Migrations returns every schema migration in apply order. SQL is compiled
// in rather than scanned from disk so the binary is self-contained.
func Migrations() []Migration {
	return []Migration{
		{
			Version:     "001",
			Description: "operator accounts and sessions",
			SQL: `
CREATE TABLE operators (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    display_name  TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    is_admin      INTEGER NOT NULL DEFAULT 0,
    disabled      INTEGER NOT NULL DEFAULT 0,
    created_at    TEXT NOT NULL,
    updated_at    TEXT NOT NULL
);

CREATE TABLE sessions (
    id          TEXT PRIMARY KEY,
    operator_id TEXT NOT NULL REFERENCES operators(id) ON DELETE CASCADE,
    token       TEXT NOT NULL UNIQUE,
    expires_at  TEXT NOT NULL,
    created_at  TEXT NOT NULL,
    revoked_at  TEXT
);

CREATE INDEX idx_sessions_operator ON sessions(operator_id);
`,
		},
		{
			Version:     "002",
			Description: "rooms and participants",
			SQL: `
CREATE TABLE rooms (
    id              TEXT PRIMARY KEY,
    campus_group_id TEXT NOT NULL,
    campus          TEXT NOT NULL,
    building        TEXT NOT NULL,
    name            TEXT NOT NULL,
    capacity        INTEGER NOT NULL CHECK (capacity >= 0),
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE INDEX idx_rooms_campus_group ON rooms(campus_group_id);

CREATE TABLE participants (
    id         TEXT PRIMARY KEY,
    group_id   TEXT NOT NULL,
    number     TEXT NOT NULL,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    province   TEXT NOT NULL DEFAULT '',
    city       TEXT NOT NULL DEFAULT '',
    priority   INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX idx_participants_group ON participants(group_id);
`,
		},
		{
			Version:     "003",
			Description: "schedule summaries, batches and assignments",
			SQL: `
CREATE TABLE schedule_summaries (
    id                   TEXT PRIMARY KEY,
    event_name           TEXT NOT NULL,
    event_type           TEXT NOT NULL,
    campus_group_id      TEXT NOT NULL,
    participant_group_id TEXT NOT NULL,
    start_date           TEXT NOT NULL,
    window_start_minute  INTEGER NOT NULL,
    window_end_minute    INTEGER NOT NULL,
    slot_minutes         INTEGER NOT NULL,
    scheduled_count      INTEGER NOT NULL,
    unscheduled_count    INTEGER NOT NULL,
    execution_seconds    REAL NOT NULL,
    status               TEXT NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE TABLE schedule_batches (
    id                TEXT PRIMARY KEY,
    summary_id        TEXT NOT NULL REFERENCES schedule_summaries(id) ON DELETE CASCADE,
    name              TEXT NOT NULL,
    room_id           TEXT NOT NULL,
    room_name         TEXT NOT NULL,
    campus            TEXT NOT NULL,
    building          TEXT NOT NULL,
    slot_date         TEXT NOT NULL,
    slot_start_minute INTEGER NOT NULL,
    slot_end_minute   INTEGER NOT NULL,
    participant_count INTEGER NOT NULL,
    has_priority      INTEGER NOT NULL,
    created_at        TEXT NOT NULL
);

CREATE INDEX idx_batches_summary ON schedule_batches(summary_id);

CREATE TABLE schedule_assignments (
    id                TEXT PRIMARY KEY,
    summary_id        TEXT NOT NULL REFERENCES schedule_summaries(id) ON DELETE CASCADE,
    batch_id          TEXT NOT NULL REFERENCES schedule_batches(id) ON DELETE CASCADE,
    participant_id    TEXT NOT NULL,
    room_id           TEXT NOT NULL,
    slot_date         TEXT NOT NULL,
    slot_start_minute INTEGER NOT NULL,
    slot_end_minute   INTEGER NOT NULL,
    seat_number       INTEGER NOT NULL,
    created_at        TEXT NOT NULL
);

CREATE INDEX idx_assignments_summary ON schedule_assignments(summary_id);
CREATE INDEX idx_assignments_batch ON schedule_assignments(batch_id);
`,
		},
	}
}
