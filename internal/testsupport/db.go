package testsupport

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"progdoc/internal/config"
)

// sourceSchema mirrors the slice of the event-management schema the extractor
// reads. Timestamps are stored as civil UTC "YYYY-MM-DD HH:MM:SS" strings.
const sourceSchema = `
CREATE TABLE events (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    start_dt TEXT NOT NULL,
    end_dt TEXT NOT NULL,
    venue_name TEXT,
    room_name TEXT,
    address TEXT,
    timezone TEXT,
    is_deleted INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE roles (
    id INTEGER PRIMARY KEY,
    event_id INTEGER NOT NULL,
    name TEXT NOT NULL
);
CREATE TABLE role_members (
    role_id INTEGER NOT NULL,
    user_id INTEGER NOT NULL
);
CREATE TABLE users (
    id INTEGER PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    affiliation TEXT
);
CREATE TABLE user_emails (
    user_id INTEGER NOT NULL,
    email TEXT NOT NULL
);
CREATE TABLE sessions (
    id INTEGER PRIMARY KEY,
    event_id INTEGER NOT NULL,
    title TEXT NOT NULL
);
CREATE TABLE session_blocks (
    id INTEGER PRIMARY KEY,
    session_id INTEGER NOT NULL,
    duration_secs INTEGER NOT NULL
);
CREATE TABLE timetable_entries (
    id INTEGER PRIMARY KEY,
    event_id INTEGER NOT NULL,
    type INTEGER NOT NULL,
    session_block_id INTEGER,
    contribution_id INTEGER,
    start_dt TEXT NOT NULL
);
CREATE TABLE contributions (
    id INTEGER PRIMARY KEY,
    session_id INTEGER,
    title TEXT NOT NULL,
    duration_secs INTEGER NOT NULL
);
CREATE TABLE contribution_person_links (
    contribution_id INTEGER NOT NULL,
    person_id INTEGER NOT NULL,
    is_speaker INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE persons (
    id INTEGER PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    affiliation TEXT
);
CREATE TABLE revisions (
    contribution_id INTEGER NOT NULL,
    state INTEGER
);
`

// NewSourceDB creates the source schema at cfg.Paths.Database and returns a
// handle for seeding fixture rows. The handle is closed on test cleanup.
func NewSourceDB(t testing.TB, cfg *config.Config) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", cfg.Paths.Database)
	if err != nil {
		t.Fatalf("open source db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	if _, err := db.Exec(sourceSchema); err != nil {
		t.Fatalf("create source schema: %v", err)
	}
	return db
}

// Exec runs a statement against the fixture database and fails the test on
// error.
func Exec(t testing.TB, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

// AddEvent inserts a non-deleted event with NULL venue, room, and address and
// a "Europe/Moscow" timezone label. Timestamps are UTC.
func AddEvent(t testing.TB, db *sql.DB, id int64, title, start, end string) {
	t.Helper()
	Exec(t, db, `INSERT INTO events (id, title, start_dt, end_dt, timezone, is_deleted)
        VALUES (?, ?, ?, ?, 'Europe/Moscow', 0)`, id, title, start, end)
}

// AddLeadershipRole inserts a role, its member link, and the user. An empty
// email leaves the user without an email row.
func AddLeadershipRole(t testing.TB, db *sql.DB, roleID, eventID int64, label string, userID int64, first, last, affiliation, email string) {
	t.Helper()
	Exec(t, db, `INSERT INTO roles (id, event_id, name) VALUES (?, ?, ?)`, roleID, eventID, label)
	Exec(t, db, `INSERT OR IGNORE INTO users (id, first_name, last_name, affiliation) VALUES (?, ?, ?, ?)`,
		userID, first, last, nullable(affiliation))
	Exec(t, db, `INSERT INTO role_members (role_id, user_id) VALUES (?, ?)`, roleID, userID)
	if email != "" {
		Exec(t, db, `INSERT INTO user_emails (user_id, email) VALUES (?, ?)`, userID, email)
	}
}

// AddSessionBlock inserts a session titled title, its block, and the
// session-type timetable entry scheduling it. The session row reuses blockID
// as its id.
func AddSessionBlock(t testing.TB, db *sql.DB, blockID, eventID int64, title, start string, durationSecs int64) {
	t.Helper()
	Exec(t, db, `INSERT INTO sessions (id, event_id, title) VALUES (?, ?, ?)`, blockID, eventID, title)
	Exec(t, db, `INSERT INTO session_blocks (id, session_id, duration_secs) VALUES (?, ?, ?)`,
		blockID, blockID, durationSecs)
	Exec(t, db, `INSERT INTO timetable_entries (event_id, type, session_block_id, start_dt) VALUES (?, 1, ?, ?)`,
		eventID, blockID, start)
}

// AddContribution inserts a contribution under sessionID, its timetable
// entry, and one speaker link.
func AddContribution(t testing.TB, db *sql.DB, contribID, eventID, sessionID int64, title, start string, durationSecs, personID int64, first, last, affiliation string) {
	t.Helper()
	Exec(t, db, `INSERT INTO contributions (id, session_id, title, duration_secs) VALUES (?, ?, ?, ?)`,
		contribID, sessionID, title, durationSecs)
	Exec(t, db, `INSERT INTO timetable_entries (event_id, type, contribution_id, start_dt) VALUES (?, 2, ?, ?)`,
		eventID, contribID, start)
	AddSpeakerLink(t, db, contribID, personID, first, last, affiliation)
}

// AddSpeakerLink inserts a speaker-flagged person link for a contribution.
func AddSpeakerLink(t testing.TB, db *sql.DB, contribID, personID int64, first, last, affiliation string) {
	t.Helper()
	Exec(t, db, `INSERT OR IGNORE INTO persons (id, first_name, last_name, affiliation) VALUES (?, ?, ?, ?)`,
		personID, first, last, nullable(affiliation))
	Exec(t, db, `INSERT INTO contribution_person_links (contribution_id, person_id, is_speaker) VALUES (?, ?, 1)`,
		contribID, personID)
}

// AddRevision inserts a reviewing revision for a contribution.
func AddRevision(t testing.TB, db *sql.DB, contribID, state int64) {
	t.Helper()
	Exec(t, db, `INSERT INTO revisions (contribution_id, state) VALUES (?, ?)`, contribID, state)
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
