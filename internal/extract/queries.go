package extract

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type eventRow struct {
	ID        int64
	Title     string
	Start     time.Time
	End       time.Time
	VenueName string
	RoomName  string
	Address   string
	Timezone  string
}

type roleRow struct {
	Name        string
	FirstName   string
	LastName    string
	Affiliation string
	Email       string
	HasEmail    bool
}

type sessionRow struct {
	BlockID      int64
	Title        string
	Start        time.Time
	DurationSecs int64
	RoomName     string
}

type contributionRow struct {
	ID           int64
	Title        string
	Start        time.Time
	DurationSecs int64
	FirstName    string
	LastName     string
	Affiliation  string
	ReviewState  int64
}

func (s *Store) queryEvents(ctx context.Context) ([]eventRow, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, title, start_dt, end_dt, venue_name, room_name, address, timezone
        FROM events
        WHERE is_deleted = 0
        ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []eventRow
	for rows.Next() {
		var (
			r                    eventRow
			startRaw, endRaw     string
			venue, room, address sql.NullString
			timezone             sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Title, &startRaw, &endRaw, &venue, &room, &address, &timezone); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		if r.Start, err = s.parseTimestamp(startRaw, "events.start_dt"); err != nil {
			return nil, err
		}
		if r.End, err = s.parseTimestamp(endRaw, "events.end_dt"); err != nil {
			return nil, err
		}
		r.VenueName = orEmpty(venue)
		r.RoomName = orEmpty(room)
		r.Address = orEmpty(address)
		r.Timezone = orEmpty(timezone)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// queryLeadershipRoles joins role memberships to users and their optional
// emails. The email join is not deduplicated: a user with several addresses
// yields one row per address, and slot overwrite decides which one survives.
func (s *Store) queryLeadershipRoles(ctx context.Context, eventID int64) ([]roleRow, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT r.name, u.first_name, u.last_name, u.affiliation, ue.email
        FROM roles r
        JOIN role_members rm ON rm.role_id = r.id
        JOIN users u ON rm.user_id = u.id
        LEFT JOIN user_emails ue ON ue.user_id = u.id
        WHERE r.event_id = ?
        ORDER BY r.id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("query leadership roles for event %d: %w", eventID, err)
	}
	defer rows.Close()

	var out []roleRow
	for rows.Next() {
		var (
			r                  roleRow
			affiliation, email sql.NullString
		)
		if err := rows.Scan(&r.Name, &r.FirstName, &r.LastName, &affiliation, &email); err != nil {
			return nil, fmt.Errorf("scan leadership row: %w", err)
		}
		r.Affiliation = orEmpty(affiliation)
		r.Email = orEmpty(email)
		r.HasEmail = email.Valid && email.String != ""
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leadership roles for event %d: %w", eventID, err)
	}
	return out, nil
}

func (s *Store) querySessionBlocks(ctx context.Context, eventID int64) ([]sessionRow, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT sb.id, se.title, t.start_dt, sb.duration_secs, e.room_name
        FROM session_blocks sb
        JOIN sessions se ON sb.session_id = se.id
        JOIN timetable_entries t ON t.session_block_id = sb.id
        JOIN events e ON se.event_id = e.id
        WHERE se.event_id = ? AND t.event_id = ? AND t.type = ?
        ORDER BY t.start_dt`, eventID, eventID, entryTypeSession)
	if err != nil {
		return nil, fmt.Errorf("query session blocks for event %d: %w", eventID, err)
	}
	defer rows.Close()

	var out []sessionRow
	for rows.Next() {
		var (
			r        sessionRow
			startRaw string
			room     sql.NullString
		)
		if err := rows.Scan(&r.BlockID, &r.Title, &startRaw, &r.DurationSecs, &room); err != nil {
			return nil, fmt.Errorf("scan session block row: %w", err)
		}
		if r.Start, err = s.parseTimestamp(startRaw, "timetable_entries.start_dt"); err != nil {
			return nil, err
		}
		r.RoomName = orEmpty(room)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session blocks for event %d: %w", eventID, err)
	}
	return out, nil
}

// queryContributions resolves a session's talks by session *title*, not id.
// Two session blocks sharing a title within one event therefore merge their
// contributions. Kept deliberately: the rendering stage was built against
// documents produced this way.
//
// Only speaker links are selected; a contribution with several speakers
// yields one row per speaker. Missing revisions coalesce to state 0.
func (s *Store) queryContributions(ctx context.Context, eventID int64, sessionTitle string) ([]contributionRow, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT c.id, c.title, t.start_dt, c.duration_secs,
               p.first_name, p.last_name, p.affiliation,
               COALESCE(r.state, 0)
        FROM timetable_entries t
        JOIN contributions c ON t.contribution_id = c.id
        LEFT JOIN sessions se ON c.session_id = se.id
        JOIN contribution_person_links cp ON cp.contribution_id = c.id
        JOIN persons p ON cp.person_id = p.id
        LEFT JOIN revisions r ON r.contribution_id = c.id
        WHERE t.event_id = ? AND t.type = ? AND cp.is_speaker = 1
          AND se.title = ?
        ORDER BY t.start_dt`, eventID, entryTypeContribution, sessionTitle)
	if err != nil {
		return nil, fmt.Errorf("query contributions for session %q: %w", sessionTitle, err)
	}
	defer rows.Close()

	var out []contributionRow
	for rows.Next() {
		var (
			r           contributionRow
			startRaw    string
			affiliation sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Title, &startRaw, &r.DurationSecs, &r.FirstName, &r.LastName, &affiliation, &r.ReviewState); err != nil {
			return nil, fmt.Errorf("scan contribution row: %w", err)
		}
		if r.Start, err = s.parseTimestamp(startRaw, "timetable_entries.start_dt"); err != nil {
			return nil, err
		}
		r.Affiliation = orEmpty(affiliation)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributions for session %q: %w", sessionTitle, err)
	}
	return out, nil
}

// Timetable entry types in the source schema.
const (
	entryTypeSession      = 1
	entryTypeContribution = 2
)
