package extract

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"progdoc/internal/config"
	"progdoc/internal/ruslocale"
)

// Store reads the event-management snapshot extraction runs against.
type Store struct {
	db         *sql.DB
	loc        *time.Location
	dates      *ruslocale.Formatter
	roomSuffix string
}

// Open connects to the source database configured in cfg. The connection is
// forced read-only; extraction never writes. Callers own the handle and must
// Close it on every exit path.
func Open(cfg *config.Config) (*Store, error) {
	if _, err := os.Stat(cfg.Paths.Database); err != nil {
		return nil, fmt.Errorf("source database: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	dates, err := ruslocale.New(cfg.Extract.Locale)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", cfg.Paths.Database)
	if err != nil {
		return nil, fmt.Errorf("open source database: %w", err)
	}
	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma query_only: %w", err)
	}

	return &Store{
		db:         db,
		loc:        loc,
		dates:      dates,
		roomSuffix: cfg.Extract.RoomSuffix,
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Source timestamps are stored as civil UTC without offset.
const timestampLayout = "2006-01-02 15:04:05"

// parseTimestamp reads a stored UTC timestamp and converts it into the
// configured target zone. Formatting downstream does no timezone math.
func (s *Store) parseTimestamp(raw, column string) (time.Time, error) {
	ts, err := time.ParseInLocation(timestampLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s %q: %w", column, raw, err)
	}
	return ts.In(s.loc), nil
}

func orEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}
