package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"progdoc/internal/conference"
	"progdoc/internal/logging"
	"progdoc/internal/review"
	"progdoc/internal/roles"
)

// Extract builds the full conference document: every non-deleted event in
// ascending id order, each with its leadership, sessions, and contributions
// fully resolved before the next event begins. The first failing query aborts
// the run; no partial document is returned.
func (s *Store) Extract(ctx context.Context, logger *slog.Logger) (*conference.Document, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	events, err := s.queryEvents(ctx)
	if err != nil {
		return nil, err
	}

	doc := &conference.Document{Conferences: make([]conference.Conference, 0, len(events))}
	for _, ev := range events {
		conf, err := s.buildConference(ctx, ev)
		if err != nil {
			return nil, err
		}
		logger.Info("conference extracted",
			"event_id", conf.ID,
			"title", conf.Title,
			"sessions", len(conf.Sessions),
			"leadership_slots", len(conf.Leadership))
		doc.Conferences = append(doc.Conferences, conf)
	}
	return doc, nil
}

func (s *Store) buildConference(ctx context.Context, ev eventRow) (conference.Conference, error) {
	conf := conference.Conference{
		ID:         ev.ID,
		Title:      ev.Title,
		StartDate:  s.dates.DayMonth(ev.Start),
		StartTime:  s.dates.Clock(ev.Start),
		EndDate:    s.dates.DayMonth(ev.End),
		EndTime:    s.dates.Clock(ev.End),
		VenueName:  ev.VenueName,
		RoomName:   ev.RoomName,
		Address:    ev.Address,
		Timezone:   ev.Timezone,
		Sessions:   make([]conference.Session, 0),
		Leadership: conference.Leadership{},
	}

	roleRows, err := s.queryLeadershipRoles(ctx, ev.ID)
	if err != nil {
		return conference.Conference{}, err
	}
	for _, row := range roleRows {
		person := conference.Person{
			Name:        conference.DisplayName(row.LastName, row.FirstName),
			Affiliation: row.Affiliation,
		}
		if row.HasEmail {
			person.Email = row.Email
		}
		// Rows arrive in ascending role id order; when several people map to
		// one slot the last processed row wins.
		conf.Leadership[roles.Slot(row.Name)] = person
	}

	sessionRows, err := s.querySessionBlocks(ctx, ev.ID)
	if err != nil {
		return conference.Conference{}, err
	}
	for i, row := range sessionRows {
		sess := conference.Session{
			ID:            row.BlockID,
			Number:        strconv.Itoa(i + 1),
			Title:         row.Title,
			Date:          s.dates.DayMonth(row.Start),
			StartTime:     s.dates.Clock(row.Start),
			Duration:      formatDuration(row.DurationSecs),
			RoomName:      s.roomLabel(row.RoomName),
			Contributions: make([]conference.Contribution, 0),
		}

		contribRows, err := s.queryContributions(ctx, ev.ID, row.Title)
		if err != nil {
			return conference.Conference{}, err
		}
		for _, c := range contribRows {
			sess.Contributions = append(sess.Contributions, conference.Contribution{
				ID:        c.ID,
				Title:     c.Title,
				StartTime: s.dates.Clock(c.Start),
				Duration:  formatDuration(c.DurationSecs),
				Speaker: conference.Speaker{
					FirstName:   c.FirstName,
					LastName:    c.LastName,
					FullName:    conference.DisplayName(c.LastName, c.FirstName),
					Affiliation: c.Affiliation,
				},
				ReviewState: review.Label(c.ReviewState),
			})
		}
		conf.Sessions = append(conf.Sessions, sess)
	}

	return conf, nil
}

func (s *Store) roomLabel(room string) string {
	if room == "" {
		return ""
	}
	if s.roomSuffix == "" {
		return room
	}
	return room + " " + s.roomSuffix
}

// formatDuration renders a duration in seconds as H:MM:SS with unpadded
// hours, matching the stringified intervals in existing documents.
func formatDuration(secs int64) string {
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
