package extract_test

import (
	"context"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"progdoc/internal/conference"
	"progdoc/internal/document"
	"progdoc/internal/extract"
	"progdoc/internal/testsupport"
)

func TestOpenMissingDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.Database = filepath.Join(t.TempDir(), "absent.db")
	if _, err := extract.Open(cfg); err == nil {
		t.Fatal("expected error for missing source database")
	}
}

func TestExtractSkipsDeletedEvents(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	testsupport.AddEvent(t, db, 1, "Живая", "2024-05-10 06:00:00", "2024-05-10 15:00:00")
	testsupport.Exec(t, db, `INSERT INTO events (id, title, start_dt, end_dt, timezone, is_deleted)
        VALUES (2, 'Удалённая', '2024-05-11 06:00:00', '2024-05-11 15:00:00', 'Europe/Moscow', 1)`)

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(doc.Conferences) != 1 {
		t.Fatalf("expected 1 conference, got %d", len(doc.Conferences))
	}
	if doc.Conferences[0].ID != 1 {
		t.Errorf("conference id = %d, want 1", doc.Conferences[0].ID)
	}
}

func TestExtractOrdersConferencesByID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	testsupport.AddEvent(t, db, 3, "Третья", "2024-01-01 06:00:00", "2024-01-01 15:00:00")
	testsupport.AddEvent(t, db, 1, "Первая", "2024-03-01 06:00:00", "2024-03-01 15:00:00")
	testsupport.AddEvent(t, db, 2, "Вторая", "2024-02-01 06:00:00", "2024-02-01 15:00:00")

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	var ids []int64
	for _, c := range doc.Conferences {
		ids = append(ids, c.ID)
	}
	if !reflect.DeepEqual(ids, []int64{1, 2, 3}) {
		t.Errorf("conference order = %v, want [1 2 3]", ids)
	}
}

func TestExtractConferenceFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	// Venue, room, and address left NULL; timestamps stored as UTC.
	testsupport.AddEvent(t, db, 7, "Сессия отделения", "2024-05-10 06:00:00", "2024-05-11 14:30:00")

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	conf := doc.Conferences[0]

	if conf.StartDate != "10 мая" || conf.StartTime != "09:00" {
		t.Errorf("start = %q %q, want %q %q", conf.StartDate, conf.StartTime, "10 мая", "09:00")
	}
	if conf.EndDate != "11 мая" || conf.EndTime != "17:30" {
		t.Errorf("end = %q %q, want %q %q", conf.EndDate, conf.EndTime, "11 мая", "17:30")
	}
	if conf.VenueName != "" || conf.RoomName != "" || conf.Address != "" {
		t.Errorf("NULL venue/room/address should become empty strings: %+v", conf)
	}
	if conf.Timezone != "Europe/Moscow" {
		t.Errorf("timezone = %q", conf.Timezone)
	}
	if conf.Sessions == nil || len(conf.Sessions) != 0 {
		t.Errorf("expected empty non-nil sessions, got %#v", conf.Sessions)
	}
	if conf.Leadership == nil || len(conf.Leadership) != 0 {
		t.Errorf("expected empty non-nil leadership, got %#v", conf.Leadership)
	}
}

func TestExtractLeadership(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	testsupport.AddEvent(t, db, 1, "Конференция", "2024-05-10 06:00:00", "2024-05-10 15:00:00")
	testsupport.AddLeadershipRole(t, db, 10, 1, "Научный руководитель", 100, "Иван", "Иванов", "Каф. X", "ivanov@example.org")
	testsupport.AddLeadershipRole(t, db, 11, 1, "Зам. научного руководителя", 101, "Пётр", "Петров", "", "")
	testsupport.AddLeadershipRole(t, db, 12, 1, "Секретарь", 102, "Анна", "Сидорова", "Каф. Y", "")
	testsupport.AddLeadershipRole(t, db, 13, 1, "Программный комитет", 103, "Ольга", "Кузнецова", "Каф. Z", "")

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	leadership := doc.Conferences[0].Leadership

	leader, ok := leadership["scientific_leader"]
	if !ok {
		t.Fatal("missing scientific_leader slot")
	}
	if leader.Name != "Иванов Иван" || leader.Affiliation != "Каф. X" || leader.Email != "ivanov@example.org" {
		t.Errorf("scientific_leader = %+v", leader)
	}

	deputy, ok := leadership["deputy_leader"]
	if !ok {
		t.Fatal("missing deputy_leader slot")
	}
	if deputy.Name != "Петров Пётр" || deputy.Affiliation != "" || deputy.Email != "" {
		t.Errorf("deputy_leader = %+v", deputy)
	}

	secretary, ok := leadership["secretary"]
	if !ok {
		t.Fatal("missing secretary slot")
	}
	if secretary.Name != "Сидорова Анна" || secretary.Email != "" {
		t.Errorf("secretary = %+v", secretary)
	}

	// Unrecognized labels become their own slot keyed by the raw text.
	other, ok := leadership["Программный комитет"]
	if !ok {
		t.Fatalf("missing raw-label slot, leadership = %+v", leadership)
	}
	if other.Name != "Кузнецова Ольга" {
		t.Errorf("raw-label slot = %+v", other)
	}
}

func TestExtractLeadershipLastWriterWinsPerSlot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	testsupport.AddEvent(t, db, 1, "Конференция", "2024-05-10 06:00:00", "2024-05-10 15:00:00")
	testsupport.AddLeadershipRole(t, db, 20, 1, "Секретарь", 200, "Анна", "Первая", "", "")
	testsupport.AddLeadershipRole(t, db, 21, 1, "Секретарь семинара", 201, "Мария", "Вторая", "", "")

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	leadership := doc.Conferences[0].Leadership
	if len(leadership) != 1 {
		t.Fatalf("expected one slot, got %+v", leadership)
	}
	// Rows are processed in ascending role id order, so the later role wins.
	if got := leadership["secretary"].Name; got != "Вторая Мария" {
		t.Errorf("secretary = %q, want %q", got, "Вторая Мария")
	}
}

func TestExtractSessionNumberingFollowsStartOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	testsupport.AddEvent(t, db, 1, "Конференция", "2024-05-10 06:00:00", "2024-05-12 15:00:00")
	// Inserted out of chronological order; numbering must follow start time.
	testsupport.AddSessionBlock(t, db, 31, 1, "Секция Б", "2024-05-11 06:00:00", 7200)
	testsupport.AddSessionBlock(t, db, 30, 1, "Секция А", "2024-05-10 06:00:00", 10800)
	testsupport.AddSessionBlock(t, db, 32, 1, "Секция В", "2024-05-12 06:00:00", 3600)

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	sessions := doc.Conferences[0].Sessions
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}

	wantTitles := []string{"Секция А", "Секция Б", "Секция В"}
	for i, sess := range sessions {
		if sess.Number != strconv.Itoa(i+1) {
			t.Errorf("session %d number = %q", i, sess.Number)
		}
		if sess.Title != wantTitles[i] {
			t.Errorf("session %d title = %q, want %q", i, sess.Title, wantTitles[i])
		}
	}
	if sessions[0].Duration != "3:00:00" {
		t.Errorf("duration = %q, want 3:00:00", sessions[0].Duration)
	}
	if sessions[0].Date != "10 мая" || sessions[0].StartTime != "09:00" {
		t.Errorf("session schedule = %q %q", sessions[0].Date, sessions[0].StartTime)
	}
}

func TestExtractSessionRoomSuffix(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	testsupport.Exec(t, db, `INSERT INTO events (id, title, start_dt, end_dt, room_name, timezone, is_deleted)
        VALUES (1, 'Конференция', '2024-05-10 06:00:00', '2024-05-10 15:00:00', 'ауд. 5', 'Europe/Moscow', 0)`)
	testsupport.AddSessionBlock(t, db, 40, 1, "Секция", "2024-05-10 06:00:00", 3600)

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := doc.Conferences[0].Sessions[0].RoomName; got != "ауд. 5 БМ." {
		t.Errorf("session room = %q, want %q", got, "ауд. 5 БМ.")
	}
	// Conference-level room carries no suffix.
	if got := doc.Conferences[0].RoomName; got != "ауд. 5" {
		t.Errorf("conference room = %q, want %q", got, "ауд. 5")
	}
}

func TestExtractReviewStates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	testsupport.AddEvent(t, db, 1, "Конференция", "2024-05-10 06:00:00", "2024-05-10 15:00:00")
	testsupport.AddSessionBlock(t, db, 50, 1, "Секция", "2024-05-10 06:00:00", 10800)
	testsupport.AddContribution(t, db, 500, 1, 50, "Принятый доклад", "2024-05-10 06:10:00", 1200, 900, "Иван", "Иванов", "")
	testsupport.AddContribution(t, db, 501, 1, 50, "Без рецензии", "2024-05-10 06:30:00", 1200, 901, "Пётр", "Петров", "")
	testsupport.AddContribution(t, db, 502, 1, 50, "Неизвестный код", "2024-05-10 06:50:00", 1200, 902, "Анна", "Сидорова", "")
	testsupport.AddRevision(t, db, 500, 2)
	testsupport.AddRevision(t, db, 502, 99)

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	contribs := doc.Conferences[0].Sessions[0].Contributions
	if len(contribs) != 3 {
		t.Fatalf("expected 3 contributions, got %d", len(contribs))
	}
	want := []string{"accepted", "not submitted", "unknown"}
	for i, c := range contribs {
		if c.ReviewState != want[i] {
			t.Errorf("contribution %d review_state = %q, want %q", i, c.ReviewState, want[i])
		}
	}
}

func TestExtractContributionSpeaker(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	testsupport.AddEvent(t, db, 1, "Конференция", "2024-05-10 06:00:00", "2024-05-10 15:00:00")
	testsupport.AddSessionBlock(t, db, 60, 1, "Секция", "2024-05-10 06:00:00", 10800)
	testsupport.AddContribution(t, db, 600, 1, 60, "Доклад", "2024-05-10 06:10:00", 1500, 910, "Иван", "Иванов", "Каф. X")

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	contrib := doc.Conferences[0].Sessions[0].Contributions[0]
	if contrib.StartTime != "09:10" {
		t.Errorf("start_time = %q, want 09:10", contrib.StartTime)
	}
	if contrib.Duration != "0:25:00" {
		t.Errorf("duration = %q, want 0:25:00", contrib.Duration)
	}
	want := conference.Speaker{FirstName: "Иван", LastName: "Иванов", FullName: "Иванов Иван", Affiliation: "Каф. X"}
	if contrib.Speaker != want {
		t.Errorf("speaker = %+v, want %+v", contrib.Speaker, want)
	}
}

func TestExtractDuplicatesContributionPerSpeakerLink(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	testsupport.AddEvent(t, db, 1, "Конференция", "2024-05-10 06:00:00", "2024-05-10 15:00:00")
	testsupport.AddSessionBlock(t, db, 70, 1, "Секция", "2024-05-10 06:00:00", 10800)
	testsupport.AddContribution(t, db, 700, 1, 70, "Совместный доклад", "2024-05-10 06:10:00", 1200, 920, "Иван", "Иванов", "")
	testsupport.AddSpeakerLink(t, db, 700, 921, "Пётр", "Петров", "")
	// Non-speaker links are excluded entirely.
	testsupport.Exec(t, db, `INSERT OR IGNORE INTO persons (id, first_name, last_name) VALUES (922, 'Ольга', 'Кузнецова')`)
	testsupport.Exec(t, db, `INSERT INTO contribution_person_links (contribution_id, person_id, is_speaker) VALUES (700, 922, 0)`)

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	contribs := doc.Conferences[0].Sessions[0].Contributions
	if len(contribs) != 2 {
		t.Fatalf("expected one entry per speaker link, got %d", len(contribs))
	}
	names := map[string]bool{}
	for _, c := range contribs {
		if c.ID != 700 || c.Title != "Совместный доклад" {
			t.Errorf("duplicated entry should share id and title: %+v", c)
		}
		names[c.Speaker.FullName] = true
	}
	if !names["Иванов Иван"] || !names["Петров Пётр"] {
		t.Errorf("speakers = %v", names)
	}
}

func TestExtractMergesSessionsSharingTitle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	testsupport.AddEvent(t, db, 1, "Конференция", "2024-05-10 06:00:00", "2024-05-11 15:00:00")
	testsupport.AddSessionBlock(t, db, 80, 1, "Пленарное заседание", "2024-05-10 06:00:00", 7200)
	testsupport.AddSessionBlock(t, db, 81, 1, "Пленарное заседание", "2024-05-11 06:00:00", 7200)
	testsupport.AddContribution(t, db, 800, 1, 80, "Первый доклад", "2024-05-10 06:10:00", 1200, 930, "Иван", "Иванов", "")
	testsupport.AddContribution(t, db, 801, 1, 81, "Второй доклад", "2024-05-11 06:10:00", 1200, 931, "Пётр", "Петров", "")

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	sessions := doc.Conferences[0].Sessions
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	// Contributions resolve by session title, so both blocks see both talks.
	for i, sess := range sessions {
		if len(sess.Contributions) != 2 {
			t.Errorf("session %d has %d contributions, want 2", i, len(sess.Contributions))
			continue
		}
		if sess.Contributions[0].Title != "Первый доклад" || sess.Contributions[1].Title != "Второй доклад" {
			t.Errorf("session %d contributions out of order: %+v", i, sess.Contributions)
		}
	}
}

func TestExtractEndToEndScenario(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.NewSourceDB(t, cfg)

	testsupport.AddEvent(t, db, 1, "Conf A", "2024-05-10 06:00:00", "2024-05-10 15:00:00")
	testsupport.AddLeadershipRole(t, db, 1, 1, "Научный руководитель", 1, "Ivan", "Ivanov", "Dept X", "")
	testsupport.AddSessionBlock(t, db, 1, 1, "Track 1", "2024-05-10 09:00:00", 10800)
	testsupport.AddContribution(t, db, 1, 1, 1, "Talk 1", "2024-05-10 09:10:00", 1200, 1, "Anna", "Petrova", "Dept Y")
	testsupport.AddContribution(t, db, 2, 1, 1, "Talk 2", "2024-05-10 09:40:00", 1200, 2, "Boris", "Sidorov", "")
	testsupport.AddRevision(t, db, 1, 2)

	store := testsupport.MustOpenStore(t, cfg)
	doc, err := store.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(doc.Conferences) != 1 {
		t.Fatalf("expected 1 conference, got %d", len(doc.Conferences))
	}
	conf := doc.Conferences[0]
	if conf.Title != "Conf A" {
		t.Errorf("title = %q", conf.Title)
	}

	leader := conf.Leadership["scientific_leader"]
	if leader.Name != "Ivanov Ivan" || leader.Affiliation != "Dept X" || leader.Email != "" {
		t.Errorf("scientific_leader = %+v", leader)
	}

	if len(conf.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(conf.Sessions))
	}
	sess := conf.Sessions[0]
	if sess.Number != "1" {
		t.Errorf("session number = %q, want \"1\"", sess.Number)
	}
	if len(sess.Contributions) != 2 {
		t.Fatalf("expected 2 contributions, got %d", len(sess.Contributions))
	}
	if sess.Contributions[0].ReviewState != "accepted" || sess.Contributions[1].ReviewState != "not submitted" {
		t.Errorf("review states = %q, %q", sess.Contributions[0].ReviewState, sess.Contributions[1].ReviewState)
	}

	// The persisted form reloads identically.
	path := cfg.DocumentPath()
	if err := document.Write(path, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	loaded, err := document.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(doc, loaded) {
		t.Fatalf("round trip mismatch:\nextracted %#v\nreloaded  %#v", doc, loaded)
	}
}
