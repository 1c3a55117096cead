package conference

// Document is the top-level persisted artifact.
type Document struct {
	Conferences []Conference `json:"conferences"`
}

// Conference is one non-deleted event with its full nested program.
// Date and time fields are pre-formatted strings in the target locale;
// Timezone carries the source event's timezone label untouched.
type Conference struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	StartDate  string     `json:"start_date"`
	StartTime  string     `json:"start_time"`
	EndDate    string     `json:"end_date"`
	EndTime    string     `json:"end_time"`
	VenueName  string     `json:"venue_name"`
	RoomName   string     `json:"room_name"`
	Address    string     `json:"address"`
	Timezone   string     `json:"timezone"`
	Sessions   []Session  `json:"sessions"`
	Leadership Leadership `json:"leadership"`
}

// Leadership maps canonical slot names (or raw role labels for unrecognized
// roles) to the person holding the role. Carries no ordering.
type Leadership map[string]Person

// Person is a leadership entry. Email is omitted entirely when the person has
// no registered email address.
type Person struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	Email       string `json:"email,omitempty"`
}

// Session is one session block. Number is the 1-based display number assigned
// in order of earliest scheduled start, rendered as a string.
type Session struct {
	ID            int64          `json:"id"`
	Number        string         `json:"number"`
	Title         string         `json:"title"`
	Date          string         `json:"date"`
	StartTime     string         `json:"start_time"`
	Duration      string         `json:"duration"`
	RoomName      string         `json:"room_name"`
	Contributions []Contribution `json:"contributions"`
}

// Contribution is one scheduled talk. A contribution with several speaker
// links appears once per link with the same id and title.
type Contribution struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	StartTime   string  `json:"start_time"`
	Duration    string  `json:"duration"`
	Speaker     Speaker `json:"speaker"`
	ReviewState string  `json:"review_state"`
}

// Speaker is the presenting person, owned by its Contribution.
type Speaker struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Affiliation string `json:"affiliation"`
}

// DisplayName joins a person's names in the "{last} {first}" form used by
// Person.Name and Speaker.FullName.
func DisplayName(lastName, firstName string) string {
	return lastName + " " + firstName
}
