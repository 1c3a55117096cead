package ruslocale

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
)

// Russian month names in the genitive case, as they appear after a day number.
var russianMonths = map[time.Month]string{
	time.January:   "января",
	time.February:  "февраля",
	time.March:     "марта",
	time.April:     "апреля",
	time.May:       "мая",
	time.June:      "июня",
	time.July:      "июля",
	time.August:    "августа",
	time.September: "сентября",
	time.October:   "октября",
	time.November:  "ноября",
	time.December:  "декабря",
}

var monthTables = map[language.Tag]map[time.Month]string{
	language.Russian: russianMonths,
}

var supported = []language.Tag{language.Russian}

var matcher = language.NewMatcher(supported)

// Formatter renders dates for one target locale.
type Formatter struct {
	tag    language.Tag
	months map[time.Month]string
}

// New builds a Formatter for the given BCP 47 locale string, e.g. "ru".
// Regional variants fold to their base language; an unsupported locale is an
// error so misconfiguration surfaces at startup rather than in output.
func New(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}
	// Matcher may return an extended tag; key the table by the canonical base.
	base, _ := matched.Base()
	canonical := language.MustParse(base.String())
	months, ok := monthTables[canonical]
	if !ok {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}
	return &Formatter{tag: canonical, months: months}, nil
}

// DayMonth renders the day of month without a leading zero followed by the
// full month name, e.g. "9 мая". A missing month entry is a broken table,
// not a runtime condition.
func (f *Formatter) DayMonth(t time.Time) string {
	name, ok := f.months[t.Month()]
	if !ok {
		panic(fmt.Sprintf("ruslocale: no %s month name for %v", f.tag, t.Month()))
	}
	return strconv.Itoa(t.Day()) + " " + name
}

// Clock renders the time of day as 24-hour HH:MM.
func (f *Formatter) Clock(t time.Time) string {
	return t.Format("15:04")
}
