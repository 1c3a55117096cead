// Package review maps paper-reviewing revision state codes to the labels
// embedded in the conference document.
package review

// Labels for the fixed set of reviewing states.
const (
	NotSubmitted  = "not submitted"
	Submitted     = "submitted"
	Accepted      = "accepted"
	Rejected      = "rejected"
	ToBeCorrected = "to be corrected"
	Unknown       = "unknown"
)

var labels = map[int64]string{
	0: NotSubmitted,
	1: Submitted,
	2: Accepted,
	3: Rejected,
	4: ToBeCorrected,
}

// Label resolves a revision state code. Contributions without a revision row
// carry code 0 upstream, so the absent case resolves to "not submitted";
// codes outside the known set resolve to "unknown" rather than failing.
func Label(code int64) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return Unknown
}
