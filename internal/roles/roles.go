// Package roles classifies free-text leadership role labels into the
// canonical slots of the conference document.
package roles

import "strings"

// Canonical leadership slot names.
const (
	ScientificLeader = "scientific_leader"
	DeputyLeader     = "deputy_leader"
	Secretary        = "secretary"
)

type rule struct {
	substr string
	slot   string
}

// Evaluated in order; the first matching rule wins. A label containing
// several patterns therefore resolves to the earliest entry here.
var rules = []rule{
	{"Научный руководитель", ScientificLeader},
	{"Зам", DeputyLeader},
	{"Секретарь", Secretary},
}

// Slot maps a role label to its canonical slot name. Labels matching no rule
// become their own slot, keyed by the raw label text.
func Slot(label string) string {
	for _, r := range rules {
		if strings.Contains(label, r.substr) {
			return r.slot
		}
	}
	return label
}
