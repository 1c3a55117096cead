// Package extract reads the event-management database snapshot and folds its
// flat relational rows into the nested conference model.
//
// Extraction runs in three query tiers per conference: leadership roles,
// session blocks, and per-session contributions. Rows arrive pre-ordered by
// the queries (events by id, roles by role id, everything scheduled by start
// time) and the assembler trusts that order for session numbering. Deleted
// events are excluded at the top tier, so nothing below ever sees them.
//
// The Store is read-only against the source database. Any query failure
// aborts the whole extraction with an error naming the failing tier; there
// are no partial results.
package extract
