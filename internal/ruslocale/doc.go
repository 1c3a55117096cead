// Package ruslocale renders civil dates and times in the locale used by the
// generated conference documents.
//
// The Formatter assumes its inputs were already converted to the target
// timezone by the extraction layer; it performs no timezone math of its own.
// Month tables are keyed by locale tag so additional locales can be added
// without touching call sites.
package ruslocale
