// Package conference defines the hierarchical data model produced by
// extraction and consumed by the report generators.
//
// The JSON field names and nesting are a binding contract with the rendering
// stage: the document generators reload the persisted form and address fields
// by these exact names. Changing a tag here breaks every downstream layout.
package conference
