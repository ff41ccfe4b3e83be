package domain

import "encoding/json"

// Filter is a set of metadata equality constraints scoped to book metadata
// (e.g. title or genre). The retrieval core forwards it verbatim to the
// candidate oracle and does not interpret its semantics.
type Filter map[string]string

// IsEmpty reports whether the filter constrains nothing. A nil filter and an
// empty filter are equivalent everywhere in the core.
func (f Filter) IsEmpty() bool {
	return len(f) == 0
}

// Canonical returns a deterministic serialization of the filter. JSON gives
// sorted keys and quoted, escaped values, so distinct filters can never
// serialize to the same bytes. An absent or empty filter serializes to the
// fixed token "{}" so that "no filter" and "empty filter" match.
func (f Filter) Canonical() string {
	if len(f) == 0 {
		return "{}"
	}

	// marshal of map[string]string cannot fail
	data, _ := json.Marshal(map[string]string(f))
	return string(data)
}
