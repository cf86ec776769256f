package core

import "time"

// CategoryAll is the category selector meaning "no category filter".
const CategoryAll = "all"

// Filter derives the visible subset of records for a time window and an
// optional category selector. The time filter runs first, then the category
// filter; input order is preserved. Both filters are pure, so the result is
// recomputed in full on every call.
//
// A category of "" or CategoryAll passes every record; anything else must
// match the record category exactly (case-sensitive).
func Filter(records []Record, w Window, category string, now time.Time) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !InWindow(r.Date, w, now) {
			continue
		}
		if !matchesCategory(r, category) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesCategory(r Record, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return r.Category == category
}
