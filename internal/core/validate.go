package core

import (
	"regexp"
	"strings"
	"time"
)

// DateFormat is the canonical on-record date representation.
const DateFormat = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// genericDateLayouts are tried, in order, for raw dates that are not already
// in canonical form. Matches are reformatted to DateFormat in UTC.
var genericDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-1-2",
	"02/01/2006",
	"2/1/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ValidateInput normalizes raw user input into a storage-ready Input.
//
// Amount and category are the only hard failures (ErrInvalidAmount,
// ErrMissingCategory). The note is trimmed, with blank normalized to absent.
// The date is lenient: blank stays absent, a literal YYYY-MM-DD value is
// accepted as-is, anything else is parsed as a generic date and reformatted,
// and an unparseable date silently degrades to absent so it never blocks
// recording an expense.
func ValidateInput(rawAmount, rawCategory, rawNote, rawDate string) (Input, error) {
	cents, err := ParseDecimalToCents(rawAmount)
	if err != nil {
		return Input{}, ErrInvalidAmount
	}

	category := strings.TrimSpace(rawCategory)
	if category == "" {
		return Input{}, ErrMissingCategory
	}

	return Input{
		Amount:   Money{Cents: cents},
		Category: category,
		Note:     strings.TrimSpace(rawNote),
		Date:     NormalizeDate(rawDate),
	}, nil
}

// NormalizeDate reduces a raw date string to canonical YYYY-MM-DD or "".
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if isoDatePattern.MatchString(raw) {
		return raw
	}
	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(DateFormat)
		}
	}
	// Deliberate leniency: a malformed date is treated as absent.
	return ""
}
