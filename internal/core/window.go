package core

import "time"

// Window selects which records are eligible based on their date relative to
// a reference "now".
type Window string

const (
	WindowAll   Window = "all"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// ParseWindow maps a raw selector to a Window, defaulting to WindowAll for
// anything unrecognized.
func ParseWindow(s string) Window {
	switch Window(s) {
	case WindowWeek:
		return WindowWeek
	case WindowMonth:
		return WindowMonth
	default:
		return WindowAll
	}
}

// IsValid returns true if the window is one of the known selectors.
func (w Window) IsValid() bool {
	switch w {
	case WindowAll, WindowWeek, WindowMonth:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (w Window) String() string {
	return string(w)
}

// InWindow reports whether a record dated dateISO belongs to the window
// relative to now. Comparisons are calendar-date only, in UTC, so a record's
// membership never flips within a single day because of time-of-day.
//
// Week is a trailing 7-day window including today, enforced as a lower bound
// only: future-dated records pass. Month matches the calendar month of now.
// Records with an absent or unparseable date belong to WindowAll only.
func InWindow(dateISO string, w Window, now time.Time) bool {
	if w == WindowAll {
		return true
	}
	t, err := time.Parse(DateFormat, dateISO)
	if err != nil {
		return false
	}
	day := calendarDay(t)
	switch w {
	case WindowWeek:
		cutoff := calendarDay(now).AddDate(0, 0, -6)
		return !day.Before(cutoff)
	case WindowMonth:
		return day.Year() == now.Year() && day.Month() == now.Month()
	default:
		return false
	}
}

// calendarDay truncates t to midnight UTC of its calendar date.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
