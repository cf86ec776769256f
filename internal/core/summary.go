package core

import "time"

// Overview is a compact dashboard summary for a window + category selection.
type Overview struct {
	Window     Window
	Category   string
	Total      Money
	ByCategory []CategoryAmount
	Shares     map[string]float64
	Records    []Record
}

// BuildOverview runs the full derivation pipeline over a stored snapshot:
// filter by window and category, then total, group, and share computation.
func BuildOverview(records []Record, w Window, category string, now time.Time) Overview {
	visible := Filter(records, w, category, now)
	totals := TotalsByCategory(visible)
	return Overview{
		Window:     w,
		Category:   category,
		Total:      Total(visible),
		ByCategory: SortedCategories(totals),
		Shares:     PercentageShares(totals),
		Records:    visible,
	}
}
