package google

import (
	"strconv"
	"strings"

	"ledger/internal/core"
)

// parseRow converts a raw sheet row (columns id, date, category, note,
// amount) into a record. Header rows and rows without a usable id or amount
// are skipped.
func parseRow(cols []string) (core.Record, bool) {
	if len(cols) < 5 {
		return core.Record{}, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(cols[0]), 10, 64)
	if err != nil || id <= 0 {
		return core.Record{}, false
	}
	cents, ok := parseAmountToCents(cols[4])
	if !ok || cents <= 0 {
		return core.Record{}, false
	}
	return core.Record{
		ID:       id,
		Amount:   core.Money{Cents: cents},
		Category: strings.TrimSpace(cols[2]),
		Note:     strings.TrimSpace(cols[3]),
		Date:     core.NormalizeDate(cols[1]),
	}, true
}

// parseAmountToCents reads a sheet cell amount, accepting both decimal comma
// and decimal dot, with half-up rounding to cents.
func parseAmountToCents(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	cents := int64((f * 100.0) + 0.5)
	return cents, true
}
