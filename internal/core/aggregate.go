package core

import (
	"math"
	"sort"
)

// CategoryAmount is an amount aggregated under a category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Total sums the amounts of a subset. Zero-valued amounts contribute
// nothing; the sum over an empty subset is zero.
func Total(records []Record) Money {
	var cents int64
	for _, r := range records {
		cents += r.Amount.Cents
	}
	return Money{Cents: cents}
}

// TotalsByCategory groups a subset by category and sums amounts per group.
// Records without a category fall under the literal OtherCategory bucket.
func TotalsByCategory(records []Record) map[string]Money {
	totals := make(map[string]Money, len(records))
	for _, r := range records {
		name := r.Category
		if name == "" {
			name = OtherCategory
		}
		totals[name] = Money{Cents: totals[name].Cents + r.Amount.Cents}
	}
	return totals
}

// PercentageShares computes each category's share of the grand total as a
// percentage rounded to one decimal place. When the grand total is zero,
// every share is zero.
func PercentageShares(totals map[string]Money) map[string]float64 {
	var grand int64
	for _, m := range totals {
		grand += m.Cents
	}
	shares := make(map[string]float64, len(totals))
	for name, m := range totals {
		if grand == 0 {
			shares[name] = 0
			continue
		}
		pct := 100 * float64(m.Cents) / float64(grand)
		shares[name] = math.Round(pct*10) / 10
	}
	return shares
}

// SortedCategories flattens a category-total mapping into a slice ordered by
// descending amount, ties broken by name so rendering stays deterministic.
func SortedCategories(totals map[string]Money) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}
