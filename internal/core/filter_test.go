package core

import (
	"reflect"
	"testing"
)

func testRecords() []Record {
	return []Record{
		{ID: 5, Amount: Money{Cents: 1000}, Category: "Food", Date: "2024-03-14"},
		{ID: 4, Amount: Money{Cents: 500}, Category: "Food", Date: "2024-03-01"},
		{ID: 3, Amount: Money{Cents: 300}, Category: "Rent", Date: "2024-03-10"},
		{ID: 2, Amount: Money{Cents: 200}, Category: "Food", Date: "2024-02-20"},
		{ID: 1, Amount: Money{Cents: 100}, Category: "Travel", Date: ""},
	}
}

func ids(records []Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilterWindows(t *testing.T) {
	records := testRecords()
	cases := []struct {
		name     string
		window   Window
		category string
		want     []int64
	}{
		{"all", WindowAll, "", []int64{5, 4, 3, 2, 1}},
		{"week", WindowWeek, "", []int64{5, 3}},
		{"month", WindowMonth, "", []int64{5, 4, 3}},
		{"all food", WindowAll, "Food", []int64{5, 4, 2}},
		{"week food", WindowWeek, "Food", []int64{5}},
		{"category all passthrough", WindowMonth, "all", []int64{5, 4, 3}},
		{"unknown category", WindowAll, "Gadgets", []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(records, tc.window, tc.category, testNow))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterCaseSensitiveCategory(t *testing.T) {
	records := testRecords()
	if got := Filter(records, WindowAll, "food", testNow); len(got) != 0 {
		t.Fatalf("expected case-sensitive match, got %d records", len(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	records := testRecords()
	once := Filter(records, WindowWeek, "Food", testNow)
	twice := Filter(once, WindowWeek, "Food", testNow)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter not idempotent: %v vs %v", once, twice)
	}
}

func TestFiltersCommute(t *testing.T) {
	records := testRecords()
	timeFirst := Filter(Filter(records, WindowWeek, "", testNow), WindowAll, "Food", testNow)
	categoryFirst := Filter(Filter(records, WindowAll, "Food", testNow), WindowWeek, "", testNow)
	if !reflect.DeepEqual(timeFirst, categoryFirst) {
		t.Fatalf("filters do not commute: %v vs %v", timeFirst, categoryFirst)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	records := testRecords()
	got := ids(Filter(records, WindowAll, "Food", testNow))
	want := []int64{5, 4, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order not preserved: %v", got)
	}
}
