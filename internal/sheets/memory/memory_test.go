package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"ledger/internal/core"
)

func TestAppendAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.Append(ctx, core.Input{Amount: core.Money{Cents: 1200}, Category: "Food", Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := s.Append(ctx, core.Input{Amount: core.Money{Cents: 300}, Category: "Rent"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, got %d twice", first.ID)
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[0].ID != second.ID {
		t.Fatalf("expected newest first, got %v", records)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), core.Input{Amount: core.Money{Cents: 0}, Category: "Food"}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := s.Append(context.Background(), core.Input{Amount: core.Money{Cents: 100}}); !errors.Is(err, core.ErrMissingCategory) {
		t.Fatalf("expected ErrMissingCategory, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	s := New()
	ctx := context.Background()
	rec, _ := s.Append(ctx, core.Input{Amount: core.Money{Cents: 100}, Category: "Food"})

	updated, err := s.Update(ctx, rec.ID, core.Input{Amount: core.Money{Cents: 250}, Category: "Rent", Note: "edited"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount.Cents != 250 || updated.Category != "Rent" || updated.Note != "edited" {
		t.Fatalf("unexpected updated record %+v", updated)
	}

	if _, err := s.Update(ctx, 999, core.Input{Amount: core.Money{Cents: 1}, Category: "X"}); !errors.Is(err, core.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	rec, _ := s.Append(ctx, core.Input{Amount: core.Money{Cents: 100}, Category: "Food"})

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	records, _ := s.List(ctx)
	if len(records) != 0 {
		t.Fatalf("expected empty store, got %v", records)
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, core.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, c := range []string{"Rent", "Food", "Food", "Travel"} {
		if _, err := s.Append(ctx, core.Input{Amount: core.Money{Cents: 100}, Category: c}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	got, err := s.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	want := []string{"Food", "Rent", "Travel"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
