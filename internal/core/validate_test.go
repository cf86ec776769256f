package core

import (
	"errors"
	"testing"
)

func TestValidateInputAmount(t *testing.T) {
	bads := []string{"", "0", "-1", "-0.5", "abc", "1.2.3"}
	for _, raw := range bads {
		if _, err := ValidateInput(raw, "Food", "", ""); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %q expected ErrInvalidAmount, got %v", raw, err)
		}
	}
}

func TestValidateInputCategory(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		if _, err := ValidateInput("1", raw, "", ""); !errors.Is(err, ErrMissingCategory) {
			t.Fatalf("category %q expected ErrMissingCategory, got %v", raw, err)
		}
	}
}

func TestValidateInputNormalizes(t *testing.T) {
	in, err := ValidateInput("12.5", "Food", "", "2024-03-01")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if in.Amount.Cents != 1250 {
		t.Fatalf("expected 1250 cents, got %d", in.Amount.Cents)
	}
	if in.Category != "Food" {
		t.Fatalf("expected Food, got %q", in.Category)
	}
	if in.Note != "" {
		t.Fatalf("expected absent note, got %q", in.Note)
	}
	if in.Date != "2024-03-01" {
		t.Fatalf("expected 2024-03-01, got %q", in.Date)
	}
}

func TestValidateInputTrimsNote(t *testing.T) {
	in, err := ValidateInput("1", " Food ", "  lunch  ", "")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if in.Category != "Food" || in.Note != "lunch" {
		t.Fatalf("expected trimmed fields, got %q / %q", in.Category, in.Note)
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"", ""},
		{"   ", ""},
		{"2024-03-01", "2024-03-01"},
		{"2024-3-1", "2024-03-01"},
		{"2024-03-01T10:30:00Z", "2024-03-01"},
		{"15/04/2024", "2024-04-15"},
		{"Jan 2, 2024", "2024-01-02"},
		// Unparseable dates silently degrade to absent.
		{"not-a-date", ""},
		{"2024/13/45", ""},
	}
	for _, tc := range cases {
		if got := NormalizeDate(tc.in); got != tc.out {
			t.Fatalf("NormalizeDate(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestValidateInputLenientDate(t *testing.T) {
	in, err := ValidateInput("12.5", "Food", "", "not-a-date")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if in.Date != "" {
		t.Fatalf("expected absent date, got %q", in.Date)
	}
}
