package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"ledger/internal/core"
)

func TestParseSelectionParams(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantWindow   core.Window
		wantCategory string
	}{
		{"defaults", "", core.WindowAll, ""},
		{"week", "window=week", core.WindowWeek, ""},
		{"month with category", "window=month&category=Food", core.WindowMonth, "Food"},
		{"unknown window falls back", "window=yearly", core.WindowAll, ""},
		{"category trimmed", "category=%20Food%20", core.WindowAll, "Food"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			got := ParseSelectionParams(q)
			if got.Window != tt.wantWindow {
				t.Fatalf("window = %q, want %q", got.Window, tt.wantWindow)
			}
			if got.Category != tt.wantCategory {
				t.Fatalf("category = %q, want %q", got.Category, tt.wantCategory)
			}
		})
	}
}

func TestSelectionParamsCacheKey(t *testing.T) {
	p := SelectionParams{Window: core.WindowWeek, Category: "Food"}
	if got := p.CacheKey(); got != "week|Food" {
		t.Fatalf("cache key = %q", got)
	}
}

func TestRequestBodyParserJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/records/delete", strings.NewReader(`{"id": 42, "note": "x"}`))
	req.Header.Set("Content-Type", "application/json")

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !p.IsJSON() {
		t.Fatalf("expected JSON body")
	}
	if got := p.Get("id"); got != "42" {
		t.Fatalf("id = %q, want 42", got)
	}
	if got := p.Get("missing"); got != "" {
		t.Fatalf("missing key = %q, want empty", got)
	}
}

func TestRequestBodyParserForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/records/delete", strings.NewReader("id=7&category=Food"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.IsJSON() {
		t.Fatalf("expected form body")
	}
	if got := p.Get("id"); got != "7" {
		t.Fatalf("id = %q, want 7", got)
	}
	if got := p.Get("category"); got != "Food" {
		t.Fatalf("category = %q, want Food", got)
	}
}

func TestRequestBodyParserEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/records/delete", strings.NewReader(""))

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := p.Get("id"); got != "" {
		t.Fatalf("id = %q, want empty", got)
	}
}

func TestRequestBodyParserInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/records/delete", strings.NewReader(`{"id":`))

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err == nil {
		t.Fatalf("expected parse error for truncated JSON")
	}
}

func TestRequireMethod(t *testing.T) {
	post := httptest.NewRequest(http.MethodPost, "/records", nil)
	if resp := RequirePOST(post); resp != nil {
		t.Fatalf("POST should pass RequirePOST")
	}

	get := httptest.NewRequest(http.MethodGet, "/records", nil)
	resp := RequirePOST(get)
	if resp == nil {
		t.Fatalf("GET should fail RequirePOST")
	}
	rr := httptest.NewRecorder()
	resp.Write(rr)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
	if got := rr.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("Allow = %q", got)
	}

	del := httptest.NewRequest(http.MethodDelete, "/records/delete", nil)
	if resp := RequireDeleteOrPOST(del); resp != nil {
		t.Fatalf("DELETE should pass RequireDeleteOrPOST")
	}
}

func TestParseRecordID(t *testing.T) {
	if id, ok := parseRecordID("42"); !ok || id != 42 {
		t.Fatalf("parseRecordID(42) = %d, %v", id, ok)
	}
	for _, raw := range []string{"", "abc", "0", "-1"} {
		if _, ok := parseRecordID(raw); ok {
			t.Fatalf("parseRecordID(%q) should fail", raw)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  hello\x00world  "); got != "helloworld" {
		t.Fatalf("sanitizeInput = %q", got)
	}
	if got := sanitizeInput("line1\nline2"); got != "line1\nline2" {
		t.Fatalf("newlines should survive: %q", got)
	}
}
