package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilderTriggers(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().
		TriggerRecordCreated(7).
		TriggerFormReset().
		TriggerDashboardRefresh().
		TriggerSuccessNotification("saved").
		Write(rr)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	raw := rr.Header().Get("HX-Trigger")
	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v (%q)", err, raw)
	}
	for _, name := range []string{"record:created", "form:reset", "dashboard:refresh", "show-notification"} {
		if _, ok := triggers[name]; !ok {
			t.Fatalf("missing trigger %q in %q", name, raw)
		}
	}

	var created map[string]int64
	if err := json.Unmarshal(triggers["record:created"], &created); err != nil {
		t.Fatalf("record:created payload: %v", err)
	}
	if created["id"] != 7 {
		t.Fatalf("record:created id = %d, want 7", created["id"])
	}
}

func TestHTMXResponseBuilderNoTriggers(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().BodyString("ok").Write(rr)

	if got := rr.Header().Get("HX-Trigger"); got != "" {
		t.Fatalf("unexpected HX-Trigger header: %q", got)
	}
	if rr.Body.String() != "ok" {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestHTMXResponseBuilderBodyHTML(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().Status(http.StatusCreated).BodyHTML("<div>x</div>").Write(rr)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", got)
	}
}

func TestErrorResponsesEscapeHTML(t *testing.T) {
	rr := httptest.NewRecorder()
	BadRequestError(`<script>alert("x")</script>`).Write(rr)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<script>") {
		t.Fatalf("error message was not escaped: %s", body)
	}
	if !strings.Contains(body, `class="error"`) {
		t.Fatalf("expected error div: %s", body)
	}
}

func TestErrorResponseStatusHelpers(t *testing.T) {
	tests := []struct {
		build *HTMXResponseBuilder
		want  int
	}{
		{UnprocessableEntityError("x"), http.StatusUnprocessableEntity},
		{InternalServerError("x"), http.StatusInternalServerError},
		{NotFoundError("x"), http.StatusNotFound},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		tt.build.Write(rr)
		if rr.Code != tt.want {
			t.Fatalf("status = %d, want %d", rr.Code, tt.want)
		}
	}
}

func TestMethodNotAllowedError(t *testing.T) {
	rr := httptest.NewRecorder()
	MethodNotAllowedError("POST, PUT").Write(rr)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
	if got := rr.Header().Get("Allow"); got != "POST, PUT" {
		t.Fatalf("Allow = %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{5, "0.05"},
		{0, "0.00"},
		{-150, "-1.50"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.cents); got != tt.want {
			t.Fatalf("formatAmount(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestFormatShare(t *testing.T) {
	if got := formatShare(33.3); got != "33.3%" {
		t.Fatalf("formatShare = %q", got)
	}
	if got := formatShare(0); got != "0.0%" {
		t.Fatalf("formatShare zero = %q", got)
	}
}
