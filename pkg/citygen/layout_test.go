package citygen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
)

func TestParseLayoutStripsMarkdownFences(t *testing.T) {
	text := "```json\n[{\"type\": \"park\", \"x\": 1, \"y\": 2}]\n```"
	got, report, err := ParseLayout(text, catalog.Default())
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if len(got) != 1 || got[0] != (Placement{Type: "park", X: 1, Y: 2}) {
		t.Errorf("placements = %+v", got)
	}
	if len(report.Errors) != 0 {
		t.Errorf("unexpected errors: %s", report.Summary)
	}
}

func TestParseLayoutNonArrayIsHardError(t *testing.T) {
	if _, _, err := ParseLayout(`{"type": "park"}`, nil); err == nil {
		t.Error("object at the top level should fail")
	}
	if _, _, err := ParseLayout("not json at all", nil); err == nil {
		t.Error("non-JSON text should fail")
	}
}

func TestParseLayoutDropsBadEntriesAndKeepsRest(t *testing.T) {
	text := `[
		{"type": "park", "x": 0, "y": 0},
		{"x": 1, "y": 1},
		{"type": "road", "x": 99, "y": 0},
		{"type": "hoverport", "x": 2, "y": 2},
		{"type": "road", "x": 3, "y": 3}
	]`
	got, report, err := ParseLayout(text, catalog.Default())
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("placements = %d, want 2 survivors", len(got))
	}
	if len(report.Errors) != 2 {
		t.Errorf("errors = %d, want 2 (missing type, out of bounds)", len(report.Errors))
	}
	if len(report.Warnings) != 1 {
		t.Errorf("warnings = %d, want 1 (unknown building)", len(report.Warnings))
	}
}

func TestParseLayoutReportsEmptyCells(t *testing.T) {
	_, report, err := ParseLayout(`[{"type": "park", "x": 0, "y": 0}]`, catalog.Default())
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if len(report.Info) != 1 {
		t.Fatalf("info = %d, want 1 coverage note", len(report.Info))
	}
	if got := report.Info[0].ActualValue; got != 99 {
		t.Errorf("empty cells = %v, want 99", got)
	}
}

func TestFoldSkipsCollisions(t *testing.T) {
	cat := catalog.Default()
	placements := []Placement{
		{Type: "park", X: 0, Y: 0},
		{Type: "road", X: 0, Y: 0},
		{Type: "retail-store", X: 5, Y: 5},
	}
	g := Fold(placements, cat)

	if g.Size != GridSize {
		t.Errorf("grid size = %d, want %d", g.Size, GridSize)
	}
	if got := g.At(0, 0).Building; got == nil || got.ID != "park" {
		t.Error("first placement should win the cell")
	}
	if got := g.At(5, 5).Building; got == nil || got.ID != "retail-store" {
		t.Error("non-colliding placement should land")
	}
}

func TestClientDisabledWithoutKey(t *testing.T) {
	if NewClient("") != nil {
		t.Error("empty key should disable the client")
	}
	var c *Client
	if c.Enabled() {
		t.Error("nil client should report disabled")
	}
}

func TestGenerateParsesCandidateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query")
		}
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "[{\"type\": \"park\", \"x\": 0, \"y\": 0}]"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.apiURL = srv.URL
	c.httpClient = srv.Client()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	text, err := c.Generate(ctx, "a leafy town")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, _, err := ParseLayout(text, catalog.Default())
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if len(got) != 1 || got[0].Type != "park" {
		t.Errorf("placements = %+v", got)
	}
}

func TestGenerateSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.apiURL = srv.URL
	c.httpClient = srv.Client()

	if _, err := c.Generate(context.Background(), "anything"); err == nil {
		t.Error("non-200 status should return an error")
	}
}
