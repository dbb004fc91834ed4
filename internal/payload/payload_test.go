package payload

import (
	"testing"
	"time"
)

func TestSanitizeFormatsTimes(t *testing.T) {
	at := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	got := Sanitize(at)
	if got != "2026-08-26T12:00:00Z" {
		t.Fatalf("expected RFC 3339 string, got %v", got)
	}

	got = Sanitize(&at)
	if got != "2026-08-26T12:00:00Z" {
		t.Fatalf("expected RFC 3339 string for pointer, got %v", got)
	}

	var missing *time.Time
	if got := Sanitize(missing); got != nil {
		t.Fatalf("expected nil for nil time pointer, got %v", got)
	}
}

func TestSanitizeKeepsEncodableValues(t *testing.T) {
	for _, value := range []any{nil, "ata", 42, 2.5, true, map[string]any{"a": 1}, []any{1, 2}} {
		got := Sanitize(value)
		switch value.(type) {
		case map[string]any, []any:
			if got == nil {
				t.Fatalf("expected container to survive, got nil")
			}
		default:
			if got != value {
				t.Fatalf("expected %v to pass through, got %v", value, got)
			}
		}
	}
}

func TestSanitizeFallsBackToPrintedForm(t *testing.T) {
	got := Sanitize(make(chan int))
	if _, ok := got.(string); !ok {
		t.Fatalf("expected printed form for non-encodable value, got %T", got)
	}
}

func TestUnwrapPlainEntries(t *testing.T) {
	values, units := Unwrap(map[string]any{"site": "ata", "count": 3})
	if len(units) != 0 {
		t.Fatalf("expected no units, got %v", units)
	}
	if values["site"] != "ata" || values["count"] != 3 {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestUnwrapWrapperForms(t *testing.T) {
	values, units := Unwrap(map[string]any{
		"exposure": map[string]any{"value": 30, "unit": "s"},
		"cadence":  map[string]any{"unit": "min"},
		"depth":    map[string]any{"value": 2},
	})

	if values["exposure"] != 30 {
		t.Fatalf("expected wrapped value, got %v", values["exposure"])
	}
	if units["exposure"] != "s" {
		t.Fatalf("expected unit s, got %q", units["exposure"])
	}

	value, ok := values["cadence"]
	if !ok || value != nil {
		t.Fatalf("expected unit-only entry to hold nil, got %v (ok=%v)", value, ok)
	}
	if units["cadence"] != "min" {
		t.Fatalf("expected unit min, got %q", units["cadence"])
	}

	if values["depth"] != 2 {
		t.Fatalf("expected bare value wrapper, got %v", values["depth"])
	}
	if _, ok := units["depth"]; ok {
		t.Fatal("expected no unit for value-only wrapper")
	}
}

func TestUnwrapSkipsExternalEntries(t *testing.T) {
	values, _ := Unwrap(map[string]any{
		"linked": map[string]any{"__external__": true, "value": 1},
		"kept":   map[string]any{"__external__": false, "value": 2},
	})

	if _, ok := values["linked"]; ok {
		t.Fatal("expected external entry to be skipped")
	}
	if values["kept"] != 2 {
		t.Fatalf("expected non-external entry to survive, got %v", values["kept"])
	}
}

func TestUnwrapKeepsOrdinaryMappings(t *testing.T) {
	mapping := map[string]any{"ra": 1.5, "dec": -0.5}
	values, units := Unwrap(map[string]any{"target": mapping})

	got, ok := values["target"].(map[string]any)
	if !ok {
		t.Fatalf("expected mapping to survive, got %T", values["target"])
	}
	if got["ra"] != 1.5 {
		t.Fatalf("unexpected mapping contents: %v", got)
	}
	if len(units) != 0 {
		t.Fatalf("expected no units, got %v", units)
	}
}
