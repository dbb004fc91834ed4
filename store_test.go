package params

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-params/pkg/eventlog"
)

func TestNewDefaults(t *testing.T) {
	s := New()

	if s.Note() != DefaultNote {
		t.Fatalf("expected default note, got %q", s.Note())
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d parameters", s.Len())
	}

	flags := s.Flags().Map()
	if flags[FlagVerbose] != true {
		t.Fatalf("expected verbose by default, got %v", flags[FlagVerbose])
	}
	for _, key := range []string{FlagStrict, FlagRaiseOnUnknown, FlagCheckKind, FlagRaiseOnMismatch} {
		if flags[key] != false {
			t.Fatalf("expected %s off by default, got %v", key, flags[key])
		}
	}
}

func TestNewWithOptions(t *testing.T) {
	capture := &eventlog.Capture{}
	s := New(
		WithNote("observation setup"),
		WithStrict(true),
		WithRaiseOnUnknown(true),
		WithCheckKind(true),
		WithRaiseOnMismatch(true),
		WithVerbose(false),
		WithSink(capture),
	)

	if s.Note() != "observation setup" {
		t.Fatalf("expected custom note, got %q", s.Note())
	}
	flags := s.Flags().Map()
	for _, key := range []string{FlagStrict, FlagRaiseOnUnknown, FlagCheckKind, FlagRaiseOnMismatch} {
		if flags[key] != true {
			t.Fatalf("expected %s on, got %v", key, flags[key])
		}
	}
	if flags[FlagVerbose] != false {
		t.Fatalf("expected verbose off, got %v", flags[FlagVerbose])
	}
}

func TestNewEmptyNoteFallsBack(t *testing.T) {
	s := New(WithNote(""))
	if s.Note() != DefaultNote {
		t.Fatalf("expected default note, got %q", s.Note())
	}
}

func TestWithValuesSeedsThroughAdd(t *testing.T) {
	capture := &eventlog.Capture{}
	s := New(
		WithSink(capture),
		WithValues(P("site", "ata"), P("count", 4)),
	)

	if s.Len() != 2 {
		t.Fatalf("expected 2 parameters, got %d", s.Len())
	}
	if got, _ := s.Get("site"); got != "ata" {
		t.Fatalf("expected ata, got %v", got)
	}

	messages := capture.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected one event per seeded pair, got %v", messages)
	}
	if messages[0] != "Adding parameter 'site' as <string>: ata" {
		t.Fatalf("unexpected seed event: %q", messages[0])
	}
}

func TestNamesKeepInsertionOrder(t *testing.T) {
	s := New(WithVerbose(false))
	s.Add(P("zeta", 1), P("alpha", 2), P("mid", 3))

	want := []string{"zeta", "alpha", "mid"}
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected insertion order %v, got %v", want, got)
	}
}

func TestGetUnknownParameter(t *testing.T) {
	s := New()

	_, err := s.Get("missing")
	if err == nil {
		t.Fatal("expected error for unknown parameter")
	}
	var unknown *UnknownParameterError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownParameterError, got %T", err)
	}
	if unknown.Name != "missing" {
		t.Fatalf("expected name on error, got %q", unknown.Name)
	}
}

func TestGetOrDefault(t *testing.T) {
	s := New(WithVerbose(false))
	s.Add(P("site", "ata"))

	if got := s.GetOr("site", "gbo"); got != "ata" {
		t.Fatalf("expected tracked value, got %v", got)
	}
	if got := s.GetOr("missing", "gbo"); got != "gbo" {
		t.Fatalf("expected default, got %v", got)
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	s := New(WithVerbose(false))
	s.Add(P("grid", map[string]any{"rows": 3}))

	value, ok := s.Lookup("grid")
	if !ok {
		t.Fatal("expected grid to be tracked")
	}
	value.(map[string]any)["rows"] = 99

	again, _ := s.Lookup("grid")
	if again.(map[string]any)["rows"] != 3 {
		t.Fatalf("expected stored value to be isolated, got %v", again)
	}
}

func TestCommitCopiesCallerValues(t *testing.T) {
	s := New(WithVerbose(false))
	seed := map[string]any{"rows": 3}
	s.Add(P("grid", seed))

	seed["rows"] = 99
	value, _ := s.Get("grid")
	if value.(map[string]any)["rows"] != 3 {
		t.Fatalf("expected caller mutation not to leak in, got %v", value)
	}
}

func TestKindFor(t *testing.T) {
	s := New(WithVerbose(false))
	s.Add(P("count", 4))
	s.Declare(nil, "pending")

	if kind, ok := s.KindFor("count"); !ok || kind != KindInteger {
		t.Fatalf("expected integer, got %s (ok=%v)", kind, ok)
	}
	if kind, ok := s.KindFor("pending"); !ok || kind != KindUntyped {
		t.Fatalf("expected untyped, got %s (ok=%v)", kind, ok)
	}
	if _, ok := s.KindFor("missing"); ok {
		t.Fatal("expected missing name to report untracked")
	}
}

func TestNilSinkFallsBackToNop(t *testing.T) {
	s := New(WithSink(nil), WithVerbose(false))
	s.Add(P("site", "ata"))
	if got, _ := s.Get("site"); got != "ata" {
		t.Fatalf("expected ata, got %v", got)
	}
}
