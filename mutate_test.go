package params

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-params/pkg/eventlog"
)

func newCaptured(opts ...Option) (*Store, *eventlog.Capture) {
	capture := &eventlog.Capture{}
	opts = append([]Option{WithSink(capture)}, opts...)
	return New(opts...), capture
}

func TestSetTracksNewParameters(t *testing.T) {
	s, capture := newCaptured()

	if err := s.Set(P("count", 4)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := s.Get("count"); got != 4 {
		t.Fatalf("expected 4, got %v", got)
	}
	if kind, _ := s.KindFor("count"); kind != KindInteger {
		t.Fatalf("expected integer, got %s", kind)
	}

	want := "Setting parameter 'count' as <integer>: 4"
	if messages := capture.Messages(); len(messages) != 1 || messages[0] != want {
		t.Fatalf("expected %q, got %v", want, messages)
	}
}

func TestSetResetsMatchingKind(t *testing.T) {
	s, capture := newCaptured()

	if err := s.Set(P("count", 4)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set(P("count", 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, _ := s.Get("count"); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
	want := "Resetting parameter 'count' as <integer>: 5 [previous value <integer>: 4]"
	if messages := capture.Messages(); messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %q", want, messages[len(messages)-1])
	}
}

func TestSetInitializesUntypedDeclarations(t *testing.T) {
	s, capture := newCaptured()
	s.Declare(nil, "exposure", "cadence")

	if err := s.Set(P("exposure", 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if kind, _ := s.KindFor("exposure"); kind != KindInteger {
		t.Fatalf("expected initialized kind, got %s", kind)
	}
	if kind, _ := s.KindFor("cadence"); kind != KindUntyped {
		t.Fatalf("expected sibling to stay untyped, got %s", kind)
	}

	want := "Initializing kind of parameter 'exposure' to <integer>: 3"
	messages := capture.Messages()
	if messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %q", want, messages[len(messages)-1])
	}
}

func TestSetFollowsIncomingKindByDefault(t *testing.T) {
	s, capture := newCaptured()
	s.Add(P("count", 4))

	if err := s.Set(P("count", "five")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, _ := s.Get("count"); got != "five" {
		t.Fatalf("expected five, got %v", got)
	}
	if kind, _ := s.KindFor("count"); kind != KindString {
		t.Fatalf("expected kind to follow the value, got %s", kind)
	}

	want := "Parameter kinds don't match for 'count': <old: integer> vs <new: string> -- resetting to <string>."
	messages := capture.Messages()
	if messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %q", want, messages[len(messages)-1])
	}
}

func TestSetRetainsDeclaredKind(t *testing.T) {
	s, capture := newCaptured(WithCheckKind(true))
	s.Add(P("count", 4))

	if err := s.Set(P("count", "five")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, _ := s.Get("count"); got != "five" {
		t.Fatalf("expected value to land, got %v", got)
	}
	if kind, _ := s.KindFor("count"); kind != KindInteger {
		t.Fatalf("expected declared kind to survive, got %s", kind)
	}

	want := "Parameter kinds don't match for 'count': <old: integer> vs <new: string> -- retaining <integer>."
	messages := capture.Messages()
	if messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %q", want, messages[len(messages)-1])
	}

	entries := capture.Entries
	if entries[len(entries)-1].Silent {
		t.Fatal("expected retain warning to surface")
	}
}

func TestSetRaisesOnKindMismatch(t *testing.T) {
	s, _ := newCaptured(WithCheckKind(true), WithRaiseOnMismatch(true))
	s.Add(P("count", 4))

	err := s.Set(P("count", "five"))
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %T", err)
	}
	if mismatch.Name != "count" || mismatch.Declared != KindInteger || mismatch.Incoming != KindString {
		t.Fatalf("unexpected error fields: %+v", mismatch)
	}

	if got, _ := s.Get("count"); got != 4 {
		t.Fatalf("expected nothing committed, got %v", got)
	}
	if kind, _ := s.KindFor("count"); kind != KindInteger {
		t.Fatalf("expected declared kind unchanged, got %s", kind)
	}
}

func TestSetStrictRejectsUnknown(t *testing.T) {
	s, capture := newCaptured(WithStrict(true))

	if err := s.Set(P("ghost", 1)); err != nil {
		t.Fatalf("expected event, not error: %v", err)
	}
	if s.Has("ghost") {
		t.Fatal("expected unknown parameter to be refused")
	}

	want := "Unknown parameter 'ghost' in strict mode -- ignored. Use Add to declare new parameters."
	if messages := capture.Messages(); messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %v", want, messages)
	}
}

func TestSetStrictRaisesOnUnknown(t *testing.T) {
	s, _ := newCaptured(WithStrict(true), WithRaiseOnUnknown(true))

	err := s.Set(P("ghost", 1))
	if err == nil {
		t.Fatal("expected error for unknown parameter")
	}
	var unknown *UnknownParameterError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownParameterError, got %T", err)
	}
	if s.Has("ghost") {
		t.Fatal("expected nothing committed")
	}
}

func TestSetBatchAbortsAtRaise(t *testing.T) {
	s, _ := newCaptured(WithStrict(true), WithRaiseOnUnknown(true))
	s.Add(P("a", 1), P("b", 2))

	err := s.Set(P("a", 10), P("ghost", 1), P("b", 20))
	if err == nil {
		t.Fatal("expected error from middle pair")
	}
	if got, _ := s.Get("a"); got != 10 {
		t.Fatalf("expected earlier pair applied, got %v", got)
	}
	if got, _ := s.Get("b"); got != 2 {
		t.Fatalf("expected later pair skipped, got %v", got)
	}
}

func TestSetReservedNameIgnored(t *testing.T) {
	s, capture := newCaptured()

	if err := s.Set(P(FlagStrict, true)); err != nil {
		t.Fatalf("expected event, not error: %v", err)
	}
	if s.Has(FlagStrict) {
		t.Fatal("expected reserved name not to be tracked")
	}
	if flags := s.Flags().Map(); flags[FlagStrict] != false {
		t.Fatal("expected flag untouched through Set")
	}

	want := "Attempt to set reserved name 'strict' -- ignored."
	if messages := capture.Messages(); messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %v", want, messages)
	}

	if err := s.Set(P("export", 1)); err != nil {
		t.Fatalf("expected event, not error: %v", err)
	}
	if s.Has("export") {
		t.Fatal("expected operation name to be reserved")
	}
}

func TestAddDeclaresAndReplaces(t *testing.T) {
	s, capture := newCaptured(WithStrict(true), WithCheckKind(true))

	s.Add(P("count", 4))
	if got, _ := s.Get("count"); got != 4 {
		t.Fatalf("expected 4, got %v", got)
	}

	// Replacement ignores strict mode and kind checking entirely.
	s.Add(P("count", "five"))
	if got, _ := s.Get("count"); got != "five" {
		t.Fatalf("expected five, got %v", got)
	}
	if kind, _ := s.KindFor("count"); kind != KindString {
		t.Fatalf("expected replaced kind, got %s", kind)
	}

	want := "Replacing parameter 'count' as <string>: five [previous value <integer>: 4]"
	messages := capture.Messages()
	if messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %q", want, messages[len(messages)-1])
	}
}

func TestAddReservedNameIgnored(t *testing.T) {
	s, capture := newCaptured()

	s.Add(P("note", "hijack"))
	if s.Has("note") {
		t.Fatal("expected reserved name not to be tracked")
	}
	want := "Attempt to add reserved name 'note' -- ignored."
	if messages := capture.Messages(); messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %v", want, messages)
	}
}

func TestOverrideBypassesGatekeeping(t *testing.T) {
	s, capture := newCaptured(WithStrict(true), WithRaiseOnUnknown(true), WithCheckKind(true), WithRaiseOnMismatch(true))
	s.Add(P("count", 4))

	s.Override(P("count", "five"), P("fresh", 1))

	if got, _ := s.Get("count"); got != "five" {
		t.Fatalf("expected value committed, got %v", got)
	}
	if kind, _ := s.KindFor("count"); kind != KindInteger {
		t.Fatalf("expected declared kind untouched, got %s", kind)
	}
	if got, _ := s.Get("fresh"); got != 1 {
		t.Fatalf("expected new parameter added, got %v", got)
	}

	for _, entry := range capture.Entries[1:] {
		if !entry.Silent {
			t.Fatalf("expected override bookkeeping to stay silent, got %q", entry.Message)
		}
	}
}

func TestOverrideSetsFlags(t *testing.T) {
	s, _ := newCaptured()

	s.Override(P(FlagStrict, true), P(FlagRaiseOnUnknown, true), P(FlagNote, "locked down"))

	flags := s.Flags().Map()
	if flags[FlagStrict] != true || flags[FlagRaiseOnUnknown] != true {
		t.Fatalf("expected flags applied, got %v", flags)
	}
	if s.Note() != "locked down" {
		t.Fatalf("expected note applied, got %q", s.Note())
	}

	if err := s.Set(P("ghost", 1)); err == nil {
		t.Fatal("expected strict mode to govern later mutations")
	}
}

func TestOverrideAppliesCoercerToOwnBatch(t *testing.T) {
	upper := CoercerFunc(func(name string, raw any) (CoerceResult, error) {
		if v, ok := raw.(string); ok {
			return CoerceResult{Value: strings.ToUpper(v), Desc: "uppercased"}, nil
		}
		return CoerceResult{Value: raw}, nil
	})

	s, capture := newCaptured()
	s.Add(P("site", "ata"))

	// The coercer pair is listed last but must shape the batch's own values.
	s.Override(P("site", "gbo"), P(FlagCoercer, upper))

	if got, _ := s.Get("site"); got != "GBO" {
		t.Fatalf("expected coerced value, got %v", got)
	}

	want := "Overriding parameter 'site': GBO [previous value: ata] (uppercased)"
	messages := capture.Messages()
	if messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %q", want, messages[len(messages)-1])
	}
}

func TestOverrideClearsCoercer(t *testing.T) {
	upper := CoercerFunc(func(name string, raw any) (CoerceResult, error) {
		if v, ok := raw.(string); ok {
			return CoerceResult{Value: strings.ToUpper(v)}, nil
		}
		return CoerceResult{Value: raw}, nil
	})
	s, _ := newCaptured(WithCoercer(upper))

	s.Override(P(FlagCoercer, nil))
	s.Add(P("site", "ata"))

	if got, _ := s.Get("site"); got != "ata" {
		t.Fatalf("expected cleared coercer to leave value raw, got %v", got)
	}
}

func TestOverrideRejectsInvalidFlagValues(t *testing.T) {
	s, capture := newCaptured()

	s.Override(P(FlagStrict, "yes"))

	if flags := s.Flags().Map(); flags[FlagStrict] != false {
		t.Fatal("expected invalid flag value to be rejected")
	}
	want := "Invalid value for flag 'strict': expected boolean, got <string>."
	messages := capture.Messages()
	if messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %v", want, messages)
	}
	if capture.Entries[len(capture.Entries)-1].Silent {
		t.Fatal("expected rejection to surface")
	}

	s.Override(P(FlagNote, 42))
	want = "Invalid value for flag 'note': expected string, got <integer>."
	messages = capture.Messages()
	if messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %v", want, messages)
	}
}

func TestOverrideReservedOperationIgnored(t *testing.T) {
	s, capture := newCaptured()

	s.Override(P("set", 1))

	if s.Has("set") {
		t.Fatal("expected operation name to stay reserved")
	}
	want := "Attempt to override reserved name 'set' -- ignored."
	if messages := capture.Messages(); messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %v", want, messages)
	}
}

func TestDeclareReservesUntypedNames(t *testing.T) {
	s, capture := newCaptured()

	s.Declare(nil, "exposure", "cadence")

	if s.Len() != 2 {
		t.Fatalf("expected 2 declared parameters, got %d", s.Len())
	}
	for _, name := range []string{"exposure", "cadence"} {
		if kind, ok := s.KindFor(name); !ok || kind != KindUntyped {
			t.Fatalf("expected %s untyped, got %s (ok=%v)", name, kind, ok)
		}
		if value, ok := s.Lookup(name); !ok || value != nil {
			t.Fatalf("expected %s to hold the default, got %v", name, value)
		}
	}

	want := "Declaring parameter 'exposure' (untyped)."
	if messages := capture.Messages(); messages[0] != want {
		t.Fatalf("expected %q, got %v", want, messages)
	}
}

func TestDeclareSkipsExistingNames(t *testing.T) {
	s, capture := newCaptured()
	s.Add(P("count", 4))

	s.Declare(nil, "count")

	if got, _ := s.Get("count"); got != 4 {
		t.Fatalf("expected existing value untouched, got %v", got)
	}
	if kind, _ := s.KindFor("count"); kind != KindInteger {
		t.Fatalf("expected existing kind untouched, got %s", kind)
	}
	want := "Parameter 'count' already declared -- ignored."
	messages := capture.Messages()
	if messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %v", want, messages)
	}
}

func TestDeclareCopiesDefaultPerName(t *testing.T) {
	s, _ := newCaptured(WithVerbose(false))
	def := map[string]any{"x": 1}

	s.Declare(def, "m1", "m2")
	def["x"] = 99

	value, _ := s.Get("m1")
	if value.(map[string]any)["x"] != 1 {
		t.Fatalf("expected caller mutation not to reach declared defaults, got %v", value)
	}
}

func TestDeleteRemovesParameters(t *testing.T) {
	s, capture := newCaptured()
	s.Add(P("a", 1), P("b", 2), P("c", 3))

	s.Delete("b")

	if s.Has("b") {
		t.Fatal("expected b removed")
	}
	if _, err := s.Get("b"); err == nil {
		t.Fatal("expected error after delete")
	}
	want := []string{"a", "c"}
	if got := s.Names(); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}

	wantMsg := "Deleting parameter 'b'."
	messages := capture.Messages()
	if messages[len(messages)-1] != wantMsg {
		t.Fatalf("expected %q, got %q", wantMsg, messages[len(messages)-1])
	}
}

func TestDeleteUnknownIgnored(t *testing.T) {
	s, capture := newCaptured()

	s.Delete("ghost")

	want := "Unknown parameter 'ghost' -- ignored."
	if messages := capture.Messages(); messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %v", want, messages)
	}
}

func TestDeleteReservedIgnored(t *testing.T) {
	s, capture := newCaptured()

	s.Delete(FlagVerbose)

	want := "Attempt to delete reserved name 'verbose' -- ignored."
	if messages := capture.Messages(); messages[len(messages)-1] != want {
		t.Fatalf("expected %q, got %v", want, messages)
	}
}

func TestCoercionFailureWarnsAndKeepsRaw(t *testing.T) {
	failing := CoercerFunc(func(name string, raw any) (CoerceResult, error) {
		return CoerceResult{}, errors.New("no handler for value")
	})
	s, capture := newCaptured(WithCoercer(failing))

	if err := s.Set(P("count", 4)); err != nil {
		t.Fatalf("expected coercion failure to stay non-fatal: %v", err)
	}
	if got, _ := s.Get("count"); got != 4 {
		t.Fatalf("expected raw value committed, got %v", got)
	}

	want := "Coercion failed for 'count': no handler for value -- using raw value."
	messages := capture.Messages()
	if messages[0] != want {
		t.Fatalf("expected %q, got %q", want, messages[0])
	}
	if capture.Entries[0].Silent {
		t.Fatal("expected coercion warning to surface")
	}
}

func TestCoercionResultShapesCommit(t *testing.T) {
	double := CoercerFunc(func(name string, raw any) (CoerceResult, error) {
		if v, ok := raw.(int); ok {
			return CoerceResult{Value: v * 2, Desc: "doubled"}, nil
		}
		return CoerceResult{Value: raw}, nil
	})
	s, capture := newCaptured(WithCoercer(double))

	if err := s.Set(P("count", 4)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := s.Get("count"); got != 8 {
		t.Fatalf("expected coerced value, got %v", got)
	}

	want := "Setting parameter 'count' as <integer>: 8 (doubled)"
	if messages := capture.Messages(); messages[0] != want {
		t.Fatalf("expected %q, got %q", want, messages[0])
	}
}

func TestVerboseGovernsInfoEvents(t *testing.T) {
	s, capture := newCaptured(WithVerbose(false))

	s.Add(P("site", "ata"))

	if len(capture.Entries) != 1 {
		t.Fatalf("expected event recorded regardless of verbosity, got %d", len(capture.Entries))
	}
	if !capture.Entries[0].Silent {
		t.Fatal("expected info event to be silent while verbose is off")
	}

	s.Override(P(FlagVerbose, true))
	s.Add(P("count", 4))

	last := capture.Entries[len(capture.Entries)-1]
	if last.Silent {
		t.Fatal("expected info event to surface while verbose is on")
	}
}
