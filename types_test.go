package params

import (
	"reflect"
	"testing"
)

func TestPairsLookupFirstWins(t *testing.T) {
	pairs := Pairs{P("a", 1), P("a", 2), P("b", 3)}

	value, ok := pairs.Lookup("a")
	if !ok || value != 1 {
		t.Fatalf("expected first occurrence, got %v (ok=%v)", value, ok)
	}
	if _, ok := pairs.Lookup("ghost"); ok {
		t.Fatal("expected miss for unknown name")
	}
}

func TestPairsMapLastWins(t *testing.T) {
	pairs := Pairs{P("a", 1), P("a", 2)}
	if got := pairs.Map()["a"]; got != 2 {
		t.Fatalf("expected the later occurrence, got %v", got)
	}
}

func TestPairsFromMapSorts(t *testing.T) {
	pairs := PairsFromMap(map[string]any{"zeta": 1, "alpha": 2})
	want := []string{"alpha", "zeta"}
	if !reflect.DeepEqual(pairs.Names(), want) {
		t.Fatalf("expected %v, got %v", want, pairs.Names())
	}
}

func TestIsReserved(t *testing.T) {
	for _, name := range []string{FlagStrict, FlagNote, FlagCoercer, "set", "add", "override", "declare", "delete", "get", "export", "render"} {
		if !IsReserved(name) {
			t.Fatalf("expected %q to be reserved", name)
		}
	}
	if IsReserved("exposure") {
		t.Fatal("expected ordinary names not to be reserved")
	}
}
