package params

import (
	"testing"
	"time"
)

type taggedValue struct{}

func (taggedValue) ParamKind() string { return "quantity" }

func TestKindOf(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		value any
		want  Kind
	}{
		{name: "nil", value: nil, want: KindOther},
		{name: "bool", value: true, want: KindBoolean},
		{name: "int", value: 4, want: KindInteger},
		{name: "int64", value: int64(4), want: KindInteger},
		{name: "uint", value: uint(4), want: KindInteger},
		{name: "float64", value: 2.5, want: KindFloat},
		{name: "float32", value: float32(2.5), want: KindFloat},
		{name: "string", value: "ata", want: KindString},
		{name: "slice", value: []int{1, 2}, want: KindSequence},
		{name: "array", value: [2]string{"a", "b"}, want: KindSequence},
		{name: "map", value: map[string]int{"a": 1}, want: KindMapping},
		{name: "set", value: map[string]struct{}{"a": {}}, want: KindSet},
		{name: "time", value: now, want: KindTemporal},
		{name: "time pointer", value: &now, want: KindTemporal},
		{name: "duration", value: time.Minute, want: KindTemporal},
		{name: "self-tagging value", value: taggedValue{}, want: KindQuantity},
		{name: "plain struct", value: struct{ X int }{X: 1}, want: KindOther},
		{name: "pointer to int", value: func() *int { v := 4; return &v }(), want: KindInteger},
		{name: "nil pointer", value: (*int)(nil), want: KindOther},
		{name: "func", value: func() {}, want: KindOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.value); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	if got := ParseKind("integer"); got != KindInteger {
		t.Fatalf("expected integer, got %s", got)
	}
	if got := ParseKind("quantity"); got != KindQuantity {
		t.Fatalf("expected quantity, got %s", got)
	}
	if got := ParseKind("space-elevator"); got != KindOther {
		t.Fatalf("expected unknown names to map to other, got %s", got)
	}
}

func TestKindConcrete(t *testing.T) {
	if KindUntyped.Concrete() {
		t.Fatal("expected untyped not to be concrete")
	}
	if Kind("").Concrete() {
		t.Fatal("expected empty kind not to be concrete")
	}
	if !KindInteger.Concrete() {
		t.Fatal("expected integer to be concrete")
	}
	if !KindOther.Concrete() {
		t.Fatal("expected other to be concrete")
	}
}
