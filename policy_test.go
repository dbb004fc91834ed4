package params

import "testing"

type reconcileCase struct {
	Name            string `json:"name"`
	Declared        Kind   `json:"declared"`
	Incoming        Kind   `json:"incoming"`
	CheckKind       bool   `json:"check_kind"`
	RaiseOnMismatch bool   `json:"raise_on_mismatch"`
	Want            string `json:"want"`
}

var reconcileDecisions = map[string]kindDecision{
	"initialize": kindInitialize,
	"match":      kindMatch,
	"follow":     kindFollow,
	"retain":     kindRetain,
	"raise":      kindRaise,
}

func TestReconcile(t *testing.T) {
	cases := loadFixture[[]reconcileCase](t, "policy_cases.json")
	if len(cases) == 0 {
		t.Fatal("expected reconcile cases in the fixture")
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			want, ok := reconcileDecisions[tc.Want]
			if !ok {
				t.Fatalf("unknown decision %q", tc.Want)
			}
			got := reconcile(tc.Declared, tc.Incoming, tc.CheckKind, tc.RaiseOnMismatch)
			if got != want {
				t.Fatalf("expected %s, got decision %d", tc.Want, got)
			}
		})
	}
}
