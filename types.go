package params

import "sort"

// Pair binds a parameter name to a value. Batches are expressed as ordered
// pair slices so callers control processing order.
type Pair struct {
	Name  string
	Value any
}

// P is shorthand for building a Pair inline.
func P(name string, value any) Pair {
	return Pair{Name: name, Value: value}
}

// Pairs is an ordered batch of name/value pairs.
type Pairs []Pair

// Lookup returns the value for name and whether it is present. The first
// occurrence wins when a batch repeats a name.
func (ps Pairs) Lookup(name string) (any, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Names returns the pair names in batch order.
func (ps Pairs) Names() []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

// Map converts the batch into a plain mapping. Later occurrences of a
// repeated name win, matching the effect of applying the batch in order.
func (ps Pairs) Map() map[string]any {
	out := make(map[string]any, len(ps))
	for _, p := range ps {
		out[p.Name] = p.Value
	}
	return out
}

// PairsFromMap converts a mapping into a name-sorted batch so the resulting
// order is deterministic.
func PairsFromMap(m map[string]any) Pairs {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make(Pairs, 0, len(names))
	for _, name := range names {
		out = append(out, Pair{Name: name, Value: m[name]})
	}
	return out
}

// Flag keys recognized by Override. They are reserved: no entry point will
// track a parameter under these names.
const (
	FlagVerbose         = "verbose"
	FlagNote            = "note"
	FlagCoercer         = "coercer"
	FlagStrict          = "strict"
	FlagRaiseOnUnknown  = "raise_on_unknown"
	FlagCheckKind       = "check_kind"
	FlagRaiseOnMismatch = "raise_on_mismatch"
)

// storeFlags are the per-store mode switches. Only Override can change them
// after construction.
type storeFlags struct {
	strict          bool
	raiseOnUnknown  bool
	verbose         bool
	checkKind       bool
	raiseOnMismatch bool
}

var reservedFlags = map[string]struct{}{
	FlagVerbose:         {},
	FlagNote:            {},
	FlagCoercer:         {},
	FlagStrict:          {},
	FlagRaiseOnUnknown:  {},
	FlagCheckKind:       {},
	FlagRaiseOnMismatch: {},
}

// Operation names are reserved alongside the flag keys so a parameter can
// never shadow the store's own surface.
var reservedOps = map[string]struct{}{
	"set":      {},
	"add":      {},
	"override": {},
	"declare":  {},
	"delete":   {},
	"get":      {},
	"export":   {},
	"render":   {},
}

// IsReserved reports whether name collides with a flag key or an operation
// name. Reserved names never appear among tracked parameters.
func IsReserved(name string) bool {
	if _, ok := reservedFlags[name]; ok {
		return true
	}
	_, ok := reservedOps[name]
	return ok
}

func isFlag(name string) bool {
	_, ok := reservedFlags[name]
	return ok
}
