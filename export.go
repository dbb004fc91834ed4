package params

import (
	"sort"

	"github.com/goliatone/go-params/internal/clone"
)

// Export returns the current values as a name-sorted batch of deep copies.
// An optional name filter restricts the result; filter names that are not
// tracked are skipped. Export never mutates and is the view serialization
// adapters encode.
func (s *Store) Export(names ...string) Pairs {
	return s.snapshot(func(name string) (any, bool) {
		value, ok := s.values[name]
		return value, ok
	}, s.trackedNames(names))
}

// Kinds returns the declared kinds as a name-sorted batch, honoring the same
// optional filter as Export.
func (s *Store) Kinds(names ...string) Pairs {
	return s.snapshot(func(name string) (any, bool) {
		kind, ok := s.declared[name]
		return kind, ok
	}, s.trackedNames(names))
}

// Flags returns the mode flags and note as a name-sorted batch. The coercer
// is configuration rather than data and is not exported.
func (s *Store) Flags() Pairs {
	flagValues := map[string]any{
		FlagNote:            s.note,
		FlagStrict:          s.flags.strict,
		FlagRaiseOnUnknown:  s.flags.raiseOnUnknown,
		FlagVerbose:         s.flags.verbose,
		FlagCheckKind:       s.flags.checkKind,
		FlagRaiseOnMismatch: s.flags.raiseOnMismatch,
	}
	names := make([]string, 0, len(flagValues))
	for name := range flagValues {
		names = append(names, name)
	}
	sort.Strings(names)
	return s.snapshot(func(name string) (any, bool) {
		value, ok := flagValues[name]
		return value, ok
	}, names)
}

// snapshot is the single choke point every read-side export funnels through:
// it resolves each name against a source and deep-copies what it finds, so
// no caller ever holds an alias into store state.
func (s *Store) snapshot(source func(string) (any, bool), names []string) Pairs {
	out := make(Pairs, 0, len(names))
	for _, name := range names {
		value, ok := source(name)
		if !ok {
			continue
		}
		out = append(out, Pair{Name: name, Value: clone.Value(value)})
	}
	return out
}

// trackedNames resolves the optional filter to a sorted, deduplicated list
// of tracked names.
func (s *Store) trackedNames(filter []string) []string {
	var names []string
	if len(filter) == 0 {
		names = make([]string, len(s.names))
		copy(names, s.names)
	} else {
		names = make([]string, 0, len(filter))
		seen := map[string]struct{}{}
		for _, name := range filter {
			if !s.Has(name) {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
