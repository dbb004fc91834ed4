package params

import (
	"fmt"
	"strings"
)

// Render returns the display form of the store: the note, the mode flags,
// then one line per parameter in name order showing the declared kind and
// current value.
func (s *Store) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Parameter Tracking: %s\n", s.note)
	fmt.Fprintf(&b, "strict: %t, raise_on_unknown: %t, verbose: %t, check_kind: %t, raise_on_mismatch: %t",
		s.flags.strict, s.flags.raiseOnUnknown, s.flags.verbose, s.flags.checkKind, s.flags.raiseOnMismatch)
	for _, name := range s.trackedNames(nil) {
		fmt.Fprintf(&b, "\n  %s <%s> : %v", name, s.declared[name], s.values[name])
	}
	return b.String()
}

func (s *Store) String() string { return s.Render() }
