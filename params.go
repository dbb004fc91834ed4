// Package params tracks named, kind-tagged parameters: declare them, mutate
// them through policies of varying strictness, watch every outcome through an
// injected event sink, and move them in and out of interchange formats.
//
// A Store is created empty (or seeded through the add policy) and is not
// synchronized: it is meant to live inside a single goroutine or behind the
// caller's own locking, while sinks shared across stores handle their own.
package params

import (
	"github.com/goliatone/go-params/internal/clone"
	"github.com/goliatone/go-params/pkg/eventlog"
)

// DefaultNote labels stores that were not given their own note.
const DefaultNote = "Parameter tracking"

// Store owns an ordered set of named parameters, each carrying a committed
// value and a declared kind. Mutations go through Set, Add, Override,
// Declare, and Delete; reads never mutate and never alias internal state.
type Store struct {
	names    []string
	values   map[string]any
	declared map[string]Kind

	note    string
	flags   storeFlags
	coercer Coercer
	sink    eventlog.Sink
}

// Option configures a Store at construction time.
type Option func(*config)

type config struct {
	note    string
	flags   storeFlags
	coercer Coercer
	sink    eventlog.Sink
	seed    Pairs
}

func applyOptions(opts []Option) config {
	cfg := config{
		note:  DefaultNote,
		flags: storeFlags{verbose: true},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithNote labels the store; the note shows up in Render output.
func WithNote(note string) Option {
	return func(cfg *config) {
		cfg.note = note
	}
}

// WithSink wires the event sink that receives every mutation outcome.
func WithSink(sink eventlog.Sink) Option {
	return func(cfg *config) {
		cfg.sink = sink
	}
}

// WithCoercer installs the hook that adapts incoming values before policy
// checks. A nil coercer leaves values untouched.
func WithCoercer(coercer Coercer) Option {
	return func(cfg *config) {
		cfg.coercer = coercer
	}
}

// WithStrict makes the guarded Set path refuse names that were never
// declared.
func WithStrict(strict bool) Option {
	return func(cfg *config) {
		cfg.flags.strict = strict
	}
}

// WithRaiseOnUnknown upgrades strict-mode rejections from events to
// UnknownParameterError returns.
func WithRaiseOnUnknown(raise bool) Option {
	return func(cfg *config) {
		cfg.flags.raiseOnUnknown = raise
	}
}

// WithVerbose controls whether informational events are surfaced immediately
// or recorded silently. Defaults to true.
func WithVerbose(verbose bool) Option {
	return func(cfg *config) {
		cfg.flags.verbose = verbose
	}
}

// WithCheckKind turns on kind reconciliation for the guarded Set path.
func WithCheckKind(check bool) Option {
	return func(cfg *config) {
		cfg.flags.checkKind = check
	}
}

// WithRaiseOnMismatch upgrades kind mismatches from retain events to
// TypeMismatchError returns. Only consulted while WithCheckKind is set.
func WithRaiseOnMismatch(raise bool) Option {
	return func(cfg *config) {
		cfg.flags.raiseOnMismatch = raise
	}
}

// WithValues seeds the store through the add policy, exactly as if
// Add(pairs...) ran right after construction.
func WithValues(pairs ...Pair) Option {
	return func(cfg *config) {
		cfg.seed = append(cfg.seed, pairs...)
	}
}

// New constructs a store. Without options it is empty, labeled DefaultNote,
// verbose, lenient (strict and kind checking off), and wired to a no-op sink.
func New(opts ...Option) *Store {
	cfg := applyOptions(opts)
	if cfg.note == "" {
		cfg.note = DefaultNote
	}
	if cfg.sink == nil {
		cfg.sink = eventlog.Nop()
	}

	s := &Store{
		values:   map[string]any{},
		declared: map[string]Kind{},
		note:     cfg.note,
		flags:    cfg.flags,
		coercer:  cfg.coercer,
		sink:     cfg.sink,
	}
	if len(cfg.seed) > 0 {
		s.Add(cfg.seed...)
	}
	return s
}

// Note returns the store's label.
func (s *Store) Note() string {
	return s.note
}

// Len reports how many parameters are tracked.
func (s *Store) Len() int {
	return len(s.names)
}

// Has reports whether name is currently tracked.
func (s *Store) Has(name string) bool {
	_, ok := s.declared[name]
	return ok
}

// Names returns the tracked names in insertion order. Export and Kinds sort;
// this is the raw bookkeeping order.
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Lookup returns a copy of the current value for name and whether the name
// is tracked.
func (s *Store) Lookup(name string) (any, bool) {
	value, ok := s.values[name]
	if !ok {
		return nil, false
	}
	return clone.Value(value), true
}

// Get returns a copy of the current value for name, or UnknownParameterError
// when the name is not tracked.
func (s *Store) Get(name string) (any, error) {
	if value, ok := s.Lookup(name); ok {
		return value, nil
	}
	return nil, &UnknownParameterError{Name: name}
}

// GetOr returns a copy of the current value for name, or def when the name
// is not tracked.
func (s *Store) GetOr(name string, def any) any {
	if value, ok := s.Lookup(name); ok {
		return value
	}
	return def
}

// KindFor returns the declared kind for name; KindUntyped means the name is
// reserved but no value kind has been committed yet. The second return
// reports whether the name is tracked.
func (s *Store) KindFor(name string) (Kind, bool) {
	kind, ok := s.declared[name]
	return kind, ok
}
