package params

import "github.com/goliatone/go-params/internal/clone"

// Set is the guarded update path. Reserved names are rejected with an event.
// Unknown names are refused in strict mode (an event, or
// UnknownParameterError when raising is on) and tracked as new parameters
// otherwise. Updates to tracked names run the value through the coercion
// hook, then reconcile kinds: an untyped declaration adopts the incoming
// kind, a matching kind commits quietly, and a mismatch follows the incoming
// kind, retains the declared kind, or fails with TypeMismatchError depending
// on the check and raise flags.
//
// Pairs are processed independently in order. Only the two raise-capable
// outcomes abort the batch; earlier pairs stay applied.
func (s *Store) Set(pairs ...Pair) error {
	for _, pair := range pairs {
		if err := s.setOne(pair.Name, pair.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) setOne(name string, raw any) error {
	if IsReserved(name) {
		s.warn(msgReserved("set", name))
		return nil
	}

	if !s.Has(name) {
		if s.flags.strict {
			if s.flags.raiseOnUnknown {
				return &UnknownParameterError{Name: name}
			}
			s.warn(msgUnknownStrict(name))
			return nil
		}
		value, kind, desc := s.coerceValue(name, raw)
		s.commit(name, value, kind)
		s.info(msgSetting(name, kind, value, desc))
		return nil
	}

	value, kind, desc := s.coerceValue(name, raw)
	declared := s.declared[name]
	old := s.values[name]

	switch reconcile(declared, kind, s.flags.checkKind, s.flags.raiseOnMismatch) {
	case kindInitialize:
		s.commit(name, value, kind)
		s.info(withDesc(msgKindInit(name, kind, value), desc))
	case kindMatch:
		s.commit(name, value, kind)
		s.info(msgResetting(name, kind, value, declared, old, desc))
	case kindFollow:
		s.commit(name, value, kind)
		s.info(msgKindMismatch(name, declared, kind, false))
	case kindRetain:
		// The incoming value still lands; only the declared kind survives.
		s.commit(name, value, declared)
		s.warn(msgKindMismatch(name, declared, kind, true))
	case kindRaise:
		return &TypeMismatchError{Name: name, Declared: declared, Incoming: kind}
	}
	return nil
}

// Add declares new parameters or replaces existing ones wholesale, ignoring
// strict mode and kind checking. Replacements re-commit both value and kind.
// Add never fails; reserved names are rejected with an event.
func (s *Store) Add(pairs ...Pair) {
	for _, pair := range pairs {
		s.addOne(pair.Name, pair.Value)
	}
}

func (s *Store) addOne(name string, raw any) {
	if IsReserved(name) {
		s.warn(msgReserved("add", name))
		return
	}
	value, kind, desc := s.coerceValue(name, raw)
	if s.Has(name) {
		declared := s.declared[name]
		old := s.values[name]
		s.commit(name, value, kind)
		s.info(msgReplacing(name, kind, value, declared, old, desc))
		return
	}
	s.commit(name, value, kind)
	s.info(msgAdding(name, kind, value, desc))
}

// Override is the low-ceremony path and the only one that can change mode
// flags. Flag pairs are applied before the rest in a fixed priority order:
// verbose first so it governs the remainder of the batch, note second,
// coercer third so it adapts the batch's own value pairs, then any other
// flags in batch order. Flag values must carry the flag's type; invalid
// values are rejected with an event, never an error.
//
// Non-flag pairs then behave like Add for new names. For tracked names the
// value is re-coerced and committed while the declared kind stays untouched,
// whatever the mismatch. Override's informational events are always recorded
// silently; only rejections surface.
func (s *Store) Override(pairs ...Pair) {
	for _, pair := range s.applyFlags(pairs) {
		s.overrideOne(pair.Name, pair.Value)
	}
}

func (s *Store) applyFlags(pairs Pairs) Pairs {
	rest := make(Pairs, 0, len(pairs))
	var flagged Pairs
	for _, pair := range pairs {
		if isFlag(pair.Name) {
			flagged = append(flagged, pair)
			continue
		}
		rest = append(rest, pair)
	}
	if len(flagged) == 0 {
		return rest
	}

	for _, key := range []string{FlagVerbose, FlagNote, FlagCoercer} {
		for _, pair := range flagged {
			if pair.Name == key {
				s.applyFlag(pair.Name, pair.Value)
			}
		}
	}
	for _, pair := range flagged {
		switch pair.Name {
		case FlagVerbose, FlagNote, FlagCoercer:
			continue
		}
		s.applyFlag(pair.Name, pair.Value)
	}
	return rest
}

func (s *Store) applyFlag(key string, value any) {
	switch key {
	case FlagNote:
		note, ok := value.(string)
		if !ok {
			s.warn(msgInvalidFlag(key, "string", value))
			return
		}
		s.note = note
		s.post(msgSettingFlag(key, note), true)
	case FlagCoercer:
		if value == nil {
			s.coercer = nil
			s.post(msgSettingFlag(key, "cleared"), true)
			return
		}
		coercer, ok := value.(Coercer)
		if !ok {
			s.warn(msgInvalidFlag(key, "Coercer", value))
			return
		}
		s.coercer = coercer
		s.post(msgSettingFlag(key, "configured"), true)
	default:
		b, ok := value.(bool)
		if !ok {
			s.warn(msgInvalidFlag(key, "boolean", value))
			return
		}
		switch key {
		case FlagVerbose:
			s.flags.verbose = b
		case FlagStrict:
			s.flags.strict = b
		case FlagRaiseOnUnknown:
			s.flags.raiseOnUnknown = b
		case FlagCheckKind:
			s.flags.checkKind = b
		case FlagRaiseOnMismatch:
			s.flags.raiseOnMismatch = b
		}
		s.post(msgSettingFlag(key, b), true)
	}
}

func (s *Store) overrideOne(name string, raw any) {
	if _, ok := reservedOps[name]; ok {
		s.warn(msgReserved("override", name))
		return
	}
	value, kind, desc := s.coerceValue(name, raw)
	if s.Has(name) {
		old := s.values[name]
		s.commit(name, value, s.declared[name])
		s.post(msgOverriding(name, value, old, desc), true)
		return
	}
	s.commit(name, value, kind)
	s.post(msgAdding(name, kind, value, desc), true)
}

// Declare reserves names bound to def with an untyped declaration, so the
// first guarded update on each name commits its kind. Reserved and already
// tracked names are skipped with an event. The default is copied per name;
// declared names never share mutable state.
func (s *Store) Declare(def any, names ...string) {
	for _, name := range names {
		s.declareOne(name, def)
	}
}

func (s *Store) declareOne(name string, def any) {
	if IsReserved(name) {
		s.warn(msgReserved("declare", name))
		return
	}
	if s.Has(name) {
		s.warn(msgAlreadyDeclared(name))
		return
	}
	s.commit(name, def, KindUntyped)
	s.info(msgDeclaring(name))
}

// Delete removes parameters. Reserved and unknown names are rejected with an
// event; Delete never fails.
func (s *Store) Delete(names ...string) {
	for _, name := range names {
		s.deleteOne(name)
	}
}

func (s *Store) deleteOne(name string) {
	if IsReserved(name) {
		s.warn(msgReserved("delete", name))
		return
	}
	if !s.Has(name) {
		s.warn(msgUnknownDelete(name))
		return
	}
	delete(s.values, name)
	delete(s.declared, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	s.info(msgDeleting(name))
}

// commit stores a deep copy of value so later caller-side mutation cannot
// leak into tracked state, and keeps the name roster paired with both maps.
func (s *Store) commit(name string, value any, kind Kind) {
	if _, ok := s.declared[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = clone.Value(value)
	s.declared[name] = kind
}

// coerceValue runs the configured hook. Hook failures downgrade to a warning
// and the raw value continues through the policy unchanged.
func (s *Store) coerceValue(name string, raw any) (any, Kind, string) {
	if s.coercer == nil {
		return raw, KindOf(raw), ""
	}
	result, err := s.coercer.Coerce(name, raw)
	if err != nil {
		s.warn(msgCoerceFailed(name, err))
		return raw, KindOf(raw), ""
	}
	kind := result.Kind
	if !kind.Concrete() {
		kind = KindOf(result.Value)
	}
	return result.Value, kind, result.Desc
}
