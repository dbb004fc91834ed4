package params

import (
	"fmt"

	"github.com/goliatone/go-params/pkg/eventlog"
)

// post hands one bookkeeping event to the sink. Sink failures are not the
// store's problem: mutation outcomes were already applied.
func (s *Store) post(message string, silent bool) {
	if s.sink == nil {
		return
	}
	_ = s.sink.Post(eventlog.NewEntry(message, silent))
}

// info events are silent unless the store is verbose; warn events always
// surface.
func (s *Store) info(message string) { s.post(message, !s.flags.verbose) }
func (s *Store) warn(message string) { s.post(message, false) }

func withDesc(message, desc string) string {
	if desc == "" {
		return message
	}
	return message + " (" + desc + ")"
}

func msgSetting(name string, kind Kind, value any, desc string) string {
	return withDesc(fmt.Sprintf("Setting parameter '%s' as <%s>: %v", name, kind, value), desc)
}

func msgResetting(name string, kind Kind, value any, oldKind Kind, old any, desc string) string {
	return withDesc(fmt.Sprintf("Resetting parameter '%s' as <%s>: %v [previous value <%s>: %v]", name, kind, value, oldKind, old), desc)
}

func msgAdding(name string, kind Kind, value any, desc string) string {
	return withDesc(fmt.Sprintf("Adding parameter '%s' as <%s>: %v", name, kind, value), desc)
}

func msgReplacing(name string, kind Kind, value any, oldKind Kind, old any, desc string) string {
	return withDesc(fmt.Sprintf("Replacing parameter '%s' as <%s>: %v [previous value <%s>: %v]", name, kind, value, oldKind, old), desc)
}

func msgOverriding(name string, value, old any, desc string) string {
	return withDesc(fmt.Sprintf("Overriding parameter '%s': %v [previous value: %v]", name, value, old), desc)
}

func msgKindInit(name string, kind Kind, value any) string {
	return fmt.Sprintf("Initializing kind of parameter '%s' to <%s>: %v", name, kind, value)
}

func msgKindMismatch(name string, declared, incoming Kind, retained bool) string {
	msg := fmt.Sprintf("Parameter kinds don't match for '%s': <old: %s> vs <new: %s>", name, declared, incoming)
	if retained {
		return msg + fmt.Sprintf(" -- retaining <%s>.", declared)
	}
	return msg + fmt.Sprintf(" -- resetting to <%s>.", incoming)
}

func msgReserved(verb, name string) string {
	return fmt.Sprintf("Attempt to %s reserved name '%s' -- ignored.", verb, name)
}

func msgUnknownStrict(name string) string {
	return fmt.Sprintf("Unknown parameter '%s' in strict mode -- ignored. Use Add to declare new parameters.", name)
}

func msgAlreadyDeclared(name string) string {
	return fmt.Sprintf("Parameter '%s' already declared -- ignored.", name)
}

func msgDeclaring(name string) string {
	return fmt.Sprintf("Declaring parameter '%s' (untyped).", name)
}

func msgDeleting(name string) string {
	return fmt.Sprintf("Deleting parameter '%s'.", name)
}

func msgUnknownDelete(name string) string {
	return fmt.Sprintf("Unknown parameter '%s' -- ignored.", name)
}

func msgSettingFlag(key string, value any) string {
	return fmt.Sprintf("Setting flag '%s' to %v.", key, value)
}

func msgInvalidFlag(key, expected string, got any) string {
	return fmt.Sprintf("Invalid value for flag '%s': expected %s, got <%s>.", key, expected, KindOf(got))
}

func msgCoerceFailed(name string, err error) string {
	return fmt.Sprintf("Coercion failed for '%s': %v -- using raw value.", name, err)
}
