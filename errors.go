package params

import "fmt"

// UnknownParameterError reports a guarded update against a name the store has
// never declared while strict mode is set to raise on unknown names.
type UnknownParameterError struct {
	Name string
}

func (e *UnknownParameterError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("params: unknown parameter %q", e.Name)
}

// TypeMismatchError reports an incoming value whose kind conflicts with a
// parameter's declared kind while the store is set to raise on mismatches.
type TypeMismatchError struct {
	Name     string
	Declared Kind
	Incoming Kind
}

func (e *TypeMismatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("params: kind mismatch for %q: declared <%s>, incoming <%s>", e.Name, e.Declared, e.Incoming)
}
