package params

// CoerceResult carries the outcome of a coercion hook.
type CoerceResult struct {
	// Value is the value to carry forward into the store's policy checks.
	Value any
	// Kind optionally overrides the tag inferred from Value.
	Kind Kind
	// Desc optionally describes what the coercion did; it surfaces in
	// verbose events.
	Desc string
}

// Coercer adapts incoming values before the guarded-set policy sees them.
// Implementations hand the raw value back unchanged when they have nothing
// to contribute. A returned error marks the coercion as failed: the store
// warns and carries on with the raw value rather than aborting the update.
type Coercer interface {
	Coerce(name string, raw any) (CoerceResult, error)
}

// CoercerFunc allows plain functions to satisfy Coercer.
type CoercerFunc func(name string, raw any) (CoerceResult, error)

// Coerce dispatches to the underlying function.
func (fn CoercerFunc) Coerce(name string, raw any) (CoerceResult, error) {
	if fn == nil {
		return CoerceResult{Value: raw}, nil
	}
	return fn(name, raw)
}

// Passthrough returns a coercer that hands every value back unchanged.
func Passthrough() Coercer {
	return CoercerFunc(func(_ string, raw any) (CoerceResult, error) {
		return CoerceResult{Value: raw}, nil
	})
}

// Chain composes coercers left to right: each receives the previous result's
// value, and later kind or description overrides win. Nil entries are
// skipped; the first error stops the chain and surfaces the original raw
// value alongside it.
func Chain(coercers ...Coercer) Coercer {
	filtered := make([]Coercer, 0, len(coercers))
	for _, c := range coercers {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	return CoercerFunc(func(name string, raw any) (CoerceResult, error) {
		result := CoerceResult{Value: raw}
		for _, c := range filtered {
			next, err := c.Coerce(name, result.Value)
			if err != nil {
				return CoerceResult{Value: raw}, err
			}
			result.Value = next.Value
			if next.Kind != "" {
				result.Kind = next.Kind
			}
			if next.Desc != "" {
				result.Desc = next.Desc
			}
		}
		return result, nil
	})
}
