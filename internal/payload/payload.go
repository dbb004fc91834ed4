// Package payload prepares parameter values for serialization and
// interprets decoded parameter documents.
package payload

import (
	"encoding/json"
	"fmt"
	"time"
)

// Sanitize returns a representation of value that text encoders can emit:
// times become RFC 3339 strings and values no encoder could handle fall
// back to their printed form.
func Sanitize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return v.Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.Format(time.RFC3339)
	}
	if _, err := json.Marshal(value); err == nil {
		return value
	}
	return fmt.Sprint(value)
}

// Unwrap interprets a decoded parameter document. Plain entries map a name
// to its value. An entry whose value is a mapping may instead be a wrapper
// holding a "value" and an optional "unit"; wrappers marked
// "__external__": true are skipped entirely. Mappings with neither term are
// ordinary mapping values.
func Unwrap(doc map[string]any) (map[string]any, map[string]string) {
	values := make(map[string]any, len(doc))
	units := map[string]string{}
	for name, raw := range doc {
		wrapper, ok := raw.(map[string]any)
		if !ok {
			values[name] = raw
			continue
		}
		if external, ok := wrapper["__external__"].(bool); ok && external {
			continue
		}
		hasTerm := false
		if unit, ok := wrapper["unit"]; ok {
			hasTerm = true
			units[name] = unitString(unit)
			values[name] = nil
		}
		if value, ok := wrapper["value"]; ok {
			hasTerm = true
			values[name] = value
		}
		if !hasTerm {
			values[name] = wrapper
		}
	}
	return values, units
}

func unitString(unit any) string {
	if s, ok := unit.(string); ok {
		return s
	}
	return fmt.Sprint(unit)
}
