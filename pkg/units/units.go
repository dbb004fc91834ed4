// Package units attaches measurement units to bare magnitudes on their way
// into a parameter store.
package units

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Catalog maps unit names to conversion factors into a common base unit.
type Catalog map[string]float64

// Time returns the time-unit catalog with factors in seconds. Aliases share
// a factor: day/d/jd, hour/hr/h, minute/min/m, second/sec/s.
func Time() Catalog {
	return Catalog{
		"day": 86400, "d": 86400, "jd": 86400,
		"hour": 3600, "hr": 3600, "h": 3600,
		"minute": 60, "min": 60, "m": 60,
		"second": 1, "sec": 1, "s": 1,
	}
}

// Factor resolves a unit name, case-insensitively and ignoring surrounding
// whitespace.
func (c Catalog) Factor(unit string) (float64, bool) {
	factor, ok := c[strings.ToLower(strings.TrimSpace(unit))]
	return factor, ok
}

// Names returns the catalog's unit names sorted longest first, so suffix
// matching tries "min" before "m".
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// Quantity pairs a magnitude with its unit.
type Quantity struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

// ParamKind marks quantities with their own type tag instead of the generic
// struct fallback.
func (q Quantity) ParamKind() string { return "quantity" }

func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}

// In converts the quantity to another unit of the same catalog.
func (q Quantity) In(catalog Catalog, unit string) (Quantity, error) {
	from, ok := catalog.Factor(q.Unit)
	if !ok {
		return Quantity{}, fmt.Errorf("units: unknown unit %q", q.Unit)
	}
	to, ok := catalog.Factor(unit)
	if !ok {
		return Quantity{}, fmt.Errorf("units: unknown unit %q", unit)
	}
	return Quantity{Value: q.Value * from / to, Unit: unit}, nil
}

// Parse reads a "<magnitude> <unit>" string, validating the unit against the
// catalog when one is supplied.
func Parse(s string, catalog Catalog) (Quantity, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return Quantity{}, fmt.Errorf("units: cannot parse quantity %q", s)
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("units: cannot parse quantity %q: %w", s, err)
	}
	unit := fields[1]
	if catalog != nil {
		if _, ok := catalog.Factor(unit); !ok {
			return Quantity{}, fmt.Errorf("units: unknown unit %q", unit)
		}
	}
	return Quantity{Value: value, Unit: unit}, nil
}
