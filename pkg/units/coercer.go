package units

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-params"
)

// Coercer turns bare magnitudes into quantities for the parameter names it
// knows a unit for. Values that already carry a unit, and names with no
// registered unit, pass through untouched.
type Coercer struct {
	catalog Catalog
	units   map[string]string
}

// CoercerOption configures a Coercer.
type CoercerOption func(*Coercer)

// WithCatalog sets the catalog used to parse textual magnitudes; defaults to
// the time catalog.
func WithCatalog(catalog Catalog) CoercerOption {
	return func(c *Coercer) {
		c.catalog = catalog
	}
}

// WithUnit registers the unit applied to a parameter name.
func WithUnit(name, unit string) CoercerOption {
	return func(c *Coercer) {
		c.units[name] = unit
	}
}

// NewCoercer constructs a unit-applying coercer.
func NewCoercer(opts ...CoercerOption) *Coercer {
	c := &Coercer{
		catalog: Time(),
		units:   map[string]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// SetUnit registers or replaces the unit for a parameter name; an empty unit
// unregisters it. File loaders use this to adopt units found in payloads.
func (c *Coercer) SetUnit(name, unit string) {
	if unit == "" {
		delete(c.units, name)
		return
	}
	c.units[name] = unit
}

// Unit reports the unit registered for name.
func (c *Coercer) Unit(name string) (string, bool) {
	unit, ok := c.units[name]
	return unit, ok
}

// Coerce applies the registered unit: numeric magnitudes (and numeric
// strings, which text formats produce) become quantities tagged with it.
func (c *Coercer) Coerce(name string, raw any) (params.CoerceResult, error) {
	unit, ok := c.units[name]
	if !ok {
		return params.CoerceResult{Value: raw}, nil
	}

	switch v := raw.(type) {
	case nil:
		return params.CoerceResult{Value: raw}, nil
	case Quantity:
		return params.CoerceResult{Value: v}, nil
	case float64:
		return c.quantity(v, unit), nil
	case float32:
		return c.quantity(float64(v), unit), nil
	case int:
		return c.quantity(float64(v), unit), nil
	case int32:
		return c.quantity(float64(v), unit), nil
	case int64:
		return c.quantity(float64(v), unit), nil
	case string:
		if value, err := strconv.ParseFloat(v, 64); err == nil {
			return c.quantity(value, unit), nil
		}
		if q, err := Parse(v, c.catalog); err == nil {
			return params.CoerceResult{Value: q, Desc: "parsed quantity"}, nil
		}
		return params.CoerceResult{Value: raw}, fmt.Errorf("units: cannot apply %q to %q", unit, v)
	default:
		return params.CoerceResult{Value: raw}, fmt.Errorf("units: cannot apply %q to %T value", unit, raw)
	}
}

func (c *Coercer) quantity(value float64, unit string) params.CoerceResult {
	return params.CoerceResult{
		Value: Quantity{Value: value, Unit: unit},
		Desc:  "applied unit " + unit,
	}
}
