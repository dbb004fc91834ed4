package temporal

import (
	"fmt"
	"time"

	"github.com/goliatone/go-params"
)

// Coercer interprets time expressions for the parameter names it tracks.
// Values that are already times, and names it does not track, pass through.
type Coercer struct {
	names map[string]struct{}
	now   func() time.Time
}

// CoercerOption configures a Coercer.
type CoercerOption func(*Coercer)

// WithNames registers the parameter names interpreted as times.
func WithNames(names ...string) CoercerOption {
	return func(c *Coercer) {
		for _, name := range names {
			c.names[name] = struct{}{}
		}
	}
}

// WithNow replaces the reference clock, mainly for tests.
func WithNow(now func() time.Time) CoercerOption {
	return func(c *Coercer) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCoercer constructs a time-interpreting coercer.
func NewCoercer(opts ...CoercerOption) *Coercer {
	c := &Coercer{
		names: map[string]struct{}{},
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Track registers additional parameter names after construction.
func (c *Coercer) Track(names ...string) {
	for _, name := range names {
		c.names[name] = struct{}{}
	}
}

// Tracks reports whether name is interpreted as a time.
func (c *Coercer) Tracks(name string) bool {
	_, ok := c.names[name]
	return ok
}

// Coerce interprets string values of tracked names against the clock.
func (c *Coercer) Coerce(name string, raw any) (params.CoerceResult, error) {
	if !c.Tracks(name) {
		return params.CoerceResult{Value: raw}, nil
	}

	switch v := raw.(type) {
	case time.Time:
		return params.CoerceResult{Value: v, Kind: params.KindTemporal}, nil
	case *time.Time:
		if v == nil {
			return params.CoerceResult{Value: raw}, fmt.Errorf("temporal: nil time for %q", name)
		}
		return params.CoerceResult{Value: *v, Kind: params.KindTemporal}, nil
	case time.Duration:
		return params.CoerceResult{Value: v, Kind: params.KindTemporal}, nil
	case string:
		at, err := Interpret(v, c.now())
		if err != nil {
			return params.CoerceResult{Value: raw}, err
		}
		return params.CoerceResult{
			Value: at,
			Kind:  params.KindTemporal,
			Desc:  "interpreted time",
		}, nil
	case int:
		return secondsResult(float64(v)), nil
	case int32:
		return secondsResult(float64(v)), nil
	case int64:
		return secondsResult(float64(v)), nil
	case float32:
		return secondsResult(float64(v)), nil
	case float64:
		return secondsResult(v), nil
	default:
		return params.CoerceResult{Value: raw}, fmt.Errorf("temporal: cannot interpret %T value for %q", raw, name)
	}
}

// Bare numbers on a tracked name read as second counts.
func secondsResult(seconds float64) params.CoerceResult {
	return params.CoerceResult{
		Value: time.Duration(seconds * float64(time.Second)),
		Kind:  params.KindTemporal,
		Desc:  "seconds",
	}
}
