// Package temporal resolves human-friendly time expressions. It understands
// calendar words ("now", "yesterday"), signed offsets ("+2h", "-30m"), year
// and year-month shortcuts, and a catalog of timestamp layouts.
package temporal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-params/pkg/units"
)

// NamedTime binds a calendar word to its offset from the reference clock.
type NamedTime struct {
	Name   string
	Offset time.Duration
}

// namedTimes are matched as prefixes, in order. "today" means the current
// instant, not midnight.
var namedTimes = []NamedTime{
	{Name: "now", Offset: 0},
	{Name: "current", Offset: 0},
	{Name: "today", Offset: 0},
	{Name: "yesterday", Offset: -24 * time.Hour},
	{Name: "tomorrow", Offset: 24 * time.Hour},
}

// NamedTimes returns the recognized calendar words in match order.
func NamedTimes() []NamedTime {
	out := make([]NamedTime, len(namedTimes))
	copy(out, namedTimes)
	return out
}

// layouts are tried in order; minute-resolution forms with two- and
// four-digit years, separated by '-', '/', '_', space, or nothing.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04", "06-01-02T15:04",
	"2006-01-02 15:04", "06-01-02 15:04",
	"2006/01/02T15:04", "06/01/02T15:04",
	"2006/01/02 15:04", "06/01/02 15:04",
	"02/01/2006T15:04", "02/01/06T15:04",
	"02/01/2006 15:04", "02/01/06 15:04",
	"20060102T1504", "060102T1504",
	"20060102 1504", "060102 1504",
	"20060102_1504", "060102_1504",
	"200601021504", "0601021504",
	"2006-01-02",
}

// Layouts returns the timestamp layouts tried by Interpret, in order.
func Layouts() []string {
	out := make([]string, len(layouts))
	copy(out, layouts)
	return out
}

var errOffset = errors.New("temporal: time offset must have a number and a time unit (e.g. '+2h', '-30m', '+15s')")

// ParseOffset parses a signed duration such as "+2h" or "-30m". Text before
// the sign is ignored, so "now+2h" parses the same as "+2h".
func ParseOffset(s string) (time.Duration, error) {
	sep, direction := "-", -1.0
	if strings.Contains(s, "+") {
		sep, direction = "+", 1.0
	}
	parts := strings.Split(s, sep)
	if len(parts) == 1 {
		return 0, errOffset
	}
	tail := strings.ToLower(parts[len(parts)-1])

	catalog := units.Time()
	for _, unit := range catalog.Names() {
		idx := strings.Index(tail, unit)
		if idx < 0 {
			continue
		}
		magnitude, err := strconv.ParseFloat(strings.TrimSpace(tail[:idx]), 64)
		if err != nil {
			continue
		}
		factor, _ := catalog.Factor(unit)
		return time.Duration(direction * magnitude * factor * float64(time.Second)), nil
	}
	return 0, errOffset
}

// Interpret resolves value against the reference clock ref. Calendar words
// match as prefixes and may carry an offset ("yesterday-30m"). Four- and
// seven-character values are read as a year and a year-month. Everything
// else is tried against Layouts.
func Interpret(value string, ref time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, errors.New("temporal: empty time expression")
	}

	lower := strings.ToLower(trimmed)
	for _, named := range namedTimes {
		if !strings.HasPrefix(lower, named.Name) {
			continue
		}
		at := ref.Add(named.Offset)
		if strings.ContainsAny(trimmed, "+-") {
			offset, err := ParseOffset(trimmed)
			if err != nil {
				return time.Time{}, err
			}
			at = at.Add(offset)
		}
		return at, nil
	}

	switch len(trimmed) {
	case 4:
		if t, err := time.Parse("2006", trimmed); err == nil {
			return t, nil
		}
	case 7:
		if t, err := time.Parse("2006-01", trimmed); err == nil {
			return t, nil
		}
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("temporal: cannot interpret %q as a time", value)
}
