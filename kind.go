package params

import (
	"reflect"
	"time"
)

// Kind is the closed set of type tags a parameter can carry. Tags describe
// the shape of a committed value; they are not Go types, so distinct Go
// representations of the same shape (int32 and uint64, say) share a tag.
type Kind string

const (
	// KindUntyped marks a declared parameter whose type has not been
	// committed yet. It never describes a concrete value.
	KindUntyped Kind = "untyped"
	// KindBoolean tags true/false values.
	KindBoolean Kind = "boolean"
	// KindInteger tags whole numbers of any width or signedness.
	KindInteger Kind = "integer"
	// KindFloat tags floating point numbers.
	KindFloat Kind = "float"
	// KindString tags text values.
	KindString Kind = "string"
	// KindSequence tags ordered collections (slices and arrays).
	KindSequence Kind = "sequence"
	// KindMapping tags keyed collections.
	KindMapping Kind = "mapping"
	// KindSet tags unordered collections of unique values, conventionally
	// maps with struct{} elements.
	KindSet Kind = "set"
	// KindTemporal tags time-like values such as time.Time and
	// time.Duration.
	KindTemporal Kind = "temporal"
	// KindQuantity tags values that pair a magnitude with a unit.
	KindQuantity Kind = "quantity"
	// KindOther tags values no more specific tag fits.
	KindOther Kind = "other"
)

func (k Kind) String() string { return string(k) }

// Concrete reports whether the tag describes a committed value rather than
// the untyped placeholder.
func (k Kind) Concrete() bool { return k != KindUntyped && k != "" }

// ParseKind converts a string tag into the corresponding Kind. Unrecognised
// values map to KindOther so decoded data always lands inside the closed set.
func ParseKind(value string) Kind {
	switch Kind(value) {
	case KindUntyped, KindBoolean, KindInteger, KindFloat, KindString,
		KindSequence, KindMapping, KindSet, KindTemporal, KindQuantity,
		KindOther:
		return Kind(value)
	default:
		return KindOther
	}
}

// Kinder lets a value pick its own tag instead of going through reflection.
// ParamKind must report one of the tags accepted by ParseKind.
type Kinder interface {
	ParamKind() string
}

// KindOf classifies a value into the tag set. Pointers are followed, the
// Kinder interface wins over reflection, and values that fit nothing more
// specific come back as KindOther. A nil value is KindOther: nil carries no
// shape, and Declare is the way to reserve a name without committing one.
func KindOf(value any) Kind {
	if value == nil {
		return KindOther
	}
	if k, ok := value.(Kinder); ok {
		return ParseKind(k.ParamKind())
	}
	switch value.(type) {
	case time.Time, *time.Time:
		return KindTemporal
	case time.Duration:
		return KindTemporal
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return KindOther
		}
		return KindOf(rv.Elem().Interface())
	}

	switch rv.Kind() {
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindInteger
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.Map:
		if rv.Type().Elem() == reflect.TypeOf(struct{}{}) {
			return KindSet
		}
		return KindMapping
	default:
		return KindOther
	}
}
