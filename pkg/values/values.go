// Package values holds the value model shared by every dataforge container:
// the missing-value marker, the natural total order used by sorting, and the
// equality used to match merge keys.
package values

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"time"

	dferr "dataforge/pkg/error"
)

// MissingValue is the type of the Missing marker.
type MissingValue struct{}

func (MissingValue) String() string {
	return "<missing>"
}

// Missing marks a cell that has no source datum, for example a column that
// one concatenated frame has and another lacks. It is distinct from every
// data value, including nil and the zero values.
var Missing = MissingValue{}

// IsMissing reports whether v is the Missing marker.
func IsMissing(v any) bool {
	_, ok := v.(MissingValue)
	return ok
}

// Comparator orders two values: negative when a sorts before b, zero when
// they tie, positive otherwise. It fails when the two values have no
// defined relative order.
type Comparator[V any] func(a, b V) (int, error)

// Equality decides whether two values match.
type Equality[V any] func(a, b V) bool

// Natural returns the comparator for a statically ordered value domain.
func Natural[V cmp.Ordered]() Comparator[V] {
	return func(a, b V) (int, error) {
		return cmp.Compare(a, b), nil
	}
}

// Dynamic returns a comparator that applies Compare to the boxed values.
// It is the default ordering for containers whose value type is not known
// to be ordered at compile time.
func Dynamic[V any]() Comparator[V] {
	return func(a, b V) (int, error) {
		return Compare(any(a), any(b))
	}
}

// Reverse flips a comparator.
func Reverse[V any](c Comparator[V]) Comparator[V] {
	return func(a, b V) (int, error) {
		r, err := c(a, b)
		return -r, err
	}
}

type numKind int

const (
	notNumeric numKind = iota
	signed
	unsigned
	floating
)

func numericKind(v reflect.Value) numKind {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signed
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsigned
	case reflect.Float32, reflect.Float64:
		return floating
	default:
		return notNumeric
	}
}

func asFloat(v reflect.Value, k numKind) float64 {
	switch k {
	case signed:
		return float64(v.Int())
	case unsigned:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

// Compare is the natural total order over the dynamic value domain:
//   - Missing sorts before everything else and ties with itself
//   - numbers of any Go numeric type compare by numeric value
//   - strings compare lexically, bools as false < true
//   - time.Time compares chronologically
//
// Any other pairing, for example a string against a number, fails with a
// NOT_COMPARABLE error.
func Compare(a, b any) (int, error) {
	aMissing, bMissing := IsMissing(a), IsMissing(b)
	switch {
	case aMissing && bMissing:
		return 0, nil
	case aMissing:
		return -1, nil
	case bMissing:
		return 1, nil
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y), nil
		}
	case bool:
		if y, ok := b.(bool); ok {
			return compareBool(x, y), nil
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), nil
		}
	}

	if a != nil && b != nil {
		av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
		ak, bk := numericKind(av), numericKind(bv)
		switch {
		case ak == signed && bk == signed:
			return cmp.Compare(av.Int(), bv.Int()), nil
		case ak == unsigned && bk == unsigned:
			return cmp.Compare(av.Uint(), bv.Uint()), nil
		case ak != notNumeric && bk != notNumeric:
			return cmp.Compare(asFloat(av, ak), asFloat(bv, bk)), nil
		}
	}

	return 0, dferr.Newf(dferr.ErrCategoryOrdering, dferr.CodeNotComparable,
		"cannot order %T against %T", a, b).
		WithDetail(fmt.Sprintf("%v vs %v", a, b)).
		In("Compare", "values")
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// Equal is the default key equality. Numbers match across Go numeric types
// by value; every other pair matches when the values are == (for comparable
// dynamic types) or reflect.DeepEqual (for slices, maps and the like).
// Missing equals Missing.
func Equal(a, b any) bool {
	if ka, ok := Key(a); ok {
		if kb, ok := Key(b); ok {
			return ka == kb
		}
	}
	return reflect.DeepEqual(a, b)
}

type floatKey float64

// floatCanonical maps an integral float to the key an integer of the same
// value uses: int64 inside its range, uint64 above it. Every other float,
// including NaN and the infinities, keys as itself.
func floatCanonical(f float64) any {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return floatKey(f)
	}
	switch {
	case f >= -(1<<63) && f < 1<<63:
		return int64(f)
	case f >= 1<<63 && f < 1<<64:
		return uint64(f)
	}
	return floatKey(f)
}

// Key returns a hashable canonical form of v such that Equal(a, b) holds
// exactly when Key(a) == Key(b). Integral numbers of every numeric type map
// to the same key. The second result is false when v is not hashable.
func Key(v any) (any, bool) {
	if v == nil {
		return nil, true
	}

	rv := reflect.ValueOf(v)
	switch numericKind(rv) {
	case signed:
		return rv.Int(), true
	case unsigned:
		u := rv.Uint()
		if u <= 1<<63-1 {
			return int64(u), true
		}
		return u, true
	case floating:
		return floatCanonical(rv.Float()), true
	}

	// rv.Comparable also inspects dynamic contents, so an interface field
	// holding a slice is rejected here rather than panicking as a map key.
	if !rv.Comparable() {
		return nil, false
	}
	return v, true
}

// Format renders a value for display.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case MissingValue:
		return ""
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
