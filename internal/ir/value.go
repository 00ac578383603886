package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface representing the closed prop-value union.
// Only Null, String, Int, Bool, List, and Object implement it.
// NO floats - floats break deterministic serialization and are forbidden.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents an explicit null value.
type Null struct{}

func (Null) value() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// String represents a string value.
type String string

func (String) value() {}

// Int represents an integer value. Always int64, never float64.
type Int int64

func (Int) value() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// List represents an ordered sequence of values.
type List []Value

func (List) value() {}

// Object represents a map of string keys to values.
// Use SortedKeys() for deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// Props is a token's mutable key-value bag. Same representation as Object;
// the distinct name marks the ownership boundary: Props belong to exactly
// one token and are cloned from the token definition at construction.
type Props = Object

// Coords wraps an integer coordinate tuple as a List value, so coordinates
// can ride through choice params and journal records like any other value.
func Coords(coords []int) List {
	l := make(List, len(coords))
	for i, c := range coords {
		l[i] = Int(c)
	}
	return l
}

// CoordsOf is the inverse of Coords. Returns false if v is not a List of
// Ints.
func CoordsOf(v Value) ([]int, bool) {
	l, ok := v.(List)
	if !ok {
		return nil, false
	}
	coords := make([]int, len(l))
	for i, elem := range l {
		n, ok := elem.(Int)
		if !ok {
			return nil, false
		}
		coords[i] = int(n)
	}
	return coords, true
}

// Clone returns a deep copy of the object. Used to give each token its own
// props bag independent of the shared definition.
func (obj Object) Clone() Object {
	if obj == nil {
		return nil
	}
	out := make(Object, len(obj))
	for k, v := range obj {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v Value) Value {
	switch val := v.(type) {
	case List:
		out := make(List, len(val))
		for i, elem := range val {
			out[i] = cloneValue(elem)
		}
		return out
	case Object:
		return val.Clone()
	default:
		// Null, String, Int, Bool are immutable
		return v
	}
}

// Equal reports structural equality of two values. Lists compare
// elementwise in order; Objects compare by key set and per-key equality.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, elem := range av {
			other, ok := bv[k]
			if !ok || !Equal(elem, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings uses UTF-8 which produces a DIFFERENT order.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering as
// required by RFC 8785 (Canonical JSON). Must use unicode/utf16.Encode for
// correct surrogate handling.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := len(a16)
	if len(b16) < minLen {
		minLen = len(b16)
	}

	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	if len(a16) < len(b16) {
		return -1
	}
	if len(a16) > len(b16) {
		return 1
	}
	return 0
}

// FromGo converts a plain Go value (as produced by yaml/json decoding) to a
// Value. Supported inputs: nil, string, int, int64, bool, []any,
// map[string]any, and Value itself. Floats are rejected.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case bool:
		return Bool(val), nil
	case float64, float32:
		return nil, fmt.Errorf("floats are forbidden: %v", val)
	case []any:
		out := make(List, len(val))
		for i, elem := range val {
			conv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil
	case map[string]any:
		out := make(Object, len(val))
		for k, elem := range val {
			conv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			out[k] = conv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// UnmarshalJSON implements json.Unmarshaler for Object.
// Integers decode as Int; any fractional number is rejected.
func (obj *Object) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Object, len(raw))
	for k, msg := range raw {
		v, err := unmarshalValue(msg)
		if err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = v
	}
	*obj = out
	return nil
}

func unmarshalValue(data json.RawMessage) (Value, error) {
	var probe any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&probe); err != nil {
		return nil, err
	}
	return fromDecoded(probe)
}

func fromDecoded(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer number %q is forbidden", val.String())
		}
		return Int(n), nil
	case []any:
		out := make(List, len(val))
		for i, elem := range val {
			conv, err := fromDecoded(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil
	case map[string]any:
		out := make(Object, len(val))
		for k, elem := range val {
			conv, err := fromDecoded(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			out[k] = conv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported JSON value: %T", v)
	}
}
