// Package value defines Chiron's runtime value sum: the tagged union of
// integer, float, boolean, character, string, array, tuple, map, and unit
// values that flow through the evaluator. Host functions, user-defined
// callables, and host modules also implement Value, but their concrete
// types live in the callable and std packages respectively, to avoid an
// import cycle back into the environment that holds them (mirroring the
// teacher's split between its objects and function packages).
package value

import (
	"fmt"
	"strings"
)

// Type identifies the kind of a Value at runtime. It is a string so it
// prints legibly in error messages without a separate stringer method.
type Type string

const (
	IntegerType Type = "int"
	FloatType   Type = "float"
	BooleanType Type = "bool"
	CharType    Type = "char"
	StringType  Type = "str"
	ArrayType   Type = "array"
	TupleType   Type = "tuple"
	MapType     Type = "map"
	UnitType    Type = "unit"

	// These kinds are implemented outside this package; GetType still
	// returns one of these constants so code here can switch on kind
	// without importing callable/std.
	FunctionType     Type = "func"
	HostFunctionType Type = "hostfunc"
	ModuleType       Type = "module"
)

// Value is the interface every Chiron runtime value implements.
type Value interface {
	// GetType returns the value's kind, used for type dispatch and
	// display.
	GetType() Type
	// ToString returns the value's display form (what `print` shows).
	ToString() string
	// ToObject returns a debug form including type information. The REPL
	// shows an expression result with ToString, not ToObject.
	ToObject() string
}

// Integer is a 64-bit signed integer value.
type Integer struct{ Value int64 }

func (i *Integer) GetType() Type    { return IntegerType }
func (i *Integer) ToString() string { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) ToObject() string { return fmt.Sprintf("<int(%d)>", i.Value) }

// Float is a 64-bit floating point value.
type Float struct{ Value float64 }

func (f *Float) GetType() Type    { return FloatType }
func (f *Float) ToString() string { return strconvFloat(f.Value) }
func (f *Float) ToObject() string { return fmt.Sprintf("<float(%s)>", strconvFloat(f.Value)) }

func strconvFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Boolean is a true/false value.
type Boolean struct{ Value bool }

func (b *Boolean) GetType() Type    { return BooleanType }
func (b *Boolean) ToString() string { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) ToObject() string { return fmt.Sprintf("<bool(%t)>", b.Value) }

// Character is a single Unicode code point.
type Character struct{ Value rune }

func (c *Character) GetType() Type    { return CharType }
func (c *Character) ToString() string { return string(c.Value) }
func (c *Character) ToObject() string { return fmt.Sprintf("<char(%c)>", c.Value) }

// String is a Chiron string value.
type String struct{ Value string }

func (s *String) GetType() Type    { return StringType }
func (s *String) ToString() string { return s.Value }
func (s *String) ToObject() string { return fmt.Sprintf("<str(%q)>", s.Value) }

// Unit represents the absence of a value (the result of statements and of
// functions that fall off the end of their body without a return).
type Unit struct{}

func (u *Unit) GetType() Type    { return UnitType }
func (u *Unit) ToString() string { return "unit" }
func (u *Unit) ToObject() string { return "<unit>" }

// Array is a mutable, ordered, homogeneous-by-convention collection.
type Array struct{ Elements []Value }

func (a *Array) GetType() Type { return ArrayType }
func (a *Array) ToString() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.ToString()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *Array) ToObject() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.ToObject()
	}
	return "<array([" + strings.Join(parts, ", ") + "])>"
}

// Tuple is an immutable, ordered, heterogeneous collection.
type Tuple struct{ Elements []Value }

func (t *Tuple) GetType() Type { return TupleType }
func (t *Tuple) ToString() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.ToString()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) ToObject() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.ToObject()
	}
	return "<tuple((" + strings.Join(parts, ", ") + "))>"
}

// Map is Chiron's Value-to-Value associative container. Only values from
// the hashable subset named in spec.md 9 (integer, float, boolean,
// character, string, tuple-of-hashable) may be used as keys; HashKey
// rejects everything else.
type Map struct {
	pairs map[string]mapEntry
	order []string
}

type mapEntry struct {
	key Value
	val Value
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{pairs: make(map[string]mapEntry)}
}

func (m *Map) GetType() Type { return MapType }

func (m *Map) ToString() string {
	parts := make([]string, 0, len(m.order))
	for _, h := range m.order {
		e := m.pairs[h]
		parts = append(parts, e.key.ToString()+": "+e.val.ToString())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (m *Map) ToObject() string {
	parts := make([]string, 0, len(m.order))
	for _, h := range m.order {
		e := m.pairs[h]
		parts = append(parts, e.key.ToObject()+": "+e.val.ToObject())
	}
	return "<map({" + strings.Join(parts, ", ") + "})>"
}

// Set inserts or overwrites the binding for key, returning an error if key
// is not from the hashable subset.
func (m *Map) Set(key, val Value) error {
	h, err := HashKey(key)
	if err != nil {
		return err
	}
	if _, exists := m.pairs[h]; !exists {
		m.order = append(m.order, h)
	}
	m.pairs[h] = mapEntry{key: key, val: val}
	return nil
}

// Get looks up key, returning (value, true) if present.
func (m *Map) Get(key Value) (Value, bool) {
	h, err := HashKey(key)
	if err != nil {
		return nil, false
	}
	e, ok := m.pairs[h]
	if !ok {
		return nil, false
	}
	return e.val, true
}

// Delete removes key's binding if present.
func (m *Map) Delete(key Value) {
	h, err := HashKey(key)
	if err != nil {
		return
	}
	if _, ok := m.pairs[h]; ok {
		delete(m.pairs, h)
		for i, k := range m.order {
			if k == h {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.order) }

// Keys returns the map's keys in insertion order.
func (m *Map) Keys() []Value {
	out := make([]Value, 0, len(m.order))
	for _, h := range m.order {
		out = append(out, m.pairs[h].key)
	}
	return out
}

// Entries returns the map's (key, value) pairs in insertion order.
func (m *Map) Entries() [][2]Value {
	out := make([][2]Value, 0, len(m.order))
	for _, h := range m.order {
		e := m.pairs[h]
		out = append(out, [2]Value{e.key, e.val})
	}
	return out
}

// HashKey computes a canonical, order-independent string encoding for a
// Value usable as a Go map key. It returns an error for values outside the
// hashable subset (spec.md 9): arrays, maps, units, functions, and modules
// are not hashable; tuples are hashable only if every element is.
func HashKey(v Value) (string, error) {
	switch val := v.(type) {
	case *Integer:
		return "i:" + fmt.Sprintf("%d", val.Value), nil
	case *Float:
		return "f:" + fmt.Sprintf("%v", val.Value), nil
	case *Boolean:
		return "b:" + fmt.Sprintf("%t", val.Value), nil
	case *Character:
		return "c:" + string(val.Value), nil
	case *String:
		return "s:" + val.Value, nil
	case *Tuple:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			h, err := HashKey(e)
			if err != nil {
				return "", fmt.Errorf("unhashable tuple element: %w", err)
			}
			parts[i] = h
		}
		return "t:(" + strings.Join(parts, ",") + ")", nil
	default:
		return "", fmt.Errorf("unhashable map key of type %s", v.GetType())
	}
}

// Truthy implements Chiron's truthiness rule: booleans use their own
// value; integers and floats are truthy when nonzero; strings, arrays,
// tuples, and maps are truthy when non-empty; unit is always falsy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case *Boolean:
		return val.Value
	case *Integer:
		return val.Value != 0
	case *Float:
		return val.Value != 0
	case *String:
		return val.Value != ""
	case *Array:
		return len(val.Elements) > 0
	case *Tuple:
		return len(val.Elements) > 0
	case *Map:
		return val.Len() > 0
	case *Unit:
		return false
	default:
		return true
	}
}

// Equal implements Chiron's `==`/`!=` structural equality for Value sum
// members comparable without coercion rules beyond numeric promotion.
func Equal(a, b Value) bool {
	if ai, ok := a.(*Integer); ok {
		if bi, ok := b.(*Integer); ok {
			return ai.Value == bi.Value
		}
		if bf, ok := b.(*Float); ok {
			return float64(ai.Value) == bf.Value
		}
		return false
	}
	if af, ok := a.(*Float); ok {
		if bf, ok := b.(*Float); ok {
			return af.Value == bf.Value
		}
		if bi, ok := b.(*Integer); ok {
			return af.Value == float64(bi.Value)
		}
		return false
	}
	ha, erra := HashKey(a)
	hb, errb := HashKey(b)
	if erra == nil && errb == nil {
		return ha == hb
	}
	if aa, ok := a.(*Array); ok {
		ba, ok := b.(*Array)
		if !ok || len(aa.Elements) != len(ba.Elements) {
			return false
		}
		for i := range aa.Elements {
			if !Equal(aa.Elements[i], ba.Elements[i]) {
				return false
			}
		}
		return true
	}
	return false
}
