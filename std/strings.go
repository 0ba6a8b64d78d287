package std

// Package std - strings.go
// Bundled std.strings module, grounded on the teacher's std/strings.go
// (case conversion, trimming, splitting/joining, searching, char-code
// conversion), adapted to Chiron's value.Value and error-returning
// builtin signature.

import (
	"fmt"
	"strings"

	"github.com/chiron-lang/chiron/value"
)

func asString(v value.Value) (string, error) {
	s, ok := v.(*value.String)
	if !ok {
		return "", fmt.Errorf("expected a string, got %s", v.GetType())
	}
	return s.Value, nil
}

func oneStringArg(name string, fn func(string) string) *hostFuncEntry {
	return &hostFuncEntry{name: name, fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		s, err := asString(args[0])
		if err != nil {
			return nil, err
		}
		return &value.String{Value: fn(s)}, nil
	}}
}

func init() {
	m := newModule("strings")

	for _, e := range []*hostFuncEntry{
		oneStringArg("upper", strings.ToUpper),
		oneStringArg("lower", strings.ToLower),
		oneStringArg("trim", strings.TrimSpace),
		oneStringArg("ltrim", func(s string) string { return strings.TrimLeft(s, " \t\n\r") }),
		oneStringArg("rtrim", func(s string) string { return strings.TrimRight(s, " \t\n\r") }),
		oneStringArg("reverse", reverseString),
		oneStringArg("capitalize", capitalizeString),
	} {
		m.Functions[e.name] = hostFunc(e.name, e.fn)
	}

	m.Functions["split"] = hostFunc("split", stringsSplit)
	m.Functions["join"] = hostFunc("join", stringsJoin)
	m.Functions["replace"] = hostFunc("replace", stringsReplace)
	m.Functions["contains"] = hostFunc("contains", stringsContains)
	m.Functions["index"] = hostFunc("index", stringsIndex)
	m.Functions["ord"] = hostFunc("ord", stringsOrd)
	m.Functions["chr"] = hostFunc("chr", stringsChr)
	m.Functions["starts_with"] = hostFunc("starts_with", stringsStartsWith)
	m.Functions["ends_with"] = hostFunc("ends_with", stringsEndsWith)
	m.Functions["substring"] = hostFunc("substring", stringsSubstring)
	m.Functions["count"] = hostFunc("count", stringsCount)

	register(m)
}

func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func capitalizeString(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

func stringsSplit(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("split expects 2 arguments, got %d", len(args))
	}
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	sep, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	elements := make([]value.Value, len(parts))
	for i, part := range parts {
		elements[i] = &value.String{Value: part}
	}
	return &value.Array{Elements: elements}, nil
}

func stringsJoin(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("join expects 2 arguments, got %d", len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, fmt.Errorf("join expects an array, got %s", args[0].GetType())
	}
	sep, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(arr.Elements))
	for i, elem := range arr.Elements {
		s, err := asString(elem)
		if err != nil {
			return nil, fmt.Errorf("join: element %d is not a string: %w", i, err)
		}
		parts[i] = s
	}
	return &value.String{Value: strings.Join(parts, sep)}, nil
}

func stringsReplace(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("replace expects 3 arguments, got %d", len(args))
	}
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	old, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	new, err := asString(args[2])
	if err != nil {
		return nil, err
	}
	return &value.String{Value: strings.ReplaceAll(s, old, new)}, nil
}

func stringsContains(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("contains expects 2 arguments, got %d", len(args))
	}
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	sub, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	return &value.Boolean{Value: strings.Contains(s, sub)}, nil
}

func stringsIndex(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("index expects 2 arguments, got %d", len(args))
	}
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	sub, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	return &value.Integer{Value: int64(strings.Index(s, sub))}, nil
}

func stringsOrd(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ord expects 1 argument, got %d", len(args))
	}
	c, ok := args[0].(*value.Character)
	if !ok {
		return nil, fmt.Errorf("ord expects a char, got %s", args[0].GetType())
	}
	return &value.Integer{Value: int64(c.Value)}, nil
}

func stringsChr(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("chr expects 1 argument, got %d", len(args))
	}
	n, ok := args[0].(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("chr expects an integer, got %s", args[0].GetType())
	}
	return &value.Character{Value: rune(n.Value)}, nil
}

func stringsStartsWith(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("starts_with expects 2 arguments, got %d", len(args))
	}
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	prefix, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	return &value.Boolean{Value: strings.HasPrefix(s, prefix)}, nil
}

func stringsEndsWith(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("ends_with expects 2 arguments, got %d", len(args))
	}
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	suffix, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	return &value.Boolean{Value: strings.HasSuffix(s, suffix)}, nil
}

func stringsSubstring(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("substring expects 3 arguments, got %d", len(args))
	}
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	start, ok := args[1].(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("substring: start must be an integer")
	}
	end, ok := args[2].(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("substring: end must be an integer")
	}
	runes := []rune(s)
	if start.Value < 0 || end.Value > int64(len(runes)) || start.Value > end.Value {
		return nil, fmt.Errorf("substring: index out of range")
	}
	return &value.String{Value: string(runes[start.Value:end.Value])}, nil
}

func stringsCount(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("count expects 2 arguments, got %d", len(args))
	}
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	sub, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	return &value.Integer{Value: int64(strings.Count(s, sub))}, nil
}
