package std

// Package std - collections.go
// Bundled std.collections module: in-place array mutation builtins
// (push/pop/sort/reverse/contains/index), grounded on the teacher's
// std/arrays.go and std/list.go, plus the list()/set() constructors
// from SPEC_FULL.md's supplemented feature #1. list() is just sugar
// for an Array (Chiron keeps spec.md's closed Value sum exactly as
// written — no new Value kind); set() is a Map whose values are all
// the Unit sentinel, so membership is a plain map lookup.

import (
	"fmt"
	"sort"

	"github.com/chiron-lang/chiron/value"
)

func asArray(v value.Value) (*value.Array, error) {
	a, ok := v.(*value.Array)
	if !ok {
		return nil, fmt.Errorf("expected an array, got %s", v.GetType())
	}
	return a, nil
}

func init() {
	m := newModule("collections")

	m.Functions["list"] = hostFunc("list", collectionsList)
	m.Functions["set"] = hostFunc("set", collectionsSet)

	m.Functions["push"] = hostFunc("push", collectionsPush)
	m.Functions["pop"] = hostFunc("pop", collectionsPop)
	m.Functions["shift"] = hostFunc("shift", collectionsShift)
	m.Functions["unshift"] = hostFunc("unshift", collectionsUnshift)
	m.Functions["sort"] = hostFunc("sort", collectionsSort)
	m.Functions["reverse"] = hostFunc("reverse", collectionsReverse)
	m.Functions["contains"] = hostFunc("contains", collectionsContains)
	m.Functions["index"] = hostFunc("index", collectionsIndex)
	m.Functions["clone"] = hostFunc("clone", collectionsClone)

	register(m)
}

func collectionsList(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	elements := make([]value.Value, len(args))
	copy(elements, args)
	return &value.Array{Elements: elements}, nil
}

func collectionsSet(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	m := value.NewMap()
	for _, arg := range args {
		if err := m.Set(arg, &value.Unit{}); err != nil {
			return nil, fmt.Errorf("set: %w", err)
		}
	}
	return m, nil
}

// collectionsPush mutates its argument array in place, matching the
// teacher's push_array, and also returns it so calls can be chained
// or the result discarded.
func collectionsPush(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("push expects an array and at least one element")
	}
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	arr.Elements = append(arr.Elements, args[1:]...)
	return arr, nil
}

func collectionsPop(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("pop expects 1 argument, got %d", len(args))
	}
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return nil, fmt.Errorf("pop: array is empty")
	}
	last := arr.Elements[len(arr.Elements)-1]
	arr.Elements = arr.Elements[:len(arr.Elements)-1]
	return last, nil
}

func collectionsShift(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("shift expects 1 argument, got %d", len(args))
	}
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return nil, fmt.Errorf("shift: array is empty")
	}
	first := arr.Elements[0]
	arr.Elements = arr.Elements[1:]
	return first, nil
}

func collectionsUnshift(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("unshift expects an array and at least one element")
	}
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	arr.Elements = append(append([]value.Value{}, args[1:]...), arr.Elements...)
	return arr, nil
}

func compareValues(a, b value.Value) (int, error) {
	af, aIsNum := numericOf(a)
	bf, bIsNum := numericOf(b)
	if aIsNum && bIsNum {
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	as, aIsStr := a.(*value.String)
	bs, bIsStr := b.(*value.String)
	if aIsStr && bIsStr {
		switch {
		case as.Value < bs.Value:
			return -1, nil
		case as.Value > bs.Value:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, fmt.Errorf("cannot compare %s and %s", a.GetType(), b.GetType())
}

func numericOf(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case *value.Integer:
		return float64(n.Value), true
	case *value.Float:
		return n.Value, true
	default:
		return 0, false
	}
}

func collectionsSort(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sort expects 1 argument, got %d", len(args))
	}
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	var sortErr error
	sort.SliceStable(arr.Elements, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		cmp, err := compareValues(arr.Elements[i], arr.Elements[j])
		if err != nil {
			sortErr = err
			return false
		}
		return cmp < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return arr, nil
}

func collectionsReverse(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("reverse expects 1 argument, got %d", len(args))
	}
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(arr.Elements)-1; i < j; i, j = i+1, j-1 {
		arr.Elements[i], arr.Elements[j] = arr.Elements[j], arr.Elements[i]
	}
	return arr, nil
}

func collectionsContains(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("contains expects 2 arguments, got %d", len(args))
	}
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	for _, elem := range arr.Elements {
		if value.Equal(elem, args[1]) {
			return &value.Boolean{Value: true}, nil
		}
	}
	return &value.Boolean{Value: false}, nil
}

func collectionsIndex(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("index expects 2 arguments, got %d", len(args))
	}
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	for i, elem := range arr.Elements {
		if value.Equal(elem, args[1]) {
			return &value.Integer{Value: int64(i)}, nil
		}
	}
	return &value.Integer{Value: -1}, nil
}

func collectionsClone(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("clone expects 1 argument, got %d", len(args))
	}
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	cloned := make([]value.Value, len(arr.Elements))
	copy(cloned, arr.Elements)
	return &value.Array{Elements: cloned}, nil
}
