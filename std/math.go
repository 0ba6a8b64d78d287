package std

// Package std - math.go
// Bundled std.math module: the numeric builtins the teacher carries in
// std/math.go (abs, min/max, rounding, trig, sqrt/pow, random), adapted
// to take/return value.Value and report errors instead of an Error
// object, since Chiron's runtime errors flow as Go errors (spec.md 4.4)
// rather than as a sentinel return value.

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/chiron-lang/chiron/value"
)

func asFloat(v value.Value) (float64, error) {
	switch n := v.(type) {
	case *value.Integer:
		return float64(n.Value), nil
	case *value.Float:
		return n.Value, nil
	default:
		return 0, fmt.Errorf("expected a number, got %s", v.GetType())
	}
}

func oneFloatArg(name string, fn func(float64) float64) *callableHostFuncBuilder {
	return &callableHostFuncBuilder{name: name, fn: func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		x, err := asFloat(args[0])
		if err != nil {
			return nil, err
		}
		return &value.Float{Value: fn(x)}, nil
	}}
}

// callableHostFuncBuilder is a tiny adapter so module files can declare
// a builtin as "name + positional-only Go func" and let build()
// wrap it into the callback signature std.Module.Functions expects
// (positional args plus a keyword map every math/strings/... builtin
// ignores, since none of them take keyword arguments).
type callableHostFuncBuilder struct {
	name string
	fn   func(args []value.Value) (value.Value, error)
}

func (b *callableHostFuncBuilder) build() *hostFuncEntry {
	return &hostFuncEntry{name: b.name, fn: func(positional []value.Value, _ map[string]value.Value) (value.Value, error) {
		return b.fn(positional)
	}}
}

type hostFuncEntry struct {
	name string
	fn   func(positional []value.Value, keyword map[string]value.Value) (value.Value, error)
}

func init() {
	m := newModule("math")

	simple := []*callableHostFuncBuilder{
		oneFloatArg("sqrt", math.Sqrt),
		oneFloatArg("floor", math.Floor),
		oneFloatArg("ceil", math.Ceil),
		oneFloatArg("round", math.Round),
		oneFloatArg("sin", math.Sin),
		oneFloatArg("cos", math.Cos),
		oneFloatArg("tan", math.Tan),
		oneFloatArg("asin", math.Asin),
		oneFloatArg("acos", math.Acos),
		oneFloatArg("atan", math.Atan),
		oneFloatArg("log", math.Log),
		oneFloatArg("log10", math.Log10),
		oneFloatArg("exp", math.Exp),
	}
	for _, b := range simple {
		e := b.build()
		m.Functions[e.name] = hostFunc(e.name, e.fn)
	}

	m.Functions["abs"] = hostFunc("abs", mathAbs)
	m.Functions["min"] = hostFunc("min", mathMin)
	m.Functions["max"] = hostFunc("max", mathMax)
	m.Functions["pow"] = hostFunc("pow", mathPow)
	m.Functions["atan2"] = hostFunc("atan2", mathAtan2)
	m.Functions["rand"] = hostFunc("rand", mathRand)
	m.Functions["rand_int"] = hostFunc("rand_int", mathRandInt)

	m.Values["pi"] = &value.Float{Value: math.Pi}
	m.Values["e"] = &value.Float{Value: math.E}

	register(m)
}

func mathAbs(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("abs expects 1 argument, got %d", len(args))
	}
	switch n := args[0].(type) {
	case *value.Integer:
		v := n.Value
		if v < 0 {
			v = -v
		}
		return &value.Integer{Value: v}, nil
	case *value.Float:
		return &value.Float{Value: math.Abs(n.Value)}, nil
	default:
		return nil, fmt.Errorf("abs expects a number, got %s", n.GetType())
	}
}

func mathMin(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	return mathMinMax(args, false)
}

func mathMax(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	return mathMinMax(args, true)
}

func mathMinMax(args []value.Value, wantMax bool) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expects 2 arguments, got %d", len(args))
	}
	a, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asFloat(args[1])
	if err != nil {
		return nil, err
	}
	pickA := a < b
	if wantMax {
		pickA = a > b
	}
	if pickA {
		return args[0], nil
	}
	return args[1], nil
}

func mathPow(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
	}
	base, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	exp, err := asFloat(args[1])
	if err != nil {
		return nil, err
	}
	return &value.Float{Value: math.Pow(base, exp)}, nil
}

func mathAtan2(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("atan2 expects 2 arguments, got %d", len(args))
	}
	y, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	x, err := asFloat(args[1])
	if err != nil {
		return nil, err
	}
	return &value.Float{Value: math.Atan2(y, x)}, nil
}

func mathRand(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("rand expects no arguments, got %d", len(args))
	}
	return &value.Float{Value: rand.Float64()}, nil
}

func mathRandInt(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("rand_int expects 2 arguments, got %d", len(args))
	}
	lo, ok := args[0].(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("rand_int expects integer bounds, got %s", args[0].GetType())
	}
	hi, ok := args[1].(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("rand_int expects integer bounds, got %s", args[1].GetType())
	}
	if hi.Value < lo.Value {
		return nil, fmt.Errorf("rand_int: upper bound below lower bound")
	}
	return &value.Integer{Value: lo.Value + rand.Int63n(hi.Value-lo.Value+1)}, nil
}
