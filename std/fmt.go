package std

// Package std - fmt.go
// Bundled std.fmt module (SPEC_FULL.md supplemented feature 4):
// print/println/printf/sprintf, grounded on the teacher's std/common.go
// and std/io.go. print/println/printf/length/typeof additionally get
// installed directly into the global environment by InstallGlobals so
// a Chiron program can call `print(x)` with no import statement, the
// way every worked scenario in spec.md 8 does.

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chiron-lang/chiron/callable"
	"github.com/chiron-lang/chiron/environment"
	"github.com/chiron-lang/chiron/value"
)

func init() {
	m := newModule("fmt")
	m.Functions["print"] = hostFunc("print", fmtPrint(os.Stdout))
	m.Functions["println"] = hostFunc("println", fmtPrintln(os.Stdout))
	m.Functions["printf"] = hostFunc("printf", fmtPrintf(os.Stdout))
	m.Functions["eprintln"] = hostFunc("eprintln", fmtPrintln(os.Stderr))
	m.Functions["sprintf"] = hostFunc("sprintf", fmtSprintf)
	register(m)
}

// InstallGlobals binds the handful of builtins every Chiron program can
// call without an import — print, println, printf, length, typeof,
// to_string — directly into env's callable table, matching the
// teacher's commonMethods (appended both to the global Builtins slice
// and registered as the "common" package). w receives print/println/
// printf output; the evaluator passes its own configured writer
// (os.Stdout by default, a buffer under test), the way the teacher's
// Evaluator.SetWriter redirects its Builtins' output.
func InstallGlobals(env *environment.Environment, w io.Writer) {
	env.DefineFunc("print", &callable.HostFunc{Name: "print", Fn: fmtPrint(w)})
	env.DefineFunc("println", &callable.HostFunc{Name: "println", Fn: fmtPrintln(w)})
	env.DefineFunc("printf", &callable.HostFunc{Name: "printf", Fn: fmtPrintf(w)})
	env.DefineFunc("length", &callable.HostFunc{Name: "length", Fn: globalsLength})
	env.DefineFunc("typeof", &callable.HostFunc{Name: "typeof", Fn: globalsTypeof})
	env.DefineFunc("to_string", &callable.HostFunc{Name: "to_string", Fn: globalsToString})
}

func joinToString(args []value.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.ToString()
	}
	return strings.Join(parts, " ")
}

func fmtPrint(w io.Writer) func([]value.Value, map[string]value.Value) (value.Value, error) {
	return func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		fmt.Fprint(w, joinToString(args))
		return &value.Unit{}, nil
	}
}

func fmtPrintln(w io.Writer) func([]value.Value, map[string]value.Value) (value.Value, error) {
	return func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		fmt.Fprintln(w, joinToString(args))
		return &value.Unit{}, nil
	}
}

func fmtPrintf(w io.Writer) func([]value.Value, map[string]value.Value) (value.Value, error) {
	return func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("printf expects a format string")
		}
		format, err := asString(args[0])
		if err != nil {
			return nil, fmt.Errorf("printf: first argument must be a string: %w", err)
		}
		fmt.Fprintf(w, format, extractAll(args[1:])...)
		return &value.Unit{}, nil
	}
}

// PrintFunc, PrintlnFunc, and PrintfFunc build writer-bound HostFuncs
// for print/println/printf, used by ResolveForWriter to rebind
// std.io's and std.fmt's own print family to an evaluator's configured
// writer instead of the package-wide os.Stdout default.
func PrintFunc(w io.Writer) *callable.HostFunc   { return &callable.HostFunc{Name: "print", Fn: fmtPrint(w)} }
func PrintlnFunc(w io.Writer) *callable.HostFunc { return &callable.HostFunc{Name: "println", Fn: fmtPrintln(w)} }
func PrintfFunc(w io.Writer) *callable.HostFunc  { return &callable.HostFunc{Name: "printf", Fn: fmtPrintf(w)} }

func fmtSprintf(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("sprintf expects a format string")
	}
	format, err := asString(args[0])
	if err != nil {
		return nil, fmt.Errorf("sprintf: first argument must be a string: %w", err)
	}
	return &value.String{Value: fmt.Sprintf(format, extractAll(args[1:])...)}, nil
}

// extractAll unwraps Chiron values into the Go native types fmt's
// verbs expect, mirroring the teacher's ExtractValue used by printf.
func extractAll(args []value.Value) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case *value.Integer:
			out[i] = v.Value
		case *value.Float:
			out[i] = v.Value
		case *value.Boolean:
			out[i] = v.Value
		case *value.String:
			out[i] = v.Value
		case *value.Character:
			out[i] = v.Value
		default:
			out[i] = v.ToString()
		}
	}
	return out
}

func globalsLength(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("length expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *value.String:
		return &value.Integer{Value: int64(len([]rune(v.Value)))}, nil
	case *value.Array:
		return &value.Integer{Value: int64(len(v.Elements))}, nil
	case *value.Tuple:
		return &value.Integer{Value: int64(len(v.Elements))}, nil
	case *value.Map:
		return &value.Integer{Value: int64(v.Len())}, nil
	default:
		return nil, fmt.Errorf("length: unsupported type %s", v.GetType())
	}
}

func globalsTypeof(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("typeof expects 1 argument, got %d", len(args))
	}
	return &value.String{Value: string(args[0].GetType())}, nil
}

func globalsToString(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("to_string expects 1 argument, got %d", len(args))
	}
	return &value.String{Value: args[0].ToString()}, nil
}
