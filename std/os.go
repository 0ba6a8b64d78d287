package std

// Package std - os.go
// Bundled std.os module: environment variables, process exit, argv, a
// sleep builtin, and basic host identification, grounded on the
// teacher's std/os.go. Deliberately omits the teacher's shell-command
// execution builtin (exec/system) — see DESIGN.md for the rationale;
// Chiron's host-collaborator boundary (spec.md 1) does not include a
// sandboxed process launcher, and bundling one would hand any Chiron
// script arbitrary command execution on whatever host runs it.

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/chiron-lang/chiron/value"
)

func init() {
	m := newModule("os")
	m.Functions["getenv"] = hostFunc("getenv", osGetenv)
	m.Functions["setenv"] = hostFunc("setenv", osSetenv)
	m.Functions["unsetenv"] = hostFunc("unsetenv", osUnsetenv)
	m.Functions["exit"] = hostFunc("exit", osExit)
	m.Functions["args"] = hostFunc("args", osArgs)
	m.Functions["sleep"] = hostFunc("sleep", osSleep)
	m.Functions["getcwd"] = hostFunc("getcwd", osGetcwd)
	m.Functions["getpid"] = hostFunc("getpid", osGetpid)
	m.Functions["hostname"] = hostFunc("hostname", osHostname)

	m.Values["platform"] = &value.String{Value: runtime.GOOS}
	m.Values["arch"] = &value.String{Value: runtime.GOARCH}

	register(m)
}

func osGetenv(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("getenv expects 1 argument, got %d", len(args))
	}
	name, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	return &value.String{Value: os.Getenv(name)}, nil
}

func osSetenv(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("setenv expects 2 arguments, got %d", len(args))
	}
	name, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	val, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	if err := os.Setenv(name, val); err != nil {
		return nil, fmt.Errorf("setenv: %w", err)
	}
	return &value.Unit{}, nil
}

func osUnsetenv(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("unsetenv expects 1 argument, got %d", len(args))
	}
	name, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	if err := os.Unsetenv(name); err != nil {
		return nil, fmt.Errorf("unsetenv: %w", err)
	}
	return &value.Unit{}, nil
}

func osExit(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	code := 0
	if len(args) == 1 {
		n, ok := args[0].(*value.Integer)
		if !ok {
			return nil, fmt.Errorf("exit expects an integer status code, got %s", args[0].GetType())
		}
		code = int(n.Value)
	} else if len(args) != 0 {
		return nil, fmt.Errorf("exit expects 0 or 1 arguments, got %d", len(args))
	}
	os.Exit(code)
	return &value.Unit{}, nil // unreachable
}

func osArgs(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("args expects no arguments, got %d", len(args))
	}
	elements := make([]value.Value, len(os.Args))
	for i, a := range os.Args {
		elements[i] = &value.String{Value: a}
	}
	return &value.Array{Elements: elements}, nil
}

func osSleep(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sleep expects 1 argument, got %d", len(args))
	}
	secs, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	if secs < 0 {
		return nil, fmt.Errorf("sleep: duration must be non-negative")
	}
	time.Sleep(time.Duration(secs * float64(time.Second)))
	return &value.Unit{}, nil
}

func osGetcwd(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("getcwd expects no arguments, got %d", len(args))
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getcwd: %w", err)
	}
	return &value.String{Value: wd}, nil
}

func osGetpid(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("getpid expects no arguments, got %d", len(args))
	}
	return &value.Integer{Value: int64(os.Getpid())}, nil
}

func osHostname(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("hostname expects no arguments, got %d", len(args))
	}
	name, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}
	return &value.String{Value: name}, nil
}
