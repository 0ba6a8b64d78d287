/*
Package callable implements the value.Value that a callable
declaration evaluates to: a closure over its declaring Environment,
grounded on the teacher's function.Function (name, params, body,
captured scope) but generalized to Chiron's declared parameter types,
return type, and host-function interop.
*/
package callable

import (
	"fmt"
	"strings"

	"github.com/chiron-lang/chiron/environment"
	"github.com/chiron-lang/chiron/parser"
	"github.com/chiron-lang/chiron/value"
)

// Callable is a user-defined function: a closure over the environment
// active where it was declared (spec.md 4.3: "parent = the callable's
// captured environment, not the caller's").
type Callable struct {
	Name       string
	Params     []parser.Param
	ReturnType string
	Body       *parser.BlockStmt
	Captured   *environment.Environment
}

func (c *Callable) GetType() value.Type { return value.FunctionType }

func (c *Callable) ToString() string { return fmt.Sprintf("callable(%s)", c.Name) }

func (c *Callable) ToObject() string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.DeclaredType + " " + p.Name
	}
	return fmt.Sprintf("<callable %s(%s) -> %s>", c.Name, strings.Join(names, ", "), c.ReturnType)
}

// HostFunc is a function implemented by the embedding Go program rather
// than by Chiron source: every std.* builtin, and anything a future
// general host module resolver exposes. It takes already-evaluated
// positional and keyword arguments and returns a value or an error,
// which the evaluator wraps into a runtime error of kind "HostError"
// carrying the error's message; the Go error's own type is not carried.
type HostFunc struct {
	Name string
	Fn   func(positional []value.Value, keyword map[string]value.Value) (value.Value, error)
}

func (h *HostFunc) GetType() value.Type { return value.HostFunctionType }

func (h *HostFunc) ToString() string { return fmt.Sprintf("hostfunc(%s)", h.Name) }

func (h *HostFunc) ToObject() string { return fmt.Sprintf("<hostfunc %s>", h.Name) }
