/*
Package environment implements Chiron's lexically nested name-resolution
scope: a tree of parent-chained nodes, each owning three independent
binding tables (variables, callables, and imported host modules) as
spec.md 4.3 describes.

Mirrors the split the teacher repo draws between its scope package (pure
binding storage) and its function package (the things stored there):
environment never imports the callable or std packages. Callables and
host modules are stored as value.Value through the same interface
variables use, which is what lets a callable be passed around, returned,
and reassigned like any other value while still being looked up through
its own namespace.
*/
package environment

import "github.com/chiron-lang/chiron/value"

// Environment is one node in the scope tree.
type Environment struct {
	variables map[string]value.Value
	consts    map[string]bool
	callables map[string]value.Value
	modules   map[string]value.Value
	parent    *Environment
}

// New creates a child environment of parent. Passing nil creates a root
// (global) environment.
func New(parent *Environment) *Environment {
	return &Environment{
		variables: make(map[string]value.Value),
		consts:    make(map[string]bool),
		callables: make(map[string]value.Value),
		modules:   make(map[string]value.Value),
		parent:    parent,
	}
}

// Parent returns the enclosing environment, or nil for the root.
func (e *Environment) Parent() *Environment { return e.parent }

// DefineVar binds name to val in the current scope only, overwriting
// whatever was bound here before (but never touching an ancestor's
// binding of the same name). isConst records whether SetVar should
// reject reassigning this name — the one declaration modifier with
// runtime teeth (SPEC_FULL.md Open Question decision 2); the rest are
// recorded but never enforced.
func (e *Environment) DefineVar(name string, val value.Value, isConst bool) {
	e.variables[name] = val
	if isConst {
		e.consts[name] = true
	} else {
		delete(e.consts, name)
	}
}

// GetVar walks the scope chain outward from the current scope, returning
// the first binding found.
func (e *Environment) GetVar(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetVar walks the scope chain to find the scope that already defines
// name and updates the binding there. It never creates a new binding: if
// no ancestor defines name, it reports that. It also rejects assignment
// to a name bound with the const modifier.
func (e *Environment) SetVar(name string, val value.Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.variables[name]; ok {
			if env.consts[name] {
				return &AssignConstError{Name: name}
			}
			env.variables[name] = val
			return nil
		}
	}
	return &NotDefinedError{Kind: "Variable", Name: name}
}

// IsConst reports whether name resolves, anywhere in the scope chain, to
// a binding declared with the const modifier.
func (e *Environment) IsConst(name string) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.variables[name]; ok {
			return env.consts[name]
		}
	}
	return false
}

// DefineFunc binds a callable under name in the current scope, in the
// callable namespace (distinct from the variable namespace: a variable
// and a callable may share a name without colliding).
func (e *Environment) DefineFunc(name string, fn value.Value) {
	e.callables[name] = fn
}

// GetFunc walks the scope chain looking up the callable namespace.
func (e *Environment) GetFunc(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.callables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// DefineModule binds a host module under alias in the current scope. Per
// spec.md 3's invariant, a module bound under an alias replaces any prior
// binding of that alias in the current scope (it is a plain map write, so
// this holds automatically).
func (e *Environment) DefineModule(alias string, mod value.Value) {
	e.modules[alias] = mod
}

// GetModule walks the scope chain looking up the module namespace.
func (e *Environment) GetModule(alias string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.modules[alias]; ok {
			return v, true
		}
	}
	return nil, false
}

// LocalNames lists the names bound directly in this scope (not its
// ancestors) across all three namespaces, for introspection tooling
// like a REPL's scope-inspection command. vars maps each variable name
// to whether it was declared const.
func (e *Environment) LocalNames() (vars map[string]bool, funcs []string, modules []string) {
	vars = make(map[string]bool, len(e.variables))
	for name := range e.variables {
		vars[name] = e.consts[name]
	}
	for name := range e.callables {
		funcs = append(funcs, name)
	}
	for name := range e.modules {
		modules = append(modules, name)
	}
	return vars, funcs, modules
}

// NotDefinedError reports a failed lookup in one of the three namespaces.
type NotDefinedError struct {
	Kind string // "Variable", "Function", or "Module"
	Name string
}

func (e *NotDefinedError) Error() string {
	return e.Kind + " not defined: " + e.Name
}

// AssignConstError reports an attempted assignment to a const-declared
// name.
type AssignConstError struct{ Name string }

func (e *AssignConstError) Error() string {
	return "cannot assign to const variable: " + e.Name
}
