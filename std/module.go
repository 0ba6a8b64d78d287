/*
Package std is Chiron's bundled standard library: a fixed set of host
modules resolved against the "std." reserved prefix (spec.md 6), each
registering itself into a package-level directory the way the teacher's
std package has every file's init() call RegisterPackage into a global
Packages registry.

Every exported function is a *callable.HostFunc so it is a value.Value
like any callable the interpreter's own source defines — a Chiron
program cannot tell a builtin from a user-defined callable just by
calling it.
*/
package std

import (
	"io"
	"strings"

	"github.com/chiron-lang/chiron/callable"
	"github.com/chiron-lang/chiron/value"
)

// Module is a bundled host module: named functions and named
// non-callable values, both addressed through get_attr (spec.md 4.4:
// "resolves object_expr to a host-module ... and looks up the named
// attribute"). It implements value.Value so it can be bound into an
// Environment's module table exactly like any import.
type Module struct {
	Name      string
	Functions map[string]*callable.HostFunc
	Values    map[string]value.Value
}

func newModule(name string) *Module {
	return &Module{Name: name, Functions: make(map[string]*callable.HostFunc), Values: make(map[string]value.Value)}
}

func (m *Module) GetType() value.Type { return value.ModuleType }
func (m *Module) ToString() string    { return "module(" + m.Name + ")" }
func (m *Module) ToObject() string    { return "<module std." + m.Name + ">" }

// GetAttr resolves a `module.attr` access: functions take priority
// over values, matching how a module would realistically never define
// both under the same name.
func (m *Module) GetAttr(name string) (value.Value, bool) {
	if fn, ok := m.Functions[name]; ok {
		return fn, true
	}
	if v, ok := m.Values[name]; ok {
		return v, true
	}
	return nil, false
}

// ExportedNames lists every attribute a wildcard `from std.x import *`
// should bind (spec.md 4.4). Nothing in the bundled standard library is
// named with a leading underscore, so every registered entry qualifies
// as per spec.md 6's export contract ("names not starting with _").
func (m *Module) ExportedNames() []string {
	names := make([]string, 0, len(m.Functions)+len(m.Values))
	for name := range m.Functions {
		if !strings.HasPrefix(name, "_") {
			names = append(names, name)
		}
	}
	for name := range m.Values {
		if !strings.HasPrefix(name, "_") {
			names = append(names, name)
		}
	}
	return names
}

var registry = make(map[string]*Module)

// register adds a module to the bundled directory. Called from each
// module file's init(), mirroring the teacher's RegisterPackage.
func register(m *Module) {
	registry[m.Name] = m
}

// ReservedPrefix is the import-path prefix that routes to the bundled
// standard library instead of the host's general module resolver
// (spec.md 6).
const ReservedPrefix = "std."

// Resolve looks up a "std."-prefixed import path against the bundled
// directory. It reports false for any path outside the reserved
// prefix, or naming a module this build does not carry.
func Resolve(path string) (*Module, bool) {
	if !strings.HasPrefix(path, ReservedPrefix) {
		return nil, false
	}
	m, ok := registry[strings.TrimPrefix(path, ReservedPrefix)]
	return m, ok
}

func hostFunc(name string, fn func([]value.Value, map[string]value.Value) (value.Value, error)) *callable.HostFunc {
	return &callable.HostFunc{Name: name, Fn: fn}
}

// ResolveForWriter behaves like Resolve but, for the two modules that
// expose print/println/printf (io and fmt), hands back a copy with
// those three functions rebound to w instead of the package-wide
// os.Stdout default — so an evaluator importing std.io.print or
// std.fmt.print gets the same redirectable output InstallGlobals
// already gives the zero-import builtins.
func ResolveForWriter(path string, w io.Writer) (*Module, bool) {
	m, ok := Resolve(path)
	if !ok {
		return nil, false
	}
	switch m.Name {
	case "io", "fmt":
		return m.withWriter(w), true
	default:
		return m, true
	}
}

func (m *Module) withWriter(w io.Writer) *Module {
	clone := &Module{Name: m.Name, Functions: make(map[string]*callable.HostFunc, len(m.Functions)), Values: m.Values}
	for name, fn := range m.Functions {
		clone.Functions[name] = fn
	}
	if _, ok := clone.Functions["print"]; ok {
		clone.Functions["print"] = PrintFunc(w)
	}
	if _, ok := clone.Functions["println"]; ok {
		clone.Functions["println"] = PrintlnFunc(w)
	}
	if _, ok := clone.Functions["printf"]; ok {
		clone.Functions["printf"] = PrintfFunc(w)
	}
	return clone
}
