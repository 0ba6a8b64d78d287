package eval

import (
	"strings"

	"github.com/chiron-lang/chiron/callable"
	"github.com/chiron-lang/chiron/environment"
	"github.com/chiron-lang/chiron/parser"
	"github.com/chiron-lang/chiron/std"
	"github.com/chiron-lang/chiron/value"
)

// resolveModule is the host's general module resolver from spec.md 6 —
// today that's only the bundled std.* directory, since a filesystem-
// backed resolver for user modules is an external collaborator's job
// (spec.md 1), not this evaluator's.
func (ev *Evaluator) resolveModule(path string, node parser.Node) (*std.Module, error) {
	m, ok := std.ResolveForWriter(path, ev.Writer)
	if !ok {
		return nil, ev.runtimeErr(node, "ImportError", "module not found: %s", path)
	}
	return m, nil
}

func (ev *Evaluator) execImport(s *parser.ImportStmt, env *environment.Environment) error {
	for _, entry := range s.Entries {
		mod, err := ev.resolveModule(entry.Path, s)
		if err != nil {
			return err
		}
		alias := entry.Alias
		if alias == "" {
			alias = lastSegment(entry.Path)
		}
		env.DefineModule(alias, mod)
	}
	return nil
}

func (ev *Evaluator) execFromImport(s *parser.FromImportStmt, env *environment.Environment) error {
	mod, err := ev.resolveModule(s.Path, s)
	if err != nil {
		return err
	}

	if s.Wildcard {
		for _, name := range mod.ExportedNames() {
			v, _ := mod.GetAttr(name)
			bindExport(env, name, v)
		}
		return nil
	}

	for _, n := range s.Names {
		v, ok := mod.GetAttr(n.Name)
		if !ok {
			return ev.runtimeErr(s, "ImportError", "name %q not found in module %s", n.Name, s.Path)
		}
		alias := n.Alias
		if alias == "" {
			alias = n.Name
		}
		bindExport(env, alias, v)
	}
	return nil
}

// bindExport threads an imported name into the namespace matching its
// kind, the way a top-level declaration would: callables go into the
// callable table, everything else into the variable table.
func bindExport(env *environment.Environment, name string, v value.Value) {
	switch v.(type) {
	case *callable.HostFunc, *callable.Callable:
		env.DefineFunc(name, v)
	default:
		env.DefineVar(name, v, false)
	}
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}
