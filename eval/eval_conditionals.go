package eval

import (
	"github.com/chiron-lang/chiron/environment"
	"github.com/chiron-lang/chiron/parser"
	"github.com/chiron-lang/chiron/value"
)

// execIf evaluates an if/else (else-if chains arrive as a single
// nested IfStmt inside Else, already flattened by the parser). Neither
// branch gets its own Environment: spec.md 4.3 names if/while/for
// bodies as sharing the enclosing scope — only function invocation and
// exception handler bodies create a child one.
func (ev *Evaluator) execIf(s *parser.IfStmt, env *environment.Environment) (ExecResult, error) {
	cond, err := ev.evalExpr(s.Cond, env)
	if err != nil {
		return ExecResult{}, err
	}
	if value.Truthy(cond) {
		return ev.execBlock(s.Then, env)
	}
	if s.Else != nil {
		return ev.execBlock(s.Else, env)
	}
	return ExecResult{}, nil
}
