package eval

import (
	"github.com/chiron-lang/chiron/environment"
	"github.com/chiron-lang/chiron/parser"
	"github.com/chiron-lang/chiron/value"
)

// execWhile runs the body directly in the enclosing Environment.
// spec.md 4.3's reference behavior has if/while/for bodies share the
// enclosing scope rather than allocate their own — which also happens
// to be exactly what spec.md 9's REDESIGN FLAG asks for ("loops should
// avoid allocating a new node per iteration"), so there is no separate
// per-iteration or per-invocation scope to manage at all here, unlike
// the teacher's eval_loops.go, which allocates a fresh iteration scope
// on every single pass through the loop body.
func (ev *Evaluator) execWhile(s *parser.WhileStmt, env *environment.Environment) (ExecResult, error) {
	for {
		cond, err := ev.evalExpr(s.Cond, env)
		if err != nil {
			return ExecResult{}, err
		}
		if !value.Truthy(cond) {
			return ExecResult{}, nil
		}
		res, err := ev.execBlock(s.Body, env)
		if err != nil {
			return ExecResult{}, err
		}
		switch res.Signal {
		case SignalBreak:
			return ExecResult{}, nil
		case SignalReturn:
			return res, nil
		}
	}
}

// execFor mirrors execWhile. Init, condition, body, and update all run
// in the same enclosing Environment — so a `for (int i = 0; ...)`
// counter declared in Init is visible (and still bound) after the loop
// ends, matching the no-extra-scope reference behavior spec.md 4.3
// describes for for-loops.
func (ev *Evaluator) execFor(s *parser.ForStmt, env *environment.Environment) (ExecResult, error) {
	if s.Init != nil {
		if _, err := ev.execStmt(s.Init, env); err != nil {
			return ExecResult{}, err
		}
	}
	for {
		if s.Cond != nil {
			cond, err := ev.evalExpr(s.Cond, env)
			if err != nil {
				return ExecResult{}, err
			}
			if !value.Truthy(cond) {
				return ExecResult{}, nil
			}
		}
		res, err := ev.execBlock(s.Body, env)
		if err != nil {
			return ExecResult{}, err
		}
		switch res.Signal {
		case SignalBreak:
			return ExecResult{}, nil
		case SignalReturn:
			return res, nil
		}
		if s.Update != nil {
			if _, err := ev.evalExpr(s.Update, env); err != nil {
				return ExecResult{}, err
			}
		}
	}
}
