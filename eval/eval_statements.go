package eval

import (
	"github.com/chiron-lang/chiron/callable"
	"github.com/chiron-lang/chiron/environment"
	"github.com/chiron-lang/chiron/parser"
	"github.com/chiron-lang/chiron/value"
)

// execStmt dispatches over every Stmt variant the parser produces.
func (ev *Evaluator) execStmt(stmt parser.Stmt, env *environment.Environment) (ExecResult, error) {
	switch s := stmt.(type) {
	case *parser.DeclStmt:
		return ev.execDecl(s, env)
	case *parser.CallableDeclStmt:
		return ev.execCallableDecl(s, env)
	case *parser.CallStmt:
		_, err := ev.evalCall(s.Call, env)
		return ExecResult{}, err
	case *parser.ExprStmt:
		_, err := ev.evalExpr(s.Expr, env)
		return ExecResult{}, err
	case *parser.ReturnStmt:
		return ev.execReturn(s, env)
	case *parser.IfStmt:
		return ev.execIf(s, env)
	case *parser.WhileStmt:
		return ev.execWhile(s, env)
	case *parser.ForStmt:
		return ev.execFor(s, env)
	case *parser.TryStmt:
		return ev.execTry(s, env)
	case *parser.BreakStmt:
		return ExecResult{Signal: SignalBreak}, nil
	case *parser.ContinueStmt:
		return ExecResult{Signal: SignalContinue}, nil
	case *parser.ImportStmt:
		return ExecResult{}, ev.execImport(s, env)
	case *parser.FromImportStmt:
		return ExecResult{}, ev.execFromImport(s, env)
	case *parser.BlockStmt:
		return ev.execBlock(s, env)
	default:
		return ExecResult{}, ev.runtimeErr(stmt, "InternalError", "unhandled statement node %T", stmt)
	}
}

// execBlock runs every statement in block against env in source order,
// stopping as soon as one produces an error or a non-SignalNone
// result. Callers decide whether block gets its own child Environment
// (callable bodies and except-handler bodies do; if/while/for bodies
// and try/finally bodies run in the enclosing one).
func (ev *Evaluator) execBlock(block *parser.BlockStmt, env *environment.Environment) (ExecResult, error) {
	for _, stmt := range block.Statements {
		res, err := ev.execStmt(stmt, env)
		if err != nil {
			return ExecResult{}, err
		}
		if res.Signal != SignalNone {
			return res, nil
		}
	}
	return ExecResult{}, nil
}

func (ev *Evaluator) execDecl(s *parser.DeclStmt, env *environment.Environment) (ExecResult, error) {
	val, err := ev.evalExpr(s.Init, env)
	if err != nil {
		return ExecResult{}, err
	}
	isConst := false
	for _, m := range s.Modifiers {
		if m == "const" {
			isConst = true
		}
	}
	env.DefineVar(s.Name, val, isConst)
	return ExecResult{}, nil
}

// execCallableDecl registers a callable declared inside a block (a
// local helper, not a top-level one — Run handles those itself before
// any code runs). A forward declaration (nil Body) has nothing to
// register yet.
func (ev *Evaluator) execCallableDecl(s *parser.CallableDeclStmt, env *environment.Environment) (ExecResult, error) {
	if s.Body == nil {
		return ExecResult{}, nil
	}
	fn := &callable.Callable{
		Name:       s.Name,
		Params:     s.Params,
		ReturnType: s.ReturnType,
		Body:       s.Body,
		Captured:   env,
	}
	env.DefineFunc(s.Name, fn)
	return ExecResult{}, nil
}

func (ev *Evaluator) execReturn(s *parser.ReturnStmt, env *environment.Environment) (ExecResult, error) {
	if s.Expr == nil {
		return ExecResult{Signal: SignalReturn, Value: &value.Unit{}}, nil
	}
	v, err := ev.evalExpr(s.Expr, env)
	if err != nil {
		return ExecResult{}, err
	}
	return ExecResult{Signal: SignalReturn, Value: v}, nil
}
