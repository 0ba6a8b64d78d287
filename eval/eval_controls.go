package eval

import (
	"github.com/chiron-lang/chiron/environment"
	"github.com/chiron-lang/chiron/parser"
	"github.com/chiron-lang/chiron/value"
)

// execTry implements try/except/finally. The teacher carries no
// try/except construct at all, so this is built directly from spec.md
// 4.4 and 7 rather than adapted from teacher code (see DESIGN.md):
// run the body; on a RuntimeError, find the first handler whose
// declared name matches the error's Kind (or is the "Exception"
// wildcard) and run it; finally always runs exactly once, with
// whatever the try/handler chain was about to produce — a value, a
// signal, or an error — suspended while it runs and re-emitted
// afterward unless finally itself raises a new error or signal, which
// takes precedence.
//
// Only the handler body gets its own child Environment, to bind the
// caught exception's variable (spec.md 4.3 lists exception handler
// bodies, alongside function invocation, as the only two places a new
// scope is created — the try body and finally share the enclosing
// scope like if/while/for do).
func (ev *Evaluator) execTry(s *parser.TryStmt, env *environment.Environment) (ExecResult, error) {
	result, err := ev.execBlock(s.Body, env)

	if err != nil {
		if rerr, ok := err.(*RuntimeError); ok {
			if handler := matchHandler(s.Handlers, rerr.Kind); handler != nil {
				handlerEnv := environment.New(env)
				handlerEnv.DefineVar(handler.BindName, &value.String{Value: rerr.Error()}, false)
				result, err = ev.execBlock(handler.Body, handlerEnv)
			}
		}
	}

	return ev.runFinally(s.Finally, env, result, err)
}

func matchHandler(handlers []parser.ExceptHandler, kind string) *parser.ExceptHandler {
	for i := range handlers {
		if handlers[i].ExceptionName == "Exception" || handlers[i].ExceptionName == kind {
			return &handlers[i]
		}
	}
	return nil
}

func (ev *Evaluator) runFinally(finally *parser.BlockStmt, env *environment.Environment, result ExecResult, err error) (ExecResult, error) {
	if finally == nil {
		return result, err
	}
	fres, ferr := ev.execBlock(finally, env)
	if ferr != nil {
		return ExecResult{}, ferr
	}
	if fres.Signal != SignalNone {
		return fres, nil
	}
	return result, err
}
