package eval

import (
	"github.com/chiron-lang/chiron/callable"
	"github.com/chiron-lang/chiron/environment"
	"github.com/chiron-lang/chiron/parser"
	"github.com/chiron-lang/chiron/value"
)

// evalCall evaluates a call expression: the callee resolves first,
// then positional arguments left-to-right, then keyword arguments in
// source order, all before the callable is actually invoked (spec.md
// 4.4).
func (ev *Evaluator) evalCall(c *parser.CallExpr, env *environment.Environment) (value.Value, error) {
	callee, err := ev.resolveCallee(c.Callee, env)
	if err != nil {
		return nil, err
	}

	positional := make([]value.Value, len(c.Positional))
	for i, arg := range c.Positional {
		v, err := ev.evalExpr(arg, env)
		if err != nil {
			return nil, err
		}
		positional[i] = v
	}

	var keyword map[string]value.Value
	if len(c.Keyword) > 0 {
		keyword = make(map[string]value.Value, len(c.Keyword))
		for _, kw := range c.Keyword {
			v, err := ev.evalExpr(kw.Value, env)
			if err != nil {
				return nil, err
			}
			keyword[kw.Name] = v
		}
	}

	return ev.invokeCall(callee, positional, keyword, c)
}

// resolveCallee implements spec.md 4.4's two callee shapes: a bare
// identifier looks up the callable table first, falling back to the
// variable table (a callable value can travel through a variable, e.g.
// passed as an argument to a higher-order function); a get_attr callee
// resolves through the named module.
func (ev *Evaluator) resolveCallee(expr parser.Expr, env *environment.Environment) (value.Value, error) {
	switch c := expr.(type) {
	case *parser.Identifier:
		if fn, ok := env.GetFunc(c.Name); ok {
			return fn, nil
		}
		if v, ok := env.GetVar(c.Name); ok {
			return v, nil
		}
		return nil, ev.runtimeErr(c, "NameError", "callable not found: %s", c.Name)
	case *parser.GetAttrExpr:
		return ev.evalGetAttr(c, env)
	default:
		return nil, ev.runtimeErr(expr, "TypeError", "callee must be an identifier or attribute access")
	}
}

func (ev *Evaluator) invokeCall(callee value.Value, positional []value.Value, keyword map[string]value.Value, node parser.Node) (value.Value, error) {
	switch fn := callee.(type) {
	case *callable.HostFunc:
		v, err := fn.Fn(positional, keyword)
		if err != nil {
			return nil, ev.runtimeErr(node, "HostError", "%s", err.Error())
		}
		return v, nil
	case *callable.Callable:
		return ev.invokeUserCallable(fn, positional, keyword, node)
	default:
		return nil, ev.runtimeErr(node, "TypeError", "value of type %s is not callable", callee.GetType())
	}
}

// invokeUserCallable binds arguments into a fresh Environment rooted
// at the callable's captured scope (its lexical closure) and runs the
// body there. Positional arguments fill parameters by position first;
// keyword arguments then fill whatever parameters remain by name.
func (ev *Evaluator) invokeUserCallable(fn *callable.Callable, positional []value.Value, keyword map[string]value.Value, node parser.Node) (value.Value, error) {
	if fn.Body == nil {
		return nil, ev.runtimeErr(node, "NotImplementedError", "callable %q has no body (forward declaration only)", fn.Name)
	}
	if len(positional) > len(fn.Params) {
		return nil, ev.runtimeErr(node, "ArityError", "arity mismatch: %q expects %d arguments, got %d", fn.Name, len(fn.Params), len(positional)+len(keyword))
	}

	callEnv := environment.New(fn.Captured)
	bound := make(map[string]bool, len(fn.Params))
	for i, arg := range positional {
		p := fn.Params[i]
		callEnv.DefineVar(p.Name, arg, false)
		bound[p.Name] = true
	}
	for name, val := range keyword {
		found := false
		for _, p := range fn.Params {
			if p.Name != name {
				continue
			}
			if bound[p.Name] {
				return nil, ev.runtimeErr(node, "ArityError", "%q got multiple values for parameter %q", fn.Name, name)
			}
			callEnv.DefineVar(p.Name, val, false)
			bound[p.Name] = true
			found = true
			break
		}
		if !found {
			return nil, ev.runtimeErr(node, "ArityError", "%q got an unexpected keyword argument %q", fn.Name, name)
		}
	}
	if len(bound) != len(fn.Params) {
		return nil, ev.runtimeErr(node, "ArityError", "arity mismatch: %q expects %d arguments, got %d", fn.Name, len(fn.Params), len(bound))
	}

	result, err := ev.execBlock(fn.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if result.Signal == SignalReturn {
		return result.Value, nil
	}
	return &value.Unit{}, nil
}
