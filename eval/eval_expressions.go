package eval

import (
	"math"

	"github.com/chiron-lang/chiron/environment"
	"github.com/chiron-lang/chiron/parser"
	"github.com/chiron-lang/chiron/value"
)

// evalExpr dispatches over every Expr variant the parser produces.
func (ev *Evaluator) evalExpr(expr parser.Expr, env *environment.Environment) (value.Value, error) {
	switch e := expr.(type) {
	case *parser.IntegerLit:
		return &value.Integer{Value: e.Value}, nil
	case *parser.FloatLit:
		return &value.Float{Value: e.Value}, nil
	case *parser.StringLit:
		return &value.String{Value: e.Value}, nil
	case *parser.CharLit:
		return &value.Character{Value: e.Value}, nil
	case *parser.BoolLit:
		return &value.Boolean{Value: e.Value}, nil
	case *parser.Identifier:
		return ev.evalIdentifier(e, env)
	case *parser.BinaryExpr:
		return ev.evalBinary(e, env)
	case *parser.LogicExpr:
		return ev.evalLogic(e, env)
	case *parser.NotExpr:
		return ev.evalNot(e, env)
	case *parser.IncDecExpr:
		return ev.evalIncDec(e, env)
	case *parser.AssignExpr:
		return ev.evalAssign(e, env)
	case *parser.CallExpr:
		return ev.evalCall(e, env)
	case *parser.GetAttrExpr:
		return ev.evalGetAttr(e, env)
	case *parser.ArrayLit:
		return ev.evalArrayLit(e, env)
	case *parser.TupleLit:
		return ev.evalTupleLit(e, env)
	case *parser.MapLit:
		return ev.evalMapLit(e, env)
	default:
		return nil, ev.runtimeErr(expr, "InternalError", "unhandled expression node %T", expr)
	}
}

func (ev *Evaluator) evalIdentifier(e *parser.Identifier, env *environment.Environment) (value.Value, error) {
	if v, ok := env.GetVar(e.Name); ok {
		return v, nil
	}
	if fn, ok := env.GetFunc(e.Name); ok {
		return fn, nil
	}
	return nil, ev.runtimeErr(e, "NameError", "undefined name: %s", e.Name)
}

func (ev *Evaluator) evalArrayLit(e *parser.ArrayLit, env *environment.Environment) (value.Value, error) {
	elements := make([]value.Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := ev.evalExpr(el, env)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return &value.Array{Elements: elements}, nil
}

func (ev *Evaluator) evalTupleLit(e *parser.TupleLit, env *environment.Environment) (value.Value, error) {
	elements := make([]value.Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := ev.evalExpr(el, env)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return &value.Tuple{Elements: elements}, nil
}

func (ev *Evaluator) evalMapLit(e *parser.MapLit, env *environment.Environment) (value.Value, error) {
	m := value.NewMap()
	for _, entry := range e.Entries {
		k, err := ev.evalExpr(entry.Key, env)
		if err != nil {
			return nil, err
		}
		v, err := ev.evalExpr(entry.Value, env)
		if err != nil {
			return nil, err
		}
		if err := m.Set(k, v); err != nil {
			return nil, ev.runtimeErr(e, "TypeError", "%s", err.Error())
		}
	}
	return m, nil
}

func (ev *Evaluator) evalBinary(b *parser.BinaryExpr, env *environment.Environment) (value.Value, error) {
	left, err := ev.evalExpr(b.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpr(b.Right, env)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case "==":
		return &value.Boolean{Value: value.Equal(left, right)}, nil
	case "!=":
		return &value.Boolean{Value: !value.Equal(left, right)}, nil
	case "+":
		if ls, ok := left.(*value.String); ok {
			rs, ok := right.(*value.String)
			if !ok {
				return nil, ev.runtimeErr(b, "TypeError", "cannot concatenate str and %s", right.GetType())
			}
			return &value.String{Value: ls.Value + rs.Value}, nil
		}
		return ev.evalArith("+", left, right, b)
	case "-", "*":
		return ev.evalArith(b.Op, left, right, b)
	case "/":
		return ev.evalDivide(left, right, b)
	case "%":
		return ev.evalModulo(left, right, b)
	case "<", ">", "<=", ">=":
		return ev.evalOrderCompare(b.Op, left, right, b)
	default:
		return nil, ev.runtimeErr(b, "InternalError", "unknown binary operator %q", b.Op)
	}
}

// numeric reports v's float64 value when it is an Integer or Float.
func numeric(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case *value.Integer:
		return float64(n.Value), true
	case *value.Float:
		return n.Value, true
	default:
		return 0, false
	}
}

func (ev *Evaluator) evalArith(op string, left, right value.Value, node parser.Node) (value.Value, error) {
	li, lIsInt := left.(*value.Integer)
	ri, rIsInt := right.(*value.Integer)
	if lIsInt && rIsInt {
		switch op {
		case "+":
			return &value.Integer{Value: li.Value + ri.Value}, nil
		case "-":
			return &value.Integer{Value: li.Value - ri.Value}, nil
		case "*":
			return &value.Integer{Value: li.Value * ri.Value}, nil
		}
	}
	lf, lOk := numeric(left)
	rf, rOk := numeric(right)
	if !lOk || !rOk {
		return nil, ev.runtimeErr(node, "TypeError", "unsupported operand types for %s: %s and %s", op, left.GetType(), right.GetType())
	}
	switch op {
	case "+":
		return &value.Float{Value: lf + rf}, nil
	case "-":
		return &value.Float{Value: lf - rf}, nil
	case "*":
		return &value.Float{Value: lf * rf}, nil
	}
	return nil, ev.runtimeErr(node, "InternalError", "unknown arithmetic operator %q", op)
}

// evalDivide always produces a Float, per SPEC_FULL.md's "/" decision
// (division never truncates to int even when both operands are int),
// and raises DivisionByZero rather than letting IEEE754 hand back +Inf
// or NaN — spec.md 8's worked try/except example depends on this.
func (ev *Evaluator) evalDivide(left, right value.Value, node parser.Node) (value.Value, error) {
	lf, lOk := numeric(left)
	rf, rOk := numeric(right)
	if !lOk || !rOk {
		return nil, ev.runtimeErr(node, "TypeError", "unsupported operand types for /: %s and %s", left.GetType(), right.GetType())
	}
	if rf == 0 {
		return nil, ev.runtimeErr(node, "DivisionByZero", "division by zero")
	}
	return &value.Float{Value: lf / rf}, nil
}

func (ev *Evaluator) evalModulo(left, right value.Value, node parser.Node) (value.Value, error) {
	li, lIsInt := left.(*value.Integer)
	ri, rIsInt := right.(*value.Integer)
	if lIsInt && rIsInt {
		if ri.Value == 0 {
			return nil, ev.runtimeErr(node, "DivisionByZero", "modulo by zero")
		}
		return &value.Integer{Value: li.Value % ri.Value}, nil
	}
	lf, lOk := numeric(left)
	rf, rOk := numeric(right)
	if !lOk || !rOk {
		return nil, ev.runtimeErr(node, "TypeError", "unsupported operand types for %%: %s and %s", left.GetType(), right.GetType())
	}
	if rf == 0 {
		return nil, ev.runtimeErr(node, "DivisionByZero", "modulo by zero")
	}
	return &value.Float{Value: math.Mod(lf, rf)}, nil
}

func (ev *Evaluator) evalOrderCompare(op string, left, right value.Value, node parser.Node) (value.Value, error) {
	if lf, lOk := numeric(left); lOk {
		if rf, rOk := numeric(right); rOk {
			return &value.Boolean{Value: compareOrdered(op, lf, rf)}, nil
		}
	}
	if ls, ok := left.(*value.String); ok {
		if rs, ok := right.(*value.String); ok {
			return &value.Boolean{Value: compareOrderedStr(op, ls.Value, rs.Value)}, nil
		}
	}
	return nil, ev.runtimeErr(node, "TypeError", "unsupported operand types for %s: %s and %s", op, left.GetType(), right.GetType())
}

func compareOrdered(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	default: // ">="
		return a >= b
	}
}

func compareOrderedStr(op string, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	default: // ">="
		return a >= b
	}
}

func (ev *Evaluator) evalLogic(l *parser.LogicExpr, env *environment.Environment) (value.Value, error) {
	left, err := ev.evalExpr(l.Left, env)
	if err != nil {
		return nil, err
	}
	switch l.Op {
	case "and":
		if !value.Truthy(left) {
			return left, nil
		}
		return ev.evalExpr(l.Right, env)
	case "or":
		if value.Truthy(left) {
			return left, nil
		}
		return ev.evalExpr(l.Right, env)
	default:
		return nil, ev.runtimeErr(l, "InternalError", "unknown logical operator %q", l.Op)
	}
}

func (ev *Evaluator) evalNot(n *parser.NotExpr, env *environment.Environment) (value.Value, error) {
	v, err := ev.evalExpr(n.Operand, env)
	if err != nil {
		return nil, err
	}
	return &value.Boolean{Value: !value.Truthy(v)}, nil
}

// evalIncDec mutates an identifier binding in place: pre forms return
// the updated value, post forms return the value the binding held
// beforehand. Both are restricted to identifier targets by the parser.
func (ev *Evaluator) evalIncDec(n *parser.IncDecExpr, env *environment.Environment) (value.Value, error) {
	cur, ok := env.GetVar(n.Target)
	if !ok {
		return nil, ev.runtimeErr(n, "NameError", "undefined name: %s", n.Target)
	}
	decrement := n.Op == parser.PreDecrement || n.Op == parser.PostDecrement

	var next value.Value
	switch c := cur.(type) {
	case *value.Integer:
		delta := int64(1)
		if decrement {
			delta = -1
		}
		next = &value.Integer{Value: c.Value + delta}
	case *value.Float:
		delta := 1.0
		if decrement {
			delta = -1.0
		}
		next = &value.Float{Value: c.Value + delta}
	default:
		return nil, ev.runtimeErr(n, "TypeError", "cannot increment or decrement a %s", cur.GetType())
	}

	if err := env.SetVar(n.Target, next); err != nil {
		return nil, ev.wrapEnvErr(err, n)
	}
	if n.Op == parser.PreIncrement || n.Op == parser.PreDecrement {
		return next, nil
	}
	return cur, nil
}

func (ev *Evaluator) evalAssign(a *parser.AssignExpr, env *environment.Environment) (value.Value, error) {
	val, err := ev.evalExpr(a.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.SetVar(a.Target, val); err != nil {
		return nil, ev.wrapEnvErr(err, a)
	}
	return val, nil
}

// evalObjectExpr resolves the left side of a get_attr access. A bare
// identifier checks the module table first, since `math` in `math.pi`
// names an imported module rather than a plain variable.
func (ev *Evaluator) evalObjectExpr(expr parser.Expr, env *environment.Environment) (value.Value, error) {
	if id, ok := expr.(*parser.Identifier); ok {
		if mod, ok := env.GetModule(id.Name); ok {
			return mod, nil
		}
	}
	return ev.evalExpr(expr, env)
}

func (ev *Evaluator) evalGetAttr(g *parser.GetAttrExpr, env *environment.Environment) (value.Value, error) {
	obj, err := ev.evalObjectExpr(g.Object, env)
	if err != nil {
		return nil, err
	}
	ag, ok := obj.(attrGetter)
	if !ok {
		return nil, ev.runtimeErr(g, "TypeError", "value of type %s has no attributes", obj.GetType())
	}
	v, ok := ag.GetAttr(g.Attr)
	if !ok {
		return nil, ev.runtimeErr(g, "AttributeError", "no such attribute %q", g.Attr)
	}
	return v, nil
}
