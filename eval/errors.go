package eval

import (
	"fmt"

	"github.com/chiron-lang/chiron/environment"
	"github.com/chiron-lang/chiron/parser"
)

// RuntimeError is every error Chiron code can observe: evaluation
// failures (type mismatches, undefined names, division by zero, arity
// mismatches) and wrapped host errors all become one of these. Kind is
// the name an `except Kind as v` handler matches against; "Exception"
// is the wildcard every handler can also spell (spec.md 4.4, 7).
type RuntimeError struct {
	Kind    string
	Message string
	Line    int
	Col     int
}

func (e *RuntimeError) Error() string {
	if e.Line == 0 && e.Col == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Col, e.Kind, e.Message)
}

func (ev *Evaluator) runtimeErr(n parser.Node, kind, format string, args ...interface{}) *RuntimeError {
	line, col := n.Pos()
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Line: line, Col: col}
}

// wrapEnvErr turns an Environment error (undefined name, or assignment
// to a const) into a
// RuntimeError carrying the offending node's position, so a failed
// assignment reports where in the source it happened rather than just
// what went wrong.
func (ev *Evaluator) wrapEnvErr(err error, n parser.Node) *RuntimeError {
	line, col := n.Pos()
	switch e := err.(type) {
	case *environment.AssignConstError:
		return &RuntimeError{Kind: "ConstError", Message: e.Error(), Line: line, Col: col}
	case *environment.NotDefinedError:
		return &RuntimeError{Kind: "NameError", Message: e.Error(), Line: line, Col: col}
	default:
		return &RuntimeError{Kind: "RuntimeError", Message: err.Error(), Line: line, Col: col}
	}
}
