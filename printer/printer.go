/*
Package printer renders a parsed Chiron program back into source text.

Grounded on the teacher's PrintingVisitor (print_visitor.go): a recursive
walk over the AST that writes into a buffer as it goes. The teacher's
visitor produces a human-readable trace of node kinds and values for
debugging; this one produces valid Chiron source instead, since the
property it exists to support (spec.md 8's round-trip property: parse ->
print -> re-parse -> structurally equal AST, ignoring position) needs
text a parser can consume, not a tree dump.
*/
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chiron-lang/chiron/parser"
)

const indentWidth = 4

// Program renders an entire parsed program as Chiron source.
func Program(prog *parser.Program) string {
	var b strings.Builder
	p := &printer{buf: &b}
	for _, s := range prog.Statements {
		p.stmt(s, 0)
	}
	return b.String()
}

type printer struct {
	buf *strings.Builder
}

func (p *printer) indent(level int) {
	p.buf.WriteString(strings.Repeat(" ", level*indentWidth))
}

func (p *printer) stmt(s parser.Stmt, level int) {
	switch n := s.(type) {
	case *parser.DeclStmt:
		p.indent(level)
		for _, m := range n.Modifiers {
			p.buf.WriteString(m)
			p.buf.WriteString(" ")
		}
		p.buf.WriteString(n.DeclaredType)
		p.buf.WriteString(" ")
		p.buf.WriteString(n.Name)
		if n.Init != nil {
			p.buf.WriteString(" = ")
			p.expr(n.Init)
		}
		p.buf.WriteString(";\n")

	case *parser.CallableDeclStmt:
		p.indent(level)
		for _, m := range n.Modifiers {
			p.buf.WriteString(m)
			p.buf.WriteString(" ")
		}
		p.buf.WriteString("callable ")
		p.buf.WriteString(n.Name)
		p.buf.WriteString("(")
		for i, param := range n.Params {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(param.DeclaredType)
			p.buf.WriteString(" ")
			p.buf.WriteString(param.Name)
		}
		p.buf.WriteString(") -> ")
		p.buf.WriteString(n.ReturnType)
		if n.Body == nil {
			p.buf.WriteString(";\n")
			return
		}
		p.buf.WriteString(" ")
		p.block(n.Body, level)
		p.buf.WriteString(";\n")

	case *parser.CallStmt:
		p.indent(level)
		p.expr(n.Call)
		p.buf.WriteString(";\n")

	case *parser.ReturnStmt:
		p.indent(level)
		p.buf.WriteString("return")
		if n.Expr != nil {
			p.buf.WriteString(" ")
			p.expr(n.Expr)
		}
		p.buf.WriteString(";\n")

	case *parser.IfStmt:
		p.indent(level)
		p.buf.WriteString("if (")
		p.expr(n.Cond)
		p.buf.WriteString(") ")
		p.block(n.Then, level)
		if n.Else != nil {
			p.buf.WriteString(" else ")
			if len(n.Else.Statements) == 1 {
				if inner, ok := n.Else.Statements[0].(*parser.IfStmt); ok {
					p.elseIf(inner, level)
					p.buf.WriteString(";\n")
					return
				}
			}
			p.block(n.Else, level)
		}
		p.buf.WriteString(";\n")

	case *parser.WhileStmt:
		p.indent(level)
		p.buf.WriteString("while (")
		p.expr(n.Cond)
		p.buf.WriteString(") ")
		p.block(n.Body, level)
		p.buf.WriteString(";\n")

	case *parser.ForStmt:
		p.indent(level)
		p.buf.WriteString("for (")
		p.forClause(n.Init)
		p.buf.WriteString("; ")
		if n.Cond != nil {
			p.expr(n.Cond)
		}
		p.buf.WriteString("; ")
		if n.Update != nil {
			p.expr(n.Update)
		}
		p.buf.WriteString(") ")
		p.block(n.Body, level)
		p.buf.WriteString(";\n")

	case *parser.TryStmt:
		p.indent(level)
		p.buf.WriteString("try ")
		p.block(n.Body, level)
		for _, h := range n.Handlers {
			p.buf.WriteString(" except ")
			p.buf.WriteString(h.ExceptionName)
			p.buf.WriteString(" as ")
			p.buf.WriteString(h.BindName)
			p.buf.WriteString(" ")
			p.block(h.Body, level)
		}
		if n.Finally != nil {
			p.buf.WriteString(" finally ")
			p.block(n.Finally, level)
		}
		p.buf.WriteString(";\n")

	case *parser.BreakStmt:
		p.indent(level)
		p.buf.WriteString("break;\n")

	case *parser.ContinueStmt:
		p.indent(level)
		p.buf.WriteString("continue;\n")

	case *parser.ImportStmt:
		p.indent(level)
		p.buf.WriteString("import ")
		for i, e := range n.Entries {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(e.Path)
			if e.Alias != "" {
				p.buf.WriteString(" as ")
				p.buf.WriteString(e.Alias)
			}
		}
		p.buf.WriteString(";\n")

	case *parser.FromImportStmt:
		p.indent(level)
		p.buf.WriteString("from ")
		p.buf.WriteString(n.Path)
		p.buf.WriteString(" import ")
		if n.Wildcard {
			p.buf.WriteString("*")
		} else {
			for i, nm := range n.Names {
				if i > 0 {
					p.buf.WriteString(", ")
				}
				p.buf.WriteString(nm.Name)
				if nm.Alias != "" {
					p.buf.WriteString(" as ")
					p.buf.WriteString(nm.Alias)
				}
			}
		}
		p.buf.WriteString(";\n")

	case *parser.ExprStmt:
		p.indent(level)
		p.expr(n.Expr)
		p.buf.WriteString(";\n")

	case *parser.BlockStmt:
		p.indent(level)
		p.block(n, level)
		p.buf.WriteString(";\n")

	default:
		p.indent(level)
		p.buf.WriteString(fmt.Sprintf("/* unprintable statement %T */\n", n))
	}
}

// elseIf prints a flattened else-if arm without a leading indent, since
// it always follows "} else " on the same line.
func (p *printer) elseIf(n *parser.IfStmt, level int) {
	p.buf.WriteString("if (")
	p.expr(n.Cond)
	p.buf.WriteString(") ")
	p.block(n.Then, level)
	if n.Else != nil {
		p.buf.WriteString(" else ")
		if len(n.Else.Statements) == 1 {
			if inner, ok := n.Else.Statements[0].(*parser.IfStmt); ok {
				p.elseIf(inner, level)
				return
			}
		}
		p.block(n.Else, level)
	}
}

// forClause renders a for-loop's init slot, which the grammar treats as
// a statement that still owns its own trailing semicolon when written
// standalone (spec.md 4.2) — here it's printed bare since the enclosing
// for(...) supplies the separator.
func (p *printer) forClause(s parser.Stmt) {
	switch n := s.(type) {
	case nil:
		return
	case *parser.DeclStmt:
		for _, m := range n.Modifiers {
			p.buf.WriteString(m)
			p.buf.WriteString(" ")
		}
		p.buf.WriteString(n.DeclaredType)
		p.buf.WriteString(" ")
		p.buf.WriteString(n.Name)
		if n.Init != nil {
			p.buf.WriteString(" = ")
			p.expr(n.Init)
		}
	case *parser.ExprStmt:
		p.expr(n.Expr)
	default:
		p.buf.WriteString(fmt.Sprintf("/* unprintable for-init %T */", n))
	}
}

func (p *printer) block(b *parser.BlockStmt, level int) {
	p.buf.WriteString("{\n")
	for _, s := range b.Statements {
		p.stmt(s, level+1)
	}
	p.indent(level)
	p.buf.WriteString("}")
}

func (p *printer) expr(e parser.Expr) {
	switch n := e.(type) {
	case *parser.IntegerLit:
		p.buf.WriteString(strconv.FormatInt(n.Value, 10))
	case *parser.FloatLit:
		// Plain decimal with a '.' always present, so the literal lexes
		// back as a float (2.0 must not print as "2", nor 1e21 as "1e+21").
		s := strconv.FormatFloat(n.Value, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		p.buf.WriteString(s)
	case *parser.StringLit:
		p.buf.WriteString(quoteString(n.Value))
	case *parser.CharLit:
		p.buf.WriteString(quoteChar(n.Value))
	case *parser.BoolLit:
		p.buf.WriteString(strconv.FormatBool(n.Value))
	case *parser.Identifier:
		p.buf.WriteString(n.Name)
	case *parser.BinaryExpr:
		p.buf.WriteString("(")
		p.expr(n.Left)
		p.buf.WriteString(" " + n.Op + " ")
		p.expr(n.Right)
		p.buf.WriteString(")")
	case *parser.LogicExpr:
		p.buf.WriteString("(")
		p.expr(n.Left)
		p.buf.WriteString(" " + n.Op + " ")
		p.expr(n.Right)
		p.buf.WriteString(")")
	case *parser.NotExpr:
		p.buf.WriteString("not ")
		p.expr(n.Operand)
	case *parser.IncDecExpr:
		p.incDec(n)
	case *parser.AssignExpr:
		p.buf.WriteString(n.Target)
		p.buf.WriteString(" = ")
		p.expr(n.Value)
	case *parser.CallExpr:
		p.expr(n.Callee)
		p.buf.WriteString("(")
		for i, a := range n.Positional {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.expr(a)
		}
		for i, kw := range n.Keyword {
			if i > 0 || len(n.Positional) > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(kw.Name)
			p.buf.WriteString(" = ")
			p.expr(kw.Value)
		}
		p.buf.WriteString(")")
	case *parser.GetAttrExpr:
		p.expr(n.Object)
		p.buf.WriteString(".")
		p.buf.WriteString(n.Attr)
	case *parser.ArrayLit:
		p.buf.WriteString("[")
		for i, el := range n.Elements {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.expr(el)
		}
		p.buf.WriteString("]")
	case *parser.TupleLit:
		p.buf.WriteString("(")
		for i, el := range n.Elements {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.expr(el)
		}
		p.buf.WriteString(")")
	case *parser.MapLit:
		p.buf.WriteString("{")
		for i, entry := range n.Entries {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.expr(entry.Key)
			p.buf.WriteString(": ")
			p.expr(entry.Value)
		}
		p.buf.WriteString("}")
	default:
		p.buf.WriteString(fmt.Sprintf("/* unprintable expr %T */", n))
	}
}

// incDec renders one of the four spec.md 4.2 postfix/prefix forms
// (`++:x`, `x:++`, `--:x`, `x:--`) from its Op/Target pair.
func (p *printer) incDec(n *parser.IncDecExpr) {
	switch n.Op {
	case parser.PreIncrement:
		p.buf.WriteString("++:" + n.Target)
	case parser.PreDecrement:
		p.buf.WriteString("--:" + n.Target)
	case parser.PostIncrement:
		p.buf.WriteString(n.Target + ":++")
	case parser.PostDecrement:
		p.buf.WriteString(n.Target + ":--")
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func quoteChar(r rune) string {
	switch r {
	case '\'':
		return `'\''`
	case '\\':
		return `'\\'`
	case '\n':
		return `'\n'`
	case '\t':
		return `'\t'`
	case '\r':
		return `'\r'`
	case 0:
		return `'\0'`
	default:
		return "'" + string(r) + "'"
	}
}
