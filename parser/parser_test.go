package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	p, err := NewParser(src)
	require.NoError(t, err)
	prog, err := p.Parse()
	require.NoError(t, err)
	return prog
}

func TestParse_VarDeclaration(t *testing.T) {
	prog := mustParse(t, `int x = 10;`)
	require.Len(t, prog.Statements, 1)
	decl, ok := prog.Statements[0].(*DeclStmt)
	require.True(t, ok)
	assert.Equal(t, "int", decl.DeclaredType)
	assert.Equal(t, "x", decl.Name)
	assert.IsType(t, &IntegerLit{}, decl.Init)
}

func TestParse_ConstDeclarationWithColonEq(t *testing.T) {
	prog := mustParse(t, `const float PI := 3.14;`)
	decl := prog.Statements[0].(*DeclStmt)
	assert.Equal(t, []string{"const"}, decl.Modifiers)
	assert.Equal(t, "float", decl.DeclaredType)
	lit := decl.Init.(*FloatLit)
	assert.Equal(t, 3.14, lit.Value)
}

func TestParse_CallableDeclarationWithBody(t *testing.T) {
	prog := mustParse(t, `callable add(int a, int b) -> int { return a + b; };`)
	decl, ok := prog.Statements[0].(*CallableDeclStmt)
	require.True(t, ok)
	assert.Equal(t, "add", decl.Name)
	assert.Equal(t, "int", decl.ReturnType)
	require.Len(t, decl.Params, 2)
	assert.Equal(t, Param{DeclaredType: "int", Name: "a"}, decl.Params[0])
	require.NotNil(t, decl.Body)
	require.Len(t, decl.Body.Statements, 1)
	assert.IsType(t, &ReturnStmt{}, decl.Body.Statements[0])
}

func TestParse_CallableForwardDeclarationHasNilBody(t *testing.T) {
	prog := mustParse(t, `callable add(int a, int b) -> int;`)
	decl := prog.Statements[0].(*CallableDeclStmt)
	assert.Nil(t, decl.Body)
}

func TestParse_GenericVarDeclaration(t *testing.T) {
	prog := mustParse(t, `array<int> xs = [1];`)
	decl, ok := prog.Statements[0].(*DeclStmt)
	require.True(t, ok)
	assert.Equal(t, "array<int>", decl.DeclaredType)
	assert.Equal(t, "xs", decl.Name)
}

func TestParse_NestedGenericVarDeclaration(t *testing.T) {
	prog := mustParse(t, `map<str,array<int>> m = {};`)
	decl := prog.Statements[0].(*DeclStmt)
	assert.Equal(t, "map<str,array<int>>", decl.DeclaredType)
}

func TestParse_GenericCallableParamsAndReturnType(t *testing.T) {
	prog := mustParse(t, `callable first(array<int> xs) -> map<str,int> { return xs; };`)
	decl := prog.Statements[0].(*CallableDeclStmt)
	require.Len(t, decl.Params, 1)
	assert.Equal(t, "array<int>", decl.Params[0].DeclaredType)
	assert.Equal(t, "map<str,int>", decl.ReturnType)
}

func TestParse_GenericMissingCloseAngleIsSyntaxError(t *testing.T) {
	p, err := NewParser(`array<int xs = [1];`)
	require.NoError(t, err)
	_, err = p.Parse()
	require.Error(t, err)
}

func TestParse_AssignmentStatement(t *testing.T) {
	prog := mustParse(t, `x = x + i;`)
	exprStmt, ok := prog.Statements[0].(*ExprStmt)
	require.True(t, ok)
	assign, ok := exprStmt.Expr.(*AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Target)
	assert.IsType(t, &BinaryExpr{}, assign.Value)
}

func TestParse_IfElseIfChain(t *testing.T) {
	prog := mustParse(t, `
		if (n < 2) { return n; } else if (n < 4) { return 1; } else { return 2; };
		int after = 1;
	`)
	require.Len(t, prog.Statements, 2)
	ifStmt, ok := prog.Statements[0].(*IfStmt)
	require.True(t, ok)
	require.Len(t, ifStmt.Else.Statements, 1)
	nested, ok := ifStmt.Else.Statements[0].(*IfStmt)
	require.True(t, ok)
	require.Len(t, nested.Else.Statements, 1)
	assert.IsType(t, &ReturnStmt{}, nested.Else.Statements[0])
	assert.IsType(t, &DeclStmt{}, prog.Statements[1])
}

func TestParse_IfWithElseBlockNoElseIf(t *testing.T) {
	prog := mustParse(t, `
		if (n < 2) { return n; } else { return 2; };
		int after = 1;
	`)
	require.Len(t, prog.Statements, 2)
	assert.IsType(t, &DeclStmt{}, prog.Statements[1])
}

func TestParse_ForLoopWithTrailingSemicolon(t *testing.T) {
	prog := mustParse(t, `for (int i = 0; i < 3; i = i + 1) { x = x + i; };`)
	forStmt, ok := prog.Statements[0].(*ForStmt)
	require.True(t, ok)
	assert.IsType(t, &DeclStmt{}, forStmt.Init)
	assert.IsType(t, &BinaryExpr{}, forStmt.Cond)
	assert.IsType(t, &AssignExpr{}, forStmt.Update)
}

func TestParse_TryExceptFinally(t *testing.T) {
	prog := mustParse(t, `
		try { risky(); } except Exception as e { print(e); } finally { print("done"); };
	`)
	tryStmt, ok := prog.Statements[0].(*TryStmt)
	require.True(t, ok)
	require.Len(t, tryStmt.Handlers, 1)
	assert.Equal(t, "Exception", tryStmt.Handlers[0].ExceptionName)
	assert.Equal(t, "e", tryStmt.Handlers[0].BindName)
	require.NotNil(t, tryStmt.Finally)
}

func TestParse_TryWithoutExceptIsSyntaxError(t *testing.T) {
	p, err := NewParser(`try { risky(); };`)
	require.NoError(t, err)
	_, err = p.Parse()
	assert.Error(t, err)
}

func TestParse_BreakAndContinue(t *testing.T) {
	prog := mustParse(t, `while (true) { break; continue; };`)
	whileStmt := prog.Statements[0].(*WhileStmt)
	require.Len(t, whileStmt.Body.Statements, 2)
	assert.IsType(t, &BreakStmt{}, whileStmt.Body.Statements[0])
	assert.IsType(t, &ContinueStmt{}, whileStmt.Body.Statements[1])
}

func TestParse_ImportWithAlias(t *testing.T) {
	prog := mustParse(t, `import std.math as m, std.strings;`)
	importStmt := prog.Statements[0].(*ImportStmt)
	require.Len(t, importStmt.Entries, 2)
	assert.Equal(t, ImportEntry{Path: "std.math", Alias: "m"}, importStmt.Entries[0])
	assert.Equal(t, ImportEntry{Path: "std.strings", Alias: ""}, importStmt.Entries[1])
}

func TestParse_FromImportWildcard(t *testing.T) {
	prog := mustParse(t, `from std.math import *;`)
	fromStmt := prog.Statements[0].(*FromImportStmt)
	assert.True(t, fromStmt.Wildcard)
	assert.Equal(t, "std.math", fromStmt.Path)
}

func TestParse_FromImportNamedWithAlias(t *testing.T) {
	prog := mustParse(t, `from std.math import sqrt, pow as power;`)
	fromStmt := prog.Statements[0].(*FromImportStmt)
	require.Len(t, fromStmt.Names, 2)
	assert.Equal(t, ImportName{Name: "sqrt"}, fromStmt.Names[0])
	assert.Equal(t, ImportName{Name: "pow", Alias: "power"}, fromStmt.Names[1])
}

func TestParse_CallWithPositionalAndKeywordArgs(t *testing.T) {
	prog := mustParse(t, `greet("hi", punctuation="!");`)
	callStmt, ok := prog.Statements[0].(*CallStmt)
	require.True(t, ok)
	require.Len(t, callStmt.Call.Positional, 1)
	require.Len(t, callStmt.Call.Keyword, 1)
	assert.Equal(t, "punctuation", callStmt.Call.Keyword[0].Name)
}

func TestParse_GetAttrCallChain(t *testing.T) {
	prog := mustParse(t, `m.sqrt(4);`)
	callStmt := prog.Statements[0].(*CallStmt)
	attr, ok := callStmt.Call.Callee.(*GetAttrExpr)
	require.True(t, ok)
	assert.Equal(t, "sqrt", attr.Attr)
	ident, ok := attr.Object.(*Identifier)
	require.True(t, ok)
	assert.Equal(t, "m", ident.Name)
}

func TestParse_PreAndPostIncrementDecrement(t *testing.T) {
	cases := []struct {
		src string
		op  IncDecOp
	}{
		{"++:x;", PreIncrement},
		{"--:x;", PreDecrement},
		{"x:++;", PostIncrement},
		{"x:--;", PostDecrement},
	}
	for _, tc := range cases {
		prog := mustParse(t, tc.src)
		exprStmt := prog.Statements[0].(*ExprStmt)
		incDec, ok := exprStmt.Expr.(*IncDecExpr)
		require.True(t, ok, "src=%q", tc.src)
		assert.Equal(t, tc.op, incDec.Op)
		assert.Equal(t, "x", incDec.Target)
	}
}

func TestParse_BarePostfixColonIsNotConsumedAsIncDec(t *testing.T) {
	// Inside a map literal, an identifier key followed by ':' must be
	// left for the map-entry separator to consume, not mistaken for a
	// postfix increment/decrement marker.
	prog := mustParse(t, `auto m = {x: 1};`)
	decl := prog.Statements[0].(*DeclStmt)
	mapLit := decl.Init.(*MapLit)
	require.Len(t, mapLit.Entries, 1)
	ident, ok := mapLit.Entries[0].Key.(*Identifier)
	require.True(t, ok)
	assert.Equal(t, "x", ident.Name)
}

func TestParse_ArrayTupleAndEmptyMapLiterals(t *testing.T) {
	prog := mustParse(t, `
		auto a = [1, 2, 3];
		auto t = (1, "two");
		auto m = {};
	`)
	a := prog.Statements[0].(*DeclStmt).Init.(*ArrayLit)
	assert.Len(t, a.Elements, 3)

	tup := prog.Statements[1].(*DeclStmt).Init.(*TupleLit)
	assert.Len(t, tup.Elements, 2)

	m := prog.Statements[2].(*DeclStmt).Init.(*MapLit)
	assert.Empty(t, m.Entries)
}

func TestParse_ParenthesizedGroupIsNotATuple(t *testing.T) {
	prog := mustParse(t, `auto x = (1 + 2);`)
	decl := prog.Statements[0].(*DeclStmt)
	assert.IsType(t, &BinaryExpr{}, decl.Init)
}

func TestParse_LogicalAndComparisonPrecedence(t *testing.T) {
	// "a < b and c > d or not e" should group as
	// ((a<b) and (c>d)) or (not e)
	prog := mustParse(t, `auto r = a < b and c > d or not e;`)
	decl := prog.Statements[0].(*DeclStmt)
	or, ok := decl.Init.(*LogicExpr)
	require.True(t, ok)
	assert.Equal(t, "or", or.Op)
	and, ok := or.Left.(*LogicExpr)
	require.True(t, ok)
	assert.Equal(t, "and", and.Op)
	assert.IsType(t, &BinaryExpr{}, and.Left)
	assert.IsType(t, &BinaryExpr{}, and.Right)
	assert.IsType(t, &NotExpr{}, or.Right)
}

func TestParse_SyntaxErrorReportsPosition(t *testing.T) {
	p, err := NewParser("int x 10;")
	require.NoError(t, err)
	_, err = p.Parse()
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 1, synErr.Line)
}

// TestParse_RoundTripIgnoresPosition exercises the structural-equality
// property from spec.md 8: two parses of sources that differ only in
// incidental whitespace/layout must produce ASTs that are equal once
// position information is ignored.
func TestParse_RoundTripIgnoresPosition(t *testing.T) {
	a := mustParse(t, `callable add(int a, int b) -> int { return a + b; };`)
	b := mustParse(t, "callable add(int a, int b) -> int {\n\treturn a + b;\n};")

	diff := cmp.Diff(a, b, cmpopts.IgnoreFields(Position{}, "Line", "Col"))
	assert.Empty(t, diff)
}
