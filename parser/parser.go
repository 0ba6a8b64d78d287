/*
Package parser implements Chiron's recursive-descent parser: it consumes
the token stream from package lexer and produces the AST defined in
ast.go.

Unlike the teacher's Pratt-table parser, Chiron's expression grammar is a
fixed precedence chain (spec.md 4.2: logical-or -> logical-and ->
unary-not -> comparison -> additive -> multiplicative ->
unary-increment/decrement -> primary), so the parser is one function per
precedence level calling the next tighter level, in the teacher's same
single-token-of-lookahead recursive-descent spirit.

Per spec.md 4.2, parsing does not attempt error recovery: the first
mismatch aborts the parse and is returned from Parse.
*/
package parser

import (
	"fmt"

	"github.com/chiron-lang/chiron/lexer"
)

// SyntaxError reports an unexpected token, with its position, per
// spec.md 7's syntactic error taxonomy.
type SyntaxError struct {
	Message string
	Line    int
	Col     int
	Token   lexer.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s (got %s)", e.Line, e.Col, e.Message, e.Token.Kind)
}

// Parser holds the parsing state: the lexer it pulls tokens from and a
// two-token lookahead buffer (current, peek).
type Parser struct {
	lex *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token
}

// NewParser creates a Parser over src, priming the lookahead buffer with
// the first two tokens.
func NewParser(src string) (*Parser, error) {
	p := &Parser{lex: lexer.NewLexer(src)}
	if err := p.advance(); err != nil {
		return nil, toSyntaxError(err)
	}
	if err := p.advance(); err != nil {
		return nil, toSyntaxError(err)
	}
	return p, nil
}

func toSyntaxError(err error) error {
	if lexErr, ok := err.(*lexer.LexError); ok {
		return &SyntaxError{Message: lexErr.Error(), Line: lexErr.Line, Col: lexErr.Column}
	}
	return err
}

// advance shifts the lookahead buffer forward by one token.
func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.lex.NextToken()
	if err != nil {
		return toSyntaxError(err)
	}
	p.peek = tok
	return nil
}

// curIs reports whether the current token has the given kind.
func (p *Parser) curIs(kind lexer.TokenType) bool { return p.cur.Kind == kind }

// peekIs reports whether the lookahead token has the given kind.
func (p *Parser) peekIs(kind lexer.TokenType) bool { return p.peek.Kind == kind }

// curIsKeyword reports whether the current token is an ID whose lexeme
// equals keyword (spec.md 4.1: keyword-hood is the parser's business, not
// the lexer's).
func (p *Parser) curIsKeyword(keyword string) bool {
	return p.cur.Kind == lexer.ID && p.cur.Lexeme == keyword
}

func (p *Parser) peekIsKeyword(keyword string) bool {
	return p.peek.Kind == lexer.ID && p.peek.Lexeme == keyword
}

// expect checks that the current token has kind, consumes it, and
// advances; otherwise it returns a SyntaxError.
func (p *Parser) expect(kind lexer.TokenType) (lexer.Token, error) {
	if !p.curIs(kind) {
		return lexer.Token{}, &SyntaxError{
			Message: fmt.Sprintf("expected %s", kind),
			Line:    p.cur.Line, Col: p.cur.Column, Token: p.cur,
		}
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// expectKeyword checks that the current token is the ID keyword and
// advances past it.
func (p *Parser) expectKeyword(keyword string) error {
	if !p.curIsKeyword(keyword) {
		return &SyntaxError{
			Message: fmt.Sprintf("expected keyword %q", keyword),
			Line:    p.cur.Line, Col: p.cur.Column, Token: p.cur,
		}
	}
	return p.advance()
}

var typeKeywords = map[string]bool{
	"int": true, "float": true, "bool": true, "char": true, "str": true,
	"array": true, "tuple": true, "map": true,
}

var modifierKeywords = map[string]bool{
	"const": true, "static": true, "global": true, "local": true,
}

// Parse consumes the entire token stream, producing a Program of
// top-level statements. It stops at the first error (spec.md 4.2: "no
// error recovery is required").
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}
	for !p.curIs(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}
