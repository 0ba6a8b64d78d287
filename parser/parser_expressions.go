package parser

import (
	"strconv"
	"strings"

	"github.com/chiron-lang/chiron/lexer"
)

// parseExpression is the entry point into the expression grammar.
// Assignment sits below logical-or in precedence (lowest of all, and
// right-associative) — spec.md 4.2 only names logical-or as the
// lowest production, but plain reassignment (see AssignExpr) has to
// live somewhere, and binding it looser than every operator lets
// `x = x + i` parse the way spec.md 8's worked example requires.
func (p *Parser) parseExpression() (Expr, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (Expr, error) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.curIs(lexer.EQUAL) {
		ident, ok := left.(*Identifier)
		if !ok {
			return nil, &SyntaxError{Message: "invalid assignment target", Line: p.cur.Line, Col: p.cur.Column, Token: p.cur}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		line, col := ident.Pos()
		return &AssignExpr{Position: Position{Line: line, Col: col}, Target: ident.Name, Value: value}, nil
	}
	return left, nil
}

func (p *Parser) parseLogicalOr() (Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.curIsKeyword("or") {
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicExpr{Position: Position{Line: tok.Line, Col: tok.Column}, Op: "or", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.curIsKeyword("and") {
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &LogicExpr{Position: Position{Line: tok.Line, Col: tok.Column}, Op: "and", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (Expr, error) {
	if p.curIsKeyword("not") {
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Position: Position{Line: tok.Line, Col: tok.Column}, Operand: operand}, nil
	}
	return p.parseComparison()
}

var comparisonOps = map[lexer.TokenType]string{
	lexer.LT: "<", lexer.GT: ">", lexer.LE: "<=", lexer.GE: ">=",
	lexer.EQEQ: "==", lexer.NEQ: "!=",
}

func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.cur.Kind]
		if !ok {
			return left, nil
		}
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Position: Position{Line: tok.Line, Col: tok.Column}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) {
		tok := p.cur
		op := string(tok.Kind)
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Position: Position{Line: tok.Line, Col: tok.Column}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseIncDec()
	if err != nil {
		return nil, err
	}
	for p.curIs(lexer.STAR) || p.curIs(lexer.SLASH) || p.curIs(lexer.PERCENT) {
		tok := p.cur
		op := string(tok.Kind)
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseIncDec()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Position: Position{Line: tok.Line, Col: tok.Column}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseIncDec handles the prefix forms `++:x` / `--:x` and defers to
// parsePrimary for everything else, checking afterward whether the
// primary it got back is an identifier immediately followed by a
// postfix `:++` / `:--`.
//
// The postfix check only commits when the token after the colon is
// INCREMENT or DECREMENT (two-token lookahead). If it is not, the
// colon is left unconsumed: that is not postfix position at all (a
// map literal's `key: value` separator is the common legitimate
// reason an identifier is followed by a bare colon), so there is
// nothing to reject here. A colon that truly was meant as a
// postfix marker but is malformed surfaces as a syntax error from
// whatever construct expected something else where the colon sits.
func (p *Parser) parseIncDec() (Expr, error) {
	if p.curIs(lexer.INCREMENT) || p.curIs(lexer.DECREMENT) {
		tok := p.cur
		op := PreIncrement
		if tok.Kind == lexer.DECREMENT {
			op = PreDecrement
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		nameTok, err := p.expect(lexer.ID)
		if err != nil {
			return nil, err
		}
		return &IncDecExpr{Position: Position{Line: tok.Line, Col: tok.Column}, Op: op, Target: nameTok.Lexeme}, nil
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	ident, ok := primary.(*Identifier)
	if !ok || !p.curIs(lexer.COLON) {
		return primary, nil
	}
	if !p.peekIs(lexer.INCREMENT) && !p.peekIs(lexer.DECREMENT) {
		return primary, nil
	}
	if err := p.advance(); err != nil { // consume ':', cur becomes ++/--
		return nil, err
	}
	op := PostIncrement
	if p.cur.Kind == lexer.DECREMENT {
		op = PostDecrement
	}
	if err := p.advance(); err != nil { // consume ++/--
		return nil, err
	}
	line, col := ident.Pos()
	return &IncDecExpr{Position: Position{Line: line, Col: col}, Op: op, Target: ident.Name}, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.cur
	pos := Position{Line: tok.Line, Col: tok.Column}

	switch {
	case p.curIs(lexer.NUMBER):
		if err := p.advance(); err != nil {
			return nil, err
		}
		if strings.Contains(tok.Lexeme, ".") {
			v, err := strconv.ParseFloat(tok.Lexeme, 64)
			if err != nil {
				return nil, &SyntaxError{Message: "malformed float literal", Line: tok.Line, Col: tok.Column, Token: tok}
			}
			return &FloatLit{Position: pos, Value: v}, nil
		}
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, &SyntaxError{Message: "malformed integer literal", Line: tok.Line, Col: tok.Column, Token: tok}
		}
		return &IntegerLit{Position: pos, Value: v}, nil

	case p.curIs(lexer.STRING):
		if err := p.advance(); err != nil {
			return nil, err
		}
		unescaped, err := unescapeString(tok.Lexeme)
		if err != nil {
			return nil, &SyntaxError{Message: err.Error(), Line: tok.Line, Col: tok.Column, Token: tok}
		}
		return &StringLit{Position: pos, Value: unescaped}, nil

	case p.curIs(lexer.CHAR):
		if err := p.advance(); err != nil {
			return nil, err
		}
		r, err := unescapeChar(tok.Lexeme)
		if err != nil {
			return nil, &SyntaxError{Message: err.Error(), Line: tok.Line, Col: tok.Column, Token: tok}
		}
		return &CharLit{Position: pos, Value: r}, nil

	case p.curIs(lexer.ID):
		return p.parseIdentifierChain()

	case p.curIs(lexer.LPAREN):
		return p.parseParenOrTuple()

	case p.curIs(lexer.LBRACKET):
		return p.parseArrayLit()

	case p.curIs(lexer.LBRACE):
		return p.parseMapLit()
	}

	return nil, &SyntaxError{Message: "unexpected token in expression", Line: tok.Line, Col: tok.Column, Token: tok}
}

// parseIdentifierChain parses an identifier, `true`/`false` (spec.md 6:
// reclassified by the parser, not the lexer), and any trailing chain of
// calls and attribute accesses: `obj.method(a, b=c).field`.
func (p *Parser) parseIdentifierChain() (Expr, error) {
	tok := p.cur
	pos := Position{Line: tok.Line, Col: tok.Column}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var expr Expr
	switch tok.Lexeme {
	case "true":
		expr = &BoolLit{Position: pos, Value: true}
	case "false":
		expr = &BoolLit{Position: pos, Value: false}
	default:
		expr = &Identifier{Position: pos, Name: tok.Lexeme}
	}

	for {
		switch {
		case p.curIs(lexer.LPAREN):
			call, err := p.parseCallArgs(expr)
			if err != nil {
				return nil, err
			}
			expr = call
		case p.curIs(lexer.DOT):
			if err := p.advance(); err != nil {
				return nil, err
			}
			attrTok, err := p.expect(lexer.ID)
			if err != nil {
				return nil, err
			}
			line, col := expr.Pos()
			expr = &GetAttrExpr{Position: Position{Line: line, Col: col}, Object: expr, Attr: attrTok.Lexeme}
		default:
			return expr, nil
		}
	}
}

// parseCallArgs parses `(args)` given the already-parsed callee. A
// positional argument is any expression; a keyword argument is
// recognized, per spec.md 4.2, when the current token is an ID
// immediately followed by '=' at the argument position.
func (p *Parser) parseCallArgs(callee Expr) (Expr, error) {
	line, col := callee.Pos()
	call := &CallExpr{Position: Position{Line: line, Col: col}, Callee: callee}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	for !p.curIs(lexer.RPAREN) {
		if p.curIs(lexer.ID) && p.peekIs(lexer.EQUAL) {
			nameTok := p.cur
			if err := p.advance(); err != nil { // consume name
				return nil, err
			}
			if err := p.advance(); err != nil { // consume '='
				return nil, err
			}
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Keyword = append(call.Keyword, KeywordArg{Name: nameTok.Lexeme, Value: value})
		} else {
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Positional = append(call.Positional, value)
		}
		if p.curIs(lexer.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return call, nil
}

// parseParenOrTuple parses a parenthesized group (a single expression,
// unwrapped) or a tuple literal (any parenthesized list containing a
// comma, so `(e,)` is a one-element tuple).
func (p *Parser) parseParenOrTuple() (Expr, error) {
	tok := p.cur
	pos := Position{Line: tok.Line, Col: tok.Column}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.curIs(lexer.COMMA) {
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return first, nil
	}
	elements := []Expr{first}
	for p.curIs(lexer.COMMA) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.curIs(lexer.RPAREN) { // trailing comma
			break
		}
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &TupleLit{Position: pos, Elements: elements}, nil
}

func (p *Parser) parseArrayLit() (Expr, error) {
	tok := p.cur
	pos := Position{Line: tok.Line, Col: tok.Column}
	if _, err := p.expect(lexer.LBRACKET); err != nil {
		return nil, err
	}
	lit := &ArrayLit{Position: pos}
	for !p.curIs(lexer.RBRACKET) {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		lit.Elements = append(lit.Elements, elem)
		if p.curIs(lexer.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseMapLit() (Expr, error) {
	tok := p.cur
	pos := Position{Line: tok.Line, Col: tok.Column}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	lit := &MapLit{Position: pos}
	for !p.curIs(lexer.RBRACE) {
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		lit.Entries = append(lit.Entries, MapEntryExpr{Key: key, Value: value})
		if p.curIs(lexer.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return lit, nil
}
