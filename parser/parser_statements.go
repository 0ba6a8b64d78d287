package parser

import (
	"fmt"
	"strings"

	"github.com/chiron-lang/chiron/lexer"
)

// parseStatement dispatches on the current token per spec.md 4.2's
// statement grammar. Every branch fully consumes its statement,
// including the trailing ';' — the worked examples in spec.md 8 close
// every statement, control construct included, with a semicolon (e.g.
// "if (n < 2) { return n; };"), so parseIfStmt/parseWhileStmt/
// parseForStmt/parseTryStmt consume one after their closing brace
// rather than leaving it for a caller to expect.
func (p *Parser) parseStatement() (Stmt, error) {
	switch {
	case p.curIsKeyword("if"):
		return p.parseIfStmt()
	case p.curIsKeyword("while"):
		return p.parseWhileStmt()
	case p.curIsKeyword("for"):
		return p.parseForStmt()
	case p.curIsKeyword("try"):
		return p.parseTryStmt()
	case p.curIsKeyword("return"):
		return p.parseReturnStmt()
	case p.curIsKeyword("import"):
		return p.parseImportStmt()
	case p.curIsKeyword("from"):
		return p.parseFromImportStmt()
	case p.curIsKeyword("break"):
		return p.parseBreakStmt()
	case p.curIsKeyword("continue"):
		return p.parseContinueStmt()
	case p.isDeclarationStart():
		return p.parseDeclaration()
	default:
		return p.parseExprOrCallStmt()
	}
}

// isDeclarationStart reports whether the current token opens a
// declaration: zero or more modifier keywords followed by a type
// keyword, 'auto', or 'callable'.
func (p *Parser) isDeclarationStart() bool {
	if p.cur.Kind != lexer.ID {
		return false
	}
	if modifierKeywords[p.cur.Lexeme] {
		return true
	}
	return typeKeywords[p.cur.Lexeme] || p.cur.Lexeme == "auto" || p.cur.Lexeme == "callable"
}

// parseBlock parses a brace-delimited statement list.
func (p *Parser) parseBlock() (*BlockStmt, error) {
	open, err := p.expect(lexer.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &BlockStmt{Position: Position{Line: open.Line, Col: open.Column}}
	for !p.curIs(lexer.RBRACE) {
		if p.curIs(lexer.EOF) {
			return nil, &SyntaxError{Message: "unterminated block", Line: p.cur.Line, Col: p.cur.Column, Token: p.cur}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseIfStmt() (Stmt, error) {
	tok := p.cur
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Position: Position{Line: tok.Line, Col: tok.Column}, Cond: cond, Then: then}
	if p.curIsKeyword("else") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.curIsKeyword("if") {
			nested, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			line, col := nested.Pos()
			stmt.Else = &BlockStmt{Position: Position{Line: line, Col: col}, Statements: []Stmt{nested}}
			// The nested parseIfStmt call already consumed the chain's
			// trailing ';' (it always consumes its own, whether that's
			// from its plain-if path or a further nested else branch).
			return stmt, nil
		}
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBlock
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return stmt, nil
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseWhileStmt() (Stmt, error) {
	tok := p.cur
	if err := p.expectKeyword("while"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &WhileStmt{Position: Position{Line: tok.Line, Col: tok.Column}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseForStmt() (Stmt, error) {
	tok := p.cur
	if err := p.expectKeyword("for"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	init, err := p.parseStatement() // consumes its own ';'
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	update, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ForStmt{Position: Position{Line: tok.Line, Col: tok.Column}, Init: init, Cond: cond, Update: update, Body: body}, nil
}

func (p *Parser) parseTryStmt() (Stmt, error) {
	tok := p.cur
	if err := p.expectKeyword("try"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &TryStmt{Position: Position{Line: tok.Line, Col: tok.Column}, Body: body}
	for p.curIsKeyword("except") {
		htok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		nameTok, err := p.expect(lexer.ID)
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("as"); err != nil {
			return nil, err
		}
		bindTok, err := p.expect(lexer.ID)
		if err != nil {
			return nil, err
		}
		hbody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Handlers = append(stmt.Handlers, ExceptHandler{
			Position:      Position{Line: htok.Line, Col: htok.Column},
			ExceptionName: nameTok.Lexeme,
			BindName:      bindTok.Lexeme,
			Body:          hbody,
		})
	}
	if len(stmt.Handlers) == 0 {
		return nil, &SyntaxError{Message: "try requires at least one except handler", Line: p.cur.Line, Col: p.cur.Column, Token: p.cur}
	}
	if p.curIsKeyword("finally") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		finallyBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Finally = finallyBlock
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseReturnStmt() (Stmt, error) {
	tok := p.cur
	if err := p.expectKeyword("return"); err != nil {
		return nil, err
	}
	stmt := &ReturnStmt{Position: Position{Line: tok.Line, Col: tok.Column}}
	if !p.curIs(lexer.SEMICOLON) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Expr = expr
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseBreakStmt() (Stmt, error) {
	tok := p.cur
	if err := p.expectKeyword("break"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &BreakStmt{Position: Position{Line: tok.Line, Col: tok.Column}}, nil
}

func (p *Parser) parseContinueStmt() (Stmt, error) {
	tok := p.cur
	if err := p.expectKeyword("continue"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ContinueStmt{Position: Position{Line: tok.Line, Col: tok.Column}}, nil
}

// parseTypeArgSuffix optionally consumes a '<' typeArg (',' typeArg)* '>'
// generic argument list per spec.md 6 (e.g. array<int>, map<str,int>)
// and folds it into base as plain text metadata. Type arguments are
// recorded, never enforced — spec.md 1's non-goals exclude type
// checking — so a malformed nesting like map<str,int is still a syntax
// error (the '>' is required) but the argument names themselves are not
// validated against typeKeywords.
func (p *Parser) parseTypeArgSuffix(base string) (string, error) {
	if !p.curIs(lexer.LT) {
		return base, nil
	}
	if err := p.advance(); err != nil {
		return "", err
	}
	var args []string
	for {
		argTok, err := p.expect(lexer.ID)
		if err != nil {
			return "", err
		}
		arg, err := p.parseTypeArgSuffix(argTok.Lexeme)
		if err != nil {
			return "", err
		}
		args = append(args, arg)
		if p.curIs(lexer.COMMA) {
			if err := p.advance(); err != nil {
				return "", err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.GT); err != nil {
		return "", err
	}
	return base + "<" + strings.Join(args, ",") + ">", nil
}

// parseDottedPath parses ID ('.' ID)* and returns the joined path.
func (p *Parser) parseDottedPath() (string, error) {
	first, err := p.expect(lexer.ID)
	if err != nil {
		return "", err
	}
	path := first.Lexeme
	for p.curIs(lexer.DOT) {
		if err := p.advance(); err != nil {
			return "", err
		}
		seg, err := p.expect(lexer.ID)
		if err != nil {
			return "", err
		}
		path += "." + seg.Lexeme
	}
	return path, nil
}

func (p *Parser) parseImportStmt() (Stmt, error) {
	tok := p.cur
	if err := p.expectKeyword("import"); err != nil {
		return nil, err
	}
	stmt := &ImportStmt{Position: Position{Line: tok.Line, Col: tok.Column}}
	for {
		path, err := p.parseDottedPath()
		if err != nil {
			return nil, err
		}
		entry := ImportEntry{Path: path}
		if p.curIsKeyword("as") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			aliasTok, err := p.expect(lexer.ID)
			if err != nil {
				return nil, err
			}
			entry.Alias = aliasTok.Lexeme
		}
		stmt.Entries = append(stmt.Entries, entry)
		if p.curIs(lexer.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseFromImportStmt() (Stmt, error) {
	tok := p.cur
	if err := p.expectKeyword("from"); err != nil {
		return nil, err
	}
	path, err := p.parseDottedPath()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("import"); err != nil {
		return nil, err
	}
	stmt := &FromImportStmt{Position: Position{Line: tok.Line, Col: tok.Column}, Path: path}
	if p.curIs(lexer.STAR) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmt.Wildcard = true
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return stmt, nil
	}
	for {
		nameTok, err := p.expect(lexer.ID)
		if err != nil {
			return nil, err
		}
		name := ImportName{Name: nameTok.Lexeme}
		if p.curIsKeyword("as") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			aliasTok, err := p.expect(lexer.ID)
			if err != nil {
				return nil, err
			}
			name.Alias = aliasTok.Lexeme
		}
		stmt.Names = append(stmt.Names, name)
		if p.curIs(lexer.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseExprOrCallStmt parses a bare expression statement, reclassifying
// a top-level call expression as a CallStmt per spec.md 3's distinction
// between call_callable and generic expr_stmt.
func (p *Parser) parseExprOrCallStmt() (Stmt, error) {
	tok := p.cur
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	if call, ok := expr.(*CallExpr); ok {
		return &CallStmt{Position: Position{Line: tok.Line, Col: tok.Column}, Call: call}, nil
	}
	return &ExprStmt{Position: Position{Line: tok.Line, Col: tok.Column}, Expr: expr}, nil
}

// parseDeclaration parses `modifier* (type | 'auto' | 'callable') ID
// (callable_tail | var_tail)`. Whether the tail is callable_tail or
// var_tail is decided by what follows the name — a '(' means
// callable_tail regardless of which head keyword introduced the
// declaration — matching every concrete declaration in spec.md 8.
func (p *Parser) parseDeclaration() (Stmt, error) {
	tok := p.cur
	var modifiers []string
	for modifierKeywords[p.cur.Lexeme] {
		modifiers = append(modifiers, p.cur.Lexeme)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	isCallableHead := p.curIsKeyword("callable")
	declaredType := p.cur.Lexeme
	if !typeKeywords[declaredType] && declaredType != "auto" && !isCallableHead {
		return nil, &SyntaxError{Message: "expected type, 'auto', or 'callable'", Line: p.cur.Line, Col: p.cur.Column, Token: p.cur}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if !isCallableHead {
		var err error
		declaredType, err = p.parseTypeArgSuffix(declaredType)
		if err != nil {
			return nil, err
		}
	}

	nameTok, err := p.expect(lexer.ID)
	if err != nil {
		return nil, err
	}

	if p.curIs(lexer.LPAREN) {
		return p.parseCallableTail(tok, modifiers, nameTok.Lexeme)
	}
	return p.parseVarTail(tok, modifiers, declaredType, nameTok.Lexeme)
}

func (p *Parser) parseCallableTail(tok lexer.Token, modifiers []string, name string) (Stmt, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []Param
	for !p.curIs(lexer.RPAREN) {
		paramType := p.cur.Lexeme
		if !typeKeywords[paramType] && paramType != "auto" {
			return nil, &SyntaxError{Message: "expected parameter type", Line: p.cur.Line, Col: p.cur.Column, Token: p.cur}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		paramType, err := p.parseTypeArgSuffix(paramType)
		if err != nil {
			return nil, err
		}
		paramName, err := p.expect(lexer.ID)
		if err != nil {
			return nil, err
		}
		params = append(params, Param{DeclaredType: paramType, Name: paramName.Lexeme})
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
	if _, err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	returnTypeTok, err := p.expect(lexer.ID)
	if err != nil {
		return nil, err
	}
	returnType, err := p.parseTypeArgSuffix(returnTypeTok.Lexeme)
	if err != nil {
		return nil, err
	}

	decl := &CallableDeclStmt{
		Position:   Position{Line: tok.Line, Col: tok.Column},
		Modifiers:  modifiers,
		Name:       name,
		Params:     params,
		ReturnType: returnType,
	}

	if p.curIs(lexer.SEMICOLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return decl, nil // forward declaration: Body stays nil
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	decl.Body = body
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseVarTail(tok lexer.Token, modifiers []string, declaredType, name string) (Stmt, error) {
	if !p.curIs(lexer.COLONEQ) && !p.curIs(lexer.EQUAL) {
		return nil, &SyntaxError{
			Message: fmt.Sprintf("expected %s or %s", lexer.COLONEQ, lexer.EQUAL),
			Line:    p.cur.Line, Col: p.cur.Column, Token: p.cur,
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &DeclStmt{
		Position:     Position{Line: tok.Line, Col: tok.Column},
		Modifiers:    modifiers,
		DeclaredType: declaredType,
		Name:         name,
		Init:         init,
	}, nil
}
