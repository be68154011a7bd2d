package parser

import (
	"wu/internal/ast"
	"wu/internal/diag"
	"wu/internal/source"
	"wu/internal/token"
)

// parseStmt dispatches on the current token. topLevel only changes which
// diagnostic a stray token gets.
func (p *Parser) parseStmt(topLevel bool) ast.StmtID {
	if !p.enter() {
		sp := p.tok.Span
		p.advance()
		p.resyncStmt()
		return p.builder.Stmts.NewError(sp)
	}
	defer p.leave()

	switch p.tok.Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwFn:
		return p.parseFn()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		sp := p.tok.Span
		p.advance()
		p.expectSemicolon()
		return p.builder.Stmts.NewBreak(sp.Cover(p.prev))
	case token.KwContinue:
		sp := p.tok.Span
		p.advance()
		p.expectSemicolon()
		return p.builder.Stmts.NewContinue(sp.Cover(p.prev))
	case token.LBrace:
		return p.parseBlock()
	}

	if canStartExpr(p.tok.Kind) {
		return p.parseExprStmt()
	}

	sp := p.tok.Span
	if topLevel {
		p.err(diag.SynUnexpectedTopLevel, sp, "unexpected "+p.tok.Kind.String()+" at top level")
	} else {
		p.err(diag.SynUnexpectedToken, sp, "unexpected "+p.tok.Kind.String())
	}
	p.advance()
	p.resyncStmt()
	return p.builder.Stmts.NewError(sp)
}

// let [mut] name [: type] [= expr] ;
func (p *Parser) parseLet() ast.StmtID {
	start := p.tok.Span
	p.advance()

	isMut := p.eat(token.KwMut)

	name, ok := p.expectIdent("binding name after 'let'")
	if !ok {
		p.resyncStmt()
		return p.builder.Stmts.NewError(start.Cover(p.prev))
	}

	typ := source.NoStringID
	if p.eat(token.Colon) {
		typ, ok = p.expectIdent("type name after ':'")
		if !ok {
			p.resyncStmt()
			return p.builder.Stmts.NewError(start.Cover(p.prev))
		}
	}

	value := ast.NoExprID
	if p.eat(token.Assign) {
		value = p.parseExpr()
	}

	p.expectSemicolon()
	return p.builder.Stmts.NewLet(start.Cover(p.prev), name, typ, value, isMut)
}

// fn name ( params ) [-> type] block
func (p *Parser) parseFn() ast.StmtID {
	start := p.tok.Span
	p.advance()

	name, ok := p.expectIdent("function name after 'fn'")
	if !ok {
		p.resyncStmt()
		return p.builder.Stmts.NewError(start.Cover(p.prev))
	}

	if !p.eat(token.LParen) {
		p.err(diag.SynUnexpectedToken, p.tok.Span, "expected '(' after function name")
		p.resyncStmt()
		return p.builder.Stmts.NewError(start.Cover(p.prev))
	}

	paramStart := ast.NoFnParamID
	paramCount := uint32(0)
	for !p.at(token.RParen) && !p.tok.Kind.IsEOF() {
		pname, ok := p.expectIdent("parameter name")
		if !ok {
			break
		}
		pnameSpan := p.prev
		ptype := source.NoStringID
		if p.eat(token.Colon) {
			ptype, _ = p.expectIdent("parameter type after ':'")
		} else {
			p.err(diag.SynUnexpectedToken, p.tok.Span, "expected ':' after parameter name")
		}
		id := p.builder.Stmts.AllocParam(ast.FnParam{
			Name: pname,
			Type: ptype,
			Span: pnameSpan.Cover(p.prev),
		})
		if paramCount == 0 {
			paramStart = id
		}
		paramCount++
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.eat(token.RParen) {
		p.err(diag.SynUnclosedParen, p.prev.ZeroideToEnd(), "expected ')' to close parameter list")
		p.resyncStmt()
		return p.builder.Stmts.NewError(start.Cover(p.prev))
	}

	returnType := source.NoStringID
	if p.eat(token.Arrow) {
		returnType, _ = p.expectIdent("return type after '->'")
	}

	var body ast.StmtID
	if p.at(token.LBrace) {
		body = p.parseBlock()
	} else {
		p.err(diag.SynUnexpectedToken, p.tok.Span, "expected '{' to open function body")
		p.resyncStmt()
		body = p.builder.Stmts.NewError(p.prev)
	}

	return p.builder.Stmts.NewFn(start.Cover(p.prev), name, paramStart, paramCount, returnType, body)
}

// if expr block [else (if ... | block)]
func (p *Parser) parseIf() ast.StmtID {
	start := p.tok.Span
	p.advance()

	cond := p.parseExpr()
	then := p.expectBlock("'if' condition")

	els := ast.NoStmtID
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			els = p.parseStmt(false)
		} else {
			els = p.expectBlock("'else'")
		}
	}

	return p.builder.Stmts.NewIf(start.Cover(p.prev), cond, then, els)
}

// while expr block
func (p *Parser) parseWhile() ast.StmtID {
	start := p.tok.Span
	p.advance()

	cond := p.parseExpr()
	body := p.expectBlock("'while' condition")

	return p.builder.Stmts.NewWhile(start.Cover(p.prev), cond, body)
}

// return [expr] ;
func (p *Parser) parseReturn() ast.StmtID {
	start := p.tok.Span
	p.advance()

	value := ast.NoExprID
	if canStartExpr(p.tok.Kind) {
		value = p.parseExpr()
	}

	p.expectSemicolon()
	return p.builder.Stmts.NewReturn(start.Cover(p.prev), value)
}

// { stmt* }
func (p *Parser) parseBlock() ast.StmtID {
	start := p.tok.Span
	p.advance() // consume '{'

	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.tok.Kind.IsEOF() {
		if p.tok.Kind == token.Semicolon {
			p.advance()
			continue
		}
		before := p.tok.Span.Start
		stmts = append(stmts, p.parseStmt(false))
		if !p.tok.Kind.IsEOF() && !p.at(token.RBrace) && p.tok.Span.Start == before {
			p.advance()
		}
	}

	if !p.eat(token.RBrace) {
		p.err(diag.SynUnclosedBrace, p.prev.ZeroideToEnd(), "expected '}' to close block")
	}

	return p.builder.Stmts.NewBlock(start.Cover(p.prev), stmts)
}

// expectBlock parses a required '{ ... }' after the named construct.
func (p *Parser) expectBlock(after string) ast.StmtID {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	p.err(diag.SynUnexpectedToken, p.tok.Span, "expected '{' after "+after)
	return p.builder.Stmts.NewError(p.tok.Span)
}

// expr ;
func (p *Parser) parseExprStmt() ast.StmtID {
	expr := p.parseExpr()
	start := p.exprSpan(expr)
	p.expectSemicolon()
	return p.builder.Stmts.NewExpr(start.Cover(p.prev), expr)
}
