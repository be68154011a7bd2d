package parser

import (
	"wu/internal/ast"
	"wu/internal/diag"
	"wu/internal/token"
)

func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinaryExpr(precAssign)
}

// parseBinaryExpr is precedence climbing: it keeps folding operators whose
// binding power is at least minPrec. Right-associative levels recurse at the
// same power, everything else one above.
func (p *Parser) parseBinaryExpr(minPrec int) ast.ExprID {
	if !p.enter() {
		sp := p.tok.Span
		p.advance()
		return p.builder.Exprs.NewError(sp)
	}
	defer p.leave()

	left := p.parseUnaryExpr()

	for {
		prec, rightAssoc, ok := binaryPrec(p.tok.Kind)
		if !ok || prec < minPrec {
			return left
		}
		op := tokenToBinaryOp(p.tok.Kind)
		p.advance()

		next := prec + 1
		if rightAssoc {
			next = prec
		}
		right := p.parseBinaryExpr(next)

		sp := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.builder.Exprs.NewBinary(sp, op, left, right)
	}
}

func (p *Parser) parseUnaryExpr() ast.ExprID {
	op, ok := unaryOp(p.tok.Kind)
	if !ok {
		return p.parsePostfixExpr()
	}
	if !p.enter() {
		sp := p.tok.Span
		p.advance()
		return p.builder.Exprs.NewError(sp)
	}
	defer p.leave()

	start := p.tok.Span
	p.advance()
	operand := p.parseUnaryExpr()
	return p.builder.Exprs.NewUnary(start.Cover(p.exprSpan(operand)), op, operand)
}

// parsePostfixExpr parses a primary followed by any number of calls and
// index accesses.
func (p *Parser) parsePostfixExpr() ast.ExprID {
	expr := p.parsePrimaryExpr()

	for {
		switch p.tok.Kind {
		case token.LParen:
			expr = p.parseCallArgs(expr)
		case token.LBracket:
			p.advance()
			index := p.parseExpr()
			if !p.eat(token.RBracket) {
				p.err(diag.SynUnclosedBracket, p.prev.ZeroideToEnd(), "expected ']' to close index")
			}
			expr = p.builder.Exprs.NewIndex(p.exprSpan(expr).Cover(p.prev), expr, index)
		default:
			return expr
		}
	}
}

// callee ( arg {, arg} [,] )
func (p *Parser) parseCallArgs(callee ast.ExprID) ast.ExprID {
	p.advance() // consume '('

	var args []ast.ExprID
	for !p.at(token.RParen) && !p.tok.Kind.IsEOF() {
		if !canStartExpr(p.tok.Kind) {
			p.err(diag.SynExpectExpression, p.tok.Span, "expected argument expression")
			break
		}
		args = append(args, p.parseExpr())
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.eat(token.RParen) {
		p.err(diag.SynUnclosedParen, p.prev.ZeroideToEnd(), "expected ')' to close argument list")
	}

	return p.builder.Exprs.NewCall(p.exprSpan(callee).Cover(p.prev), callee, args)
}

func (p *Parser) parsePrimaryExpr() ast.ExprID {
	sp := p.tok.Span

	switch p.tok.Kind {
	case token.Ident:
		name := p.builder.StringsInterner.Intern(p.tok.Text)
		p.advance()
		return p.builder.Exprs.NewIdent(sp, name)

	case token.Underscore:
		name := p.builder.StringsInterner.Intern(p.tok.Text)
		p.advance()
		return p.builder.Exprs.NewIdent(sp, name)

	case token.IntLit:
		return p.finishLiteral(ast.ExprLitInt)
	case token.FloatLit:
		return p.finishLiteral(ast.ExprLitFloat)
	case token.StringLit:
		return p.finishLiteral(ast.ExprLitString)
	case token.KwTrue:
		return p.finishLiteral(ast.ExprLitTrue)
	case token.KwFalse:
		return p.finishLiteral(ast.ExprLitFalse)
	case token.NothingLit:
		return p.finishLiteral(ast.ExprLitNothing)

	case token.LParen:
		p.advance()
		if p.at(token.RParen) {
			p.err(diag.SynExpectExpression, p.tok.Span, "expected expression inside parentheses")
			p.advance()
			return p.builder.Exprs.NewError(sp.Cover(p.prev))
		}
		inner := p.parseExpr()
		if !p.eat(token.RParen) {
			p.err(diag.SynUnclosedParen, p.prev.ZeroideToEnd(), "expected ')'")
		}
		return p.builder.Exprs.NewGroup(sp.Cover(p.prev), inner)
	}

	// Nothing usable here. The token is left in place so statement-level
	// recovery can decide what to drop.
	p.err(diag.SynExpectExpression, sp, "expected expression, found "+p.tok.Kind.String())
	return p.builder.Exprs.NewError(sp)
}

// finishLiteral interns the current token's text and consumes it.
func (p *Parser) finishLiteral(kind ast.ExprLitKind) ast.ExprID {
	sp := p.tok.Span
	value := p.builder.StringsInterner.Intern(p.tok.Text)
	p.advance()
	return p.builder.Exprs.NewLiteral(sp, kind, value)
}
