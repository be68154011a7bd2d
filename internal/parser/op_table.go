package parser

import (
	"wu/internal/ast"
	"wu/internal/token"
)

// Binding powers for precedence climbing, weakest first. Assignment is the
// only right-associative level.
const (
	precAssign = iota + 1
	precOr
	precAnd
	precEquality
	precComparison
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdditive
	precMultiplicative
)

// binaryPrec returns the binding power of kind as an infix operator.
// ok is false for tokens that are not binary operators.
func binaryPrec(kind token.Kind) (prec int, rightAssoc bool, ok bool) {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign,
		token.StarAssign, token.SlashAssign, token.PercentAssign:
		return precAssign, true, true
	case token.OrOr:
		return precOr, false, true
	case token.AndAnd:
		return precAnd, false, true
	case token.EqEq, token.BangEq:
		return precEquality, false, true
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false, true
	case token.Pipe:
		return precBitOr, false, true
	case token.Caret:
		return precBitXor, false, true
	case token.Amp:
		return precBitAnd, false, true
	case token.Shl, token.Shr:
		return precShift, false, true
	case token.Plus, token.Minus:
		return precAdditive, false, true
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false, true
	}
	return 0, false, false
}

func tokenToBinaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Star:
		return ast.ExprBinaryMul
	case token.Slash:
		return ast.ExprBinaryDiv
	case token.Percent:
		return ast.ExprBinaryMod
	case token.Amp:
		return ast.ExprBinaryBitAnd
	case token.Pipe:
		return ast.ExprBinaryBitOr
	case token.Caret:
		return ast.ExprBinaryBitXor
	case token.Shl:
		return ast.ExprBinaryShiftLeft
	case token.Shr:
		return ast.ExprBinaryShiftRight
	case token.AndAnd:
		return ast.ExprBinaryLogicalAnd
	case token.OrOr:
		return ast.ExprBinaryLogicalOr
	case token.EqEq:
		return ast.ExprBinaryEq
	case token.BangEq:
		return ast.ExprBinaryNotEq
	case token.Lt:
		return ast.ExprBinaryLess
	case token.LtEq:
		return ast.ExprBinaryLessEq
	case token.Gt:
		return ast.ExprBinaryGreater
	case token.GtEq:
		return ast.ExprBinaryGreaterEq
	case token.Assign:
		return ast.ExprBinaryAssign
	case token.PlusAssign:
		return ast.ExprBinaryAddAssign
	case token.MinusAssign:
		return ast.ExprBinarySubAssign
	case token.StarAssign:
		return ast.ExprBinaryMulAssign
	case token.SlashAssign:
		return ast.ExprBinaryDivAssign
	case token.PercentAssign:
		return ast.ExprBinaryModAssign
	}
	panic("tokenToBinaryOp: not a binary operator: " + kind.String())
}

// unaryOp maps prefix operator tokens.
func unaryOp(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Plus:
		return ast.ExprUnaryPlus, true
	case token.Minus:
		return ast.ExprUnaryMinus, true
	case token.Bang:
		return ast.ExprUnaryNot, true
	case token.Tilde:
		return ast.ExprUnaryBitNot, true
	}
	return 0, false
}

// canStartExpr reports whether kind can open an expression.
func canStartExpr(kind token.Kind) bool {
	switch kind {
	case token.Ident, token.Underscore,
		token.IntLit, token.FloatLit, token.StringLit,
		token.KwTrue, token.KwFalse, token.NothingLit,
		token.LParen,
		token.Plus, token.Minus, token.Bang, token.Tilde:
		return true
	}
	return false
}

// isStmtStart reports whether kind opens a statement (used for resync).
func isStmtStart(kind token.Kind) bool {
	switch kind {
	case token.KwLet, token.KwFn, token.KwIf, token.KwWhile,
		token.KwReturn, token.KwBreak, token.KwContinue, token.LBrace:
		return true
	}
	return false
}
