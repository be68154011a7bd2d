package ast

import (
	"wu/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent represents an identifier expression.
	ExprIdent ExprKind = iota
	// ExprLit represents a literal expression.
	ExprLit
	// ExprUnary represents a prefix unary expression.
	ExprUnary
	// ExprBinary represents a binary expression.
	ExprBinary
	// ExprCall represents a function call expression.
	ExprCall
	// ExprIndex represents an index expression.
	ExprIndex
	// ExprGroup represents a parenthesized expression.
	ExprGroup
	// ExprError is the placeholder produced during panic-mode recovery. It
	// keeps the enclosing construct structurally complete; it has no payload.
	ExprError
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Ident"
	case ExprLit:
		return "Literal"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprCall:
		return "Call"
	case ExprIndex:
		return "Index"
	case ExprGroup:
		return "Group"
	case ExprError:
		return "Error"
	}
	return "Expr(?)"
}

// Expr is an expression node. Children are addressed through the payload
// arenas by id, never by pointer, so the tree is acyclic by construction.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprUnaryOp enumerates prefix operator kinds.
type ExprUnaryOp uint8

const (
	// ExprUnaryPlus represents unary plus (+).
	ExprUnaryPlus ExprUnaryOp = iota
	// ExprUnaryMinus represents negation (-).
	ExprUnaryMinus
	// ExprUnaryNot represents logical not (!).
	ExprUnaryNot
	// ExprUnaryBitNot represents bitwise not (~).
	ExprUnaryBitNot
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryPlus:
		return "+"
	case ExprUnaryMinus:
		return "-"
	case ExprUnaryNot:
		return "!"
	case ExprUnaryBitNot:
		return "~"
	}
	return "?"
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// arithmetic
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	// bitwise
	ExprBinaryBitAnd
	ExprBinaryBitOr
	ExprBinaryBitXor
	ExprBinaryShiftLeft
	ExprBinaryShiftRight

	// logical
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr

	// comparison
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq

	// assignment
	ExprBinaryAssign
	ExprBinaryAddAssign
	ExprBinarySubAssign
	ExprBinaryMulAssign
	ExprBinaryDivAssign
	ExprBinaryModAssign
)

var binaryOpNames = [...]string{
	ExprBinaryAdd:        "+",
	ExprBinarySub:        "-",
	ExprBinaryMul:        "*",
	ExprBinaryDiv:        "/",
	ExprBinaryMod:        "%",
	ExprBinaryBitAnd:     "&",
	ExprBinaryBitOr:      "|",
	ExprBinaryBitXor:     "^",
	ExprBinaryShiftLeft:  "<<",
	ExprBinaryShiftRight: ">>",
	ExprBinaryLogicalAnd: "&&",
	ExprBinaryLogicalOr:  "||",
	ExprBinaryEq:         "==",
	ExprBinaryNotEq:      "!=",
	ExprBinaryLess:       "<",
	ExprBinaryLessEq:     "<=",
	ExprBinaryGreater:    ">",
	ExprBinaryGreaterEq:  ">=",
	ExprBinaryAssign:     "=",
	ExprBinaryAddAssign:  "+=",
	ExprBinarySubAssign:  "-=",
	ExprBinaryMulAssign:  "*=",
	ExprBinaryDivAssign:  "/=",
	ExprBinaryModAssign:  "%=",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// IsAssign reports whether the operator is plain or compound assignment.
func (op ExprBinaryOp) IsAssign() bool {
	return op >= ExprBinaryAssign && op <= ExprBinaryModAssign
}

// ExprLitKind enumerates literal kinds.
type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitTrue
	ExprLitFalse
	ExprLitNothing
)

func (k ExprLitKind) String() string {
	switch k {
	case ExprLitInt:
		return "int"
	case ExprLitFloat:
		return "float"
	case ExprLitString:
		return "string"
	case ExprLitTrue:
		return "true"
	case ExprLitFalse:
		return "false"
	case ExprLitNothing:
		return "nothing"
	}
	return "?"
}

// Expression payloads. Raw literal text is kept interned; decoding is the
// consumer's business, the frontend only classifies.

type ExprIdentData struct {
	Name source.StringID
}

type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID // raw source text of the literal
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprGroupData struct {
	Inner ExprID
}
