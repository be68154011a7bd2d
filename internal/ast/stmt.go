package ast

import (
	"wu/internal/source"
)

// StmtKind enumerates the different kinds of statements.
type StmtKind uint8

const (
	// StmtBlock represents a braced statement list.
	StmtBlock StmtKind = iota
	// StmtLet represents a let binding.
	StmtLet
	// StmtFn represents a function definition.
	StmtFn
	// StmtIf represents an if/else statement.
	StmtIf
	// StmtWhile represents a while loop.
	StmtWhile
	// StmtReturn represents a return statement.
	StmtReturn
	// StmtBreak represents a break statement.
	StmtBreak
	// StmtContinue represents a continue statement.
	StmtContinue
	// StmtExpr represents a bare expression statement.
	StmtExpr
	// StmtError is the placeholder produced during panic-mode recovery.
	StmtError
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "Block"
	case StmtLet:
		return "Let"
	case StmtFn:
		return "Fn"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtReturn:
		return "Return"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	case StmtExpr:
		return "Expr"
	case StmtError:
		return "Error"
	}
	return "Stmt(?)"
}

// Stmt is a statement node.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// Statement payloads.

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtLetData struct {
	Name  source.StringID
	Type  source.StringID // NoStringID when the type is inferred
	Value ExprID          // NoExprID when uninitialized
	IsMut bool
}

type StmtFnData struct {
	Name       source.StringID
	ParamStart FnParamID // first param in the FnParams arena
	ParamCount uint32
	ReturnType source.StringID // NoStringID when omitted
	Body       StmtID          // always a StmtBlock (possibly empty)
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID // StmtBlock
	Else StmtID // NoStmtID, a StmtBlock, or a nested StmtIf
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID // StmtBlock
}

type StmtReturnData struct {
	Value ExprID // NoExprID for bare 'return;'
}

type StmtExprData struct {
	Expr ExprID
}

// FnParam is a single function parameter. Parameters of one function occupy
// a contiguous run in the FnParams arena, addressed by start id + count.
type FnParam struct {
	Name source.StringID
	Type source.StringID // NoStringID when omitted
	Span source.Span
}
