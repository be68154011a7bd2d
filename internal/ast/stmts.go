package ast

import (
	"wu/internal/source"
)

// Stmts manages allocation of statement nodes and their payloads.
type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[StmtBlockData]
	Lets     *Arena[StmtLetData]
	Fns      *Arena[StmtFnData]
	Ifs      *Arena[StmtIfData]
	Whiles   *Arena[StmtWhileData]
	Returns  *Arena[StmtReturnData]
	Exprs    *Arena[StmtExprData]
	FnParams *Arena[FnParam]
}

// NewStmts creates a Stmts with per-kind arenas preallocated to capHint.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[StmtBlockData](capHint),
		Lets:     NewArena[StmtLetData](capHint),
		Fns:      NewArena[StmtFnData](capHint / 4),
		Ifs:      NewArena[StmtIfData](capHint / 4),
		Whiles:   NewArena[StmtWhileData](capHint / 4),
		Returns:  NewArena[StmtReturnData](capHint / 4),
		Exprs:    NewArena[StmtExprData](capHint),
		FnParams: NewArena[FnParam](capHint / 2),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement with the given ID, or nil for NoStmtID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// Len returns the number of allocated statement nodes.
func (s *Stmts) Len() uint32 {
	return s.Arena.Len()
}

// NewBlock creates a block statement.
func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(StmtBlockData{Stmts: stmts})
	return s.new(StmtBlock, span, PayloadID(payload))
}

// Block returns the block payload for the given statement ID.
func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(stmt.Payload)), true
}

// NewLet creates a let statement.
func (s *Stmts) NewLet(span source.Span, name, typ source.StringID, value ExprID, isMut bool) StmtID {
	payload := s.Lets.Allocate(StmtLetData{Name: name, Type: typ, Value: value, IsMut: isMut})
	return s.new(StmtLet, span, PayloadID(payload))
}

// Let returns the let payload for the given statement ID.
func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(stmt.Payload)), true
}

// AllocParam appends one function parameter and returns its id.
func (s *Stmts) AllocParam(p FnParam) FnParamID {
	return FnParamID(s.FnParams.Allocate(p))
}

// Params returns the contiguous parameter run [start, start+count).
func (s *Stmts) Params(start FnParamID, count uint32) []FnParam {
	if count == 0 || !start.IsValid() {
		return nil
	}
	all := s.FnParams.Slice()
	first := uint32(start) - 1
	return all[first : first+count]
}

// NewFn creates a function definition statement.
func (s *Stmts) NewFn(span source.Span, name source.StringID, paramStart FnParamID, paramCount uint32, returnType source.StringID, body StmtID) StmtID {
	payload := s.Fns.Allocate(StmtFnData{
		Name:       name,
		ParamStart: paramStart,
		ParamCount: paramCount,
		ReturnType: returnType,
		Body:       body,
	})
	return s.new(StmtFn, span, PayloadID(payload))
}

// Fn returns the function payload for the given statement ID.
func (s *Stmts) Fn(id StmtID) (*StmtFnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFn {
		return nil, false
	}
	return s.Fns.Get(uint32(stmt.Payload)), true
}

// NewIf creates an if statement.
func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

// If returns the if payload for the given statement ID.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

// NewWhile creates a while statement.
func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

// While returns the while payload for the given statement ID.
func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(stmt.Payload)), true
}

// NewReturn creates a return statement.
func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

// Return returns the return payload for the given statement ID.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

// NewBreak creates a break statement.
func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.new(StmtBreak, span, NoPayloadID)
}

// NewContinue creates a continue statement.
func (s *Stmts) NewContinue(span source.Span) StmtID {
	return s.new(StmtContinue, span, NoPayloadID)
}

// NewExpr creates an expression statement.
func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// Expr returns the expression-statement payload for the given statement ID.
func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

// NewError creates a ParseError placeholder statement.
func (s *Stmts) NewError(span source.Span) StmtID {
	return s.new(StmtError, span, NoPayloadID)
}
