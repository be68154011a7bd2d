// Package testkit provides structural checkers shared by tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"wu/internal/ast"
)

// CheckFileInvariants runs the structural invariants of a parsed file:
//  1. every statement id reachable from the root resolves to a node
//  2. every span stays inside [0, contentLen]
//  3. child ids are always smaller than their parent's id, so the tree is
//     acyclic by construction
func CheckFileInvariants(b *ast.Builder, fileID ast.FileID, contentLen uint32) error {
	if b == nil {
		return fmt.Errorf("nil builder")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found for id=%d", fileID)
	}
	if f.Span.End > contentLen {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, contentLen)
	}

	for _, id := range f.Stmts {
		if err := checkStmt(b, id, contentLen); err != nil {
			return err
		}
	}
	return nil
}

func checkStmt(b *ast.Builder, id ast.StmtID, contentLen uint32) error {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		return fmt.Errorf("nil statement for id=%d", id)
	}
	if stmt.Span.End > contentLen || stmt.Span.Start > stmt.Span.End {
		return fmt.Errorf("bad statement span %v (content len %d)", stmt.Span, contentLen)
	}

	childStmt := func(child ast.StmtID) error {
		if !child.IsValid() {
			return nil
		}
		if child >= id {
			return fmt.Errorf("statement %d references non-prior child %d", id, child)
		}
		return checkStmt(b, child, contentLen)
	}
	childExpr := func(child ast.ExprID) error {
		if !child.IsValid() {
			return nil
		}
		return checkExpr(b, child, contentLen)
	}

	switch stmt.Kind {
	case ast.StmtBlock:
		block, ok := b.Stmts.Block(id)
		if !ok {
			return fmt.Errorf("block payload missing for id=%d", id)
		}
		for _, s := range block.Stmts {
			if err := childStmt(s); err != nil {
				return err
			}
		}
	case ast.StmtLet:
		let, ok := b.Stmts.Let(id)
		if !ok {
			return fmt.Errorf("let payload missing for id=%d", id)
		}
		return childExpr(let.Value)
	case ast.StmtFn:
		fn, ok := b.Stmts.Fn(id)
		if !ok {
			return fmt.Errorf("fn payload missing for id=%d", id)
		}
		if fn.ParamCount > 0 {
			params := b.Stmts.Params(fn.ParamStart, fn.ParamCount)
			if uint32(len(params)) != fn.ParamCount {
				return fmt.Errorf("fn %d parameter run out of range", id)
			}
		}
		return childStmt(fn.Body)
	case ast.StmtIf:
		ifData, ok := b.Stmts.If(id)
		if !ok {
			return fmt.Errorf("if payload missing for id=%d", id)
		}
		if err := childExpr(ifData.Cond); err != nil {
			return err
		}
		if err := childStmt(ifData.Then); err != nil {
			return err
		}
		return childStmt(ifData.Else)
	case ast.StmtWhile:
		wh, ok := b.Stmts.While(id)
		if !ok {
			return fmt.Errorf("while payload missing for id=%d", id)
		}
		if err := childExpr(wh.Cond); err != nil {
			return err
		}
		return childStmt(wh.Body)
	case ast.StmtReturn:
		ret, ok := b.Stmts.Return(id)
		if !ok {
			return fmt.Errorf("return payload missing for id=%d", id)
		}
		return childExpr(ret.Value)
	case ast.StmtExpr:
		ex, ok := b.Stmts.Expr(id)
		if !ok {
			return fmt.Errorf("expr-stmt payload missing for id=%d", id)
		}
		return childExpr(ex.Expr)
	case ast.StmtBreak, ast.StmtContinue, ast.StmtError:
		// no payload
	default:
		return fmt.Errorf("unknown statement kind %d", stmt.Kind)
	}
	return nil
}

func checkExpr(b *ast.Builder, id ast.ExprID, contentLen uint32) error {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return fmt.Errorf("nil expression for id=%d", id)
	}
	if expr.Span.End > contentLen || expr.Span.Start > expr.Span.End {
		return fmt.Errorf("bad expression span %v (content len %d)", expr.Span, contentLen)
	}

	child := func(c ast.ExprID) error {
		if !c.IsValid() {
			return nil
		}
		if c >= id {
			return fmt.Errorf("expression %d references non-prior child %d", id, c)
		}
		return checkExpr(b, c, contentLen)
	}

	switch expr.Kind {
	case ast.ExprIdent:
		if _, ok := b.Exprs.Ident(id); !ok {
			return fmt.Errorf("ident payload missing for id=%d", id)
		}
	case ast.ExprLit:
		if _, ok := b.Exprs.Literal(id); !ok {
			return fmt.Errorf("literal payload missing for id=%d", id)
		}
	case ast.ExprUnary:
		un, ok := b.Exprs.Unary(id)
		if !ok {
			return fmt.Errorf("unary payload missing for id=%d", id)
		}
		return child(un.Operand)
	case ast.ExprBinary:
		bin, ok := b.Exprs.Binary(id)
		if !ok {
			return fmt.Errorf("binary payload missing for id=%d", id)
		}
		if err := child(bin.Left); err != nil {
			return err
		}
		return child(bin.Right)
	case ast.ExprCall:
		call, ok := b.Exprs.Call(id)
		if !ok {
			return fmt.Errorf("call payload missing for id=%d", id)
		}
		if err := child(call.Callee); err != nil {
			return err
		}
		for _, arg := range call.Args {
			if err := child(arg); err != nil {
				return err
			}
		}
	case ast.ExprIndex:
		idx, ok := b.Exprs.Index(id)
		if !ok {
			return fmt.Errorf("index payload missing for id=%d", id)
		}
		if err := child(idx.Target); err != nil {
			return err
		}
		return child(idx.Index)
	case ast.ExprGroup:
		grp, ok := b.Exprs.Group(id)
		if !ok {
			return fmt.Errorf("group payload missing for id=%d", id)
		}
		return child(grp.Inner)
	case ast.ExprError:
		// no payload
	default:
		return fmt.Errorf("unknown expression kind %d", expr.Kind)
	}
	return nil
}
