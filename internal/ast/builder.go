package ast

import (
	"wu/internal/source"
)

type Hints struct{ Files, Stmts, Exprs uint }

// Builder owns every arena of one parse. It is constructed fresh per
// frontend invocation and passed explicitly; there are no process-wide
// singletons, so repeated invocations cannot observe each other.
type Builder struct {
	Files           *Files
	Stmts           *Stmts
	Exprs           *Exprs
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		StringsInterner: source.NewInterner(),
	}
}

// NewFile allocates the root node for one source file.
func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

// PushStmt appends a top-level statement to the file.
func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	f.Stmts = append(f.Stmts, stmt)
}
