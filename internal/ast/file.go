package ast

import (
	"wu/internal/source"
)

// File is the root node of one parsed source file. Wu programs are a flat
// sequence of statements at the top level; function definitions are
// statements like any other.
type File struct {
	Span  source.Span
	Stmts []StmtID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span:  sp,
		Stmts: make([]StmtID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
