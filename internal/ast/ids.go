package ast

type (
	// main entities
	FileID uint32
	StmtID uint32
	ExprID uint32
	// sub-entities
	PayloadID uint32
	FnParamID uint32
)

const (
	NoFileID    FileID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoPayloadID PayloadID = 0
	NoFnParamID FnParamID = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
func (id FnParamID) IsValid() bool { return id != NoFnParamID }
