package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"wu/internal/ast"
	"wu/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTPretty renders the file's AST as an indented tree.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root := buildFileTreeNode(builder, fileID, fs)
	writeTree(w, root, "", true, true)
	return nil
}

func writeTree(w io.Writer, node *treeNode, prefix string, isLast, isRoot bool) {
	if isRoot {
		fmt.Fprintln(w, node.label)
	} else {
		branch := "├── "
		if isLast {
			branch = "└── "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, node.label)
		if isLast {
			prefix += "    "
		} else {
			prefix += "│   "
		}
	}
	for i, child := range node.children {
		writeTree(w, child, prefix, i == len(node.children)-1, false)
	}
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(sp)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("%d..%d", sp.Start, sp.End)
}

func buildFileTreeNode(builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) *treeNode {
	file := builder.Files.Get(fileID)
	if file == nil {
		return &treeNode{label: fmt.Sprintf("File[%d]: <nil>", fileID)}
	}
	root := &treeNode{
		label: fmt.Sprintf("File (span: %s)", formatSpan(file.Span, fs)),
	}
	for _, stmtID := range file.Stmts {
		root.children = append(root.children, buildStmtTreeNode(builder, stmtID, fs))
	}
	return root
}

func buildStmtTreeNode(builder *ast.Builder, stmtID ast.StmtID, fs *source.FileSet) *treeNode {
	stmt := builder.Stmts.Get(stmtID)
	if stmt == nil {
		return &treeNode{label: "Stmt: <nil>"}
	}
	node := &treeNode{
		label: fmt.Sprintf("%s (span: %s)", stmt.Kind.String(), formatSpan(stmt.Span, fs)),
	}
	lookup := builder.StringsInterner.MustLookup

	switch stmt.Kind {
	case ast.StmtBlock:
		if block, ok := builder.Stmts.Block(stmtID); ok {
			for _, id := range block.Stmts {
				node.children = append(node.children, buildStmtTreeNode(builder, id, fs))
			}
		}
	case ast.StmtLet:
		if let, ok := builder.Stmts.Let(stmtID); ok {
			node.children = append(node.children, &treeNode{label: "Name: " + lookup(let.Name)})
			if let.IsMut {
				node.children = append(node.children, &treeNode{label: "Mutable: true"})
			}
			if let.Type != source.NoStringID {
				node.children = append(node.children, &treeNode{label: "Type: " + lookup(let.Type)})
			}
			if let.Value.IsValid() {
				node.children = append(node.children, child("Value", buildExprTreeNode(builder, let.Value, fs)))
			}
		}
	case ast.StmtFn:
		if fn, ok := builder.Stmts.Fn(stmtID); ok {
			node.children = append(node.children, &treeNode{label: "Name: " + lookup(fn.Name)})
			if fn.ParamCount > 0 {
				params := &treeNode{label: "Params"}
				for _, p := range builder.Stmts.Params(fn.ParamStart, fn.ParamCount) {
					label := lookup(p.Name)
					if p.Type != source.NoStringID {
						label += ": " + lookup(p.Type)
					}
					params.children = append(params.children, &treeNode{label: label})
				}
				node.children = append(node.children, params)
			}
			if fn.ReturnType != source.NoStringID {
				node.children = append(node.children, &treeNode{label: "Return: " + lookup(fn.ReturnType)})
			}
			if fn.Body.IsValid() {
				node.children = append(node.children, child("Body", buildStmtTreeNode(builder, fn.Body, fs)))
			}
		}
	case ast.StmtIf:
		if ifData, ok := builder.Stmts.If(stmtID); ok {
			node.children = append(node.children, child("Cond", buildExprTreeNode(builder, ifData.Cond, fs)))
			node.children = append(node.children, child("Then", buildStmtTreeNode(builder, ifData.Then, fs)))
			if ifData.Else.IsValid() {
				node.children = append(node.children, child("Else", buildStmtTreeNode(builder, ifData.Else, fs)))
			}
		}
	case ast.StmtWhile:
		if wh, ok := builder.Stmts.While(stmtID); ok {
			node.children = append(node.children, child("Cond", buildExprTreeNode(builder, wh.Cond, fs)))
			node.children = append(node.children, child("Body", buildStmtTreeNode(builder, wh.Body, fs)))
		}
	case ast.StmtReturn:
		if ret, ok := builder.Stmts.Return(stmtID); ok && ret.Value.IsValid() {
			node.children = append(node.children, buildExprTreeNode(builder, ret.Value, fs))
		}
	case ast.StmtExpr:
		if ex, ok := builder.Stmts.Expr(stmtID); ok {
			node.children = append(node.children, buildExprTreeNode(builder, ex.Expr, fs))
		}
	}
	return node
}

func buildExprTreeNode(builder *ast.Builder, exprID ast.ExprID, fs *source.FileSet) *treeNode {
	expr := builder.Exprs.Get(exprID)
	if expr == nil {
		return &treeNode{label: "Expr: <nil>"}
	}
	lookup := builder.StringsInterner.MustLookup

	switch expr.Kind {
	case ast.ExprIdent:
		if ident, ok := builder.Exprs.Ident(exprID); ok {
			return &treeNode{label: fmt.Sprintf("Ident %q", lookup(ident.Name))}
		}
	case ast.ExprLit:
		if lit, ok := builder.Exprs.Literal(exprID); ok {
			return &treeNode{label: fmt.Sprintf("Literal %s %s", lit.Kind.String(), lookup(lit.Value))}
		}
	case ast.ExprUnary:
		if un, ok := builder.Exprs.Unary(exprID); ok {
			return &treeNode{
				label:    fmt.Sprintf("Unary %q", un.Op.String()),
				children: []*treeNode{buildExprTreeNode(builder, un.Operand, fs)},
			}
		}
	case ast.ExprBinary:
		if bin, ok := builder.Exprs.Binary(exprID); ok {
			return &treeNode{
				label: fmt.Sprintf("Binary %q", bin.Op.String()),
				children: []*treeNode{
					buildExprTreeNode(builder, bin.Left, fs),
					buildExprTreeNode(builder, bin.Right, fs),
				},
			}
		}
	case ast.ExprCall:
		if call, ok := builder.Exprs.Call(exprID); ok {
			node := &treeNode{label: "Call"}
			node.children = append(node.children, child("Callee", buildExprTreeNode(builder, call.Callee, fs)))
			for _, arg := range call.Args {
				node.children = append(node.children, buildExprTreeNode(builder, arg, fs))
			}
			return node
		}
	case ast.ExprIndex:
		if idx, ok := builder.Exprs.Index(exprID); ok {
			return &treeNode{
				label: "Index",
				children: []*treeNode{
					buildExprTreeNode(builder, idx.Target, fs),
					buildExprTreeNode(builder, idx.Index, fs),
				},
			}
		}
	case ast.ExprGroup:
		if grp, ok := builder.Exprs.Group(exprID); ok {
			return &treeNode{
				label:    "Group",
				children: []*treeNode{buildExprTreeNode(builder, grp.Inner, fs)},
			}
		}
	case ast.ExprError:
		return &treeNode{label: fmt.Sprintf("Error (span: %s)", formatSpan(expr.Span, fs))}
	}
	return &treeNode{label: "Expr: <unknown>"}
}

func child(label string, node *treeNode) *treeNode {
	return &treeNode{label: label, children: []*treeNode{node}}
}

// ===== JSON output =====

type exprJSON struct {
	Kind     string      `json:"kind"`
	Span     source.Span `json:"span"`
	Name     string      `json:"name,omitempty"`
	LitKind  string      `json:"litKind,omitempty"`
	Value    string      `json:"value,omitempty"`
	Op       string      `json:"op,omitempty"`
	Operand  *exprJSON   `json:"operand,omitempty"`
	Left     *exprJSON   `json:"left,omitempty"`
	Right    *exprJSON   `json:"right,omitempty"`
	Callee   *exprJSON   `json:"callee,omitempty"`
	Args     []*exprJSON `json:"args,omitempty"`
	Target   *exprJSON   `json:"target,omitempty"`
	IndexArg *exprJSON   `json:"index,omitempty"`
	Inner    *exprJSON   `json:"inner,omitempty"`
}

type paramJSON struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

type stmtJSON struct {
	Kind    string      `json:"kind"`
	Span    source.Span `json:"span"`
	Name    string      `json:"name,omitempty"`
	Mutable bool        `json:"mutable,omitempty"`
	Type    string      `json:"type,omitempty"`
	Params  []paramJSON `json:"params,omitempty"`
	Return  string      `json:"return,omitempty"`
	Value   *exprJSON   `json:"value,omitempty"`
	Cond    *exprJSON   `json:"cond,omitempty"`
	Then    *stmtJSON   `json:"then,omitempty"`
	Else    *stmtJSON   `json:"else,omitempty"`
	Body    *stmtJSON   `json:"body,omitempty"`
	Stmts   []*stmtJSON `json:"stmts,omitempty"`
	Expr    *exprJSON   `json:"expr,omitempty"`
}

type fileJSON struct {
	Span  source.Span `json:"span"`
	Stmts []*stmtJSON `json:"stmts"`
}

// FormatASTJSON emits the file's AST as a JSON document.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("ast json: unknown file id %d", fileID)
	}
	out := fileJSON{Span: file.Span, Stmts: make([]*stmtJSON, 0, len(file.Stmts))}
	for _, id := range file.Stmts {
		out.Stmts = append(out.Stmts, stmtToJSON(builder, id))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func stmtToJSON(builder *ast.Builder, stmtID ast.StmtID) *stmtJSON {
	stmt := builder.Stmts.Get(stmtID)
	if stmt == nil {
		return nil
	}
	out := &stmtJSON{Kind: stmt.Kind.String(), Span: stmt.Span}
	lookup := builder.StringsInterner.MustLookup

	switch stmt.Kind {
	case ast.StmtBlock:
		if block, ok := builder.Stmts.Block(stmtID); ok {
			for _, id := range block.Stmts {
				out.Stmts = append(out.Stmts, stmtToJSON(builder, id))
			}
		}
	case ast.StmtLet:
		if let, ok := builder.Stmts.Let(stmtID); ok {
			out.Name = lookup(let.Name)
			out.Mutable = let.IsMut
			if let.Type != source.NoStringID {
				out.Type = lookup(let.Type)
			}
			if let.Value.IsValid() {
				out.Value = exprToJSON(builder, let.Value)
			}
		}
	case ast.StmtFn:
		if fn, ok := builder.Stmts.Fn(stmtID); ok {
			out.Name = lookup(fn.Name)
			for _, p := range builder.Stmts.Params(fn.ParamStart, fn.ParamCount) {
				pj := paramJSON{Name: lookup(p.Name)}
				if p.Type != source.NoStringID {
					pj.Type = lookup(p.Type)
				}
				out.Params = append(out.Params, pj)
			}
			if fn.ReturnType != source.NoStringID {
				out.Return = lookup(fn.ReturnType)
			}
			if fn.Body.IsValid() {
				out.Body = stmtToJSON(builder, fn.Body)
			}
		}
	case ast.StmtIf:
		if ifData, ok := builder.Stmts.If(stmtID); ok {
			out.Cond = exprToJSON(builder, ifData.Cond)
			out.Then = stmtToJSON(builder, ifData.Then)
			if ifData.Else.IsValid() {
				out.Else = stmtToJSON(builder, ifData.Else)
			}
		}
	case ast.StmtWhile:
		if wh, ok := builder.Stmts.While(stmtID); ok {
			out.Cond = exprToJSON(builder, wh.Cond)
			out.Body = stmtToJSON(builder, wh.Body)
		}
	case ast.StmtReturn:
		if ret, ok := builder.Stmts.Return(stmtID); ok && ret.Value.IsValid() {
			out.Value = exprToJSON(builder, ret.Value)
		}
	case ast.StmtExpr:
		if ex, ok := builder.Stmts.Expr(stmtID); ok {
			out.Expr = exprToJSON(builder, ex.Expr)
		}
	}
	return out
}

func exprToJSON(builder *ast.Builder, exprID ast.ExprID) *exprJSON {
	expr := builder.Exprs.Get(exprID)
	if expr == nil {
		return nil
	}
	out := &exprJSON{Kind: expr.Kind.String(), Span: expr.Span}
	lookup := builder.StringsInterner.MustLookup

	switch expr.Kind {
	case ast.ExprIdent:
		if ident, ok := builder.Exprs.Ident(exprID); ok {
			out.Name = lookup(ident.Name)
		}
	case ast.ExprLit:
		if lit, ok := builder.Exprs.Literal(exprID); ok {
			out.LitKind = lit.Kind.String()
			out.Value = lookup(lit.Value)
		}
	case ast.ExprUnary:
		if un, ok := builder.Exprs.Unary(exprID); ok {
			out.Op = un.Op.String()
			out.Operand = exprToJSON(builder, un.Operand)
		}
	case ast.ExprBinary:
		if bin, ok := builder.Exprs.Binary(exprID); ok {
			out.Op = bin.Op.String()
			out.Left = exprToJSON(builder, bin.Left)
			out.Right = exprToJSON(builder, bin.Right)
		}
	case ast.ExprCall:
		if call, ok := builder.Exprs.Call(exprID); ok {
			out.Callee = exprToJSON(builder, call.Callee)
			for _, arg := range call.Args {
				out.Args = append(out.Args, exprToJSON(builder, arg))
			}
		}
	case ast.ExprIndex:
		if idx, ok := builder.Exprs.Index(exprID); ok {
			out.Target = exprToJSON(builder, idx.Target)
			out.IndexArg = exprToJSON(builder, idx.Index)
		}
	case ast.ExprGroup:
		if grp, ok := builder.Exprs.Group(exprID); ok {
			out.Inner = exprToJSON(builder, grp.Inner)
		}
	}
	return out
}
