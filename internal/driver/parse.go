package driver

import (
	"wu/internal/ast"
	"wu/internal/diag"
	"wu/internal/parser"
	"wu/internal/source"
)

// ParseResult bundles everything one frontend invocation produced. All of it
// is freshly allocated per call; results from different calls share nothing.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse reads a file from disk and runs the frontend over it.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseIn(fs, fileID, maxDiagnostics), nil
}

// ParseBytes runs the frontend over an in-memory buffer. The bytes are taken
// verbatim, with no BOM or newline normalization, so this is also the fuzzing
// entry point.
func ParseBytes(name string, input []byte, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, input)
	return parseIn(fs, fileID, maxDiagnostics)
}

func parseIn(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *ParseResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	builder := ast.NewBuilder(ast.Hints{})

	astFile := parser.ParseFile(file, builder, parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxDiagnostics,
	})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  astFile,
		Bag:     bag,
	}
}
