package driver

import (
	"wu/internal/diag"
	"wu/internal/lexer"
	"wu/internal/source"
	"wu/internal/token"
)

// TokenizeResult is the lexer-only slice of the frontend.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize reads a file from disk and scans it to EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenizeIn(fs, fileID, maxDiagnostics), nil
}

// TokenizeBytes scans an in-memory buffer to EOF, bytes taken verbatim.
func TokenizeBytes(name string, input []byte, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, input)
	return tokenizeIn(fs, fileID, maxDiagnostics)
}

func tokenizeIn(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *TokenizeResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind.IsEOF() {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
