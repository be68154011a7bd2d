package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"let":      KwLet,
	"mut":      KwMut,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"true":     KwTrue,
	"false":    KwFalse,
	"nothing":  NothingLit,
}

// LookupKeyword returns the keyword kind for an identifier lexeme.
// Keywords are case-sensitive; only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
