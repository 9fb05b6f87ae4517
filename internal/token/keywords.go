package token

var keywords = map[string]Kind{
	"import": KwImport,
	"from":   KwFrom,
	"export": KwExport,
	"const":  KwConst,
	"as":     KwAs,
	"true":   KwTrue,
	"false":  KwFalse,
	"null":   KwNull,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case sensitive: only lowercase spellings are recognised.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
