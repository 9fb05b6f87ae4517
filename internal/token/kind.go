package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwFrom represents the 'from' keyword.
	KwFrom // from
	// KwExport represents the 'export' keyword.
	KwExport // export
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwNull represents the 'null' keyword.
	KwNull // null

	// NumberLit represents a numeric literal token.
	NumberLit
	// StringLit represents a string literal token.
	StringLit

	// Assign represents the assign operator token.
	Assign // =
	// Minus represents the minus operator token.
	Minus // -
	// Colon represents the colon operator token.
	Colon // :
	// Semicolon represents the semicolon operator token.
	Semicolon // ;
	// Comma represents the comma operator token.
	Comma // ,
	// LBrace represents the left brace operator token.
	LBrace // {
	// RBrace represents the right brace operator token.
	RBrace // }
	// LBracket represents the left bracket operator token.
	LBracket // [
	// RBracket represents the right bracket operator token.
	RBracket // ]
)

var kindNames = map[Kind]string{
	Invalid:   "invalid",
	EOF:       "end of file",
	Ident:     "identifier",
	KwImport:  "'import'",
	KwFrom:    "'from'",
	KwExport:  "'export'",
	KwConst:   "'const'",
	KwAs:      "'as'",
	KwTrue:    "'true'",
	KwFalse:   "'false'",
	KwNull:    "'null'",
	NumberLit: "number literal",
	StringLit: "string literal",
	Assign:    "'='",
	Minus:     "'-'",
	Colon:     "':'",
	Semicolon: "';'",
	Comma:     "','",
	LBrace:    "'{'",
	RBrace:    "'}'",
	LBracket:  "'['",
	RBracket:  "']'",
}

// String returns a human-readable label used in diagnostics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
