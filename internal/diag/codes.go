package diag

import (
	"fmt"
)

type Code uint16

const (
	// Unknown error, used when nothing more specific fits.
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005
	LexNulByte                  Code = 1006 // raised by the pre-lex well-formedness check
	LexByteOrderMark            Code = 1007 // warning, BOM is stripped before lexing

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectType         Code = 2005
	SynExpectStringLit    Code = 2006
	SynExpectFrom         Code = 2007
	SynExpectColon        Code = 2008
	SynUnexpectedTopLevel Code = 2009
	SynExpectConst        Code = 2010 // 'export' must introduce a const declaration
	SynUnclosedBracket    Code = 2011
	SynUnclosedBrace      Code = 2012
	SynTrailingComma      Code = 2013 // warning, the emitted form never carries one
	SynEmptyImportGroup   Code = 2014 // warning

	// Semantic (lowering)
	SemaInfo               Code = 3000
	SemaDuplicateConst     Code = 3001
	SemaUnresolvedRef      Code = 3002
	SemaUseBeforeDecl      Code = 3003
	SemaTypeMismatch       Code = 3004
	SemaUnknownType        Code = 3005
	SemaDuplicateImport    Code = 3006
	SemaUnusedImport       Code = 3007 // warning
	SemaDuplicateObjectKey Code = 3008

	// I/O
	IOLoadFileError    Code = 4001
	IOWriteFileError   Code = 4002
	IOResolvePathError Code = 4003
	IOCreateDirError   Code = 4004

	// Project / manifest
	PrjInfo             Code = 5000
	PrjManifestNotFound Code = 5001
	PrjManifestInvalid  Code = 5002
	PrjNoSources        Code = 5003
	PrjDuplicateUnit    Code = 5004
	PrjBadPattern       Code = 5005

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number",
		LexBadEscape:                "Bad escape sequence",
		LexNulByte:                  "NUL byte in source",
		LexByteOrderMark:            "Byte order mark at start of file",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectSemicolon:          "Expect semicolon",
		SynExpectIdentifier:         "Expect identifier",
		SynExpectExpression:         "Expect expression",
		SynExpectType:               "Expect type",
		SynExpectStringLit:          "Expect string literal",
		SynExpectFrom:               "Expect 'from' after import list",
		SynExpectColon:              "Expect colon",
		SynUnexpectedTopLevel:       "Unexpected top-level construct",
		SynExpectConst:              "Expect 'const' after 'export'",
		SynUnclosedBracket:          "Unclosed bracket",
		SynUnclosedBrace:            "Unclosed brace",
		SynTrailingComma:            "Trailing comma",
		SynEmptyImportGroup:         "Empty import group",
		SemaInfo:                    "Semantic information",
		SemaDuplicateConst:          "Duplicate constant declaration",
		SemaUnresolvedRef:           "Unresolved reference",
		SemaUseBeforeDecl:           "Use of constant before its declaration",
		SemaTypeMismatch:            "Type annotation mismatch",
		SemaUnknownType:             "Unknown type name",
		SemaDuplicateImport:         "Duplicate import binding",
		SemaUnusedImport:            "Unused import",
		SemaDuplicateObjectKey:      "Duplicate object key",
		IOLoadFileError:             "I/O load file error",
		IOWriteFileError:            "I/O write file error",
		IOResolvePathError:          "Output path resolution error",
		IOCreateDirError:            "I/O create directory error",
		PrjInfo:                     "Project information",
		PrjManifestNotFound:         "Manifest not found",
		PrjManifestInvalid:          "Invalid manifest",
		PrjNoSources:                "No source units matched",
		PrjDuplicateUnit:            "Duplicate source unit",
		PrjBadPattern:               "Invalid include pattern",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
