package render

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"vellum/internal/ir"
)

func (w *writer) printValue(v *ir.Value) {
	switch v.Kind {
	case ir.ValueNumber:
		w.str(v.Raw)
	case ir.ValueString:
		w.str(encodeString(v.Str))
	case ir.ValueBool:
		if v.Bool {
			w.str("true")
		} else {
			w.str("false")
		}
	case ir.ValueRef:
		w.str(v.Ref)
	case ir.ValueArray:
		w.str("[")
		for i := range v.Elems {
			if i > 0 {
				w.str(", ")
			}
			w.printValue(&v.Elems[i])
		}
		w.str("]")
	case ir.ValueObject:
		if len(v.Fields) == 0 {
			w.str("{}")
			return
		}
		w.str("{ ")
		for i := range v.Fields {
			if i > 0 {
				w.str(", ")
			}
			w.printKey(v.Fields[i].Name)
			w.str(": ")
			w.printValue(&v.Fields[i].Value)
		}
		w.str(" }")
	default:
		w.str("null")
	}
}

// printKey emits an object key bare when it is a valid identifier,
// quoted otherwise. Reserved words are legal keys in object literals,
// so no keyword check is needed.
func (w *writer) printKey(name string) {
	if isIdentName(name) {
		w.str(name)
		return
	}
	w.str(encodeString(name))
}

// identContinueExtra matches the scanner's extra continuation
// categories: combining marks and connector punctuation.
var identContinueExtra = []*unicode.RangeTable{unicode.Mn, unicode.Mc, unicode.Pc}

// isIdentName mirrors the scanner's identifier rules: '_', '$' and
// Unicode letters, with digits, marks and connectors allowed after
// the first character.
func isIdentName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && (unicode.IsDigit(r) || unicode.IsOneOf(identContinueExtra, r)) {
			continue
		}
		return false
	}
	return true
}

// encodeString renders a decoded string as a double-quoted literal.
// Quotes, backslashes and the common control characters get their
// short escapes; other control characters use \u00xx; everything else
// passes through as UTF-8.
func encodeString(s string) string {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for _, r := range s {
		switch r {
		case '"':
			buf = append(buf, '\\', '"')
		case '\\':
			buf = append(buf, '\\', '\\')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\t':
			buf = append(buf, '\\', 't')
		case '\r':
			buf = append(buf, '\\', 'r')
		default:
			if r < 0x20 {
				buf = append(buf, fmt.Sprintf("\\u%04x", r)...)
				continue
			}
			buf = utf8.AppendRune(buf, r)
		}
	}
	buf = append(buf, '"')
	return string(buf)
}
