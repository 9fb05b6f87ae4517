package ir

// ValueKind discriminates the Value union.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueNumber
	ValueString
	ValueBool
	ValueNull
	ValueRef
	ValueArray
	ValueObject
)

func (k ValueKind) String() string {
	switch k {
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueBool:
		return "bool"
	case ValueNull:
		return "null"
	case ValueRef:
		return "ref"
	case ValueArray:
		return "array"
	case ValueObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is one node of a constant's literal tree. The fields used
// depend on Kind. Numbers keep their exact source lexeme so the
// renderer reproduces them byte for byte; strings are decoded values
// the renderer re-encodes canonically.
type Value struct {
	Kind   ValueKind
	Raw    string // ValueNumber
	Str    string // ValueString
	Bool   bool   // ValueBool
	Ref    string // ValueRef: referenced constant name
	Elems  []Value
	Fields []Field
}

// Field is one key/value entry of an object literal.
type Field struct {
	Name  string
	Value Value
}

func Number(raw string) Value  { return Value{Kind: ValueNumber, Raw: raw} }
func String(s string) Value    { return Value{Kind: ValueString, Str: s} }
func Bool(b bool) Value        { return Value{Kind: ValueBool, Bool: b} }
func Null() Value              { return Value{Kind: ValueNull} }
func Ref(name string) Value    { return Value{Kind: ValueRef, Ref: name} }
func Array(es ...Value) Value  { return Value{Kind: ValueArray, Elems: es} }
func Object(fs ...Field) Value { return Value{Kind: ValueObject, Fields: fs} }
