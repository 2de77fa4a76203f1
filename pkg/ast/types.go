// Package ast defines the parsed, language-neutral view of TypeScript type
// declarations that the props extractor consumes.
//
// Values in this package are produced by pkg/declarations and are treated as
// read-only by every consumer.
package ast

import "strings"

// Kind is the closed set of type shapes a TypeNode can take.
type Kind string

const (
	KindPrimitive    Kind = "primitive"    // string, number, boolean, null, undefined, ...
	KindReference    Kind = "reference"    // Foo, Foo<Bar>, ns.Foo
	KindLiteral      Kind = "literal"      // 'a', 42, true
	KindUnion        Kind = "union"        // A | B
	KindIntersection Kind = "intersection" // A & B
	KindArray        Kind = "array"        // T[], Array<T>, ReadonlyArray<T>
	KindObject       Kind = "object"       // { a: string }
	KindTuple        Kind = "tuple"        // [A, B]
	KindFunction     Kind = "function"     // (a: A) => B
	KindUnknown      Kind = "unknown"      // anything the converter does not model
)

// LiteralKind classifies a literal type or literal default value.
type LiteralKind string

const (
	LiteralString    LiteralKind = "string"
	LiteralNumber    LiteralKind = "number"
	LiteralBoolean   LiteralKind = "boolean"
	LiteralNull      LiteralKind = "null"
	LiteralUndefined LiteralKind = "undefined"
)

// Literal is a literal value as written in source. Value holds the unquoted
// text for strings and the raw text otherwise (e.g. "-1.5", "true").
type Literal struct {
	Kind  LiteralKind
	Value string
}

// Position is a 1-based source position.
type Position struct {
	Line   uint32
	Column uint32
}

// TypeNode is one node of a declared type.
//
// Which fields are meaningful depends on Kind:
//   - KindPrimitive, KindReference: Name (Args for generic references)
//   - KindLiteral: Literal
//   - KindUnion, KindIntersection, KindTuple: Types
//   - KindArray: Element
//   - KindObject: Members
type TypeNode struct {
	Kind     Kind
	Name     string
	Args     []*TypeNode
	Types    []*TypeNode
	Element  *TypeNode
	Members  []*Member
	Literal  Literal
	Readonly bool
	Text     string
	Pos      Position
}

// IsNullish reports whether t is the null or undefined type.
func (t *TypeNode) IsNullish() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindPrimitive:
		return t.Name == "null" || t.Name == "undefined" || t.Name == "void"
	case KindLiteral:
		return t.Literal.Kind == LiteralNull || t.Literal.Kind == LiteralUndefined
	}
	return false
}

// IsReferenceTo reports whether t is a reference whose name is one of names.
func (t *TypeNode) IsReferenceTo(names ...string) bool {
	if t == nil || t.Kind != KindReference {
		return false
	}
	for _, n := range names {
		if t.Name == n {
			return true
		}
	}
	return false
}

// String renders t roughly as it was written. Used in error messages and logs.
func (t *TypeNode) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Text != "" {
		return t.Text
	}
	switch t.Kind {
	case KindPrimitive:
		return t.Name
	case KindReference:
		if len(t.Args) == 0 {
			return t.Name
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}
		return t.Name + "<" + strings.Join(args, ", ") + ">"
	case KindLiteral:
		if t.Literal.Kind == LiteralString {
			return "'" + t.Literal.Value + "'"
		}
		return t.Literal.Value
	case KindUnion, KindIntersection:
		sep := " | "
		if t.Kind == KindIntersection {
			sep = " & "
		}
		parts := make([]string, len(t.Types))
		for i, p := range t.Types {
			parts[i] = p.String()
		}
		return strings.Join(parts, sep)
	case KindArray:
		return t.Element.String() + "[]"
	case KindObject:
		return "{...}"
	}
	return string(t.Kind)
}

// MemberKind distinguishes the items that can appear in a declaration body.
type MemberKind int

const (
	// MemberProperty is a property signature: `name?: Type`.
	MemberProperty MemberKind = iota
	// MemberExtends is an inheritance clause referencing another named type,
	// either `interface P extends X` or a reference part of `type P = X & {...}`.
	MemberExtends
	// MemberInline is an anonymous type whose members are spliced in place,
	// such as the object literal in `type P = X & { a: string }`.
	MemberInline
)

// String returns the string representation of the member kind.
func (k MemberKind) String() string {
	switch k {
	case MemberProperty:
		return "property"
	case MemberExtends:
		return "extends"
	case MemberInline:
		return "inline"
	default:
		return "unknown"
	}
}

// Member is one item inside an interface or type literal body.
//
// For MemberProperty, Name/Optional/Readonly describe the signature and Type is
// its declared type. For MemberExtends, Type is the referenced type (always a
// KindReference). For MemberInline, Type is the anonymous type to splice.
type Member struct {
	Kind        MemberKind
	Name        string
	Optional    bool
	Readonly    bool
	Type        *TypeNode
	Description string
	Pos         Position
}

// IsProperty reports whether m is a property signature.
func (m *Member) IsProperty() bool {
	return m != nil && m.Kind == MemberProperty
}

// ReferenceName returns the referenced type name of an extends clause, or ""
// for any other member.
func (m *Member) ReferenceName() string {
	if m == nil || m.Kind != MemberExtends || m.Type == nil {
		return ""
	}
	return m.Type.Name
}
