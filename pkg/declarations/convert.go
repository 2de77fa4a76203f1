package declarations

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propschema/pkg/ast"
)

// ConvertType converts a tree-sitter type node into an ast.TypeNode.
//
// A type_annotation node is unwrapped to the type it annotates. Node kinds
// the props pipeline does not model become KindUnknown carrying the source
// text, so they surface as unsupported types rather than being dropped.
func ConvertType(node *ts.Node, source []byte) *ast.TypeNode {
	if node == nil {
		return nil
	}

	t := &ast.TypeNode{
		Text: node.Utf8Text(source),
		Pos:  position(node),
	}

	switch node.Kind() {
	case "type_annotation", "parenthesized_type", "omitting_type_annotation", "opting_type_annotation":
		return ConvertType(firstNamedChild(node), source)

	case "predefined_type":
		t.Kind = ast.KindPrimitive
		t.Name = t.Text

	case "type_identifier":
		switch t.Text {
		case "null", "undefined":
			t.Kind = ast.KindPrimitive
		default:
			t.Kind = ast.KindReference
		}
		t.Name = t.Text

	case "nested_type_identifier":
		t.Kind = ast.KindReference
		t.Name = qualifiedName(node, source)

	case "generic_type":
		convertGeneric(t, node, source)

	case "union_type":
		t.Kind = ast.KindUnion
		t.Types = flattenBinary(node, "union_type", source)

	case "intersection_type":
		t.Kind = ast.KindIntersection
		t.Types = flattenBinary(node, "intersection_type", source)

	case "array_type":
		t.Kind = ast.KindArray
		t.Element = ConvertType(firstNamedChild(node), source)

	case "readonly_type":
		inner := ConvertType(firstNamedChild(node), source)
		if inner == nil {
			t.Kind = ast.KindUnknown
			break
		}
		inner.Readonly = true
		inner.Text = t.Text
		return inner

	case "object_type":
		t.Kind = ast.KindObject
		t.Members = bodyMembers(node, source)

	case "literal_type":
		t.Kind = ast.KindLiteral
		t.Literal = convertLiteral(firstNamedChild(node), source)

	case "tuple_type":
		t.Kind = ast.KindTuple
		for _, child := range namedChildren(node) {
			if child.Kind() == "comment" {
				continue
			}
			t.Types = append(t.Types, ConvertType(child, source))
		}

	case "function_type", "constructor_type":
		t.Kind = ast.KindFunction

	default:
		t.Kind = ast.KindUnknown
	}

	return t
}

// convertGeneric fills t from a generic_type node. Array<T> and
// ReadonlyArray<T> become array types.
func convertGeneric(t *ast.TypeNode, node *ts.Node, source []byte) {
	nameNode := node.ChildByFieldName("name")
	name := t.Text
	if nameNode != nil {
		if nameNode.Kind() == "nested_type_identifier" {
			name = qualifiedName(nameNode, source)
		} else {
			name = nameNode.Utf8Text(source)
		}
	}

	var args []*ast.TypeNode
	if typeArgs := node.ChildByFieldName("type_arguments"); typeArgs != nil {
		for _, arg := range namedChildren(typeArgs) {
			if arg.Kind() == "comment" {
				continue
			}
			args = append(args, ConvertType(arg, source))
		}
	}

	if (name == "Array" || name == "ReadonlyArray") && len(args) == 1 {
		t.Kind = ast.KindArray
		t.Element = args[0]
		t.Readonly = name == "ReadonlyArray"
		return
	}

	t.Kind = ast.KindReference
	t.Name = name
	t.Args = args
}

// qualifiedName returns the last segment of ns.Type. Codegen marker types
// are matched by their bare name whether written as Int32 or
// CodegenTypes.Int32.
func qualifiedName(node *ts.Node, source []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return name.Utf8Text(source)
	}
	text := node.Utf8Text(source)
	if i := strings.LastIndex(text, "."); i >= 0 {
		return text[i+1:]
	}
	return text
}

// flattenBinary collects the operands of a left-recursive union or
// intersection tree. A leading | or & yields no empty operand.
func flattenBinary(node *ts.Node, kind string, source []byte) []*ast.TypeNode {
	var out []*ast.TypeNode
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case kind:
			out = append(out, flattenBinary(child, kind, source)...)
		case "comment":
		default:
			out = append(out, ConvertType(child, source))
		}
	}
	return out
}

// convertLiteral converts the child of a literal_type node.
func convertLiteral(node *ts.Node, source []byte) ast.Literal {
	if node == nil {
		return ast.Literal{}
	}
	text := node.Utf8Text(source)

	switch node.Kind() {
	case "string":
		return ast.Literal{Kind: ast.LiteralString, Value: unquote(text)}
	case "number", "unary_expression":
		return ast.Literal{Kind: ast.LiteralNumber, Value: strings.ReplaceAll(text, " ", "")}
	case "true", "false":
		return ast.Literal{Kind: ast.LiteralBoolean, Value: text}
	case "null":
		return ast.Literal{Kind: ast.LiteralNull, Value: text}
	case "undefined":
		return ast.Literal{Kind: ast.LiteralUndefined, Value: text}
	}
	return ast.Literal{Value: text}
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func position(node *ts.Node) ast.Position {
	p := node.StartPosition()
	return ast.Position{Line: uint32(p.Row + 1), Column: uint32(p.Column + 1)}
}

func firstNamedChild(node *ts.Node) *ts.Node {
	for _, child := range namedChildren(node) {
		if child.Kind() != "comment" {
			return child
		}
	}
	return nil
}

func namedChildren(node *ts.Node) []*ts.Node {
	var out []*ts.Node
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.IsNamed() {
			out = append(out, child)
		}
	}
	return out
}
