package declarations

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propschema/pkg/ast"
)

// bodyMembers converts the property signatures of an interface_body or
// object_type node. A JSDoc comment directly above a signature becomes its
// description. Method signatures are kept as function-typed properties;
// index, call and construct signatures carry no named prop and are skipped.
func bodyMembers(body *ts.Node, source []byte) []*ast.Member {
	var members []*ast.Member
	var doc string

	for i := uint(0); i < uint(body.ChildCount()); i++ {
		child := body.Child(i)
		if child == nil {
			continue
		}

		switch child.Kind() {
		case "comment":
			doc = parseJSDoc(child.Utf8Text(source))
			continue
		case "property_signature":
			if m := propertyMember(child, source); m != nil {
				m.Description = doc
				members = append(members, m)
			}
		case "method_signature":
			if m := methodMember(child, source); m != nil {
				m.Description = doc
				members = append(members, m)
			}
		case "{", "}", "{|", "|}", ",", ";":
			continue
		}
		doc = ""
	}

	return members
}

func propertyMember(sig *ts.Node, source []byte) *ast.Member {
	nameNode := sig.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	m := &ast.Member{
		Kind: ast.MemberProperty,
		Name: unquote(nameNode.Utf8Text(source)),
		Pos:  position(sig),
	}

	for i := uint(0); i < uint(sig.ChildCount()); i++ {
		switch sig.Child(i).Kind() {
		case "?":
			m.Optional = true
		case "readonly":
			m.Readonly = true
		}
	}

	if typ := sig.ChildByFieldName("type"); typ != nil {
		m.Type = ConvertType(typ, source)
	}

	return m
}

func methodMember(sig *ts.Node, source []byte) *ast.Member {
	nameNode := sig.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	m := &ast.Member{
		Kind: ast.MemberProperty,
		Name: unquote(nameNode.Utf8Text(source)),
		Pos:  position(sig),
		Type: &ast.TypeNode{
			Kind: ast.KindFunction,
			Text: sig.Utf8Text(source),
			Pos:  position(sig),
		},
	}
	for i := uint(0); i < uint(sig.ChildCount()); i++ {
		if sig.Child(i).Kind() == "?" {
			m.Optional = true
		}
	}

	return m
}

// extendsMembers converts the types listed in an interface's extends clause.
func extendsMembers(clause *ts.Node, source []byte) []*ast.Member {
	var members []*ast.Member
	for _, child := range namedChildren(clause) {
		if child.Kind() == "comment" {
			continue
		}
		members = append(members, &ast.Member{
			Kind: ast.MemberExtends,
			Type: ConvertType(child, source),
			Pos:  position(child),
		})
	}
	return members
}

// parseJSDoc returns the description text of a /** */ comment. Tag lines
// are dropped. Other comment styles carry no description.
func parseJSDoc(comment string) string {
	comment = strings.TrimSpace(comment)
	if !strings.HasPrefix(comment, "/**") {
		return ""
	}

	comment = strings.TrimPrefix(comment, "/**")
	comment = strings.TrimSuffix(comment, "*/")

	var parts []string
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "@") {
			continue
		}
		parts = append(parts, line)
	}

	return strings.Join(parts, " ")
}

// MembersOf returns the member list of a declaration used as a props type.
//
// Interfaces yield their extends clauses followed by their properties.
// Aliases of object literals yield the literal's properties; aliases of
// intersections yield one member per part, references becoming extends
// clauses and anonymous shapes becoming inline members. Readonly<T>
// wrappers are looked through.
func MembersOf(decl *ast.TypeDecl) ([]*ast.Member, error) {
	if decl == nil {
		return nil, fmt.Errorf("%w: nil declaration", ErrNotObjectType)
	}

	switch decl.Kind {
	case ast.DeclInterface:
		return decl.Members, nil
	case ast.DeclAlias:
		return aliasMembers(decl.Name, decl.Type)
	default:
		return nil, fmt.Errorf("%w: %s is an %s", ErrNotObjectType, decl.Name, decl.Kind)
	}
}

func aliasMembers(name string, t *ast.TypeNode) ([]*ast.Member, error) {
	t = unwrapReadonly(t)
	if t == nil {
		return nil, fmt.Errorf("%w: %s has no type", ErrNotObjectType, name)
	}

	switch t.Kind {
	case ast.KindObject:
		return t.Members, nil

	case ast.KindReference:
		return []*ast.Member{{Kind: ast.MemberExtends, Type: t, Pos: t.Pos}}, nil

	case ast.KindIntersection:
		members := make([]*ast.Member, 0, len(t.Types))
		for _, part := range t.Types {
			part = unwrapReadonly(part)
			if part == nil {
				continue
			}
			kind := ast.MemberInline
			if part.Kind == ast.KindReference {
				kind = ast.MemberExtends
			}
			members = append(members, &ast.Member{Kind: kind, Type: part, Pos: part.Pos})
		}
		return members, nil
	}

	return nil, fmt.Errorf("%w: %s is %s", ErrNotObjectType, name, t)
}

func unwrapReadonly(t *ast.TypeNode) *ast.TypeNode {
	for t != nil && t.IsReferenceTo("Readonly") && len(t.Args) == 1 {
		t = t.Args[0]
	}
	return t
}
