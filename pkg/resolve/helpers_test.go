package resolve

import (
	"github.com/gnana997/propschema/pkg/ast"
	"github.com/gnana997/propschema/pkg/schema"
)

func prim(name string) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.KindPrimitive, Name: name}
}

func ref(name string, args ...*ast.TypeNode) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.KindReference, Name: name, Args: args}
}

func str(v string) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.KindLiteral, Literal: ast.Literal{Kind: ast.LiteralString, Value: v}}
}

func num(v string) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.KindLiteral, Literal: ast.Literal{Kind: ast.LiteralNumber, Value: v}}
}

func union(types ...*ast.TypeNode) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.KindUnion, Types: types}
}

func object(members ...*ast.Member) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.KindObject, Members: members}
}

func array(elem *ast.TypeNode) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.KindArray, Element: elem}
}

func prop(name string, optional bool, t *ast.TypeNode) *ast.Member {
	return &ast.Member{Kind: ast.MemberProperty, Name: name, Optional: optional, Type: t}
}

func extends(name string) *ast.Member {
	return &ast.Member{Kind: ast.MemberExtends, Type: ref(name)}
}

func iface(name string, members ...*ast.Member) *ast.TypeDecl {
	return &ast.TypeDecl{Name: name, Kind: ast.DeclInterface, Members: members}
}

func alias(name string, t *ast.TypeNode) *ast.TypeDecl {
	return &ast.TypeDecl{Name: name, Kind: ast.DeclAlias, Type: t}
}

func names(members []*ast.Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Name
	}
	return out
}

// shallowNested builds nested entries by running the schema info and
// annotation builders directly, without flattening or classification.
type shallowNested struct{}

func (n shallowNested) BuildNestedSchema(members []*ast.Member, types ast.TypeDeclarationMap) ([]schema.NamedShape, error) {
	return n.BuildScopedSchema(members, types, n)
}

func (shallowNested) BuildScopedSchema(members []*ast.Member, types ast.TypeDeclarationMap, nested NestedSchemaBuilder) ([]schema.NamedShape, error) {
	var out []schema.NamedShape
	for _, m := range members {
		info, err := SchemaInfoBuilder{}.BuildSchemaInfo(m, types)
		if err != nil {
			return nil, err
		}
		ann, err := AnnotationBuilder{}.BuildTypeAnnotation(info.Name, info.Type, info.Default, types, nested)
		if err != nil {
			return nil, err
		}
		out = append(out, schema.NamedShape{Name: info.Name, Optional: info.Optional, TypeAnnotation: ann})
	}
	return out, nil
}
