package resolve

import (
	"fmt"

	"github.com/gnana997/propschema/pkg/ast"
)

// Wrapper type names understood by the normalizer.
const (
	withDefaultType = "WithDefault"
	readonlyType    = "Readonly"
)

// TopLevelType is a member's declared type reduced to a classifiable shape.
type TopLevelType struct {
	// Type is the unwrapped, dealiased type.
	Type *ast.TypeNode

	// Nullable is set when the declared type was a union with null or undefined.
	Nullable bool

	// Default is the literal given through WithDefault<T, D>, if any.
	Default *ast.Literal
}

// Name returns the reference name of the normalized type, or "" when the
// type is not a reference.
func (t TopLevelType) Name() string {
	if t.Type == nil || t.Type.Kind != ast.KindReference {
		return ""
	}
	return t.Type.Name
}

// Normalizer reduces declared types to their TopLevelType.
type Normalizer struct{}

// NormalizeTopLevelType unwraps nullable unions, WithDefault and Readonly
// wrappers and dealiases type aliases until a concrete shape remains.
// Interfaces are left as references.
func (Normalizer) NormalizeTopLevelType(t *ast.TypeNode, types ast.TypeDeclarationMap) (TopLevelType, error) {
	var top TopLevelType
	seen := make(map[string]bool)
	cur := t

	for {
		if cur == nil {
			return top, fmt.Errorf("%w: missing type annotation", ErrUnsupportedType)
		}

		switch cur.Kind {
		case ast.KindUnion:
			rest := make([]*ast.TypeNode, 0, len(cur.Types))
			for _, member := range cur.Types {
				if member.IsNullish() {
					top.Nullable = true
					continue
				}
				rest = append(rest, member)
			}
			switch {
			case len(rest) == 0:
				return top, fmt.Errorf("%w: %s has no non-null member", ErrUnsupportedType, cur)
			case len(rest) == 1:
				cur = rest[0]
				continue
			case len(rest) < len(cur.Types):
				cur = &ast.TypeNode{Kind: ast.KindUnion, Types: rest, Pos: cur.Pos}
			}
			top.Type = cur
			return top, nil

		case ast.KindReference:
			switch {
			case cur.Name == withDefaultType:
				if top.Default != nil {
					return top, fmt.Errorf("%w: nested %s", ErrUnsupportedType, withDefaultType)
				}
				if len(cur.Args) != 2 {
					return top, fmt.Errorf("%w: %s expects 2 type arguments, got %d",
						ErrUnsupportedType, withDefaultType, len(cur.Args))
				}
				def, err := literalOf(cur.Args[1])
				if err != nil {
					return top, err
				}
				top.Default = &def
				cur = cur.Args[0]
				continue

			case cur.Name == readonlyType && len(cur.Args) == 1:
				cur = cur.Args[0]
				continue
			}

			decl, ok := types.Lookup(cur.Name)
			if ok && decl.Kind == ast.DeclAlias {
				if seen[cur.Name] {
					return top, fmt.Errorf("%w: alias %s", ErrCyclicType, cur.Name)
				}
				seen[cur.Name] = true
				cur = decl.Type
				continue
			}
			top.Type = cur
			return top, nil

		default:
			top.Type = cur
			return top, nil
		}
	}
}

// literalOf converts a WithDefault default argument to a literal.
func literalOf(t *ast.TypeNode) (ast.Literal, error) {
	switch {
	case t == nil:
		return ast.Literal{}, fmt.Errorf("%w: missing default", ErrInvalidDefault)
	case t.Kind == ast.KindLiteral:
		return t.Literal, nil
	case t.Kind == ast.KindPrimitive && t.Name == "null":
		return ast.Literal{Kind: ast.LiteralNull, Value: "null"}, nil
	case t.Kind == ast.KindPrimitive && t.Name == "undefined":
		return ast.Literal{Kind: ast.LiteralUndefined, Value: "undefined"}, nil
	}
	return ast.Literal{}, fmt.Errorf("%w: %s is not a literal", ErrInvalidDefault, t)
}
