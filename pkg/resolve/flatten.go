package resolve

import (
	"fmt"

	"github.com/gnana997/propschema/pkg/ast"
)

// Flattener inlines inheritance clauses and anonymous types into a flat list
// of property signatures.
type Flattener struct{}

// FlattenMembers expands members in declaration order. Properties pass
// through; extends and inline members are replaced by the members of the
// type they name. Unknown names, cycles and duplicate prop names are errors.
func (Flattener) FlattenMembers(members []*ast.Member, types ast.TypeDeclarationMap) ([]*ast.Member, error) {
	f := &flattening{
		types:    types,
		names:    make(map[string]bool),
		visiting: make(map[string]bool),
	}
	if err := f.members(members); err != nil {
		return nil, err
	}
	return f.out, nil
}

type flattening struct {
	types    ast.TypeDeclarationMap
	out      []*ast.Member
	names    map[string]bool
	visiting map[string]bool
}

func (f *flattening) members(members []*ast.Member) error {
	for _, m := range members {
		if m == nil {
			continue
		}
		switch m.Kind {
		case ast.MemberProperty:
			if f.names[m.Name] {
				return fmt.Errorf("%w: a prop was already defined with the name %s", ErrDuplicateProp, m.Name)
			}
			f.names[m.Name] = true
			f.out = append(f.out, m)
		case ast.MemberExtends, ast.MemberInline:
			if err := f.typ(m.Type); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: member kind %s", ErrUnsupportedType, m.Kind)
		}
	}
	return nil
}

func (f *flattening) typ(t *ast.TypeNode) error {
	if t == nil {
		return fmt.Errorf("%w: missing type", ErrUnsupportedType)
	}

	switch t.Kind {
	case ast.KindObject:
		return f.members(t.Members)

	case ast.KindIntersection:
		for _, part := range t.Types {
			if err := f.typ(part); err != nil {
				return err
			}
		}
		return nil

	case ast.KindReference:
		if t.Name == readonlyType && len(t.Args) == 1 {
			return f.typ(t.Args[0])
		}

		decl, ok := f.types.Lookup(t.Name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownType, t.Name)
		}
		if f.visiting[t.Name] {
			return fmt.Errorf("%w: %s", ErrCyclicType, t.Name)
		}
		f.visiting[t.Name] = true
		defer delete(f.visiting, t.Name)

		switch decl.Kind {
		case ast.DeclInterface:
			return f.members(decl.Members)
		case ast.DeclAlias:
			return f.typ(decl.Type)
		}
	}

	return fmt.Errorf("%w: %s is not a supported object literal type", ErrUnsupportedType, t)
}
