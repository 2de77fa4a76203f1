package props

import (
	"github.com/gnana997/propschema/pkg/ast"
	"github.com/gnana997/propschema/pkg/schema"
)

// Partition splits members into inheritance records for recognized shared
// prop groups and the members left for flattening. Inheritance clauses the
// resolver does not recognize stay in remaining so their fields are inlined.
// Both outputs keep declaration order.
func Partition(
	members []*ast.Member,
	types ast.TypeDeclarationMap,
	resolver ExtendsResolver,
) ([]schema.ExtendsPropsShape, []*ast.Member, error) {
	extendsProps := make([]schema.ExtendsPropsShape, 0)
	remaining := make([]*ast.Member, 0, len(members))

	for _, m := range members {
		if m != nil && m.Kind == ast.MemberExtends {
			rec, err := resolver.ResolveExtends(m, types)
			if err != nil {
				return nil, nil, err
			}
			if rec != nil {
				extendsProps = append(extendsProps, *rec)
				continue
			}
		}
		remaining = append(remaining, m)
	}

	return extendsProps, remaining, nil
}
