package resolve

import (
	"fmt"

	"github.com/gnana997/propschema/pkg/ast"
	"github.com/gnana997/propschema/pkg/schema"
)

// sharedPropGroups maps the names of built-in shared prop groups to the
// record emitted for them. Read-only.
var sharedPropGroups = map[string]schema.ExtendsPropsShape{
	"ViewProps": {
		Type:          schema.ExtendsReactNativeBuiltIn,
		KnownTypeName: schema.KnownReactNativeCoreViewProps,
	},
}

// IsSharedPropGroup reports whether name is a built-in shared prop group.
func IsSharedPropGroup(name string) bool {
	_, ok := sharedPropGroups[name]
	return ok
}

// ExtendsResolver decides whether an inheritance clause names a shared prop
// group.
type ExtendsResolver struct{}

// ResolveExtends returns the inheritance record for a recognized shared prop
// group, nil for a locally declared type (whose members are inlined later),
// and ErrUnsupportedSpread for anything else.
func (ExtendsResolver) ResolveExtends(m *ast.Member, types ast.TypeDeclarationMap) (*schema.ExtendsPropsShape, error) {
	name := m.ReferenceName()
	if name == "" {
		return nil, fmt.Errorf("%w: inheritance clause without a type name", ErrUnsupportedSpread)
	}

	if types.Has(name) {
		return nil, nil
	}

	if shape, ok := sharedPropGroups[name]; ok {
		return &shape, nil
	}

	return nil, fmt.Errorf("%w: unable to handle prop spread %s", ErrUnsupportedSpread, name)
}
