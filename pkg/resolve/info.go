package resolve

import (
	"fmt"

	"github.com/gnana997/propschema/pkg/ast"
)

// SchemaInfo is the per-member metadata needed to build a prop entry.
type SchemaInfo struct {
	Name        string
	Optional    bool
	Description string

	// Type is the normalized top-level type handed to the annotation builder.
	Type *ast.TypeNode

	// Default is the WithDefault literal, if any.
	Default *ast.Literal
}

// SchemaInfoBuilder extracts SchemaInfo from property signatures.
type SchemaInfoBuilder struct {
	Normalizer Normalizer
}

// BuildSchemaInfo reads the member's name, optionality and default value.
// A member is optional when declared with `?`, when its type is nullable or
// when it carries a WithDefault; WithDefault on a required member is an error.
func (b SchemaInfoBuilder) BuildSchemaInfo(m *ast.Member, types ast.TypeDeclarationMap) (SchemaInfo, error) {
	if !m.IsProperty() {
		return SchemaInfo{}, fmt.Errorf("%w: %s member is not a property signature", ErrUnsupportedType, m.Kind)
	}

	top, err := b.Normalizer.NormalizeTopLevelType(m.Type, types)
	if err != nil {
		return SchemaInfo{}, fmt.Errorf("prop %s: %w", m.Name, err)
	}

	if top.Default != nil && !m.Optional {
		return SchemaInfo{}, fmt.Errorf("prop %s: %w: key must be optional if used with WithDefault<> annotation",
			m.Name, ErrDefaultRequiresOptional)
	}

	return SchemaInfo{
		Name:        m.Name,
		Optional:    m.Optional || top.Nullable || top.Default != nil,
		Description: m.Description,
		Type:        top.Type,
		Default:     top.Default,
	}, nil
}
