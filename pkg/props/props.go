// Package props extracts the prop schema of a native component from its
// parsed props declaration.
//
// Extraction runs in two stages over one declaration. Partition splits the
// declaration's members into recognized shared-prop inheritance records and
// the remaining members. The remaining members are then flattened, each
// flattened property is classified as an event handler, the style prop or a
// genuine prop, and genuine props are turned into schema entries. Nested
// object shapes re-enter the flatten/classify/build stage through
// BuildNestedSchema.
//
// An Extractor holds no per-call state and is safe for concurrent use.
package props

import (
	"fmt"
	"log/slog"

	"github.com/gnana997/propschema/pkg/ast"
	"github.com/gnana997/propschema/pkg/resolve"
	"github.com/gnana997/propschema/pkg/schema"
)

// ExtendsResolver decides whether an inheritance clause is a shared prop group.
type ExtendsResolver interface {
	ResolveExtends(m *ast.Member, types ast.TypeDeclarationMap) (*schema.ExtendsPropsShape, error)
}

// MemberFlattener inlines referenced types into property signatures.
type MemberFlattener interface {
	FlattenMembers(members []*ast.Member, types ast.TypeDeclarationMap) ([]*ast.Member, error)
}

// TopLevelNormalizer reduces a declared type to a classifiable shape.
type TopLevelNormalizer interface {
	NormalizeTopLevelType(t *ast.TypeNode, types ast.TypeDeclarationMap) (resolve.TopLevelType, error)
}

// SchemaInfoBuilder extracts name, optionality and default of a member.
type SchemaInfoBuilder interface {
	BuildSchemaInfo(m *ast.Member, types ast.TypeDeclarationMap) (resolve.SchemaInfo, error)
}

// AnnotationBuilder builds a member's type annotation. Nested object shapes
// are built by calling back into nested.
type AnnotationBuilder interface {
	BuildTypeAnnotation(
		name string,
		t *ast.TypeNode,
		def *ast.Literal,
		types ast.TypeDeclarationMap,
		nested resolve.NestedSchemaBuilder,
	) (schema.PropTypeAnnotation, error)
}

// Resolvers bundles the collaborators an Extractor delegates to. Nil fields
// are filled with the pkg/resolve implementations.
type Resolvers struct {
	Extends     ExtendsResolver
	Flattener   MemberFlattener
	Normalizer  TopLevelNormalizer
	SchemaInfo  SchemaInfoBuilder
	Annotations AnnotationBuilder
}

// DefaultResolvers returns the pkg/resolve implementations.
func DefaultResolvers() Resolvers {
	return Resolvers{
		Extends:     resolve.ExtendsResolver{},
		Flattener:   resolve.Flattener{},
		Normalizer:  resolve.Normalizer{},
		SchemaInfo:  resolve.SchemaInfoBuilder{},
		Annotations: resolve.AnnotationBuilder{},
	}
}

// Result is the prop schema of one declaration.
type Result struct {
	Props        []schema.NamedShape
	ExtendsProps []schema.ExtendsPropsShape
}

// Extractor turns props declarations into prop schemas.
type Extractor struct {
	resolvers Resolvers
	logger    *slog.Logger
}

// NewExtractor creates an Extractor. Logger can be nil (uses slog.Default()).
func NewExtractor(r Resolvers, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}

	defaults := DefaultResolvers()
	if r.Extends == nil {
		r.Extends = defaults.Extends
	}
	if r.Flattener == nil {
		r.Flattener = defaults.Flattener
	}
	if r.Normalizer == nil {
		r.Normalizer = defaults.Normalizer
	}
	if r.SchemaInfo == nil {
		r.SchemaInfo = defaults.SchemaInfo
	}
	if r.Annotations == nil {
		r.Annotations = defaults.Annotations
	}

	return &Extractor{resolvers: r, logger: logger}
}

// ExtractProps builds the prop schema for the members of one props
// declaration. Props keep the order in which their members appear after
// flattening; excluded members leave no trace. Errors from the resolvers are
// returned unchanged apart from added context.
func (e *Extractor) ExtractProps(members []*ast.Member, types ast.TypeDeclarationMap) (*Result, error) {
	extendsProps, remaining, err := Partition(members, types, e.resolvers.Extends)
	if err != nil {
		return nil, err
	}

	props, err := e.BuildNestedSchema(remaining, types)
	if err != nil {
		return nil, err
	}

	return &Result{
		Props:        props,
		ExtendsProps: extendsProps,
	}, nil
}

// BuildNestedSchema flattens members, drops event handlers and the style
// prop, and builds a schema entry for every remaining property. It is the
// nested-shape capability handed to the annotation builder.
func (e *Extractor) BuildNestedSchema(members []*ast.Member, types ast.TypeDeclarationMap) ([]schema.NamedShape, error) {
	return e.BuildScopedSchema(members, types, e)
}

// BuildScopedSchema is BuildNestedSchema with nested handed to the
// annotation builder in place of the extractor, so interfaces entered
// further up stay visible to it.
func (e *Extractor) BuildScopedSchema(
	members []*ast.Member,
	types ast.TypeDeclarationMap,
	nested resolve.NestedSchemaBuilder,
) ([]schema.NamedShape, error) {
	flat, err := e.resolvers.Flattener.FlattenMembers(members, types)
	if err != nil {
		return nil, err
	}

	props := make([]schema.NamedShape, 0, len(flat))
	for _, m := range flat {
		if !m.IsProperty() {
			continue
		}

		top, err := e.resolvers.Normalizer.NormalizeTopLevelType(m.Type, types)
		if err != nil {
			return nil, fmt.Errorf("prop %s: %w", m.Name, err)
		}

		if class := Classify(m.Name, top); class != ClassProp {
			e.logger.Debug("excluded member",
				"name", m.Name,
				"reason", class.String(),
				"type", top.Name())
			continue
		}

		shape, err := e.buildPropSchema(m, types, nested)
		if err != nil {
			return nil, err
		}
		props = append(props, shape)
	}

	return props, nil
}

// buildPropSchema assembles one schema entry.
func (e *Extractor) buildPropSchema(
	m *ast.Member,
	types ast.TypeDeclarationMap,
	nested resolve.NestedSchemaBuilder,
) (schema.NamedShape, error) {
	info, err := e.resolvers.SchemaInfo.BuildSchemaInfo(m, types)
	if err != nil {
		return schema.NamedShape{}, err
	}

	ann, err := e.resolvers.Annotations.BuildTypeAnnotation(info.Name, info.Type, info.Default, types, nested)
	if err != nil {
		return schema.NamedShape{}, err
	}

	return schema.NamedShape{
		Name:           info.Name,
		Optional:       info.Optional,
		Description:    info.Description,
		TypeAnnotation: ann,
	}, nil
}
