package resolve

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/gnana997/propschema/pkg/ast"
	"github.com/gnana997/propschema/pkg/schema"
)

// NestedSchemaBuilder builds prop entries for the members of a nested object
// shape. The props extractor provides it so that nested shapes go through the
// same flatten, classify and build steps as top-level props.
type NestedSchemaBuilder interface {
	BuildNestedSchema(members []*ast.Member, types ast.TypeDeclarationMap) ([]schema.NamedShape, error)
}

// ScopedSchemaBuilder is a NestedSchemaBuilder that hands nested to the
// annotation builder for the members' own types. Builders that implement it
// let interface cycles be detected across nesting levels.
type ScopedSchemaBuilder interface {
	BuildScopedSchema(members []*ast.Member, types ast.TypeDeclarationMap, nested NestedSchemaBuilder) ([]schema.NamedShape, error)
}

// interfaceScope is the nested builder used inside an interface shape. It
// remembers the interfaces entered on the way down.
type interfaceScope struct {
	base   NestedSchemaBuilder
	parent *interfaceScope
	name   string
}

// enterInterface returns the nested builder for the members of interface
// name, or ErrCyclicType when name is already being built.
func enterInterface(nested NestedSchemaBuilder, name string) (NestedSchemaBuilder, error) {
	cur, ok := nested.(*interfaceScope)
	if !ok {
		return &interfaceScope{base: nested, name: name}, nil
	}
	for s := cur; s != nil; s = s.parent {
		if s.name == name {
			return nil, fmt.Errorf("%w: interface %s contains itself", ErrCyclicType, name)
		}
	}
	return &interfaceScope{base: cur.base, parent: cur, name: name}, nil
}

func (s *interfaceScope) BuildNestedSchema(members []*ast.Member, types ast.TypeDeclarationMap) ([]schema.NamedShape, error) {
	if sb, ok := s.base.(ScopedSchemaBuilder); ok {
		return sb.BuildScopedSchema(members, types, s)
	}
	return s.base.BuildNestedSchema(members, types)
}

// reservedTypes maps platform primitive type names to reserved annotations.
var reservedTypes = map[string]schema.ReservedPropName{
	"ColorValue":          schema.ReservedColor,
	"ProcessedColorValue": schema.ReservedColor,
	"ImageSource":         schema.ReservedImageSource,
	"ImageRequest":        schema.ReservedImageRequest,
	"PointValue":          schema.ReservedPoint,
	"EdgeInsetsValue":     schema.ReservedEdgeInsets,
	"DimensionValue":      schema.ReservedDimension,
}

// AnnotationBuilder turns normalized prop types into schema annotations.
type AnnotationBuilder struct {
	Normalizer Normalizer
}

// BuildTypeAnnotation builds the annotation for the prop name whose
// normalized type is t and whose WithDefault literal is def. Object shapes
// and interface references are built through nested.
func (b AnnotationBuilder) BuildTypeAnnotation(
	name string,
	t *ast.TypeNode,
	def *ast.Literal,
	types ast.TypeDeclarationMap,
	nested NestedSchemaBuilder,
) (schema.PropTypeAnnotation, error) {
	ann, err := b.build(name, t, def, types, nested)
	if err != nil {
		return nil, fmt.Errorf("prop %s: %w", name, err)
	}
	return ann, nil
}

func (b AnnotationBuilder) build(
	name string,
	t *ast.TypeNode,
	def *ast.Literal,
	types ast.TypeDeclarationMap,
	nested NestedSchemaBuilder,
) (schema.PropTypeAnnotation, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: missing type", ErrUnsupportedType)
	}

	switch t.Kind {
	case ast.KindObject:
		return objectAnnotation(t.Members, types, nested)

	case ast.KindArray:
		elem, err := b.arrayElement(t.Element, def, types, nested)
		if err != nil {
			return nil, err
		}
		return schema.ArrayTypeAnnotation{ElementType: elem}, nil

	case ast.KindUnion, ast.KindLiteral:
		return enumAnnotation(t, def)

	case ast.KindPrimitive:
		switch t.Name {
		case "boolean":
			return booleanAnnotation(def)
		case "string":
			return stringAnnotation(def)
		case "number":
			return nil, fmt.Errorf("%w: cannot use number, use Int32, Float or Double", ErrUnsupportedType)
		}

	case ast.KindReference:
		return b.reference(t, def, types, nested)
	}

	return nil, fmt.Errorf("%w: cannot parse type %s", ErrUnsupportedType, t)
}

func (b AnnotationBuilder) reference(
	t *ast.TypeNode,
	def *ast.Literal,
	types ast.TypeDeclarationMap,
	nested NestedSchemaBuilder,
) (schema.PropTypeAnnotation, error) {
	switch t.Name {
	case "Int32":
		v, err := int32Default(def)
		if err != nil {
			return nil, err
		}
		if v == nil {
			v = new(int32)
		}
		return schema.Int32TypeAnnotation{Default: v}, nil
	case "Double":
		v, err := floatDefault(def)
		if err != nil {
			return nil, err
		}
		if v == nil {
			v = new(float64)
		}
		return schema.DoubleTypeAnnotation{Default: v}, nil
	case "Float":
		v, err := floatDefault(def)
		if err != nil {
			return nil, err
		}
		if v == nil && !isNullLiteral(def) {
			v = new(float64)
		}
		return schema.FloatTypeAnnotation{Default: v}, nil
	case "Stringish":
		return stringAnnotation(def)
	case "UnsafeMixed":
		return schema.MixedTypeAnnotation{}, nil
	}

	if reserved, ok := reservedTypes[t.Name]; ok {
		return schema.ReservedPropTypeAnnotation{Name: reserved}, nil
	}

	if decl, ok := types.Lookup(t.Name); ok && decl.Kind == ast.DeclInterface {
		return interfaceAnnotation(decl, types, nested)
	}

	return nil, fmt.Errorf("%w: cannot parse type %s", ErrUnsupportedType, t)
}

// arrayElement builds the element annotation of an array prop. Element
// annotations carry no defaults, except string enums which take the array
// prop's default.
func (b AnnotationBuilder) arrayElement(
	elem *ast.TypeNode,
	def *ast.Literal,
	types ast.TypeDeclarationMap,
	nested NestedSchemaBuilder,
) (schema.PropTypeAnnotation, error) {
	top, err := b.Normalizer.NormalizeTopLevelType(elem, types)
	if err != nil {
		return nil, err
	}
	if top.Default != nil {
		return nil, fmt.Errorf("%w: WithDefault is not supported inside arrays", ErrUnsupportedType)
	}
	t := top.Type

	switch t.Kind {
	case ast.KindObject:
		return objectAnnotation(t.Members, types, nested)
	case ast.KindArray:
		inner, err := b.arrayElement(t.Element, nil, types, nested)
		if err != nil {
			return nil, err
		}
		return schema.ArrayTypeAnnotation{ElementType: inner}, nil
	case ast.KindUnion, ast.KindLiteral:
		return enumAnnotation(t, def)
	case ast.KindPrimitive:
		switch t.Name {
		case "boolean":
			return schema.BooleanTypeAnnotation{}, nil
		case "string":
			return schema.StringTypeAnnotation{}, nil
		}
	case ast.KindReference:
		switch t.Name {
		case "Int32":
			return schema.Int32TypeAnnotation{}, nil
		case "Double":
			return schema.DoubleTypeAnnotation{}, nil
		case "Float":
			return schema.FloatTypeAnnotation{}, nil
		case "Stringish":
			return schema.StringTypeAnnotation{}, nil
		case "UnsafeMixed":
			return schema.MixedTypeAnnotation{}, nil
		}
		if reserved, ok := reservedTypes[t.Name]; ok {
			return schema.ReservedPropTypeAnnotation{Name: reserved}, nil
		}
		if decl, ok := types.Lookup(t.Name); ok && decl.Kind == ast.DeclInterface {
			return interfaceAnnotation(decl, types, nested)
		}
	}

	return nil, fmt.Errorf("%w: cannot parse array element type %s", ErrUnsupportedType, t)
}

func interfaceAnnotation(decl *ast.TypeDecl, types ast.TypeDeclarationMap, nested NestedSchemaBuilder) (schema.PropTypeAnnotation, error) {
	if nested == nil {
		return objectAnnotation(decl.Members, types, nil)
	}
	scoped, err := enterInterface(nested, decl.Name)
	if err != nil {
		return nil, err
	}
	return objectAnnotation(decl.Members, types, scoped)
}

func objectAnnotation(members []*ast.Member, types ast.TypeDeclarationMap, nested NestedSchemaBuilder) (schema.PropTypeAnnotation, error) {
	if nested == nil {
		return nil, fmt.Errorf("%w: nested object shapes need a schema builder", ErrUnsupportedType)
	}
	props, err := nested.BuildNestedSchema(members, types)
	if err != nil {
		return nil, err
	}
	return schema.ObjectTypeAnnotation{Properties: props}, nil
}

// enumAnnotation builds a string or integer enum from a literal union.
func enumAnnotation(t *ast.TypeNode, def *ast.Literal) (schema.PropTypeAnnotation, error) {
	members := t.Types
	if t.Kind == ast.KindLiteral {
		members = []*ast.TypeNode{t}
	}

	var strs []string
	var ints []int32
	for _, m := range members {
		if m.Kind != ast.KindLiteral {
			return nil, fmt.Errorf("%w: union %s mixes literals and types", ErrUnsupportedType, t)
		}
		switch m.Literal.Kind {
		case ast.LiteralString:
			strs = append(strs, m.Literal.Value)
		case ast.LiteralNumber:
			v, err := strconv.ParseInt(m.Literal.Value, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: enum value %s is not a 32-bit integer", ErrUnsupportedType, m.Literal.Value)
			}
			ints = append(ints, int32(v))
		default:
			return nil, fmt.Errorf("%w: %s literals cannot form an enum", ErrUnsupportedType, m.Literal.Kind)
		}
	}

	if len(strs) > 0 && len(ints) > 0 {
		return nil, fmt.Errorf("%w: union %s mixes strings and numbers", ErrUnsupportedType, t)
	}

	if def == nil || def.Kind == ast.LiteralNull || def.Kind == ast.LiteralUndefined {
		return nil, fmt.Errorf("%w: a default enum value is required", ErrMissingDefault)
	}

	if len(strs) > 0 {
		if def.Kind != ast.LiteralString || !slices.Contains(strs, def.Value) {
			return nil, fmt.Errorf("%w: %s is not one of the enum options", ErrInvalidDefault, def.Value)
		}
		return schema.StringEnumTypeAnnotation{Default: def.Value, Options: strs}, nil
	}

	v, err := strconv.ParseInt(def.Value, 10, 32)
	if def.Kind != ast.LiteralNumber || err != nil || !slices.Contains(ints, int32(v)) {
		return nil, fmt.Errorf("%w: %s is not one of the enum options", ErrInvalidDefault, def.Value)
	}
	return schema.Int32EnumTypeAnnotation{Default: int32(v), Options: ints}, nil
}

func booleanAnnotation(def *ast.Literal) (schema.PropTypeAnnotation, error) {
	if isNullLiteral(def) {
		return schema.BooleanTypeAnnotation{}, nil
	}
	v := false
	if def != nil {
		if def.Kind != ast.LiteralBoolean {
			return nil, fmt.Errorf("%w: %s is not a boolean", ErrInvalidDefault, def.Value)
		}
		v = def.Value == "true"
	}
	return schema.BooleanTypeAnnotation{Default: &v}, nil
}

func stringAnnotation(def *ast.Literal) (schema.PropTypeAnnotation, error) {
	if def == nil || isNullLiteral(def) {
		return schema.StringTypeAnnotation{}, nil
	}
	if def.Kind != ast.LiteralString {
		return nil, fmt.Errorf("%w: %s is not a string", ErrInvalidDefault, def.Value)
	}
	v := def.Value
	return schema.StringTypeAnnotation{Default: &v}, nil
}

func int32Default(def *ast.Literal) (*int32, error) {
	if def == nil || isNullLiteral(def) {
		return nil, nil
	}
	if def.Kind != ast.LiteralNumber {
		return nil, fmt.Errorf("%w: %s is not a number", ErrInvalidDefault, def.Value)
	}
	v, err := strconv.ParseInt(def.Value, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a 32-bit integer", ErrInvalidDefault, def.Value)
	}
	i := int32(v)
	return &i, nil
}

func floatDefault(def *ast.Literal) (*float64, error) {
	if def == nil || isNullLiteral(def) {
		return nil, nil
	}
	if def.Kind != ast.LiteralNumber {
		return nil, fmt.Errorf("%w: %s is not a number", ErrInvalidDefault, def.Value)
	}
	v, err := strconv.ParseFloat(def.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDefault, def.Value)
	}
	return &v, nil
}

func isNullLiteral(def *ast.Literal) bool {
	return def != nil && (def.Kind == ast.LiteralNull || def.Kind == ast.LiteralUndefined)
}
