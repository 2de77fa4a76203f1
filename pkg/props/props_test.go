package props

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propschema/pkg/ast"
	"github.com/gnana997/propschema/pkg/resolve"
	"github.com/gnana997/propschema/pkg/schema"
)

func prim(name string) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.KindPrimitive, Name: name}
}

func ref(name string, args ...*ast.TypeNode) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.KindReference, Name: name, Args: args}
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

func propNames(shapes []schema.NamedShape) []string {
	out := make([]string, len(shapes))
	for i, s := range shapes {
		out[i] = s.Name
	}
	return out
}

func newTestExtractor(t *testing.T) (*Extractor, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewExtractor(Resolvers{}, logger), &buf
}

func viewPropsRecord() schema.ExtendsPropsShape {
	return schema.ExtendsPropsShape{
		Type:          schema.ExtendsReactNativeBuiltIn,
		KnownTypeName: schema.KnownReactNativeCoreViewProps,
	}
}

func TestExtractProps_ViewPropsComponent(t *testing.T) {
	e, logs := newTestExtractor(t)
	types := ast.NewTypeDeclarationMap()

	members := []*ast.Member{
		extends("ViewProps"),
		prop("color", true, prim("string")),
		prop("onPress", false, ref("DirectEventHandler", ref("Event"))),
		prop("style", false, ref("ViewStyleProp")),
	}

	res, err := e.ExtractProps(members, types)
	require.NoError(t, err)

	assert.Equal(t, []schema.ExtendsPropsShape{viewPropsRecord()}, res.ExtendsProps)
	assert.Equal(t, []schema.NamedShape{
		{Name: "color", Optional: true, TypeAnnotation: schema.StringTypeAnnotation{}},
	}, res.Props)

	assert.Contains(t, logs.String(), "excluded member")
	assert.Contains(t, logs.String(), "name=onPress")
	assert.Contains(t, logs.String(), "reason=event")
	assert.Contains(t, logs.String(), "name=style")
	assert.Contains(t, logs.String(), "reason=style")
}

func TestExtractProps_Empty(t *testing.T) {
	e, _ := newTestExtractor(t)

	res, err := e.ExtractProps(nil, ast.NewTypeDeclarationMap())
	require.NoError(t, err)
	assert.Empty(t, res.Props)
	assert.Empty(t, res.ExtendsProps)
	assert.NotNil(t, res.ExtendsProps)
}

func TestExtractProps_OnlyExcludedMembers(t *testing.T) {
	e, _ := newTestExtractor(t)

	members := []*ast.Member{
		prop("onChange", true, ref("BubblingEventHandler", ref("Event"))),
		prop("onLoad", true, ref("DirectEventHandler", ref("Event"))),
		prop("style", true, ref("ViewStyleProp")),
	}

	res, err := e.ExtractProps(members, ast.NewTypeDeclarationMap())
	require.NoError(t, err)
	assert.Empty(t, res.Props)
}

func TestExtractProps_LocalExtendsIsInlined(t *testing.T) {
	e, _ := newTestExtractor(t)
	types := ast.NewTypeDeclarationMap(
		iface("SharedStyle",
			prop("tint", true, ref("ColorValue")),
			prop("onTint", true, ref("DirectEventHandler", ref("Event"))),
		),
	)

	members := []*ast.Member{
		extends("ViewProps"),
		extends("SharedStyle"),
		prop("label", false, prim("string")),
	}

	res, err := e.ExtractProps(members, types)
	require.NoError(t, err)

	assert.Equal(t, []schema.ExtendsPropsShape{viewPropsRecord()}, res.ExtendsProps)
	assert.Equal(t, []string{"tint", "label"}, propNames(res.Props))
	assert.Equal(t, schema.ReservedPropTypeAnnotation{Name: schema.ReservedColor}, res.Props[0].TypeAnnotation)
}

func TestExtractProps_EventThroughAlias(t *testing.T) {
	e, _ := newTestExtractor(t)
	types := ast.NewTypeDeclarationMap(
		alias("OnScroll", ref("BubblingEventHandler", ref("ScrollEvent"))),
	)

	members := []*ast.Member{
		prop("onScroll", true, union(ref("OnScroll"), prim("null"))),
		prop("enabled", true, prim("boolean")),
	}

	res, err := e.ExtractProps(members, types)
	require.NoError(t, err)
	assert.Equal(t, []string{"enabled"}, propNames(res.Props))
}

func TestExtractProps_StyleNameWithOtherTypeIsProp(t *testing.T) {
	e, _ := newTestExtractor(t)

	members := []*ast.Member{
		prop("style", true, prim("string")),
	}

	res, err := e.ExtractProps(members, ast.NewTypeDeclarationMap())
	require.NoError(t, err)
	require.Len(t, res.Props, 1)
	assert.Equal(t, "style", res.Props[0].Name)
	assert.Equal(t, schema.StringTypeAnnotation{}, res.Props[0].TypeAnnotation)
}

func TestExtractProps_NestedObjectDropsEvents(t *testing.T) {
	e, _ := newTestExtractor(t)
	types := ast.NewTypeDeclarationMap(
		iface("Options",
			prop("enabled", true, prim("boolean")),
			prop("onDone", true, ref("DirectEventHandler", ref("Event"))),
		),
	)

	res, err := e.ExtractProps([]*ast.Member{prop("options", true, ref("Options"))}, types)
	require.NoError(t, err)
	require.Len(t, res.Props, 1)

	obj, ok := res.Props[0].TypeAnnotation.(schema.ObjectTypeAnnotation)
	require.True(t, ok, "expected object annotation, got %T", res.Props[0].TypeAnnotation)
	assert.Equal(t, []string{"enabled"}, propNames(obj.Properties))
}

func TestExtractProps_RecursiveShapes(t *testing.T) {
	e, _ := newTestExtractor(t)
	types := ast.NewTypeDeclarationMap(
		iface("Node", prop("child", true, ref("Node"))),
		iface("Item", prop("subItems", true, &ast.TypeNode{Kind: ast.KindArray, Element: ref("Item")})),
		iface("Parent", prop("kid", true, ref("Child"))),
		iface("Child", extends("ChildBase")),
		iface("ChildBase", prop("parent", true, ref("Parent"))),
	)

	tests := []struct {
		name string
		prop *ast.Member
	}{
		{"self reference", prop("tree", true, ref("Node"))},
		{"through array", prop("items", true, &ast.TypeNode{Kind: ast.KindArray, Element: ref("Item")})},
		{"through extends", prop("family", true, ref("Parent"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.ExtractProps([]*ast.Member{tt.prop}, types)
			require.ErrorIs(t, err, resolve.ErrCyclicType)
			assert.Contains(t, err.Error(), "prop "+tt.prop.Name)
		})
	}
}

func TestExtractProps_SharedNestedShape(t *testing.T) {
	e, _ := newTestExtractor(t)
	types := ast.NewTypeDeclarationMap(
		iface("Insets", prop("top", true, ref("Float")), prop("bottom", true, ref("Float"))),
		iface("Layout", prop("margin", true, ref("Insets")), prop("padding", true, ref("Insets"))),
	)

	res, err := e.ExtractProps([]*ast.Member{
		prop("layout", true, ref("Layout")),
		prop("hitSlop", true, ref("Insets")),
	}, types)
	require.NoError(t, err)
	assert.Equal(t, []string{"layout", "hitSlop"}, propNames(res.Props))

	layout, ok := res.Props[0].TypeAnnotation.(schema.ObjectTypeAnnotation)
	require.True(t, ok, "expected object annotation, got %T", res.Props[0].TypeAnnotation)
	assert.Equal(t, []string{"margin", "padding"}, propNames(layout.Properties))
}

func TestExtractProps_Errors(t *testing.T) {
	e, _ := newTestExtractor(t)
	types := ast.NewTypeDeclarationMap(iface("Base", prop("a", true, prim("string"))))

	tests := []struct {
		name    string
		members []*ast.Member
		errIs   error
	}{
		{"unknown spread", []*ast.Member{extends("TextProps")}, resolve.ErrUnsupportedSpread},
		{"duplicate prop", []*ast.Member{prop("a", true, prim("string")), extends("Base")}, resolve.ErrDuplicateProp},
		{"default on required", []*ast.Member{prop("n", false, ref("WithDefault", ref("Int32"), num("1")))}, resolve.ErrDefaultRequiresOptional},
		{"bare number", []*ast.Member{prop("n", true, prim("number"))}, resolve.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.ExtractProps(tt.members, types)
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestPartition(t *testing.T) {
	types := ast.NewTypeDeclarationMap(iface("Local"))
	members := []*ast.Member{
		prop("a", true, prim("string")),
		extends("ViewProps"),
		extends("Local"),
		prop("b", true, prim("string")),
	}

	ext, rest, err := Partition(members, types, resolve.ExtendsResolver{})
	require.NoError(t, err)
	assert.Equal(t, []schema.ExtendsPropsShape{viewPropsRecord()}, ext)
	require.Len(t, rest, 3)
	assert.Same(t, members[0], rest[0])
	assert.Same(t, members[2], rest[1])
	assert.Same(t, members[3], rest[2])
}

func TestPartition_ResolverError(t *testing.T) {
	_, _, err := Partition([]*ast.Member{extends("Nope")}, ast.NewTypeDeclarationMap(), resolve.ExtendsResolver{})
	require.ErrorIs(t, err, resolve.ErrUnsupportedSpread)
}

// --- collaborator substitution ---

type stubFlattener struct {
	err error
}

func (s stubFlattener) FlattenMembers(members []*ast.Member, _ ast.TypeDeclarationMap) ([]*ast.Member, error) {
	return members, s.err
}

type recordingAnnotations struct {
	seen []string
}

func (r *recordingAnnotations) BuildTypeAnnotation(
	name string,
	_ *ast.TypeNode,
	_ *ast.Literal,
	_ ast.TypeDeclarationMap,
	nested resolve.NestedSchemaBuilder,
) (schema.PropTypeAnnotation, error) {
	r.seen = append(r.seen, name)
	if nested == nil {
		return nil, errors.New("missing nested builder")
	}
	return schema.MixedTypeAnnotation{}, nil
}

func TestExtractor_UsesInjectedResolvers(t *testing.T) {
	ann := &recordingAnnotations{}
	e := NewExtractor(Resolvers{Annotations: ann}, nil)

	members := []*ast.Member{
		prop("a", true, prim("string")),
		prop("onX", true, ref("DirectEventHandler")),
		prop("b", true, prim("number")),
	}

	res, err := e.ExtractProps(members, ast.NewTypeDeclarationMap())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ann.seen)
	assert.Equal(t, []string{"a", "b"}, propNames(res.Props))
}

func TestExtractor_FlattenError(t *testing.T) {
	boom := errors.New("boom")
	e := NewExtractor(Resolvers{Flattener: stubFlattener{err: boom}}, nil)

	_, err := e.ExtractProps([]*ast.Member{prop("a", true, prim("string"))}, ast.NewTypeDeclarationMap())
	require.ErrorIs(t, err, boom)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		member string
		typ    *ast.TypeNode
		want   Classification
	}{
		{"bubbling event", "onChange", ref("BubblingEventHandler"), ClassEvent},
		{"direct event", "onLoad", ref("DirectEventHandler"), ClassEvent},
		{"style", "style", ref("ViewStyleProp"), ClassStyle},
		{"style named other", "containerStyle", ref("ViewStyleProp"), ClassProp},
		{"style with other type", "style", prim("string"), ClassProp},
		{"event marker wins over style name", "style", ref("DirectEventHandler"), ClassEvent},
		{"plain", "color", prim("string"), ClassProp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.member, resolve.TopLevelType{Type: tt.typ})
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, "unknown", got.String())
		})
	}
}

func union(types ...*ast.TypeNode) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.KindUnion, Types: types}
}

func num(v string) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.KindLiteral, Literal: ast.Literal{Kind: ast.LiteralNumber, Value: v}}
}
