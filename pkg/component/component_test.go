package component

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propschema/pkg/parser"
	"github.com/gnana997/propschema/pkg/parser/queries"
	"github.com/gnana997/propschema/pkg/resolve"
	"github.com/gnana997/propschema/pkg/schema"
)

const sliderSource = `
import type {ViewProps, ColorValue, HostComponent} from 'react-native';
import type {
  BubblingEventHandler,
  Int32,
  WithDefault,
} from 'react-native/Libraries/Types/CodegenTypes';
import type {ViewStyleProp} from 'react-native/Libraries/StyleSheet/StyleSheet';
import codegenNativeComponent from 'react-native/Libraries/Utilities/codegenNativeComponent';
import codegenNativeCommands from 'react-native/Libraries/Utilities/codegenNativeCommands';

type ChangeEvent = Readonly<{value: Int32}>;

export interface NativeProps extends ViewProps {
  /** Track tint. */
  color?: ColorValue;
  step?: WithDefault<Int32, 1>;
  onPress?: BubblingEventHandler<ChangeEvent>;
  style?: ViewStyleProp;
}

interface NativeCommands {
  reset: (viewRef: unknown) => void;
}

export const Commands = codegenNativeCommands<NativeCommands>({
  supportedCommands: ['reset', 'focus'],
});

export default codegenNativeComponent<NativeProps>('RNTSlider', {
  interfaceOnly: true,
  paperComponentName: 'RCTSlider',
  excludedPlatforms: ['android'],
}) as HostComponent<NativeProps>;
`

func newTestParser(t *testing.T) (*Parser, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	pm := parser.NewParserManager(logger)
	t.Cleanup(func() { _ = pm.Close() })
	qm := queries.NewQueryManager(pm, logger)
	t.Cleanup(func() { _ = qm.Close() })

	return NewParser(pm, qm, nil, logger), &buf
}

func TestParseFile_Component(t *testing.T) {
	p, logs := newTestParser(t)

	out, err := p.ParseFile("src/SliderNativeComponent.ts", []byte(sliderSource))
	require.NoError(t, err)

	require.Equal(t, []string{"SliderNativeComponent"}, out.ModuleNames())
	module := out.Modules["SliderNativeComponent"]
	assert.Equal(t, schema.ModuleTypeComponent, module.Type)
	require.Equal(t, []string{"RNTSlider"}, module.ComponentNames())

	shape := module.Components["RNTSlider"]
	assert.True(t, shape.InterfaceOnly)
	assert.Equal(t, "RCTSlider", shape.PaperComponentName)
	assert.Equal(t, []string{schema.PlatformAndroid}, shape.ExcludedPlatforms)

	assert.Equal(t, []schema.ExtendsPropsShape{{
		Type:          schema.ExtendsReactNativeBuiltIn,
		KnownTypeName: schema.KnownReactNativeCoreViewProps,
	}}, shape.ExtendsProps)

	require.Len(t, shape.Props, 2)
	assert.Equal(t, "color", shape.Props[0].Name)
	assert.True(t, shape.Props[0].Optional)
	assert.Equal(t, "Track tint.", shape.Props[0].Description)
	assert.Equal(t, schema.ReservedPropTypeAnnotation{Name: schema.ReservedColor}, shape.Props[0].TypeAnnotation)

	assert.Equal(t, "step", shape.Props[1].Name)
	step, ok := shape.Props[1].TypeAnnotation.(schema.Int32TypeAnnotation)
	require.True(t, ok, "step annotation is %T", shape.Props[1].TypeAnnotation)
	require.NotNil(t, step.Default)
	assert.Equal(t, int32(1), *step.Default)

	assert.NotNil(t, shape.Events)
	assert.Empty(t, shape.Events)
	assert.Equal(t, []schema.CommandShape{{Name: "reset"}, {Name: "focus"}}, shape.Commands)

	assert.Contains(t, logs.String(), "name=onPress")
	assert.Contains(t, logs.String(), "name=style")
	assert.Contains(t, logs.String(), "extracted component")
}

func TestParseFile_TypeAliasProps(t *testing.T) {
	p, _ := newTestParser(t)

	src := `
import type {ViewProps} from 'react-native';
type NativeProps = Readonly<ViewProps & {
  label: string;
  mode?: WithDefault<'light' | 'dark', 'light'>;
}>;
export default codegenNativeComponent<NativeProps>('RNTLabel');
`
	out, err := p.ParseFile("LabelNativeComponent.tsx", []byte(src))
	require.NoError(t, err)

	shape := out.Modules["LabelNativeComponent"].Components["RNTLabel"]
	assert.Len(t, shape.ExtendsProps, 1)
	require.Len(t, shape.Props, 2)
	assert.Equal(t, "label", shape.Props[0].Name)
	assert.False(t, shape.Props[0].Optional)
	assert.Equal(t, schema.StringEnumTypeAnnotation{Default: "light", Options: []string{"light", "dark"}},
		shape.Props[1].TypeAnnotation)

	assert.False(t, shape.InterfaceOnly)
	assert.Empty(t, shape.Commands)
	assert.NotNil(t, shape.Commands)
}

func TestParseFile_NoComponent(t *testing.T) {
	p, _ := newTestParser(t)

	out, err := p.ParseFile("helpers.ts", []byte("export const x = 1;\n"))
	require.NoError(t, err)
	assert.Empty(t, out.Modules)
	assert.NotNil(t, out.Modules)
}

func TestParseFile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		source string
		errIs  error
	}{
		{
			name:   "unsupported extension",
			path:   "View.js",
			source: "export default 1;",
			errIs:  ErrUnsupportedFile,
		},
		{
			name:   "missing props type",
			path:   "A.ts",
			source: "export default codegenNativeComponent('RNTA');",
			errIs:  ErrMissingPropsType,
		},
		{
			name:   "non literal name",
			path:   "A.ts",
			source: "interface P {}\nconst n = 'x';\nexport default codegenNativeComponent<P>(n);",
			errIs:  ErrMissingName,
		},
		{
			name:   "props type not declared",
			path:   "A.ts",
			source: "export default codegenNativeComponent<Missing>('RNTA');",
			errIs:  ErrPropsTypeNotFound,
		},
		{
			name:   "duplicate component",
			path:   "A.ts",
			source: "interface P {}\ncodegenNativeComponent<P>('RNTA');\ncodegenNativeComponent<P>('RNTA');",
			errIs:  ErrDuplicateComponent,
		},
		{
			name:   "bad platform",
			path:   "A.ts",
			source: "interface P {}\ncodegenNativeComponent<P>('RNTA', {excludedPlatforms: ['web']});",
			errIs:  ErrInvalidOptions,
		},
		{
			name:   "non boolean interfaceOnly",
			path:   "A.ts",
			source: "interface P {}\ncodegenNativeComponent<P>('RNTA', {interfaceOnly: 'yes'});",
			errIs:  ErrInvalidOptions,
		},
		{
			name:   "commands without options",
			path:   "A.ts",
			source: "interface P {}\ncodegenNativeCommands<C>();\ncodegenNativeComponent<P>('RNTA');",
			errIs:  ErrInvalidOptions,
		},
		{
			name:   "unsupported prop type",
			path:   "A.ts",
			source: "interface P { n: number }\ncodegenNativeComponent<P>('RNTA');",
			errIs:  resolve.ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestParser(t)
			_, err := p.ParseFile(tt.path, []byte(tt.source))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestParseFile_ErrorMentionsComponent(t *testing.T) {
	p, _ := newTestParser(t)

	_, err := p.ParseFile("Broken.ts", []byte("interface P { n: number }\ncodegenNativeComponent<P>('RNTBroken');"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken.ts:2")
	assert.Contains(t, err.Error(), "component RNTBroken")
	assert.Contains(t, err.Error(), "prop n")
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "SliderNativeComponent", ModuleName("a/b/SliderNativeComponent.ts"))
	assert.Equal(t, "View", ModuleName("View.tsx"))
	assert.Equal(t, "noext", ModuleName("noext"))
}
