package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propschema/pkg/mcplog"
	"github.com/gnana997/propschema/pkg/scanner"
	"github.com/gnana997/propschema/pkg/schema"
)

const sliderSource = `
import type {ViewProps} from 'react-native';
import type {BubblingEventHandler, Float, WithDefault} from 'react-native/Libraries/Types/CodegenTypes';

interface NativeProps extends ViewProps {
  value?: WithDefault<Float, 0>;
  onValueChange?: BubblingEventHandler<null>;
}

interface ToggleProps {
  on?: boolean;
}

export const Slider = codegenNativeComponent<NativeProps>('RNTSlider');
export const Toggle = codegenNativeComponent<ToggleProps>('RNTToggle');
`

// --- helpers ---

func testServer(t *testing.T, callLog *mcplog.Logger) *Server {
	t.Helper()
	s := scanner.NewScanner(nil)
	t.Cleanup(func() { _ = s.Close() })
	return NewServer(s, scanner.DefaultScanConfig(), callLog, nil)
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	switch req.Params.Name {
	case toolExtractProps:
		handler = s.handleExtractProps
	case toolScanDirectory:
		handler = s.handleScanDirectory
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// --- extract_props ---

func TestHandleExtractProps(t *testing.T) {
	s := testServer(t, nil)
	result := callTool(t, s, makeRequest(toolExtractProps, map[string]any{
		"source":   sliderSource,
		"filename": "SliderNativeComponent.ts",
	}))
	require.False(t, result.IsError, resultJSON(t, result))

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &out))

	modules := out["modules"].(map[string]any)
	module := modules["SliderNativeComponent"].(map[string]any)
	assert.Equal(t, "Component", module["type"])

	components := module["components"].(map[string]any)
	assert.Len(t, components, 2)

	slider := components["RNTSlider"].(map[string]any)
	props := slider["props"].([]any)
	require.Len(t, props, 1)
	assert.Equal(t, "value", props[0].(map[string]any)["name"])
	assert.Len(t, slider["extendsProps"], 1)
}

func TestHandleExtractProps_ComponentFilter(t *testing.T) {
	s := testServer(t, nil)
	result := callTool(t, s, makeRequest(toolExtractProps, map[string]any{
		"source":    sliderSource,
		"component": "RNTToggle",
	}))
	require.False(t, result.IsError)

	var out schemaJSON
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &out))
	require.Contains(t, out.Modules, "NativeComponent")
	assert.Len(t, out.Modules["NativeComponent"].Components, 1)
	assert.Contains(t, out.Modules["NativeComponent"].Components, "RNTToggle")
}

func TestHandleExtractProps_Errors(t *testing.T) {
	s := testServer(t, nil)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "missing source", args: nil, want: "source"},
		{name: "unsupported prop", args: map[string]any{
			"source": "interface P { n: number }\ncodegenNativeComponent<P>('RNTN');",
		}, want: "cannot use number"},
		{name: "unknown component", args: map[string]any{
			"source": sliderSource, "component": "RNTMissing",
		}, want: `component "RNTMissing" not found`},
		{name: "javascript file", args: map[string]any{
			"source": "export {}", "filename": "View.js",
		}, want: "unsupported file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, s, makeRequest(toolExtractProps, tt.args))
			assert.True(t, result.IsError)
			assert.Contains(t, resultJSON(t, result), tt.want)
		})
	}
}

// --- scan_directory ---

type schemaJSON struct {
	Modules map[string]struct {
		Components map[string]json.RawMessage `json:"components"`
	} `json:"modules"`
}

func TestHandleScanDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SliderNativeComponent.ts"), []byte(sliderSource), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BadNativeComponent.ts"),
		[]byte("interface P { n: number }\ncodegenNativeComponent<P>('RNTBad');"), 0644))

	s := testServer(t, nil)
	result := callTool(t, s, makeRequest(toolScanDirectory, map[string]any{"path": dir}))
	require.False(t, result.IsError, resultJSON(t, result))

	var resp struct {
		Schema schemaJSON `json:"schema"`
		Stats  scanStats  `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &resp))

	assert.Equal(t, 2, resp.Stats.FilesDiscovered)
	assert.Equal(t, 1, resp.Stats.FilesExtracted)
	assert.Equal(t, 1, resp.Stats.FilesFailed)
	assert.Equal(t, 2, resp.Stats.Components)
	require.Len(t, resp.Stats.Failures, 1)
	assert.Contains(t, resp.Stats.Failures[0].File, "BadNativeComponent.ts")
	assert.Contains(t, resp.Schema.Modules, "SliderNativeComponent")
}

func TestHandleScanDirectory_CustomInclude(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slider.ts"), []byte(sliderSource), 0644))

	s := testServer(t, nil)
	result := callTool(t, s, makeRequest(toolScanDirectory, map[string]any{
		"path":    dir,
		"include": []any{"*.ts"},
	}))
	require.False(t, result.IsError)

	var resp struct {
		Stats scanStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &resp))
	assert.Equal(t, 1, resp.Stats.FilesExtracted)
	assert.Equal(t, 2, resp.Stats.Components)
}

func TestHandleScanDirectory_Errors(t *testing.T) {
	s := testServer(t, nil)

	result := callTool(t, s, makeRequest(toolScanDirectory, nil))
	assert.True(t, result.IsError)

	result = callTool(t, s, makeRequest(toolScanDirectory, map[string]any{
		"path": filepath.Join(t.TempDir(), "missing"),
	}))
	assert.True(t, result.IsError)
	assert.Contains(t, resultJSON(t, result), "discovery failed")
}

// --- middleware ---

type failingBackend struct{}

func (failingBackend) ExtractSource(string, []byte) (*schema.SchemaType, error) {
	return nil, errors.New("parse failed")
}

func (failingBackend) Run(string, scanner.ScanConfig) (*schema.SchemaType, *scanner.ScanStats, error) {
	return schema.NewSchema(), &scanner.ScanStats{}, nil
}

func TestLoggingMiddleware(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.jsonl")
	callLog, err := mcplog.NewLogger(path)
	require.NoError(t, err)

	s := NewServer(failingBackend{}, scanner.DefaultScanConfig(), callLog, nil)
	handler := s.loggingMiddleware()(s.handleExtractProps)

	result, err := handler(context.Background(), makeRequest(toolExtractProps, map[string]any{
		"source": string(make([]byte, 300)),
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	require.NoError(t, callLog.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	sc := bufio.NewScanner(f)
	require.True(t, sc.Scan())
	var entry mcplog.LogEntry
	require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))

	assert.Equal(t, toolExtractProps, entry.Tool)
	assert.Equal(t, float64(300), entry.Params["source_len"])
	assert.NotContains(t, entry.Params, "source")
	require.NotNil(t, entry.Error)
	assert.Equal(t, "parse failed", *entry.Error)
	assert.False(t, sc.Scan(), "one line per call")
}
