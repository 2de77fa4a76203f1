package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/propschema/pkg/schema"
)

const defaultFilename = "NativeComponent.ts"

func (s *Server) handleExtractProps(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filename := req.GetString("filename", defaultFilename)
	only := req.GetString("component", "")

	out, err := s.backend.ExtractSource(filename, []byte(source))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if only != "" {
		filtered, ok := filterComponent(out, only)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("component %q not found", only)), nil
		}
		out = filtered
	}

	return marshalToolResponse(out)
}

// scanResponse is the scan_directory result.
type scanResponse struct {
	Schema *schema.SchemaType `json:"schema"`
	Stats  scanStats          `json:"stats"`
}

type scanStats struct {
	FilesDiscovered int           `json:"files_discovered"`
	FilesExtracted  int           `json:"files_extracted"`
	FilesFailed     int           `json:"files_failed"`
	Components      int           `json:"components"`
	Props           int           `json:"props"`
	DurationMs      int64         `json:"duration_ms"`
	Failures        []scanFailure `json:"failures,omitempty"`
}

type scanFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

func (s *Server) handleScanDirectory(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := s.scanCfg
	cfg.Include = req.GetStringSlice("include", cfg.Include)
	if extra := req.GetStringSlice("exclude", nil); len(extra) > 0 {
		cfg.Exclude = append(append([]string(nil), cfg.Exclude...), extra...)
	}

	out, stats, err := s.backend.Run(root, cfg)
	if err != nil && out == nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		s.log.Warn("scan finished with errors", "path", root, "error", err)
	}

	resp := scanResponse{
		Schema: out,
		Stats: scanStats{
			FilesDiscovered: stats.FilesDiscovered,
			FilesExtracted:  stats.FilesExtracted,
			FilesFailed:     stats.FilesFailed,
			Components:      stats.Components,
			Props:           stats.Props,
			DurationMs:      stats.TotalTimeMs,
		},
	}
	for _, f := range stats.Failures {
		resp.Stats.Failures = append(resp.Stats.Failures, scanFailure{File: f.FilePath, Error: f.Error()})
	}
	if err != nil {
		resp.Stats.Failures = append(resp.Stats.Failures, scanFailure{File: root, Error: err.Error()})
	}

	return marshalToolResponse(resp)
}

// filterComponent returns a schema holding only the named component.
func filterComponent(in *schema.SchemaType, name string) (*schema.SchemaType, bool) {
	for moduleName, m := range in.Modules {
		c, ok := m.Components[name]
		if !ok {
			continue
		}
		module := schema.NewComponentModule()
		module.Components[name] = c
		out := schema.NewSchema()
		out.Modules[moduleName] = module
		return out, true
	}
	return nil, false
}

// marshalToolResponse marshals a response object to JSON and returns it as
// an MCP tool result.
func marshalToolResponse(response any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
