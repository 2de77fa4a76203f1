// Package mcp exposes props extraction to MCP clients over stdio.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/propschema/pkg/mcplog"
	"github.com/gnana997/propschema/pkg/scanner"
	"github.com/gnana997/propschema/pkg/schema"
)

const serverVersion = "0.1.0-dev"

// Backend extracts schemas for the tool handlers. *scanner.Scanner
// implements it.
type Backend interface {
	ExtractSource(path string, source []byte) (*schema.SchemaType, error)
	Run(rootDir string, cfg scanner.ScanConfig) (*schema.SchemaType, *scanner.ScanStats, error)
}

// Server implements the MCP server for propschema, exposing the
// extract_props and scan_directory tools.
type Server struct {
	mcpServer *server.MCPServer
	backend   Backend
	scanCfg   scanner.ScanConfig
	logger    *mcplog.Logger // nil disables call logging
	log       *slog.Logger
}

// NewServer creates a server backed by b. scanCfg holds the default globs
// for scan_directory. callLog may be nil.
func NewServer(b Backend, scanCfg scanner.ScanConfig, callLog *mcplog.Logger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{backend: b, scanCfg: scanCfg, logger: callLog, log: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if callLog != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("propschema", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: extractPropsTool(), Handler: s.handleExtractProps},
		server.ServerTool{Tool: scanDirectoryTool(), Handler: s.handleScanDirectory},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info("mcp server listening on stdio", "version", serverVersion)
	return server.ServeStdio(s.mcpServer)
}
