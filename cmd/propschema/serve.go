package main

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/gnana997/propschema/pkg/mcp"
	"github.com/gnana997/propschema/pkg/mcplog"
	"github.com/gnana997/propschema/pkg/scanner"
)

func newServeCmd(a *app) *cobra.Command {
	var mcpLog string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing two tools:

  extract_props    extract the schema of TypeScript spec source
  scan_directory   scan a directory and return the merged schema

Tool calls are appended as JSON lines to --mcp-log (or mcp_log in config)
when set. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			callLog, err := mcplog.NewLogger(firstNonEmpty(mcpLog, a.config.MCPLog))
			if err != nil {
				return err
			}
			defer callLog.Close()

			s := scanner.NewScanner(a.logger)
			defer s.Close()

			srv := mcpserver.NewServer(s, a.config.scanConfig(), callLog, a.logger)
			return srv.ServeStdio()
		},
	}

	cmd.Flags().StringVar(&mcpLog, "mcp-log", "", "append MCP tool calls as JSONL to this file")
	return cmd
}
