package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnana997/propschema/pkg/schema"
	"github.com/gnana997/propschema/pkg/util"
)

// app is the state shared by subcommands, set up before each runs.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	config *ProjectConfig
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "propschema",
		Short: "Extract codegen component schemas from native component specs",
		Long: `propschema reads React Native native component specs written in TypeScript
(files calling codegenNativeComponent) and produces the codegen component
schema: each component's props with their type annotations, the shared prop
groups it extends, and its commands.

Event handler props and the style prop are left out of the props list.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default "+defaultConfigPath+")")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text, json")

	cmd.AddCommand(
		newExtractCmd(a),
		newScanCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the project config and builds the logger. Flags override
// config values.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProjectConfig(a.configPath)
	if err != nil {
		return err
	}
	a.config = cfg

	level, err := util.ParseLogLevel(firstNonEmpty(a.logLevel, cfg.LogLevel))
	if err != nil {
		return err
	}
	format, err := util.ParseLogFormat(firstNonEmpty(a.logFormat, cfg.LogFormat))
	if err != nil {
		return err
	}

	logCfg := util.DefaultLoggerConfig()
	logCfg.Level = level
	logCfg.Format = format
	logCfg.Output = cmd.ErrOrStderr()

	a.logger = util.NewLogger(logCfg)
	util.SetDefault(a.logger)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// output formats for extract and scan.
const (
	formatJSON = "json"
	formatText = "text"
)

func validateFormat(format string) error {
	if format != formatJSON && format != formatText {
		return fmt.Errorf("invalid format %q (want json or text)", format)
	}
	return nil
}

// emit writes out to path (or w when path is empty) in format.
func emit(w io.Writer, path, format string, out *schema.SchemaType) error {
	if path == "" {
		return render(w, format, out)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := render(f, format, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func render(w io.Writer, format string, out *schema.SchemaType) error {
	if format == formatText {
		printSchemaText(w, out)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
