package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gnana997/propschema/pkg/scanner"
	"github.com/gnana997/propschema/pkg/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		flags  scanFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Rewrite the schema whenever a spec file changes",
		Long: `Scan a directory, write the schema, then keep watching it. Each time a
matching spec file is written, created or removed the directory is rescanned
(unchanged files come from the cache) and the schema file is rewritten.

Example:
  propschema watch src/ -o build/schema.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			if output == "" {
				output = a.config.Output
			}
			if output == "" {
				return errors.New("watch needs an output file (--output or output in config)")
			}

			cfg := flags.resolve(a.config)
			s := scanner.NewScanner(a.logger)
			defer s.Close()

			rebuild := func() {
				out, stats, err := s.Run(root, cfg)
				if err != nil {
					a.logger.Error("scan failed", "error", err)
					return
				}
				for _, f := range stats.Failures {
					a.logger.Warn("extraction failed", "file", f.FilePath, "error", f.Err)
				}
				if err := emit(cmd.OutOrStdout(), output, formatJSON, out); err != nil {
					a.logger.Error("write schema failed", "error", err)
					return
				}
				a.logger.Info("schema written",
					"output", output,
					"components", stats.Components,
					"cached", stats.CacheHits)
			}

			rebuild()

			opts := watcher.DefaultOptions()
			opts.Config = cfg
			w, err := watcher.New(s, opts, func(c watcher.Change) {
				a.logger.Info("spec file "+c.Kind.String(), "file", c.Path)
				rebuild()
			}, a.logger)
			if err != nil {
				return err
			}
			defer w.Stop()

			if err := w.Start(root); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "schema file to keep up to date (default: config output)")
	return cmd
}
