package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnana997/propschema/pkg/scanner"
)

// scanFlags are the discovery flags shared by scan and watch.
type scanFlags struct {
	include []string
	exclude []string
	workers int
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.include, "include", nil, "include globs (replace config and defaults)")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "additional exclude globs")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "extraction workers (default: 2 x CPUs, 4-32)")
}

// resolve applies flags on top of the project config.
func (f *scanFlags) resolve(cfg *ProjectConfig) scanner.ScanConfig {
	sc := cfg.scanConfig()
	if len(f.include) > 0 {
		sc.Include = f.include
	}
	sc.Exclude = append(sc.Exclude, f.exclude...)
	if f.workers > 0 {
		sc.Workers = f.workers
	}
	return sc
}

func newScanCmd(a *app) *cobra.Command {
	var (
		flags  scanFlags
		output string
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Scan a directory for native component specs",
		Long: `Scan a directory (default: current directory) for native component spec
files, extract every component and write the merged schema.

Files that fail extraction are reported and skipped unless --strict is set.

Example:
  propschema scan packages/ -o build/schema.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			if output == "" {
				output = a.config.Output
			}

			s := scanner.NewScanner(a.logger)
			defer s.Close()

			out, stats, err := s.Run(root, flags.resolve(a.config))
			if err != nil {
				return err
			}

			for _, f := range stats.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", f)
			}
			if strict && stats.FilesFailed > 0 {
				return fmt.Errorf("%d of %d files failed extraction", stats.FilesFailed, stats.FilesDiscovered)
			}

			if err := emit(cmd.OutOrStdout(), output, format, out); err != nil {
				return err
			}

			a.logger.Info("scan complete",
				"files", stats.FilesDiscovered,
				"failed", stats.FilesFailed,
				"components", stats.Components,
				"props", stats.Props,
				"ms", stats.TotalTimeMs)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the schema to this file (default: config output, else stdout)")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json, text")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any file fails extraction")
	return cmd
}
