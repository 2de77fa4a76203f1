package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnana997/propschema/pkg/scanner"
	"github.com/gnana997/propschema/pkg/schema"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "extract <file>...",
		Short: "Extract the component schema of one or more spec files",
		Long: `Extract the codegen component schema of the given native component spec
files and print the merged schema. Any file that fails extraction fails the
command.

Example:
  propschema extract src/SliderNativeComponent.ts --format text`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			s := scanner.NewScanner(a.logger)
			defer s.Close()

			out := schema.NewSchema()
			var errs []error
			for _, path := range args {
				res, err := s.ExtractFile(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if err := out.Merge(res.Schema); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
				}
			}
			if len(errs) > 0 {
				return errors.Join(errs...)
			}

			return emit(cmd.OutOrStdout(), output, format, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the schema to this file instead of stdout")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json, text")
	return cmd
}
