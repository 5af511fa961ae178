package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taxregimes/taxregimes/internal/compare"
	"github.com/taxregimes/taxregimes/internal/domain"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare every regime against the regime used today",
		Long: `Compare every regime against a base regime: current_regime from the input file,
or the regime given with --base.

Examples:
  taxregimes compare input.yaml
  taxregimes compare input.yaml --base patent --format csv
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, in, err := setup(cmd, args[0])
			if err != nil {
				return err
			}

			opts := compare.CompareOptions{}
			if base, _ := cmd.Flags().GetString("base"); base != "" {
				if opts.BaseRegime, err = domain.ParseRegimeID(base); err != nil {
					return err
				}
			}
			opts.IncludeUnavailable, _ = cmd.Flags().GetBool("include-unavailable")

			compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), in, opts)
			if err != nil {
				return err
			}
			compSet.InputPath = args[0]

			outputFormat, _ := cmd.Flags().GetString("format")
			switch outputFormat {
			case "table":
				fmt.Fprint(cmd.OutOrStdout(), (&compare.TableFormatter{}).Format(compSet))
			case "csv":
				out, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			case "json":
				out, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			default:
				return fmt.Errorf("unsupported format: %s (available: table, csv, json)", outputFormat)
			}
			return nil
		},
	}
	cmd.Flags().String("base", "", "Base regime ID (default: current_regime from the input)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().Bool("include-unavailable", false, "List regimes the business is not eligible for")
	return cmd
}
