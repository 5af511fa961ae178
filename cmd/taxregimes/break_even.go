package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taxregimes/taxregimes/internal/breakeven"
)

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [input-file]",
		Short: "Show the price uplift each regime needs to match the patent net profit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, in, err := setup(cmd, args[0])
			if err != nil {
				return err
			}
			summary, err := engine.RunContext(cmd.Context(), in)
			if err != nil {
				return err
			}

			report, ok := breakeven.NewUpliftReport(summary)
			if !ok {
				r, _ := summary.Result("patent")
				return fmt.Errorf("patent is not available for this input: %s", r.Reason)
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			switch outputFormat {
			case "table":
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(report))
				fmt.Fprintln(cmd.OutOrStdout(), "INTERPRETATION:")
				fmt.Fprintln(cmd.OutOrStdout(), "• Uplift is the price increase that brings a regime's net profit up to the patent's")
				fmt.Fprintln(cmd.OutOrStdout(), "• Cost of goods, payroll and other expenses are assumed unchanged")
				fmt.Fprintln(cmd.OutOrStdout(), "• Unreachable means the regime limits are hit before the target")
			case "json":
				out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(report)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			default:
				return fmt.Errorf("unsupported format: %s (available: table, json)", outputFormat)
			}

			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}
