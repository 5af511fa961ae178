package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taxregimes/taxregimes/internal/calculation"
	"github.com/taxregimes/taxregimes/internal/config"
	"github.com/taxregimes/taxregimes/internal/domain"
	"github.com/taxregimes/taxregimes/internal/logging"
	"github.com/taxregimes/taxregimes/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taxregimes",
		Short:         "Russian tax regime comparison calculator",
		Long:          "Compare the annual tax burden and net profit of a small business under AUSN, USN, OSNO and the patent",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("rules", "", "Path to a tax rules YAML file overlaying the built-in 2026 rules")
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		breakEvenCmd(),
		compareCmd(),
		whatIfCmd(),
		regimesCmd(),
		exampleCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxregimes %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// loadRules returns the built-in rules, overlaid by --rules when given
func loadRules(cmd *cobra.Command) (domain.TaxRules, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	if rulesFile == "" {
		return domain.DefaultTaxRules(), nil
	}
	return config.LoadRulesFromFile(rulesFile)
}

// setup loads the rules and the input file and builds an engine for them
func setup(cmd *cobra.Command, inputFile string) (*calculation.CalculationEngine, domain.CalcInput, error) {
	rules, err := loadRules(cmd)
	if err != nil {
		return nil, domain.CalcInput{}, err
	}
	in, err := config.NewInputParserWithRules(rules).LoadFromFile(inputFile)
	if err != nil {
		return nil, domain.CalcInput{}, err
	}

	engine := calculation.NewCalculationEngineWithRules(rules)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		logger, err := logging.NewSugared("debug", true)
		if err != nil {
			return nil, domain.CalcInput{}, err
		}
		engine.SetLogger(logger)
	}
	return engine, in, nil
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate every tax regime for a business profile",
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

			outputFormat, _ := cmd.Flags().GetString("format")
			outputFile, _ := cmd.Flags().GetString("output")

			if outDir, _ := cmd.Flags().GetString("out-dir"); outDir != "" {
				filename, err := output.SaveReport(outDir, summary, outputFormat, &engine.Rules)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			w := cmd.OutOrStdout()
			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outputFile, err)
				}
				defer f.Close()
				w = f
			}
			if err := output.GenerateReport(w, summary, outputFormat, &engine.Rules); err != nil {
				return err
			}
			if outputFile != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputFile)
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "console",
		"Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().String("out-dir", "", "Write the report to a timestamped file in this directory")
	cmd.MarkFlagsMutuallyExclusive("output", "out-dir")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(cmd)
			if err != nil {
				return err
			}
			if _, err := config.NewInputParserWithRules(rules).LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", args[0])
			return nil
		},
	}
}

func regimesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regimes",
		Short: "List the supported tax regimes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, r := range domain.Regimes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", r.ID, r.Title)
			}
		},
	}
}

func exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Write an example input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteExample(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example input written to %s\n", args[0])
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
