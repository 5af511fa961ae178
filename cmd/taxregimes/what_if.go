package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taxregimes/taxregimes/internal/transform"
)

func whatIfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "what-if [input-file]",
		Short: "Recalculate every regime after changing the business profile",
		Long: `Apply transforms to the input and show how net profit moves under each regime.

Transforms use the form name:key=value,key=value and are applied in order. Templates are
named bundles of transforms.

Examples:
  taxregimes what-if input.yaml --transform raise_prices:percent=10
  taxregimes what-if input.yaml --transform hire:count=3 --transform set_salary:monthly=60000
  taxregimes what-if input.yaml --template expand
  taxregimes what-if --list`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list"); list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(cmd)
			if err != nil {
				return err
			}
			registry := transform.NewTransformRegistry(rules)
			templates := transform.CreateBuiltInTemplates(rules)

			if list, _ := cmd.Flags().GetBool("list"); list {
				fmt.Fprintln(cmd.OutOrStdout(), "Transforms:")
				for _, name := range registry.List() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Templates:")
				for _, name := range templates.List() {
					t, _ := templates.Get(name)
					fmt.Fprintf(cmd.OutOrStdout(), "  %-18s %s\n", name, t.Description)
				}
				return nil
			}

			var transforms []transform.InputTransform
			if name, _ := cmd.Flags().GetString("template"); name != "" {
				t, ok := templates.Get(name)
				if !ok {
					return fmt.Errorf("unknown template: %s (available: %s)", name, strings.Join(templates.List(), ", "))
				}
				transforms = append(transforms, t.Transforms...)
			}
			specs, _ := cmd.Flags().GetStringArray("transform")
			for _, spec := range specs {
				t, err := registry.ParseTransformSpec(spec)
				if err != nil {
					return err
				}
				transforms = append(transforms, t)
			}
			if len(transforms) == 0 {
				return fmt.Errorf("no transforms given: use --transform or --template")
			}

			engine, in, err := setup(cmd, args[0])
			if err != nil {
				return err
			}
			outcome, err := transform.Evaluate(cmd.Context(), engine, in, transforms)
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			switch outputFormat {
			case "table":
				fmt.Fprint(cmd.OutOrStdout(), transform.FormatOutcome(outcome))
			case "json":
				data, err := json.MarshalIndent(outcome, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			default:
				return fmt.Errorf("unsupported format: %s (available: table, json)", outputFormat)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayP("transform", "t", nil, "Transform to apply, repeatable (name:key=value,...)")
	cmd.Flags().String("template", "", "Built-in template to apply before any --transform")
	cmd.Flags().Bool("list", false, "List available transforms and templates")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}
