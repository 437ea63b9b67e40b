package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/config"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/spf13/cobra"
)

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
}

// writeReport renders results with the formatter selected by --format
func writeReport(cmd *cobra.Command, currency string, results []calculation.Result) error {
	name, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(name)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", name, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	report := output.NewReport(currency, results...)

	if save, _ := cmd.Flags().GetBool("save"); save {
		filename, err := output.WriteFormatted(f, report, extension(f.Name()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func extension(formatter string) string {
	switch {
	case formatter == "console":
		return "txt"
	case strings.HasPrefix(formatter, "csv"):
		return "csv"
	default:
		return formatter
	}
}

func currencyOf(inputs ...domain.CalculationInput) string {
	for _, in := range inputs {
		if in.Contract != nil && in.Contract.Currency != "" {
			return in.Contract.Currency
		}
	}
	return output.DefaultCurrency
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate one month of payroll",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			engine, closeStore, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			res, err := engine.Calculate(cmd.Context(), *in)
			if err != nil {
				return fmt.Errorf("calculation failed: %w", err)
			}
			return writeReport(cmd, currencyOf(*in), []calculation.Result{*res})
		},
	}
	addFormatFlags(cmd)
	return cmd
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [input-file...]",
		Short: "Calculate every input in one or more multi-document files",
		Long: "Calculates each YAML document of each file independently. A failing input yields " +
			"a result carrying its error and does not stop the others.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			var inputs []domain.CalculationInput
			for _, file := range args {
				loaded, err := parser.LoadAllFromFile(file)
				if err != nil {
					return err
				}
				inputs = append(inputs, loaded...)
			}

			engine, closeStore, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			results := engine.CalculateBatch(cmd.Context(), inputs)
			if err := writeReport(cmd, currencyOf(inputs...), results); err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", failed, len(results))
			}
			return nil
		},
	}
	addFormatFlags(cmd)
	return cmd
}
