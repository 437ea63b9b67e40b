package main

import (
	"fmt"
	"io"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/config"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/spf13/cobra"
)

// loadExtractor reads an input file and returns the prepared input and its extractor
func loadExtractor(file string) (calculation.Extractor, domain.CalculationInput, error) {
	parser := config.NewInputParser()
	in, err := parser.LoadFromFile(file)
	if err != nil {
		return calculation.Extractor{}, domain.CalculationInput{}, err
	}
	rules, err := parser.LoadStatutory(settings.StatutoryFile)
	if err != nil {
		return calculation.Extractor{}, domain.CalculationInput{}, err
	}
	return calculation.PrepareExtractor(*in, rules)
}

// render writes v as json or yaml, or calls console for the console format
func render(w io.Writer, format string, v any, console func() string) error {
	if format == "console" || format == "text" {
		_, err := io.WriteString(w, console())
		return err
	}
	data, err := output.Encode(format, v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func addStructuredFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "console", "Output format: console, json, yaml")
}

func overtimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overtime [input-file]",
		Short: "Show the per-day overtime breakdown of a timesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, in, err := loadExtractor(args[0])
			if err != nil {
				return err
			}
			breakdown := x.ExtractOvertimeFromTimesheet(in.Entries)
			format, _ := cmd.Flags().GetString("format")
			return render(cmd.OutOrStdout(), format, breakdown, func() string {
				return output.RenderOvertime(breakdown, currencyOf(in))
			})
		},
	}
	addStructuredFormatFlag(cmd)
	return cmd
}

func weeklyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weekly [input-file]",
		Short: "Show weekly totals and weekly limit violations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, in, err := loadExtractor(args[0])
			if err != nil {
				return err
			}
			weeks := x.CalculateWeeklyOvertime(in.Entries)
			format, _ := cmd.Flags().GetString("format")
			return render(cmd.OutOrStdout(), format, weeks, func() string {
				return output.RenderWeekly(weeks)
			})
		},
	}
	addStructuredFormatFlag(cmd)
	return cmd
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule [input-file]",
		Short: "Show the planned hours of the contract for a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if in.Contract == nil {
				return calculation.ErrMissingContract
			}

			fromFlag, _ := cmd.Flags().GetString("from")
			toFlag, _ := cmd.Flags().GetString("to")
			from, err := domain.ParseDate(fromFlag)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			to, err := domain.ParseDate(toFlag)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}
			if to.Before(from) {
				return fmt.Errorf("--to %s is before --from %s", to, from)
			}

			days := calculation.BuildPlannedSchedule(*in.Contract, domain.NewHolidaySet(in.Holidays), from, to)
			format, _ := cmd.Flags().GetString("format")
			return render(cmd.OutOrStdout(), format, days, func() string {
				return output.RenderSchedule(days)
			})
		},
	}
	cmd.Flags().String("from", "", "First day, YYYY-MM-DD")
	cmd.Flags().String("to", "", "Last day, YYYY-MM-DD")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	addStructuredFormatFlag(cmd)
	return cmd
}
