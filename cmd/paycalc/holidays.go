package main

import (
	"fmt"
	"strconv"

	"github.com/rgehrsitz/paycalc/internal/calendar"
	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/spf13/cobra"
)

func holidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays [year]",
		Short: "List the public holidays of a year",
		Long: "Lists national holidays, including Easter based ones, plus the regional and " +
			"municipal holidays of --location when it is recognized.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil || year < 1583 || year > 9999 {
				return fmt.Errorf("invalid year %q", args[0])
			}

			where, _ := cmd.Flags().GetString("location")
			loc, ok := calendar.ParseLocation(where)
			if where != "" && !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "location %q not recognized, listing national holidays only\n", where)
			}

			holidays := calendar.Holidays(year, loc)
			format, _ := cmd.Flags().GetString("format")
			return render(cmd.OutOrStdout(), format, holidays, func() string {
				return output.RenderHolidays(holidays)
			})
		},
	}
	cmd.Flags().StringP("location", "l", "", "Workplace, e.g. \"Lisboa\" or \"Funchal\"")
	addStructuredFormatFlag(cmd)
	return cmd
}
