package cmd

import (
	"strconv"

	"github.com/led-dino/playacamp/pkg/report"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var dailyCountsCmd = &cobra.Command{
	Use:   "dailycounts <year>",
	Short: "Print how many attendees are in camp on each day of the event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrapf(err, "invalid year %s", args[0])
		}

		counts, err := report.DailyCounts(mustOpenStors().AttendanceStor, year)
		if err != nil {
			return err
		}

		return report.WriteDailyCounts(cmd.OutOrStdout(), counts)
	},
}

func init() {
	rootCmd.AddCommand(dailyCountsCmd)
}
