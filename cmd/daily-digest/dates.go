// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/daily-digest/internal/dates"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List the days that can be shown",
	Long: `Dates lists the most recent days, newest first, with the file names
each day is loaded from. The number of days comes from the days config key
or --days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		n, _ := cmd.Flags().GetInt("days")
		if n <= 0 {
			n = cfg.Days
		}
		listDates(cmd.OutOrStdout(), n, time.Now())
		return nil
	},
}

func init() {
	datesCmd.Flags().Int("days", 0, "number of days to list (default from config, 7)")
	rootCmd.AddCommand(datesCmd)
}

func listDates(w io.Writer, n int, now time.Time) {
	for _, d := range dates.DatesBack(n, now) {
		names := dates.ResolveFilenames(d)
		fmt.Fprintf(w, "%-10s  %-6s  %s, %s, %s\n",
			d, dates.Label(d, now), names.Articles, names.HFPapers, names.ArxivPapers)
	}
}
