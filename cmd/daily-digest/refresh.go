// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Clear the cache and reload a day",
	Long: `Refresh discards the cached snapshot, fetches the three files of the
selected day again, and writes the result back to the cache.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		s, err := openSession(cfg, diagWriter(cmd))
		if err != nil {
			return err
		}
		defer s.close()

		v, err := s.view(cmd.Context(), viewOptionsFromFlags(cmd), time.Now(), true)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reloaded %s: %d papers, %d articles\n",
			v.Date, v.Counts.Papers(), v.Counts.Articles)
		return nil
	},
}

func init() {
	addSelectionFlags(refreshCmd)
	rootCmd.AddCommand(refreshCmd)
}
