// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/daily-digest/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a day's digest to YAML or JSON",
	Long: `Export writes the filtered, merged and ranked digest of one day to
<dir>/digest_<date>.yaml or .json. Supports the same date and filter flags
as show.`,
	RunE: runExport,
}

func init() {
	addSelectionFlags(exportCmd)
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("dir", ".", "output directory")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}
	dir, _ := cmd.Flags().GetString("dir")

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	s, err := openSession(cfg, diagWriter(cmd))
	if err != nil {
		return err
	}
	defer s.close()

	v, err := s.view(cmd.Context(), viewOptionsFromFlags(cmd), time.Now(), false)
	if err != nil {
		return err
	}
	path, err := export.WriteFile(v, dir, format)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}
