// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/daily-digest/internal/digest"
	"github.com/pdiddy/daily-digest/internal/export"
	"github.com/pdiddy/daily-digest/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the digest of one day",
	Long: `Show loads the selected day (today unless --date is given), using the
local cache when it holds a fresh copy of that day, filters it by field and
institution, and prints the papers merged across Hugging Face and ArXiv and
ranked by popularity, followed by the WeChat articles.

A paper listed by both sources is shown once, as its Hugging Face record.`,
	RunE: runShow,
}

func init() {
	addSelectionFlags(showCmd)
	showCmd.Flags().Bool("json", false, "output the digest as JSON")
	showCmd.Flags().Bool("yaml", false, "output the digest as YAML")
	showCmd.Flags().Bool("list-options", false, "list the predefined fields and institutions and exit")

	rootCmd.AddCommand(showCmd)
}

// addSelectionFlags registers the date and filter flags shared by the
// subcommands that present a day.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "day to load (YYYY-MM-DD, default today)")
	cmd.Flags().StringSlice("field", nil, "only records in these fields (repeatable or comma-separated, \"all\" for every field)")
	cmd.Flags().StringSlice("institution", nil, "only records from these institutions (repeatable or comma-separated)")
}

// viewOptions are the parsed selection flags.
type viewOptions struct {
	date         string
	fields       []string
	institutions []string
}

func viewOptionsFromFlags(cmd *cobra.Command) viewOptions {
	date, _ := cmd.Flags().GetString("date")
	fields, _ := cmd.Flags().GetStringSlice("field")
	institutions, _ := cmd.Flags().GetStringSlice("institution")
	return viewOptions{date: date, fields: fields, institutions: institutions}
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if list, _ := cmd.Flags().GetBool("list-options"); list {
		listOptions(cfg, out)
		return nil
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	if jsonOutput && yamlOutput {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
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

	switch {
	case jsonOutput:
		return digest.FormatJSON(v, out)
	case yamlOutput:
		return export.Encode(out, export.NewDocument(v), export.YAML)
	}
	digest.FormatTable(v, out)
	return nil
}

// view loads the requested day and builds its view. reload bypasses the
// cache.
func (s *session) view(ctx context.Context, opts viewOptions, now time.Time, reload bool) (digest.View, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	date, err := resolveDate(opts.date, now)
	if err != nil {
		return digest.View{}, err
	}

	load := s.loader.Load
	if reload {
		load = s.loader.Reload
	}
	snap, _, err := load(ctx, date)
	if err != nil {
		return digest.View{}, fmt.Errorf("loading %s: %w", date, err)
	}
	return digest.BuildView(snap, s.selection(date, opts.fields, opts.institutions)), nil
}

func listOptions(cfg types.DigestConfig, w io.Writer) {
	fields := cfg.Fields
	if len(fields) == 0 {
		fields = types.PredefinedFields
	}
	institutions := cfg.Institutions
	if len(institutions) == 0 {
		institutions = types.PredefinedInstitutions
	}
	fmt.Fprintf(w, "Fields:       %s\n", strings.Join(fields, ", "))
	fmt.Fprintf(w, "Institutions: %s\n", strings.Join(institutions, ", "))
}
