// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the daily-digest CLI. It loads the
// per-day WeChat article, Hugging Face and ArXiv CSV files, caches them
// locally, and prints the filtered, deduplicated, ranked digest.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the daily-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "daily-digest",
	Short: "Browse the daily AI paper and article digest",
	Long: `daily-digest reads three CSV files per day (WeChat articles, Hugging Face
papers, ArXiv papers) from a directory or base URL, caches the parsed day
locally for 30 minutes, and shows the papers merged across sources and
ranked by popularity.

Use show to browse a day, dates to list the available days, refresh to
bypass the cache, export to write a YAML or JSON file, and share to print
the share text of one record.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./daily-digest.yaml or ~/.config/daily-digest/daily-digest.yaml)")
	rootCmd.PersistentFlags().String("source", "", "directory or base URL holding the CSV files")
	rootCmd.PersistentFlags().String("cache", "", "cache database path (\"memory\" disables persistence)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress diagnostics on stderr")

	_ = viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source"))
	_ = viper.BindPFlag("cache.path", rootCmd.PersistentFlags().Lookup("cache"))
}

func initConfig() {
	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("daily-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "daily-digest"))
		}
	}

	viper.SetEnvPrefix("DAILY_DIGEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(diagWriter(rootCmd), "Using config file:", viper.ConfigFileUsed())
	}
}

// diagWriter returns where diagnostics go: stderr, or nowhere with --quiet.
func diagWriter(cmd *cobra.Command) io.Writer {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return io.Discard
	}
	return cmd.ErrOrStderr()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
