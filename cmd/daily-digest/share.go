// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/daily-digest/internal/digest"
)

var shareCmd = &cobra.Command{
	Use:   "share <rank>",
	Short: "Print the share text of one paper or article",
	Long: `Share prints the title, link and summary of the record at the given
rank (as numbered by show, starting at 1) in a form ready to paste. Use
--article to pick from the article list instead of the papers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rank, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid rank %q: %w", args[0], err)
		}
		article, _ := cmd.Flags().GetBool("article")

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
		text, err := shareText(v, rank, article)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	addSelectionFlags(shareCmd)
	shareCmd.Flags().Bool("article", false, "share an article instead of a paper")
	rootCmd.AddCommand(shareCmd)
}

// shareText returns the share text of the record at 1-based rank.
func shareText(v digest.View, rank int, article bool) (string, error) {
	if article {
		if rank < 1 || rank > len(v.Articles) {
			return "", fmt.Errorf("article rank %d out of range (1-%d)", rank, len(v.Articles))
		}
		return digest.ShareArticle(v.Articles[rank-1]), nil
	}
	if rank < 1 || rank > len(v.Papers) {
		return "", fmt.Errorf("paper rank %d out of range (1-%d)", rank, len(v.Papers))
	}
	return digest.SharePaper(v.Papers[rank-1]), nil
}
