package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallshift/internal/history"
	"wallshift/internal/ui"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recently shown wallpapers, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, err := history.Load(cfg.History.Path)
		if err != nil {
			return err
		}

		limit := historyLimit
		if limit <= 0 || limit > log.Len() {
			limit = log.Len()
		}

		styles := ui.DefaultStyles()
		for i := 0; i < limit; i++ {
			marker := " "
			if i == 0 {
				marker = styles.Primary.Render("*")
			}
			fmt.Printf("%s %s\n", marker, log.Current())
			if !log.Prev() {
				break
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show at most n entries (default all)")
	rootCmd.AddCommand(historyCmd)
}
