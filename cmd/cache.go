package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallshift/internal/hourcache"
	"wallshift/internal/ui"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the EXIF hour cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache entry counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := hourcache.Open(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Stat()
		if err != nil {
			return err
		}

		styles := ui.DefaultStyles()
		fmt.Println(styles.Title.Render("EXIF hour cache"))
		fmt.Printf("  %s %s\n", styles.Muted.Render("path:"), cfg.Cache.Path)
		fmt.Printf("  %s %d\n", styles.Muted.Render("entries:"), stats.Entries)
		fmt.Printf("  %s %d\n", styles.Muted.Render("with capture hour:"), stats.WithHour)
		fmt.Printf("  %s %d\n", styles.Muted.Render("without:"), stats.WithoutHour)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := hourcache.Open(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
