package cmd

import (
	goflag "flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"wallshift/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "wallshift",
	Short: "Rotate wallpapers by time of day",
	Long: `wallshift picks a wallpaper whose EXIF capture hour matches the
current time of day, so morning photos show in the morning and night shots
after dark.

Examples:
  wallshift rotate                  # pick and apply a wallpaper
  wallshift rotate --dry-run        # show what would be picked
  wallshift view                    # browse shown wallpapers inline
  wallshift cache status            # inspect the EXIF hour cache`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	klog.InitFlags(goflag.CommandLine)
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
}

func Execute() {
	defer klog.Flush()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load()
}
