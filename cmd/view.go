package cmd

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"wallshift/internal/termimg"
	"wallshift/internal/ui"
	"wallshift/internal/viewer"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse shown wallpapers with inline images and EXIF data",
	Long: `Opens an interactive viewer over the wallpaper history: the photo is
rendered inline via the kitty graphics protocol with its capture time,
location, and camera settings underneath.

Keybindings:
  q, Esc       quit
  arrows/hjkl  previous / next wallpaper
  m            open capture location in Google Maps
  c            copy GPS coordinates to the clipboard`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !termimg.Supported() && !termimg.ItermSupported() {
		return fmt.Errorf("terminal does not support inline images (try kitty, ghostty, or iTerm2)")
	}
	if termenv.ColorProfile() != termenv.TrueColor {
		styles := ui.NewStyles(os.Stderr)
		fmt.Fprintln(os.Stderr, styles.Muted.Render("note: terminal did not report truecolor; panel colors may be off"))
	}

	return viewer.Run(cfg)
}
