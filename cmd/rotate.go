package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"wallshift/internal/rotate"
	"wallshift/internal/ui"
)

var (
	rotateDir     string
	rotateDryRun  bool
	rotateHour    int
	rotateNoCache bool
)

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Pick a wallpaper for the current hour and apply it",
	Long: `Scans the wallpaper library, refreshes the EXIF hour cache, and picks
a photo whose capture hour is closest to now. Photos shown recently are
skipped until the whole pool has cycled.

Examples:
  wallshift rotate
  wallshift rotate --dry-run
  wallshift rotate --hour 6         # pretend it is 6am
  wallshift rotate --dir ~/photos`,
	Args: cobra.NoArgs,
	RunE: runRotate,
}

func init() {
	rotateCmd.Flags().StringVar(&rotateDir, "dir", "", "Override the wallpaper library directory")
	rotateCmd.Flags().BoolVar(&rotateDryRun, "dry-run", false, "Select a wallpaper without applying it")
	rotateCmd.Flags().IntVar(&rotateHour, "hour", -1, "Override the current hour (0-23)")
	rotateCmd.Flags().BoolVar(&rotateNoCache, "no-cache", false, "Bypass the EXIF hour cache")

	rootCmd.AddCommand(rotateCmd)
}

func runRotate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if rotateDir != "" {
		cfg.Library.Dir = rotateDir
	}

	hour := rotateHour
	if hour < 0 || hour > 23 {
		hour = time.Now().Hour()
	}

	res, err := rotate.Run(cfg, rotate.Options{
		Hour:    hour,
		DryRun:  rotateDryRun,
		NoCache: rotateNoCache,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	})
	if err != nil {
		if rotate.IsNoCandidates(err) {
			return fmt.Errorf("no wallpapers found: %w", err)
		}
		return err
	}

	styles := ui.DefaultStyles()
	hourText := "no capture hour"
	if res.Hour != nil {
		hourText = fmt.Sprintf("shot at %02d:00, distance %d", *res.Hour, res.Distance)
	}
	action := "Applied"
	if rotateDryRun {
		action = "Would apply"
	}
	fmt.Printf("%s %s %s\n", styles.Muted.Render(action),
		styles.Primary.Render(res.Path), styles.Muted.Render("("+hourText+")"))
	return nil
}
