package viewer

import (
	"fmt"
	"io"
	"strings"

	"wallshift/internal/exifdata"
	"wallshift/internal/palette"
	"wallshift/internal/termimg"
)

const colorReset = "\x1b[0m"

// panelData is everything the info panel shows for one photo.
type panelData struct {
	Filename string
	Position string // "3/25" cursor location in the history
	Width    int
	Height   int
	FileSize int64
	Info     *exifdata.Info
}

// renderPanel draws the fixed-height info panel across the bottom of the
// terminal: title row, dimensions, a when/where column and a camera/settings
// column, and a help bar on the last row.
func renderPanel(w io.Writer, d panelData, pal palette.Palette, geo termimg.Geometry, height int) {
	panelStart := geo.Rows - height
	if panelStart < 1 {
		panelStart = 1
	}

	accent := pal.Accent.FG()
	secondary := pal.Secondary.FG()
	dim := pal.Dim.FG()
	text := pal.Text.FG()
	bg := pal.Background.Darken(0.3).BG()

	for row := panelStart; row <= geo.Rows; row++ {
		fmt.Fprintf(w, "\x1b[%d;1H%s%s", row, bg, strings.Repeat(" ", geo.Cols))
	}

	fmt.Fprintf(w, "\x1b[%d;1H%s%s%s", panelStart,
		pal.Accent.Muted().FG(), strings.Repeat("─", geo.Cols), colorReset)

	const left = 3
	row := panelStart + 1

	fmt.Fprintf(w, "\x1b[%d;%dH%s%s%s", row, left, bg, accent,
		truncate(d.Filename, geo.Cols/2))
	pos := fmt.Sprintf("[%s]", d.Position)
	fmt.Fprintf(w, "\x1b[%d;%dH%s%s%s", row, geo.Cols-len(pos)-3, bg, dim, pos)
	row++

	fmt.Fprintf(w, "\x1b[%d;%dH%s%s%dx%d  %s%s%s", row, left, bg, dim,
		d.Width, d.Height, secondary, formatSize(d.FileSize), colorReset)
	row += 2

	col2 := geo.Cols / 2
	info := d.Info

	// left column: when & where
	if info.DateTime != "" {
		fmt.Fprintf(w, "\x1b[%d;%dH%s%s When   %s%s%s", row, left, bg, accent, text, info.DateTime, colorReset)
		row++
	}
	if info.Location != "" {
		fmt.Fprintf(w, "\x1b[%d;%dH%s%s Where  %s%s%s", row, left, bg, accent, text, info.Location, colorReset)
		if info.HasGPS() {
			row++
			fmt.Fprintf(w, "\x1b[%d;%dH%s%s        Press %sm%s for Maps%s", row, left, bg, dim, accent, dim, colorReset)
		}
	}

	// right column: camera & settings
	row = panelStart + 3
	if info.Camera != "" {
		fmt.Fprintf(w, "\x1b[%d;%dH%s%s Camera  %s%s%s", row, col2, bg, secondary, text,
			truncate(info.Camera, geo.Cols/2-10), colorReset)
		row++
	}
	if info.Lens != "" {
		fmt.Fprintf(w, "\x1b[%d;%dH%s%s          %s%s", row, col2, bg, dim,
			truncate(info.Lens, geo.Cols/2-12), colorReset)
		row++
	}

	settings := []string{}
	for _, s := range []string{info.FocalLength, info.Aperture, info.Exposure, info.ISO} {
		if s != "" {
			settings = append(settings, s)
		}
	}
	if len(settings) > 0 {
		fmt.Fprintf(w, "\x1b[%d;%dH%s%s Settings  ", row, col2, bg, secondary)
		for i, s := range settings {
			if i > 0 {
				fmt.Fprintf(w, "%s  ", dim)
			}
			fmt.Fprintf(w, "%s%s", text, s)
		}
		fmt.Fprint(w, colorReset)
	}

	// help bar
	fmt.Fprintf(w, "\x1b[%d;%dH%s %s</>%sNavigate   %sq%sQuit",
		geo.Rows, left, bg, accent, dim, accent, dim)
	if info.HasGPS() {
		fmt.Fprintf(w, "   %sm%sMaps   %sc%sCopy", accent, dim, accent, dim)
	}
	fmt.Fprint(w, colorReset)
}

func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max > 3 {
		return string(runes[:max-3]) + "..."
	}
	return string(runes[:max])
}

func formatSize(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.0f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
