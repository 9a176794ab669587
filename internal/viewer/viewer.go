// Package viewer is the interactive terminal photo browser: it renders the
// current wallpaper inline via kitty graphics with an EXIF info panel
// underneath, and navigates the shown-wallpaper history.
package viewer

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/exec"

	"golang.org/x/term"
	_ "golang.org/x/image/webp"

	"wallshift/internal/clipboard"
	"wallshift/internal/config"
	"wallshift/internal/exifdata"
	"wallshift/internal/history"
	"wallshift/internal/library"
	"wallshift/internal/palette"
	"wallshift/internal/signal"
	"wallshift/internal/termimg"
)

// ErrNotFound is returned when a history entry no longer exists on disk.
var ErrNotFound = errors.New("wallpaper not found in library")

// key is a decoded keyboard event.
type key int

const (
	keyNone key = iota
	keyQuit
	keyPrev
	keyNext
	keyMaps
	keyCopy
)

// Run enters the viewer loop. It owns the terminal until the user quits:
// raw mode, alternate screen, and kitty graphics state are all restored on
// exit.
func Run(cfg *config.Config) error {
	log, err := history.Load(cfg.History.Path)
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	out := bufio.NewWriter(os.Stdout)
	renderer := termimg.NewRenderer(out)

	fmt.Fprint(out, "\x1b[?1049h\x1b[?25l") // alternate screen, hide cursor
	defer func() {
		renderer.Clear()
		fmt.Fprint(out, "\x1b[0m\x1b[?25h\x1b[?1049l")
		out.Flush()
	}()

	v := &viewer{cfg: cfg, log: log, out: out, renderer: renderer}
	if err := v.show(); err != nil {
		return err
	}

	keys := make(chan key)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 8)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				readErr <- err
				return
			}
			keys <- decodeKey(buf[:n])
		}
	}()

	winch, stopWinch := signal.NotifyResize()
	defer stopWinch()

	for {
		select {
		case err := <-readErr:
			return err
		case <-winch:
			if err := v.show(); err != nil {
				return err
			}
		case k := <-keys:
			switch k {
			case keyQuit:
				return nil
			case keyPrev:
				if v.log.Prev() {
					if err := v.show(); err != nil {
						return err
					}
				}
			case keyNext:
				if v.log.Next() {
					if err := v.show(); err != nil {
						return err
					}
				}
			case keyMaps:
				if url := v.info.MapsURL(); url != "" {
					openURL(url)
				}
			case keyCopy:
				if v.info.HasGPS() {
					text := fmt.Sprintf("%.6f, %.6f", *v.info.Latitude, *v.info.Longitude)
					_ = clipboard.WriteText(text)
				}
			}
		}
	}
}

// decodeKey maps a raw-mode read to a viewer command. Arrow keys arrive as
// a single 3-byte CSI read; a bare ESC as one byte.
func decodeKey(b []byte) key {
	if len(b) == 3 && b[0] == 0x1b && b[1] == '[' {
		switch b[2] {
		case 'A', 'D': // up, left
			return keyPrev
		case 'B', 'C': // down, right
			return keyNext
		}
		return keyNone
	}
	if len(b) != 1 {
		return keyNone
	}
	switch b[0] {
	case 'q', 0x1b, 0x03: // q, Esc, Ctrl-C
		return keyQuit
	case 'h', 'k':
		return keyPrev
	case 'l', 'j':
		return keyNext
	case 'm':
		return keyMaps
	case 'c':
		return keyCopy
	}
	return keyNone
}

type viewer struct {
	cfg      *config.Config
	log      *history.Log
	out      *bufio.Writer
	renderer *termimg.Renderer
	info     exifdata.Info
}

// show renders the photo under the history cursor: decode, derive the
// palette, fit and draw the image, then compose the panel. One flush at the
// end so the redraw lands atomically.
func (v *viewer) show() error {
	basename := v.log.Current()
	path := library.FindByBasename(v.cfg.Library.Dir, basename)
	if path == "" {
		return fmt.Errorf("%w: %s", ErrNotFound, basename)
	}

	v.info = exifdata.Extract(path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	var size int64
	if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}

	pal := palette.Extract(img)
	geo := termimg.Detect(int(os.Stdout.Fd()))
	frame := termimg.Fit(img.Bounds().Dx(), img.Bounds().Dy(), geo, v.cfg.Viewer.PanelHeight)

	fmt.Fprintf(v.out, "%s\x1b[2J\x1b[H", pal.Background.BG())

	if err := v.renderer.Draw(termimg.Resize(img, frame), frame); err != nil {
		return err
	}

	renderPanel(v.out, panelData{
		Filename: basename,
		Position: v.log.Position(),
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
		FileSize: size,
		Info:     &v.info,
	}, pal, geo, v.cfg.Viewer.PanelHeight)

	return v.out.Flush()
}

func openURL(url string) {
	cmd := exec.Command("xdg-open", url)
	cmd.Stdout = nil
	cmd.Stderr = nil
	_ = cmd.Start()
}
