// Package clipboard writes text to the system clipboard via the usual
// platform utilities.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// WriteText copies text to the system clipboard.
func WriteText(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return pipeTo(text, "pbcopy")
	case "linux":
		return writeTextLinux(text)
	default:
		return fmt.Errorf("clipboard write not supported on %s", runtime.GOOS)
	}
}

func writeTextLinux(text string) error {
	// Try wl-copy first (Wayland)
	if _, err := exec.LookPath("wl-copy"); err == nil {
		if err := pipeTo(text, "wl-copy"); err == nil {
			return nil
		}
	}

	// Fall back to xclip (X11)
	if _, err := exec.LookPath("xclip"); err == nil {
		if err := pipeTo(text, "xclip", "-selection", "clipboard"); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no clipboard utility found (install wl-copy or xclip)")
}

func pipeTo(text, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
