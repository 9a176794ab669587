// Package setter hands the selected wallpaper to the configured external
// commands. Failures here are logged and swallowed: a selection that could
// not be applied is still a valid selection.
package setter

import (
	"os/exec"
	"strings"

	"k8s.io/klog/v2"

	"wallshift/internal/config"
)

// Apply runs the setter command with path substituted, then the post-resync
// commands. Returns nothing: downstream failures never propagate.
func Apply(cfg config.SetterConfig, path string) {
	if len(cfg.Command) > 0 {
		run(substitute(cfg.Command, path))
	}
	for _, post := range cfg.Post {
		if len(post) > 0 {
			run(substitute(post, path))
		}
	}
}

// substitute replaces "{}" in each argument with the wallpaper path. When no
// argument contains the placeholder, the path is appended.
func substitute(argv []string, path string) []string {
	out := make([]string, len(argv))
	replaced := false
	for i, a := range argv {
		if strings.Contains(a, "{}") {
			out[i] = strings.ReplaceAll(a, "{}", path)
			replaced = true
		} else {
			out[i] = a
		}
	}
	if !replaced {
		out = append(out, path)
	}
	return out
}

func run(argv []string) {
	cmd := exec.Command(argv[0], argv[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		klog.Warningf("setter command %q failed: %v (%s)", argv[0], err, strings.TrimSpace(string(out)))
		return
	}
	klog.V(1).Infof("ran %v", argv)
}
