// Package signal wires process signals into the interactive loops.
package signal

import (
	"os"
	"os/signal"
	"syscall"
)

// NotifyResize delivers SIGWINCH on the returned channel so the viewer can
// redraw when the terminal is resized. The stop function releases the
// subscription.
func NotifyResize() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	return ch, func() { signal.Stop(ch) }
}
