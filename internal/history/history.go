// Package history tracks which wallpapers were recently shown, as an
// append-only newline-delimited log of basenames, oldest first.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrEmpty is returned when the log has no entries to navigate.
var ErrEmpty = errors.New("wallpaper history is empty")

// Append records a shown wallpaper basename at the end of the log.
func Append(path, basename string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, basename); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// Recent returns the basenames on the last n log lines as a membership set.
// Duplicate lines count against the window, so a wallpaper logged more than
// n lines ago ages out even if shown repeatedly since. A missing or
// unreadable log is an empty window, not an error.
func Recent(path string, n int) map[string]bool {
	lines, err := readLines(path)
	if err != nil {
		return map[string]bool{}
	}
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}

	recent := make(map[string]bool, len(lines))
	for _, line := range lines {
		recent[line] = true
	}
	return recent
}

// Log is the full history as a navigable sequence, used by the viewer.
// The cursor starts on the most recent entry.
type Log struct {
	entries []string
	index   int
}

// Load reads the whole history log.
func Load(path string) (*Log, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, fmt.Errorf("read history log: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmpty
	}
	return &Log{entries: lines, index: len(lines) - 1}, nil
}

// Current returns the basename under the cursor.
func (l *Log) Current() string {
	return l.entries[l.index]
}

// Prev moves the cursor one entry back; reports whether it moved.
func (l *Log) Prev() bool {
	if l.index == 0 {
		return false
	}
	l.index--
	return true
}

// Next moves the cursor one entry forward; reports whether it moved.
func (l *Log) Next() bool {
	if l.index >= len(l.entries)-1 {
		return false
	}
	l.index++
	return true
}

// Position renders the cursor location as "3/25" for the panel.
func (l *Log) Position() string {
	return fmt.Sprintf("%d/%d", l.index+1, len(l.entries))
}

// Len returns the number of logged entries.
func (l *Log) Len() int {
	return len(l.entries)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
