// Package library enumerates the wallpaper photo collection.
package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// ImageFile is one photo found on disk during a scan.
type ImageFile struct {
	Path  string
	MTime int64 // unix seconds of last modification
}

// Scan walks dir recursively (following symlinks) and returns every jpeg
// with its modification time. Unreadable entries are skipped, not fatal.
func Scan(dir string) ([]ImageFile, error) {
	found := []ImageFile{}

	err := godirwalk.Walk(dir, &godirwalk.Options{
		FollowSymbolicLinks: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			if !isJPEG(path) {
				return nil
			}
			fi, err := os.Stat(path)
			if err != nil {
				klog.Warningf("stat failure for %s: %v", path, err)
				return nil
			}
			found = append(found, ImageFile{Path: path, MTime: fi.ModTime().Unix()})
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			klog.V(1).Infof("walk error at %s: %v", path, err)
			return godirwalk.SkipNode
		},
		Unsorted: true,
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// FindByBasename locates a photo anywhere under dir by its basename.
// Returns an empty string when no match exists.
func FindByBasename(dir, basename string) string {
	var match string
	_ = godirwalk.Walk(dir, &godirwalk.Options{
		FollowSymbolicLinks: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			if filepath.Base(path) == basename {
				match = path
				return errFound
			}
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			return godirwalk.SkipNode
		},
		Unsorted: true,
	})
	return match
}

// errFound aborts a walk early once the target basename is seen
var errFound = &foundError{}

type foundError struct{}

func (*foundError) Error() string { return "found" }

func isJPEG(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jpg" || ext == ".jpeg"
}
