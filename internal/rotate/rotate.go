// Package rotate drives a single batch run: scan the library, refresh the
// hour cache, pick a wallpaper for the current hour and apply it.
package rotate

import (
	"errors"
	"math/rand"
	"path/filepath"
	"runtime"
	"sync"

	"k8s.io/klog/v2"

	"wallshift/internal/config"
	"wallshift/internal/exifdata"
	"wallshift/internal/history"
	"wallshift/internal/hourcache"
	"wallshift/internal/library"
	"wallshift/internal/selector"
	"wallshift/internal/setter"
)

// Options parameterizes one rotation run.
type Options struct {
	Hour    int  // current hour of day, 0-23
	DryRun  bool // select but do not log or apply
	NoCache bool // bypass the hour cache entirely
	Rand    *rand.Rand
}

// Run performs a full rotation and returns what was selected.
func Run(cfg *config.Config, opts Options) (selector.Result, error) {
	files, err := library.Scan(cfg.Library.Dir)
	if err != nil {
		return selector.Result{}, err
	}
	klog.Infof("found %d images under %s", len(files), cfg.Library.Dir)

	recent := history.Recent(cfg.History.Path, cfg.History.Size)
	eligible := excludeRecent(files, recent)
	if len(eligible) == 0 && len(files) > 0 {
		klog.Infof("all %d images shown recently, resetting pool", len(files))
		eligible = files
	}
	klog.V(1).Infof("%d images eligible after history filter", len(eligible))

	hours := resolveHours(cfg, files, eligible, opts.NoCache)

	candidates := make([]selector.Candidate, len(eligible))
	for i, f := range eligible {
		candidates[i] = selector.Candidate{Path: f.Path, Hour: hours[f.Path]}
	}

	res, err := selector.Select(candidates, opts.Hour, cfg.Select.Window, opts.Rand)
	if err != nil {
		return res, err
	}

	switch {
	case res.Window:
		klog.Infof("selected %s from the hour window (distance %d)", res.Path, res.Distance)
	case res.Random:
		klog.Infof("selected %s at random (no capture hours known)", res.Path)
	default:
		klog.Infof("selected %s as best hour match (distance %d)", res.Path, res.Distance)
	}

	if opts.DryRun {
		return res, nil
	}

	if err := history.Append(cfg.History.Path, filepath.Base(res.Path)); err != nil {
		klog.Warningf("history append failed: %v", err)
	}
	setter.Apply(cfg.Setter, res.Path)
	return res, nil
}

func excludeRecent(files []library.ImageFile, recent map[string]bool) []library.ImageFile {
	eligible := make([]library.ImageFile, 0, len(files))
	for _, f := range files {
		if !recent[filepath.Base(f.Path)] {
			eligible = append(eligible, f)
		}
	}
	return eligible
}

// resolveHours returns the capture hour for every eligible photo, using the
// cache where possible. When the store is unavailable the whole pool is
// extracted directly; that degradation is logged, never fatal.
func resolveHours(cfg *config.Config, all, eligible []library.ImageFile, noCache bool) map[string]*int {
	if noCache {
		return extractHours(eligible)
	}

	store, err := hourcache.Open(cfg.Cache.Path)
	if err != nil {
		klog.Warningf("cache error, falling back to direct EXIF parsing: %v", err)
		return extractHours(eligible)
	}
	defer store.Close()

	cached, err := store.LoadAll()
	if err != nil {
		klog.Warningf("cache error, falling back to direct EXIF parsing: %v", err)
		return extractHours(eligible)
	}
	klog.V(1).Infof("loaded %d cache entries", len(cached))

	// Misses are computed over the whole scan, not just the eligible subset,
	// so the cache converges even while the history filter is active.
	var misses []library.ImageFile
	for _, f := range all {
		if entry, ok := cached[f.Path]; !ok || entry.MTime != f.MTime {
			misses = append(misses, f)
		}
	}
	klog.Infof("cache hit %d, parsing %d", len(all)-len(misses), len(misses))

	fresh := extractHours(misses)

	// Single-writer mutation phase: both transactions run after the parallel
	// extraction completes. A failure here only loses the cache update; the
	// in-memory results still feed selection.
	if len(misses) > 0 {
		updates := make([]hourcache.Update, 0, len(misses))
		for _, f := range misses {
			updates = append(updates, hourcache.Update{Path: f.Path, MTime: f.MTime, Hour: fresh[f.Path]})
		}
		if err := store.Upsert(updates); err != nil {
			klog.Warningf("cache upsert failed: %v", err)
		}
	}
	current := make(map[string]bool, len(all))
	for _, f := range all {
		current[f.Path] = true
	}
	if err := store.Prune(current); err != nil {
		klog.Warningf("cache prune failed: %v", err)
	}

	hours := make(map[string]*int, len(eligible))
	for _, f := range eligible {
		if h, ok := fresh[f.Path]; ok {
			hours[f.Path] = h
		} else if entry, ok := cached[f.Path]; ok {
			hours[f.Path] = entry.Hour
		}
	}
	return hours
}

// extractHours decodes capture hours with a worker pool sized to the CPU
// count. Workers share nothing; an unreadable photo just yields a nil hour.
func extractHours(files []library.ImageFile) map[string]*int {
	if len(files) == 0 {
		return map[string]*int{}
	}

	type result struct {
		path string
		hour *int
	}

	jobs := make(chan string)
	results := make(chan result, len(files))

	workers := runtime.NumCPU()
	if workers > len(files) {
		workers = len(files)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- result{path: path, hour: exifdata.ExtractHour(path)}
			}
		}()
	}

	for _, f := range files {
		jobs <- f.Path
	}
	close(jobs)
	wg.Wait()
	close(results)

	hours := make(map[string]*int, len(files))
	for r := range results {
		hours[r.path] = r.hour
	}
	return hours
}

// IsNoCandidates reports whether err is the empty-pool failure, which
// callers treat as fatal for the run.
func IsNoCandidates(err error) bool {
	return errors.Is(err, selector.ErrNoCandidates)
}
