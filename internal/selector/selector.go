// Package selector implements time-of-day wallpaper selection: photos shot
// near the current hour are preferred, with graceful fallbacks when nothing
// matches.
package selector

import (
	"errors"
	"math/rand"
)

// ErrNoCandidates is returned when the candidate pool is empty.
var ErrNoCandidates = errors.New("no wallpaper candidates")

// Candidate is a photo joined with its cache-resolved capture hour.
// Hour is nil when no capture-time tag was found.
type Candidate struct {
	Path string
	Hour *int
}

// HourDistance returns the circular distance between two hours on a 24-hour
// clock, always in [0,12].
func HourDistance(a, b int) int {
	d := (a - b + 24) % 24
	if d > 12 {
		d = 24 - d
	}
	return d
}

// Result describes how a selection was made, for logging.
type Result struct {
	Path     string
	Hour     *int
	Distance int  // circular distance of the chosen photo, -1 when unknown
	Window   bool // chosen uniformly from the time-window set
	Random   bool // chosen uniformly because no candidate had an hour
}

// Select picks one candidate for currentHour:
//
//  1. every candidate within window hours of now: uniform random pick
//  2. otherwise the globally closest hour, ties broken by lowest path
//  3. otherwise (no hours known at all) a uniform random pick
//
// rng is the only source of non-determinism and is injected so tests can
// pin outcomes.
func Select(candidates []Candidate, currentHour, window int, rng *rand.Rand) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrNoCandidates
	}

	var (
		windowMatches []Candidate
		best          *Candidate
		bestDist      = 24
	)

	for i := range candidates {
		c := &candidates[i]
		if c.Hour == nil {
			continue
		}
		d := HourDistance(currentHour, *c.Hour)
		if d <= window {
			windowMatches = append(windowMatches, *c)
		}
		if d < bestDist || (d == bestDist && best != nil && c.Path < best.Path) {
			bestDist = d
			best = c
		}
	}

	if len(windowMatches) > 0 {
		pick := windowMatches[rng.Intn(len(windowMatches))]
		return Result{
			Path:     pick.Path,
			Hour:     pick.Hour,
			Distance: HourDistance(currentHour, *pick.Hour),
			Window:   true,
		}, nil
	}

	if best != nil {
		return Result{Path: best.Path, Hour: best.Hour, Distance: bestDist}, nil
	}

	pick := candidates[rng.Intn(len(candidates))]
	return Result{Path: pick.Path, Distance: -1, Random: true}, nil
}
