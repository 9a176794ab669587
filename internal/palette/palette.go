// Package palette derives a small color theme from a photo so the viewer's
// panel matches the wallpaper on screen. The heuristics are coarse and tuned
// for terminal legibility, not color accuracy.
package palette

import (
	"fmt"
	"image"
	"math"
	"sort"

	"golang.org/x/image/draw"
)

// sampleSize is the grid the photo is shrunk to before counting colors.
// Only coarse statistics are needed, so nearest-neighbor at 64x64 is plenty.
const sampleSize = 64

// RGB is a single 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// FG returns the truecolor foreground escape for this color.
func (c RGB) FG() string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// BG returns the truecolor background escape for this color.
func (c RGB) BG() string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
}

// Luminance is the perceptual brightness in [0,1].
func (c RGB) Luminance() float64 {
	return 0.299*float64(c.R)/255 + 0.587*float64(c.G)/255 + 0.114*float64(c.B)/255
}

// Saturation is (max-min)/max over the channels, 0 for black.
func (c RGB) Saturation() float64 {
	max := maxChannel(c)
	if max == 0 {
		return 0
	}
	return float64(max-minChannel(c)) / float64(max)
}

// Lighten moves each channel toward white by factor.
func (c RGB) Lighten(factor float64) RGB {
	return RGB{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
	}
}

// Darken scales each channel toward black by factor.
func (c RGB) Darken(factor float64) RGB {
	return RGB{
		R: uint8(float64(c.R) * (1 - factor)),
		G: uint8(float64(c.G) * (1 - factor)),
		B: uint8(float64(c.B) * (1 - factor)),
	}
}

// Muted desaturates halfway toward the channel average.
func (c RGB) Muted() RGB {
	gray := (uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3
	return RGB{
		R: uint8((uint32(c.R) + gray) / 2),
		G: uint8((uint32(c.G) + gray) / 2),
		B: uint8((uint32(c.B) + gray) / 2),
	}
}

// Palette is the 5-role theme derived from a photo. Text and Dim are fixed
// legible values regardless of source image.
type Palette struct {
	Accent     RGB
	Secondary  RGB
	Background RGB
	Text       RGB
	Dim        RGB
}

// Fallback colors when the photo offers nothing usable.
var (
	defaultAccent     = RGB{255, 170, 100}
	defaultBackground = RGB{15, 20, 30}
	fixedText         = RGB{230, 235, 240}
	fixedDim          = RGB{140, 145, 155}
)

// Default returns the theme used when no image is available.
func Default() Palette {
	return Palette{
		Accent:     defaultAccent,
		Secondary:  RGB{100, 160, 220},
		Background: RGB{20, 25, 35},
		Text:       fixedText,
		Dim:        fixedDim,
	}
}

// Extract derives the theme from img.
func Extract(img image.Image) Palette {
	ranked := rankedColors(img)

	top := ranked
	if len(top) > 20 {
		top = top[:20]
	}

	accent := pickAccent(top)
	secondary := pickSecondary(top, accent)
	background := pickBackground(ranked)

	// Legibility post-correction: accent and secondary must clear a minimum
	// luminance; an already-bright secondary is muted instead.
	if accent.Luminance() < 0.3 {
		accent = accent.Lighten(0.4)
	}
	if secondary.Luminance() < 0.3 {
		secondary = secondary.Lighten(0.3)
	} else {
		secondary = secondary.Muted()
	}

	return Palette{
		Accent:     accent,
		Secondary:  secondary,
		Background: background,
		Text:       fixedText,
		Dim:        fixedDim,
	}
}

type colorCount struct {
	color RGB
	count int
}

// rankedColors downsamples the image, quantizes each pixel's channels to
// 16-wide buckets and returns the quantized colors by descending frequency.
func rankedColors(img image.Image) []colorCount {
	small := image.NewRGBA(image.Rect(0, 0, sampleSize, sampleSize))
	draw.NearestNeighbor.Scale(small, small.Bounds(), img, img.Bounds(), draw.Src, nil)

	counts := make(map[RGB]int)
	for y := 0; y < sampleSize; y++ {
		for x := 0; x < sampleSize; x++ {
			i := small.PixOffset(x, y)
			key := RGB{
				R: small.Pix[i] / 16 * 16,
				G: small.Pix[i+1] / 16 * 16,
				B: small.Pix[i+2] / 16 * 16,
			}
			counts[key]++
		}
	}

	ranked := make([]colorCount, 0, len(counts))
	for c, n := range counts {
		ranked = append(ranked, colorCount{color: c, count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		// map iteration is unordered; break ties so repeated runs agree
		a, b := ranked[i].color, ranked[j].color
		if a.R != b.R {
			return a.R < b.R
		}
		if a.G != b.G {
			return a.G < b.G
		}
		return a.B < b.B
	})
	return ranked
}

// pickAccent scores the mid-luminance candidates by saturation weighted by
// sqrt(frequency); near-black and near-white are excluded outright.
func pickAccent(top []colorCount) RGB {
	best := defaultAccent
	bestScore := -1.0
	for _, cc := range top {
		lum := cc.color.Luminance()
		if lum <= 0.15 || lum >= 0.85 {
			continue
		}
		score := cc.color.Saturation() * math.Sqrt(float64(cc.count))
		if score > bestScore {
			bestScore = score
			best = cc.color
		}
	}
	return best
}

// pickSecondary takes the first frequent color far enough from the accent
// (Manhattan distance > 100) that is still saturated and not too dark.
func pickSecondary(top []colorCount, accent RGB) RGB {
	for _, cc := range top {
		c := cc.color
		diff := absInt(int(accent.R)-int(c.R)) +
			absInt(int(accent.G)-int(c.G)) +
			absInt(int(accent.B)-int(c.B))
		if diff > 100 && c.Saturation() > 0.2 && c.Luminance() > 0.15 {
			return c
		}
	}
	return accent
}

// pickBackground takes the most frequent dark color, darkened further so the
// image always sits on a near-black field.
func pickBackground(ranked []colorCount) RGB {
	for _, cc := range ranked {
		if cc.color.Luminance() < 0.3 {
			return cc.color.Darken(0.6)
		}
	}
	return defaultBackground
}

func maxChannel(c RGB) uint8 {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	return m
}

func minChannel(c RGB) uint8 {
	m := c.R
	if c.G < m {
		m = c.G
	}
	if c.B < m {
		m = c.B
	}
	return m
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
