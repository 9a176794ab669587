package termimg

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/sys/unix"
)

// Geometry is the terminal's reported size in cells and the derived pixel
// size of one cell.
type Geometry struct {
	Cols       int
	Rows       int
	CellWidth  float64 // pixels per cell, horizontal
	CellHeight float64 // pixels per cell, vertical
}

// Fallback cell size when the terminal does not report pixel dimensions.
// 10x20 matches the common monospace aspect ratio.
const (
	fallbackCellWidth  = 10.0
	fallbackCellHeight = 20.0
)

// Detect queries the terminal on fd for its window size. Missing pixel
// reports fall back to an assumed cell size; a failed ioctl falls back to
// 80x24 entirely.
func Detect(fd int) Geometry {
	geo := Geometry{
		Cols:       80,
		Rows:       24,
		CellWidth:  fallbackCellWidth,
		CellHeight: fallbackCellHeight,
	}

	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return geo
	}
	if ws.Col > 0 {
		geo.Cols = int(ws.Col)
	}
	if ws.Row > 0 {
		geo.Rows = int(ws.Row)
	}
	if ws.Xpixel > 0 && ws.Col > 0 {
		geo.CellWidth = float64(ws.Xpixel) / float64(ws.Col)
	}
	if ws.Ypixel > 0 && ws.Row > 0 {
		geo.CellHeight = float64(ws.Ypixel) / float64(ws.Row)
	}
	return geo
}

// Frame is the placement of one image on the terminal grid: the pixel size
// it should be resized to, its footprint in cells, and the 1-based cell
// position that centers it in the image area above the info panel.
type Frame struct {
	PixelWidth  int
	PixelHeight int
	Cols        int
	Rows        int
	Col         int
	Row         int
}

// Fit computes the frame for an imgW x imgH image, preserving aspect ratio
// and never exceeding the available columns or the rows left above a
// panelHeight-row panel.
func Fit(imgW, imgH int, geo Geometry, panelHeight int) Frame {
	areaRows := geo.Rows - panelHeight - 1
	if areaRows < 1 {
		areaRows = 1
	}

	scale := math.Min(
		float64(geo.Cols)*geo.CellWidth/float64(imgW),
		float64(areaRows)*geo.CellHeight/float64(imgH),
	)

	f := Frame{
		PixelWidth:  int(float64(imgW) * scale),
		PixelHeight: int(float64(imgH) * scale),
	}
	if f.PixelWidth < 1 {
		f.PixelWidth = 1
	}
	if f.PixelHeight < 1 {
		f.PixelHeight = 1
	}

	f.Cols = int(math.Ceil(float64(f.PixelWidth) / geo.CellWidth))
	f.Rows = int(math.Ceil(float64(f.PixelHeight) / geo.CellHeight))
	f.Col = (geo.Cols-f.Cols)/2 + 1
	f.Row = (areaRows-f.Rows)/2 + 1
	if f.Col < 1 {
		f.Col = 1
	}
	if f.Row < 1 {
		f.Row = 1
	}
	return f
}

// Resize scales img to the frame's pixel size with a high-quality filter.
func Resize(img image.Image, f Frame) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, f.PixelWidth, f.PixelHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
