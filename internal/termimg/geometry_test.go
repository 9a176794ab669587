package termimg

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectFallbackOnNonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	defer f.Close()

	geo := Detect(int(f.Fd()))
	if geo.Cols != 80 || geo.Rows != 24 {
		t.Errorf("fallback geometry = %dx%d, want 80x24", geo.Cols, geo.Rows)
	}
	if geo.CellWidth != fallbackCellWidth || geo.CellHeight != fallbackCellHeight {
		t.Errorf("fallback cell size = %fx%f", geo.CellWidth, geo.CellHeight)
	}
}

func testGeometry() Geometry {
	return Geometry{Cols: 100, Rows: 50, CellWidth: 10, CellHeight: 20}
}

func TestFitWideImage(t *testing.T) {
	// 100 cols * 10px = 1000px wide, 37 rows * 20px = 740px tall above a
	// 12-row panel. A 2000x1000 image is width-bound: scale 0.5.
	f := Fit(2000, 1000, testGeometry(), 12)

	if f.PixelWidth != 1000 || f.PixelHeight != 500 {
		t.Errorf("pixel size = %dx%d, want 1000x500", f.PixelWidth, f.PixelHeight)
	}
	if f.Cols != 100 || f.Rows != 25 {
		t.Errorf("cell footprint = %dx%d, want 100x25", f.Cols, f.Rows)
	}
	if f.Col != 1 {
		t.Errorf("col = %d, want 1 (full width)", f.Col)
	}
	if f.Row != 7 { // (37-25)/2 + 1
		t.Errorf("row = %d, want 7 (vertically centered)", f.Row)
	}
}

func TestFitTallImage(t *testing.T) {
	// Height-bound: 740px available for a 1000px-tall image, scale 0.74.
	f := Fit(500, 1000, testGeometry(), 12)

	if f.PixelHeight != 740 {
		t.Errorf("pixel height = %d, want 740", f.PixelHeight)
	}
	if f.PixelWidth != 370 {
		t.Errorf("pixel width = %d, want 370", f.PixelWidth)
	}
	if f.Rows != 37 {
		t.Errorf("rows = %d, want 37", f.Rows)
	}
	if f.Col != 32 { // (100-37)/2 + 1
		t.Errorf("col = %d, want 32", f.Col)
	}
	if f.Row != 1 {
		t.Errorf("row = %d, want 1", f.Row)
	}
}

func TestFitPreservesAspectRatio(t *testing.T) {
	f := Fit(3000, 2000, testGeometry(), 12)
	gotRatio := float64(f.PixelWidth) / float64(f.PixelHeight)
	wantRatio := 1.5
	if gotRatio < wantRatio-0.01 || gotRatio > wantRatio+0.01 {
		t.Errorf("aspect ratio drifted: %f, want %f", gotRatio, wantRatio)
	}
}

func TestFitTinyTerminal(t *testing.T) {
	// Panel taller than the screen still yields a usable one-row frame.
	geo := Geometry{Cols: 10, Rows: 5, CellWidth: 10, CellHeight: 20}
	f := Fit(4000, 3000, geo, 12)

	if f.PixelWidth < 1 || f.PixelHeight < 1 {
		t.Errorf("degenerate pixel size %dx%d", f.PixelWidth, f.PixelHeight)
	}
	if f.Col < 1 || f.Row < 1 {
		t.Errorf("off-screen origin %d,%d", f.Col, f.Row)
	}
}

func TestResize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = 200
		src.Pix[i+3] = 255
	}

	dst := Resize(src, Frame{PixelWidth: 10, PixelHeight: 10})
	if dst.Bounds().Dx() != 10 || dst.Bounds().Dy() != 10 {
		t.Fatalf("resized bounds = %v, want 10x10", dst.Bounds())
	}
	r, _, _, _ := dst.At(5, 5).(color.RGBA).RGBA()
	if r>>8 < 190 || r>>8 > 210 {
		t.Errorf("resampled red channel = %d, want near 200", r>>8)
	}
}
