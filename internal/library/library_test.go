package library

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"))
	writeFile(t, filepath.Join(dir, "b.JPEG"))
	writeFile(t, filepath.Join(dir, "sub", "deep", "c.jpeg"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "d.png"))

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("found %d files, want 3: %+v", len(files), files)
	}

	byBase := map[string]ImageFile{}
	for _, f := range files {
		byBase[filepath.Base(f.Path)] = f
		if f.MTime == 0 {
			t.Errorf("%s has no mtime", f.Path)
		}
	}
	for _, want := range []string{"a.jpg", "b.JPEG", "c.jpeg"} {
		if _, ok := byBase[want]; !ok {
			t.Errorf("scan missed %s", want)
		}
	}
}

func TestScanEmptyDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("found %d files in empty dir", len(files))
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error scanning a missing directory")
	}
}

func TestFindByBasename(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sub", "sunset.jpg")
	writeFile(t, filepath.Join(dir, "other.jpg"))
	writeFile(t, target)

	if got := FindByBasename(dir, "sunset.jpg"); got != target {
		t.Errorf("found %q, want %q", got, target)
	}
	if got := FindByBasename(dir, "absent.jpg"); got != "" {
		t.Errorf("found %q for an absent basename", got)
	}
}

func TestIsJPEG(t *testing.T) {
	for _, p := range []string{"x.jpg", "x.JPG", "x.jpeg", "a/b/x.JpEg"} {
		if !isJPEG(p) {
			t.Errorf("isJPEG(%q) = false", p)
		}
	}
	for _, p := range []string{"x.png", "x.txt", "jpg", "x"} {
		if isJPEG(p) {
			t.Errorf("isJPEG(%q) = true", p)
		}
	}
}
