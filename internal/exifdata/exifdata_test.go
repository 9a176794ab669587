package exifdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseHour(t *testing.T) {
	cases := []struct {
		in   string
		want *int
	}{
		{"2024:03:14 17:32:05", hourPtr(17)},
		{"2024:03:14 00:00:00", hourPtr(0)},
		{"2024:03:14 23:59:59", hourPtr(23)},
		{"2024:03:14 99:00:00", nil},
		{"2024:03:14", nil},
		{"", nil},
		{"2024:03:14 xx:00:00", nil},
	}
	for _, c := range cases {
		got := parseHour(c.in)
		switch {
		case c.want == nil && got != nil:
			t.Errorf("parseHour(%q) = %d, want nil", c.in, *got)
		case c.want != nil && got == nil:
			t.Errorf("parseHour(%q) = nil, want %d", c.in, *c.want)
		case c.want != nil && got != nil && *got != *c.want:
			t.Errorf("parseHour(%q) = %d, want %d", c.in, *got, *c.want)
		}
	}
}

func hourPtr(h int) *int { return &h }

func TestFormatDateTime(t *testing.T) {
	if got := formatDateTime("2024:03:14 17:32:05"); got != "March 14, 2024 at 17:32" {
		t.Errorf("formatDateTime = %q", got)
	}
	// unparseable timestamps come back verbatim
	if got := formatDateTime("not a date"); got != "not a date" {
		t.Errorf("formatDateTime fallback = %q", got)
	}
}

func TestJoinCamera(t *testing.T) {
	cases := []struct {
		make, model, want string
	}{
		{"Canon", "Canon EOS R5", "Canon EOS R5"},
		{"SONY", "ILCE-7M4", "SONY ILCE-7M4"},
		{"", "X100V", "X100V"},
		{"Leica", "", "Leica"},
		{"", "", ""},
		{" NIKON ", " NIKON Z6 ", "NIKON Z6"},
	}
	for _, c := range cases {
		if got := joinCamera(c.make, c.model); got != c.want {
			t.Errorf("joinCamera(%q, %q) = %q, want %q", c.make, c.model, got, c.want)
		}
	}
}

func TestFormatCoordinates(t *testing.T) {
	got := FormatCoordinates(60.3868, 5.33)
	if !strings.HasSuffix(got, "E") || !strings.Contains(got, "N ") {
		t.Errorf("hemisphere markers wrong: %q", got)
	}
	if !strings.HasPrefix(got, "60°23'") {
		t.Errorf("latitude DMS wrong: %q", got)
	}

	south := FormatCoordinates(-33.8568, -151.2153)
	if !strings.Contains(south, "S ") || !strings.HasSuffix(south, "W") {
		t.Errorf("negative coordinates should read S/W: %q", south)
	}
	if strings.Contains(south, "-") {
		t.Errorf("DMS form should not carry a sign: %q", south)
	}
}

func TestMapsURL(t *testing.T) {
	lat, lon := 60.3868, 5.33
	info := Info{Latitude: &lat, Longitude: &lon}
	if got := info.MapsURL(); got != "https://maps.google.com/?q=60.386800,5.330000" {
		t.Errorf("MapsURL = %q", got)
	}

	var empty Info
	if empty.HasGPS() || empty.MapsURL() != "" {
		t.Error("GPS-less info should have no maps link")
	}
}

func TestExtractHourNoExif(t *testing.T) {
	// A file that is not a valid JPEG has no capture hour.
	path := filepath.Join(t.TempDir(), "junk.jpg")
	if err := os.WriteFile(path, []byte("not a jpeg"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if h := ExtractHour(path); h != nil {
		t.Errorf("hour = %d for junk file, want nil", *h)
	}
	if h := ExtractHour(filepath.Join(t.TempDir(), "missing.jpg")); h != nil {
		t.Errorf("hour = %d for missing file, want nil", *h)
	}
}

func TestExtractNoExif(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.jpg")
	if err := os.WriteFile(path, []byte("not a jpeg"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	info := Extract(path)
	if info.DateTime != "" || info.Camera != "" || info.Hour != nil || info.HasGPS() {
		t.Errorf("expected zero info for junk file, got %+v", info)
	}
}
