// Package exifdata interprets decoded EXIF tags into the values the rotator
// and viewer care about: the capture hour, camera/exposure details, and GPS
// coordinates. Absent or malformed tags are expected and yield nil fields,
// never errors.
package exifdata

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// exifTimeLayout is the timestamp format EXIF mandates
const exifTimeLayout = "2006:01:02 15:04:05"

// Info holds everything the viewer panel displays for one photo.
type Info struct {
	DateTime    string // human form, e.g. "March 14, 2024 at 17:32"
	DateTimeRaw string // as stored, "YYYY:MM:DD HH:MM:SS"
	Hour        *int   // capture hour 0-23
	Camera      string // make + model, deduplicated
	Lens        string
	Exposure    string // e.g. "1/250 s"
	Aperture    string // e.g. "f/2.8"
	ISO         string // e.g. "ISO 400"
	FocalLength string // e.g. "35mm"
	Location    string // sexagesimal display form
	Latitude    *float64
	Longitude   *float64
}

// HasGPS reports whether both coordinates were present.
func (i *Info) HasGPS() bool {
	return i.Latitude != nil && i.Longitude != nil
}

// MapsURL returns a Google Maps link for the capture location.
func (i *Info) MapsURL() string {
	if !i.HasGPS() {
		return ""
	}
	return fmt.Sprintf("https://maps.google.com/?q=%.6f,%.6f", *i.Latitude, *i.Longitude)
}

// ExtractHour returns the capture hour of the photo at path, or nil when the
// file has no usable capture-time tag. Decode failures are treated the same
// as missing tags.
func ExtractHour(path string) *int {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil
	}
	return hourFromTag(x)
}

// Extract returns the full metadata record for the viewer. Always succeeds;
// a photo without EXIF yields a zero Info.
func Extract(path string) Info {
	var info Info

	f, err := os.Open(path)
	if err != nil {
		return info
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return info
	}

	if raw, ok := stringTag(x, exif.DateTimeOriginal); ok {
		info.DateTimeRaw = raw
		info.DateTime = formatDateTime(raw)
		info.Hour = parseHour(raw)
	}

	make, _ := stringTag(x, exif.Make)
	model, _ := stringTag(x, exif.Model)
	info.Camera = joinCamera(make, model)

	if lens, ok := stringTag(x, exif.LensModel); ok {
		info.Lens = lens
	}

	if num, den, ok := rationalTag(x, exif.ExposureTime); ok {
		if den > 1 {
			info.Exposure = fmt.Sprintf("%d/%d s", num, den)
		} else {
			info.Exposure = fmt.Sprintf("%d s", num)
		}
	}

	if num, den, ok := rationalTag(x, exif.FNumber); ok && den != 0 {
		info.Aperture = fmt.Sprintf("f/%.1f", float64(num)/float64(den))
	}

	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if iso, err := tag.Int(0); err == nil {
			info.ISO = fmt.Sprintf("ISO %d", iso)
		}
	}

	if num, den, ok := rationalTag(x, exif.FocalLength); ok && den != 0 {
		info.FocalLength = fmt.Sprintf("%.0fmm", float64(num)/float64(den))
	}

	if lat, lon, ok := decodeGPS(x); ok {
		info.Latitude = &lat
		info.Longitude = &lon
		info.Location = FormatCoordinates(lat, lon)
	}

	return info
}

func hourFromTag(x *exif.Exif) *int {
	raw, ok := stringTag(x, exif.DateTimeOriginal)
	if !ok {
		return nil
	}
	return parseHour(raw)
}

// parseHour pulls the hour field out of a "YYYY:MM:DD HH:MM:SS" timestamp.
// Anything malformed or out of range yields nil.
func parseHour(datetime string) *int {
	if len(datetime) < 13 {
		return nil
	}
	hour, err := strconv.Atoi(datetime[11:13])
	if err != nil || hour < 0 || hour > 23 {
		return nil
	}
	return &hour
}

// formatDateTime renders the EXIF timestamp for the panel; on parse failure
// the raw string is shown as-is.
func formatDateTime(raw string) string {
	t, err := time.Parse(exifTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return t.Format("January 2, 2006 at 15:04")
}

// joinCamera concatenates make and model, skipping the make when the model
// already repeats it (e.g. "Canon" + "Canon EOS R5").
func joinCamera(make, model string) string {
	make = strings.TrimSpace(make)
	model = strings.TrimSpace(model)
	switch {
	case model == "":
		return make
	case make == "" || strings.HasPrefix(model, make):
		return model
	default:
		return make + " " + model
	}
}

func stringTag(x *exif.Exif, name exif.FieldName) (string, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return "", false
	}
	s, err := tag.StringVal()
	if err != nil {
		return "", false
	}
	s = strings.Trim(s, "\x00 ")
	if s == "" {
		return "", false
	}
	return s, true
}

func rationalTag(x *exif.Exif, name exif.FieldName) (int64, int64, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil {
		return 0, 0, false
	}
	return num, den, true
}

// decodeGPS converts the degree/minute/second rationals plus hemisphere
// references into signed decimal degrees. South and West negate.
func decodeGPS(x *exif.Exif) (float64, float64, bool) {
	lat, ok := dmsTag(x, exif.GPSLatitude)
	if !ok {
		return 0, 0, false
	}
	latRef, ok := stringTag(x, exif.GPSLatitudeRef)
	if !ok {
		return 0, 0, false
	}
	lon, ok := dmsTag(x, exif.GPSLongitude)
	if !ok {
		return 0, 0, false
	}
	lonRef, ok := stringTag(x, exif.GPSLongitudeRef)
	if !ok {
		return 0, 0, false
	}

	if latRef == "S" {
		lat = -lat
	}
	if lonRef == "W" {
		lon = -lon
	}
	return lat, lon, true
}

func dmsTag(x *exif.Exif, name exif.FieldName) (float64, bool) {
	tag, err := x.Get(name)
	if err != nil || tag.Count < 3 {
		return 0, false
	}
	var parts [3]float64
	for i := 0; i < 3; i++ {
		num, den, err := tag.Rat2(i)
		if err != nil || den == 0 {
			return 0, false
		}
		parts[i] = float64(num) / float64(den)
	}
	return parts[0] + parts[1]/60 + parts[2]/3600, true
}

// FormatCoordinates renders decimal degrees back into the sexagesimal form
// shown in the panel, e.g. `60°23'12.4"N 5°19'48.0"E`.
func FormatCoordinates(lat, lon float64) string {
	latDir, lonDir := "N", "E"
	if lat < 0 {
		latDir = "S"
	}
	if lon < 0 {
		lonDir = "W"
	}
	latD, latM, latS := toDMS(abs(lat))
	lonD, lonM, lonS := toDMS(abs(lon))
	return fmt.Sprintf("%.0f°%.0f'%.1f\"%s %.0f°%.0f'%.1f\"%s",
		latD, latM, latS, latDir, lonD, lonM, lonS, lonDir)
}

func toDMS(v float64) (deg, min, sec float64) {
	deg = float64(int(v))
	rem := (v - deg) * 60
	min = float64(int(rem))
	sec = (rem - min) * 60
	return deg, min, sec
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
