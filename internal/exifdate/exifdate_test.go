package exifdate

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"pisort/internal/exifdate/exiftest"
)

var (
	original = exiftest.Tags{
		DateTimeOriginal:   "2020:01:01 00:00:00",
		OffsetTimeOriginal: "+00:00",
		DateTime:           "2024:05:05 10:00:00",
	}
	digitized = exiftest.Tags{
		DateTimeDigitized:   "2023:08:01 20:00:00",
		OffsetTimeDigitized: "-07:00",
		DateTime:            "2024:05:05 10:00:00",
	}
	modified = exiftest.Tags{
		DateTime:   "2023:08:13 21:47:50",
		OffsetTime: "+02:00",
	}
	noDate = exiftest.Tags{Make: "Test"}
)

// fixedNow pins the fallback zone to UTC-03:00.
func fixedNow() time.Time {
	return time.Date(2025, 1, 1, 12, 0, 0, 0, time.FixedZone("TEST", -3*3600))
}

func TestExtractPrecedence(t *testing.T) {
	tests := []struct {
		name string
		tags exiftest.Tags
		want time.Time
		tag  exif.FieldName
	}{
		{"original", original, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), exif.DateTimeOriginal},
		{"digitized", digitized, time.Date(2023, 8, 1, 20, 0, 0, 0, time.FixedZone("", -7*3600)), exif.DateTimeDigitized},
		{"modified", modified, time.Date(2023, 8, 13, 21, 47, 50, 0, time.FixedZone("", 2*3600)), exif.DateTime},
	}
	e := Extractor{Now: fixedNow}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := e.Extract(bytes.NewReader(exiftest.JPEG(tt.tags)))
			if !ok {
				t.Fatalf("no capture date")
			}
			if !c.Time.Equal(tt.want) {
				t.Errorf("time = %v, want %v", c.Time, tt.want)
			}
			_, gotOff := c.Time.Zone()
			_, wantOff := tt.want.Zone()
			if gotOff != wantOff {
				t.Errorf("offset = %d, want %d", gotOff, wantOff)
			}
			if !c.OffsetKnown {
				t.Errorf("offset should be known")
			}
			if c.Tag != tt.tag {
				t.Errorf("tag = %s, want %s", c.Tag, tt.tag)
			}
		})
	}
}

func TestExtractNoDate(t *testing.T) {
	e := Extractor{Now: fixedNow}
	if _, ok := e.Extract(bytes.NewReader(exiftest.JPEG(noDate))); ok {
		t.Errorf("expected no date for exif without date tags")
	}
	if _, ok := e.Extract(bytes.NewReader(exiftest.JPEG(exiftest.Tags{}))); ok {
		t.Errorf("expected no date for jpeg without exif")
	}
	if _, ok := e.Extract(bytes.NewReader([]byte("not a picture at all"))); ok {
		t.Errorf("expected no date for text")
	}
}

func TestExtractFallsBackToLocalOffset(t *testing.T) {
	for _, offset := range []string{"", UnknownOffset, "garbage"} {
		tags := exiftest.Tags{DateTimeOriginal: "2021:06:01 08:30:00", OffsetTimeOriginal: offset}
		c, ok := Extractor{Now: fixedNow}.Extract(bytes.NewReader(exiftest.JPEG(tags)))
		if !ok {
			t.Fatalf("offset %q: no capture date", offset)
		}
		if c.OffsetKnown {
			t.Errorf("offset %q: should not be known", offset)
		}
		want := time.Date(2021, 6, 1, 8, 30, 0, 0, time.FixedZone("TEST", -3*3600))
		if !c.Time.Equal(want) {
			t.Errorf("offset %q: time = %v, want %v", offset, c.Time, want)
		}
		if c.OffsetString() != UnknownOffset {
			t.Errorf("offset %q: OffsetString = %q", offset, c.OffsetString())
		}
	}
}

func TestExtractOffsetIsTakenFromMatchingTag(t *testing.T) {
	// OffsetTime belongs to DateTime, not DateTimeOriginal.
	tags := exiftest.Tags{
		DateTimeOriginal: "2021:06:01 08:30:00",
		OffsetTime:       "+05:00",
	}
	c, ok := Extractor{Now: fixedNow}.Extract(bytes.NewReader(exiftest.JPEG(tags)))
	if !ok {
		t.Fatal("no capture date")
	}
	if c.OffsetKnown {
		t.Errorf("offset should come from the fallback")
	}
}

func TestExtractSkipsMalformedDate(t *testing.T) {
	tags := exiftest.Tags{
		DateTimeOriginal:    "0000:00:00 00:00:00",
		DateTimeDigitized:   "2019:02:03 04:05:06",
		OffsetTimeDigitized: "+01:00",
	}
	c, ok := Extractor{Now: fixedNow}.Extract(bytes.NewReader(exiftest.JPEG(tags)))
	if !ok {
		t.Fatal("no capture date")
	}
	if c.Tag != exif.DateTimeDigitized {
		t.Errorf("tag = %s, want DateTimeDigitized", c.Tag)
	}
}

func TestExtractPNG(t *testing.T) {
	c, ok := Extractor{Now: fixedNow}.Extract(bytes.NewReader(exiftest.PNG(digitized)))
	if !ok {
		t.Fatal("no capture date in png")
	}
	want := time.Date(2023, 8, 1, 20, 0, 0, 0, time.FixedZone("", -7*3600))
	if !c.Time.Equal(want) {
		t.Errorf("time = %v, want %v", c.Time, want)
	}

	if _, ok := (Extractor{}).Extract(bytes.NewReader(exiftest.PNG(exiftest.Tags{}))); ok {
		t.Errorf("png without eXIf should have no date")
	}
}

func TestExtractTIFF(t *testing.T) {
	c, ok := Extractor{Now: fixedNow}.Extract(bytes.NewReader(exiftest.TIFF(modified)))
	if !ok {
		t.Fatal("no capture date in tiff")
	}
	if c.Tag != exif.DateTime {
		t.Errorf("tag = %s", c.Tag)
	}
}

func TestIsPicture(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"a.jpg": exiftest.JPEG(original),
		"b.jpg": exiftest.JPEG(exiftest.Tags{}),
		"c.png": exiftest.PNG(exiftest.Tags{}),
		"d.tif": exiftest.TIFF(modified),
		"e.txt": []byte("hello"),
		"f.jpg": []byte("renamed text file"),
		"empty": nil,
	}
	want := map[string]bool{"a.jpg": true, "b.jpg": true, "c.png": true, "d.tif": true}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	for name := range files {
		if got := IsPicture(filepath.Join(dir, name)); got != want[name] {
			t.Errorf("IsPicture(%s) = %v, want %v", name, got, want[name])
		}
	}
	if IsPicture(filepath.Join(dir, "missing.jpg")) {
		t.Errorf("missing file reported as picture")
	}
}

func TestTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	if err := exiftest.WriteFile(path, exiftest.JPEG(original)); err != nil {
		t.Fatal(err)
	}
	tags, err := Tags(path)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	got := map[exif.FieldName]string{}
	for i, tag := range tags {
		got[tag.Name] = tag.Value
		if i > 0 && tags[i-1].Name > tag.Name {
			t.Errorf("tags not sorted: %s before %s", tags[i-1].Name, tag.Name)
		}
	}
	if got[exif.DateTimeOriginal] != "2020:01:01 00:00:00" {
		t.Errorf("DateTimeOriginal = %q", got[exif.DateTimeOriginal])
	}
	if got[OffsetTimeOriginal] != "+00:00" {
		t.Errorf("OffsetTimeOriginal = %q", got[OffsetTimeOriginal])
	}

	text := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(text, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Tags(text); err == nil {
		t.Errorf("expected error for a text file")
	}
}

func TestDateTags(t *testing.T) {
	dir := t.TempDir()
	malformed := exiftest.Tags{DateTimeOriginal: "not a date"}
	files := map[string][]byte{
		"original.jpg":  exiftest.JPEG(original),
		"modified.jpg":  exiftest.JPEG(modified),
		"nodate.jpg":    exiftest.JPEG(noDate),
		"bare.png":      exiftest.PNG(exiftest.Tags{}),
		"malformed.jpg": exiftest.JPEG(malformed),
	}
	want := map[string][]exif.FieldName{
		"original.jpg":  {exif.DateTimeOriginal, exif.DateTime},
		"modified.jpg":  {exif.DateTime},
		"malformed.jpg": {exif.DateTimeOriginal},
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := DateTags(path)
		if err != nil {
			t.Errorf("DateTags(%s): %v", name, err)
			continue
		}
		if !reflect.DeepEqual(got, want[name]) {
			t.Errorf("DateTags(%s) = %v, want %v", name, got, want[name])
		}
	}

	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := DateTags(text); !errors.Is(err, ErrNotPicture) {
		t.Errorf("text file: err = %v, want ErrNotPicture", err)
	}
	if _, err := DateTags(filepath.Join(dir, "missing.jpg")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want ErrNotExist", err)
	}
}
