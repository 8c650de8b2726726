// Package exifdate extracts capture timestamps from picture metadata.
//
// A capture date is looked up in three Exif tags, in order of preference:
// DateTimeOriginal, DateTimeDigitized and DateTime. Each pairs with an
// OffsetTime* tag; when that offset is missing or malformed the local
// offset of the current instant is used instead.
package exifdate

import (
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// DateLayout is the Exif "YYYY:MM:DD HH:MM:SS" date format.
const DateLayout = "2006:01:02 15:04:05"

var dateTags = []struct {
	date   exif.FieldName
	offset exif.FieldName
}{
	{exif.DateTimeOriginal, OffsetTimeOriginal},
	{exif.DateTimeDigitized, OffsetTimeDigitized},
	{exif.DateTime, OffsetTime},
}

// Capture is a timestamp read from metadata.
type Capture struct {
	// Time holds the wall clock from the date tag in the resolved zone.
	Time time.Time
	// OffsetKnown is false when the zone came from the local fallback.
	OffsetKnown bool
	// Tag names the date tag the value was read from.
	Tag exif.FieldName
}

// OffsetString formats the capture offset as an OffsetTime* value.
func (c Capture) OffsetString() string {
	if !c.OffsetKnown {
		return UnknownOffset
	}
	return FormatOffset(c.Time)
}

// Extractor reads capture timestamps. The zero value is ready to use.
type Extractor struct {
	// Now supplies the instant whose local offset is used when a date
	// carries no usable offset. Defaults to time.Now.
	Now func() time.Time
}

// Extract returns the capture timestamp found in r. Undecodable input and
// the absence of any usable date tag both yield false.
func (e Extractor) Extract(r io.Reader) (Capture, bool) {
	x, err := Decode(r)
	if err != nil {
		return Capture{}, false
	}
	return e.FromExif(x)
}

// ExtractFile opens path and calls Extract.
func (e Extractor) ExtractFile(path string) (Capture, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Capture{}, false
	}
	defer f.Close()
	return e.Extract(f)
}

// FromExif applies the tag precedence to already decoded metadata. A date
// tag whose value does not parse is skipped in favour of the next one.
func (e Extractor) FromExif(x *exif.Exif) (Capture, bool) {
	for _, dt := range dateTags {
		value, ok := stringField(x, dt.date)
		if !ok {
			continue
		}
		loc, known := e.zone(x, dt.offset)
		t, err := time.ParseInLocation(DateLayout, value, loc)
		if err != nil {
			continue
		}
		return Capture{Time: t, OffsetKnown: known, Tag: dt.date}, true
	}
	return Capture{}, false
}

func (e Extractor) zone(x *exif.Exif, field exif.FieldName) (*time.Location, bool) {
	if value, ok := stringField(x, field); ok {
		if loc, ok := ParseOffset(value); ok {
			return loc, true
		}
	}
	return e.localZone(), false
}

func (e Extractor) localZone() *time.Location {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	name, offset := now().Zone()
	return time.FixedZone(name, offset)
}

func stringField(x *exif.Exif, field exif.FieldName) (string, bool) {
	tag, err := x.Get(field)
	if err != nil {
		return "", false
	}
	value, err := tag.StringVal()
	if err != nil {
		return "", false
	}
	return strings.TrimRight(value, "\x00"), true
}

// ErrNotPicture is returned for files that are neither a known image
// format nor carry Exif data.
var ErrNotPicture = errors.New("exifdate: not a picture")

// DateTags lists the date tags present on path, whether or not their
// values parse. A picture without Exif data has none.
func DateTags(path string) ([]exif.FieldName, error) {
	if !IsPicture(path) {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		return nil, ErrNotPicture
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := Decode(f)
	if err != nil {
		return nil, nil
	}
	var present []exif.FieldName
	for _, dt := range dateTags {
		if _, err := x.Get(dt.date); err == nil {
			present = append(present, dt.date)
		}
	}
	return present, nil
}

// Tag is one metadata field as shown by the dump tool.
type Tag struct {
	Name  exif.FieldName
	Value string
}

type tagCollector []Tag

func (c *tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	value, err := tag.StringVal()
	if err != nil {
		value = tag.String()
	}
	*c = append(*c, Tag{Name: name, Value: strings.TrimRight(value, "\x00")})
	return nil
}

// Tags lists every decoded Exif field of path, sorted by name.
func Tags(path string) ([]Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := Decode(f)
	if err != nil {
		return nil, err
	}
	var tags tagCollector
	if err := x.Walk(&tags); err != nil {
		return nil, err
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}
