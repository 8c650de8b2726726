package exifdate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// UnknownOffset is what Exif 3.0 stores in an OffsetTime* tag when the
// offset was not recorded.
const UnknownOffset = "   :  "

var offsetRe = regexp.MustCompile(`^([+-])(\d\d):(\d\d)$`)

// ParseOffset parses an Exif OffsetTime* value ("+02:00", "-00:30").
// It reports false for anything else, including UnknownOffset.
func ParseOffset(s string) (*time.Location, bool) {
	m := offsetRe.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	seconds := hours*3600 + minutes*60
	if m[1] == "-" {
		seconds = -seconds
	}
	return time.FixedZone(s, seconds), true
}

// FormatOffset renders the UTC offset of t as an Exif OffsetTime* value.
func FormatOffset(t time.Time) string {
	_, seconds := t.Zone()
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d:%02d", sign, seconds/3600, (seconds/60)%60)
}
