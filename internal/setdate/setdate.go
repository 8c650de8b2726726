// Package setdate backfills missing Exif capture dates from file
// modification times.
package setdate

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"pisort/internal/exifdate"
)

// Store writes capture dates into picture files.
type Store interface {
	// SetCapture writes DateTimeOriginal and OffsetTimeOriginal.
	SetCapture(path, dateTime, offset string) error
}

// Result tells what Process did with a file.
type Result int

const (
	Skipped Result = iota
	Written
)

func (r Result) String() string {
	if r == Written {
		return "written"
	}
	return "skipped"
}

// Processor backfills capture dates through a Store.
type Processor struct {
	Store Store
	// Zone is the zone modification times are written in. Defaults to
	// time.Local.
	Zone *time.Location
	// Out receives one "Wrote <date> to <path>" line per written file.
	Out io.Writer
	Log *slog.Logger
}

// Process gives path a capture date equal to its modification time. Files
// that already carry a date are skipped unless force is set.
func (p *Processor) Process(path string, force bool) (Result, error) {
	log := p.Log
	if log == nil {
		log = slog.Default()
	}

	tags, err := exifdate.DateTags(path)
	if err != nil {
		return Skipped, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if !force && len(tags) > 0 {
		log.Info("already dated", "file", path, "tags", tags)
		return Skipped, nil
	}

	info, err := os.Lstat(path)
	if err != nil {
		return Skipped, err
	}
	zone := p.Zone
	if zone == nil {
		zone = time.Local
	}
	date := info.ModTime().In(zone)

	if err := p.Store.SetCapture(path, date.Format(exifdate.DateLayout), exifdate.FormatOffset(date)); err != nil {
		return Skipped, fmt.Errorf("failed to write %s: %w", path, err)
	}
	// Writing metadata bumps the modification time; put the original back
	// so that a forced re-run writes the same date.
	if err := os.Chtimes(path, time.Time{}, info.ModTime()); err != nil {
		log.Warn("could not restore modification time", "file", path, "error", err)
	}

	if p.Out != nil {
		fmt.Fprintf(p.Out, "Wrote %s to %s\n", date.Format("2006-01-02 15:04:05-07:00"), path)
	}
	return Written, nil
}
