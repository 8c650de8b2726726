package picture

import (
	"log/slog"
	"os"
	"path/filepath"

	"pisort/internal/exifdate"
)

// ScanOptions controls Scan.
type ScanOptions struct {
	// Source resolves capture dates. Defaults to an exifdate.Extractor.
	Source DateSource
	// SkipUndated drops pictures without a capture date instead of keeping
	// them for the end of the sequence.
	SkipUndated bool
	// IsPicture decides whether a file is kept. Defaults to
	// exifdate.IsPicture.
	IsPicture func(path string) bool
	Log       *slog.Logger
}

// Scan lists the pictures directly inside dir, in name order. Directories
// and other non-regular entries are ignored, as are files that cannot be
// read as pictures.
func Scan(dir string, opts ScanOptions) ([]*Picture, error) {
	if opts.Source == nil {
		opts.Source = exifdate.Extractor{}
	}
	if opts.IsPicture == nil {
		opts.IsPicture = exifdate.IsPicture
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var pictures []*Picture
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())

		// Stat, not the entry type: a symlink to a regular file counts.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if !opts.IsPicture(path) {
			log.Debug("skipping non-picture", "file", e.Name())
			continue
		}

		p := New(path, opts.Source)
		if _, ok := p.Date(); !ok {
			if opts.SkipUndated {
				log.Debug("skipping undated picture", "file", e.Name())
				continue
			}
			log.Debug("picture has no capture date", "file", e.Name())
		}
		pictures = append(pictures, p)
	}

	log.Info("scanned directory", "dir", dir, "pictures", len(pictures))
	return pictures, nil
}
