// Package picture binds picture files to their capture dates and lists the
// pictures of a directory.
package picture

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"pisort/internal/exifdate"
)

// DateSource resolves the capture timestamp of a file.
type DateSource interface {
	ExtractFile(path string) (exifdate.Capture, bool)
}

// Picture is a picture file and its capture date. The date is read at most
// once; Path follows the file across renames.
type Picture struct {
	Path string

	source   DateSource
	resolved bool
	capture  exifdate.Capture
	dated    bool
}

// New returns a Picture whose date is read lazily from source.
func New(path string, source DateSource) *Picture {
	return &Picture{Path: path, source: source}
}

// WithCapture returns a Picture with an already known date. ok=false
// marks the picture as undated.
func WithCapture(path string, capture exifdate.Capture, ok bool) *Picture {
	return &Picture{Path: path, resolved: true, capture: capture, dated: ok}
}

// Capture returns the capture metadata, reading it on first use.
func (p *Picture) Capture() (exifdate.Capture, bool) {
	if !p.resolved {
		if p.source != nil {
			p.capture, p.dated = p.source.ExtractFile(p.Path)
		}
		p.resolved = true
	}
	return p.capture, p.dated
}

// Date returns the capture instant.
func (p *Picture) Date() (time.Time, bool) {
	c, ok := p.Capture()
	return c.Time, ok
}

// Name returns the file name.
func (p *Picture) Name() string {
	return filepath.Base(p.Path)
}

// Stem returns the file name without its extension.
func (p *Picture) Stem() string {
	stem, _ := splitName(p.Name())
	return stem
}

// Ext returns the extension, dot included.
func (p *Picture) Ext() string {
	_, ext := splitName(p.Name())
	return ext
}

func (p *Picture) String() string {
	return p.Name()
}

// PathWithStem returns the path the picture would have with another stem.
func (p *Picture) PathWithStem(stem string) string {
	return filepath.Join(filepath.Dir(p.Path), stem+p.Ext())
}

// renameFunc is replaced in tests.
var renameFunc = os.Rename

// RenameTo renames the file in place, keeping its directory and extension.
func (p *Picture) RenameTo(stem string) error {
	target := p.PathWithStem(stem)
	if err := renameFunc(p.Path, target); err != nil {
		return err
	}
	p.Path = target
	return nil
}

// splitName splits a name at its last dot. A leading dot does not start
// an extension and a trailing dot is not one, so ".hidden" and "a." have
// no extension.
func splitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	if ext == name || ext == "." {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}
