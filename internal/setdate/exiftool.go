package setdate

import (
	"fmt"

	"github.com/barasher/go-exiftool"
)

// ExiftoolStore writes tags through a long-running exiftool process.
type ExiftoolStore struct {
	et *exiftool.Exiftool
}

// NewExiftoolStore starts exiftool. Call Close when done.
func NewExiftoolStore() (*ExiftoolStore, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("exiftool not available: %w", err)
	}
	return &ExiftoolStore{et: et}, nil
}

// SetCapture writes the Exif DateTimeOriginal and OffsetTimeOriginal tags
// in place, leaving other tags alone.
func (s *ExiftoolStore) SetCapture(path, dateTime, offset string) error {
	fm := exiftool.FileMetadata{File: path, Fields: map[string]interface{}{}}
	fm.SetString("EXIF:DateTimeOriginal", dateTime)
	fm.SetString("EXIF:OffsetTimeOriginal", offset)

	batch := []exiftool.FileMetadata{fm}
	s.et.WriteMetadata(batch)
	return batch[0].Err
}

// Close stops exiftool.
func (s *ExiftoolStore) Close() error {
	return s.et.Close()
}
