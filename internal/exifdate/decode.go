package exifdate

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoExif is returned by Decode when a readable file carries no Exif block.
var ErrNoExif = errors.New("exifdate: no exif data")

// Offset tags live in the Exif sub-IFD; goexif's own field table stops
// before them, so they are loaded by offsetParser.
const (
	OffsetTime          exif.FieldName = "OffsetTime"
	OffsetTimeOriginal  exif.FieldName = "OffsetTimeOriginal"
	OffsetTimeDigitized exif.FieldName = "OffsetTimeDigitized"
)

var offsetFields = map[uint16]exif.FieldName{
	0x9010: OffsetTime,
	0x9011: OffsetTimeOriginal,
	0x9012: OffsetTimeDigitized,
}

func init() {
	exif.RegisterParsers(offsetParser{})
}

// offsetParser re-reads the Exif sub-IFD and keeps the OffsetTime* tags.
type offsetParser struct{}

func (offsetParser) Parse(x *exif.Exif) error {
	ptr, err := x.Get(exif.ExifIFDPointer)
	if err != nil {
		return nil
	}
	offset, err := ptr.Int64(0)
	if err != nil {
		return nil
	}
	r := bytes.NewReader(x.Raw)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil
	}
	dir, _, err := tiff.DecodeDir(r, x.Tiff.Order)
	if err != nil {
		return nil
	}
	x.LoadTags(dir, offsetFields, false)
	return nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Decode reads the Exif block of a JPEG, a TIFF-based file (most camera
// raw formats) or a PNG carrying an eXIf chunk.
func Decode(r io.Reader) (*exif.Exif, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(pngSignature))
	if err == nil && bytes.Equal(head, pngSignature) {
		raw, err := pngExif(br)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(raw)
	} else {
		r = br
	}

	x, err := exif.Decode(r)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, err
	}
	return x, nil
}

// pngExif returns the payload of the first eXIf chunk.
func pngExif(r io.Reader) ([]byte, error) {
	if _, err := io.CopyN(io.Discard, r, int64(len(pngSignature))); err != nil {
		return nil, err
	}
	var hdr [8]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, ErrNoExif
			}
			return nil, err
		}
		length := binary.BigEndian.Uint32(hdr[:4])
		switch string(hdr[4:]) {
		case "eXIf":
			data := make([]byte, length)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, err
			}
			// Some writers keep the JPEG APP1 preamble.
			return bytes.TrimPrefix(data, []byte("Exif\x00\x00")), nil
		case "IEND":
			return nil, ErrNoExif
		}
		if _, err := io.CopyN(io.Discard, r, int64(length)+4); err != nil {
			return nil, err
		}
	}
}

// IsPicture reports whether path holds something that can be treated as a
// picture: an image format with a registered decoder, or any file with a
// decodable Exif block.
func IsPicture(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err == nil {
		return true
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false
	}
	_, err = Decode(f)
	return err == nil
}
