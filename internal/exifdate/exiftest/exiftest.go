// Package exiftest builds small JPEG, PNG and TIFF payloads carrying Exif
// date tags, for tests.
package exiftest

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"sort"
)

// Tags selects the ASCII fields written into the Exif block. Empty fields
// are omitted.
type Tags struct {
	Make                string
	DateTime            string
	OffsetTime          string
	DateTimeOriginal    string
	OffsetTimeOriginal  string
	DateTimeDigitized   string
	OffsetTimeDigitized string
}

func (t Tags) empty() bool {
	return t == Tags{}
}

type field struct {
	id    uint16
	value string
}

func (t Tags) ifd0() []field {
	return nonEmpty([]field{
		{0x010f, t.Make},
		{0x0132, t.DateTime},
	})
}

func (t Tags) exifIFD() []field {
	return nonEmpty([]field{
		{0x9003, t.DateTimeOriginal},
		{0x9004, t.DateTimeDigitized},
		{0x9010, t.OffsetTime},
		{0x9011, t.OffsetTimeOriginal},
		{0x9012, t.OffsetTimeDigitized},
	})
}

func nonEmpty(fields []field) []field {
	out := fields[:0]
	for _, f := range fields {
		if f.value != "" {
			out = append(out, f)
		}
	}
	return out
}

const (
	typeASCII = 2
	typeLong  = 4

	exifPointer = 0x8769
)

type entry struct {
	id    uint16
	typ   uint16
	count uint32
	data  []byte
}

func ifdSize(n int) int {
	return 2 + 12*n + 4
}

// TIFF returns a little-endian TIFF structure holding tags.
func TIFF(tags Tags) []byte {
	order := binary.LittleEndian

	ifd0 := asciiEntries(tags.ifd0())
	exifEntries := asciiEntries(tags.exifIFD())

	n0 := len(ifd0)
	if len(exifEntries) > 0 {
		n0++
	}
	exifOff := 8 + ifdSize(n0)
	dataOff := exifOff
	if len(exifEntries) > 0 {
		dataOff += ifdSize(len(exifEntries))
		ptr := make([]byte, 4)
		order.PutUint32(ptr, uint32(exifOff))
		ifd0 = append(ifd0, entry{id: exifPointer, typ: typeLong, count: 1, data: ptr})
	}
	sort.Slice(ifd0, func(i, j int) bool { return ifd0[i].id < ifd0[j].id })

	var out, data bytes.Buffer
	out.WriteString("II")
	binary.Write(&out, order, uint16(42))
	binary.Write(&out, order, uint32(8))

	writeIFD := func(entries []entry) {
		binary.Write(&out, order, uint16(len(entries)))
		for _, e := range entries {
			binary.Write(&out, order, e.id)
			binary.Write(&out, order, e.typ)
			binary.Write(&out, order, e.count)
			if len(e.data) <= 4 {
				var inline [4]byte
				copy(inline[:], e.data)
				out.Write(inline[:])
				continue
			}
			binary.Write(&out, order, uint32(dataOff+data.Len()))
			data.Write(e.data)
			if data.Len()%2 == 1 {
				data.WriteByte(0)
			}
		}
		binary.Write(&out, order, uint32(0))
	}

	writeIFD(ifd0)
	if len(exifEntries) > 0 {
		writeIFD(exifEntries)
	}
	out.Write(data.Bytes())
	return out.Bytes()
}

func asciiEntries(fields []field) []entry {
	entries := make([]entry, 0, len(fields))
	for _, f := range fields {
		value := append([]byte(f.value), 0)
		entries = append(entries, entry{id: f.id, typ: typeASCII, count: uint32(len(value)), data: value})
	}
	return entries
}

func pixel() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	return img
}

// JPEG returns a 1x1 JPEG. A non-empty tags adds an APP1 Exif segment.
func JPEG(tags Tags) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, pixel(), nil); err != nil {
		panic(err)
	}
	img := buf.Bytes()
	if tags.empty() {
		return img
	}

	payload := append([]byte("Exif\x00\x00"), TIFF(tags)...)
	var out bytes.Buffer
	out.Write(img[:2]) // SOI
	out.Write([]byte{0xff, 0xe1})
	binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(img[2:])
	return out.Bytes()
}

// PNG returns a 1x1 PNG. A non-empty tags adds an eXIf chunk after IHDR.
func PNG(tags Tags) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, pixel()); err != nil {
		panic(err)
	}
	img := buf.Bytes()
	if tags.empty() {
		return img
	}

	// signature (8) + IHDR chunk (4 length + 4 type + 13 data + 4 crc)
	const afterIHDR = 33
	payload := TIFF(tags)
	var chunk bytes.Buffer
	binary.Write(&chunk, binary.BigEndian, uint32(len(payload)))
	chunk.WriteString("eXIf")
	chunk.Write(payload)
	binary.Write(&chunk, binary.BigEndian, crc32.ChecksumIEEE(append([]byte("eXIf"), payload...)))

	var out bytes.Buffer
	out.Write(img[:afterIHDR])
	out.Write(chunk.Bytes())
	out.Write(img[afterIHDR:])
	return out.Bytes()
}

// WriteFile writes data to path with 0644 permissions.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
