// Package testutil builds small in-memory image fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

// TIFF field types
const (
	TypeASCII    uint16 = 2
	TypeShort    uint16 = 3
	TypeLong     uint16 = 4
	TypeRational uint16 = 5
)

// Entry is one IFD entry. Data holds the raw big-endian value bytes.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Data  []byte
}

// ASCII builds a NUL-terminated string entry
func ASCII(tag uint16, s string) Entry {
	return Entry{Tag: tag, Type: TypeASCII, Count: uint32(len(s) + 1), Data: append([]byte(s), 0)}
}

// Short builds a single SHORT entry
func Short(tag uint16, v uint16) Entry {
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, v)
	return Entry{Tag: tag, Type: TypeShort, Count: 1, Data: data}
}

// Long builds a single LONG entry
func Long(tag uint16, v uint32) Entry {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, v)
	return Entry{Tag: tag, Type: TypeLong, Count: 1, Data: data}
}

// Rationals builds a RATIONAL entry from num/den pairs
func Rationals(tag uint16, pairs ...[2]uint32) Entry {
	data := make([]byte, 0, 8*len(pairs))
	for _, p := range pairs {
		data = binary.BigEndian.AppendUint32(data, p[0])
		data = binary.BigEndian.AppendUint32(data, p[1])
	}
	return Entry{Tag: tag, Type: TypeRational, Count: uint32(len(pairs)), Data: data}
}

const (
	tagExifIFD = 0x8769
	tagGPSIFD  = 0x8825
)

func dirSize(entries []Entry) int {
	size := 2 + 12*len(entries) + 4
	for _, e := range entries {
		if len(e.Data) > 4 {
			size += len(e.Data)
		}
	}
	return size
}

func writeDir(buf *bytes.Buffer, entries []Entry, offset int) {
	dataOff := offset + 2 + 12*len(entries) + 4
	var extra []byte

	binary.Write(buf, binary.BigEndian, uint16(len(entries)))
	for _, e := range entries {
		binary.Write(buf, binary.BigEndian, e.Tag)
		binary.Write(buf, binary.BigEndian, e.Type)
		binary.Write(buf, binary.BigEndian, e.Count)
		if len(e.Data) <= 4 {
			v := make([]byte, 4)
			copy(v, e.Data)
			buf.Write(v)
			continue
		}
		binary.Write(buf, binary.BigEndian, uint32(dataOff))
		extra = append(extra, e.Data...)
		dataOff += len(e.Data)
	}
	binary.Write(buf, binary.BigEndian, uint32(0))
	buf.Write(extra)
}

// TIFF assembles a big-endian TIFF stream. The Exif and GPS sub-IFDs are
// linked from IFD0 when non-nil.
func TIFF(ifd0, exifDir, gpsDir []Entry) []byte {
	main := append([]Entry(nil), ifd0...)
	if exifDir != nil {
		main = append(main, Long(tagExifIFD, 0))
	}
	if gpsDir != nil {
		main = append(main, Long(tagGPSIFD, 0))
	}

	exifOff := 8 + dirSize(main)
	gpsOff := exifOff
	if exifDir != nil {
		gpsOff += dirSize(exifDir)
	}
	for i := range main {
		switch main[i].Tag {
		case tagExifIFD:
			main[i] = Long(tagExifIFD, uint32(exifOff))
		case tagGPSIFD:
			main[i] = Long(tagGPSIFD, uint32(gpsOff))
		}
	}

	var buf bytes.Buffer
	buf.WriteString("MM")
	binary.Write(&buf, binary.BigEndian, uint16(42))
	binary.Write(&buf, binary.BigEndian, uint32(8))
	writeDir(&buf, main, 8)
	if exifDir != nil {
		writeDir(&buf, exifDir, exifOff)
	}
	if gpsDir != nil {
		writeDir(&buf, gpsDir, gpsOff)
	}
	return buf.Bytes()
}

func gradient(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	return img
}

// PNG encodes a w x h image
func PNG(w, h int) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradient(w, h)); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// JPEG encodes a w x h image and inserts the given APP segments after SOI.
// Each segment is a marker byte followed by its payload.
func JPEG(w, h int, segments ...Segment) []byte {
	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, gradient(w, h), nil); err != nil {
		panic(err)
	}
	raw := enc.Bytes()

	var buf bytes.Buffer
	buf.Write(raw[:2])
	for _, s := range segments {
		buf.Write([]byte{0xFF, s.Marker})
		binary.Write(&buf, binary.BigEndian, uint16(len(s.Payload)+2))
		buf.Write(s.Payload)
	}
	buf.Write(raw[2:])
	return buf.Bytes()
}

// Segment is a JPEG marker segment
type Segment struct {
	Marker  byte
	Payload []byte
}

// ExifSegment wraps a TIFF stream in an APP1 Exif segment
func ExifSegment(tiff []byte) Segment {
	return Segment{Marker: 0xE1, Payload: append([]byte("Exif\x00\x00"), tiff...)}
}

// ICCSegment is a minimal APP2 ICC_PROFILE segment
func ICCSegment() Segment {
	return Segment{Marker: 0xE2, Payload: append([]byte("ICC_PROFILE\x00\x01\x01"), make([]byte, 16)...)}
}

// GPSDir returns the GPS IFD for the given hemisphere refs and DMS triples.
// Empty refs are omitted.
func GPSDir(latRef string, lat [3]uint32, lonRef string, lon [3]uint32) []Entry {
	var dir []Entry
	if latRef != "" {
		dir = append(dir, ASCII(0x1, latRef))
	}
	dir = append(dir, Rationals(0x2, [2]uint32{lat[0], 1}, [2]uint32{lat[1], 1}, [2]uint32{lat[2], 1}))
	if lonRef != "" {
		dir = append(dir, ASCII(0x3, lonRef))
	}
	dir = append(dir, Rationals(0x4, [2]uint32{lon[0], 1}, [2]uint32{lon[1], 1}, [2]uint32{lon[2], 1}))
	return dir
}
