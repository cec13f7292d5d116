package fileinfo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/rwcarlsen/goexif/tiff"
)

const tagInterColorProfile = 0x8773

var iccSignature = []byte("ICC_PROFILE\x00")

// hasICCProfile reports whether an embedded colour profile is present.
// r must be positioned at the start of the file.
func hasICCProfile(format string, r io.ReadSeeker) (bool, error) {
	var found bool
	var err error

	switch format {
	case "JPEG":
		found, err = jpegICC(r)
	case "PNG":
		found, err = pngICC(r)
	case "WEBP":
		found, err = webpICC(r)
	case "TIFF":
		found, err = tiffICC(r)
	default:
		return false, nil
	}

	// A truncated trailer is not worth failing the report over
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return found, nil
	}
	return found, err
}

func jpegICC(r io.ReadSeeker) (bool, error) {
	if _, err := r.Seek(2, io.SeekStart); err != nil {
		return false, err
	}

	marker := make([]byte, 2)
	for {
		if _, err := io.ReadFull(r, marker); err != nil {
			return false, err
		}
		if marker[0] != 0xFF {
			return false, nil
		}

		switch {
		case marker[1] == 0xDA || marker[1] == 0xD9:
			// Start of scan, APP segments are behind us
			return false, nil
		case marker[1] == 0x01 || (marker[1] >= 0xD0 && marker[1] <= 0xD7):
			continue
		}

		var length uint16
		if err := binary.Read(r, binary.BigEndian, &length); err != nil {
			return false, err
		}
		if length < 2 {
			return false, nil
		}
		size := int64(length) - 2

		if marker[1] == 0xE2 && size >= int64(len(iccSignature)) {
			id := make([]byte, len(iccSignature))
			if _, err := io.ReadFull(r, id); err != nil {
				return false, err
			}
			if bytes.Equal(id, iccSignature) {
				return true, nil
			}
			size -= int64(len(id))
		}

		if _, err := r.Seek(size, io.SeekCurrent); err != nil {
			return false, err
		}
	}
}

func pngICC(r io.ReadSeeker) (bool, error) {
	if _, err := r.Seek(8, io.SeekStart); err != nil {
		return false, err
	}

	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, header); err != nil {
			return false, err
		}
		length := int64(binary.BigEndian.Uint32(header[0:4]))

		switch string(header[4:8]) {
		case "iCCP":
			return true, nil
		case "IDAT", "IEND":
			// iCCP must precede the image data
			return false, nil
		}

		// Skip chunk data and CRC
		if _, err := r.Seek(length+4, io.SeekCurrent); err != nil {
			return false, err
		}
	}
}

func webpICC(r io.ReadSeeker) (bool, error) {
	if _, err := r.Seek(12, io.SeekStart); err != nil {
		return false, err
	}

	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, header); err != nil {
			return false, err
		}
		size := int64(binary.LittleEndian.Uint32(header[4:8]))
		// Chunks are padded to an even size
		skip := size + size&1

		switch string(header[0:4]) {
		case "ICCP":
			return true, nil
		case "VP8X":
			flags := make([]byte, 1)
			if _, err := io.ReadFull(r, flags); err != nil {
				return false, err
			}
			if flags[0]&0x20 != 0 {
				return true, nil
			}
			skip--
		}

		if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
			return false, err
		}
	}
}

func tiffICC(r io.Reader) (bool, error) {
	t, err := tiff.Decode(r)
	if err != nil {
		return false, err
	}
	for _, dir := range t.Dirs {
		for _, tag := range dir.Tags {
			if tag.Id == tagInterColorProfile {
				return true, nil
			}
		}
	}
	return false, nil
}
