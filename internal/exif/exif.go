// internal/exif/exif.go
package exif

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/bstardust/phonfo/internal/gps"
	"github.com/bstardust/phonfo/internal/logger"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// ErrNoEXIF is returned when the input carries no readable EXIF block
var ErrNoEXIF = errors.New("no EXIF data")

// Data represents EXIF metadata
type Data struct {
	DateTimeOriginal string
	// Fields maps every tag name to its formatted value
	Fields map[string]string
	// GPSRaw holds the GPS tag group, formatted
	GPSRaw map[string]string
	// GPS is nil when the image has no GPS tags at all
	GPS *gps.TagSet
}

// Extract extracts EXIF metadata from a reader
func Extract(r io.Reader) (*Data, error) {
	x, err := exif.Decode(r)
	if err != nil {
		if x == nil || exif.IsCriticalError(err) {
			logger.Debug("EXIF decode failed: %v", err)
			return nil, ErrNoEXIF
		}
		// Partial data, e.g. a broken maker note
		logger.Debug("EXIF decoded with errors: %v", err)
	}

	data := &Data{
		Fields: make(map[string]string),
		GPSRaw: make(map[string]string),
	}

	if err := x.Walk(&walker{data: data}); err != nil {
		logger.Debug("EXIF walk stopped early: %v", err)
	}

	if tag, err := x.Get(exif.DateTimeOriginal); err == nil {
		data.DateTimeOriginal = FormatTag(tag)
	}

	data.GPS = gpsTags(x)

	return data, nil
}

type walker struct {
	data *Data
}

func (w *walker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	value := FormatTag(tag)
	w.data.Fields[string(name)] = value
	if name != exif.GPSInfoIFDPointer && strings.HasPrefix(string(name), "GPS") {
		w.data.GPSRaw[string(name)] = value
	}
	return nil
}

// gpsTags collects the tags the coordinate resolver needs
func gpsTags(x *exif.Exif) *gps.TagSet {
	ts := &gps.TagSet{}
	found := false

	if tag, err := x.Get(exif.GPSLatitude); err == nil {
		ts.Latitude = tagRationals{tag}
		found = true
	}
	if tag, err := x.Get(exif.GPSLongitude); err == nil {
		ts.Longitude = tagRationals{tag}
		found = true
	}
	if tag, err := x.Get(exif.GPSLatitudeRef); err == nil {
		ts.LatitudeRef = refValue(tag)
		found = true
	}
	if tag, err := x.Get(exif.GPSLongitudeRef); err == nil {
		ts.LongitudeRef = refValue(tag)
		found = true
	}

	if !found {
		return nil
	}
	return ts
}

// tagRationals adapts a goexif tag to gps.RationalSource
type tagRationals struct {
	tag *tiff.Tag
}

func (t tagRationals) Len() int {
	return int(t.tag.Count)
}

func (t tagRationals) Rat2(i int) (num, den int64, err error) {
	return t.tag.Rat2(i)
}

func refValue(tag *tiff.Tag) *string {
	s, err := tag.StringVal()
	if err != nil {
		s = tag.String()
	}
	s = strings.TrimRight(s, "\x00 ")
	return &s
}

// FormatTag renders a tag value for display
func FormatTag(tag *tiff.Tag) string {
	n := int(tag.Count)

	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			break
		}
		return strings.TrimRight(s, "\x00 ")
	case tiff.RatVal:
		parts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return tag.String()
			}
			if den == 1 {
				parts = append(parts, strconv.FormatInt(num, 10))
			} else {
				parts = append(parts, strconv.FormatInt(num, 10)+"/"+strconv.FormatInt(den, 10))
			}
		}
		return strings.Join(parts, ", ")
	case tiff.IntVal:
		parts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Int64(i)
			if err != nil {
				return tag.String()
			}
			parts = append(parts, strconv.FormatInt(v, 10))
		}
		return strings.Join(parts, ", ")
	case tiff.FloatVal:
		parts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Float(i)
			if err != nil {
				return tag.String()
			}
			parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
		}
		return strings.Join(parts, ", ")
	}

	return strings.Trim(tag.String(), `"`)
}
