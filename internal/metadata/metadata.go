package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bstardust/phonfo/internal/exif"
	"github.com/bstardust/phonfo/internal/fileinfo"
	"github.com/bstardust/phonfo/internal/gps"
	"github.com/bstardust/phonfo/internal/logger"
)

// Metadata is everything the report shows about one image
type Metadata struct {
	Name          string          `json:"name"`
	Size          int64           `json:"size"`
	SizeKB        float64         `json:"sizeKb"`
	DateTaken     string          `json:"dateTaken,omitempty"`
	Coordinates   *gps.Coordinate `json:"coordinates"`
	Width         int             `json:"width"`
	Height        int             `json:"height"`
	HasICCProfile bool            `json:"hasIccProfile"`
	Format        string          `json:"format"`
	Camera        []Field         `json:"camera"`
	GPS           []Field         `json:"gps,omitempty"`
}

// Field is a labelled tag value. An empty Value means the tag is missing.
type Field struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
}

// Labels lists the EXIF tags of the main metadata section, in display order
var Labels = []Field{
	{Tag: "Make", Label: "Camera make"},
	{Tag: "Model", Label: "Camera model"},
	{Tag: "Software", Label: "Camera software"},
	{Tag: "DateTimeOriginal", Label: "Date taken"},
	{Tag: "ExposureTime", Label: "Exposure time"},
	{Tag: "FNumber", Label: "Aperture"},
	{Tag: "ISOSpeedRatings", Label: "ISO"},
	{Tag: "FocalLength", Label: "Focal length"},
	{Tag: "Orientation", Label: "Orientation"},
	{Tag: "XResolution", Label: "X resolution"},
	{Tag: "YResolution", Label: "Y resolution"},
	{Tag: "WhiteBalance", Label: "White balance"},
	{Tag: "ExposureMode", Label: "Exposure mode"},
	{Tag: "Flash", Label: "Flash"},
	{Tag: "SceneType", Label: "Scene type"},
	{Tag: "MeteringMode", Label: "Metering mode"},
	{Tag: "ColorSpace", Label: "Colour space"},
}

// Extractor extracts metadata from files
type Extractor struct {
	maxSize int64
}

// NewExtractor creates a new metadata extractor. maxSize caps how many
// bytes are read into memory; zero means no limit.
func NewExtractor(maxSize int64) *Extractor {
	return &Extractor{
		maxSize: maxSize,
	}
}

// ExtractFromFile extracts metadata from a file
func (e *Extractor) ExtractFromFile(fsys fs.FS, path string) (*Metadata, error) {
	info, err := fs.Stat(fsys, path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if e.maxSize > 0 && info.Size() > e.maxSize {
		return nil, fmt.Errorf("%s is %d bytes, larger than the %d byte limit", path, info.Size(), e.maxSize)
	}

	if !fileinfo.IsImageFile(path) {
		logger.Debug("%s does not have an image extension, trying anyway", path)
	}

	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return e.Extract(filepath.Base(path), bytes.NewReader(content), int64(len(content)))
}

// Extract builds Metadata from an in-memory image
func (e *Extractor) Extract(name string, r io.ReadSeeker, size int64) (*Metadata, error) {
	metadata := &Metadata{
		Name:   name,
		Size:   size,
		SizeKB: fileinfo.SizeKB(size),
	}

	exifData, err := exif.Extract(r)
	switch {
	case errors.Is(err, exif.ErrNoEXIF):
		logger.Info("No EXIF data in %s", name)
	case err != nil:
		return nil, fmt.Errorf("failed to extract EXIF data: %w", err)
	}

	if exifData != nil {
		metadata.DateTaken = exifData.DateTimeOriginal
		if c, ok := gps.Resolve(exifData.GPS); ok {
			metadata.Coordinates = &c
		}
		metadata.GPS = gpsFields(exifData.GPSRaw)
	}
	metadata.Camera = cameraFields(exifData)

	container, err := fileinfo.Inspect(r)
	if err != nil {
		return nil, err
	}
	metadata.Format = container.Format
	metadata.Width = container.Width
	metadata.Height = container.Height
	metadata.HasICCProfile = container.HasICCProfile

	return metadata, nil
}

func cameraFields(data *exif.Data) []Field {
	fields := make([]Field, len(Labels))
	copy(fields, Labels)
	if data == nil {
		return fields
	}
	for i := range fields {
		fields[i].Value = data.Fields[fields[i].Tag]
	}
	return fields
}

func gpsFields(raw map[string]string) []Field {
	if len(raw) == 0 {
		return nil
	}
	fields := make([]Field, 0, len(raw))
	for tag, value := range raw {
		fields = append(fields, Field{Tag: tag, Label: tag, Value: value})
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Tag < fields[j].Tag
	})
	return fields
}
