package fileinfo

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/bstardust/phonfo/pkg/common"
)

// Info describes the image container
type Info struct {
	Format        string `json:"format"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	HasICCProfile bool   `json:"hasIccProfile"`
}

// Inspect reads the container header for format, dimensions and colour profile
func Inspect(r io.ReadSeeker) (*Info, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, common.NewDecodeError("cannot identify image file", err)
	}

	info := &Info{
		Format: strings.ToUpper(format),
		Width:  cfg.Width,
		Height: cfg.Height,
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	info.HasICCProfile, err = hasICCProfile(info.Format, r)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for ICC profile: %w", err)
	}

	return info, nil
}

// SizeKB converts a byte count to kilobytes
func SizeKB(size int64) float64 {
	return float64(size) / 1024
}

// IsImageFile checks if a file is an image based on its extension
func IsImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".tiff", ".tif", ".bmp":
		return true
	default:
		return false
	}
}
