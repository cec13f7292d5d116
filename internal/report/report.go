// Package report renders image metadata for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bstardust/phonfo/internal/metadata"
)

// Options selects the optional report sections
type Options struct {
	ShowEXIF   bool
	ShowRawGPS bool
}

// Text writes the human-readable report
func Text(w io.Writer, md *metadata.Metadata, opts Options) error {
	p := &printer{w: w}

	p.printf("\nProcessing file: %s\n", md.Name)
	p.printf("File size: %.2f KB\n", md.SizeKB)
	p.printf("Date taken: %s\n", orDefault(md.DateTaken, "Not specified"))

	if md.Coordinates != nil {
		p.printf("GPS coordinates: %s\n", md.Coordinates)
	} else {
		p.printf("GPS coordinates: not found\n")
	}

	p.printf("Image size: %dx%d pixels\n", md.Width, md.Height)
	if md.HasICCProfile {
		p.printf("Colour profile: contains ICC profile\n")
	} else {
		p.printf("Colour profile: not found\n")
	}
	p.printf("Image format: %s\n", md.Format)

	if opts.ShowEXIF {
		p.printf("\n[Main metadata]\n")
		for _, f := range md.Camera {
			p.printf("%s: %s\n", f.Label, orDefault(f.Value, "no data"))
		}
	}

	if opts.ShowRawGPS {
		p.printf("\n[GPS data]\n")
		if len(md.GPS) == 0 {
			p.printf("GPS data: not found\n")
		}
		for _, f := range md.GPS {
			p.printf("%s: %s\n", f.Tag, f.Value)
		}
	}

	return p.err
}

// JSON writes md as indented JSON
func JSON(w io.Writer, md *metadata.Metadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(md)
}

// printer keeps the first write error
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
