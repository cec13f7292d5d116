package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bstardust/phonfo/internal/gps"
	"github.com/bstardust/phonfo/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *metadata.Metadata {
	return &metadata.Metadata{
		Name:          "beach.jpg",
		Size:          2048,
		SizeKB:        2,
		DateTaken:     "2021:07:14 09:15:00",
		Coordinates:   &gps.Coordinate{Latitude: -40.4461111, Longitude: -79.9822222},
		Width:         4032,
		Height:        3024,
		HasICCProfile: true,
		Format:        "JPEG",
		Camera: []metadata.Field{
			{Tag: "Make", Label: "Camera make", Value: "Apple"},
			{Tag: "Software", Label: "Camera software"},
		},
		GPS: []metadata.Field{
			{Tag: "GPSLatitude", Label: "GPSLatitude", Value: "40, 26, 46"},
			{Tag: "GPSLatitudeRef", Label: "GPSLatitudeRef", Value: "S"},
		},
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sample(), Options{ShowEXIF: true, ShowRawGPS: true}))

	want := `
Processing file: beach.jpg
File size: 2.00 KB
Date taken: 2021:07:14 09:15:00
GPS coordinates: -40.446111, -79.982222
Image size: 4032x3024 pixels
Colour profile: contains ICC profile
Image format: JPEG

[Main metadata]
Camera make: Apple
Camera software: no data

[GPS data]
GPSLatitude: 40, 26, 46
GPSLatitudeRef: S
`
	assert.Equal(t, want, buf.String())
}

func TestText_Absent(t *testing.T) {
	md := sample()
	md.DateTaken = ""
	md.Coordinates = nil
	md.HasICCProfile = false
	md.GPS = nil

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, md, Options{ShowRawGPS: true}))

	out := buf.String()
	assert.Contains(t, out, "Date taken: Not specified\n")
	assert.Contains(t, out, "GPS coordinates: not found\n")
	assert.Contains(t, out, "Colour profile: not found\n")
	assert.Contains(t, out, "GPS data: not found\n")
	assert.NotContains(t, out, "[Main metadata]")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestText_WriteError(t *testing.T) {
	err := Text(failingWriter{}, sample(), Options{})
	assert.EqualError(t, err, "disk full")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sample()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "JPEG", decoded["format"])
	coords := decoded["coordinates"].(map[string]interface{})
	assert.InDelta(t, -40.446111, coords["latitude"], 1e-6)

	md := sample()
	md.Coordinates = nil
	buf.Reset()
	require.NoError(t, JSON(&buf, md))
	assert.Contains(t, buf.String(), `"coordinates": null`)
}
