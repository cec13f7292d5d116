package exif

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/bstardust/phonfo/internal/gps"
	"github.com/bstardust/phonfo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTIFF(gpsDir []testutil.Entry) []byte {
	ifd0 := []testutil.Entry{
		testutil.ASCII(0x010F, "Canon"),
		testutil.ASCII(0x0110, "Canon EOS 5D"),
		testutil.Short(0x0112, 1),
	}
	exifDir := []testutil.Entry{
		testutil.Rationals(0x829A, [2]uint32{1, 125}),
		testutil.Rationals(0x829D, [2]uint32{28, 10}),
		testutil.Short(0x8827, 400),
		testutil.ASCII(0x9003, "2023:05:01 12:30:00"),
	}
	return testutil.TIFF(ifd0, exifDir, gpsDir)
}

func TestExtract_Fields(t *testing.T) {
	data, err := Extract(bytes.NewReader(sampleTIFF(nil)))
	require.NoError(t, err)

	assert.Equal(t, "2023:05:01 12:30:00", data.DateTimeOriginal)
	assert.Equal(t, "Canon", data.Fields["Make"])
	assert.Equal(t, "Canon EOS 5D", data.Fields["Model"])
	assert.Equal(t, "1", data.Fields["Orientation"])
	assert.Equal(t, "1/125", data.Fields["ExposureTime"])
	assert.Equal(t, "28/10", data.Fields["FNumber"])
	assert.Equal(t, "400", data.Fields["ISOSpeedRatings"])
	assert.Nil(t, data.GPS)
	assert.Empty(t, data.GPSRaw)
}

func TestExtract_GPS(t *testing.T) {
	gpsDir := testutil.GPSDir("S", [3]uint32{40, 26, 46}, "W", [3]uint32{79, 58, 56})

	data, err := Extract(bytes.NewReader(sampleTIFF(gpsDir)))
	require.NoError(t, err)
	require.NotNil(t, data.GPS)

	require.NotNil(t, data.GPS.LatitudeRef)
	assert.Equal(t, "S", *data.GPS.LatitudeRef)
	require.NotNil(t, data.GPS.LongitudeRef)
	assert.Equal(t, "W", *data.GPS.LongitudeRef)

	c, ok := gps.Resolve(data.GPS)
	require.True(t, ok)
	assert.Equal(t, "-40.446111", fmt.Sprintf("%.6f", c.Latitude))
	assert.Equal(t, "-79.982222", fmt.Sprintf("%.6f", c.Longitude))

	assert.Equal(t, "40, 26, 46", data.GPSRaw["GPSLatitude"])
	assert.Equal(t, "W", data.GPSRaw["GPSLongitudeRef"])
	assert.NotContains(t, data.GPSRaw, "GPSInfoIFDPointer")
}

func TestExtract_GPSWithoutRefs(t *testing.T) {
	gpsDir := testutil.GPSDir("", [3]uint32{40, 0, 0}, "", [3]uint32{10, 0, 0})

	data, err := Extract(bytes.NewReader(sampleTIFF(gpsDir)))
	require.NoError(t, err)
	require.NotNil(t, data.GPS)
	assert.Nil(t, data.GPS.LatitudeRef)
	assert.Nil(t, data.GPS.LongitudeRef)

	c, ok := gps.Resolve(data.GPS)
	require.True(t, ok)
	assert.Equal(t, 40.0, c.Latitude)
	assert.Equal(t, 10.0, c.Longitude)
}

func TestExtract_GPSLatitudeOnly(t *testing.T) {
	gpsDir := []testutil.Entry{
		testutil.ASCII(0x1, "N"),
		testutil.Rationals(0x2, [2]uint32{40, 1}, [2]uint32{0, 1}, [2]uint32{0, 1}),
	}

	data, err := Extract(bytes.NewReader(sampleTIFF(gpsDir)))
	require.NoError(t, err)
	require.NotNil(t, data.GPS)
	assert.Nil(t, data.GPS.Longitude)

	_, ok := gps.Resolve(data.GPS)
	assert.False(t, ok)
}

func TestExtract_MalformedGPSRational(t *testing.T) {
	gpsDir := []testutil.Entry{
		testutil.Rationals(0x2, [2]uint32{40, 1}, [2]uint32{26, 0}, [2]uint32{46, 1}),
		testutil.Rationals(0x4, [2]uint32{79, 1}, [2]uint32{58, 1}, [2]uint32{56, 1}),
	}

	data, err := Extract(bytes.NewReader(sampleTIFF(gpsDir)))
	require.NoError(t, err)

	_, err = gps.Decode(data.GPS)
	var malformed *gps.MalformedRationalError
	assert.ErrorAs(t, err, &malformed)
}

func TestExtract_JPEG(t *testing.T) {
	gpsDir := testutil.GPSDir("N", [3]uint32{40, 0, 0}, "E", [3]uint32{10, 30, 0})
	img := testutil.JPEG(8, 4, testutil.ExifSegment(sampleTIFF(gpsDir)))

	data, err := Extract(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, "Canon", data.Fields["Make"])

	c, ok := gps.Resolve(data.GPS)
	require.True(t, ok)
	assert.Equal(t, "40.000000, 10.500000", c.String())
}

func TestExtract_NoEXIF(t *testing.T) {
	_, err := Extract(bytes.NewReader(testutil.PNG(4, 4)))
	assert.ErrorIs(t, err, ErrNoEXIF)

	_, err = Extract(bytes.NewReader(testutil.JPEG(4, 4)))
	assert.ErrorIs(t, err, ErrNoEXIF)
}
