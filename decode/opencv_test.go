package decode

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCVDecodeBGR(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fill(img, 2, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	path := writeImage(t, t.TempDir(), "rgb.png", img)

	raw, err := OpenCV{}.Decode(path, ReadUnchanged)
	require.NoError(t, err)

	assert.Equal(t, 2, raw.Width)
	assert.Equal(t, 2, raw.Height)
	assert.Equal(t, 3, raw.Channels)
	assert.Equal(t, OrderBGR, raw.Order)
	assert.Equal(t, []uint8{30, 20, 10}, raw.Pix[:3], "OpenCV yields B,G,R")
}

func TestOpenCVDecodeUnchangedKeepsChannels(t *testing.T) {
	dir := t.TempDir()

	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	fill(gray, 3, 3, color.Gray{Y: 42})
	raw, err := OpenCV{}.Decode(writeImage(t, dir, "gray.png", gray), ReadUnchanged)
	require.NoError(t, err)
	assert.Equal(t, 1, raw.Channels)
	assert.Equal(t, OrderGray, raw.Order)
	assert.Len(t, raw.Pix, 9)

	rgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	rgba.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	raw, err = OpenCV{}.Decode(writeImage(t, dir, "rgba.png", rgba), ReadUnchanged)
	require.NoError(t, err)
	assert.Equal(t, 4, raw.Channels)
	assert.Equal(t, []uint8{3, 2, 1, 4}, raw.Pix)

	raw, err = OpenCV{}.Decode(filepath.Join(dir, "gray.png"), ReadColor)
	require.NoError(t, err)
	assert.Equal(t, 3, raw.Channels, "ReadColor forces three channels")
}

func TestOpenCVDecodeMissing(t *testing.T) {
	_, err := OpenCV{}.Decode(filepath.Join(t.TempDir(), "missing.png"), ReadUnchanged)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to read image")
}
