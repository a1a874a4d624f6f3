package decode

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

// writeImage encodes img into dir/name using the encoder picked by extension.
func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	var buf bytes.Buffer
	switch filepath.Ext(name) {
	case ".jpg":
		require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}))
	case ".gif":
		require.NoError(t, gif.Encode(&buf, img, nil))
	case ".tif":
		require.NoError(t, tiff.Encode(&buf, img, nil))
	default:
		require.NoError(t, png.Encode(&buf, img))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func fill(img interface{ Set(x, y int, c color.Color) }, w, h int, c color.Color) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestNativeDecodeGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	fill(img, 3, 2, color.Gray{Y: 77})
	img.SetGray(2, 1, color.Gray{Y: 200})
	path := writeImage(t, t.TempDir(), "gray.png", img)

	raw, err := Native{}.Decode(path, ReadUnchanged)
	require.NoError(t, err)

	assert.Equal(t, 3, raw.Width)
	assert.Equal(t, 2, raw.Height)
	assert.Equal(t, 1, raw.Channels)
	assert.Equal(t, OrderGray, raw.Order)
	assert.Equal(t, []uint8{77, 77, 77, 77, 77, 200}, raw.Pix)
}

func TestNativeDecodeRGB(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fill(img, 2, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	path := writeImage(t, t.TempDir(), "rgb.png", img)

	raw, err := Native{}.Decode(path, ReadUnchanged)
	require.NoError(t, err)

	assert.Equal(t, 3, raw.Channels, "opaque PNG decodes as 3-channel color")
	assert.Equal(t, OrderRGB, raw.Order)
	assert.Len(t, raw.Pix, 2*2*3)
	assert.Equal(t, []uint8{10, 20, 30}, raw.Pix[:3])
	assert.Equal(t, 6, raw.Stride())
}

func TestNativeDecodeRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	path := writeImage(t, t.TempDir(), "rgba.png", img)

	raw, err := Native{}.Decode(path, ReadUnchanged)
	require.NoError(t, err)

	assert.Equal(t, 4, raw.Channels)
	assert.Equal(t, []uint8{200, 100, 50, 128, 1, 2, 3, 255}, raw.Pix,
		"samples should stay non-premultiplied")
}

func TestNativeDecodeForcedColor(t *testing.T) {
	dir := t.TempDir()

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	fill(gray, 2, 2, color.Gray{Y: 128})
	raw, err := Native{}.Decode(writeImage(t, dir, "gray.png", gray), ReadColor)
	require.NoError(t, err)
	assert.Equal(t, 3, raw.Channels)
	assert.Equal(t, OrderRGB, raw.Order)
	assert.Equal(t, []uint8{128, 128, 128}, raw.Pix[:3])

	rgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	rgba.SetNRGBA(0, 0, color.NRGBA{R: 9, G: 8, B: 7, A: 0})
	raw, err = Native{}.Decode(writeImage(t, dir, "rgba.png", rgba), ReadColor)
	require.NoError(t, err)
	assert.Equal(t, 3, raw.Channels)
	assert.Len(t, raw.Pix, 3, "alpha is dropped")
}

func TestNativeDecodeJPEGAndGIF(t *testing.T) {
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fill(img, 8, 8, color.RGBA{R: 255, A: 255})

	raw, err := Native{}.Decode(writeImage(t, dir, "red.jpg", img), ReadUnchanged)
	require.NoError(t, err)
	assert.Equal(t, 3, raw.Channels, "YCbCr JPEG is 3-channel")
	assert.InDelta(t, 255, int(raw.Pix[0]), 3)
	assert.InDelta(t, 0, int(raw.Pix[1]), 3)

	raw, err = Native{}.Decode(writeImage(t, dir, "red.gif", img), ReadUnchanged)
	require.NoError(t, err)
	assert.Equal(t, 3, raw.Channels, "opaque palette is 3-channel")
}

func TestNativeDecodeErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Native{}.Decode(filepath.Join(dir, "missing.png"), ReadUnchanged)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.png")

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not an image"), 0o644))
	_, err = Native{}.Decode(garbage, ReadUnchanged)
	assert.Error(t, err)
}

func TestChannelsOf(t *testing.T) {
	rect := image.Rect(0, 0, 1, 1)

	assert.Equal(t, 1, ChannelsOf(image.NewGray(rect)))
	assert.Equal(t, 1, ChannelsOf(image.NewGray16(rect)))
	opaqueRGBA := image.NewRGBA(rect)
	opaqueRGBA.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	assert.Equal(t, 3, ChannelsOf(opaqueRGBA))
	assert.Equal(t, 4, ChannelsOf(image.NewRGBA(rect)), "transparent premultiplied RGBA keeps alpha")
	assert.Equal(t, 4, ChannelsOf(image.NewRGBA64(rect)))
	assert.Equal(t, 3, ChannelsOf(image.NewYCbCr(rect, image.YCbCrSubsampleRatio420)))
	assert.Equal(t, 4, ChannelsOf(image.NewNRGBA(rect)))
	assert.Equal(t, 0, ChannelsOf(image.NewAlpha(rect)))

	opaque := image.NewPaletted(rect, color.Palette{color.Black, color.White})
	assert.Equal(t, 3, ChannelsOf(opaque))

	translucent := image.NewPaletted(rect, color.Palette{color.Transparent, color.White})
	assert.Equal(t, 4, ChannelsOf(translucent))
}

func TestNativeDecodePremultipliedAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fill(img, 2, 2, color.RGBA{R: 50, G: 25, B: 0, A: 128})
	path := writeImage(t, t.TempDir(), "premultiplied.tif", img)

	raw, err := Native{}.Decode(path, ReadUnchanged)
	require.NoError(t, err)

	assert.Equal(t, 4, raw.Channels, "associated alpha must not be dropped")
	assert.Equal(t, OrderRGB, raw.Order)
	assert.Len(t, raw.Pix, 2*2*4)
	assert.Equal(t, []uint8{99, 49, 0, 128}, raw.Pix[:4], "samples are un-premultiplied")

	raw, err = Native{}.Decode(path, ReadColor)
	require.NoError(t, err)
	assert.Equal(t, 3, raw.Channels)
}

func TestPackUnknownChannels(t *testing.T) {
	raw := pack(image.NewAlpha(image.Rect(0, 0, 2, 2)), 0)
	assert.Equal(t, 0, raw.Channels)
	assert.Nil(t, raw.Pix)
	assert.Equal(t, 2, raw.Width)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "unchanged", ReadUnchanged.String())
	assert.Equal(t, "color", ReadColor.String())
	assert.Equal(t, "bgr", OrderBGR.String())
	assert.Equal(t, "ChannelOrder(9)", ChannelOrder(9).String())
}
