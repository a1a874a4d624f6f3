package decode

import (
	"image"
	"image/color"

	// Registers the webp format with image.Decode.
	_ "github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Native decodes with the Go image codecs (jpeg, png, gif, bmp, tiff, webp).
// Color samples are produced in R,G,B[,A] order.
type Native struct{}

// Decode implements Decoder.
//
// Arguments:
//   - path: The image file to decode.
//   - mode: ReadUnchanged keeps the native channel count, ReadColor forces RGB.
//
// Returns:
//   - *Raw: The decoded samples.
//   - error: An error if the file cannot be opened or decoded.
func (Native) Decode(path string, mode ReadMode) (*Raw, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read image %s", path)
	}

	channels := ChannelsOf(img)
	if mode == ReadColor {
		channels = 3
	}

	return pack(img, channels), nil
}

// ChannelsOf maps the color model of img to a native channel count.
//
// Returns 0 for color models that carry no RGB information (alpha-only masks)
// or that are not known.
func ChannelsOf(img image.Image) int {
	switch model := img.ColorModel(); model {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	case color.RGBAModel, color.RGBA64Model:
		// Premultiplied alpha (TIFF associated alpha) decodes to RGBA.
		if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
			return 4
		}
		return 3
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel:
		return 4
	default:
		if palette, ok := model.(color.Palette); ok {
			for _, c := range palette {
				if _, _, _, a := c.RGBA(); a != 0xffff {
					return 4
				}
			}
			return 3
		}
		return 0
	}
}

// pack converts img into interleaved 8-bit samples with the given channel
// count. Color samples are non-premultiplied.
func pack(img image.Image, channels int) *Raw {
	bounds := img.Bounds()
	raw := &Raw{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: channels,
		Order:    OrderRGB,
	}
	if channels == 1 {
		raw.Order = OrderGray
	}
	if channels != 1 && channels != 3 && channels != 4 {
		return raw
	}

	raw.Pix = make([]uint8, raw.Height*raw.Stride())

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.At(x, y)
			if channels == 1 {
				raw.Pix[i] = color.GrayModel.Convert(c).(color.Gray).Y
				i++
				continue
			}

			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			raw.Pix[i] = n.R
			raw.Pix[i+1] = n.G
			raw.Pix[i+2] = n.B
			if channels == 4 {
				raw.Pix[i+3] = n.A
			}
			i += channels
		}
	}

	return raw
}
