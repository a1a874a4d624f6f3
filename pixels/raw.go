package pixels

import (
	"image"

	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-pixels/decode"
	"github.com/nvr-ai/go-pixels/images"
)

// read validates path and decodes it, wrapping every failure as ErrRead.
func read(decoder decode.Decoder, path string, mode decode.ReadMode) (*decode.Raw, error) {
	if err := images.ValidateFile(path); err != nil {
		return nil, kindError(ErrRead, err, "unable to read the image")
	}

	raw, err := decoder.Decode(path, mode)
	if err != nil {
		return nil, kindError(ErrRead, err, "unable to read the image")
	}
	if raw == nil || raw.Width <= 0 || raw.Height <= 0 {
		return nil, kindError(ErrRead, nil, "unable to read the image %s: empty image", path)
	}

	// Unsupported channel counts are reported by the caller as ErrUnsupportedFormat.
	if _, err := LayoutFor(raw.Channels); err == nil && len(raw.Pix) != raw.Height*raw.Stride() {
		return nil, kindError(ErrRead, nil, "unable to read the image %s: decoder returned %d samples, want %d",
			path, len(raw.Pix), raw.Height*raw.Stride())
	}

	return raw, nil
}

// toRGB reorders B,G,R[,A] samples to R,G,B[,A] in place.
func toRGB(raw *decode.Raw) {
	if raw.Order != decode.OrderBGR || raw.Channels < 3 {
		return
	}
	pix := raw.Pix
	for i := 0; i+2 < len(pix); i += raw.Channels {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
	raw.Order = decode.OrderRGB
}

// rawArray wraps the decoded samples without copying. Single-channel images
// get a 2D (H, W) shape.
func rawArray(raw *decode.Raw) *tensor.Dense {
	if raw.Channels == 1 {
		return tensor.New(tensor.WithShape(raw.Height, raw.Width), tensor.WithBacking(raw.Pix))
	}
	return tensor.New(tensor.WithShape(raw.Height, raw.Width, raw.Channels), tensor.WithBacking(raw.Pix))
}

// rgbImage copies 3-channel RGB samples into an opaque image.
func rgbImage(raw *decode.Raw) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, raw.Width, raw.Height))
	for src, dst := 0, 0; src+2 < len(raw.Pix); src, dst = src+3, dst+4 {
		img.Pix[dst] = raw.Pix[src]
		img.Pix[dst+1] = raw.Pix[src+1]
		img.Pix[dst+2] = raw.Pix[src+2]
		img.Pix[dst+3] = 0xff
	}
	return img
}
