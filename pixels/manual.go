package pixels

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-pixels/decode"
	"github.com/nvr-ai/go-pixels/images"
)

// manualExtractor scales forced-RGB samples to [0, 1], keeping a single
// channel for monochrome images.
type manualExtractor struct {
	decoder decode.Decoder
	logger  logrus.FieldLogger
}

func (e *manualExtractor) Method() Method {
	return ManualNormalized
}

// Extract returns float32 samples byte/255 shaped (H, W, 1) when every pixel
// is gray and (H, W, 3) otherwise.
func (e *manualExtractor) Extract(path string) (*Result, error) {
	raw, err := read(e.decoder, path, decode.ReadColor)
	if err != nil {
		return nil, err
	}
	if raw.Channels != 3 {
		return nil, kindError(ErrUnsupportedFormat, nil, "color read of %s returned %d channels", path, raw.Channels)
	}
	toRGB(raw)

	mono := monochrome(raw)
	channels, stride := 3, 1
	layout := Color
	if mono {
		channels, stride = 1, 3
		layout = Grayscale
	}

	e.logger.WithFields(logrus.Fields{
		"path":       path,
		"monochrome": mono,
	}).Debug("normalizing samples")

	size := images.Size{Width: raw.Width, Height: raw.Height}
	data := make([]float32, size.Pixels()*channels)
	pix := raw.Pix
	images.Parallel(len(data), func(start, end int) {
		for i := start; i < end; i++ {
			data[i] = float32(pix[i*stride])
		}
	})

	array := tensor.New(tensor.WithShape(raw.Height, raw.Width, channels), tensor.WithBacking(data))
	if _, err := array.DivScalar(float32(255), true, tensor.UseUnsafe()); err != nil {
		return nil, errors.Wrap(err, "normalizing samples")
	}

	return &Result{
		Method:     ManualNormalized,
		Layout:     layout,
		Array:      array,
		Monochrome: mono,
	}, nil
}
