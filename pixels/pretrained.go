package pixels

import (
	"github.com/sirupsen/logrus"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-pixels/decode"
)

// pretrainedExtractor delegates resizing and normalization to a Preprocessor.
type pretrainedExtractor struct {
	decoder      decode.Decoder
	preprocessor Preprocessor
	logger       logrus.FieldLogger
}

func (e *pretrainedExtractor) Method() Method {
	return Pretrained
}

// Extract forces RGB, runs the preprocessor and transposes its channel-first
// output to (H, W, 3). The numeric range and output size are whatever the
// preprocessor produces.
func (e *pretrainedExtractor) Extract(path string) (*Result, error) {
	raw, err := read(e.decoder, path, decode.ReadColor)
	if err != nil {
		return nil, err
	}
	if raw.Channels != 3 {
		return nil, kindError(ErrUnsupportedFormat, nil, "color read of %s returned %d channels", path, raw.Channels)
	}
	toRGB(raw)

	out, err := e.preprocessor.Preprocess(rgbImage(raw))
	if err != nil {
		return nil, kindError(ErrDependency, err, "preprocessing %s", path)
	}
	if err := checkCHW(out.Shape, len(out.Data)); err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"path":  path,
		"shape": out.Shape,
	}).Debug("preprocessed image")

	array := tensor.New(tensor.WithShape(out.Shape...), tensor.WithBacking(out.Data))
	if err := array.T(1, 2, 0); err != nil {
		return nil, kindError(ErrDependency, err, "transposing preprocessor output")
	}
	if err := array.Transpose(); err != nil {
		return nil, kindError(ErrDependency, err, "transposing preprocessor output")
	}

	return &Result{
		Method: Pretrained,
		Layout: Color,
		Array:  array,
	}, nil
}

// checkCHW verifies the preprocessor returned a (3, H, W) tensor whose data
// length matches its shape.
func checkCHW(shape []int, size int) error {
	if len(shape) != 3 || shape[0] != 3 || shape[1] <= 0 || shape[2] <= 0 {
		return kindError(ErrDependency, nil, "preprocessor returned shape %v, want (3, H, W)", shape)
	}
	if want := shape[0] * shape[1] * shape[2]; size != want {
		return kindError(ErrDependency, nil, "preprocessor returned %d values for shape %v, want %d", size, shape, want)
	}
	return nil
}
