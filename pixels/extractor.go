// Package pixels - extracts the pixel data of an image file as a numeric array.
//
// Three strategies share the Extractor interface:
//
//   - Direct keeps the native channel count and returns uint8 samples in
//     R,G,B[,A] order.
//   - Pretrained hands a forced-RGB image to a model Preprocessor and returns
//     its output as a channel-last float32 array.
//   - ManualNormalized forces RGB, collapses monochrome images to one channel
//     and scales samples to [0, 1].
package pixels

import (
	"image"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-pixels/decode"
	"github.com/nvr-ai/go-pixels/preprocess"
)

// Result is the output of an extraction.
type Result struct {
	// Method is the strategy that produced the array.
	Method Method
	// Layout is the channel arrangement of the array.
	Layout Layout
	// Array holds the samples indexed [row, column] or [row, column, channel].
	Array *tensor.Dense
	// Monochrome is set by ManualNormalized when every pixel has r == g == b.
	Monochrome bool
}

// Extractor turns an image file into a pixel array.
type Extractor interface {
	// Method returns the strategy implemented by the extractor.
	Method() Method
	// Extract reads the image at path. Errors match ErrRead,
	// ErrUnsupportedFormat or ErrDependency.
	Extract(path string) (*Result, error)
}

// Preprocessor is the model input contract used by the Pretrained strategy:
// given an RGB image, return a fixed-size normalized channel-first tensor.
type Preprocessor interface {
	Preprocess(img image.Image) (*preprocess.PreprocessingResult, error)
}

// NewArgs are the collaborators of an Extractor. Zero values are replaced
// with defaults.
type NewArgs struct {
	// Decoder reads image files. Defaults to decode.Native.
	Decoder decode.Decoder
	// Preprocessor is used by Pretrained. Defaults to the ViT 224 contract.
	Preprocessor Preprocessor
	// Logger receives debug output. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// New creates the extractor for method.
//
// Arguments:
//   - method: The extraction strategy.
//   - args: The collaborators; nil fields get defaults.
//
// Returns:
//   - Extractor: The strategy implementation.
//   - error: An error if method is unknown.
//
// @example
//
//	extractor, err := pixels.New(pixels.Direct, pixels.NewArgs{Decoder: decode.OpenCV{}})
//	if err != nil {
//	    return err
//	}
//	result, err := extractor.Extract("photo.png")
func New(method Method, args NewArgs) (Extractor, error) {
	if args.Decoder == nil {
		args.Decoder = decode.Native{}
	}
	if args.Logger == nil {
		args.Logger = logrus.StandardLogger()
	}
	logger := args.Logger.WithField("method", method)

	switch method {
	case Direct:
		return &directExtractor{decoder: args.Decoder, logger: logger}, nil
	case Pretrained:
		if args.Preprocessor == nil {
			p := preprocess.NewPreprocessor(preprocess.GetViTConfig())
			p.SetLogger(logger)
			args.Preprocessor = p
		}
		return &pretrainedExtractor{decoder: args.Decoder, preprocessor: args.Preprocessor, logger: logger}, nil
	case ManualNormalized:
		return &manualExtractor{decoder: args.Decoder, logger: logger}, nil
	default:
		return nil, errors.Errorf("unknown extraction method %q", method)
	}
}
