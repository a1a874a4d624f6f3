package preprocess

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-pixels/images"
)

// PreprocessingResult contains the preprocessed image data and metadata.
type PreprocessingResult struct {
	// Data is the preprocessed float32 tensor data.
	Data []float32
	// OriginalWidth is the original image width before preprocessing.
	OriginalWidth int
	// OriginalHeight is the original image height before preprocessing.
	OriginalHeight int
	// ScaleX is the horizontal scaling factor applied.
	ScaleX float64
	// ScaleY is the vertical scaling factor applied.
	ScaleY float64
	// PadLeft is the left padding applied for letterboxing.
	PadLeft int
	// PadTop is the top padding applied for letterboxing.
	PadTop int
	// Shape contains the tensor shape [C, H, W] or [H, W, C].
	Shape []int
}

// Preprocessor handles image preprocessing for a fixed model input contract.
type Preprocessor struct {
	config *ModelConfig
	logger logrus.FieldLogger
}

// NewPreprocessor creates a new preprocessor with the given configuration.
//
// Arguments:
// - config: The model-specific preprocessing configuration.
//
// Returns:
// - A configured Preprocessor instance.
//
// @example
//
//	config := &ModelConfig{
//	    Name:              "yolov4",
//	    InputWidth:        416,
//	    InputHeight:       416,
//	    InputChannels:     3,
//	    NormalizationType: NormalizeZeroToOne,
//	    ChannelOrder:      ChannelOrderCHW,
//	    ColorMode:         ColorModeRGB,
//	    KeepAspectRatio:   true,
//	}
//
// preprocessor := NewPreprocessor(config)
func NewPreprocessor(config *ModelConfig) *Preprocessor {
	// Set default letterbox color if not specified.
	if config != nil && config.LetterboxColor == nil {
		config.LetterboxColor = color.Black
	}

	return &Preprocessor{
		config: config,
		logger: logrus.StandardLogger(),
	}
}

// SetLogger replaces the logger used for debug output.
//
// Arguments:
// - logger: The logger to write preprocessing steps to.
//
// @example
// preprocessor.SetLogger(logrus.WithField("component", "preprocess"))
func (p *Preprocessor) SetLogger(logger logrus.FieldLogger) {
	if logger != nil {
		p.logger = logger
	}
}

// Config returns a copy of the model configuration.
func (p *Preprocessor) Config() ModelConfig {
	if p.config == nil {
		return ModelConfig{}
	}
	return *p.config
}

// Preprocess performs all necessary preprocessing steps on the input image.
//
// Arguments:
// - img: The decoded input image.
//
// Returns:
// - PreprocessingResult containing the preprocessed tensor and metadata.
// - error if preprocessing fails.
//
// @example
//
//	result, err := preprocessor.Preprocess(img)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// tensor := result.Data
func (p *Preprocessor) Preprocess(img image.Image) (*PreprocessingResult, error) {
	if err := p.config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid preprocessing config")
	}
	if err := validateInput(img); err != nil {
		return nil, errors.Wrap(err, "input validation failed")
	}

	original := images.SizeOf(img)
	originalWidth, originalHeight := original.Width, original.Height

	log := p.logger.WithField("model", p.config.Name)
	log.Debugf("preprocessing %dx%d image", originalWidth, originalHeight)

	resized, scaleX, scaleY, padLeft, padTop := p.resizeImage(img)
	log.Debugf("resized to %dx%d, scale (%.4f, %.4f), padding (%d, %d)",
		p.config.InputWidth, p.config.InputHeight, scaleX, scaleY, padLeft, padTop)

	tensor := p.imageToTensor(resized)

	if err := p.normalize(tensor); err != nil {
		return nil, errors.Wrap(err, "normalization failed")
	}

	shape := p.config.Shape()
	log.WithField("shape", shape).Debug("preprocessing complete")

	return &PreprocessingResult{
		Data:           tensor,
		OriginalWidth:  originalWidth,
		OriginalHeight: originalHeight,
		ScaleX:         scaleX,
		ScaleY:         scaleY,
		PadLeft:        padLeft,
		PadTop:         padTop,
		Shape:          shape,
	}, nil
}

// validateInput rejects nil and zero-sized images.
func validateInput(img image.Image) error {
	if img == nil {
		return errors.New("image is nil")
	}
	if size := images.SizeOf(img); size.Empty() {
		return errors.Errorf("invalid image dimensions: %dx%d", size.Width, size.Height)
	}
	return nil
}

// resizeImage resizes the image to the model's input dimensions.
//
// Returns:
// - The resized image.
// - scaleX: Horizontal scaling factor.
// - scaleY: Vertical scaling factor.
// - padLeft: Left padding for letterboxing.
// - padTop: Top padding for letterboxing.
func (p *Preprocessor) resizeImage(img image.Image) (image.Image, float64, float64, int, int) {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()
	dstWidth := p.config.InputWidth
	dstHeight := p.config.InputHeight

	scaleX := float64(dstWidth) / float64(srcWidth)
	scaleY := float64(dstHeight) / float64(srcHeight)

	if !p.config.KeepAspectRatio {
		resized := resize.Resize(uint(dstWidth), uint(dstHeight), img, p.config.Interpolation)
		return resized, scaleX, scaleY, 0, 0
	}

	scale := math.Min(scaleX, scaleY)
	newWidth := int(float64(srcWidth) * scale)
	newHeight := int(float64(srcHeight) * scale)
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	resized := resize.Resize(uint(newWidth), uint(newHeight), img, p.config.Interpolation)

	padLeft := (dstWidth - newWidth) / 2
	padTop := (dstHeight - newHeight) / 2

	letterboxed := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	draw.Draw(letterboxed, letterboxed.Bounds(), &image.Uniform{C: p.config.LetterboxColor}, image.Point{}, draw.Src)
	draw.Draw(letterboxed, image.Rect(padLeft, padTop, padLeft+newWidth, padTop+newHeight),
		resized, resized.Bounds().Min, draw.Over)

	return letterboxed, scale, scale, padLeft, padTop
}

// imageToTensor converts an image to float32 samples on the 0-255 scale in
// the configured channel order and color mode.
func (p *Preprocessor) imageToTensor(img image.Image) []float32 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	plane := width * height
	channels := p.config.InputChannels
	chw := p.config.ChannelOrder == ChannelOrderCHW

	tensor := make([]float32, plane*channels)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r8, g8, b8 := float32(r>>8), float32(g>>8), float32(b>>8)
			pixel := y*width + x

			if channels == 1 {
				tensor[pixel] = 0.299*r8 + 0.587*g8 + 0.114*b8
				continue
			}

			ch0, ch1, ch2 := r8, g8, b8
			if p.config.ColorMode == ColorModeBGR {
				ch0, ch2 = b8, r8
			}

			if chw {
				tensor[pixel] = ch0
				tensor[plane+pixel] = ch1
				tensor[2*plane+pixel] = ch2
			} else {
				tensor[pixel*3] = ch0
				tensor[pixel*3+1] = ch1
				tensor[pixel*3+2] = ch2
			}
		}
	}

	return tensor
}

// normalize applies normalization to the tensor in place and rejects
// non-finite results.
func (p *Preprocessor) normalize(tensor []float32) error {
	channels := p.config.InputChannels

	switch p.config.NormalizationType {
	case NormalizeZeroToOne:
		for i := range tensor {
			tensor[i] /= 255.0
		}
	case NormalizeMinusOneToOne:
		for i := range tensor {
			tensor[i] = (tensor[i] / 127.5) - 1.0
		}
	case NormalizeStandardize:
		plane := len(tensor) / channels
		for c := 0; c < channels; c++ {
			mean := p.config.MeanValues[c]
			std := p.config.StdValues[c]

			if p.config.ChannelOrder == ChannelOrderCHW {
				offset := c * plane
				for i := 0; i < plane; i++ {
					tensor[offset+i] = (tensor[offset+i] - mean) / std
				}
			} else {
				for i := c; i < len(tensor); i += channels {
					tensor[i] = (tensor[i] - mean) / std
				}
			}
		}
	}

	for i, v := range tensor {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return errors.Errorf("non-finite value %v at index %d", v, i)
		}
	}
	return nil
}
