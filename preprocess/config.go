// Package preprocess - fixed-contract image preprocessing for vision models.
package preprocess

import (
	"image/color"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// NormalizationType defines how pixel values are normalized.
type NormalizationType int

const (
	// NormalizeNone keeps pixel values as 0-255.
	NormalizeNone NormalizationType = iota
	// NormalizeZeroToOne scales pixel values to [0, 1].
	NormalizeZeroToOne
	// NormalizeMinusOneToOne scales pixel values to [-1, 1].
	NormalizeMinusOneToOne
	// NormalizeStandardize applies mean and std normalization on the 0-255 scale.
	NormalizeStandardize
)

// ChannelOrder defines the ordering of image channels.
type ChannelOrder int

const (
	// ChannelOrderCHW is Channel-Height-Width ordering (common for ONNX).
	ChannelOrderCHW ChannelOrder = iota
	// ChannelOrderHWC is Height-Width-Channel ordering.
	ChannelOrderHWC
)

// ColorMode defines the color space of the image.
type ColorMode int

const (
	// ColorModeRGB is standard RGB color mode.
	ColorModeRGB ColorMode = iota
	// ColorModeBGR is BGR color mode (common for OpenCV models).
	ColorModeBGR
	// ColorModeGrayscale is single channel grayscale.
	ColorModeGrayscale
)

// ModelConfig defines preprocessing configuration for a specific model.
type ModelConfig struct {
	// Name of the model for debugging purposes.
	Name string
	// InputWidth is the expected width of the model input.
	InputWidth int
	// InputHeight is the expected height of the model input.
	InputHeight int
	// InputChannels is the number of channels (1 for grayscale, 3 for RGB).
	InputChannels int
	// NormalizationType defines how to normalize pixel values.
	NormalizationType NormalizationType
	// MeanValues for standardization (if NormalizationType is Standardize).
	MeanValues []float32
	// StdValues for standardization (if NormalizationType is Standardize).
	StdValues []float32
	// ChannelOrder defines the channel ordering (CHW or HWC).
	ChannelOrder ChannelOrder
	// ColorMode defines the color space (RGB, BGR, Grayscale).
	ColorMode ColorMode
	// KeepAspectRatio if true, maintains aspect ratio with letterboxing.
	KeepAspectRatio bool
	// LetterboxColor is the color used for letterbox padding (default black).
	LetterboxColor color.Color
	// Interpolation is the resampling function used for resizing.
	Interpolation resize.InterpolationFunction
}

// Validate checks the configuration for values the preprocessor cannot work with.
func (c *ModelConfig) Validate() error {
	if c == nil {
		return errors.New("model config is nil")
	}
	if c.InputWidth <= 0 || c.InputHeight <= 0 {
		return errors.Errorf("invalid model input size: %dx%d", c.InputWidth, c.InputHeight)
	}
	if c.InputChannels != 1 && c.InputChannels != 3 {
		return errors.Errorf("unsupported model input channels: %d", c.InputChannels)
	}
	if c.ColorMode == ColorModeGrayscale && c.InputChannels != 1 {
		return errors.Errorf("grayscale color mode needs 1 input channel, got %d", c.InputChannels)
	}
	if c.NormalizationType == NormalizeStandardize {
		if len(c.MeanValues) != c.InputChannels || len(c.StdValues) != c.InputChannels {
			return errors.Errorf("standardization needs %d mean and std values, got %d and %d",
				c.InputChannels, len(c.MeanValues), len(c.StdValues))
		}
		for i, std := range c.StdValues {
			if std == 0 {
				return errors.Errorf("std value %d is zero", i)
			}
		}
	}
	return nil
}

// Shape returns the output tensor shape for the configured channel order.
func (c *ModelConfig) Shape() []int {
	if c.ChannelOrder == ChannelOrderCHW {
		return []int{c.InputChannels, c.InputHeight, c.InputWidth}
	}
	return []int{c.InputHeight, c.InputWidth, c.InputChannels}
}

// ViTModelName is the pretrained model whose input contract GetViTConfig reproduces.
const ViTModelName = "google/vit-base-patch16-224"

// GetViTConfig returns the input contract of the ViT base patch16 224 model:
// bilinear resize to 224x224, rescale to [0, 1] and normalize with mean 0.5 and
// std 0.5, channel-first RGB.
//
// Arguments:
// - None.
//
// Returns:
// - A configured ModelConfig for ViT.
//
// @example
// preprocessor := NewPreprocessor(GetViTConfig())
func GetViTConfig() *ModelConfig {
	return &ModelConfig{
		Name:              ViTModelName,
		InputWidth:        224,
		InputHeight:       224,
		InputChannels:     3,
		NormalizationType: NormalizeStandardize,
		MeanValues:        []float32{127.5, 127.5, 127.5},
		StdValues:         []float32{127.5, 127.5, 127.5},
		ChannelOrder:      ChannelOrderCHW,
		ColorMode:         ColorModeRGB,
		KeepAspectRatio:   false,
		Interpolation:     resize.Bilinear,
	}
}

// GetYOLOv4Config returns a standard configuration for YOLOv4 models.
//
// Arguments:
// - inputSize: The input size (typically 416, 512, or 608).
//
// Returns:
// - A configured ModelConfig for YOLOv4.
//
// @example
// config := GetYOLOv4Config(416)
// preprocessor := NewPreprocessor(config)
func GetYOLOv4Config(inputSize int) *ModelConfig {
	return &ModelConfig{
		Name:              "yolov4",
		InputWidth:        inputSize,
		InputHeight:       inputSize,
		InputChannels:     3,
		NormalizationType: NormalizeZeroToOne,
		ChannelOrder:      ChannelOrderCHW,
		ColorMode:         ColorModeRGB,
		KeepAspectRatio:   true,
		LetterboxColor:    color.RGBA{114, 114, 114, 255},
		Interpolation:     resize.Lanczos3,
	}
}

// GetDFineConfig returns a standard configuration for D-FINE models.
func GetDFineConfig(inputSize int) *ModelConfig {
	return &ModelConfig{
		Name:              "d-fine",
		InputWidth:        inputSize,
		InputHeight:       inputSize,
		InputChannels:     3,
		NormalizationType: NormalizeStandardize,
		MeanValues:        []float32{123.675, 116.28, 103.53},
		StdValues:         []float32{58.395, 57.12, 57.375},
		ChannelOrder:      ChannelOrderCHW,
		ColorMode:         ColorModeRGB,
		KeepAspectRatio:   true,
		LetterboxColor:    color.Black,
		Interpolation:     resize.Lanczos3,
	}
}

// Preset names accepted by PresetConfig.
const (
	PresetViT    = "vit"
	PresetYOLOv4 = "yolov4"
	PresetDFine  = "dfine"
)

// Presets lists the names accepted by PresetConfig.
var Presets = []string{PresetViT, PresetYOLOv4, PresetDFine}

// PresetConfig returns a fresh configuration for the named preset. The
// detection presets use their usual input sizes, 416 for YOLOv4 and 640 for
// D-FINE, and letterbox the image.
//
// Arguments:
// - name: One of PresetViT, PresetYOLOv4 or PresetDFine.
//
// Returns:
// - The preset configuration.
// - error if the name is unknown.
//
// @example
// config, err := PresetConfig(PresetYOLOv4)
func PresetConfig(name string) (*ModelConfig, error) {
	switch name {
	case PresetViT:
		return GetViTConfig(), nil
	case PresetYOLOv4:
		return GetYOLOv4Config(416), nil
	case PresetDFine:
		return GetDFineConfig(640), nil
	default:
		return nil, errors.Errorf("unknown model preset %q (want one of %v)", name, Presets)
	}
}
