package preprocess

import (
	"os"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// LoadModelContract reads the input contract of an ONNX model and returns a
// copy of base whose input size and channels match the model's first input.
//
// Arguments:
//   - modelPath: Path to the .onnx model file.
//   - libraryPath: Path to the onnxruntime shared library, empty for the default search.
//   - base: The configuration supplying normalization, color mode and resize policy.
//
// Returns:
//   - *ModelConfig: The configuration aligned with the model input.
//   - error: An error if the runtime cannot be initialized or the model cannot be inspected.
func LoadModelContract(modelPath, libraryPath string, base *ModelConfig) (*ModelConfig, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, errors.Wrapf(err, "ONNX model file not found: %s", modelPath)
	}

	if !ort.IsInitialized() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "error initializing ORT environment")
		}
		defer ort.DestroyEnvironment()
	}

	inputs, _, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to inspect model %s", modelPath)
	}
	if len(inputs) == 0 {
		return nil, errors.Errorf("model %s declares no inputs", modelPath)
	}

	config, err := ConfigFromDims(base, inputs[0].Dimensions)
	if err != nil {
		return nil, errors.Wrapf(err, "model input %q", inputs[0].Name)
	}
	return config, nil
}

// ConfigFromDims copies base and applies the model input dimensions to it.
//
// Dimensions are [N, C, H, W] or [C, H, W] for channel-first configs and
// [N, H, W, C] or [H, W, C] for channel-last ones. Dynamic dimensions (zero or
// negative) keep the value from base.
func ConfigFromDims(base *ModelConfig, dims []int64) (*ModelConfig, error) {
	if base == nil {
		return nil, errors.New("base config is nil")
	}
	if len(dims) == 4 {
		dims = dims[1:]
	}
	if len(dims) != 3 {
		return nil, errors.Errorf("expected 3 or 4 input dimensions, got %v", dims)
	}

	channels, height, width := dims[0], dims[1], dims[2]
	if base.ChannelOrder == ChannelOrderHWC {
		height, width, channels = dims[0], dims[1], dims[2]
	}

	config := *base
	config.MeanValues = append([]float32(nil), base.MeanValues...)
	config.StdValues = append([]float32(nil), base.StdValues...)

	if width > 0 {
		config.InputWidth = int(width)
	}
	if height > 0 {
		config.InputHeight = int(height)
	}
	if channels > 0 && channels != int64(base.InputChannels) {
		return nil, errors.Errorf("model expects %d channels, preprocessing produces %d",
			channels, base.InputChannels)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
