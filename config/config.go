// Package config - application configuration for the pixel extractor CLI.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/nvr-ai/go-pixels/pixels"
	"github.com/nvr-ai/go-pixels/preprocess"
	"github.com/nvr-ai/go-pixels/report"
)

// EnvPrefix is the prefix of environment overrides, e.g. PIXELS_METHOD.
const EnvPrefix = "PIXELS"

// Decoder names.
const (
	DecoderNative = "native"
	DecoderOpenCV = "opencv"
)

// Config is the resolved configuration of one invocation.
type Config struct {
	// Method is the extraction strategy: direct, pretrained or manual.
	Method string `mapstructure:"method"`
	// Decoder selects the image decoder: native or opencv.
	Decoder string `mapstructure:"decoder"`
	// Samples is the number of leading rows/columns printed.
	Samples int `mapstructure:"samples"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
	// Model configures the pretrained preprocessing contract.
	Model ModelConfig `mapstructure:"model"`
}

// ModelConfig selects the preprocessing contract of the pretrained method.
type ModelConfig struct {
	// Preset is the built-in contract: vit (default), yolov4 or dfine.
	Preset string `mapstructure:"preset"`
	// Path is an optional .onnx model file whose input size overrides the preset.
	Path string `mapstructure:"path"`
	// Library is the onnxruntime shared library path.
	Library string `mapstructure:"library"`
}

// New returns a viper instance with defaults and environment bindings set.
// When file is not empty it is read as the config file.
//
// Arguments:
//   - file: Optional path to a YAML/JSON/TOML config file.
//
// Returns:
//   - *viper.Viper: The configured instance.
//   - error: An error if the config file cannot be read.
func New(file string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("method", string(pixels.Direct))
	v.SetDefault("decoder", DecoderNative)
	v.SetDefault("samples", report.DefaultSamples)
	v.SetDefault("verbose", false)
	v.SetDefault("model.preset", preprocess.PresetViT)
	v.SetDefault("model.path", "")
	v.SetDefault("model.library", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", file)
		}
	}

	return v, nil
}

// Parse unmarshals v into a Config and validates it.
func Parse(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects unknown methods, decoders and model presets and
// non-positive sample counts.
func (c *Config) Validate() error {
	if _, err := pixels.ParseMethod(c.Method); err != nil {
		return err
	}
	switch c.Decoder {
	case DecoderNative, DecoderOpenCV:
	default:
		return errors.Errorf("unknown decoder %q (want %s or %s)", c.Decoder, DecoderNative, DecoderOpenCV)
	}
	if _, err := preprocess.PresetConfig(c.Model.Preset); err != nil {
		return err
	}
	if c.Samples < 1 {
		return errors.Errorf("samples must be positive, got %d", c.Samples)
	}
	return nil
}
